package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "santest",
	Short: "Run Rust test suites under ThreadSanitizer or AddressSanitizer",
	Long: `santest runs "cargo +nightly test -Zbuild-std" for the host's target triple
with the compiler and runtime flags a sanitizer needs, and exits with the
test process's exit status unchanged.

  santest tsan            ThreadSanitizer, tests serialized (RUST_TEST_THREADS=1)
  santest asan            AddressSanitizer with leak detection
  santest plan tsan       show what would run without running it
  santest ci              run the check/test/fmt/clippy pipeline jobs`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.santest.yaml, then $HOME/.santest/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("host-os", "", "override the detected host OS (uname -s style, e.g. Darwin)")
	rootCmd.PersistentFlags().String("channel", "", "override the cargo toolchain channel")

	_ = viper.BindPFlag("host_os", rootCmd.PersistentFlags().Lookup("host-os"))
	_ = viper.BindPFlag("toolchain.channel", rootCmd.PersistentFlags().Lookup("channel"))
}

// initConfig binds SANTEST_* environment variables. The config file itself
// is loaded and schema-checked by the container.
func initConfig() {
	viper.SetEnvPrefix("SANTEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = viper.GetString("config")
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

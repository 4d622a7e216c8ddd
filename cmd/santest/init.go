package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/reglet-dev/santest/internal/domain/entities"
	"github.com/reglet-dev/santest/internal/infrastructure/host"
	"github.com/reglet-dev/santest/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

// InitOptions holds the answers used to generate a config file.
type InitOptions struct {
	OutputPath    string
	Channel       string
	MinVersion    string
	Jobs          []string
	NoInteractive bool
	Force         bool
}

// initCmd writes a starter configuration file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter .santest.yaml",
	Long: `Write a .santest.yaml with the toolchain channel and the pipeline jobs used
by "santest ci". Prompts for the values unless --no-interactive is given or
stdin is not a terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := InitOptions{}
		opts.OutputPath, _ = cmd.Flags().GetString("output")
		opts.Channel, _ = cmd.Flags().GetString("toolchain")
		opts.MinVersion, _ = cmd.Flags().GetString("min-version")
		opts.Jobs, _ = cmd.Flags().GetStringSlice("jobs")
		opts.NoInteractive, _ = cmd.Flags().GetBool("no-interactive")
		opts.Force, _ = cmd.Flags().GetBool("force")

		return runInit(cmd, opts)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("output", "o", system.ProjectConfigFile, "Path of the config file to write")
	initCmd.Flags().String("toolchain", "", "Toolchain channel (default nightly)")
	initCmd.Flags().String("min-version", "", "Semver constraint checked by santest doctor (e.g. \">= 1.80.0\")")
	initCmd.Flags().StringSlice("jobs", nil, "Pipeline jobs to include (default: all)")
	initCmd.Flags().Bool("no-interactive", false, "Do not prompt; use flags and defaults")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runInit(cmd *cobra.Command, opts InitOptions) error {
	if _, err := os.Stat(opts.OutputPath); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", opts.OutputPath)
	}

	defaults := entities.DefaultPipeline("")

	if !opts.NoInteractive && host.IsInteractive() {
		if err := promptInitOptions(&opts, defaults.JobNames()); err != nil {
			return err
		}
	}

	cfg, err := buildInitConfig(opts, defaults)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Re-parse so a file santest cannot load is never written.
	if _, err := system.Parse(data); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with jobs: %v\n", opts.OutputPath, jobNames(cfg))
	return nil
}

func promptInitOptions(opts *InitOptions, available []string) error {
	if opts.Channel == "" {
		opts.Channel = entities.DefaultToolchain().Channel
		err := huh.NewInput().
			Title("Toolchain channel").
			Description("Sanitizers and -Zbuild-std need a nightly toolchain").
			Value(&opts.Channel).
			Run()
		if err != nil {
			return err
		}
	}

	if len(opts.Jobs) == 0 {
		options := make([]huh.Option[string], 0, len(available))
		for _, name := range available {
			options = append(options, huh.NewOption(name, name).Selected(true))
		}
		err := huh.NewMultiSelect[string]().
			Title("Select pipeline jobs for santest ci").
			Options(options...).
			Value(&opts.Jobs).
			Run()
		if err != nil {
			return err
		}
	}

	if opts.MinVersion == "" {
		err := huh.NewInput().
			Title("Minimum toolchain version (optional)").
			Placeholder(">= 1.80.0").
			Value(&opts.MinVersion).
			Run()
		if err != nil {
			return err
		}
	}

	return nil
}

// buildInitConfig converts the answers into a config. No jobs selected
// means all default jobs.
func buildInitConfig(opts InitOptions, defaults *entities.Pipeline) (*system.Config, error) {
	cfg := system.DefaultConfig()
	if opts.Channel != "" {
		cfg.Toolchain.Channel = opts.Channel
	}
	cfg.Toolchain.MinVersion = opts.MinVersion

	selected := defaults
	if len(opts.Jobs) > 0 {
		var err error
		selected, err = defaults.Select(opts.Jobs)
		if err != nil {
			return nil, err
		}
	}

	for _, job := range selected.Jobs {
		cfg.Pipeline.Jobs = append(cfg.Pipeline.Jobs, system.JobConfig{
			Name:    job.Name,
			Command: job.Command.Name,
			Args:    slices.Clone(job.Command.Args),
		})
	}
	return cfg, nil
}

func jobNames(cfg *system.Config) []string {
	names := make([]string, 0, len(cfg.Pipeline.Jobs))
	for _, j := range cfg.Pipeline.Jobs {
		names = append(names, j.Name)
	}
	return names
}

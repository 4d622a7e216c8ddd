package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/reglet-dev/santest/internal/application/dto"
	apperrors "github.com/reglet-dev/santest/internal/application/errors"
	"github.com/reglet-dev/santest/internal/domain/values"
	"github.com/spf13/cobra"
)

func init() {
	for _, kind := range values.AllSanitizers() {
		rootCmd.AddCommand(newSanitizeCmd(kind))
	}
}

// newSanitizeCmd builds the tsan/asan command for one sanitizer kind.
func newSanitizeCmd(kind values.SanitizerKind) *cobra.Command {
	profile := values.MustBuildSanitizerProfile(kind)

	long := fmt.Sprintf(`Run "cargo +nightly test -Zbuild-std --target <host triple>" with the
%s instrumentation flags and exit with the test process's exit status.

Arguments after "--" are passed to cargo, e.g.

  santest %s -- -p my-crate -- --nocapture`, kind.DisplayName(), kind.ShortName())
	if profile.IsSerialized() {
		long += "\n\nTests run one at a time (RUST_TEST_THREADS=1)."
	}

	return &cobra.Command{
		Use:   kind.ShortName() + " [-- cargo args...]",
		Short: fmt.Sprintf("Run the test suite under %s", kind.DisplayName()),
		Long:  long,
		Args:  argsBeforeDash(cobra.NoArgs),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runSanitizeAction(ctx, kind, passthroughArgs(cmd, args))
		}),
	}
}

// runSanitizeAction executes one sanitized test run and converts a non-zero
// child status into an ExitStatusError so main exits with it verbatim.
func runSanitizeAction(ctx *CommandContext, kind values.SanitizerKind, extra []string) error {
	// The child shares the terminal's process group and receives ^C itself;
	// santest stays alive to report the status it exits with.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	resp, err := ctx.Container.SanitizedRunUseCase().Execute(ctx.Context, dto.SanitizedRunRequest{
		Sanitizer: kind,
		ExtraArgs: extra,
	})
	if err != nil {
		return err
	}

	return apperrors.NewExitStatusError(resp.ExitCode)
}

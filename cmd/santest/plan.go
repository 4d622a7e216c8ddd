package main

import (
	"fmt"

	"github.com/reglet-dev/santest/internal/application/dto"
	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/reglet-dev/santest/internal/domain/values"
	"github.com/spf13/cobra"
)

var planOpts = DefaultCommonOptions("table", "json", "yaml", "env")

// planCmd resolves a sanitized run without executing it.
var planCmd = &cobra.Command{
	Use:   "plan <tsan|asan> [-- cargo args...]",
	Short: "Show the target, environment and command a sanitized run would use",
	Long: `Resolve the host platform, sanitizer profile and cargo command exactly as
"santest tsan" / "santest asan" would, and print them without running anything.

The env format prints a shell snippet that reproduces the run by hand.`,
	Args:      argsBeforeDash(cobra.ExactArgs(1)),
	ValidArgs: []string{"tsan", "asan", "thread", "address"},
	RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
		kind, err := values.ParseSanitizerKind(args[0])
		if err != nil {
			return err
		}
		return runPlanAction(ctx, cmd, kind, passthroughArgs(cmd, args))
	}),
}

func init() {
	rootCmd.AddCommand(planCmd)
	planOpts.RegisterFlags(planCmd)
}

func runPlanAction(ctx *CommandContext, cmd *cobra.Command, kind values.SanitizerKind, extra []string) error {
	if err := planOpts.ValidateFlags(); err != nil {
		return err
	}

	plan, err := ctx.Container.SanitizedRunUseCase().Plan(ctx.Context, dto.SanitizedRunRequest{
		Sanitizer: kind,
		ExtraArgs: extra,
	})
	if err != nil {
		return err
	}

	writer, closeOutput, err := planOpts.OpenOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	formatter, err := ctx.Container.FormatterFactory().CreatePlanFormatter(planOpts.Format, writer, ports.FormatterOptions{
		Indent:  true,
		NoColor: planOpts.NoColor || !writesToTerminal(writer),
	})
	if err != nil {
		return err
	}

	if err := formatter.FormatPlan(plan); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

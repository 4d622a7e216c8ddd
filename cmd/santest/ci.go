package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/reglet-dev/santest/internal/application/dto"
	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/spf13/cobra"
)

var (
	ciOpts        = DefaultCommonOptions("table", "json", "yaml", "junit")
	ciJobs        []string
	ciSkip        []string
	ciFilter      string
	ciMaxParallel int
	ciOutputLimit int
)

// ciCmd runs the pipeline jobs locally.
var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run the pipeline jobs (check, test, fmt, clippy) in parallel",
	Long: `Run every pipeline job independently and in parallel, capture its output and
report pass/fail per job. Jobs come from pipeline.jobs in the config file, or
default to cargo check, cargo test, cargo fmt --check and cargo clippy.

Filtering:
  --jobs check,test               Run only these jobs
  --skip clippy                   Report these jobs as skipped
  --filter "name != 'fmt'"        Expression over name, command and args

Captured output is scrubbed of secrets before it is printed or written.
The command exits 1 when any job fails.`,
	Args: cobra.NoArgs,
	RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
		return runCIAction(ctx, cmd)
	}),
}

func init() {
	rootCmd.AddCommand(ciCmd)
	ciOpts.RegisterFlags(ciCmd)

	ciCmd.Flags().StringSliceVar(&ciJobs, "jobs", nil, "Run only these jobs (comma-separated)")
	ciCmd.Flags().StringSliceVar(&ciSkip, "skip", nil, "Skip these jobs (comma-separated)")
	ciCmd.Flags().StringVar(&ciFilter, "filter", "", "Job filter expression (e.g. \"name in ['check', 'test']\")")
	ciCmd.Flags().IntVar(&ciMaxParallel, "max-parallel", -1, "Maximum concurrent jobs (0 = all, default from config)")
	ciCmd.Flags().IntVar(&ciOutputLimit, "output-limit", 0, "Captured output limit per job in bytes (default from config, else 1MiB)")
}

// runCIAction implements the core logic for the ci command.
func runCIAction(ctx *CommandContext, cmd *cobra.Command) error {
	if err := ciOpts.ValidateFlags(); err != nil {
		return err
	}

	uc, err := ctx.Container.PipelineUseCase()
	if err != nil {
		return err
	}

	filters := dto.FilterOptions{
		FilterExpression: ciFilter,
		Jobs:             ciJobs,
		Skip:             ciSkip,
	}
	if err := uc.ValidateFilters(filters); err != nil {
		return err
	}

	cfg := ctx.Container.SystemConfig()
	execution := dto.ExecutionOptions{
		MaxParallel:      cfg.Pipeline.MaxParallel,
		OutputLimitBytes: cfg.Pipeline.OutputLimitBytes,
	}
	if ciMaxParallel >= 0 {
		execution.MaxParallel = ciMaxParallel
	}
	if ciOutputLimit > 0 {
		execution.OutputLimitBytes = ciOutputLimit
	}

	// Cancellation kills running jobs; each still gets a result.
	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()
	runCtx, cancel := ciOpts.ApplyToContext(runCtx)
	defer cancel()

	resp, err := uc.Execute(runCtx, dto.PipelineRequest{
		Filters:   filters,
		Execution: execution,
	})
	if err != nil {
		return err
	}
	result := resp.Result

	writer, closeOutput, err := ciOpts.OpenOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	formatter, err := ctx.Container.FormatterFactory().Create(ciOpts.Format, writer, ports.FormatterOptions{
		Indent:  true,
		NoColor: ciOpts.NoColor || !writesToTerminal(writer),
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if result.Failed() {
		return fmt.Errorf("pipeline failed: %d passed, %d failed, %d errors",
			result.Summary.PassedJobs,
			result.Summary.FailedJobs,
			result.Summary.ErrorJobs)
	}

	return nil
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/santest/internal/application/services"
	"github.com/reglet-dev/santest/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

var doctorOpts = DefaultCommonOptions("table", "json", "yaml")

// doctorCmd checks the toolchain santest will invoke.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the cargo toolchain can build sanitized tests",
	Long: `Run "cargo +<channel> --version", check that the toolchain is a nightly
(sanitizers and -Zbuild-std are unstable) and, when toolchain.min_version is
configured, that it satisfies that semver constraint. Also reports the target
triple that would be used on this host.`,
	Args: cobra.NoArgs,
	RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
		return runDoctorAction(ctx, cmd)
	}),
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorOpts.RegisterFlags(doctorCmd)
}

func runDoctorAction(ctx *CommandContext, cmd *cobra.Command) error {
	if err := doctorOpts.ValidateFlags(); err != nil {
		return err
	}

	runCtx, cancel := doctorOpts.ApplyToContext(ctx.Context)
	defer cancel()

	report, err := ctx.Container.ToolchainDoctorUseCase().Execute(runCtx)
	if err != nil {
		return err
	}

	writer, closeOutput, err := doctorOpts.OpenOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	switch doctorOpts.Format {
	case "json":
		err = output.NewJSONFormatter(writer, true).FormatValue(report)
	case "yaml":
		err = output.NewYAMLFormatter(writer).FormatValue(report)
	default:
		writeDoctorTable(writer, report)
	}
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if !report.OK() {
		return fmt.Errorf("toolchain check failed: %s", strings.Join(report.Problems, "; "))
	}
	return nil
}

//nolint:errcheck // Best-effort terminal output
func writeDoctorTable(w io.Writer, report *services.DoctorReport) {
	fmt.Fprintf(w, "Host OS:     %s\n", report.Platform.OSIdentifier)
	fmt.Fprintf(w, "Target:      %s\n", report.Platform.TargetTriple)
	fmt.Fprintf(w, "Toolchain:   %s\n", report.Raw)
	if report.Version != "" {
		fmt.Fprintf(w, "Version:     %s\n", report.Version)
	}
	if report.Constraint != "" {
		fmt.Fprintf(w, "Constraint:  %s\n", report.Constraint)
	}
	fmt.Fprintf(w, "Nightly:     %t\n", report.Nightly)

	if report.OK() {
		fmt.Fprintln(w, "\n✓ toolchain ready")
		return
	}
	fmt.Fprintln(w, "\nProblems:")
	for _, p := range report.Problems {
		fmt.Fprintf(w, "  ✗ %s\n", p)
	}
}

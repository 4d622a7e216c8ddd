package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reglet-dev/santest/internal/application/dto"
	"github.com/reglet-dev/santest/internal/domain/execution"
	"github.com/reglet-dev/santest/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// outputTailLines is how much captured output a failed job shows.
const outputTailLines = 20

// TableFormatter formats results as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the pipeline result as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(result *execution.PipelineResult) error {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "Run: %s\n", f.colorize(result.RunID.String(), colorBold))
	fmt.Fprintf(f.writer, "Started: %s\n", result.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(result.Jobs) == 0 {
		fmt.Fprintln(f.writer, "No jobs executed.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Jobs:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	for _, job := range result.Jobs {
		f.formatJob(job)
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintln(f.writer)

	f.formatSummary(result.Summary)

	return nil
}

// formatJob formats a single job.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatJob(job execution.JobResult) {
	statusSymbol, statusColor := f.getStatusInfo(job.Status)

	fmt.Fprintf(f.writer, "%s %s\n", f.colorize(statusSymbol, statusColor), f.colorize(job.Name, statusColor))
	fmt.Fprintf(f.writer, "  Command: %s\n", f.colorize(job.Command, colorCyan))
	fmt.Fprintf(f.writer, "  Status: %s\n", f.colorize(strings.ToUpper(string(job.Status)), statusColor))

	if job.Message != "" {
		fmt.Fprintf(f.writer, "  Message: %s\n", job.Message)
	}
	if job.SkipReason != "" {
		fmt.Fprintf(f.writer, "  Skip Reason: %s\n", job.SkipReason)
		fmt.Fprintln(f.writer)
		return
	}

	fmt.Fprintf(f.writer, "  Duration: %s\n", job.Duration.Round(time.Millisecond))

	if job.Status.IsFailure() && job.Output != "" {
		fmt.Fprintf(f.writer, "  %s:\n", f.colorize("Output (tail)", colorRed))
		for _, line := range tail(job.Output, outputTailLines) {
			fmt.Fprintf(f.writer, "    %s\n", line)
		}
		if job.Truncated {
			fmt.Fprintf(f.writer, "    %s\n", f.colorize("[output truncated]", colorYellow))
		}
	}

	fmt.Fprintln(f.writer)
}

// formatSummary formats the summary statistics.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(summary execution.ResultSummary) {
	fmt.Fprintln(f.writer, f.colorize("Summary:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	fmt.Fprintf(f.writer, "Jobs:         %d total\n", summary.TotalJobs)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.PassedJobs)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.FailedJobs)
	fmt.Fprintf(f.writer, "  %s Errors:   %d\n", f.colorize("⚠", colorYellow), summary.ErrorJobs)
	fmt.Fprintf(f.writer, "  %s Skipped:  %d\n", f.colorize("⊘", colorGray), summary.SkippedJobs)

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
}

// FormatPlan writes a resolved run plan.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) FormatPlan(plan *dto.RunPlan) error {
	concurrency := "ambient default"
	if plan.Sanitizer.TestConcurrency != nil {
		concurrency = fmt.Sprintf("%d", *plan.Sanitizer.TestConcurrency)
	}

	fmt.Fprintf(f.writer, "Sanitizer:        %s\n", f.colorize(plan.Sanitizer.Kind.DisplayName(), colorBold))
	fmt.Fprintf(f.writer, "Host OS:          %s\n", displayOS(plan.Platform))
	fmt.Fprintf(f.writer, "Target:           %s\n", plan.Platform.TargetTriple)
	fmt.Fprintf(f.writer, "Test concurrency: %s\n", concurrency)
	fmt.Fprintln(f.writer, "Environment:")
	for _, k := range plan.Command.EnvKeys() {
		fmt.Fprintf(f.writer, "  %s=%s\n", k, plan.Command.Env[k])
	}
	fmt.Fprintf(f.writer, "Command:          %s\n", f.colorize(strings.Join(plan.Command.Argv(), " "), colorCyan))
	return nil
}

func displayOS(p values.PlatformProfile) string {
	name := p.OSIdentifier
	if name == "" {
		name = "(unknown)"
	}
	if p.IsDefault() {
		return name + " (default target)"
	}
	return name
}

// getStatusInfo returns a symbol and color for the given status.
func (f *TableFormatter) getStatusInfo(status values.Status) (string, string) {
	switch status {
	case values.StatusPass:
		return "✓", colorGreen
	case values.StatusFail:
		return "✗", colorRed
	case values.StatusError:
		return "⚠", colorYellow
	case values.StatusSkipped:
		return "⊘", colorGray
	default:
		return "?", colorReset
	}
}

// tail returns the last n non-empty-trailing lines of s.
func tail(s string, n int) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/santest/internal/application/dto"
	"github.com/reglet-dev/santest/internal/domain/entities"
	"github.com/reglet-dev/santest/internal/domain/execution"
	"github.com/reglet-dev/santest/internal/infrastructure/system"
)

// HostInspector reports the identity of the host operating system.
type HostInspector interface {
	// OSIdentifier returns the uname-style OS name (e.g. "Darwin", "Linux").
	OSIdentifier(ctx context.Context) string
}

// Streams wires a child process to the caller's I/O. Nil writers discard
// output and a nil reader supplies no input.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessRunner spawns one external process and waits for it.
type ProcessRunner interface {
	// Run blocks until the process terminates and returns its exit status.
	// A non-nil error means the process could not be started or waited on;
	// a process that exits non-zero returns its status and a nil error.
	Run(ctx context.Context, cmd entities.Command, streams Streams) (int, error)
}

// Scrubber removes secrets from captured output before it is reported.
type Scrubber interface {
	ScrubString(input string) string
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// OutputFormatter formats pipeline results.
type OutputFormatter interface {
	Format(result *execution.PipelineResult) error
}

// PlanFormatter formats a resolved run plan.
type PlanFormatter interface {
	FormatPlan(plan *dto.RunPlan) error
}

// FormatterOptions configures output formatting.
type FormatterOptions struct {
	Indent  bool
	NoColor bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}

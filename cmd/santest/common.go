package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/reglet-dev/santest/internal/infrastructure/host"
	"github.com/spf13/cobra"
)

// CommonOptions contains the output and execution flags shared by the
// reporting commands (plan, ci, doctor).
type CommonOptions struct {
	Format     string
	OutputFile string
	formats    []string
	Timeout    time.Duration
	NoColor    bool
}

// DefaultCommonOptions returns sensible defaults for a command supporting formats.
func DefaultCommonOptions(formats ...string) CommonOptions {
	return CommonOptions{
		Format:  "table",
		formats: formats,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: "+strings.Join(opts.formats, ", "))
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false,
		"Disable colored table output")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0,
		"Global timeout for entire execution (0 to disable)")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if !slices.Contains(opts.formats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: %s)", opts.Format, strings.Join(opts.formats, ", "))
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	return nil
}

// writesToTerminal reports whether w is an interactive terminal.
func writesToTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && host.IsTerminal(f)
}

// OpenOutput returns the writer results go to and a function closing it.
func (opts *CommonOptions) OpenOutput(stdout io.Writer) (io.Writer, func(), error) {
	if opts.OutputFile == "" {
		return stdout, func() {}, nil
	}

	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(opts.OutputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	slog.Info("writing output", "file", opts.OutputFile, "format", opts.Format)

	return file, func() {
		_ = file.Close() // Best-effort cleanup
	}, nil
}

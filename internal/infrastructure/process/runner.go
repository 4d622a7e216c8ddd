// Package process spawns child processes for santest.
package process

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/reglet-dev/santest/internal/domain/entities"
)

// ExecRunner implements ports.ProcessRunner with os/exec.
type ExecRunner struct {
	logger  *slog.Logger
	environ func() []string
}

// NewExecRunner creates a runner that inherits the current environment.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{logger: logger, environ: os.Environ}
}

// Run starts cmd, waits for it and returns its exit status.
// The child inherits the ambient environment with cmd.Env layered on top.
// A child terminated by a signal reports 128+signal.
// The error is non-nil only when the process could not be started.
func (r *ExecRunner) Run(ctx context.Context, cmd entities.Command, streams ports.Streams) (int, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // command comes from santest's own configuration
	c.Env = mergeEnv(r.environ(), cmd.Env)
	c.Dir = cmd.Dir
	c.Stdin = streams.Stdin
	c.Stdout = streams.Stdout
	c.Stderr = streams.Stderr

	// Captured jobs run in their own process group so cancellation
	// reaches grandchildren (rustc, test binaries) too. Interactive
	// runs stay in the terminal's group and receive ^C directly.
	if streams.Stdin == nil {
		configureCommandProcess(c)
		c.Cancel = func() error {
			terminateCommandProcess(c)
			return nil
		}
	}

	r.logger.Debug("spawning process", "command", cmd.String(), "dir", cmd.Dir)

	if err := c.Start(); err != nil {
		return -1, err
	}

	err := c.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCode(exitErr), nil
	}

	// Wait failed for a reason other than the child's exit (I/O copy error).
	if c.ProcessState != nil {
		return c.ProcessState.ExitCode(), err
	}
	return -1, err
}

// mergeEnv overlays overrides on base. Later entries win for os/exec, but
// duplicates are removed so the child sees a single value per key.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}

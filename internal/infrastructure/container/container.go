// Package container provides dependency injection for the application.
package container

import (
	"context"
	"log/slog"
	"os"
	"sync"

	apperrors "github.com/reglet-dev/santest/internal/application/errors"
	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/reglet-dev/santest/internal/application/services"
	"github.com/reglet-dev/santest/internal/infrastructure/adapters"
	"github.com/reglet-dev/santest/internal/infrastructure/host"
	"github.com/reglet-dev/santest/internal/infrastructure/output"
	"github.com/reglet-dev/santest/internal/infrastructure/process"
	"github.com/reglet-dev/santest/internal/infrastructure/redaction"
	"github.com/reglet-dev/santest/internal/infrastructure/system"
	"github.com/reglet-dev/santest/internal/version"
)

// Container holds all application dependencies.
type Container struct {
	runner     ports.ProcessRunner
	formatters *output.FormatterFactory
	systemCfg  *system.Config
	logger     *slog.Logger

	sanitizedRun *services.SanitizedRunUseCase
	doctor       *services.ToolchainDoctorUseCase

	// The gitleaks rule set is only compiled when a pipeline runs.
	pipelineOnce sync.Once
	pipeline     *services.PipelineUseCase
	pipelineErr  error
}

// Options configure the container.
type Options struct {
	Logger *slog.Logger
	// Runner overrides the process runner; nil uses os/exec.
	Runner ports.ProcessRunner
	// Streams the sanitized run attaches to; zero value uses the process stdio.
	Streams    *ports.Streams
	ConfigPath string
	WorkDir    string
	// HostOS overrides both runtime detection and the config file.
	HostOS string
	// Channel overrides toolchain.channel from the config file.
	Channel string
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	systemCfg, err := adapters.NewSystemConfigAdapter(opts.WorkDir).LoadConfig(context.TODO(), opts.ConfigPath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("config file", "failed to load configuration", err)
	}

	hostOS := systemCfg.HostOS
	if opts.HostOS != "" {
		hostOS = opts.HostOS
	}
	inspector := host.NewRuntimeInspector(hostOS)

	runner := opts.Runner
	if runner == nil {
		runner = process.NewExecRunner(opts.Logger)
	}

	streams := ports.Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	if opts.Streams != nil {
		streams = *opts.Streams
	}

	if opts.Channel != "" {
		systemCfg.Toolchain.Channel = opts.Channel
	}
	toolchain := systemCfg.ToToolchain()

	return &Container{
		runner:     runner,
		formatters: output.NewFormatterFactory(),
		systemCfg:  systemCfg,
		logger:     opts.Logger,
		sanitizedRun: services.NewSanitizedRunUseCase(
			inspector,
			runner,
			toolchain,
			streams,
			opts.Logger,
		),
		doctor: services.NewToolchainDoctorUseCase(
			inspector,
			runner,
			toolchain,
			systemCfg.Toolchain.MinVersion,
			opts.Logger,
		),
	}, nil
}

// SanitizedRunUseCase returns the sanitized test run use case.
func (c *Container) SanitizedRunUseCase() *services.SanitizedRunUseCase {
	return c.sanitizedRun
}

// ToolchainDoctorUseCase returns the doctor use case.
func (c *Container) ToolchainDoctorUseCase() *services.ToolchainDoctorUseCase {
	return c.doctor
}

// PipelineUseCase returns the pipeline use case, building the redactor and
// pipeline definition on first use.
func (c *Container) PipelineUseCase() (*services.PipelineUseCase, error) {
	c.pipelineOnce.Do(func() {
		pipeline, err := c.systemCfg.ToPipeline()
		if err != nil {
			c.pipelineErr = apperrors.NewConfigurationError("pipeline", "invalid pipeline jobs", err)
			return
		}

		redactor, err := redaction.New(redaction.Config{
			Patterns:        c.systemCfg.Redaction.Patterns,
			HashMode:        c.systemCfg.Redaction.HashMode.Enabled,
			Salt:            c.systemCfg.Redaction.HashMode.Salt,
			DisableGitleaks: c.systemCfg.Redaction.DisableGitleaks,
		})
		if err != nil {
			c.pipelineErr = apperrors.NewConfigurationError("redaction", "invalid redaction patterns", err)
			return
		}

		c.pipeline = services.NewPipelineUseCase(pipeline, c.runner, redactor, version.Get().Version, c.logger)
	})
	return c.pipeline, c.pipelineErr
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() *output.FormatterFactory {
	return c.formatters
}

// SystemConfig returns the loaded configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

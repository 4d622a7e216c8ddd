// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reglet-dev/santest/internal/application/dto"
	apperrors "github.com/reglet-dev/santest/internal/application/errors"
	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/reglet-dev/santest/internal/domain/entities"
	"github.com/reglet-dev/santest/internal/domain/values"
)

// SanitizedRunUseCase runs the test suite once under a sanitizer:
// detect platform, select sanitizer profile, merge, execute, propagate.
// It depends only on ports and holds no state between runs.
type SanitizedRunUseCase struct {
	host      ports.HostInspector
	runner    ports.ProcessRunner
	streams   ports.Streams
	toolchain entities.Toolchain
	logger    *slog.Logger
}

// NewSanitizedRunUseCase creates a new sanitized run use case.
func NewSanitizedRunUseCase(
	host ports.HostInspector,
	runner ports.ProcessRunner,
	toolchain entities.Toolchain,
	streams ports.Streams,
	logger *slog.Logger,
) *SanitizedRunUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &SanitizedRunUseCase{
		host:      host,
		runner:    runner,
		streams:   streams,
		toolchain: toolchain,
		logger:    logger,
	}
}

// DetectPlatform reads the host identity and resolves its platform profile.
func (uc *SanitizedRunUseCase) DetectPlatform(ctx context.Context) values.PlatformProfile {
	platform := values.DetectPlatform(uc.host.OSIdentifier(ctx))
	if platform.IsDefault() {
		uc.logger.Debug("host not in platform table, using default target",
			"os", platform.OSIdentifier, "target", platform.TargetTriple)
	}
	return platform
}

// BuildSanitizerProfile returns the fixed profile for kind.
func (uc *SanitizedRunUseCase) BuildSanitizerProfile(kind values.SanitizerKind) (values.SanitizerProfile, error) {
	profile, err := values.BuildSanitizerProfile(kind)
	if err != nil {
		return values.SanitizerProfile{}, apperrors.NewValidationError("sanitizer", err.Error())
	}
	return profile, nil
}

// Plan resolves everything a run needs without spawning anything.
func (uc *SanitizedRunUseCase) Plan(ctx context.Context, req dto.SanitizedRunRequest) (*dto.RunPlan, error) {
	runID := req.Metadata.RunID
	if runID.IsZero() {
		runID = values.NewRunID()
	}

	platform := uc.DetectPlatform(ctx)

	profile, err := uc.BuildSanitizerProfile(req.Sanitizer)
	if err != nil {
		return nil, err
	}

	inv, err := entities.NewInvocation(platform, profile)
	if err != nil {
		return nil, apperrors.NewValidationError("invocation", err.Error())
	}

	tc := uc.toolchain
	tc.ExtraArgs = append(append([]string{}, tc.ExtraArgs...), req.ExtraArgs...)

	return &dto.RunPlan{
		RunID:     runID,
		Platform:  platform,
		Sanitizer: profile,
		Command:   inv.Command(tc),
	}, nil
}

// ExecutePlan spawns exactly one process for plan and returns its exit
// status unchanged. There is no retry and no remapping of the status.
func (uc *SanitizedRunUseCase) ExecutePlan(ctx context.Context, plan *dto.RunPlan) (int, error) {
	logger := uc.logger.With("run_id", plan.RunID.String())

	logger.Info("running tests under sanitizer",
		"sanitizer", plan.Sanitizer.Kind.DisplayName(),
		"target", plan.Platform.TargetTriple,
		"serialized", plan.Sanitizer.IsSerialized())
	logger.Debug("command", "argv", plan.Command.Argv(), "env", plan.Command.Env)

	code, err := uc.runner.Run(ctx, plan.Command, uc.streams)
	if err != nil {
		return code, apperrors.NewExecutionError(plan.Command.Name, "failed to run", err)
	}

	logger.Debug("process exited", "exit_code", code)
	return code, nil
}

// Execute runs the complete sanitized test workflow.
func (uc *SanitizedRunUseCase) Execute(ctx context.Context, req dto.SanitizedRunRequest) (*dto.SanitizedRunResponse, error) {
	startTime := time.Now()

	plan, err := uc.Plan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve run: %w", err)
	}

	code, err := uc.ExecutePlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	return &dto.SanitizedRunResponse{
		Plan:     *plan,
		ExitCode: code,
		Metadata: dto.ResponseMetadata{
			RunID:       plan.RunID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}, nil
}

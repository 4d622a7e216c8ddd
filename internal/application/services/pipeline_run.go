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
	"github.com/reglet-dev/santest/internal/domain/execution"
	"github.com/reglet-dev/santest/internal/domain/services"
	"github.com/reglet-dev/santest/internal/domain/values"
	"golang.org/x/sync/errgroup"
)

// PipelineUseCase runs the named jobs of a pipeline independently and in
// parallel, and reports pass/fail per job. A failing job never cancels the
// others and no job is retried.
type PipelineUseCase struct {
	pipeline *entities.Pipeline
	runner   ports.ProcessRunner
	scrubber ports.Scrubber
	logger   *slog.Logger
	version  string
}

// NewPipelineUseCase creates a new pipeline use case. scrubber may be nil.
func NewPipelineUseCase(
	pipeline *entities.Pipeline,
	runner ports.ProcessRunner,
	scrubber ports.Scrubber,
	version string,
	logger *slog.Logger,
) *PipelineUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &PipelineUseCase{
		pipeline: pipeline,
		runner:   runner,
		scrubber: scrubber,
		logger:   logger,
		version:  version,
	}
}

// Execute runs the selected jobs and returns their results.
func (uc *PipelineUseCase) Execute(ctx context.Context, req dto.PipelineRequest) (*dto.PipelineResponse, error) {
	startTime := time.Now()

	runID := req.Metadata.RunID
	if runID.IsZero() {
		runID = values.NewRunID()
	}
	logger := uc.logger.With("run_id", runID.String())

	if err := uc.pipeline.Validate(); err != nil {
		return nil, apperrors.NewValidationError("pipeline", err.Error())
	}

	selected, err := uc.pipeline.Select(req.Filters.Jobs)
	if err != nil {
		return nil, apperrors.NewValidationError("--jobs", err.Error())
	}

	filter, err := uc.buildFilter(req.Filters)
	if err != nil {
		return nil, err
	}

	result := execution.NewPipelineResult(runID)
	result.Version = uc.version

	g, gctx := errgroup.WithContext(ctx)
	limit := req.Execution.MaxParallel
	if limit <= 0 {
		limit = len(selected.Jobs)
	}
	g.SetLimit(limit)

	logger.Info("running pipeline", "jobs", selected.JobNames(), "max_parallel", limit)

	for i, job := range selected.Jobs {
		job := job
		index := i
		if original := indexOf(uc.pipeline, job.Name); original >= 0 {
			index = original
		}

		if ok, reason := filter.ShouldRun(job); !ok {
			logger.Debug("skipping job", "job", job.Name, "reason", reason)
			result.AddJobResult(execution.JobResult{
				Name:       job.Name,
				Command:    job.Command.String(),
				Status:     values.StatusSkipped,
				SkipReason: reason,
				Index:      index,
			})
			continue
		}

		g.Go(func() error {
			result.AddJobResult(uc.runJob(gctx, logger, job, index, req.Execution.OutputLimitBytes))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline execution failed: %w", err)
	}

	result.Finalize()

	logger.Info("pipeline complete",
		"duration", result.Duration,
		"total_jobs", result.Summary.TotalJobs,
		"passed", result.Summary.PassedJobs,
		"failed", result.Summary.FailedJobs,
		"errors", result.Summary.ErrorJobs,
		"skipped", result.Summary.SkippedJobs)

	return &dto.PipelineResponse{
		Result: result,
		Metadata: dto.ResponseMetadata{
			RunID:       runID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}, nil
}

// ValidateFilters checks filter options against the pipeline without
// running anything.
func (uc *PipelineUseCase) ValidateFilters(filters dto.FilterOptions) error {
	if _, err := uc.pipeline.Select(filters.Jobs); err != nil {
		return apperrors.NewValidationError("--jobs", err.Error())
	}
	for _, name := range filters.Skip {
		if uc.pipeline.GetJob(name) == nil {
			return apperrors.NewValidationError("--skip", fmt.Sprintf("references non-existent job: %s", name))
		}
	}
	_, err := uc.buildFilter(filters)
	return err
}

func (uc *PipelineUseCase) buildFilter(filters dto.FilterOptions) (*services.JobFilter, error) {
	filter := services.NewJobFilter().WithExcludedJobs(filters.Skip)
	if filters.FilterExpression != "" {
		program, err := services.CompileJobFilter(filters.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("--filter", err.Error())
		}
		filter.WithFilterExpression(program)
	}
	return filter, nil
}

// runJob runs one job and converts its outcome into a JobResult.
func (uc *PipelineUseCase) runJob(ctx context.Context, logger *slog.Logger, job entities.Job, index, outputLimit int) execution.JobResult {
	out := NewBoundedBuffer(outputLimit)
	start := time.Now()

	logger.Debug("starting job", "job", job.Name, "command", job.Command.String())

	code, err := uc.runner.Run(ctx, job.Command, ports.Streams{Stdout: out, Stderr: out})

	jr := execution.JobResult{
		Name:      job.Name,
		Command:   job.Command.String(),
		Index:     index,
		ExitCode:  code,
		Duration:  time.Since(start),
		Output:    uc.scrub(out.String()),
		Truncated: out.Truncated(),
	}

	if err != nil {
		jr.Status = values.StatusError
		jr.Message = uc.scrub(err.Error())
		logger.Warn("job could not run", "job", job.Name, "error", err)
		return jr
	}

	jr.Status = values.StatusFromExitCode(code)
	if jr.Status.IsFailure() {
		jr.Message = fmt.Sprintf("exit status %d", code)
	}

	logger.Info("job finished", "job", job.Name, "status", jr.Status, "exit_code", code, "duration", jr.Duration)
	return jr
}

func (uc *PipelineUseCase) scrub(s string) string {
	if uc.scrubber == nil {
		return s
	}
	return uc.scrubber.ScrubString(s)
}

func indexOf(p *entities.Pipeline, name string) int {
	for i, j := range p.Jobs {
		if j.Name == name {
			return i
		}
	}
	return -1
}

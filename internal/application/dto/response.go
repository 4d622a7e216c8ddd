package dto

import (
	"time"

	"github.com/reglet-dev/santest/internal/domain/entities"
	"github.com/reglet-dev/santest/internal/domain/execution"
	"github.com/reglet-dev/santest/internal/domain/values"
)

// RunPlan is the fully resolved configuration of a sanitized run.
type RunPlan struct {
	Platform  values.PlatformProfile  `json:"platform" yaml:"platform"`
	Sanitizer values.SanitizerProfile `json:"sanitizer" yaml:"sanitizer"`
	Command   entities.Command        `json:"command" yaml:"command"`
	RunID     values.RunID            `json:"run_id" yaml:"run_id"`
}

// SanitizedRunResponse contains the outcome of a sanitized run.
type SanitizedRunResponse struct {
	Plan RunPlan

	// ExitCode is the child's exit status, unchanged.
	ExitCode int

	Metadata ResponseMetadata
}

// PipelineResponse contains the result of a pipeline run.
type PipelineResponse struct {
	Result   *execution.PipelineResult
	Metadata ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// RunID from the original request
	RunID values.RunID

	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration
}

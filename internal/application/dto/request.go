// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/reglet-dev/santest/internal/domain/values"
)

// SanitizedRunRequest encapsulates all inputs needed for one sanitized test run.
type SanitizedRunRequest struct {
	// Sanitizer is fixed by the command that was invoked (tsan or asan).
	Sanitizer values.SanitizerKind

	// ExtraArgs are forwarded to cargo after the target selection.
	ExtraArgs []string

	Metadata RequestMetadata
}

// PipelineRequest encapsulates inputs for a local pipeline run.
type PipelineRequest struct {
	Filters   FilterOptions
	Execution ExecutionOptions
	Metadata  RequestMetadata
}

// FilterOptions defines filters for job selection.
type FilterOptions struct {
	FilterExpression string
	// Jobs restricts the run to these job names (exclusive).
	Jobs []string
	// Skip marks these jobs as skipped.
	Skip []string
}

// ExecutionOptions controls how pipeline jobs run.
type ExecutionOptions struct {
	// MaxParallel limits concurrent jobs (0 = one per job)
	MaxParallel int

	// OutputLimitBytes caps captured output per job (0 = default)
	OutputLimitBytes int
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RunID uniquely identifies this request; generated when zero.
	RunID values.RunID
}

// Package execution provides domain models for pipeline run results.
package execution

import (
	"sort"
	"sync"
	"time"

	"github.com/reglet-dev/santest/internal/domain/values"
)

// PipelineResult represents the complete result of running a pipeline.
type PipelineResult struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Version   string        `json:"santest_version,omitempty" yaml:"santest_version,omitempty"`
	Jobs      []JobResult   `json:"jobs" yaml:"jobs"`
	Summary   ResultSummary `json:"summary" yaml:"summary"`
	Duration  time.Duration `json:"duration_ms" yaml:"duration_ms"`
	mu        sync.Mutex
	RunID     values.RunID `json:"run_id" yaml:"run_id"`
}

// JobResult represents the result of running a single job.
type JobResult struct {
	Name       string        `json:"name" yaml:"name"`
	Command    string        `json:"command" yaml:"command"`
	Status     values.Status `json:"status" yaml:"status"`
	Message    string        `json:"message,omitempty" yaml:"message,omitempty"`
	SkipReason string        `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Output     string        `json:"output,omitempty" yaml:"output,omitempty"`
	Truncated  bool          `json:"output_truncated,omitempty" yaml:"output_truncated,omitempty"`
	ExitCode   int           `json:"exit_code" yaml:"exit_code"`
	Index      int           `json:"index" yaml:"index"`
	Duration   time.Duration `json:"duration_ms" yaml:"duration_ms"`
}

// ResultSummary provides aggregate statistics about the run.
type ResultSummary struct {
	TotalJobs   int `json:"total_jobs" yaml:"total_jobs"`
	PassedJobs  int `json:"passed_jobs" yaml:"passed_jobs"`
	FailedJobs  int `json:"failed_jobs" yaml:"failed_jobs"`
	ErrorJobs   int `json:"error_jobs" yaml:"error_jobs"`
	SkippedJobs int `json:"skipped_jobs" yaml:"skipped_jobs"`
}

// NewPipelineResult creates a new pipeline result.
func NewPipelineResult(id values.RunID) *PipelineResult {
	return &PipelineResult{
		RunID:     id,
		StartTime: time.Now(),
		Jobs:      make([]JobResult, 0),
	}
}

// AddJobResult adds a job result.
// Thread-safe for concurrent calls during parallel execution.
func (r *PipelineResult) AddJobResult(jr JobResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Jobs = append(r.Jobs, jr)
}

// GetJobResult returns a copy of the named job's result.
// Thread-safe.
func (r *PipelineResult) GetJobResult(name string) (JobResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, j := range r.Jobs {
		if j.Name == name {
			return j, true
		}
	}
	return JobResult{}, false
}

// Finalize completes the result and calculates the summary.
// Jobs are sorted by their original definition order for deterministic output.
func (r *PipelineResult) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	sort.Slice(r.Jobs, func(i, j int) bool {
		return r.Jobs[i].Index < r.Jobs[j].Index
	})

	r.Summary = ResultSummary{TotalJobs: len(r.Jobs)}
	for _, j := range r.Jobs {
		switch j.Status {
		case values.StatusPass:
			r.Summary.PassedJobs++
		case values.StatusFail:
			r.Summary.FailedJobs++
		case values.StatusError:
			r.Summary.ErrorJobs++
		case values.StatusSkipped:
			r.Summary.SkippedJobs++
		}
	}
}

// Status returns the aggregate status: the worst status of any job.
func (r *PipelineResult) Status() values.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make([]values.Status, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		statuses = append(statuses, j.Status)
	}
	return values.Worst(statuses...)
}

// Failed reports whether any job failed or could not be started.
func (r *PipelineResult) Failed() bool {
	return r.Status().IsFailure()
}

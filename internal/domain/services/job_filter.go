// Package services contains domain services that operate on pipeline jobs.
package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/reglet-dev/santest/internal/domain/entities"
)

// JobEnv defines the variables available during filter expression evaluation.
type JobEnv struct {
	Name    string   `expr:"name"`
	Command string   `expr:"command"`
	Args    []string `expr:"args"`
}

// CompileJobFilter compiles a --filter expression against JobEnv.
// The expression must evaluate to a boolean.
func CompileJobFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(JobEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid --filter expression: %w", err)
	}
	return program, nil
}

// JobSpecification defines a condition that a job must meet to run.
type JobSpecification interface {
	// IsSatisfiedBy returns true if satisfied, along with a reason if not.
	IsSatisfiedBy(job entities.Job) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []JobSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...JobSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	for _, spec := range s.specs {
		if satisfied, reason := spec.IsSatisfiedBy(job); !satisfied {
			return false, reason
		}
	}
	return true, ""
}

// ExcludedJobsSpecification excludes jobs by name.
type ExcludedJobsSpecification struct {
	names map[string]bool
}

// NewExcludedJobsSpecification creates a new ExcludedJobsSpecification.
func NewExcludedJobsSpecification(names map[string]bool) *ExcludedJobsSpecification {
	return &ExcludedJobsSpecification{names: names}
}

// IsSatisfiedBy checks that the job is not excluded.
func (s *ExcludedJobsSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	if s.names[job.Name] {
		return false, "excluded by --skip"
	}
	return true, ""
}

// ExpressionSpecification filters jobs using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the job.
func (s *ExpressionSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	env := JobEnv{
		Name:    job.Name,
		Command: job.Command.Name,
		Args:    job.Command.Args,
	}

	output, err := expr.Run(s.program, env)
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}
	if !result {
		return false, "excluded by --filter expression"
	}
	return true, ""
}

// JobFilter decides which jobs of a pipeline run.
type JobFilter struct {
	excluded      map[string]bool
	filterProgram *vm.Program
}

// NewJobFilter initializes a new empty filter.
func NewJobFilter() *JobFilter {
	return &JobFilter{excluded: make(map[string]bool)}
}

// WithExcludedJobs skips the named jobs.
func (f *JobFilter) WithExcludedJobs(names []string) *JobFilter {
	for _, n := range names {
		f.excluded[n] = true
	}
	return f
}

// WithFilterExpression applies a compiled expr program.
func (f *JobFilter) WithFilterExpression(program *vm.Program) *JobFilter {
	f.filterProgram = program
	return f
}

// ShouldRun evaluates whether a job matches the filter criteria.
// It returns true if the job should run, along with a reason if skipped.
func (f *JobFilter) ShouldRun(job entities.Job) (bool, string) {
	var specs []JobSpecification
	if len(f.excluded) > 0 {
		specs = append(specs, NewExcludedJobsSpecification(f.excluded))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}
	return NewAndSpecification(specs...).IsSatisfiedBy(job)
}

package entities

import (
	"fmt"
	"strings"
)

// Job is a named pipeline step that runs one fixed command.
//
// Entity Identity: Name uniquely identifies each job within a pipeline.
type Job struct {
	Name    string  `json:"name" yaml:"name"`
	Command Command `json:"command" yaml:"command"`
}

// Pipeline is an unordered set of independent jobs. Jobs have no ordering
// dependency and may run in any order or concurrently.
//
// Invariants Enforced:
// - Job names are unique and non-empty
// - Every job names a program to run
type Pipeline struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// DefaultPipeline returns the standard check, test, fmt and clippy jobs.
func DefaultPipeline(cargo string) *Pipeline {
	if cargo == "" {
		cargo = "cargo"
	}
	return &Pipeline{
		Jobs: []Job{
			{Name: "check", Command: Command{Name: cargo, Args: []string{"check"}}},
			{Name: "test", Command: Command{Name: cargo, Args: []string{"test"}}},
			{Name: "fmt", Command: Command{Name: cargo, Args: []string{"fmt", "--all", "--", "--check"}}},
			{Name: "clippy", Command: Command{Name: cargo, Args: []string{"clippy", "--", "-D", "warnings"}}},
		},
	}
}

// Validate checks the pipeline invariants.
func (p *Pipeline) Validate() error {
	if len(p.Jobs) == 0 {
		return fmt.Errorf("pipeline has no jobs")
	}

	seen := make(map[string]bool, len(p.Jobs))
	for i, job := range p.Jobs {
		name := strings.TrimSpace(job.Name)
		if name == "" {
			return fmt.Errorf("job %d: name is required", i)
		}
		if seen[name] {
			return &DuplicateJobError{Name: name}
		}
		seen[name] = true

		if strings.TrimSpace(job.Command.Name) == "" {
			return fmt.Errorf("job %s: command is required", name)
		}
	}
	return nil
}

// JobNames returns job names in definition order.
func (p *Pipeline) JobNames() []string {
	names := make([]string, 0, len(p.Jobs))
	for _, j := range p.Jobs {
		names = append(names, j.Name)
	}
	return names
}

// GetJob returns the job with the given name, or nil.
func (p *Pipeline) GetJob(name string) *Job {
	for i := range p.Jobs {
		if p.Jobs[i].Name == name {
			return &p.Jobs[i]
		}
	}
	return nil
}

// Select returns a pipeline holding only the named jobs, in definition
// order. An empty selection keeps every job.
func (p *Pipeline) Select(names []string) (*Pipeline, error) {
	if len(names) == 0 {
		return p, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		if p.GetJob(n) == nil {
			return nil, &UnknownJobError{Name: n, Known: p.JobNames()}
		}
		want[n] = true
	}

	selected := &Pipeline{Jobs: make([]Job, 0, len(want))}
	for _, j := range p.Jobs {
		if want[j.Name] {
			j.Command = j.Command.Clone()
			selected.Jobs = append(selected.Jobs, j)
		}
	}
	return selected, nil
}

// DuplicateJobError indicates two jobs share a name.
type DuplicateJobError struct {
	Name string
}

func (e *DuplicateJobError) Error() string {
	return fmt.Sprintf("duplicate job name: %s", e.Name)
}

// UnknownJobError indicates a selection referenced a job that does not exist.
type UnknownJobError struct {
	Name  string
	Known []string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job: %s (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

package services

import (
	"testing"

	"github.com/reglet-dev/santest/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileJobFilter(t *testing.T) {
	_, err := CompileJobFilter("name == 'test'")
	require.NoError(t, err)

	_, err = CompileJobFilter("invalid syntax ((")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --filter expression")

	// Non-boolean expressions are rejected at compile time.
	_, err = CompileJobFilter("name")
	assert.Error(t, err)

	// Unknown variables are rejected at compile time.
	_, err = CompileJobFilter("severity == 'high'")
	assert.Error(t, err)
}

func TestJobFilter_ShouldRun(t *testing.T) {
	pipeline := entities.DefaultPipeline("cargo")

	tests := []struct {
		name     string
		exclude  []string
		filter   string
		wantRun  []string
		reasonOf map[string]string
	}{
		{
			name:    "no filters",
			wantRun: []string{"check", "test", "fmt", "clippy"},
		},
		{
			name:     "exclude by name",
			exclude:  []string{"clippy"},
			wantRun:  []string{"check", "test", "fmt"},
			reasonOf: map[string]string{"clippy": "excluded by --skip"},
		},
		{
			name:     "expression on name",
			filter:   "name in ['check', 'test']",
			wantRun:  []string{"check", "test"},
			reasonOf: map[string]string{"fmt": "excluded by --filter expression"},
		},
		{
			name:    "expression on args",
			filter:  "'--check' in args",
			wantRun: []string{"fmt"},
		},
		{
			name:    "exclude and expression combine",
			exclude: []string{"check"},
			filter:  "command == 'cargo' && name != 'fmt'",
			wantRun: []string{"test", "clippy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewJobFilter().WithExcludedJobs(tt.exclude)
			if tt.filter != "" {
				program, err := CompileJobFilter(tt.filter)
				require.NoError(t, err)
				f.WithFilterExpression(program)
			}

			var ran []string
			for _, job := range pipeline.Jobs {
				ok, reason := f.ShouldRun(job)
				if ok {
					assert.Empty(t, reason)
					ran = append(ran, job.Name)
					continue
				}
				if want, has := tt.reasonOf[job.Name]; has {
					assert.Equal(t, want, reason)
				}
			}
			assert.Equal(t, tt.wantRun, ran)
		})
	}
}

package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPipeline(t *testing.T) {
	p := DefaultPipeline("")
	require.NoError(t, p.Validate())
	assert.Equal(t, []string{"check", "test", "fmt", "clippy"}, p.JobNames())

	for _, j := range p.Jobs {
		assert.Equal(t, "cargo", j.Command.Name)
	}
	assert.Equal(t, []string{"fmt", "--all", "--", "--check"}, p.GetJob("fmt").Command.Args)
	assert.Nil(t, p.GetJob("deploy"))
}

func TestPipeline_Validate(t *testing.T) {
	tests := []struct {
		name    string
		jobs    []Job
		wantErr string
	}{
		{
			name:    "empty",
			jobs:    nil,
			wantErr: "pipeline has no jobs",
		},
		{
			name:    "missing name",
			jobs:    []Job{{Command: Command{Name: "true"}}},
			wantErr: "name is required",
		},
		{
			name: "duplicate",
			jobs: []Job{
				{Name: "a", Command: Command{Name: "true"}},
				{Name: "a", Command: Command{Name: "false"}},
			},
			wantErr: "duplicate job name: a",
		},
		{
			name:    "missing command",
			jobs:    []Job{{Name: "a"}},
			wantErr: "job a: command is required",
		},
		{
			name: "valid",
			jobs: []Job{{Name: "a", Command: Command{Name: "true"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Pipeline{Jobs: tt.jobs}).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPipeline_Select(t *testing.T) {
	p := DefaultPipeline("cargo")

	all, err := p.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all.Jobs, 4)

	// Selection keeps definition order regardless of argument order.
	sub, err := p.Select([]string{"fmt", "check"})
	require.NoError(t, err)
	assert.Equal(t, []string{"check", "fmt"}, sub.JobNames())

	// Selected jobs do not share argument slices with the definition.
	sub.Jobs[0].Command.Args[0] = "changed"
	assert.NotEqual(t, "changed", p.GetJob("check").Command.Args[0])

	_, err = p.Select([]string{"deploy"})
	var unknown *UnknownJobError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "deploy", unknown.Name)
	assert.Contains(t, err.Error(), "check, test, fmt, clippy")
}

package output

import (
	"bytes"
	"testing"

	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterFactory_Create(t *testing.T) {
	factory := NewFormatterFactory()
	buf := &bytes.Buffer{}

	tests := []struct {
		name        string
		format      string
		options     ports.FormatterOptions
		wantErr     bool
		wantType    interface{}
		errContains string
	}{
		{
			name:     "table format",
			format:   "table",
			wantType: &TableFormatter{},
		},
		{
			name:     "json format",
			format:   "json",
			options:  ports.FormatterOptions{Indent: true},
			wantType: &JSONFormatter{},
		},
		{
			name:     "yaml format",
			format:   "yaml",
			wantType: &YAMLFormatter{},
		},
		{
			name:     "junit format",
			format:   "junit",
			wantType: &JUnitFormatter{},
		},
		{
			name:        "unknown format",
			format:      "sarif",
			wantErr:     true,
			errContains: "unknown format: sarif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter, err := factory.Create(tt.format, buf, tt.options)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, formatter)
		})
	}
}

func TestFormatterFactory_NoColor(t *testing.T) {
	factory := NewFormatterFactory()

	f, err := factory.Create("table", &bytes.Buffer{}, ports.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.False(t, f.(*TableFormatter).EnableColor)

	buf := &bytes.Buffer{}
	p, err := factory.CreatePlanFormatter("table", buf, ports.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.False(t, p.(*TableFormatter).EnableColor)

	require.NoError(t, p.FormatPlan(createTestPlan(t)))
	assert.Contains(t, buf.String(), "ThreadSanitizer")
	assert.NotContains(t, buf.String(), "\x1b[")

	p, err = factory.CreatePlanFormatter("table", &bytes.Buffer{}, ports.FormatterOptions{})
	require.NoError(t, err)
	assert.True(t, p.(*TableFormatter).EnableColor)
}

func TestFormatterFactory_CreatePlanFormatter(t *testing.T) {
	factory := NewFormatterFactory()

	for format, want := range map[string]interface{}{
		"table": &TableFormatter{},
		"json":  &JSONFormatter{},
		"yaml":  &YAMLFormatter{},
		"env":   &EnvFormatter{},
	} {
		f, err := factory.CreatePlanFormatter(format, &bytes.Buffer{}, ports.FormatterOptions{})
		require.NoError(t, err)
		assert.IsType(t, want, f)
	}

	_, err := factory.CreatePlanFormatter("junit", &bytes.Buffer{}, ports.FormatterOptions{})
	assert.ErrorContains(t, err, "unknown plan format: junit")
}

func TestFormatterFactory_SupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"table", "json", "yaml", "junit"}, NewFormatterFactory().SupportedFormats())
}

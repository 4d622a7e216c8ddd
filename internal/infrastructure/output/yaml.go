package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/santest/internal/application/dto"
	"github.com/reglet-dev/santest/internal/domain/execution"
)

// YAMLFormatter formats results as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the pipeline result as YAML.
func (f *YAMLFormatter) Format(result *execution.PipelineResult) error {
	return f.FormatValue(result)
}

// FormatPlan writes the run plan as YAML.
func (f *YAMLFormatter) FormatPlan(plan *dto.RunPlan) error {
	return f.FormatValue(plan)
}

// FormatValue writes any value as YAML.
func (f *YAMLFormatter) FormatValue(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}

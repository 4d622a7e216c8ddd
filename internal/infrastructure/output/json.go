package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/santest/internal/application/dto"
	"github.com/reglet-dev/santest/internal/domain/execution"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: indent}
}

// Format writes the pipeline result as JSON.
func (f *JSONFormatter) Format(result *execution.PipelineResult) error {
	return f.encode(result)
}

// FormatPlan writes the run plan as JSON.
func (f *JSONFormatter) FormatPlan(plan *dto.RunPlan) error {
	return f.encode(plan)
}

// FormatValue writes any value as JSON.
func (f *JSONFormatter) FormatValue(v any) error {
	return f.encode(v)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

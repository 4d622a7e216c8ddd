package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/santest/internal/application/dto"
	"github.com/reglet-dev/santest/internal/domain/entities"
)

// EnvFormatter writes a run plan as a POSIX shell snippet, so the exact
// invocation can be reproduced by hand or pasted into a CI step.
type EnvFormatter struct {
	writer io.Writer
}

// NewEnvFormatter creates a new env formatter.
func NewEnvFormatter(w io.Writer) *EnvFormatter {
	return &EnvFormatter{writer: w}
}

// FormatPlan writes export lines followed by the command.
func (f *EnvFormatter) FormatPlan(plan *dto.RunPlan) error {
	var b strings.Builder
	for _, k := range plan.Command.EnvKeys() {
		fmt.Fprintf(&b, "export %s=%s\n", k, entities.ShellQuote(plan.Command.Env[k]))
	}
	b.WriteString(strings.Join(plan.Command.QuotedArgv(), " "))
	b.WriteString("\n")

	_, err := io.WriteString(f.writer, b.String())
	return err
}

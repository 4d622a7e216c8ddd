// Package adapters provides infrastructure adapters that implement application ports.
// These adapters wrap existing infrastructure components to satisfy port interfaces.
package adapters

import (
	"context"
	"os"

	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/reglet-dev/santest/internal/infrastructure/host"
	"github.com/reglet-dev/santest/internal/infrastructure/output"
	"github.com/reglet-dev/santest/internal/infrastructure/process"
	"github.com/reglet-dev/santest/internal/infrastructure/redaction"
	"github.com/reglet-dev/santest/internal/infrastructure/system"
)

// Ensure adapters implement ports at compile time
var (
	_ ports.SystemConfigProvider   = (*SystemConfigAdapter)(nil)
	_ ports.HostInspector          = (*host.RuntimeInspector)(nil)
	_ ports.ProcessRunner          = (*process.ExecRunner)(nil)
	_ ports.Scrubber               = (*redaction.Redactor)(nil)
	_ ports.OutputFormatterFactory = (*output.FormatterFactory)(nil)
	_ ports.PlanFormatter          = (*output.EnvFormatter)(nil)
)

// SystemConfigAdapter adapts system config loader to port interface.
type SystemConfigAdapter struct {
	loader *system.ConfigLoader
	// workDir is where the project config file is looked up.
	workDir string
}

// NewSystemConfigAdapter creates a new system config adapter rooted at workDir.
// An empty workDir means the process working directory.
func NewSystemConfigAdapter(workDir string) *SystemConfigAdapter {
	return &SystemConfigAdapter{
		loader:  system.NewConfigLoader(),
		workDir: workDir,
	}
}

// LoadConfig loads configuration from path, or from the project/user
// default location when path is empty.
func (a *SystemConfigAdapter) LoadConfig(_ context.Context, path string) (*system.Config, error) {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = wd
		}
	}

	return a.loader.Load(system.ResolveConfigPath(path, dir))
}

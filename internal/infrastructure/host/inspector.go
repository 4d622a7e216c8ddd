// Package host reports the identity of the machine santest runs on.
package host

import (
	"context"
	"runtime"
	"strings"

	"github.com/reglet-dev/santest/internal/domain/values"
)

// RuntimeInspector implements ports.HostInspector from the Go runtime.
// A non-empty Override replaces the detected name, which lets a config file
// or SANTEST_HOST_OS force a target when cross-checking.
type RuntimeInspector struct {
	Override string
	goos     string
}

// NewRuntimeInspector creates an inspector for the running process.
func NewRuntimeInspector(override string) *RuntimeInspector {
	return &RuntimeInspector{Override: override, goos: runtime.GOOS}
}

// OSIdentifier returns the uname-style operating system name.
func (i *RuntimeInspector) OSIdentifier(_ context.Context) string {
	if o := strings.TrimSpace(i.Override); o != "" {
		return o
	}
	return values.UnameFromGOOS(i.goos)
}

package host

import (
	"context"
	"runtime"
	"testing"

	"github.com/reglet-dev/santest/internal/domain/values"
	"github.com/stretchr/testify/assert"
)

func TestRuntimeInspector_OSIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		override string
		want     string
	}{
		{name: "darwin", goos: "darwin", want: "Darwin"},
		{name: "linux", goos: "linux", want: "Linux"},
		{name: "override wins", goos: "linux", override: "Darwin", want: "Darwin"},
		{name: "blank override ignored", goos: "darwin", override: "  ", want: "Darwin"},
		{name: "unknown goos passes through", goos: "plan9", want: "plan9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &RuntimeInspector{Override: tt.override, goos: tt.goos}
			assert.Equal(t, tt.want, i.OSIdentifier(context.Background()))
		})
	}
}

func TestNewRuntimeInspector_UsesRuntime(t *testing.T) {
	i := NewRuntimeInspector("")
	assert.Equal(t, values.UnameFromGOOS(runtime.GOOS), i.OSIdentifier(context.Background()))
}

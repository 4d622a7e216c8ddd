package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonOptions_ApplyToContext(t *testing.T) {
	t.Parallel()

	t.Run("with timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 100 * time.Millisecond}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(100*time.Millisecond), deadline, 50*time.Millisecond)
	})

	t.Run("no timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 0}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		_, ok := ctx.Deadline()
		assert.False(t, ok)
	})
}

func TestCommonOptions_ValidateFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    CommonOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid options",
			opts: DefaultCommonOptions("table", "json"),
		},
		{
			name: "invalid format",
			opts: func() CommonOptions {
				o := DefaultCommonOptions("table", "json")
				o.Format = "junit"
				return o
			}(),
			wantErr: true,
			errMsg:  "invalid format: junit (valid: table, json)",
		},
		{
			name: "negative timeout",
			opts: func() CommonOptions {
				o := DefaultCommonOptions("table")
				o.Timeout = -time.Second
				return o
			}(),
			wantErr: true,
			errMsg:  "--timeout",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.ValidateFlags()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCommonOptions_OpenOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	opts := DefaultCommonOptions("table")
	w, closeFn, err := opts.OpenOutput(stdout)
	require.NoError(t, err)
	closeFn()
	assert.Same(t, stdout, w)

	opts.OutputFile = filepath.Join(t.TempDir(), "report.xml")
	w, closeFn, err = opts.OpenOutput(stdout)
	require.NoError(t, err)
	_, err = w.Write([]byte("<testsuites/>"))
	require.NoError(t, err)
	closeFn()

	data, err := os.ReadFile(opts.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "<testsuites/>", string(data))
}

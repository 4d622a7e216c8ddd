package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/reglet-dev/santest/internal/domain/entities"
)

type stubHost struct {
	os string
}

func (h stubHost) OSIdentifier(context.Context) string {
	return h.os
}

// stubRunner records every command and answers from a table keyed by the
// first argument after the program name.
type stubRunner struct {
	mu       sync.Mutex
	calls    []entities.Command
	codes    map[string]int
	errs     map[string]error
	output   map[string]string
	fallback int
}

func (r *stubRunner) Run(_ context.Context, cmd entities.Command, streams ports.Streams) (int, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cmd.Clone())
	r.mu.Unlock()

	key := ""
	if len(cmd.Args) > 0 {
		key = cmd.Args[0]
	}
	if out, ok := r.output[key]; ok && streams.Stdout != nil {
		_, _ = io.WriteString(streams.Stdout, out)
	}
	if err, ok := r.errs[key]; ok {
		return -1, err
	}
	if code, ok := r.codes[key]; ok {
		return code, nil
	}
	return r.fallback, nil
}

func (r *stubRunner) Calls() []entities.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Command(nil), r.calls...)
}

type stubScrubber struct {
	secret string
}

func (s stubScrubber) ScrubString(input string) string {
	if s.secret == "" {
		return input
	}
	return strings.ReplaceAll(input, s.secret, "[REDACTED]")
}

var errNotFound = fmt.Errorf("exec: \"cargo\": executable file not found in $PATH")

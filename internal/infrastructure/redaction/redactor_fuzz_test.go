package redaction

import (
	"strings"
	"testing"
	"time"
)

// FuzzRedactorScrubString feeds arbitrary job output through the regex
// patterns. A registry token appended after the output must always be
// scrubbed, and scrubbing must finish quickly.
func FuzzRedactorScrubString(f *testing.F) {
	for _, seed := range []string{
		"   Compiling serde v1.0.203",
		"CARGO_REGISTRY_TOKEN=",
		"error: failed to fetch https://x-access-token:ghp_",
		"WARNING: ThreadSanitizer: data race (pid=4242)\n  Write of size 8",
		"==4242==ERROR: AddressSanitizer: heap-use-after-free on address 0x602000000010",
		strings.Repeat("cio", 400),
	} {
		f.Add(seed)
	}

	r, err := New(Config{
		DisableGitleaks: true,
		Patterns:        []string{`CARGO_REGISTRY_TOKEN=\S+`},
	})
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, output string) {
		input := output + " " + cratesToken + "\n"

		done := make(chan string, 1)
		go func() { done <- r.ScrubString(input) }()

		select {
		case out := <-done:
			if !strings.HasSuffix(out, " [REDACTED]\n") {
				t.Errorf("token survived scrubbing: %q", out)
			}
		case <-time.After(time.Second):
			t.Errorf("scrubbing %d bytes timed out", len(input))
		}
	})
}

package values

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Environment variables consumed by the Rust toolchain and sanitizer runtimes.
const (
	EnvRustFlags    = "RUSTFLAGS"
	EnvRustDocFlags = "RUSTDOCFLAGS"
	EnvTestThreads  = "RUST_TEST_THREADS"
	EnvASanOptions  = "ASAN_OPTIONS"
	EnvTSanOptions  = "TSAN_OPTIONS"
)

// SanitizerKind identifies one of the supported sanitizers.
type SanitizerKind string

const (
	// SanitizerThread detects data races.
	SanitizerThread SanitizerKind = "thread"
	// SanitizerAddress detects memory-safety faults and leaks.
	SanitizerAddress SanitizerKind = "address"
)

// AllSanitizers lists every supported kind in a stable order.
func AllSanitizers() []SanitizerKind {
	return []SanitizerKind{SanitizerThread, SanitizerAddress}
}

// ParseSanitizerKind accepts the canonical kind names and their short aliases.
func ParseSanitizerKind(s string) (SanitizerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "thread", "tsan":
		return SanitizerThread, nil
	case "address", "asan":
		return SanitizerAddress, nil
	default:
		return "", fmt.Errorf("invalid sanitizer: %q (valid: thread, address)", s)
	}
}

// Validate returns an error if the kind is not a member of the closed set.
func (k SanitizerKind) Validate() error {
	switch k {
	case SanitizerThread, SanitizerAddress:
		return nil
	default:
		return fmt.Errorf("invalid sanitizer: %s", k)
	}
}

// ShortName returns the conventional abbreviation (tsan, asan).
func (k SanitizerKind) ShortName() string {
	switch k {
	case SanitizerThread:
		return "tsan"
	case SanitizerAddress:
		return "asan"
	default:
		return string(k)
	}
}

// DisplayName returns the human-readable sanitizer name.
func (k SanitizerKind) DisplayName() string {
	switch k {
	case SanitizerThread:
		return "ThreadSanitizer"
	case SanitizerAddress:
		return "AddressSanitizer"
	default:
		return string(k)
	}
}

// InstrumentationFlag returns the rustc flag enabling this sanitizer.
func (k SanitizerKind) InstrumentationFlag() string {
	return "-Zsanitizer=" + string(k)
}

// RuntimeOptionsVar returns the environment variable read by this
// sanitizer's runtime library.
func (k SanitizerKind) RuntimeOptionsVar() string {
	if k == SanitizerThread {
		return EnvTSanOptions
	}
	return EnvASanOptions
}

// SanitizerProfile is the fixed configuration applied for one sanitizer kind.
type SanitizerProfile struct {
	// TestConcurrency is nil when the ambient default applies.
	TestConcurrency *int              `json:"test_concurrency,omitempty" yaml:"test_concurrency,omitempty"`
	CompileFlags    map[string]string `json:"compile_flags" yaml:"compile_flags"`
	RuntimeFlags    map[string]string `json:"runtime_flags,omitempty" yaml:"runtime_flags,omitempty"`
	Kind            SanitizerKind     `json:"kind" yaml:"kind"`
}

type sanitizerTemplate struct {
	runtimeFlags    map[string]string
	testConcurrency int
}

// sanitizerTemplates holds the per-kind payload. A zero testConcurrency
// leaves the test harness at its default.
var sanitizerTemplates = map[SanitizerKind]sanitizerTemplate{
	// Races are only attributable when tests run one at a time.
	SanitizerThread: {
		testConcurrency: 1,
	},
	// Leak detection is requested on every platform even though only some
	// runtimes honor it.
	SanitizerAddress: {
		runtimeFlags: map[string]string{
			EnvASanOptions: "detect_leaks=1",
		},
	},
}

// BuildSanitizerProfile returns a fresh profile for kind. The returned maps
// are owned by the caller.
func BuildSanitizerProfile(kind SanitizerKind) (SanitizerProfile, error) {
	tmpl, ok := sanitizerTemplates[kind]
	if !ok {
		return SanitizerProfile{}, fmt.Errorf("invalid sanitizer: %s", kind)
	}

	flag := kind.InstrumentationFlag()
	profile := SanitizerProfile{
		Kind: kind,
		CompileFlags: map[string]string{
			EnvRustFlags:    flag,
			EnvRustDocFlags: flag,
		},
		RuntimeFlags: maps.Clone(tmpl.runtimeFlags),
	}
	if profile.RuntimeFlags == nil {
		profile.RuntimeFlags = map[string]string{}
	}

	if tmpl.testConcurrency > 0 {
		n := tmpl.testConcurrency
		profile.TestConcurrency = &n
	}

	return profile, nil
}

// MustBuildSanitizerProfile builds a profile or panics (for tests and
// statically known kinds).
func MustBuildSanitizerProfile(kind SanitizerKind) SanitizerProfile {
	p, err := BuildSanitizerProfile(kind)
	if err != nil {
		panic(err)
	}
	return p
}

// IsSerialized reports whether the profile forces single-threaded tests.
func (p SanitizerProfile) IsSerialized() bool {
	return p.TestConcurrency != nil && *p.TestConcurrency == 1
}

// Environment flattens the profile into environment overrides: compile
// flags, runtime flags and, when constrained, the test thread count.
func (p SanitizerProfile) Environment() map[string]string {
	env := make(map[string]string, len(p.CompileFlags)+len(p.RuntimeFlags)+1)
	maps.Copy(env, p.CompileFlags)
	maps.Copy(env, p.RuntimeFlags)
	if p.TestConcurrency != nil {
		env[EnvTestThreads] = strconv.Itoa(*p.TestConcurrency)
	}
	return env
}

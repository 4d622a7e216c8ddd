package entities

import (
	"fmt"
	"maps"
	"strings"

	"github.com/reglet-dev/santest/internal/domain/values"
)

// Toolchain describes how cargo is invoked.
type Toolchain struct {
	// Cargo is the cargo binary (name or path).
	Cargo string
	// Channel is the rustup channel selected with "+<channel>". Sanitizers
	// and -Zbuild-std require a nightly channel.
	Channel string
	// ExtraArgs are appended after the target selection.
	ExtraArgs []string
}

// DefaultToolchain returns the nightly cargo toolchain.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Cargo:   "cargo",
		Channel: "nightly",
	}
}

// Invocation pairs exactly one platform with exactly one sanitizer profile.
// It is built at the start of a run and discarded once the command is
// produced.
type Invocation struct {
	Platform  values.PlatformProfile
	Sanitizer values.SanitizerProfile
}

// NewInvocation creates an invocation and checks its invariants.
func NewInvocation(platform values.PlatformProfile, sanitizer values.SanitizerProfile) (*Invocation, error) {
	inv := &Invocation{
		Platform:  platform,
		Sanitizer: sanitizer,
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate enforces the invocation invariants: a target triple is selected
// and the environment carries flags of a single sanitizer only.
func (i *Invocation) Validate() error {
	if i.Platform.TargetTriple == "" {
		return fmt.Errorf("invocation has no target triple")
	}
	if err := i.Sanitizer.Kind.Validate(); err != nil {
		return err
	}
	return checkSingleSanitizer(i.Sanitizer.Kind, i.Environment())
}

// Environment merges the sanitizer overrides into one map.
func (i *Invocation) Environment() map[string]string {
	return i.Sanitizer.Environment()
}

// Command builds the cargo invocation for this run:
//
//	cargo +nightly test -Zbuild-std --target <triple> [extra...]
//
// The standard library is rebuilt so the instrumentation also covers it.
func (i *Invocation) Command(tc Toolchain) Command {
	cargo := tc.Cargo
	if cargo == "" {
		cargo = "cargo"
	}

	args := make([]string, 0, 5+len(tc.ExtraArgs))
	if tc.Channel != "" {
		args = append(args, "+"+tc.Channel)
	}
	args = append(args, "test", "-Zbuild-std", "--target", i.Platform.TargetTriple)
	args = append(args, tc.ExtraArgs...)

	return Command{
		Name: cargo,
		Args: args,
		Env:  maps.Clone(i.Environment()),
	}
}

// MixedSanitizerError reports an environment carrying flags of a sanitizer
// other than the one requested.
type MixedSanitizerError struct {
	Want  values.SanitizerKind
	Found values.SanitizerKind
	Key   string
}

func (e *MixedSanitizerError) Error() string {
	return fmt.Sprintf("environment for %s also configures %s via %s",
		e.Want.DisplayName(), e.Found.DisplayName(), e.Key)
}

// checkSingleSanitizer returns an error when env references any sanitizer
// other than kind.
func checkSingleSanitizer(kind values.SanitizerKind, env map[string]string) error {
	for _, other := range values.AllSanitizers() {
		if other == kind {
			continue
		}
		if _, ok := env[other.RuntimeOptionsVar()]; ok && other.RuntimeOptionsVar() != kind.RuntimeOptionsVar() {
			return &MixedSanitizerError{Want: kind, Found: other, Key: other.RuntimeOptionsVar()}
		}
		for key, value := range env {
			if strings.Contains(value, other.InstrumentationFlag()) {
				return &MixedSanitizerError{Want: kind, Found: other, Key: key}
			}
		}
	}
	return nil
}

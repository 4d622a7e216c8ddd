package values

import "strings"

// Target triples the orchestrator can select.
const (
	TripleDarwin = "x86_64-apple-darwin"
	TripleLinux  = "x86_64-unknown-linux-gnu"
)

// OSDarwin is the uname-style identifier reported by macOS hosts.
const OSDarwin = "Darwin"

// PlatformProfile pairs a host OS identifier with the target triple the
// toolchain compiles for on that host.
type PlatformProfile struct {
	OSIdentifier string `json:"os" yaml:"os"`
	TargetTriple string `json:"target_triple" yaml:"target_triple"`
}

// platformTriples maps recognized host identifiers to their target triple.
// Identifiers are compared exactly, matching uname(1) output.
var platformTriples = map[string]string{
	OSDarwin: TripleDarwin,
}

// DefaultTargetTriple is selected for every host identifier not present in
// the platform table, including an empty identifier.
const DefaultTargetTriple = TripleLinux

// DetectPlatform resolves the platform profile for a host identifier.
// It never fails: unrecognized identifiers fall back to DefaultTargetTriple.
func DetectPlatform(osIdentifier string) PlatformProfile {
	osIdentifier = strings.TrimSpace(osIdentifier)

	triple, ok := platformTriples[osIdentifier]
	if !ok {
		triple = DefaultTargetTriple
	}

	return PlatformProfile{
		OSIdentifier: osIdentifier,
		TargetTriple: triple,
	}
}

// IsDefault reports whether the profile was resolved through the fallback.
func (p PlatformProfile) IsDefault() bool {
	_, ok := platformTriples[p.OSIdentifier]
	return !ok
}

// UnameFromGOOS converts a Go GOOS value into the identifier uname(1) prints
// on that system. Unknown values are returned unchanged.
func UnameFromGOOS(goos string) string {
	switch goos {
	case "darwin":
		return OSDarwin
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	case "windows":
		return "Windows_NT"
	default:
		return goos
	}
}

package entities

import (
	"testing"

	"github.com/reglet-dev/santest/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvocation_DarwinThread(t *testing.T) {
	inv, err := NewInvocation(
		values.DetectPlatform("Darwin"),
		values.MustBuildSanitizerProfile(values.SanitizerThread),
	)
	require.NoError(t, err)

	cmd := inv.Command(DefaultToolchain())
	assert.Equal(t, "cargo", cmd.Name)
	assert.Equal(t, []string{"+nightly", "test", "-Zbuild-std", "--target", "x86_64-apple-darwin"}, cmd.Args)
	assert.Equal(t, "1", cmd.Env[values.EnvTestThreads])
	assert.Equal(t, "-Zsanitizer=thread", cmd.Env[values.EnvRustFlags])
	assert.Equal(t, "-Zsanitizer=thread", cmd.Env[values.EnvRustDocFlags])
}

func TestNewInvocation_LinuxAddress(t *testing.T) {
	inv, err := NewInvocation(
		values.DetectPlatform("Linux"),
		values.MustBuildSanitizerProfile(values.SanitizerAddress),
	)
	require.NoError(t, err)

	cmd := inv.Command(DefaultToolchain())
	assert.Contains(t, cmd.Args, "x86_64-unknown-linux-gnu")
	assert.NotContains(t, cmd.Env, values.EnvTestThreads)
	assert.Equal(t, "detect_leaks=1", cmd.Env[values.EnvASanOptions])
	assert.Equal(t, "-Zsanitizer=address", cmd.Env[values.EnvRustFlags])
}

func TestInvocation_Command_Toolchain(t *testing.T) {
	inv, err := NewInvocation(
		values.DetectPlatform("Linux"),
		values.MustBuildSanitizerProfile(values.SanitizerAddress),
	)
	require.NoError(t, err)

	cmd := inv.Command(Toolchain{
		Cargo:     "/opt/rust/bin/cargo",
		Channel:   "nightly-2024-06-01",
		ExtraArgs: []string{"--workspace", "--", "--nocapture"},
	})
	assert.Equal(t, "/opt/rust/bin/cargo", cmd.Name)
	assert.Equal(t, []string{
		"+nightly-2024-06-01", "test", "-Zbuild-std", "--target", "x86_64-unknown-linux-gnu",
		"--workspace", "--", "--nocapture",
	}, cmd.Args)

	// Empty toolchain falls back to plain cargo with no channel override.
	cmd = inv.Command(Toolchain{})
	assert.Equal(t, "cargo", cmd.Name)
	assert.Equal(t, "test", cmd.Args[0])
}

func TestInvocation_CommandEnvIsDetached(t *testing.T) {
	inv, err := NewInvocation(
		values.DetectPlatform("Linux"),
		values.MustBuildSanitizerProfile(values.SanitizerThread),
	)
	require.NoError(t, err)

	cmd := inv.Command(DefaultToolchain())
	cmd.Env[values.EnvRustFlags] = "changed"
	assert.Equal(t, "-Zsanitizer=thread", inv.Environment()[values.EnvRustFlags])
}

func TestInvocation_Validate_RejectsMixedFlags(t *testing.T) {
	tsan := values.MustBuildSanitizerProfile(values.SanitizerThread)
	tsan.RuntimeFlags[values.EnvASanOptions] = "detect_leaks=1"

	_, err := NewInvocation(values.DetectPlatform("Linux"), tsan)
	require.Error(t, err)
	var mixed *MixedSanitizerError
	require.ErrorAs(t, err, &mixed)
	assert.Equal(t, values.SanitizerThread, mixed.Want)
	assert.Equal(t, values.SanitizerAddress, mixed.Found)

	asan := values.MustBuildSanitizerProfile(values.SanitizerAddress)
	asan.CompileFlags[values.EnvRustDocFlags] = "-Zsanitizer=thread"
	_, err = NewInvocation(values.DetectPlatform("Linux"), asan)
	require.ErrorAs(t, err, &mixed)
	assert.Equal(t, values.EnvRustDocFlags, mixed.Key)
}

func TestInvocation_Validate_RequiresTriple(t *testing.T) {
	_, err := NewInvocation(
		values.PlatformProfile{OSIdentifier: "Linux"},
		values.MustBuildSanitizerProfile(values.SanitizerThread),
	)
	assert.Error(t, err)
}

func TestCommand_String(t *testing.T) {
	cmd := Command{
		Name: "cargo",
		Args: []string{"test", "--", "name with space"},
		Env:  map[string]string{"RUSTFLAGS": "-Zsanitizer=thread", "A": "1"},
	}
	assert.Equal(t, "A=1 RUSTFLAGS=-Zsanitizer=thread cargo test -- 'name with space'", cmd.String())
	assert.Equal(t, []string{"cargo", "test", "--", "name with space"}, cmd.Argv())

	assert.Equal(t, []string{"cargo", "test", "--", "'name with space'"}, cmd.QuotedArgv())
	assert.Equal(t, "name with space", cmd.Args[2], "quoting leaves Args untouched")

	clone := cmd.Clone()
	clone.Args[0] = "build"
	clone.Env["A"] = "2"
	assert.Equal(t, "test", cmd.Args[0])
	assert.Equal(t, "1", cmd.Env["A"])
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", "''"},
		{"a b", "'a b'"},
		{"it's", `'it'\''s'`},
		{"$HOME", "'$HOME'"},
		{"-Zsanitizer=thread", "-Zsanitizer=thread"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShellQuote(tt.in), "input %q", tt.in)
	}
}

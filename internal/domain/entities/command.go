// Package entities contains domain entities for santest: the sanitized
// invocation and the pipeline of named jobs.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// Command is a single external process to spawn.
// Env holds overrides layered on top of the ambient environment.
type Command struct {
	Env  map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Name string            `json:"name" yaml:"name"`
	Dir  string            `json:"dir,omitempty" yaml:"dir,omitempty"`
	Args []string          `json:"args,omitempty" yaml:"args,omitempty"`
}

// Argv returns the program name followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command the way it would be typed in a shell,
// environment overrides first and sorted by key.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	for _, k := range c.EnvKeys() {
		parts = append(parts, k+"="+ShellQuote(c.Env[k]))
	}
	parts = append(parts, c.QuotedArgv()...)
	return strings.Join(parts, " ")
}

// QuotedArgv returns Argv with every element quoted for a POSIX shell.
func (c Command) QuotedArgv() []string {
	argv := c.Argv()
	for i, a := range argv {
		argv[i] = ShellQuote(a)
	}
	return argv
}

// EnvKeys returns the override keys in sorted order.
func (c Command) EnvKeys() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (c Command) Clone() Command {
	return Command{
		Env:  maps.Clone(c.Env),
		Name: c.Name,
		Dir:  c.Dir,
		Args: slices.Clone(c.Args),
	}
}

// ShellQuote single-quotes s when a POSIX shell would otherwise split or
// expand it.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;!#~") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}

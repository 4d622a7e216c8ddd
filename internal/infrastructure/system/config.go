// Package system provides infrastructure for santest's configuration file.
// The file is looked up as .santest.yaml in the working directory, falling
// back to ~/.santest/config.yaml.
package system

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/santest/internal/domain/entities"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ProjectConfigFile is the per-project configuration file name.
const ProjectConfigFile = ".santest.yaml"

//go:embed config.schema.json
var configSchema []byte

// Config represents the santest configuration file.
type Config struct {
	Toolchain ToolchainConfig `yaml:"toolchain"`
	HostOS    string          `yaml:"host_os,omitempty"`
	CargoArgs []string        `yaml:"cargo_args,omitempty"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Redaction RedactionConfig `yaml:"redaction"`
}

// ToolchainConfig selects the cargo binary and release channel.
type ToolchainConfig struct {
	Channel string `yaml:"channel"`
	Cargo   string `yaml:"cargo"`
	// MinVersion is a semver constraint checked by `santest doctor`.
	MinVersion string `yaml:"min_version,omitempty"`
}

// PipelineConfig configures `santest ci`.
type PipelineConfig struct {
	Jobs []JobConfig `yaml:"jobs,omitempty"`
	// MaxParallel bounds concurrently running jobs; 0 runs all at once.
	MaxParallel      int `yaml:"max_parallel"`
	OutputLimitBytes int `yaml:"output_limit_bytes,omitempty"`
}

// JobConfig declares one pipeline job.
type JobConfig struct {
	Env     map[string]string `yaml:"env,omitempty"`
	Name    string            `yaml:"name"`
	Command string            `yaml:"command"`
	Dir     string            `yaml:"dir,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
}

// RedactionConfig configures how captured job output is scrubbed.
type RedactionConfig struct {
	HashMode        HashModeConfig `yaml:"hash_mode"`
	Patterns        []string       `yaml:"patterns,omitempty"`
	DisableGitleaks bool           `yaml:"disable_gitleaks,omitempty"`
}

// HashModeConfig controls hash-based redaction.
type HashModeConfig struct {
	Salt    string `yaml:"salt,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

// ConfigLoader loads configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with defaults for all fields.
// This is used when no config file exists.
func DefaultConfig() *Config {
	tc := entities.DefaultToolchain()
	return &Config{
		Toolchain: ToolchainConfig{
			Channel: tc.Channel,
			Cargo:   tc.Cargo,
		},
		CargoArgs: []string{},
		Pipeline: PipelineConfig{
			MaxParallel: 0,
		},
		Redaction: RedactionConfig{
			Patterns: []string{},
		},
	}
}

// ResolveConfigPath returns explicit when set, the project file when it
// exists in dir, and otherwise the per-user file.
func ResolveConfigPath(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}

	project := filepath.Join(dir, ProjectConfigFile)
	if _, err := os.Stat(project); err == nil {
		return project
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return project
	}
	return filepath.Join(home, ".santest", "config.yaml")
}

// Load loads the configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is the user-selected config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse validates a YAML document against the config schema and decodes it.
// Fields left out of the document keep their defaults. An empty document,
// one holding only comments, or an explicit null yields DefaultConfig().
func Parse(data []byte) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultConfig(), nil
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return DefaultConfig(), nil
	}

	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(c, yaml.Indent(2))
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Toolchain.Channel == "" {
		c.Toolchain.Channel = def.Toolchain.Channel
	}
	if c.Toolchain.Cargo == "" {
		c.Toolchain.Cargo = def.Toolchain.Cargo
	}
	if c.CargoArgs == nil {
		c.CargoArgs = []string{}
	}
	if c.Redaction.Patterns == nil {
		c.Redaction.Patterns = []string{}
	}
}

// ToToolchain converts the toolchain section to the domain type.
func (c *Config) ToToolchain() entities.Toolchain {
	return entities.Toolchain{
		Cargo:     c.Toolchain.Cargo,
		Channel:   strings.TrimPrefix(c.Toolchain.Channel, "+"),
		ExtraArgs: append([]string(nil), c.CargoArgs...),
	}
}

// ToPipeline converts the pipeline section to the domain type. With no
// configured jobs the default check/test/fmt/clippy pipeline is used.
func (c *Config) ToPipeline() (*entities.Pipeline, error) {
	if len(c.Pipeline.Jobs) == 0 {
		return entities.DefaultPipeline(c.Toolchain.Cargo), nil
	}

	p := &entities.Pipeline{Jobs: make([]entities.Job, 0, len(c.Pipeline.Jobs))}
	for _, j := range c.Pipeline.Jobs {
		p.Jobs = append(p.Jobs, entities.Job{
			Name: j.Name,
			Command: entities.Command{
				Name: j.Command,
				Args: append([]string(nil), j.Args...),
				Env:  j.Env,
				Dir:  j.Dir,
			},
		})
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	return p, nil
}

// decodeDocument converts the YAML document to the JSON value model the
// schema validator works on. A null document decodes to nil.
func decodeDocument(data []byte) (any, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return doc, nil
}

func validateSchema(doc any) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(configSchema)); err != nil {
		return fmt.Errorf("failed to add config schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// formatSchemaValidationError flattens a JSON Schema error tree into one
// message per failing location.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("config validation failed")
	}

	return fmt.Errorf("config validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}

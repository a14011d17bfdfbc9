// Package config loads the engine's YAML-backed settings: how many
// diagnostics to report, which wire format to render them in, and
// optionally a Schema described as data (spec.md §9 Design Notes:
// "whether that builder is populated from source code, a config file, or
// a DSL is not this spec's concern").
//
// Shaped after the teacher's ValidatorConfig: a defaulted struct,
// LoadConfig/SaveConfig round-tripping it through YAML, and a Validate
// pass that rejects settings the rest of the program can't act on.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xreflint/xreflint/schema"
)

// EngineConfig is the complete engine configuration.
type EngineConfig struct {
	Engine EngineSettings     `yaml:"engine"`
	Schema *schema.SchemaSpec `yaml:"schema,omitempty"`
}

// EngineSettings holds the CLI-facing knobs spec.md §6 describes.
type EngineSettings struct {
	// MaxDiagnostics caps how many diagnostics are reported; 0 means
	// unlimited.
	MaxDiagnostics int `yaml:"maxDiagnostics"`
	// Format is the diagnostic rendering: "text" or "json".
	Format string `yaml:"format"`
	// Verbose enables extra structured logging during a run.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the engine's default settings: no schema attached
// (the caller must supply one via --schema or LoadFromYAML directly),
// unlimited diagnostics, text output.
func DefaultConfig() *EngineConfig {
	return &EngineConfig{
		Engine: EngineSettings{
			MaxDiagnostics: 0,
			Format:         "text",
			Verbose:        false,
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// DefaultConfig when configPath is empty.
func LoadConfig(configPath string) (*EngineConfig, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if !filepath.IsAbs(configPath) && strings.Contains(configPath, "..") {
		return nil, fmt.Errorf("invalid config file path: %s", configPath)
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // path is validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to configPath as YAML, creating
// parent directories as needed.
func (c *EngineConfig) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// Validate rejects settings the rest of the program cannot act on.
func (c *EngineConfig) Validate() error {
	if c.Engine.MaxDiagnostics < 0 {
		return fmt.Errorf("maxDiagnostics cannot be negative")
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Engine.Format] {
		return fmt.Errorf("invalid output format: %s (valid: text, json)", c.Engine.Format)
	}

	return nil
}

// CompiledSchema compiles the configuration's embedded Schema, if any.
func (c *EngineConfig) CompiledSchema() (schema.Schema, bool, error) {
	if c.Schema == nil {
		return schema.Schema{}, false, nil
	}
	sch, err := schema.Compile(*c.Schema)
	if err != nil {
		return schema.Schema{}, false, err
	}
	return sch, true, nil
}

// GenerateDefaultConfigFile writes the default configuration to configPath.
func GenerateDefaultConfigFile(configPath string) error {
	return DefaultConfig().SaveConfig(configPath)
}

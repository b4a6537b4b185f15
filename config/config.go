// Package config holds the user-facing configuration of a simulated system
// and resolves it into concrete, defaulted parameters.
//
// A configuration is layered. Each layer only sets the fields it knows about
// and leaves the rest nil. From the lowest to the highest precedence the
// layers are the built-in defaults, a YAML file, SIMTOPO_* environment
// variables (optionally seeded from a .env file) and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a partial configuration. A nil field is absent and resolves to
// its default.
type Config struct {
	CPUModel     *string  `yaml:"cpu_model"`
	Clock        *string  `yaml:"clock"`
	L1ISize      *string  `yaml:"l1i_size"`
	L1DSize      *string  `yaml:"l1d_size"`
	L2Size       *string  `yaml:"l2_size"`
	MemoryModel  *string  `yaml:"memory_model"`
	MemorySize   *string  `yaml:"memory_size"`
	BinaryPath   *string  `yaml:"binary_path"`
	Args         []string `yaml:"args"`
	CacheEnabled *bool    `yaml:"cache_enabled"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects the level, format and destination of log output.
// Empty fields take the defaults of package logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// String returns a pointer to s. It helps to fill optional fields.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Load reads a YAML configuration file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{
			Field:  "config",
			Raw:    path,
			Reason: "cannot read file",
			Err:    err,
		}
	}

	return Parse(data)
}

// Parse decodes a YAML configuration document. An empty document is an
// all-default configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{
			Field:  "config",
			Reason: "malformed YAML",
			Err:    err,
		}
	}

	return cfg, nil
}

// Merge returns a copy of base with every non-nil field of override applied
// on top of it. Neither argument is modified.
func Merge(base, override *Config) *Config {
	merged := &Config{}
	if base != nil {
		*merged = *base
		merged.Args = append([]string(nil), base.Args...)
	}

	if override == nil {
		return merged
	}

	mergeString(&merged.CPUModel, override.CPUModel)
	mergeString(&merged.Clock, override.Clock)
	mergeString(&merged.L1ISize, override.L1ISize)
	mergeString(&merged.L1DSize, override.L1DSize)
	mergeString(&merged.L2Size, override.L2Size)
	mergeString(&merged.MemoryModel, override.MemoryModel)
	mergeString(&merged.MemorySize, override.MemorySize)
	mergeString(&merged.BinaryPath, override.BinaryPath)

	if override.Args != nil {
		merged.Args = append([]string(nil), override.Args...)
	}

	if override.CacheEnabled != nil {
		merged.CacheEnabled = Bool(*override.CacheEnabled)
	}

	if override.Logging.Level != "" {
		merged.Logging.Level = override.Logging.Level
	}

	if override.Logging.Format != "" {
		merged.Logging.Format = override.Logging.Format
	}

	if override.Logging.Output != "" {
		merged.Logging.Output = override.Logging.Output
	}

	return merged
}

func mergeString(dst **string, src *string) {
	if src != nil {
		*dst = String(*src)
	}
}

// String renders the configuration as YAML, mostly for debugging.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}

	return string(out)
}

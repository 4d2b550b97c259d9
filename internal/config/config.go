// Package config handles mapper-generator project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "mapper.yaml"

// Config represents the mapper.yaml project configuration file.
type Config struct {
	Version int `yaml:"version"`

	// Packages are Go package patterns scanned for comment directives.
	Packages []string `yaml:"packages,omitempty"`
	// Directives are YAML directive files.
	Directives []string `yaml:"directives,omitempty"`

	// Output configures code generation.
	Output Output `yaml:"output,omitempty"`

	// Parallelism bounds concurrent type resolution (<= 0 = unlimited).
	Parallelism int `yaml:"parallelism,omitempty"`
}

// Output configures generated files.
type Output struct {
	// Package overrides the package clause of generated files.
	Package string `yaml:"package,omitempty"`
	// Dir receives every generated file; empty writes next to each type.
	Dir string `yaml:"dir,omitempty"`
	// Suffix is the generated file name suffix.
	Suffix string `yaml:"suffix,omitempty"`
	// Comments toggles explanatory comments in generated code.
	Comments *bool `yaml:"comments,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Parallelism: 4,
		Output: Output{
			Suffix: "_mapper.go",
		},
	}
}

// Load reads a Config from a file path. Missing values take their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.resolvePaths(filepath.Dir(path))

	return cfg, nil
}

// LoadOrDefault loads path, or returns Default when path is the default file
// and does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) && filepath.Base(path) == DefaultFile {
		return Default(), nil
	}

	return cfg, err
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)

	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}

	if c.Parallelism < 0 {
		return errors.New("parallelism must not be negative")
	}

	for _, d := range c.Directives {
		if d == "" {
			return errors.New("directive file path must not be empty")
		}
	}

	return nil
}

// HasSources reports whether anything is configured to be loaded.
func (c *Config) HasSources() bool {
	return len(c.Packages) > 0 || len(c.Directives) > 0
}

// GenerateComments reports whether generated code carries comments (default true).
func (o Output) GenerateComments() bool {
	return o.Comments == nil || *o.Comments
}

// resolvePaths makes relative directive files and output dir relative to base.
// Package patterns are left alone: they are resolved by the go tool.
func (c *Config) resolvePaths(base string) {
	for i, d := range c.Directives {
		if d != "" && !filepath.IsAbs(d) {
			c.Directives[i] = filepath.Join(base, d)
		}
	}

	if c.Output.Dir != "" && !filepath.IsAbs(c.Output.Dir) {
		c.Output.Dir = filepath.Join(base, c.Output.Dir)
	}
}

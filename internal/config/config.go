package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Deprecation notice modes.
const (
	DeprecationsWarn   = "warn"
	DeprecationsSilent = "silent"
)

// Config represents the complete configuration.
type Config struct {
	TypeMappings map[string]string `yaml:"typeMappings" json:"typeMappings"`
	Options      Options           `yaml:"options" json:"options"`
}

// Options represents generation options.
type Options struct {
	PerClass       bool     `yaml:"perClass" json:"perClass"`
	ExportedOnly   bool     `yaml:"exportedOnly" json:"exportedOnly"`
	IncludeClasses []string `yaml:"includeClasses" json:"includeClasses"`
	ExcludeClasses []string `yaml:"excludeClasses" json:"excludeClasses"`
	Inherit        *bool    `yaml:"inherit" json:"inherit"`
	Deprecations   string   `yaml:"deprecations" json:"deprecations"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		TypeMappings: DefaultTypeMappings(),
		Options:      DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	// Keys missing from the file keep the current value
	loaded := Config{Options: Options{ExportedOnly: c.Options.ExportedOnly}}
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	if err := loaded.Options.validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	c.merge(&loaded)

	return nil
}

func (o Options) validate() error {
	switch o.Deprecations {
	case "", DeprecationsWarn, DeprecationsSilent:
		return nil
	}
	return fmt.Errorf("options.deprecations must be %q or %q, got %q", DeprecationsWarn, DeprecationsSilent, o.Deprecations)
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	// Loaded mappings override defaults
	for k, v := range loaded.TypeMappings {
		c.TypeMappings[k] = v
	}

	if loaded.Options.PerClass {
		c.Options.PerClass = true
	}
	c.Options.ExportedOnly = loaded.Options.ExportedOnly
	c.Options.IncludeClasses = loaded.Options.IncludeClasses
	c.Options.ExcludeClasses = loaded.Options.ExcludeClasses
	if loaded.Options.Inherit != nil {
		c.Options.Inherit = loaded.Options.Inherit
	}
	if loaded.Options.Deprecations != "" {
		c.Options.Deprecations = loaded.Options.Deprecations
	}
}

// MapType maps a type name to its display name using the configured mappings.
func (c *Config) MapType(name string) string {
	if mapped, ok := c.TypeMappings[name]; ok {
		return mapped
	}
	return name
}

// ShouldInherit reports whether method inheritance is resolved before generation.
func (c *Config) ShouldInherit() bool {
	return c.Options.Inherit == nil || *c.Options.Inherit
}

// SetInherit overrides the inherit option.
func (c *Config) SetInherit(inherit bool) {
	c.Options.Inherit = &inherit
}

// ShouldIncludeClass checks if a class should be documented based on config.
func (c *Config) ShouldIncludeClass(name string, isExported bool) bool {
	// Check exported only filter
	if c.Options.ExportedOnly && !isExported {
		return false
	}

	// Check include list (if specified, class must be in it)
	if len(c.Options.IncludeClasses) > 0 {
		found := false
		for _, n := range c.Options.IncludeClasses {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Check exclude list
	for _, n := range c.Options.ExcludeClasses {
		if n == name {
			return false
		}
	}

	return true
}

// Package config loads macperm monitoring settings from YAML or TOML files
// and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tmc/macperm"
	"github.com/tmc/macperm/internal/system"
)

// DefaultThreshold is the number of consecutive failed checks before the
// panel is shown in interval mode.
const DefaultThreshold = 3

// Config is the on-disk configuration for the macperm command.
type Config struct {
	AppName      string       `yaml:"app_name" toml:"app_name" json:"app_name"`
	Interval     int          `yaml:"interval" toml:"interval" json:"interval"`
	Threshold    int          `yaml:"failure_threshold" toml:"failure_threshold" json:"failure_threshold"`
	TutorialLink string       `yaml:"tutorial_link" toml:"tutorial_link" json:"tutorial_link"`
	Permissions  []Permission `yaml:"permissions" toml:"permissions" json:"permissions"`
	Log          LogConfig    `yaml:"log" toml:"log" json:"log"`
}

// Permission is one watched permission.
type Permission struct {
	Kind        string `yaml:"kind" toml:"kind" json:"kind"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level" json:"level"`
	File  string `yaml:"file" toml:"file" json:"file"`
}

// Default returns a configuration watching all three permissions in
// continuous mode.
func Default() *Config {
	cfg := &Config{Threshold: DefaultThreshold}
	for _, k := range macperm.AllKinds() {
		cfg.Permissions = append(cfg.Permissions, Permission{Kind: k.String()})
	}
	cfg.setDefaults()
	return cfg
}

// Load reads path, applies environment overrides and validates the result.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		if err := autoDetectAndParse(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg, nil
}

// autoDetectAndParse tries TOML, then YAML.
func autoDetectAndParse(data []byte, cfg *Config) error {
	if _, err := toml.Decode(string(data), cfg); err == nil {
		return nil
	}
	*cfg = Config{}
	if err := yaml.Unmarshal(data, cfg); err == nil {
		return nil
	}
	return fmt.Errorf("unrecognized config format")
}

// ApplyEnvOverrides replaces fields with MACPERM_* environment values.
func (c *Config) ApplyEnvOverrides() {
	c.AppName = system.GetString(system.EnvAppName, c.AppName)
	c.Interval = system.GetInt(system.EnvInterval, c.Interval)
	c.Threshold = system.GetInt(system.EnvThreshold, c.Threshold)
	c.TutorialLink = system.GetString(system.EnvTutorialLink, c.TutorialLink)
	c.Log.Level = system.GetString(system.EnvLogLevel, c.Log.Level)
	c.Log.File = system.GetString(system.EnvLogFile, c.Log.File)

	if kinds := system.GetStringSlice(system.EnvPermissions); len(kinds) > 0 {
		// Keep descriptions from the file for kinds that stay watched.
		desc := make(map[string]string)
		for _, p := range c.Permissions {
			if k, err := macperm.ParseKind(p.Kind); err == nil {
				desc[k.String()] = p.Description
			}
		}
		c.Permissions = c.Permissions[:0]
		for _, name := range kinds {
			p := Permission{Kind: name}
			if k, err := macperm.ParseKind(name); err == nil {
				p.Description = desc[k.String()]
			}
			c.Permissions = append(c.Permissions, p)
		}
	}
}

func (c *Config) setDefaults() {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks permission names and numeric ranges.
func (c *Config) Validate() error {
	if len(c.Permissions) == 0 {
		return fmt.Errorf("no permissions configured")
	}
	if c.Threshold < 1 {
		return fmt.Errorf("failure_threshold must be at least 1, got %d", c.Threshold)
	}
	seen := make(map[macperm.Kind]bool)
	for i, p := range c.Permissions {
		k, err := macperm.ParseKind(p.Kind)
		if err != nil {
			return fmt.Errorf("permissions[%d]: %w", i, err)
		}
		if seen[k] {
			return fmt.Errorf("permissions[%d]: %s listed twice", i, k)
		}
		seen[k] = true
	}
	return nil
}

// Requests converts the configured permissions into monitor requests.
func (c *Config) Requests() ([]macperm.Request, error) {
	requests := make([]macperm.Request, 0, len(c.Permissions))
	for i, p := range c.Permissions {
		k, err := macperm.ParseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("permissions[%d]: %w", i, err)
		}
		requests = append(requests, macperm.NewRequest(k, p.Description))
	}
	return requests, nil
}

// Package config loads the dashboard settings from defaults, an optional YAML file and
// DASHBOARD_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "DASHBOARD"

// Config holds the settings shared by all commands. Command-line flags override it.
type Config struct {
	TableA  string `yaml:"table_a" envconfig:"TABLE_A" validate:"required"`
	TableB  string `yaml:"table_b" envconfig:"TABLE_B" validate:"required"`
	Out     string `yaml:"out" envconfig:"OUT" validate:"required"`
	Title   string `yaml:"title" envconfig:"TITLE" validate:"required"`
	Addr    string `yaml:"addr" envconfig:"ADDR" validate:"required,hostname_port"`
	Org     string `yaml:"org" envconfig:"ORG"`
	Verbose bool   `yaml:"verbose" envconfig:"VERBOSE"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		TableA: "github_dataset.csv",
		TableB: "repository_data.csv",
		Out:    "report.html",
		Title:  "GitHub Repository Dashboard",
		Addr:   "localhost:8080",
	}
}

// Load builds the configuration. path names an optional YAML file; an empty path skips it.
// Environment variables win over the file, which wins over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required setting is present and well formed.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

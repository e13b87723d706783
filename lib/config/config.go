// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for routedeck.
//
// Configuration is loaded from a single file specified by:
//   - ROUTEDECK_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the console.
type Config struct {
	// API configures the travel-planning backend connection.
	API APIConfig `yaml:"api"`

	// UI configures console behavior.
	UI UIConfig `yaml:"ui"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the backend base URL including the API prefix,
	// e.g. "http://localhost:8080/api/v1".
	BaseURL string `yaml:"base_url"`

	// TokenFile is the path to a file holding the bearer token.
	// Empty means unauthenticated requests (the backend will reject
	// them; the console surfaces that as an ordinary request failure).
	TokenFile string `yaml:"token_file"`

	// RequestTimeout bounds every backend call. Default: 10s.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// UIConfig configures console behavior.
type UIConfig struct {
	// PageSize is the fixed page size for list requests. Default: 10.
	PageSize int `yaml:"page_size"`

	// DebounceInterval is the quiet period before an incremental
	// location lookup fires. Default: 300ms.
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// Default returns the default configuration. These defaults are a base
// for the config file, not a substitute for it — BaseURL has no
// default and must come from the file or a flag.
func Default() *Config {
	return &Config{
		API: APIConfig{
			RequestTimeout: 10 * time.Second,
		},
		UI: UIConfig{
			PageSize:         10,
			DebounceInterval: 300 * time.Millisecond,
		},
	}
}

// Load loads configuration from the ROUTEDECK_CONFIG environment
// variable. Fails if the variable is not set — there are no hidden
// fallback locations.
func Load() (*Config, error) {
	configPath := os.Getenv("ROUTEDECK_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("ROUTEDECK_CONFIG environment variable not set; " +
			"set it to the path of your routedeck.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applying
// defaults for unset fields and validating the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable. Called by LoadFile
// and again by the command after flag overrides are applied.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("config: api.base_url %q must be http or https", c.API.BaseURL)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("config: api.request_timeout must be positive")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("config: ui.page_size must be positive")
	}
	if c.UI.DebounceInterval <= 0 {
		return fmt.Errorf("config: ui.debounce_interval must be positive")
	}
	return nil
}

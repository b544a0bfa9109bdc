// Copyright 2026 The Tugboat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for tugboat with support
// for multiple configuration sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. It works with both
// github.com and GitHub Enterprise deployments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .tugboat.yaml (current directory)
//   - .tugboat.yml (current directory)
//   - ~/.tugboat/config.yaml
//   - ~/.tugboat/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".tugboat.yaml",
			".tugboat.yml",
			filepath.Join(os.Getenv("HOME"), ".tugboat", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".tugboat", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if username := os.Getenv("TUGBOAT_USERNAME"); username != "" {
		cfg.GitHub.Username = username
	}
	if pageSize := os.Getenv("TUGBOAT_PAGE_SIZE"); pageSize != "" {
		if size, err := strconv.Atoi(pageSize); err == nil && size > 0 {
			cfg.Defaults.PageSize = size
		}
	}
	if sortBy := os.Getenv("TUGBOAT_SORT"); sortBy != "" {
		cfg.Defaults.Sort = sortBy
	}
}

// Token resolves the API token from the environment variable named by
// github.token_env. Returns "" when the variable is unset or empty.
func (c *Config) Token() string {
	if c.GitHub.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.GitHub.TokenEnv)
}

// Validate checks if the configuration contains valid values. It ensures
// the page size is within GitHub's limits, the endpoint is not empty, the
// sort key is known, and the retry delay parses. This should be called
// after loading configuration and applying flag overrides.
func (c *Config) Validate() error {
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("github.api_endpoint must not be empty")
	}

	if c.Defaults.PageSize < 1 || c.Defaults.PageSize > 100 {
		return fmt.Errorf("defaults.page_size must be between 1 and 100, got %d", c.Defaults.PageSize)
	}

	switch strings.ToLower(c.Defaults.Sort) {
	case "updated", "created", "repo":
	default:
		return fmt.Errorf("defaults.sort must be one of updated, created, repo; got %q", c.Defaults.Sort)
	}

	d, err := time.ParseDuration(c.Defaults.MergeableRetryDelay)
	if err != nil {
		return fmt.Errorf("defaults.mergeable_retry_delay is not a valid duration: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("defaults.mergeable_retry_delay must not be negative, got %s", d)
	}

	return nil
}

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

// Package config types define the configuration structures used throughout
// tugboat. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for tugboat. It consolidates
// settings from various sources and provides a unified interface for
// accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// GitHubConfig contains GitHub-specific settings including the API endpoint
// and authentication configuration. This allows easy configuration for
// GitHub Enterprise deployments by specifying a custom endpoint.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	Username    string `yaml:"username"`
	TokenEnv    string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to every report run
// unless overridden by command-line flags.
type DefaultsConfig struct {
	// PageSize controls how many items are requested per API page.
	PageSize int `yaml:"page_size"`

	// Sort selects the report ordering: "updated", "created", or "repo".
	Sort string `yaml:"sort"`

	// MergeableRetryDelay is the pause before the single re-fetch of a
	// pull request whose mergeable state GitHub is still computing.
	// A Go duration string, e.g. "2s".
	MergeableRetryDelay string `yaml:"mergeable_retry_delay"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults target public GitHub.com but can be overridden
// for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
			TokenEnv:    "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:            50,
			Sort:                "updated",
			MergeableRetryDelay: "2s",
		},
	}
}

// RetryDelay returns the parsed mergeable retry delay. Call Validate first;
// unparseable values fall back to zero here.
func (c *Config) RetryDelay() time.Duration {
	d, err := time.ParseDuration(c.Defaults.MergeableRetryDelay)
	if err != nil {
		return 0
	}
	return d
}

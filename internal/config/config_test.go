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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points HOME at an empty directory and clears the override
// variables, so tests are not affected by real user configuration.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_API_ENDPOINT", "")
	t.Setenv("TUGBOAT_USERNAME", "")
	t.Setenv("TUGBOAT_PAGE_SIZE", "")
	t.Setenv("TUGBOAT_SORT", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIEndpoint)
	assert.Equal(t, "GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	assert.Empty(t, cfg.GitHub.Username)
	assert.Equal(t, 50, cfg.Defaults.PageSize)
	assert.Equal(t, "updated", cfg.Defaults.Sort)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay())

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `github:
  api_endpoint: https://ghe.example.com/api/v3
  username: alice
  token_env: GHE_TOKEN
defaults:
  page_size: 25
  sort: repo
  mergeable_retry_delay: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.GitHub.APIEndpoint)
	assert.Equal(t, "alice", cfg.GitHub.Username)
	assert.Equal(t, "GHE_TOKEN", cfg.GitHub.TokenEnv)
	assert.Equal(t, 25, cfg.Defaults.PageSize)
	assert.Equal(t, "repo", cfg.Defaults.Sort)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay())
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `github:
  username: bob
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.GitHub.Username)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIEndpoint)
	assert.Equal(t, 50, cfg.Defaults.PageSize)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	isolateEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigNoFileUsesDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigHomeDirectory(t *testing.T) {
	isolateEnv(t)

	home := os.Getenv("HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".tugboat"), 0o755))
	content := `defaults:
  page_size: 10
`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".tugboat", "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Defaults.PageSize)
}

func TestEnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_API_ENDPOINT", "https://ghe.internal/api/v3")
	t.Setenv("TUGBOAT_USERNAME", "carol")
	t.Setenv("TUGBOAT_PAGE_SIZE", "75")
	t.Setenv("TUGBOAT_SORT", "created")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.internal/api/v3", cfg.GitHub.APIEndpoint)
	assert.Equal(t, "carol", cfg.GitHub.Username)
	assert.Equal(t, 75, cfg.Defaults.PageSize)
	assert.Equal(t, "created", cfg.Defaults.Sort)
}

func TestEnvOverridesIgnoreInvalidPageSize(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TUGBOAT_PAGE_SIZE", "not-a-number")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Defaults.PageSize)
}

func TestToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.TokenEnv = "TUGBOAT_TEST_TOKEN"

	t.Setenv("TUGBOAT_TEST_TOKEN", "ghp_secret")
	assert.Equal(t, "ghp_secret", cfg.Token())

	t.Setenv("TUGBOAT_TEST_TOKEN", "")
	assert.Empty(t, cfg.Token())

	cfg.GitHub.TokenEnv = ""
	assert.Empty(t, cfg.Token())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults are valid",
			modify:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "empty endpoint",
			modify:  func(c *Config) { c.GitHub.APIEndpoint = "" },
			wantErr: "api_endpoint",
		},
		{
			name:    "page size too small",
			modify:  func(c *Config) { c.Defaults.PageSize = 0 },
			wantErr: "page_size",
		},
		{
			name:    "page size too large",
			modify:  func(c *Config) { c.Defaults.PageSize = 101 },
			wantErr: "page_size",
		},
		{
			name:    "unknown sort key",
			modify:  func(c *Config) { c.Defaults.Sort = "alphabetical" },
			wantErr: "sort",
		},
		{
			name:    "sort key is case-insensitive",
			modify:  func(c *Config) { c.Defaults.Sort = "Updated" },
			wantErr: "",
		},
		{
			name:    "unparseable retry delay",
			modify:  func(c *Config) { c.Defaults.MergeableRetryDelay = "soon" },
			wantErr: "mergeable_retry_delay",
		},
		{
			name:    "negative retry delay",
			modify:  func(c *Config) { c.Defaults.MergeableRetryDelay = "-1s" },
			wantErr: "mergeable_retry_delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

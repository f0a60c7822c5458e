// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, 10, cfg.Server.TimeoutSecs)
	assert.Equal(t, "llama3-70b-8192", cfg.Chat.Model)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.BaseURL, cfg.Server.BaseURL)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_level = "debug"

[server]
base_url = "https://chat.example.com"
timeout_secs = 30

[chat]
model = "llama3-8b-8192"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
	assert.Equal(t, "llama3-8b-8192", cfg.Chat.Model)
	// Unspecified fields fall back to defaults.
	assert.Equal(t, 0.7, cfg.Chat.Temperature)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nbase_url = \"http://from-file:5000\"\n"), 0600))

	t.Setenv("FAITHTALK_SERVER_URL", "http://from-env:9000")
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9000", cfg.Server.BaseURL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad url", func(c *Config) { c.Server.BaseURL = "not a url" }, "server.base_url"},
		{"timeout too large", func(c *Config) { c.Server.TimeoutSecs = 600 }, "server.timeout_secs"},
		{"negative temperature", func(c *Config) { c.Chat.Temperature = -1 }, "chat.temperature"},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, "ui.theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Server.BaseURL = "https://api.faithtalk.example"
	require.NoError(t, SaveTo(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.BaseURL, loaded.Server.BaseURL)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("server.timeout_secs", "15"))
	v, err := cfg.Get("server.timeout_secs")
	require.NoError(t, err)
	assert.Equal(t, 15, v)

	require.NoError(t, cfg.Set("chat.temperature", "0.2"))
	assert.Equal(t, 0.2, cfg.Chat.Temperature)

	// Set validates the resulting config.
	assert.Error(t, cfg.Set("ui.theme", "sepia"))
	assert.Error(t, cfg.Set("no.such.key", "x"))
}

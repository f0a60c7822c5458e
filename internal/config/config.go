// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete FaithTalk client configuration.
type Config struct {
	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `toml:"log_level" env:"FAITHTALK_LOG_LEVEL, overwrite"`

	// Server holds the API endpoint settings.
	Server ServerConfig `toml:"server"`

	// Chat holds the generation settings sent with every question.
	Chat ChatConfig `toml:"chat"`

	// UI holds terminal UI settings.
	UI UIConfig `toml:"ui"`
}

// ServerConfig contains the API endpoint settings.
type ServerConfig struct {
	// BaseURL is the address of the FaithTalk API server.
	BaseURL string `toml:"base_url" env:"FAITHTALK_SERVER_URL, overwrite"`
	// TimeoutSecs is the request timeout applied to every call.
	TimeoutSecs int `toml:"timeout_secs" env:"FAITHTALK_TIMEOUT_SECS, overwrite"`
}

// ChatConfig contains the model parameters for the ask endpoint.
type ChatConfig struct {
	Model       string  `toml:"model" env:"FAITHTALK_MODEL, overwrite"`
	Temperature float64 `toml:"temperature" env:"FAITHTALK_TEMPERATURE, overwrite"`
	MaxTokens   int     `toml:"max_tokens" env:"FAITHTALK_MAX_TOKENS, overwrite"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto".
	Theme string `toml:"theme" env:"FAITHTALK_THEME, overwrite"`
	// CompactMode collapses message spacing in the chat view.
	CompactMode bool `toml:"compact_mode"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			BaseURL:     "http://localhost:5000",
			TimeoutSecs: 10,
		},
		Chat: ChatConfig{
			Model:       "llama3-70b-8192",
			Temperature: 0.7,
			MaxTokens:   2048,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// Dir returns the FaithTalk configuration directory (~/.faithtalk).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".faithtalk"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file if present, applies environment overrides,
// fills defaults, and validates. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit file location; used by tests.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the default TOML file with 0600
// permissions (the file may hold a private server address).
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to an explicit file location.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# FaithTalk client configuration")
	fmt.Fprintln(file, "# Edit with care, or use: faithtalk config set <key> <value>")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = d.Server.BaseURL
	}
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = d.Server.TimeoutSecs
	}
	if c.Chat.Model == "" {
		c.Chat.Model = d.Chat.Model
	}
	if c.Chat.Temperature == 0 {
		c.Chat.Temperature = d.Chat.Temperature
	}
	if c.Chat.MaxTokens == 0 {
		c.Chat.MaxTokens = d.Chat.MaxTokens
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationError{Field: "server.base_url", Message: fmt.Sprintf("not a valid URL: %q", c.Server.BaseURL)}
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 120 {
		return ValidationError{Field: "server.timeout_secs", Message: fmt.Sprintf("must be 1-120, got %d", c.Server.TimeoutSecs)}
	}

	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return ValidationError{Field: "chat.temperature", Message: fmt.Sprintf("must be 0.0-2.0, got %g", c.Chat.Temperature)}
	}

	if c.Chat.MaxTokens < 1 {
		return ValidationError{Field: "chat.max_tokens", Message: "must be positive"}
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		return ValidationError{Field: "ui.theme", Message: fmt.Sprintf("invalid theme %q, must be one of: dark, light, auto", c.UI.Theme)}
	}

	return nil
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Keys lists the settable configuration keys in dot notation.
func Keys() []string {
	return []string{
		"log_level",
		"server.base_url",
		"server.timeout_secs",
		"chat.model",
		"chat.temperature",
		"chat.max_tokens",
		"ui.theme",
		"ui.compact_mode",
	}
}

// Get retrieves a configuration value by dot-notation key.
func (c *Config) Get(key string) (any, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "server.base_url":
		return c.Server.BaseURL, nil
	case "server.timeout_secs":
		return c.Server.TimeoutSecs, nil
	case "chat.model":
		return c.Chat.Model, nil
	case "chat.temperature":
		return c.Chat.Temperature, nil
	case "chat.max_tokens":
		return c.Chat.MaxTokens, nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.compact_mode":
		return c.UI.CompactMode, nil
	}
	return nil, fmt.Errorf("unknown config key: %s", key)
}

// Set assigns a configuration value by dot-notation key, parsing the string
// form, and validates the result.
func (c *Config) Set(key, value string) error {
	switch key {
	case "log_level":
		c.LogLevel = value
	case "server.base_url":
		c.Server.BaseURL = value
	case "server.timeout_secs":
		if _, err := fmt.Sscanf(value, "%d", &c.Server.TimeoutSecs); err != nil {
			return fmt.Errorf("%s: not an integer: %q", key, value)
		}
	case "chat.model":
		c.Chat.Model = value
	case "chat.temperature":
		if _, err := fmt.Sscanf(value, "%g", &c.Chat.Temperature); err != nil {
			return fmt.Errorf("%s: not a number: %q", key, value)
		}
	case "chat.max_tokens":
		if _, err := fmt.Sscanf(value, "%d", &c.Chat.MaxTokens); err != nil {
			return fmt.Errorf("%s: not an integer: %q", key, value)
		}
	case "ui.theme":
		c.UI.Theme = value
	case "ui.compact_mode":
		c.UI.CompactMode = value == "true" || value == "1"
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}

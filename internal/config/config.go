// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

// Package config loads and validates server configuration.
//
// Configuration is layered with koanf: struct defaults, then an optional YAML
// file, then CREWDESK_* environment variables. Later layers override earlier
// ones.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. CREWDESK_SERVER_PORT=9090 sets server.port.
const envPrefix = "CREWDESK_"

// Config is the root configuration for the API server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	ReadTimeoutSec  int    `koanf:"read_timeout_sec"`
	WriteTimeoutSec int    `koanf:"write_timeout_sec"`
	IdleTimeoutSec  int    `koanf:"idle_timeout_sec"`
}

// DatabaseConfig controls the embedded SQLite store.
type DatabaseConfig struct {
	// Path is the SQLite database file. Use ":memory:" for an in-memory store.
	Path string `koanf:"path"`
}

// AuthConfig controls API token verification.
type AuthConfig struct {
	// Enabled turns the token authenticator on. When false every request is
	// accepted; intended for tests and local development only.
	Enabled bool `koanf:"enabled"`

	// Secret is the HMAC key used to sign and verify API tokens.
	Secret string `koanf:"secret"`

	// AdminKey guards the /restapi key-management endpoints.
	AdminKey string `koanf:"admin_key"`
}

// APIConfig tunes resource-handler behavior.
type APIConfig struct {
	// DefaultAttributionUserID is the fallback identity recorded as created_by
	// when a caller omits or supplies an invalid value.
	DefaultAttributionUserID int64 `koanf:"default_attribution_user_id"`

	// StrictUpdateValidation re-applies enumerated-value rules on update.
	// The default mirrors the historical behavior: enum rules run on create
	// only.
	StrictUpdateValidation bool `koanf:"strict_update_validation"`

	// RateLimitPerMinute caps requests per client IP. Zero disables limiting.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// CORSAllowedOrigins lists origins allowed by the CORS middleware.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 30,
			IdleTimeoutSec:  60,
		},
		Database: DatabaseConfig{
			Path: "data/crewdesk.db",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		API: APIConfig{
			DefaultAttributionUserID: 1,
			StrictUpdateValidation:   false,
			RateLimitPerMinute:       300,
			CORSAllowedOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, then validates the result. An empty path skips the
// file layer; a non-empty path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load config defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envTransform maps CREWDESK_SECTION_KEY_NAME to section.key_name. The first
// underscore separates the section from the key; the key keeps its
// underscores.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return s
	}
	return parts[0] + "." + parts[1]
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d (must be 1-65535)", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("auth is enabled but auth.secret is empty")
	}
	if c.API.DefaultAttributionUserID < 1 {
		return fmt.Errorf("default attribution user id must be >= 1, got %d", c.API.DefaultAttributionUserID)
	}
	return nil
}

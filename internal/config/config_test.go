// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.API.DefaultAttributionUserID != 1 {
		t.Errorf("default attribution user = %d, want 1", cfg.API.DefaultAttributionUserID)
	}
	if cfg.API.StrictUpdateValidation {
		t.Error("strict update validation must default off")
	}
	if !cfg.Auth.Enabled {
		t.Error("auth must default on")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("CREWDESK_AUTH_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.Enabled {
		t.Error("env override must disable auth")
	}
}

func TestLoadFileAndEnvLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9090\nauth:\n  enabled: false\ndatabase:\n  path: /tmp/test.db\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CREWDESK_SERVER_PORT", "9191")
	t.Setenv("CREWDESK_API_DEFAULT_ATTRIBUTION_USER_ID", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d, env must override the file value", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("database path = %q, want the file value", cfg.Database.Path)
	}
	if cfg.API.DefaultAttributionUserID != 7 {
		t.Errorf("attribution user = %d, want 7", cfg.API.DefaultAttributionUserID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"defaults with secret", func(cfg *Config) { cfg.Auth.Secret = "s" }, false},
		{"auth disabled without secret", func(cfg *Config) { cfg.Auth.Enabled = false }, false},
		{"auth enabled without secret", func(cfg *Config) {}, true},
		{"port too low", func(cfg *Config) { cfg.Auth.Enabled = false; cfg.Server.Port = 0 }, true},
		{"port too high", func(cfg *Config) { cfg.Auth.Enabled = false; cfg.Server.Port = 70000 }, true},
		{"empty database path", func(cfg *Config) { cfg.Auth.Enabled = false; cfg.Database.Path = "" }, true},
		{"attribution user below one", func(cfg *Config) { cfg.Auth.Enabled = false; cfg.API.DefaultAttributionUserID = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CREWDESK_SERVER_PORT", "server.port"},
		{"CREWDESK_API_RATE_LIMIT_PER_MINUTE", "api.rate_limit_per_minute"},
		{"CREWDESK_LOGGING_LEVEL", "logging.level"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

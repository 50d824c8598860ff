package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 4499 {
		t.Errorf("default server.port = %d, want 4499", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("default server.write_timeout = %v, want 10s", cfg.Server.WriteTimeout)
	}
	if cfg.Generator.QuoteCommand != "fortune" {
		t.Errorf("default generator.quote_command = %q, want \"fortune\"", cfg.Generator.QuoteCommand)
	}
	if cfg.Generator.FormatCommand != "cowsay" {
		t.Errorf("default generator.format_command = %q, want \"cowsay\"", cfg.Generator.FormatCommand)
	}
	if cfg.Generator.Timeout != 5*time.Second {
		t.Errorf("default generator.timeout = %v, want 5s", cfg.Generator.Timeout)
	}
	if cfg.History.MaxSize != 100 {
		t.Errorf("default history.max_size = %d, want 100", cfg.History.MaxSize)
	}
	if !cfg.Admin.Enabled {
		t.Error("default admin.enabled = false, want true")
	}
	if cfg.Admin.Port != 9090 {
		t.Errorf("default admin.port = %d, want 9090", cfg.Admin.Port)
	}
	if cfg.Admin.Metrics.Path != "/metrics" {
		t.Errorf("default admin.metrics.path = %q, want \"/metrics\"", cfg.Admin.Metrics.Path)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 4500
generator:
  quote_command: fortune-mod
  format_command: cowthink
history:
  max_size: 25
admin:
  enabled: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 4500 {
		t.Errorf("server.port = %d, want 4500", cfg.Server.Port)
	}
	if cfg.Generator.QuoteCommand != "fortune-mod" {
		t.Errorf("generator.quote_command = %q, want \"fortune-mod\"", cfg.Generator.QuoteCommand)
	}
	if cfg.Generator.FormatCommand != "cowthink" {
		t.Errorf("generator.format_command = %q, want \"cowthink\"", cfg.Generator.FormatCommand)
	}
	if cfg.History.MaxSize != 25 {
		t.Errorf("history.max_size = %d, want 25", cfg.History.MaxSize)
	}
	if cfg.Admin.Enabled {
		t.Error("admin.enabled = true, want false")
	}
	// Untouched fields keep their defaults.
	if cfg.Generator.Timeout != 5*time.Second {
		t.Errorf("generator.timeout = %v, want default 5s", cfg.Generator.Timeout)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FORTUNED_PORT", "5500")
	t.Setenv("FORTUNED_QUOTE_COMMAND", "motd")
	t.Setenv("FORTUNED_GENERATOR_TIMEOUT", "2s")
	t.Setenv("FORTUNED_ADMIN_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 5500 {
		t.Errorf("server.port = %d, want env override 5500", cfg.Server.Port)
	}
	if cfg.Generator.QuoteCommand != "motd" {
		t.Errorf("generator.quote_command = %q, want \"motd\"", cfg.Generator.QuoteCommand)
	}
	if cfg.Generator.Timeout != 2*time.Second {
		t.Errorf("generator.timeout = %v, want 2s", cfg.Generator.Timeout)
	}
	if cfg.Admin.Enabled {
		t.Error("admin.enabled = true, want env override false")
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4500\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("FORTUNED_PORT", "6000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 6000 {
		t.Errorf("server.port = %d, want env to override file", cfg.Server.Port)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantSub: "server.port",
		},
		{
			name:    "empty quote command",
			mutate:  func(c *Config) { c.Generator.QuoteCommand = "" },
			wantSub: "generator.quote_command",
		},
		{
			name:    "zero generator timeout",
			mutate:  func(c *Config) { c.Generator.Timeout = 0 },
			wantSub: "generator.timeout",
		},
		{
			name:    "negative history size",
			mutate:  func(c *Config) { c.History.MaxSize = -1 },
			wantSub: "history.max_size",
		},
		{
			name:    "admin port collides with server port",
			mutate:  func(c *Config) { c.Admin.Port = c.Server.Port },
			wantSub: "admin.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

// Package config provides unified configuration for the fortune server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (FORTUNED_ prefix)
//  4. Validation
package config

import "time"

// Config holds all configuration for the fortune server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Generator GeneratorConfig `yaml:"generator"`
	History   HistoryConfig   `yaml:"history"`
	Admin     AdminConfig     `yaml:"admin"`
}

// ServerConfig holds the art-port listener settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 4499
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 10s
}

// GeneratorConfig holds the external pipeline settings.
type GeneratorConfig struct {
	QuoteCommand  string        `yaml:"quote_command"`  // default: "fortune"
	FormatCommand string        `yaml:"format_command"` // default: "cowsay"
	Timeout       time.Duration `yaml:"timeout"`        // default: 5s
}

// HistoryConfig holds the recent-fortunes ring settings.
type HistoryConfig struct {
	MaxSize int `yaml:"max_size"` // default: 100, 0 disables the ring
}

// AdminConfig holds the admin HTTP listener settings.
type AdminConfig struct {
	Enabled bool          `yaml:"enabled"` // default: true
	Port    int           `yaml:"port"`    // default: 9090
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         4499,
			WriteTimeout: 10 * time.Second,
		},
		Generator: GeneratorConfig{
			QuoteCommand:  "fortune",
			FormatCommand: "cowsay",
			Timeout:       5 * time.Second,
		},
		History: HistoryConfig{
			MaxSize: 100,
		},
		Admin: AdminConfig{
			Enabled: true,
			Port:    9090,
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

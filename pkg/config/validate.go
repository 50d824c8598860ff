package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}

	if c.Generator.QuoteCommand == "" {
		errs = append(errs, fmt.Errorf("generator.quote_command is required"))
	}
	if c.Generator.FormatCommand == "" {
		errs = append(errs, fmt.Errorf("generator.format_command is required"))
	}
	if c.Generator.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("generator.timeout must be > 0, got %v", c.Generator.Timeout))
	}

	if c.History.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("history.max_size must be >= 0, got %d", c.History.MaxSize))
	}

	if c.Admin.Enabled {
		if c.Admin.Port <= 0 || c.Admin.Port > 65535 {
			errs = append(errs, fmt.Errorf("admin.port must be in 1..65535, got %d", c.Admin.Port))
		}
		if c.Admin.Port == c.Server.Port {
			errs = append(errs, fmt.Errorf("admin.port must differ from server.port (%d)", c.Server.Port))
		}
		if c.Admin.Metrics.Enabled && c.Admin.Metrics.Path == "" {
			errs = append(errs, fmt.Errorf("admin.metrics.path is required when metrics are enabled"))
		}
	}

	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"strings"
)

const maxWorkers = 1024

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if c.Workers < 0 || c.Workers > maxWorkers {
		errs = append(errs, fmt.Sprintf("workers must be between 0 and %d", maxWorkers))
	}
	switch strings.ToLower(c.Sort) {
	case "name", "count":
	default:
		errs = append(errs, `sort must be "name" or "count"`)
	}
	if c.SpinnerIntervalMs < 10 {
		errs = append(errs, "spinner_interval_ms must be >= 10")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, `log.format must be "json" or "console"`)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}
	return nil
}

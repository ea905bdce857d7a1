package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile,
// then by command-line flags.
type Config struct {
	// Workers is the scan pool size. 0 picks a size from the CPU count.
	Workers int `json:"workers"`
	// Sort is the initial child order: "count" (files, descending) or "name".
	Sort string `json:"sort"`
	// Mouse enables click and wheel handling.
	Mouse bool `json:"mouse"`
	// SpinnerIntervalMs is the frame interval of the counting spinner.
	SpinnerIntervalMs int `json:"spinner_interval_ms"`

	Log LogConfig `json:"log"`
}

// LogConfig configures the file logger. The terminal belongs to the UI, so
// nothing is logged unless File is set.
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, console
	File   string `json:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:           0,
		Sort:              "count",
		Mouse:             true,
		SpinnerIntervalMs: 120,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

package config

import "time"

const (
	// DefaultPath is the configuration file looked up when none is given.
	DefaultPath = "synx.yaml"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultIndent    = 4
	DefaultDebounce  = 100 * time.Millisecond
)

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields of cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Printer.Indent == nil {
		indent := DefaultIndent
		cfg.Printer.Indent = &indent
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
}

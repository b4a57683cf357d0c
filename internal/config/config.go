// Package config loads the synx.yaml configuration file.
package config

import "time"

// Config is the root of synx.yaml.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Printer PrinterConfig `yaml:"printer"`
	Expand  ExpandConfig  `yaml:"expand"`
	Watch   WatchConfig   `yaml:"watch"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is json or text.
	Format string `yaml:"format"`
}

// PrinterConfig controls source output.
type PrinterConfig struct {
	// Indent is the number of spaces per level; 0 indents with tabs.
	Indent *int `yaml:"indent"`
}

// IndentWidth returns the configured indent, or DefaultIndent when unset.
func (p PrinterConfig) IndentWidth() int {
	if p.Indent == nil {
		return DefaultIndent
	}
	return *p.Indent
}

// ExpandConfig lists the derives available to `synx expand`.
type ExpandConfig struct {
	// Builtins names the built-in derives to register. Empty registers all.
	Builtins []string `yaml:"builtins"`
	// Derives declares template based derives.
	Derives []DeriveConfig `yaml:"derives"`
}

// DeriveConfig declares a derive implemented by a text/template.
type DeriveConfig struct {
	Name string `yaml:"name"`
	// Template is the template text. Exactly one of Template and
	// TemplateFile is set.
	Template string `yaml:"template"`
	// TemplateFile is read relative to the configuration file.
	TemplateFile    string `yaml:"template_file"`
	StructsOnly     bool   `yaml:"structs_only"`
	ReplaceOriginal bool   `yaml:"replace_original"`
}

// WatchConfig configures `synx watch`.
type WatchConfig struct {
	Debounce   time.Duration `yaml:"debounce"`
	Extensions []string      `yaml:"extensions"`
}

// MetricsConfig controls the Prometheus text file written after an expansion.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

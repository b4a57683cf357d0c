package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at path, applies defaults and
// environment overrides and validates the result. An empty path means
// DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
		if err := resolveTemplates(cfg, filepath.Dir(path)); err != nil {
			return nil, err
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// resolveTemplates reads template_file entries relative to dir.
func resolveTemplates(cfg *Config, dir string) error {
	for i := range cfg.Expand.Derives {
		d := &cfg.Expand.Derives[i]
		if d.TemplateFile == "" || d.Template != "" {
			continue
		}
		path := d.TemplateFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template for derive %q: %w", d.Name, err)
		}
		d.Template = string(data)
	}
	return nil
}

// applyEnvOverrides applies SYNX_* environment variables. Values that fail
// to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("SYNX_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("SYNX_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if val := os.Getenv("SYNX_PRINTER_INDENT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Printer.Indent = &i
		}
	}
	if val := os.Getenv("SYNX_METRICS_TEXTFILE"); val != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Textfile = val
	}
}

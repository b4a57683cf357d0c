package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "synx.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "named.tmpl"), []byte("impl Named for {{.Name}} {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, dir, `
logging:
  level: debug
  format: json
printer:
  indent: 2
expand:
  builtins: [Builder]
  derives:
    - name: Named
      template_file: named.tmpl
      structs_only: true
    - name: Gone
      template: "type {{.Name}}2 = ();"
      replace_original: true
watch:
  debounce: 250ms
  extensions: [".rs"]
metrics:
  enabled: true
  textfile: out.prom
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if got := cfg.Printer.IndentWidth(); got != 2 {
		t.Errorf("expected indent 2, got %d", got)
	}
	if len(cfg.Expand.Derives) != 2 {
		t.Fatalf("expected 2 derives, got %d", len(cfg.Expand.Derives))
	}
	if d := cfg.Expand.Derives[0]; d.Template != "impl Named for {{.Name}} {}" || !d.StructsOnly {
		t.Errorf("template file was not resolved: %+v", d)
	}
	if !cfg.Expand.Derives[1].ReplaceOriginal {
		t.Errorf("expected replace_original to be set")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Textfile != "out.prom" {
		t.Errorf("unexpected metrics config %+v", cfg.Metrics)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "{}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Logging.Level != DefaultLogLevel || cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}
	if cfg.Printer.IndentWidth() != DefaultIndent {
		t.Errorf("unexpected indent default %d", cfg.Printer.IndentWidth())
	}
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("unexpected debounce default %v", cfg.Watch.Debounce)
	}
}

func TestLoad_ZeroIndentIsKept(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "printer:\n  indent: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Printer.IndentWidth() != 0 {
		t.Errorf("expected tab indentation (0), got %d", cfg.Printer.IndentWidth())
	}
}

func TestLoad_MissingDefaultPath(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("expected defaults, got %+v", cfg.Logging)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "logging: [unclosed\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "logging:\n  level: info\n")
	t.Setenv("SYNX_LOG_LEVEL", "warn")
	t.Setenv("SYNX_LOG_FORMAT", "json")
	t.Setenv("SYNX_PRINTER_INDENT", "8")
	t.Setenv("SYNX_METRICS_TEXTFILE", "/tmp/synx.prom")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("logging overrides not applied: %+v", cfg.Logging)
	}
	if cfg.Printer.IndentWidth() != 8 {
		t.Errorf("indent override not applied: %d", cfg.Printer.IndentWidth())
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Textfile != "/tmp/synx.prom" {
		t.Errorf("metrics override not applied: %+v", cfg.Metrics)
	}
}

func TestLoad_InvalidEnvIndentIgnored(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "printer:\n  indent: 3\n")
	t.Setenv("SYNX_PRINTER_INDENT", "wide")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Printer.IndentWidth() != 3 {
		t.Errorf("expected file value to survive, got %d", cfg.Printer.IndentWidth())
	}
}

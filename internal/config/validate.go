package config

import (
	"fmt"
	"slices"
	"strings"
)

// FieldError is a validation failure of a single configuration field.
type FieldError struct {
	// Field is the dotted path of the field, e.g. "printer.indent".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"json", "text"}
)

// BuiltinDerives names the derives shipped with synx, in sorted order.
var BuiltinDerives = []string{"Builder", "HeapSize"}

// enabledBuiltins returns the builtin derives cfg registers.
func enabledBuiltins(cfg *Config) []string {
	if len(cfg.Expand.Builtins) == 0 {
		return BuiltinDerives
	}
	return cfg.Expand.Builtins
}

// Validate checks cfg and returns a ValidationError listing every problem,
// or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if !slices.Contains(validLevels, strings.ToLower(cfg.Logging.Level)) {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(validLevels, ", "), cfg.Logging.Level),
		})
	}
	if !slices.Contains(validFormats, strings.ToLower(cfg.Logging.Format)) {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be json or text, got %q", cfg.Logging.Format),
		})
	}

	if indent := cfg.Printer.IndentWidth(); indent < 0 || indent > 16 {
		errs = append(errs, FieldError{Field: "printer.indent", Message: fmt.Sprintf("must be between 0 and 16, got %d", indent)})
	}

	for i, name := range cfg.Expand.Builtins {
		if !slices.Contains(BuiltinDerives, name) {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("expand.builtins[%d]", i),
				Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(BuiltinDerives, ", "), name),
			})
		}
	}

	builtins := enabledBuiltins(cfg)
	seen := make(map[string]bool)
	for i, d := range cfg.Expand.Derives {
		field := fmt.Sprintf("expand.derives[%d]", i)
		switch {
		case d.Name == "":
			errs = append(errs, FieldError{Field: field + ".name", Message: "is required"})
		case seen[d.Name] || slices.Contains(builtins, d.Name):
			errs = append(errs, FieldError{Field: field + ".name", Message: fmt.Sprintf("duplicate derive %q", d.Name)})
		}
		seen[d.Name] = true

		if d.Template == "" && d.TemplateFile == "" {
			errs = append(errs, FieldError{Field: field + ".template", Message: "template or template_file is required"})
		}
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{Field: "watch.debounce", Message: "must not be negative"})
	}
	for i, ext := range cfg.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{Field: fmt.Sprintf("watch.extensions[%d]", i), Message: fmt.Sprintf("must start with a dot, got %q", ext)})
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Textfile == "" {
		errs = append(errs, FieldError{Field: "metrics.textfile", Message: "is required when metrics are enabled"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

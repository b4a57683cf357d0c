package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/malphas-lang/synx/internal/diag"
)

// ConfigError reports a configuration file that could not be loaded.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	path := e.Path
	if path == "" {
		path = "default configuration"
	}
	return fmt.Sprintf("config error in %s: %v", path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// CommandError reports a failed subcommand.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

type diagnoser interface {
	ToDiagnostic() diag.Diagnostic
}

// report writes err to w, with a source snippet when the error carries a
// location.
func report(w io.Writer, err error) {
	var d diagnoser
	if errors.As(err, &d) {
		var ce *CommandError
		if errors.As(err, &ce) {
			fmt.Fprintf(w, "synx %s:\n", ce.Command)
		}
		diag.NewFormatter(w).Format(d.ToDiagnostic())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

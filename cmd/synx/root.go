package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/malphas-lang/synx/internal/config"
	"github.com/malphas-lang/synx/internal/logging"
	"github.com/malphas-lang/synx/internal/printer"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

func (a *app) printOptions() []printer.Option {
	return []printer.Option{printer.WithIndent(a.cfg.Printer.IndentWidth())}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "synx",
		Short: "Parse, print and expand derives in Rust source",
		Long: `synx parses Rust source files, prints syntax trees back to source and
expands #[derive(...)] attributes with built-in and template transformers.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (default "+config.DefaultPath+" if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newExpandCmd(a),
		newFmtCmd(a),
		newParseCmd(a),
		newSplitCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return &ConfigError{Path: a.cfgFile, Err: err}
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: logOut,
	})
	if err != nil {
		return &ConfigError{Path: a.cfgFile, Err: err}
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// Execute runs the synx command line and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		report(stderr, err)
		return 1
	}
	return 0
}

func commandError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Command: cmd.Name(), Err: err}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

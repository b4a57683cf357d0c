package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/malphas-lang/synx/internal/derive"
	"github.com/malphas-lang/synx/internal/expand"
)

// newRegistry registers the configured built-in and template derives. reg
// may be nil, in which case no metrics are recorded.
func (a *app) newRegistry(reg prometheus.Registerer) (*expand.Registry, error) {
	opts := []expand.Option{
		expand.WithLogger(a.logger),
		expand.WithPrinterOptions(a.printOptions()...),
	}
	if reg != nil {
		opts = append(opts, expand.WithMetrics(expand.NewMetrics(reg)))
	}
	r := expand.NewRegistry(opts...)

	if err := derive.RegisterBuiltins(r, a.cfg.Expand.Builtins, a.printOptions()...); err != nil {
		return nil, &ConfigError{Path: a.cfgFile, Err: err}
	}
	for _, d := range a.cfg.Expand.Derives {
		if err := derive.RegisterTemplate(r, d.Name, d.Template, d.StructsOnly, d.ReplaceOriginal); err != nil {
			return nil, &ConfigError{Path: a.cfgFile, Err: err}
		}
	}
	return r, nil
}

func newExpandCmd(a *app) *cobra.Command {
	var metricsFile string
	cmd := &cobra.Command{
		Use:   "expand SRC DST",
		Short: "Expand derive attributes of SRC into DST",
		Long: `Expand parses SRC, runs every registered derive transformer over the
structs and enums that name it, and writes the result to DST.

DST is replaced atomically and left untouched when any step fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if metricsFile == "" && a.cfg.Metrics.Enabled {
				metricsFile = a.cfg.Metrics.Textfile
			}

			var gatherer *prometheus.Registry
			if metricsFile != "" {
				gatherer = prometheus.NewRegistry()
			}
			var reg prometheus.Registerer
			if gatherer != nil {
				reg = gatherer
			}

			r, err := a.newRegistry(reg)
			if err != nil {
				return err
			}
			runErr := r.ExpandFile(args[0], args[1])

			if gatherer != nil {
				if err := prometheus.WriteToTextfile(metricsFile, gatherer); err != nil {
					a.logger.Error("Failed to write metrics", "path", metricsFile, "error", err)
				}
			}
			if runErr != nil {
				return commandError(cmd, runErr)
			}
			printf(cmd, "expanded %s -> %s\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch SRC DST",
		Short: "Expand SRC into DST and again whenever SRC changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.newRegistry(nil)
			if err != nil {
				return err
			}
			cfg := expand.WatchConfig{
				Debounce:   a.cfg.Watch.Debounce,
				Extensions: a.cfg.Watch.Extensions,
			}
			if err := r.WatchFile(cmd.Context(), args[0], args[1], cfg); err != nil {
				return commandError(cmd, fmt.Errorf("watch %s: %w", args[0], err))
			}
			return nil
		},
	}
}

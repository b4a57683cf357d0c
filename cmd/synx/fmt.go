package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/malphas-lang/synx/internal/parser"
	"github.com/malphas-lang/synx/internal/printer"
)

func newFmtCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print FILE in normalised form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return commandError(cmd, err)
			}
			f, err := parser.ParseFile(string(data), parser.WithFilename(path))
			if err != nil {
				return commandError(cmd, err)
			}
			out := printer.File(f, a.printOptions()...)

			if !write {
				printf(cmd, "%s", out)
				return nil
			}
			if out == string(data) {
				a.logger.Debug("File already formatted", "path", path)
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return commandError(cmd, err)
			}
			if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
				return commandError(cmd, err)
			}
			a.logger.Info("File formatted", "path", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to FILE instead of stdout")
	return cmd
}

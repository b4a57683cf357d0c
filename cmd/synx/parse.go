package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/malphas-lang/synx/internal/parser"
	"github.com/malphas-lang/synx/internal/printer"
)

var parseRules = map[string]func(src string, opts ...parser.Option) (string, error){
	"file": func(src string, opts ...parser.Option) (string, error) {
		f, err := parser.ParseFile(src, opts...)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d attributes, %d declarations", len(f.Attrs), len(f.Decls)), nil
	},
	"decl": func(src string, opts ...parser.Option) (string, error) {
		d, err := parser.ParseDecl(src, opts...)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%T", d), nil
	},
	"derive": func(src string, opts ...parser.Option) (string, error) {
		in, err := parser.ParseMacroInput(src, opts...)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s with %d fields", in.Kind(), in.Name.Name, in.FieldCount()), nil
	},
	"type": func(src string, opts ...parser.Option) (string, error) {
		t, err := parser.ParseType(src, opts...)
		if err != nil {
			return "", err
		}
		return printer.Type(t), nil
	},
	"expr": func(src string, opts ...parser.Option) (string, error) {
		e, err := parser.ParseExpr(src, opts...)
		if err != nil {
			return "", err
		}
		return printer.Expr(e), nil
	},
}

func newParseCmd(a *app) *cobra.Command {
	var rule string
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Check that FILE parses with the given rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse, ok := parseRules[rule]
			if !ok {
				return commandError(cmd, fmt.Errorf("unknown rule %q (want file, decl, derive, type or expr)", rule))
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return commandError(cmd, err)
			}
			summary, err := parse(string(data), parser.WithFilename(args[0]))
			if err != nil {
				return commandError(cmd, err)
			}
			a.logger.Debug("Parsed", "path", args[0], "rule", rule)
			printf(cmd, "%s: ok (%s)\n", args[0], summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&rule, "rule", "file", "grammar rule: file, decl, derive, type or expr")
	return cmd
}

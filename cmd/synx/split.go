package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/parser"
	"github.com/malphas-lang/synx/internal/printer"
)

func newSplitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split FILE",
		Short: "Print the impl generics, type generics and where clause of each struct and enum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return commandError(cmd, err)
			}
			f, err := parser.ParseFile(string(data), parser.WithFilename(args[0]))
			if err != nil {
				return commandError(cmd, err)
			}
			n := splitDecls(cmd, f.Decls, "")
			a.logger.Debug("Split generics", "path", args[0], "decls", n)
			return nil
		},
	}
}

func splitDecls(cmd *cobra.Command, decls []ast.Decl, prefix string) (n int) {
	for _, d := range decls {
		if m, ok := d.(*ast.ModDecl); ok {
			n += splitDecls(cmd, m.Decls, prefix+m.Name.Name+"::")
			continue
		}
		in, ok := ast.MacroInputFromDecl(d)
		if !ok {
			continue
		}
		ig, tg, wc := ast.SplitForImpl(in.Generics)
		printf(cmd, "%s%s %s\n", prefix, in.Kind(), in.Name.Name)
		printf(cmd, "  impl:  %s\n", printer.ImplGenerics(ig))
		printf(cmd, "  type:  %s\n", printer.TypeGenerics(tg))
		printf(cmd, "  where: %s\n", printer.WhereClause(wc))
		n++
	}
	return n
}

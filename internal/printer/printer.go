// Package printer serializes syntax trees back to source text. Printing a
// tree produced by the parser and parsing the output yields an equal tree.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

type config struct {
	indent string
}

// Option configures printing.
type Option func(*config)

// WithIndent sets the indentation width in spaces. Zero or less indents
// with tabs.
func WithIndent(n int) Option {
	return func(c *config) {
		if n <= 0 {
			c.indent = "\t"
			return
		}
		c.indent = strings.Repeat(" ", n)
	}
}

func newConfig(opts []Option) config {
	c := config{indent: strings.Repeat(" ", DefaultIndent)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Fprint writes the source form of node to w. It fails for node kinds that
// have no source form on their own.
func Fprint(w io.Writer, node ast.Node, opts ...Option) error {
	p := newPrinter(newConfig(opts))
	if !p.node(node) {
		return fmt.Errorf("printer: unsupported node type %T", node)
	}
	_, err := io.WriteString(w, p.String())
	return err
}

// Print returns the source form of node. It panics for node kinds that
// Fprint rejects.
func Print(node ast.Node, opts ...Option) string {
	var b strings.Builder
	if err := Fprint(&b, node, opts...); err != nil {
		panic(err)
	}
	return b.String()
}

func run(opts []Option, fn func(p *printer)) string {
	p := newPrinter(newConfig(opts))
	fn(p)
	return p.String()
}

// Type prints a type.
func Type(t ast.TypeExpr, opts ...Option) string {
	return run(opts, func(p *printer) { p.typ(t) })
}

// Path prints a path with its generic arguments.
func Path(path *ast.Path, opts ...Option) string {
	return run(opts, func(p *printer) { p.path(path) })
}

// Generics prints a parameter list such as `<'a, T: Clone = u8>`. The where
// clause is not included; see WhereClause.
func Generics(g *ast.Generics, opts ...Option) string {
	return run(opts, func(p *printer) { p.generics(g) })
}

// WhereClause prints `where` and its predicates, or "" for a nil clause.
func WhereClause(wc *ast.WhereClause, opts ...Option) string {
	return run(opts, func(p *printer) { p.whereClause(wc) })
}

// ImplGenerics prints the impl header fragment of a split, `<'a, T: Clone>`.
func ImplGenerics(ig ast.ImplGenerics, opts ...Option) string {
	return run(opts, func(p *printer) { p.generics(ig.Params) })
}

// TypeGenerics prints the type position fragment of a split, `<'a, T>`.
func TypeGenerics(tg ast.TypeGenerics, opts ...Option) string {
	return run(opts, func(p *printer) { p.typeGenerics(tg) })
}

// MacroInput prints a struct or enum declaration.
func MacroInput(in *ast.MacroInput, opts ...Option) string {
	return run(opts, func(p *printer) { p.macroInput(in) })
}

// Attribute prints an attribute, as a doc comment when it was written as one.
func Attribute(a *ast.Attribute, opts ...Option) string {
	return run(opts, func(p *printer) { p.attr(a) })
}

// Tokens prints token trees.
func Tokens(ts lexer.TokenStream, opts ...Option) string {
	return run(opts, func(p *printer) { p.tokens(ts) })
}

// node dispatches on the node kinds both surface profiles share. It
// reports false when node has no standalone source form.
func (p *printer) node(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.MacroInput:
		p.macroInput(n)
	case *ast.Attribute:
		p.attr(n)
	case *ast.Path:
		p.path(n)
	case *ast.PathSegment:
		p.pathSegment(n, false)
	case *ast.Ident:
		p.ident(n)
	case *ast.Lifetime:
		p.tok(n.Name)
	case *ast.Lit:
		p.lit(n)
	case *ast.Generics:
		p.generics(n)
	case *ast.WhereClause:
		p.whereClause(n)
	case ast.ImplGenerics:
		p.generics(n.Params)
	case ast.TypeGenerics:
		p.typeGenerics(n)
	case *ast.Field:
		p.field(n)
	case *ast.Variant:
		p.variant(n)
	case *ast.Visibility:
		p.vis(*n)
	case ast.TypeExpr:
		p.typ(n)
	case ast.TypeParamBound:
		p.bound(n)
	case ast.GenericArg:
		p.genericArg(n)
	case ast.WherePredicate:
		p.wherePredicate(n)
	case ast.Meta:
		p.meta(n)
	case ast.Expr:
		p.expr(n)
	default:
		return p.fullNode(node)
	}
	return true
}

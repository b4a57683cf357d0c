//go:build minimal

package parser

import "github.com/malphas-lang/synx/internal/ast"

// parseConstExpr parses an array length or an enum discriminant.
func (p *Parser) parseConstExpr() (ast.Expr, error) {
	return p.parseSimpleConstExpr()
}

// parseConstArg parses a const generic argument.
func (p *Parser) parseConstArg() (ast.Expr, error) {
	return p.parseSimpleConstExpr()
}

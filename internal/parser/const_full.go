//go:build !minimal

package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// parseConstExpr parses an array length or an enum discriminant.
func (p *Parser) parseConstExpr() (ast.Expr, error) {
	return p.parseExpr()
}

// parseConstArg parses a const generic argument: a literal, a negated
// literal or a block.
func (p *Parser) parseConstArg() (ast.Expr, error) {
	if p.atGroup(lexer.DelimBrace) {
		return p.parseBlockExpr()
	}
	return p.parseSimpleConstExpr()
}

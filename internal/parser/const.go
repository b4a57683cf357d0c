package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// parseSimpleConstExpr parses the constant forms every profile understands:
// a literal, a negated literal or a path.
func (p *Parser) parseSimpleConstExpr() (ast.Expr, error) {
	start := p.here()
	tok := p.peek()
	switch {
	case tok.Type == lexer.MINUS:
		p.next()
		lit, err := p.parseLit()
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpr{
			Pos:     ast.Pos{Loc: p.span(start)},
			Op:      lexer.MINUS,
			Operand: &ast.LitExpr{Pos: lit.Pos, Lit: lit},
		}, nil
	case lexer.IsLiteral(tok.Type):
		lit, err := p.parseLit()
		if err != nil {
			return nil, err
		}
		return &ast.LitExpr{Pos: lit.Pos, Lit: lit}, nil
	case isPathSegmentStart(tok) || tok.Type == lexer.DOUBLE_COLON:
		path, err := p.parsePath(pathExpr)
		if err != nil {
			return nil, err
		}
		return &ast.PathExpr{Pos: path.Pos, Path: path}, nil
	}
	return nil, p.errorf("expected constant expression, found %s", describe(tok))
}

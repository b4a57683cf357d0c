//go:build !minimal

package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// parseStmts parses the contents of a block. Empty statements are dropped.
func (p *Parser) parseStmts() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if p.eat(lexer.SEMICOLON) {
			continue
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	defer p.rule("statement")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.LET) {
		return p.parseLet(start, attrs)
	}
	if p.atDeclStart() {
		d, err := p.parseDeclAfterAttrs(start, attrs)
		if err != nil {
			return nil, err
		}
		return &ast.DeclStmt{Pos: ast.Pos{Loc: d.Span()}, Decl: d}, nil
	}
	if len(attrs) > 0 {
		return nil, p.invalidf(attrs[0].Span(), "attributes on expression statements are not supported")
	}

	e, ended, err := p.parseExprEarly()
	if err != nil {
		return nil, err
	}
	s := &ast.ExprStmt{Expr: e}
	switch {
	case p.eat(lexer.SEMICOLON):
		s.Semi = true
	case ended, p.atEnd(), ast.IsBlockLike(e):
	default:
		return nil, p.errorf("expected `;`, found %s", describe(p.peek()))
	}
	s.Pos = ast.Pos{Loc: p.span(start)}
	return s, nil
}

func (p *Parser) parseLet(start lexer.Span, attrs []*ast.Attribute) (ast.Stmt, error) {
	if _, err := p.expect(lexer.LET); err != nil {
		return nil, err
	}
	pat, err := p.parsePat()
	if err != nil {
		return nil, err
	}
	s := &ast.LetStmt{Attrs: attrs, Pat: pat}
	if p.eat(lexer.COLON) {
		if s.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if p.eat(lexer.ASSIGN) {
		if s.Init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	s.Pos = ast.Pos{Loc: p.span(start)}
	return s, nil
}

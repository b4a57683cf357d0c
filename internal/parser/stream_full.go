//go:build !minimal

package parser

import "github.com/malphas-lang/synx/internal/ast"

// Expr parses an expression.
func (p *Parser) Expr() (ast.Expr, error) { return p.parseExpr() }

// Block parses a brace-delimited block.
func (p *Parser) Block() (*ast.Block, error) { return p.parseBlock() }

// Pat parses a single pattern.
func (p *Parser) Pat() (ast.Pat, error) { return p.parsePat() }

//go:build !minimal

package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// parsePats parses `|`-separated alternatives with an optional leading `|`,
// as in match arms and `if let`.
func (p *Parser) parsePats() ([]ast.Pat, error) {
	p.eat(lexer.PIPE)
	var pats []ast.Pat
	for {
		pat, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		pats = append(pats, pat)
		if !p.eat(lexer.PIPE) {
			return pats, nil
		}
	}
}

func (p *Parser) parsePat() (ast.Pat, error) {
	defer p.rule("pattern")()

	start := p.here()
	tok := p.peek()
	switch {
	case tok.Type == lexer.UNDERSCORE:
		p.next()
		return &ast.WildPat{Pos: ast.Pos{Loc: tok.Span}}, nil

	case tok.Type == lexer.DOT_DOT:
		p.next()
		return &ast.RestPat{Pos: ast.Pos{Loc: tok.Span}}, nil

	case tok.Type == lexer.AMPERSAND || tok.Type == lexer.AND:
		p.eat(lexer.AMPERSAND)
		mut := p.eat(lexer.MUT)
		inner, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		return &ast.RefPat{Pos: ast.Pos{Loc: p.span(start)}, Mutable: mut, Pat: inner}, nil

	case p.atGroup(lexer.DelimParen):
		elems, err := p.parsePatList(lexer.DelimParen)
		if err != nil {
			return nil, err
		}
		return &ast.TuplePat{Pos: ast.Pos{Loc: p.span(start)}, Elems: elems}, nil

	case p.atGroup(lexer.DelimBracket):
		elems, err := p.parsePatList(lexer.DelimBracket)
		if err != nil {
			return nil, err
		}
		return &ast.SlicePat{Pos: ast.Pos{Loc: p.span(start)}, Elems: elems}, nil

	case tok.Type == lexer.REF || tok.Type == lexer.MUT:
		return p.parseIdentPat()

	case tok.Type == lexer.MINUS || lexer.IsLiteral(tok.Type):
		lo, err := p.parseSimpleConstExpr()
		if err != nil {
			return nil, err
		}
		if p.at(lexer.DOT_DOT_EQ) || p.at(lexer.DOT_DOT_DOT) {
			return p.parseRangePat(start, lo)
		}
		return &ast.LitPat{Pos: ast.Pos{Loc: p.span(start)}, Expr: lo}, nil

	case tok.Type == lexer.LT || tok.Type == lexer.SHL:
		qself, path, err := p.parseQPath(pathExpr)
		if err != nil {
			return nil, err
		}
		if p.at(lexer.DOT_DOT_EQ) || p.at(lexer.DOT_DOT_DOT) {
			return p.parseRangePat(start, &ast.PathExpr{Pos: ast.Pos{Loc: p.span(start)}, QSelf: qself, Path: path})
		}
		return &ast.PathPat{Pos: ast.Pos{Loc: p.span(start)}, QSelf: qself, Path: path}, nil

	case isPathSegmentStart(tok) || tok.Type == lexer.DOUBLE_COLON:
		return p.parsePathPat()
	}
	return nil, p.errorf("expected pattern, found %s", describe(tok))
}

func (p *Parser) parsePatList(delim lexer.Delimiter) ([]ast.Pat, error) {
	sub, _, err := p.expectGroup(delim)
	if err != nil {
		return nil, err
	}
	res, err := commaList(sub, sub.parsePat)
	if err != nil {
		return nil, err
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// parseIdentPat parses `ref mut name @ sub` with every part but the name optional.
func (p *Parser) parseIdentPat() (ast.Pat, error) {
	start := p.here()
	byRef := p.eat(lexer.REF)
	mut := p.eat(lexer.MUT)
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	ip := &ast.IdentPat{ByRef: byRef, Mutable: mut, Name: name}
	if p.eat(lexer.AT) {
		if ip.Sub, err = p.parsePat(); err != nil {
			return nil, err
		}
	}
	ip.Pos = ast.Pos{Loc: p.span(start)}
	return ip, nil
}

func (p *Parser) parseRangePat(start lexer.Span, lo ast.Expr) (ast.Pat, error) {
	dots := p.next().Type == lexer.DOT_DOT_DOT
	var hi ast.Expr
	var err error
	if p.at(lexer.LT) || p.at(lexer.SHL) {
		qself, path, qerr := p.parseQPath(pathExpr)
		if qerr != nil {
			return nil, qerr
		}
		hi = &ast.PathExpr{Pos: path.Pos, QSelf: qself, Path: path}
	} else if hi, err = p.parseSimpleConstExpr(); err != nil {
		return nil, err
	}
	return &ast.RangePat{Pos: ast.Pos{Loc: p.span(start)}, Lo: lo, Hi: hi, Dots: dots}, nil
}

// parsePathPat parses the patterns that start with a path: bindings, unit
// and tuple structs, struct patterns and path range bounds.
func (p *Parser) parsePathPat() (ast.Pat, error) {
	start := p.here()
	path, err := p.parsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	switch {
	case p.atGroup(lexer.DelimParen):
		elems, err := p.parsePatList(lexer.DelimParen)
		if err != nil {
			return nil, err
		}
		return &ast.TupleStructPat{Pos: ast.Pos{Loc: p.span(start)}, Path: path, Elems: elems}, nil

	case p.atGroup(lexer.DelimBrace):
		return p.parseStructPat(start, path)

	case p.at(lexer.DOT_DOT_EQ) || p.at(lexer.DOT_DOT_DOT):
		return p.parseRangePat(start, &ast.PathExpr{Pos: path.Pos, Path: path})
	}

	if name, ok := bindingName(path); ok {
		ip := &ast.IdentPat{Name: name}
		if p.eat(lexer.AT) {
			if ip.Sub, err = p.parsePat(); err != nil {
				return nil, err
			}
		}
		ip.Pos = ast.Pos{Loc: p.span(start)}
		return ip, nil
	}
	return &ast.PathPat{Pos: path.Pos, Path: path}, nil
}

// bindingName reports whether path is a lone identifier, which binds a new
// name rather than naming a constant.
func bindingName(path *ast.Path) (*ast.Ident, bool) {
	if path.Global || len(path.Segments) != 1 {
		return nil, false
	}
	seg := path.Segments[0]
	if seg.Args != nil || lexer.IsKeyword(seg.Ident.Name) {
		return nil, false
	}
	return seg.Ident, true
}

func (p *Parser) parseStructPat(start lexer.Span, path *ast.Path) (ast.Pat, error) {
	sub, _, err := p.expectGroup(lexer.DelimBrace)
	if err != nil {
		return nil, err
	}
	sp := &ast.StructPat{Path: path}
	for !sub.atEnd() {
		if sub.eat(lexer.DOT_DOT) {
			sp.Rest = true
			break
		}
		fp, err := sub.parseFieldPat()
		if err != nil {
			return nil, err
		}
		sp.Fields = append(sp.Fields, fp)
		if !sub.eat(lexer.COMMA) {
			break
		}
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	sp.Pos = ast.Pos{Loc: p.span(start)}
	return sp, nil
}

// parseFieldPat parses `name: pat` or the shorthand `ref mut name`.
func (p *Parser) parseFieldPat() (*ast.FieldPat, error) {
	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.IDENT) && p.peekN(1).Type == lexer.COLON {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		p.next()
		pat, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		return &ast.FieldPat{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Name: name, Pat: pat}, nil
	}
	pat, err := p.parseIdentPat()
	if err != nil {
		return nil, err
	}
	ip := pat.(*ast.IdentPat)
	if ip.Sub != nil {
		return nil, p.invalidf(ip.Span(), "shorthand field pattern `%s` cannot have a subpattern", ip.Name.Name)
	}
	return &ast.FieldPat{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Name: ip.Name, Pat: ip, Shorthand: true}, nil
}

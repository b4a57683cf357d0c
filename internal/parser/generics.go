package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// parseGenerics parses an optional `<...>` parameter list. The where clause
// is parsed separately by the caller at its position in the declaration.
// The result is never nil.
func (p *Parser) parseGenerics() (*ast.Generics, error) {
	defer p.rule("generics")()

	g := &ast.Generics{}
	if !p.atPunct(lexer.LT) {
		return g, nil
	}
	start := p.here()
	p.eat(lexer.LT)

	for !p.atPunct(lexer.GT) {
		paramStart := p.here()
		attrs, err := p.parseOuterAttrs()
		if err != nil {
			return nil, err
		}
		if p.at(lexer.LIFETIME) {
			if len(g.TypeParams) > 0 {
				return nil, p.invalidf(p.here(), "lifetime parameters must be declared prior to type parameters")
			}
			lp, err := p.parseLifetimeParam()
			if err != nil {
				return nil, err
			}
			lp.Attrs = attrs
			lp.Pos = ast.Pos{Loc: p.span(paramStart)}
			g.Lifetimes = append(g.Lifetimes, lp)
		} else {
			tp, err := p.parseTypeParam()
			if err != nil {
				return nil, err
			}
			tp.Attrs = attrs
			tp.Pos = ast.Pos{Loc: p.span(paramStart)}
			g.TypeParams = append(g.TypeParams, tp)
		}
		if !p.eat(lexer.COMMA) {
			break
		}
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return nil, err
	}
	g.Pos = ast.Pos{Loc: p.span(start)}
	return g, nil
}

// parseGenericsWithWhere parses generics immediately followed by an optional where clause.
func (p *Parser) parseGenericsWithWhere() (*ast.Generics, error) {
	g, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}
	if g.Where, err = p.parseWhereClause(); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) parseLifetimeParam() (*ast.LifetimeParam, error) {
	lt, err := p.parseLifetime()
	if err != nil {
		return nil, err
	}
	lp := &ast.LifetimeParam{Pos: lt.Pos, Lifetime: lt}
	if p.eat(lexer.COLON) {
		if lp.Bounds, err = p.parseLifetimeBounds(); err != nil {
			return nil, err
		}
	}
	return lp, nil
}

// parseLifetimeBounds parses `'a + 'b`, possibly empty.
func (p *Parser) parseLifetimeBounds() ([]*ast.Lifetime, error) {
	var bounds []*ast.Lifetime
	for p.at(lexer.LIFETIME) {
		lt, err := p.parseLifetime()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, lt)
		if !p.eat(lexer.PLUS) {
			break
		}
	}
	return bounds, nil
}

func (p *Parser) parseTypeParam() (*ast.TypeParam, error) {
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	tp := &ast.TypeParam{Pos: id.Pos, Ident: id}
	if p.eat(lexer.COLON) {
		if tp.Bounds, err = p.parseBounds(true); err != nil {
			return nil, err
		}
	}
	if p.eat(lexer.ASSIGN) {
		if tp.Default, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	return tp, nil
}

// parseBoundLifetimes parses the `for<'a, 'b>` binder of higher-ranked bounds.
func (p *Parser) parseBoundLifetimes() ([]*ast.LifetimeParam, error) {
	if _, err := p.expect(lexer.FOR); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LT); err != nil {
		return nil, err
	}
	res, err := punctuated(p, delimitedConfig{
		Closing:           lexer.GT,
		AllowEmpty:        true,
		AllowTrailing:     true,
		MissingElementMsg: "expected lifetime",
	}, func(int) (*ast.LifetimeParam, error) {
		return p.parseLifetimeParam()
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (p *Parser) atBoundStart() bool {
	tok := p.peek()
	switch tok.Type {
	case lexer.LIFETIME, lexer.QUESTION, lexer.FOR, lexer.DOUBLE_COLON:
		return true
	}
	return isPathSegmentStart(tok) || p.atGroup(lexer.DelimParen)
}

// parseBounds parses a `+` separated bound list, which may be empty. Without
// allowPlus only one bound is read.
func (p *Parser) parseBounds(allowPlus bool) ([]ast.TypeParamBound, error) {
	defer p.rule("bounds")()

	var bounds []ast.TypeParamBound
	for p.atBoundStart() {
		b, err := p.parseBound()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, b)
		if !allowPlus || !p.eat(lexer.PLUS) {
			break
		}
	}
	return bounds, nil
}

func (p *Parser) parseBound() (ast.TypeParamBound, error) {
	start := p.here()
	if p.at(lexer.LIFETIME) {
		lt, err := p.parseLifetime()
		if err != nil {
			return nil, err
		}
		return &ast.LifetimeBound{Pos: lt.Pos, Lifetime: lt}, nil
	}
	if sub, _, ok := p.group(lexer.DelimParen); ok {
		b, err := sub.parseTraitBound()
		if err != nil {
			return nil, err
		}
		if err := sub.finish(); err != nil {
			return nil, err
		}
		b.Paren = true
		b.Pos = ast.Pos{Loc: p.span(start)}
		return b, nil
	}
	return p.parseTraitBound()
}

func (p *Parser) parseTraitBound() (*ast.TraitBound, error) {
	start := p.here()
	b := &ast.TraitBound{}
	b.Maybe = p.eat(lexer.QUESTION)
	if p.at(lexer.FOR) {
		lts, err := p.parseBoundLifetimes()
		if err != nil {
			return nil, err
		}
		b.Lifetimes = lts
	}
	path, err := p.parsePath(pathType)
	if err != nil {
		return nil, err
	}
	b.Path = path
	b.Pos = ast.Pos{Loc: p.span(start)}
	return b, nil
}

func (p *Parser) atWhereEnd() bool {
	return p.atEnd() || p.atGroup(lexer.DelimBrace) || p.at(lexer.SEMICOLON) || p.at(lexer.ASSIGN)
}

// parseWhereClause parses an optional where clause. It returns nil when the
// keyword is absent.
func (p *Parser) parseWhereClause() (*ast.WhereClause, error) {
	if !p.at(lexer.WHERE) {
		return nil, nil
	}
	defer p.rule("where clause")()

	start := p.here()
	p.next()
	wc := &ast.WhereClause{}
	for !p.atWhereEnd() {
		pred, err := p.parseWherePredicate()
		if err != nil {
			return nil, err
		}
		wc.Predicates = append(wc.Predicates, pred)
		if !p.eat(lexer.COMMA) {
			break
		}
	}
	wc.Pos = ast.Pos{Loc: p.span(start)}
	return wc, nil
}

func (p *Parser) parseWherePredicate() (ast.WherePredicate, error) {
	start := p.here()
	if p.at(lexer.LIFETIME) {
		lt, err := p.parseLifetime()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		bounds, err := p.parseLifetimeBounds()
		if err != nil {
			return nil, err
		}
		return &ast.LifetimePredicate{Pos: ast.Pos{Loc: p.span(start)}, Lifetime: lt, Bounds: bounds}, nil
	}

	pred := &ast.BoundPredicate{}
	if p.at(lexer.FOR) {
		lts, err := p.parseBoundLifetimes()
		if err != nil {
			return nil, err
		}
		pred.Lifetimes = lts
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	pred.Bounded = ty
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	if pred.Bounds, err = p.parseBounds(true); err != nil {
		return nil, err
	}
	pred.Pos = ast.Pos{Loc: p.span(start)}
	return pred, nil
}

package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

func (p *Parser) parseType() (ast.TypeExpr, error) {
	return p.parseTypeOpt(true)
}

// parseTypeNoPlus parses a type that cannot continue with `+ Bound`, as
// after `&`, `*const`, `as` and `->` of the Fn sugar.
func (p *Parser) parseTypeNoPlus() (ast.TypeExpr, error) {
	return p.parseTypeOpt(false)
}

// parseTypeOpt tries the type alternatives in this fixed order, and the
// first one that matches wins:
//
//	never `!`
//	parenthesized or tuple `(A, B)`
//	slice or array `[T]`, `[T; N]`
//	pointer `*const T`
//	reference `&'a mut T`, whose element again tries tuple before path
//	bare fn `for<'a> unsafe extern "C" fn(A) -> B`
//	infer `_`
//	impl trait `impl A + B`
//	trait object `dyn A + B`
//	qualified path `<T as Trait>::Name`
//	path `a::B<C>`, or a bare trait object `A + B` when plus is allowed
func (p *Parser) parseTypeOpt(allowPlus bool) (ast.TypeExpr, error) {
	defer p.rule("type")()

	return alt(p, "type",
		p.parseNeverType,
		p.parseTupleType,
		p.parseSliceType,
		p.parsePtrType,
		p.parseRefType,
		p.parseBareFnType,
		p.parseInferType,
		func() (ast.TypeExpr, error) { return p.parseImplTraitType(allowPlus) },
		func() (ast.TypeExpr, error) { return p.parseDynType(allowPlus) },
		p.parseQPathType,
		func() (ast.TypeExpr, error) { return p.parsePathOrTraitObject(allowPlus) },
	)
}

func (p *Parser) parseNeverType() (ast.TypeExpr, error) {
	tok, err := p.expect(lexer.BANG)
	if err != nil {
		return nil, err
	}
	return &ast.NeverType{Pos: ast.Pos{Loc: tok.Span}}, nil
}

func (p *Parser) parseTupleType() (ast.TypeExpr, error) {
	start := p.here()
	sub, _, err := p.expectGroup(lexer.DelimParen)
	if err != nil {
		return nil, err
	}
	elems, err := commaList(sub, sub.parseType)
	if err != nil {
		return nil, err
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	span := p.span(start)
	if len(elems.Items) == 1 && !elems.Trailing {
		return &ast.ParenType{Pos: ast.Pos{Loc: span}, Elem: elems.Items[0]}, nil
	}
	return &ast.TupleType{Pos: ast.Pos{Loc: span}, Elems: elems.Items}, nil
}

func (p *Parser) parseSliceType() (ast.TypeExpr, error) {
	start := p.here()
	sub, _, err := p.expectGroup(lexer.DelimBracket)
	if err != nil {
		return nil, err
	}
	elem, err := sub.parseType()
	if err != nil {
		return nil, err
	}
	if !sub.eat(lexer.SEMICOLON) {
		if err := sub.finish(); err != nil {
			return nil, err
		}
		return &ast.SliceType{Pos: ast.Pos{Loc: p.span(start)}, Elem: elem}, nil
	}
	n, err := sub.parseConstExpr()
	if err != nil {
		return nil, err
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	return &ast.ArrayType{Pos: ast.Pos{Loc: p.span(start)}, Elem: elem, Len: n}, nil
}

func (p *Parser) parsePtrType() (ast.TypeExpr, error) {
	start := p.here()
	if _, err := p.expect(lexer.ASTERISK); err != nil {
		return nil, err
	}
	ptr := &ast.PointerType{}
	switch {
	case p.eat(lexer.MUT):
		ptr.Mutable = true
	case p.eat(lexer.CONST):
	default:
		return nil, p.errorf("expected `const` or `mut` after `*`, found %s", describe(p.peek()))
	}
	elem, err := p.parseTypeNoPlus()
	if err != nil {
		return nil, err
	}
	ptr.Elem = elem
	ptr.Pos = ast.Pos{Loc: p.span(start)}
	return ptr, nil
}

func (p *Parser) parseRefType() (ast.TypeExpr, error) {
	start := p.here()
	if _, err := p.expect(lexer.AMPERSAND); err != nil {
		return nil, err
	}
	ref := &ast.ReferenceType{}
	if p.at(lexer.LIFETIME) {
		lt, err := p.parseLifetime()
		if err != nil {
			return nil, err
		}
		ref.Lifetime = lt
	}
	ref.Mutable = p.eat(lexer.MUT)
	elem, err := p.parseTypeNoPlus()
	if err != nil {
		return nil, err
	}
	ref.Elem = elem
	ref.Pos = ast.Pos{Loc: p.span(start)}
	return ref, nil
}

func (p *Parser) parseBareFnType() (ast.TypeExpr, error) {
	defer p.rule("fn type")()

	start := p.here()
	fn := &ast.FnType{}
	if p.at(lexer.FOR) {
		lts, err := p.parseBoundLifetimes()
		if err != nil {
			return nil, err
		}
		fn.Lifetimes = lts
	}
	fn.Unsafe = p.eat(lexer.UNSAFE)
	if p.at(lexer.EXTERN) {
		abi, err := p.parseAbi()
		if err != nil {
			return nil, err
		}
		fn.Abi = abi
	}
	if _, err := p.expect(lexer.FN); err != nil {
		return nil, err
	}
	sub, _, err := p.expectGroup(lexer.DelimParen)
	if err != nil {
		return nil, err
	}
	for !sub.atEnd() {
		if sub.eat(lexer.DOT_DOT_DOT) {
			fn.Variadic = true
			break
		}
		arg, err := sub.parseFnTypeArg()
		if err != nil {
			return nil, err
		}
		fn.Inputs = append(fn.Inputs, arg)
		if !sub.eat(lexer.COMMA) {
			break
		}
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	if p.eat(lexer.ARROW) {
		out, err := p.parseTypeNoPlus()
		if err != nil {
			return nil, err
		}
		fn.Output = out
	}
	fn.Pos = ast.Pos{Loc: p.span(start)}
	return fn, nil
}

func (p *Parser) parseFnTypeArg() (*ast.FnTypeArg, error) {
	start := p.here()
	arg := &ast.FnTypeArg{}
	tok := p.peek()
	if (tok.Type == lexer.IDENT || tok.Type == lexer.UNDERSCORE) && p.peekN(1).Type == lexer.COLON {
		p.next()
		p.next()
		if tok.Type == lexer.UNDERSCORE {
			arg.Wild = true
		} else {
			arg.Name = &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}
		}
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	arg.Type = ty
	arg.Pos = ast.Pos{Loc: p.span(start)}
	return arg, nil
}

func (p *Parser) parseAbi() (*ast.Abi, error) {
	start := p.here()
	if _, err := p.expect(lexer.EXTERN); err != nil {
		return nil, err
	}
	abi := &ast.Abi{}
	if tt := p.peek().Type; tt == lexer.STRING || tt == lexer.RAW_STRING {
		lit, err := p.parseLit()
		if err != nil {
			return nil, err
		}
		abi.Name = lit
	}
	abi.Pos = ast.Pos{Loc: p.span(start)}
	return abi, nil
}

func (p *Parser) parseInferType() (ast.TypeExpr, error) {
	tok, err := p.expect(lexer.UNDERSCORE)
	if err != nil {
		return nil, err
	}
	return &ast.InferType{Pos: ast.Pos{Loc: tok.Span}}, nil
}

func (p *Parser) parseImplTraitType(allowPlus bool) (ast.TypeExpr, error) {
	start := p.here()
	if _, err := p.expect(lexer.IMPL); err != nil {
		return nil, err
	}
	bounds, err := p.parseBounds(allowPlus)
	if err != nil {
		return nil, err
	}
	if len(bounds) == 0 {
		return nil, p.errorf("expected trait bound after `impl`, found %s", describe(p.peek()))
	}
	return &ast.ImplTraitType{Pos: ast.Pos{Loc: p.span(start)}, Bounds: bounds}, nil
}

func (p *Parser) parseDynType(allowPlus bool) (ast.TypeExpr, error) {
	start := p.here()
	if _, err := p.expect(lexer.DYN); err != nil {
		return nil, err
	}
	bounds, err := p.parseBounds(allowPlus)
	if err != nil {
		return nil, err
	}
	if len(bounds) == 0 {
		return nil, p.errorf("expected trait bound after `dyn`, found %s", describe(p.peek()))
	}
	return &ast.TraitObjectType{Pos: ast.Pos{Loc: p.span(start)}, Dyn: true, Bounds: bounds}, nil
}

func (p *Parser) parseQPathType() (ast.TypeExpr, error) {
	start := p.here()
	if !p.atPunct(lexer.LT) {
		return nil, p.errorf("expected `<`, found %s", describe(p.peek()))
	}
	qself, path, err := p.parseQPath(pathType)
	if err != nil {
		return nil, err
	}
	return &ast.PathType{Pos: ast.Pos{Loc: p.span(start)}, QSelf: qself, Path: path}, nil
}

// parsePathOrTraitObject parses a path type. A `for<'a>` prefix or a
// following `+` turns it into a trait object without `dyn`.
func (p *Parser) parsePathOrTraitObject(allowPlus bool) (ast.TypeExpr, error) {
	start := p.here()
	if p.at(lexer.FOR) {
		bounds, err := p.parseBounds(allowPlus)
		if err != nil {
			return nil, err
		}
		return &ast.TraitObjectType{Pos: ast.Pos{Loc: p.span(start)}, Bounds: bounds}, nil
	}

	path, err := p.parsePath(pathType)
	if err != nil {
		return nil, err
	}
	if !allowPlus || !p.at(lexer.PLUS) {
		return &ast.PathType{Pos: ast.Pos{Loc: p.span(start)}, Path: path}, nil
	}
	p.next()
	bounds := []ast.TypeParamBound{&ast.TraitBound{Pos: path.Pos, Path: path}}
	more, err := p.parseBounds(true)
	if err != nil {
		return nil, err
	}
	bounds = append(bounds, more...)
	return &ast.TraitObjectType{Pos: ast.Pos{Loc: p.span(start)}, Bounds: bounds}, nil
}

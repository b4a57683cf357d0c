package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// parseVisibility parses `pub`, `pub(crate)`, `pub(self)`, `pub(super)` and
// `pub(in path)`. A parenthesized group that is none of these is left for
// the caller, as in `struct S(pub (u8, u16));`.
func (p *Parser) parseVisibility() (ast.Visibility, error) {
	tok := p.peek()
	if tok.Type != lexer.PUB {
		return ast.Visibility{}, nil
	}
	p.next()
	vis := ast.Visibility{Kind: ast.VisPublic}

	c := p.mark()
	if sub, _, ok := p.group(lexer.DelimParen); ok {
		if sub.parseVisRestriction(&vis) {
			vis.Pos = ast.Pos{Loc: p.span(tok.Span)}
			return vis, nil
		}
		p.reset(c)
	}
	vis.Pos = ast.Pos{Loc: tok.Span}
	return vis, nil
}

func (p *Parser) parseVisRestriction(vis *ast.Visibility) bool {
	tok := p.peek()
	switch {
	case tok.Type == lexer.CRATE && p.peekN(1).Type == lexer.EOF:
		p.next()
		vis.Kind = ast.VisCrate
		return true
	case (tok.Type == lexer.SELF || tok.Type == lexer.SUPER) && p.peekN(1).Type == lexer.EOF:
		p.next()
		vis.Kind = ast.VisRestricted
		vis.Path = &ast.Path{
			Pos:      ast.Pos{Loc: tok.Span},
			Segments: []*ast.PathSegment{{Pos: ast.Pos{Loc: tok.Span}, Ident: &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}}},
		}
		return true
	case tok.Type == lexer.IN:
		p.next()
		path, err := p.parsePath(pathMod)
		if err != nil || !p.atEnd() {
			return false
		}
		vis.Kind = ast.VisRestricted
		vis.Path = path
		vis.In = true
		return true
	}
	return false
}

// parseMacroInput parses a struct or enum declaration.
func (p *Parser) parseMacroInput() (*ast.MacroInput, error) {
	defer p.rule("derive input")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}
	switch {
	case p.at(lexer.STRUCT):
		return p.parseStructRest(start, attrs, vis)
	case p.at(lexer.ENUM):
		return p.parseEnumRest(start, attrs, vis)
	}
	return nil, p.errorf("expected `struct` or `enum`, found %s", describe(p.peek()))
}

// parseStructInput is parseMacroInput restricted to structs.
func (p *Parser) parseStructInput() (*ast.MacroInput, error) {
	start := p.here()
	in, err := p.parseMacroInput()
	if err != nil {
		return nil, err
	}
	if in.IsEnum() {
		return nil, p.invalidf(start, "expected a struct, found enum `%s`", in.Name.Name)
	}
	return in, nil
}

// parseStructRest parses a struct declaration from the `struct` keyword on.
func (p *Parser) parseStructRest(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (*ast.MacroInput, error) {
	if _, err := p.expect(lexer.STRUCT); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	g, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}

	body := &ast.StructBody{}
	bodyStart := p.here()
	if sub, _, ok := p.group(lexer.DelimParen); ok {
		body.Style = ast.StructTuple
		if body.Fields, err = sub.parseTupleFields(); err != nil {
			return nil, err
		}
		body.Pos = ast.Pos{Loc: p.span(bodyStart)}
		if g.Where, err = p.parseWhereClause(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
	} else {
		if g.Where, err = p.parseWhereClause(); err != nil {
			return nil, err
		}
		bodyStart = p.here()
		if sub, _, ok := p.group(lexer.DelimBrace); ok {
			body.Style = ast.StructNamed
			if body.Fields, err = sub.parseNamedFields(); err != nil {
				return nil, err
			}
		} else {
			if _, err := p.expect(lexer.SEMICOLON); err != nil {
				return nil, err
			}
			body.Style = ast.StructUnit
		}
		body.Pos = ast.Pos{Loc: p.span(bodyStart)}
	}

	return &ast.MacroInput{
		Pos:      ast.Pos{Loc: p.span(start)},
		Attrs:    attrs,
		Vis:      vis,
		Name:     name,
		Generics: g,
		Body:     body,
	}, nil
}

// parseEnumRest parses an enum declaration from the `enum` keyword on.
func (p *Parser) parseEnumRest(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (*ast.MacroInput, error) {
	if _, err := p.expect(lexer.ENUM); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	g, err := p.parseGenericsWithWhere()
	if err != nil {
		return nil, err
	}
	bodyStart := p.here()
	sub, _, err := p.expectGroup(lexer.DelimBrace)
	if err != nil {
		return nil, err
	}
	variants, err := commaList(sub, sub.parseVariant)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(variants.Items))
	for _, v := range variants.Items {
		if seen[v.Name.Unraw()] {
			return nil, p.invalidf(v.Name.Span(), "variant `%s` is already declared", v.Name.Name)
		}
		seen[v.Name.Unraw()] = true
	}

	return &ast.MacroInput{
		Pos:      ast.Pos{Loc: p.span(start)},
		Attrs:    attrs,
		Vis:      vis,
		Name:     name,
		Generics: g,
		Body:     &ast.EnumBody{Pos: ast.Pos{Loc: p.span(bodyStart)}, Variants: variants.Items},
	}, nil
}

func (p *Parser) parseVariant() (*ast.Variant, error) {
	defer p.rule("variant")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	v := &ast.Variant{Attrs: attrs, Name: name, Style: ast.StructUnit}
	if sub, _, ok := p.group(lexer.DelimBrace); ok {
		v.Style = ast.StructNamed
		if v.Fields, err = sub.parseNamedFields(); err != nil {
			return nil, err
		}
	} else if sub, _, ok := p.group(lexer.DelimParen); ok {
		v.Style = ast.StructTuple
		if v.Fields, err = sub.parseTupleFields(); err != nil {
			return nil, err
		}
	}
	if p.eat(lexer.ASSIGN) {
		if v.Discriminant, err = p.parseConstExpr(); err != nil {
			return nil, err
		}
	}
	v.Pos = ast.Pos{Loc: p.span(start)}
	return v, nil
}

// parseNamedFields parses the contents of a `{ a: T, ... }` group.
// Field names must be unique.
func (p *Parser) parseNamedFields() ([]*ast.Field, error) {
	res, err := commaList(p, p.parseNamedField)
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(res.Items))
	for _, f := range res.Items {
		if seen[f.Name.Unraw()] {
			return nil, p.invalidf(f.Name.Span(), "field `%s` is already declared", f.Name.Name)
		}
		seen[f.Name.Unraw()] = true
	}
	return res.Items, nil
}

func (p *Parser) parseNamedField() (*ast.Field, error) {
	defer p.rule("field")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Field{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Name: name, Type: ty}, nil
}

// parseTupleFields parses the contents of a `(T, U)` group.
func (p *Parser) parseTupleFields() ([]*ast.Field, error) {
	res, err := commaList(p, p.parseTupleField)
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (p *Parser) parseTupleField() (*ast.Field, error) {
	defer p.rule("field")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Field{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Type: ty}, nil
}

package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

func (p *Parser) atOuterAttr() bool {
	return p.at(lexer.POUND) && p.partial == 0 && isBracketGroup(p.peekN(1))
}

func (p *Parser) atInnerAttr() bool {
	return p.at(lexer.POUND) && p.partial == 0 && p.peekN(1).Type == lexer.BANG && isBracketGroup(p.peekN(2))
}

func isBracketGroup(tok lexer.Token) bool {
	return tok.IsGroup() && tok.Delim == lexer.DelimBracket
}

func (p *Parser) parseOuterAttrs() ([]*ast.Attribute, error) {
	var attrs []*ast.Attribute
	for p.atOuterAttr() {
		a, err := p.parseAttribute(ast.AttrOuter)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (p *Parser) parseInnerAttrs() ([]*ast.Attribute, error) {
	var attrs []*ast.Attribute
	for p.atInnerAttr() {
		a, err := p.parseAttribute(ast.AttrInner)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// parseAttribute parses `#[path tokens]` or `#![path tokens]`. The tokens
// after the path are kept verbatim for ParseMeta.
func (p *Parser) parseAttribute(style ast.AttrStyle) (*ast.Attribute, error) {
	defer p.rule("attribute")()

	start := p.here()
	pound, err := p.expect(lexer.POUND)
	if err != nil {
		return nil, err
	}
	if style == ast.AttrInner {
		if _, err := p.expect(lexer.BANG); err != nil {
			return nil, err
		}
	}
	sub, _, err := p.expectGroup(lexer.DelimBracket)
	if err != nil {
		return nil, err
	}
	path, err := sub.parsePath(pathMod)
	if err != nil {
		return nil, err
	}
	return &ast.Attribute{
		Pos:        ast.Pos{Loc: p.span(start)},
		Style:      style,
		Path:       path,
		Tokens:     sub.rest(),
		SugaredDoc: pound.SugaredDoc,
	}, nil
}

// parseAttributes reads inner attributes followed by outer attributes.
func (p *Parser) parseAttributes() ([]*ast.Attribute, error) {
	inner, err := p.parseInnerAttrs()
	if err != nil {
		return nil, err
	}
	outer, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	return append(inner, outer...), nil
}

// parseMetaAfter interprets the tokens that follow a meta path: a
// parenthesized list, `= literal`, or nothing.
func (p *Parser) parseMetaAfter(path *ast.Path) (ast.Meta, error) {
	start := path.Span()
	if sub, _, ok := p.group(lexer.DelimParen); ok {
		nested, err := commaList(sub, sub.parseNestedMeta)
		if err != nil {
			return nil, err
		}
		if err := sub.finish(); err != nil {
			return nil, err
		}
		return &ast.MetaList{Pos: ast.Pos{Loc: p.span(start)}, Path: path, Nested: nested.Items}, nil
	}
	if p.eat(lexer.ASSIGN) {
		lit, err := p.parseLit()
		if err != nil {
			return nil, err
		}
		return &ast.MetaNameValue{Pos: ast.Pos{Loc: p.span(start)}, Path: path, Lit: lit}, nil
	}
	return &ast.MetaWord{Pos: path.Pos, Path: path}, nil
}

func (p *Parser) parseNestedMeta() (ast.NestedMeta, error) {
	defer p.rule("meta")()

	if lexer.IsLiteral(p.peek().Type) {
		return p.parseLit()
	}
	path, err := p.parsePath(pathMod)
	if err != nil {
		return nil, err
	}
	return p.parseMetaAfter(path)
}

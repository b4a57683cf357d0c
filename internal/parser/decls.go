//go:build !minimal

package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// parseFile parses inner attributes followed by declarations up to the end
// of input.
func (p *Parser) parseFile() (*ast.File, error) {
	defer p.rule("file")()

	start := p.here()
	attrs, err := p.parseInnerAttrs()
	if err != nil {
		return nil, err
	}
	decls, err := p.parseDecls()
	if err != nil {
		return nil, err
	}
	f := &ast.File{Attrs: attrs, Decls: decls}
	f.Pos = ast.Pos{Loc: p.span(start)}
	return f, nil
}

func (p *Parser) parseDecls() ([]ast.Decl, error) {
	var decls []ast.Decl
	for !p.atEnd() {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// atDeclStart reports whether a statement starting here is a nested item.
func (p *Parser) atDeclStart() bool {
	tok := p.peek()
	switch tok.Type {
	case lexer.PUB, lexer.FN, lexer.STRUCT, lexer.ENUM, lexer.TRAIT, lexer.IMPL,
		lexer.MOD, lexer.USE, lexer.STATIC, lexer.TYPE, lexer.EXTERN:
		return true
	case lexer.CONST:
		return !p.peekN(1).IsGroup()
	case lexer.UNSAFE:
		switch p.peekN(1).Type {
		case lexer.FN, lexer.IMPL, lexer.TRAIT, lexer.EXTERN:
			return true
		}
	case lexer.IDENT:
		return tok.Raw == "macro_rules" && p.peekN(1).Type == lexer.BANG && p.peekN(2).Type == lexer.IDENT
	}
	return false
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	return p.parseDeclAfterAttrs(start, attrs)
}

func (p *Parser) parseDeclAfterAttrs(start lexer.Span, attrs []*ast.Attribute) (ast.Decl, error) {
	defer p.rule("item")()

	if p.atMacroCall() {
		return p.parseMacroDecl(start, attrs)
	}
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}

	next := p.peekN(1).Type
	switch p.peek().Type {
	case lexer.STRUCT:
		in, err := p.parseStructRest(start, attrs, vis)
		if err != nil {
			return nil, err
		}
		return in.Decl(), nil
	case lexer.ENUM:
		in, err := p.parseEnumRest(start, attrs, vis)
		if err != nil {
			return nil, err
		}
		return in.Decl(), nil
	case lexer.FN:
		return p.parseFnDecl(start, attrs, vis)
	case lexer.CONST:
		if next == lexer.FN || next == lexer.UNSAFE || next == lexer.EXTERN {
			return p.parseFnDecl(start, attrs, vis)
		}
		return p.parseConstDecl(start, attrs, vis)
	case lexer.UNSAFE:
		switch next {
		case lexer.IMPL:
			return p.parseImplDecl(start, attrs, vis)
		case lexer.TRAIT:
			return p.parseTraitDecl(start, attrs, vis)
		}
		return p.parseFnDecl(start, attrs, vis)
	case lexer.EXTERN:
		if next == lexer.CRATE {
			return p.parseExternCrate(start, attrs, vis)
		}
		return p.parseFnDecl(start, attrs, vis)
	case lexer.STATIC:
		return p.parseStaticDecl(start, attrs, vis)
	case lexer.TYPE:
		return p.parseTypeAlias(start, attrs, vis)
	case lexer.TRAIT:
		return p.parseTraitDecl(start, attrs, vis)
	case lexer.IMPL:
		return p.parseImplDecl(start, attrs, vis)
	case lexer.MOD:
		return p.parseModDecl(start, attrs, vis)
	case lexer.USE:
		return p.parseUseDecl(start, attrs, vis)
	}
	return nil, p.errorf("expected item, found %s", describe(p.peek()))
}

// atMacroCall reports whether a macro invocation starts here: a path, `!`
// and either a delimiter group or the name defined by `macro_rules!`.
func (p *Parser) atMacroCall() bool {
	tok := p.peek()
	if !isPathSegmentStart(tok) && tok.Type != lexer.DOUBLE_COLON {
		return false
	}
	c := p.mark()
	defer p.reset(c)
	p.eat(lexer.DOUBLE_COLON)
	for {
		if !isPathSegmentStart(p.peek()) {
			return false
		}
		p.next()
		if !p.eat(lexer.DOUBLE_COLON) {
			break
		}
	}
	if !p.at(lexer.BANG) {
		return false
	}
	return p.peekN(1).IsGroup() || p.peekN(1).Type == lexer.IDENT
}

// parseMacroCall parses `path! (...)`, `path! [...]`, `path! {...}` and
// `macro_rules! name {...}`. Parenthesized and bracketed invocations end
// with `;`.
func (p *Parser) parseMacroCall() (*ast.Macro, *ast.Ident, error) {
	start := p.here()
	path, err := p.parsePath(pathMod)
	if err != nil {
		return nil, nil, err
	}
	var ident *ast.Ident
	if p.at(lexer.BANG) && p.peekN(1).Type == lexer.IDENT {
		p.next()
		if ident, err = p.parseIdent(); err != nil {
			return nil, nil, err
		}
		if !p.peek().IsGroup() {
			return nil, nil, p.errorf("expected macro body, found %s", describe(p.peek()))
		}
		tok := p.next()
		mac := &ast.Macro{Pos: ast.Pos{Loc: p.span(start)}, Path: path, Delim: tok.Delim, Tokens: tok.Stream.Clone()}
		return mac, ident, p.macroSemi(mac)
	}
	mac, err := p.parseMacroBody(start, path)
	if err != nil {
		return nil, nil, err
	}
	return mac, nil, p.macroSemi(mac)
}

func (p *Parser) macroSemi(mac *ast.Macro) error {
	if mac.Delim == lexer.DelimBrace {
		return nil
	}
	_, err := p.expect(lexer.SEMICOLON)
	return err
}

func (p *Parser) parseMacroDecl(start lexer.Span, attrs []*ast.Attribute) (ast.Decl, error) {
	mac, ident, err := p.parseMacroCall()
	if err != nil {
		return nil, err
	}
	return &ast.MacroDecl{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Ident: ident, Mac: mac}, nil
}

// parseFnSig parses the qualifiers, name, generics, inputs, output and
// where clause of a function.
func (p *Parser) parseFnSig() (*ast.FnSig, error) {
	start := p.here()
	sig := &ast.FnSig{Const: p.eat(lexer.CONST), Unsafe: p.eat(lexer.UNSAFE)}
	if p.at(lexer.EXTERN) {
		abi, err := p.parseAbi()
		if err != nil {
			return nil, err
		}
		sig.Abi = abi
	}
	if _, err := p.expect(lexer.FN); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	sig.Name = name
	if sig.Generics, err = p.parseGenerics(); err != nil {
		return nil, err
	}

	sub, _, err := p.expectGroup(lexer.DelimParen)
	if err != nil {
		return nil, err
	}
	for !sub.atEnd() {
		if sub.eat(lexer.DOT_DOT_DOT) {
			sig.Variadic = true
			break
		}
		arg, err := sub.parseFnArg(len(sig.Inputs) == 0)
		if err != nil {
			return nil, err
		}
		sig.Inputs = append(sig.Inputs, arg)
		if !sub.eat(lexer.COMMA) {
			break
		}
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}

	if p.eat(lexer.ARROW) {
		if sig.Output, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if sig.Generics.Where, err = p.parseWhereClause(); err != nil {
		return nil, err
	}
	sig.Pos = ast.Pos{Loc: p.span(start)}
	return sig, nil
}

// parseFnArg parses one function input. A self receiver is only accepted
// in first position.
func (p *Parser) parseFnArg(first bool) (ast.FnArg, error) {
	defer p.rule("fn argument")()

	start := p.here()
	if first {
		c := p.mark()
		if arg, ok, err := p.parseSelfArg(start); err != nil {
			return nil, err
		} else if ok {
			return arg, nil
		}
		p.reset(c)
	}
	pat, err := p.parsePat()
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
	return &ast.TypedArg{Pos: ast.Pos{Loc: p.span(start)}, Pat: pat, Type: ty}, nil
}

func (p *Parser) parseSelfArg(start lexer.Span) (*ast.SelfArg, bool, error) {
	arg := &ast.SelfArg{}
	if p.eat(lexer.AMPERSAND) {
		arg.Ref = true
		if p.at(lexer.LIFETIME) {
			arg.Lifetime, _ = p.parseLifetime()
		}
	}
	arg.Mutable = p.eat(lexer.MUT)
	if !p.eat(lexer.SELF) {
		return nil, false, nil
	}
	if !arg.Ref && p.eat(lexer.COLON) {
		ty, err := p.parseType()
		if err != nil {
			return nil, false, err
		}
		arg.Type = ty
	}
	if !p.atEnd() && !p.at(lexer.COMMA) {
		return nil, false, nil
	}
	arg.Pos = ast.Pos{Loc: p.span(start)}
	return arg, true, nil
}

func (p *Parser) parseFnDecl(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	sig, err := p.parseFnSig()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Sig: sig, Body: body}, nil
}

func (p *Parser) parseTraitDecl(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	unsafe := p.eat(lexer.UNSAFE)
	if _, err := p.expect(lexer.TRAIT); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	td := &ast.TraitDecl{Attrs: attrs, Vis: vis, Unsafe: unsafe, Name: name}
	if td.Generics, err = p.parseGenerics(); err != nil {
		return nil, err
	}
	if p.eat(lexer.COLON) {
		if td.Supertraits, err = p.parseBounds(true); err != nil {
			return nil, err
		}
	}
	if td.Generics.Where, err = p.parseWhereClause(); err != nil {
		return nil, err
	}
	sub, _, err := p.expectGroup(lexer.DelimBrace)
	if err != nil {
		return nil, err
	}
	for !sub.atEnd() {
		item, err := sub.parseTraitItem()
		if err != nil {
			return nil, err
		}
		td.Items = append(td.Items, item)
	}
	td.Pos = ast.Pos{Loc: p.span(start)}
	return td, nil
}

func (p *Parser) parseTraitItem() (ast.TraitItem, error) {
	defer p.rule("trait item")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if p.atMacroCall() {
		mac, _, err := p.parseMacroCall()
		if err != nil {
			return nil, err
		}
		return &ast.TraitMacro{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Mac: mac}, nil
	}

	switch next := p.peekN(1).Type; {
	case p.at(lexer.CONST) && next != lexer.FN && next != lexer.UNSAFE && next != lexer.EXTERN:
		p.next()
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
		tc := &ast.TraitConst{Attrs: attrs, Name: name, Type: ty}
		if p.eat(lexer.ASSIGN) {
			if tc.Default, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		tc.Pos = ast.Pos{Loc: p.span(start)}
		return tc, nil

	case p.at(lexer.TYPE):
		p.next()
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		tt := &ast.TraitType{Attrs: attrs, Name: name}
		if p.eat(lexer.COLON) {
			if tt.Bounds, err = p.parseBounds(true); err != nil {
				return nil, err
			}
		}
		if p.eat(lexer.ASSIGN) {
			if tt.Default, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		tt.Pos = ast.Pos{Loc: p.span(start)}
		return tt, nil
	}

	sig, err := p.parseFnSig()
	if err != nil {
		return nil, err
	}
	tf := &ast.TraitFn{Attrs: attrs, Sig: sig}
	if !p.eat(lexer.SEMICOLON) {
		if tf.Default, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	tf.Pos = ast.Pos{Loc: p.span(start)}
	return tf, nil
}

// parseImplDecl parses `impl<G> Type`, `impl<G> Trait for Type` and the
// negative form `impl !Trait for Type`.
func (p *Parser) parseImplDecl(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	if vis.Kind != ast.VisInherited {
		return nil, p.invalidf(vis.Span(), "visibility is not permitted on impl blocks")
	}
	unsafe := p.eat(lexer.UNSAFE)
	if _, err := p.expect(lexer.IMPL); err != nil {
		return nil, err
	}
	g, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}
	id := &ast.ImplDecl{Attrs: attrs, Unsafe: unsafe, Generics: g, Negative: p.eat(lexer.BANG)}

	traitStart := p.here()
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.eat(lexer.FOR) {
		pt, ok := ty.(*ast.PathType)
		if !ok || pt.QSelf != nil {
			return nil, p.invalidf(traitStart, "expected a trait path before `for`")
		}
		id.Trait = pt.Path
		if ty, err = p.parseType(); err != nil {
			return nil, err
		}
	} else if id.Negative {
		return nil, p.invalidf(traitStart, "negative impls require a trait")
	}
	id.SelfType = ty
	if g.Where, err = p.parseWhereClause(); err != nil {
		return nil, err
	}

	sub, _, err := p.expectGroup(lexer.DelimBrace)
	if err != nil {
		return nil, err
	}
	for !sub.atEnd() {
		item, err := sub.parseImplItem()
		if err != nil {
			return nil, err
		}
		id.Items = append(id.Items, item)
	}
	id.Pos = ast.Pos{Loc: p.span(start)}
	return id, nil
}

func (p *Parser) parseImplItem() (ast.ImplItem, error) {
	defer p.rule("impl item")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if p.atMacroCall() {
		mac, _, err := p.parseMacroCall()
		if err != nil {
			return nil, err
		}
		return &ast.ImplMacro{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Mac: mac}, nil
	}
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}

	switch next := p.peekN(1).Type; {
	case p.at(lexer.CONST) && next != lexer.FN && next != lexer.UNSAFE && next != lexer.EXTERN:
		p.next()
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
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ImplConst{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Name: name, Type: ty, Value: value}, nil

	case p.at(lexer.TYPE):
		p.next()
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ImplType{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Name: name, Type: ty}, nil
	}

	sig, err := p.parseFnSig()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ImplFn{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Sig: sig, Body: body}, nil
}

// parseModDecl parses `mod name;` or an inline module. Inner attributes of
// an inline module follow the outer ones in Attrs.
func (p *Parser) parseModDecl(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	if _, err := p.expect(lexer.MOD); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	md := &ast.ModDecl{Attrs: attrs, Vis: vis, Name: name}
	if !p.eat(lexer.SEMICOLON) {
		sub, _, err := p.expectGroup(lexer.DelimBrace)
		if err != nil {
			return nil, err
		}
		inner, err := sub.parseInnerAttrs()
		if err != nil {
			return nil, err
		}
		md.Attrs = append(md.Attrs, inner...)
		if md.Decls, err = sub.parseDecls(); err != nil {
			return nil, err
		}
		md.Inline = true
	}
	md.Pos = ast.Pos{Loc: p.span(start)}
	return md, nil
}

func (p *Parser) parseUseDecl(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	if _, err := p.expect(lexer.USE); err != nil {
		return nil, err
	}
	ud := &ast.UseDecl{Attrs: attrs, Vis: vis, Global: p.eat(lexer.DOUBLE_COLON)}
	tree, err := p.parseUseTree()
	if err != nil {
		return nil, err
	}
	ud.Tree = tree
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	ud.Pos = ast.Pos{Loc: p.span(start)}
	return ud, nil
}

func (p *Parser) parseUseTree() (ast.UseTree, error) {
	defer p.rule("use tree")()

	start := p.here()
	if p.eat(lexer.ASTERISK) {
		return &ast.UseGlob{Pos: ast.Pos{Loc: start}}, nil
	}
	if sub, _, ok := p.group(lexer.DelimBrace); ok {
		items, err := commaList(sub, sub.parseUseTree)
		if err != nil {
			return nil, err
		}
		if err := sub.finish(); err != nil {
			return nil, err
		}
		return &ast.UseGroup{Pos: ast.Pos{Loc: p.span(start)}, Items: items.Items}, nil
	}

	tok := p.peek()
	if !isPathSegmentStart(tok) {
		return nil, p.errorf("expected identifier, `*` or `{`, found %s", describe(tok))
	}
	p.next()
	ident := &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}

	if p.eat(lexer.DOUBLE_COLON) {
		tree, err := p.parseUseTree()
		if err != nil {
			return nil, err
		}
		return &ast.UsePath{Pos: ast.Pos{Loc: p.span(start)}, Ident: ident, Tree: tree}, nil
	}
	if p.eat(lexer.AS) {
		r := &ast.UseRename{Ident: ident}
		if !p.eat(lexer.UNDERSCORE) {
			rename, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			r.Rename = rename
		}
		r.Pos = ast.Pos{Loc: p.span(start)}
		return r, nil
	}
	return &ast.UseName{Pos: ident.Pos, Ident: ident}, nil
}

func (p *Parser) parseConstDecl(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	if _, err := p.expect(lexer.CONST); err != nil {
		return nil, err
	}
	name, ty, value, err := p.parseNameTypeValue()
	if err != nil {
		return nil, err
	}
	return &ast.ConstDecl{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Name: name, Type: ty, Value: value}, nil
}

func (p *Parser) parseStaticDecl(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	if _, err := p.expect(lexer.STATIC); err != nil {
		return nil, err
	}
	mut := p.eat(lexer.MUT)
	name, ty, value, err := p.parseNameTypeValue()
	if err != nil {
		return nil, err
	}
	return &ast.StaticDecl{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Mutable: mut, Name: name, Type: ty, Value: value}, nil
}

// parseNameTypeValue parses `NAME: Type = value;`.
func (p *Parser) parseNameTypeValue() (*ast.Ident, ast.TypeExpr, ast.Expr, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, nil, nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, nil, nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, nil, nil, err
	}
	return name, ty, value, nil
}

func (p *Parser) parseTypeAlias(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	if _, err := p.expect(lexer.TYPE); err != nil {
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
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.TypeAliasDecl{Pos: ast.Pos{Loc: p.span(start)}, Attrs: attrs, Vis: vis, Name: name, Generics: g, Type: ty}, nil
}

func (p *Parser) parseExternCrate(start lexer.Span, attrs []*ast.Attribute, vis ast.Visibility) (ast.Decl, error) {
	if _, err := p.expect(lexer.EXTERN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CRATE); err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Type != lexer.IDENT && tok.Type != lexer.SELF {
		return nil, p.errorf("expected crate name, found %s", describe(tok))
	}
	p.next()
	ec := &ast.ExternCrateDecl{Attrs: attrs, Vis: vis, Name: &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}}
	if p.eat(lexer.AS) {
		rename, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		ec.Rename = rename
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	ec.Pos = ast.Pos{Loc: p.span(start)}
	return ec, nil
}

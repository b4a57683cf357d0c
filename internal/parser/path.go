package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

type pathMode int

const (
	pathMod  pathMode = iota // no generic arguments: attributes, visibility, use
	pathType                 // `Vec<T>`, `Vec::<T>` and `Fn(A) -> B`
	pathExpr                 // generic arguments only after `::`
)

func (p *Parser) parsePath(mode pathMode) (*ast.Path, error) {
	defer p.rule("path")()

	start := p.here()
	path := &ast.Path{}
	if p.eat(lexer.DOUBLE_COLON) {
		path.Global = true
	}
	if err := p.parsePathSegments(path, mode); err != nil {
		return nil, err
	}
	path.Pos = ast.Pos{Loc: p.span(start)}
	return path, nil
}

func (p *Parser) parsePathSegments(path *ast.Path, mode pathMode) error {
	for {
		seg, err := p.parsePathSegment(mode)
		if err != nil {
			return err
		}
		path.Segments = append(path.Segments, seg)
		if !p.at(lexer.DOUBLE_COLON) || !isPathSegmentStart(p.peekN(1)) {
			return nil
		}
		p.next()
	}
}

func (p *Parser) parsePathSegment(mode pathMode) (*ast.PathSegment, error) {
	start := p.here()
	tok := p.peek()
	if !isPathSegmentStart(tok) {
		return nil, p.errorf("expected path segment, found %s", describe(tok))
	}
	p.next()
	seg := &ast.PathSegment{Ident: &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}}

	switch mode {
	case pathType:
		switch {
		case p.at(lexer.DOUBLE_COLON) && (p.peekN(1).Type == lexer.LT || p.peekN(1).Type == lexer.SHL):
			p.next()
			args, err := p.parseAngleArgs(true)
			if err != nil {
				return nil, err
			}
			seg.Args = args
		case p.atPunct(lexer.LT):
			args, err := p.parseAngleArgs(false)
			if err != nil {
				return nil, err
			}
			seg.Args = args
		case p.atGroup(lexer.DelimParen):
			args, err := p.parseParenthesizedArgs()
			if err != nil {
				return nil, err
			}
			seg.Args = args
		}
	case pathExpr:
		if p.at(lexer.DOUBLE_COLON) && (p.peekN(1).Type == lexer.LT || p.peekN(1).Type == lexer.SHL) {
			p.next()
			args, err := p.parseAngleArgs(true)
			if err != nil {
				return nil, err
			}
			seg.Args = args
		}
	}
	seg.Pos = ast.Pos{Loc: p.span(start)}
	return seg, nil
}

func (p *Parser) parseAngleArgs(turbofish bool) (*ast.AngleBracketedArgs, error) {
	defer p.rule("generic arguments")()

	start := p.here()
	if _, err := p.expect(lexer.LT); err != nil {
		return nil, err
	}
	res, err := punctuated(p, delimitedConfig{
		Closing:           lexer.GT,
		AllowEmpty:        true,
		AllowTrailing:     true,
		MissingElementMsg: "expected generic argument",
	}, func(int) (ast.GenericArg, error) {
		return p.parseGenericArg()
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return nil, err
	}
	return &ast.AngleBracketedArgs{Pos: ast.Pos{Loc: p.span(start)}, Turbofish: turbofish, Args: res.Items}, nil
}

func (p *Parser) parseGenericArg() (ast.GenericArg, error) {
	start := p.here()
	tok := p.peek()
	switch {
	case tok.Type == lexer.LIFETIME:
		lt, err := p.parseLifetime()
		if err != nil {
			return nil, err
		}
		return &ast.LifetimeArg{Pos: lt.Pos, Lifetime: lt}, nil

	case tok.Type == lexer.IDENT && p.partial == 0 && p.peekN(1).Type == lexer.ASSIGN:
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		p.next()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.BindingArg{Pos: ast.Pos{Loc: p.span(start)}, Ident: id, Type: ty}, nil

	case lexer.IsLiteral(tok.Type) || tok.Type == lexer.MINUS || p.atGroup(lexer.DelimBrace):
		e, err := p.parseConstArg()
		if err != nil {
			return nil, err
		}
		return &ast.ConstArg{Pos: ast.Pos{Loc: p.span(start)}, Expr: e}, nil
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.TypeArg{Pos: ast.Pos{Loc: p.span(start)}, Type: ty}, nil
}

// parseParenthesizedArgs parses the `(A, B) -> C` sugar of the Fn traits.
func (p *Parser) parseParenthesizedArgs() (*ast.ParenthesizedArgs, error) {
	start := p.here()
	sub, _, err := p.expectGroup(lexer.DelimParen)
	if err != nil {
		return nil, err
	}
	inputs, err := commaList(sub, sub.parseType)
	if err != nil {
		return nil, err
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	args := &ast.ParenthesizedArgs{Inputs: inputs.Items}
	if p.eat(lexer.ARROW) {
		out, err := p.parseTypeNoPlus()
		if err != nil {
			return nil, err
		}
		args.Output = out
	}
	args.Pos = ast.Pos{Loc: p.span(start)}
	return args, nil
}

// parseQPath parses `<T as Trait>::Name` or `<T>::Name`. The trait segments
// lead the returned path and QSelf.Position counts them.
func (p *Parser) parseQPath(mode pathMode) (*ast.QSelf, *ast.Path, error) {
	defer p.rule("qualified path")()

	start := p.here()
	if _, err := p.expect(lexer.LT); err != nil {
		return nil, nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, nil, err
	}
	qself := &ast.QSelf{Type: ty}
	path := &ast.Path{}
	if p.eat(lexer.AS) {
		trait, err := p.parsePath(pathType)
		if err != nil {
			return nil, nil, err
		}
		path.Global = trait.Global
		path.Segments = trait.Segments
		qself.Position = len(trait.Segments)
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return nil, nil, err
	}
	qself.Pos = ast.Pos{Loc: p.span(start)}
	if _, err := p.expect(lexer.DOUBLE_COLON); err != nil {
		return nil, nil, err
	}
	if err := p.parsePathSegments(path, mode); err != nil {
		return nil, nil, err
	}
	path.Pos = ast.Pos{Loc: p.span(start)}
	return qself, path, nil
}

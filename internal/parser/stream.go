package parser

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// The methods and functions in this file let code outside the package write
// its own rules and run them with ParseTokens, for example to parse the
// body of a function-like macro:
//
//	func parseEntry(p *parser.Parser) (*Entry, error) {
//		name, err := p.Ident()
//		...
//	}
//	entries, err := parser.ParseTokens(mac.Tokens, parser.Terminated(parseEntry, lexer.SEMICOLON))

// AtEnd reports whether every token at this level has been consumed.
func (p *Parser) AtEnd() bool { return p.atEnd() }

// Peek returns the next token without consuming it. At the end of input it
// is an EOF token.
func (p *Parser) Peek() lexer.Token { return p.peek() }

// PeekN returns the token n places after the next one.
func (p *Parser) PeekN(n int) lexer.Token { return p.peekN(n) }

// Next consumes and returns the next token.
func (p *Parser) Next() lexer.Token { return p.next() }

// Eat consumes tt if it is next. Joint operators are split as needed, so
// Eat(lexer.GT) succeeds on `>>`.
func (p *Parser) Eat(tt lexer.TokenType) bool { return p.eat(tt) }

// Expect consumes tt or fails.
func (p *Parser) Expect(tt lexer.TokenType) (lexer.Token, error) { return p.expect(tt) }

// PeekKeyword reports whether the next token is the identifier word. Words
// used this way are contextual keywords; they stay valid identifiers
// everywhere else.
func (p *Parser) PeekKeyword(word string) bool {
	tok := p.peek()
	return tok.Type == lexer.IDENT && tok.Raw == word
}

// Keyword consumes the contextual keyword word.
func (p *Parser) Keyword(word string) (*ast.Ident, error) {
	tok := p.peek()
	if !p.PeekKeyword(word) {
		return nil, p.errorf("expected `%s`, found %s", word, describe(tok))
	}
	p.next()
	return &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}, nil
}

// Ident parses an identifier. Keywords are rejected.
func (p *Parser) Ident() (*ast.Ident, error) { return p.parseIdent() }

// PeekAnyIdent reports whether the next token is an identifier or a keyword.
func (p *Parser) PeekAnyIdent() bool {
	tok := p.peek()
	return p.partial == 0 && lexer.IsWordToken(tok.Type)
}

// AnyIdent parses an identifier, accepting keywords as well. The returned
// Ident may hold a keyword name, which NewIdent would refuse.
func (p *Parser) AnyIdent() (*ast.Ident, error) {
	tok := p.peek()
	if !p.PeekAnyIdent() {
		return nil, p.errorf("expected identifier or keyword, found %s", describe(tok))
	}
	p.next()
	return &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}, nil
}

// Lifetime parses a lifetime such as 'a.
func (p *Parser) Lifetime() (*ast.Lifetime, error) { return p.parseLifetime() }

// Lit parses a literal token.
func (p *Parser) Lit() (*ast.Lit, error) { return p.parseLit() }

// Type parses a type.
func (p *Parser) Type() (ast.TypeExpr, error) { return p.parseType() }

// Path parses a path in type position.
func (p *Parser) Path() (*ast.Path, error) { return p.parseTypePath() }

// Generics parses an optional `<...>` list. The where clause is not read.
func (p *Parser) Generics() (*ast.Generics, error) { return p.parseGenerics() }

// Visibility parses an optional visibility. Inherited visibility consumes
// nothing.
func (p *Parser) Visibility() (ast.Visibility, error) { return p.parseVisibility() }

// OuterAttributes parses zero or more `#[...]` attributes.
func (p *Parser) OuterAttributes() ([]*ast.Attribute, error) { return p.parseOuterAttrs() }

// Group consumes a delimiter group and returns a parser over its contents.
// The caller should end with Finish on the returned parser.
func (p *Parser) Group(delim lexer.Delimiter) (*Parser, error) {
	sub, _, err := p.expectGroup(delim)
	return sub, err
}

// Finish fails when tokens are left at this level.
func (p *Parser) Finish() error { return p.finish() }

// Rest consumes and returns the unread tokens at this level.
func (p *Parser) Rest() lexer.TokenStream { return p.rest() }

// Enter pushes name onto the rule stack reported in errors. The returned
// func pops it again.
func (p *Parser) Enter(name string) (leave func()) { return p.rule(name) }

// Errorf reports a failure at the next token.
func (p *Parser) Errorf(format string, args ...any) error { return p.errorf(format, args...) }

// Fail reports a failure at span that stops Alt and Opt from trying other
// alternatives, for input that matched but is invalid.
func (p *Parser) Fail(span lexer.Span, format string, args ...any) error {
	return p.invalidf(span, format, args...)
}

func bind[T any](p *Parser, rule Rule[T]) func() (T, error) {
	return func() (T, error) { return rule(p) }
}

// Alt tries each rule in order from the same position and returns the first
// success. what names the expected input in the error when none match.
func Alt[T any](p *Parser, what string, rules ...Rule[T]) (T, error) {
	alts := make([]func() (T, error), len(rules))
	for i, r := range rules {
		alts[i] = bind(p, r)
	}
	return alt(p, what, alts...)
}

// Opt runs rule and rewinds if it fails. ok reports whether it matched.
func Opt[T any](p *Parser, rule Rule[T]) (v T, ok bool, err error) {
	return opt(p, bind(p, rule))
}

// Many runs rule until it fails or the input at this level ends.
func Many[T any](p *Parser, rule Rule[T]) ([]T, error) {
	return many(p, bind(p, rule))
}

// Many1 is Many requiring at least one match.
func Many1[T any](p *Parser, rule Rule[T]) ([]T, error) {
	return many1(p, bind(p, rule))
}

// Punctuated parses items separated by sep up to the end of the current
// level. An empty list and a trailing separator are accepted.
func Punctuated[T any](p *Parser, sep lexer.TokenType, rule Rule[T]) ([]T, error) {
	res, err := punctuated(p, delimitedConfig{Separator: sep, AllowEmpty: true, AllowTrailing: true}, func(int) (T, error) {
		return rule(p)
	})
	return res.Items, err
}

// Delimited parses the contents of the next delim group with rule, which
// must consume the whole group.
func Delimited[T any](p *Parser, delim lexer.Delimiter, rule Rule[T]) (T, error) {
	var zero T
	sub, err := p.Group(delim)
	if err != nil {
		return zero, err
	}
	v, err := rule(sub)
	if err != nil {
		return zero, err
	}
	if err := sub.finish(); err != nil {
		return zero, err
	}
	return v, nil
}

// Terminated returns a rule that parses rule repeatedly, each item followed
// by term, until the end of the current level.
func Terminated[T any](rule Rule[T], term lexer.TokenType) Rule[[]T] {
	return func(p *Parser) ([]T, error) {
		var items []T
		for !p.atEnd() {
			v, err := rule(p)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(term); err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}
}

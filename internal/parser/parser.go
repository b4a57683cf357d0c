package parser

import (
	"strings"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

func newOptions(opts []Option) options {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Parser reads one level of token trees. A delimiter group is parsed by a
// sub-parser over the group's contents; sub-parsers share the failure state
// of the parser that created them and must consume their input completely.
//
// Invariants:
//   - Cursor: (pos, partial) addresses the next unread token. partial counts
//     the bytes of a joint operator already consumed, so `>>` can close two
//     generic lists. Only mark/reset and the consuming helpers move it.
//   - Failure: every error is recorded in the shared state; the failure that
//     got furthest into the input is the one reported when a rule fails.
//   - Spans: node spans run from the first token of the node to the last
//     token consumed for it and are composed via mergeSpan.
type Parser struct {
	toks    lexer.TokenStream
	pos     int
	partial int
	last    lexer.Span
	end     lexer.Span

	st *state

	// noStruct forbids struct literals at this level, for conditions and
	// scrutinees where a brace group starts the body instead.
	noStruct bool
}

type state struct {
	filename string
	rules    []string
	furthest *ParseError
}

type cursor struct {
	pos     int
	partial int
	last    lexer.Span
}

func newParser(toks lexer.TokenStream, end lexer.Span, st *state) *Parser {
	return &Parser{toks: toks, end: end, st: st}
}

func (p *Parser) mark() cursor {
	return cursor{pos: p.pos, partial: p.partial, last: p.last}
}

func (p *Parser) reset(c cursor) {
	p.pos, p.partial, p.last = c.pos, c.partial, c.last
}

// rule pushes name onto the rule stack; the returned func pops it.
func (p *Parser) rule(name string) func() {
	p.st.rules = append(p.st.rules, name)
	n := len(p.st.rules)
	return func() { p.st.rules = p.st.rules[:n-1] }
}

func (p *Parser) atEnd() bool { return p.pos >= len(p.toks) }

// peek returns the next unread token. A partially consumed joint operator is
// reported as its unread remainder; the end of input is an EOF token placed
// at the closing delimiter.
func (p *Parser) peek() lexer.Token {
	if p.atEnd() {
		return lexer.Token{Type: lexer.EOF, Span: p.end}
	}
	tok := p.toks[p.pos]
	if p.partial > 0 {
		tok.Raw = tok.Raw[p.partial:]
		tok.Value = tok.Raw
		tok.Type = lexer.TokenType(tok.Raw)
		tok.Span.Start += p.partial
		tok.Span.Column += p.partial
	}
	return tok
}

// peekN looks n whole tokens past the current one.
func (p *Parser) peekN(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return lexer.Token{Type: lexer.EOF, Span: p.end}
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.peek().Type == tt }

// atPunct is at, but also matches a joint operator that starts with tt.
func (p *Parser) atPunct(tt lexer.TokenType) bool {
	tok := p.peek()
	return tok.Type == tt || splittable(tok, tt)
}

var jointOps = map[lexer.TokenType]bool{
	lexer.SHL:        true,
	lexer.SHR:        true,
	lexer.LE:         true,
	lexer.GE:         true,
	lexer.SHL_EQ:     true,
	lexer.SHR_EQ:     true,
	lexer.AND:        true,
	lexer.OR:         true,
	lexer.DOT_DOT_EQ: true,
}

func splittable(tok lexer.Token, tt lexer.TokenType) bool {
	return jointOps[tok.Type] && len(tok.Raw) > len(tt) && strings.HasPrefix(tok.Raw, string(tt))
}

// next consumes the current token, or the unread remainder of a joint operator.
func (p *Parser) next() lexer.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
		p.partial = 0
		p.last = tok.Span
	}
	return tok
}

// eat consumes tt if it is next, splitting a joint operator when needed.
func (p *Parser) eat(tt lexer.TokenType) bool {
	tok := p.peek()
	if tok.Type == tt {
		p.next()
		return true
	}
	if splittable(tok, tt) {
		span := tok.Span
		span.End = span.Start + len(tt)
		p.partial += len(tt)
		p.last = span
		return true
	}
	return false
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.peek()
	if !p.eat(tt) {
		return tok, p.errorf("expected `%s`, found %s", lexer.KeywordText(tt), describe(tok))
	}
	return tok, nil
}

func (p *Parser) atGroup(delim lexer.Delimiter) bool {
	if p.partial > 0 || p.atEnd() {
		return false
	}
	tok := p.toks[p.pos]
	return tok.IsGroup() && tok.Delim == delim
}

// group consumes a delimiter group and returns a parser over its contents.
func (p *Parser) group(delim lexer.Delimiter) (*Parser, lexer.Token, bool) {
	if !p.atGroup(delim) {
		return nil, lexer.Token{}, false
	}
	tok := p.next()
	return newParser(tok.Stream, tok.CloseSpan, p.st), tok, true
}

func (p *Parser) expectGroup(delim lexer.Delimiter) (*Parser, lexer.Token, error) {
	sub, tok, ok := p.group(delim)
	if !ok {
		return nil, tok, p.errorf("expected `%s`, found %s", delim.Open(), describe(p.peek()))
	}
	return sub, tok, nil
}

// finish reports unread tokens left in a group.
func (p *Parser) finish() error {
	if !p.atEnd() {
		return p.errorf("unexpected %s", describe(p.peek()))
	}
	return nil
}

// rest returns a copy of the unread tokens and consumes them.
func (p *Parser) rest() lexer.TokenStream {
	out := p.toks[p.pos:].Clone()
	if len(out) > 0 && p.partial > 0 {
		out[0] = p.peek()
	}
	for !p.atEnd() {
		p.next()
	}
	return out
}

// span covers start through the last consumed token.
func (p *Parser) span(start lexer.Span) lexer.Span {
	return mergeSpan(start, p.last)
}

// here is the span of the next unread token.
func (p *Parser) here() lexer.Span { return p.peek().Span }

func describe(tok lexer.Token) string {
	switch {
	case tok.Type == lexer.EOF:
		return "end of input"
	case tok.IsGroup():
		return "`" + tok.Delim.Open() + "`"
	case tok.Type == lexer.ILLEGAL:
		return "invalid token"
	}
	return "`" + tok.Raw + "`"
}

func isPathSegmentStart(tok lexer.Token) bool {
	return tok.Type == lexer.IDENT || lexer.IsPathKeyword(tok.Type)
}

func (p *Parser) parseIdent() (*ast.Ident, error) {
	tok := p.peek()
	if tok.Type != lexer.IDENT {
		return nil, p.errorf("expected identifier, found %s", describe(tok))
	}
	p.next()
	return &ast.Ident{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}, nil
}

func (p *Parser) parseLifetime() (*ast.Lifetime, error) {
	tok := p.peek()
	if tok.Type != lexer.LIFETIME {
		return nil, p.errorf("expected lifetime, found %s", describe(tok))
	}
	p.next()
	return &ast.Lifetime{Pos: ast.Pos{Loc: tok.Span}, Name: tok.Raw}, nil
}

func (p *Parser) parseLit() (*ast.Lit, error) {
	tok := p.peek()
	lit, ok := ast.LitFromToken(tok)
	if !ok {
		return nil, p.errorf("expected literal, found %s", describe(tok))
	}
	p.next()
	return lit, nil
}

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// The parser relies on lexer spans being half-open; callers should pass the
// earliest start span first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}

package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/malphas-lang/synx/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrUnterminatedBlockComment
	ErrIllegalRune
	ErrInvalidEscape
	ErrInvalidNumber
	ErrInvalidChar
	ErrUnbalancedDelimiter
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrInvalidEscape:
		return diag.CodeLexerInvalidEscape
	case ErrInvalidNumber:
		return diag.CodeLexerInvalidNumber
	case ErrInvalidChar:
		return diag.CodeLexerInvalidChar
	case ErrUnbalancedDelimiter:
		return diag.CodeLexerUnbalancedDelimiter
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     e.Span.Diag(),
	}
}

// Diag converts the span into its diagnostic form.
func (s Span) Diag() diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithFilename records the source filename in every span.
func WithFilename(name string) Option {
	return func(l *Lexer) {
		l.filename = name
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input      string
	filename   string
	pos        int  // byte offset of the current rune
	next       int  // byte offset after the current rune
	ch         rune // current rune (0 = EOF)
	line       int  // line of the current rune (1-based)
	column     int  // column of the current rune (1-based, in runes)
	emitTrivia bool // whether to emit trivia tokens (comments, whitespace)

	pending []Token // desugared doc comment tokens waiting to be returned

	Errors []LexerError
}

// mark is a captured start position.
type mark struct {
	line, column, pos int
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

func newLexer(input string, emitTrivia bool, opts []Option) *Lexer {
	l := &Lexer{
		input:      input,
		line:       1,
		emitTrivia: emitTrivia,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.read()
	return l
}

// New creates a new lexer for the given input (trivia mode disabled)
func New(input string, opts ...Option) *Lexer {
	return newLexer(input, false, opts)
}

// NewWithTrivia creates a new lexer that emits trivia tokens instead of
// discarding whitespace and comments. Doc comments stay comments in this mode.
func NewWithTrivia(input string, opts ...Option) *Lexer {
	return newLexer(input, true, opts)
}

// read advances the lexer to the next rune.
func (l *Lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos = l.next
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.next = l.pos + w
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// peek returns the rune after the current one without advancing.
func (l *Lexer) peek() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

// peekByte returns the byte k positions past the current rune start.
func (l *Lexer) peekByte(k int) byte {
	if l.pos+k >= len(l.input) {
		return 0
	}
	return l.input[l.pos+k]
}

func (l *Lexer) start() mark {
	return mark{line: l.line, column: l.column, pos: l.pos}
}

func (l *Lexer) spanFrom(m mark) Span {
	return Span{
		Filename: l.filename,
		Line:     m.line,
		Column:   m.column,
		Start:    m.pos,
		End:      l.pos,
	}
}

// makeToken creates a token ending at the current position.
func (l *Lexer) makeToken(tokType TokenType, m mark, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   l.input[m.pos:l.pos],
		Value: value,
		Span:  l.spanFrom(m),
	}
}

func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// skipWhitespace skips whitespace characters, optionally returning a trivia token
func (l *Lexer) skipWhitespace() *Token {
	if !l.emitTrivia {
		for isWhitespace(l.ch) {
			l.read()
		}
		return nil
	}

	m := l.start()
	if l.ch == '\n' || l.ch == '\r' {
		cr := l.ch == '\r'
		l.read()
		if cr && l.ch == '\n' {
			l.read()
		}
		tok := l.makeToken(NEWLINE, m, "")
		tok.Value = tok.Raw
		return &tok
	}

	if isWhitespace(l.ch) {
		for isWhitespace(l.ch) && l.ch != '\n' && l.ch != '\r' {
			l.read()
		}
		tok := l.makeToken(WHITESPACE, m, "")
		tok.Value = tok.Raw
		return &tok
	}

	return nil
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	for {
		if triviaTok := l.skipWhitespace(); triviaTok != nil {
			return *triviaTok
		}

		m := l.start()

		switch {
		case l.atEOF():
			return l.makeToken(EOF, m, "")

		case l.ch == '/' && l.peek() == '/':
			if tok, ok := l.lineComment(m); ok {
				return tok
			}
			continue

		case l.ch == '/' && l.peek() == '*':
			if tok, ok := l.blockComment(m); ok {
				return tok
			}
			continue

		case l.ch == '"':
			return l.readString(m, STRING, false)

		case l.ch == '\'':
			return l.readQuote(m)

		case l.ch == 'b' && l.peek() == '\'':
			l.read()
			return l.readChar(m, BYTE, true)

		case l.ch == 'b' && l.peek() == '"':
			l.read()
			return l.readString(m, BYTE_STRING, true)

		case l.ch == 'b' && l.peek() == 'r' && (l.peekByte(2) == '"' || l.peekByte(2) == '#'):
			l.read()
			l.read()
			return l.readRawString(m, RAW_BYTE_STRING, true)

		case l.ch == 'r' && (l.peek() == '"' || (l.peek() == '#' && (l.peekByte(2) == '"' || l.peekByte(2) == '#'))):
			l.read()
			return l.readRawString(m, RAW_STRING, false)

		case l.ch == 'r' && l.peek() == '#' && isIdentStart(rune(l.peekByte(2))):
			l.read()
			l.read()
			word := l.readIdentifier()
			tok := l.makeToken(IDENT, m, "")
			tok.Value = tok.Raw
			if IsPathKeyword(LookupIdent(word)) || word == "_" {
				l.addError(ErrIllegalRune, fmt.Sprintf("`%s` cannot be a raw identifier", word), tok.Span)
				tok.Type = ILLEGAL
			}
			return tok

		case isDigit(l.ch):
			return l.readNumber(m)

		case isIdentStart(l.ch):
			word := l.readIdentifier()
			tokType := LookupIdent(word)
			if word == "_" {
				tokType = UNDERSCORE
			}
			return l.makeToken(tokType, m, word)
		}

		if tt, ok := delimiterTokens[l.ch]; ok {
			l.read()
			return l.makeToken(tt, m, string(tt))
		}

		if tt, n := l.matchPunct(); n > 0 {
			for i := 0; i < n; i++ {
				l.read()
			}
			return l.makeToken(tt, m, string(tt))
		}

		l.read()
		tok := l.makeToken(ILLEGAL, m, "")
		tok.Value = tok.Raw
		l.addError(ErrIllegalRune, "illegal character "+strconv.Quote(tok.Raw), tok.Span)
		return tok
	}
}

var delimiterTokens = map[rune]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
	'{': LBRACE,
	'}': RBRACE,
}

// matchPunct finds the longest punctuation glyph at the current position.
func (l *Lexer) matchPunct() (TokenType, int) {
	rest := l.input[l.pos:]
	for _, p := range punctuation {
		s := string(p)
		if len(rest) >= len(s) && rest[:len(s)] == s {
			return p, len(s)
		}
	}
	return "", 0
}

// lineComment skips `//` comments. Doc comments are queued as attribute tokens.
func (l *Lexer) lineComment(m mark) (Token, bool) {
	l.read()
	l.read()
	inner := l.ch == '!'
	outer := l.ch == '/' && l.peek() != '/'
	if inner || outer {
		l.read()
	}
	contentStart := l.pos
	for l.ch != '\n' && !l.atEOF() {
		l.read()
	}
	content := l.input[contentStart:l.pos]
	if len(content) > 0 && content[len(content)-1] == '\r' {
		content = content[:len(content)-1]
	}

	if l.emitTrivia {
		tok := l.makeToken(LINE_COMMENT, m, "")
		tok.Value = tok.Raw
		return tok, true
	}
	if inner || outer {
		return l.docTokens(m, content, inner), true
	}
	return Token{}, false
}

// blockComment skips a nested `/* */` comment.
func (l *Lexer) blockComment(m mark) (Token, bool) {
	l.read()
	l.read()
	inner := l.ch == '!'
	outer := l.ch == '*' && l.peek() != '*' && l.peek() != '/'
	if inner || outer {
		l.read()
	}
	contentStart := l.pos
	contentEnd := -1

	depth := 1
	for depth > 0 {
		if l.atEOF() {
			l.addError(ErrUnterminatedBlockComment, "unterminated block comment", l.spanFrom(m))
			break
		}
		switch {
		case l.ch == '/' && l.peek() == '*':
			l.read()
			l.read()
			depth++
		case l.ch == '*' && l.peek() == '/':
			if depth == 1 {
				contentEnd = l.pos
			}
			l.read()
			l.read()
			depth--
		default:
			l.read()
		}
	}

	if l.emitTrivia {
		tok := l.makeToken(BLOCK_COMMENT, m, "")
		tok.Value = tok.Raw
		return tok, true
	}
	if (inner || outer) && contentEnd >= 0 {
		return l.docTokens(m, l.input[contentStart:contentEnd], inner), true
	}
	return Token{}, false
}

// docTokens desugars a doc comment into `#[doc = "..."]` (or `#![...]` for
// inner comments). The first token is returned, the rest are queued.
func (l *Lexer) docTokens(m mark, content string, inner bool) Token {
	span := l.spanFrom(m)
	leaf := func(tt TokenType, raw, value string) Token {
		return Token{Type: tt, Raw: raw, Value: value, Span: span}
	}
	toks := []Token{leaf(POUND, "#", "#")}
	if inner {
		toks = append(toks, leaf(BANG, "!", "!"))
	}
	toks = append(toks,
		leaf(LBRACKET, "[", "["),
		leaf(IDENT, "doc", "doc"),
		leaf(ASSIGN, "=", "="),
		leaf(STRING, QuoteString(content), content),
		leaf(RBRACKET, "]", "]"),
	)
	toks[0].SugaredDoc = true
	l.pending = append(l.pending, toks[1:]...)
	return toks[0]
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch < utf8.RuneSelf && ((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'))) ||
		(ch >= utf8.RuneSelf && unicode.IsLetter(ch))
}

func isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch) || (ch >= utf8.RuneSelf && (unicode.IsDigit(ch) || unicode.Is(unicode.Mn, ch)))
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentContinue(l.ch) {
		l.read()
	}
	return l.input[start:l.pos]
}

// readNumber reads an integer or float literal with an optional suffix.
func (l *Lexer) readNumber(m mark) Token {
	tokType := INT
	base := 10
	if l.ch == '0' {
		switch l.peek() {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
	}

	var problem string
	digits := 0
	if base != 10 {
		l.read()
		l.read()
		for isHexDigit(l.ch) || l.ch == '_' {
			if l.ch != '_' {
				if v, _ := strconv.ParseUint(string(l.ch), 16, 8); int(v) >= base {
					if base == 16 || !isDigit(l.ch) {
						break
					}
					if problem == "" {
						problem = fmt.Sprintf("invalid digit %q in base %d literal", l.ch, base)
					}
				}
				digits++
			}
			l.read()
		}
		if digits == 0 && problem == "" {
			problem = fmt.Sprintf("no valid digits found for base %d literal", base)
		}
	} else {
		l.readDecimalDigits()
		if l.ch == '.' && isDigit(l.peek()) {
			tokType = FLOAT
			l.read()
			l.readDecimalDigits()
		} else if next := l.peek(); l.ch == '.' && next != '.' && !isIdentStart(next) {
			// `1.` is a float unless it starts a range, field or method.
			l.read()
			tok := l.makeToken(FLOAT, m, "")
			tok.Value = tok.Raw
			return tok
		}
		if l.ch == 'e' || l.ch == 'E' {
			tokType = FLOAT
			l.read()
			if l.ch == '+' || l.ch == '-' {
				l.read()
			}
			if l.readDecimalDigits() == 0 {
				problem = "expected at least one digit in exponent"
			}
		}
	}

	if isIdentStart(l.ch) {
		l.readIdentifier()
	}

	tok := l.makeToken(tokType, m, "")
	tok.Value = tok.Raw
	if problem != "" {
		l.addError(ErrInvalidNumber, problem, tok.Span)
		tok.Type = ILLEGAL
	}
	return tok
}

func (l *Lexer) readDecimalDigits() int {
	n := 0
	for isDigit(l.ch) || l.ch == '_' {
		if l.ch != '_' {
			n++
		}
		l.read()
	}
	return n
}

// readQuote disambiguates lifetimes ('a) from char literals ('a').
func (l *Lexer) readQuote(m mark) Token {
	next := l.peek()
	if isIdentStart(next) && next != utf8.RuneError {
		// scan the identifier run without consuming it
		i := l.next
		for i < len(l.input) {
			r, w := utf8.DecodeRuneInString(l.input[i:])
			if !isIdentContinue(r) {
				break
			}
			i += w
		}
		if i >= len(l.input) || l.input[i] != '\'' {
			l.read()
			word := l.readIdentifier()
			tok := l.makeToken(LIFETIME, m, "")
			tok.Value = tok.Raw
			if IsKeyword(word) && word != "static" {
				l.addError(ErrInvalidChar, fmt.Sprintf("lifetimes cannot use keyword names: '%s", word), tok.Span)
				tok.Type = ILLEGAL
			}
			return tok
		}
	}
	return l.readChar(m, CHAR, false)
}

// readChar reads a char or byte literal starting at the opening quote.
func (l *Lexer) readChar(m mark, tokType TokenType, isByte bool) Token {
	l.read() // opening quote

	var value []rune
	ok := true
	for l.ch != '\'' {
		if l.atEOF() || l.ch == '\n' {
			tok := l.makeToken(ILLEGAL, m, "")
			tok.Value = tok.Raw
			l.addError(ErrUnterminatedString, "unterminated character literal", tok.Span)
			return tok
		}
		r, good := l.readCharUnit(m, isByte, false)
		ok = ok && good
		if r >= 0 {
			value = append(value, r)
		}
	}
	l.read() // closing quote

	tok := l.makeToken(tokType, m, string(value))
	switch {
	case !ok:
		tok.Type = ILLEGAL
	case len(value) == 0:
		l.addError(ErrInvalidChar, "empty character literal", tok.Span)
		tok.Type = ILLEGAL
	case len(value) > 1:
		l.addError(ErrInvalidChar, "character literal may only contain one codepoint", tok.Span)
		tok.Type = ILLEGAL
	}
	return tok
}

// readString reads a string or byte string literal.
func (l *Lexer) readString(m mark, tokType TokenType, isByte bool) Token {
	l.read() // opening quote

	var value []rune
	ok := true
	for l.ch != '"' {
		if l.atEOF() {
			tok := l.makeToken(ILLEGAL, m, string(value))
			l.addError(ErrUnterminatedString, "unterminated string literal", tok.Span)
			return tok
		}
		r, good := l.readCharUnit(m, isByte, true)
		ok = ok && good
		if r >= 0 {
			value = append(value, r)
		}
	}
	l.read() // closing quote

	tok := l.makeToken(tokType, m, string(value))
	if !ok {
		tok.Type = ILLEGAL
	}
	return tok
}

// readCharUnit consumes one source character or escape sequence and returns
// the rune it denotes, or -1 when it denotes nothing (line continuation).
func (l *Lexer) readCharUnit(m mark, isByte, inString bool) (rune, bool) {
	if l.ch != '\\' {
		r := l.ch
		l.read()
		if isByte && r >= utf8.RuneSelf {
			l.addError(ErrInvalidChar, "non-ASCII character in byte literal", l.spanFrom(m))
			return r, false
		}
		if r == '\r' && l.ch != '\n' && inString {
			l.addError(ErrInvalidChar, "bare CR not allowed in string", l.spanFrom(m))
			return r, false
		}
		return r, true
	}

	escStart := l.start()
	l.read() // backslash
	esc := l.ch
	switch esc {
	case 'n':
		l.read()
		return '\n', true
	case 'r':
		l.read()
		return '\r', true
	case 't':
		l.read()
		return '\t', true
	case '\\':
		l.read()
		return '\\', true
	case '0':
		l.read()
		return 0, true
	case '\'':
		l.read()
		return '\'', true
	case '"':
		l.read()
		return '"', true
	case 'x':
		l.read()
		hexStart := l.pos
		for i := 0; i < 2 && isHexDigit(l.ch); i++ {
			l.read()
		}
		digits := l.input[hexStart:l.pos]
		if len(digits) != 2 {
			l.addError(ErrInvalidEscape, "numeric character escape is too short", l.spanFrom(escStart))
			return -1, false
		}
		v, _ := strconv.ParseUint(digits, 16, 8)
		if !isByte && v > 0x7F {
			l.addError(ErrInvalidEscape, "out of range hex escape", l.spanFrom(escStart))
			return -1, false
		}
		return rune(v), true
	case 'u':
		l.read()
		if isByte {
			l.addError(ErrInvalidEscape, "unicode escape in byte literal", l.spanFrom(escStart))
			return -1, false
		}
		if l.ch != '{' {
			l.addError(ErrInvalidEscape, "incorrect unicode escape sequence", l.spanFrom(escStart))
			return -1, false
		}
		l.read()
		var hex []byte
		for isHexDigit(l.ch) || l.ch == '_' {
			if l.ch != '_' {
				hex = append(hex, byte(l.ch))
			}
			l.read()
		}
		if l.ch != '}' {
			l.addError(ErrInvalidEscape, "unterminated unicode escape", l.spanFrom(escStart))
			return -1, false
		}
		l.read()
		if len(hex) == 0 || len(hex) > 6 {
			l.addError(ErrInvalidEscape, "unicode escape must have 1 to 6 hex digits", l.spanFrom(escStart))
			return -1, false
		}
		v, _ := strconv.ParseUint(string(hex), 16, 32)
		if v > unicode.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
			l.addError(ErrInvalidEscape, "invalid unicode character escape", l.spanFrom(escStart))
			return -1, false
		}
		return rune(v), true
	case '\n', '\r':
		if !inString {
			break
		}
		for isWhitespace(l.ch) {
			l.read()
		}
		return -1, true
	}

	if !l.atEOF() {
		l.read()
	}
	l.addError(ErrInvalidEscape, fmt.Sprintf("unknown character escape: %q", esc), l.spanFrom(escStart))
	return -1, false
}

// readRawString reads r"..." / r#"..."# forms; the caller consumed the prefix
// letters up to the first '#' or quote.
func (l *Lexer) readRawString(m mark, tokType TokenType, isByte bool) Token {
	hashes := 0
	for l.ch == '#' {
		hashes++
		l.read()
	}
	if l.ch != '"' {
		tok := l.makeToken(ILLEGAL, m, "")
		tok.Value = tok.Raw
		l.addError(ErrUnterminatedString, "expected '\"' in raw string literal", tok.Span)
		return tok
	}
	l.read()

	contentStart := l.pos
	for {
		if l.atEOF() {
			tok := l.makeToken(ILLEGAL, m, "")
			tok.Value = tok.Raw
			l.addError(ErrUnterminatedString, "unterminated raw string literal", tok.Span)
			return tok
		}
		if l.ch == '"' && l.closesRaw(hashes) {
			content := l.input[contentStart:l.pos]
			l.read()
			for i := 0; i < hashes; i++ {
				l.read()
			}
			tok := l.makeToken(tokType, m, content)
			if isByte {
				for _, r := range content {
					if r >= utf8.RuneSelf {
						l.addError(ErrInvalidChar, "non-ASCII character in raw byte string", tok.Span)
						tok.Type = ILLEGAL
						break
					}
				}
			}
			return tok
		}
		l.read()
	}
}

func (l *Lexer) closesRaw(hashes int) bool {
	for i := 1; i <= hashes; i++ {
		if l.peekByte(i) != '#' {
			return false
		}
	}
	return true
}

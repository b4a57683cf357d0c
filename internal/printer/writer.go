package printer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/malphas-lang/synx/internal/lexer"
)

var puncts = lexer.Punctuation()

// printer accumulates output one token at a time. Adjacent tokens that
// would lex differently when written together are separated by a space.
type printer struct {
	cfg   config
	out   strings.Builder
	depth int

	last      string // previous token on the current line, "" after whitespace
	bol       bool   // indentation is pending
	breakLine bool   // a line comment was written; the next token starts a new line
}

func newPrinter(cfg config) *printer {
	return &printer{cfg: cfg, bol: true}
}

func (p *printer) String() string { return p.out.String() }

func (p *printer) startToken() bool {
	if p.breakLine {
		p.newline()
	}
	if p.bol {
		for i := 0; i < p.depth; i++ {
			p.out.WriteString(p.cfg.indent)
		}
		p.bol = false
		return false
	}
	return true
}

// tok writes a single token.
func (p *printer) tok(s string) {
	if s == "" {
		return
	}
	if p.startToken() && needsSpace(p.last, s) {
		p.out.WriteByte(' ')
	}
	p.out.WriteString(s)
	p.last = s
}

// closeAngle writes the `>` ending a generic list. Consecutive closers glue
// into `>>`, which the parser splits again.
func (p *printer) closeAngle() {
	if p.last == ">" && !p.breakLine && !p.bol {
		p.out.WriteByte('>')
		return
	}
	p.tok(">")
}

func (p *printer) space() {
	if p.bol || p.breakLine || p.last == "" {
		return
	}
	p.out.WriteByte(' ')
	p.last = ""
}

func (p *printer) newline() {
	p.out.WriteByte('\n')
	p.bol = true
	p.breakLine = false
	p.last = ""
}

// lineComment writes a `//` comment; whatever follows goes on the next line.
func (p *printer) lineComment(s string) {
	p.tok(s)
	p.breakLine = true
}

// keyword writes a keyword followed by a space.
func (p *printer) keyword(s string) {
	p.tok(s)
	p.space()
}

// op writes a binary operator surrounded by spaces.
func (p *printer) op(s string) {
	p.space()
	p.tok(s)
	p.space()
}

func (p *printer) indent()   { p.depth++ }
func (p *printer) unindent() { p.depth-- }

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// needsSpace reports whether prev and next would merge into a different
// token stream when written without whitespace.
func needsSpace(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	a, _ := utf8.DecodeLastRuneInString(prev)
	b, _ := utf8.DecodeRuneInString(next)
	switch {
	case isWordRune(a) && (isWordRune(b) || b == '\'' || b == '"' || b == '#'):
		return true
	case (a == '\'' || a == '"') && isWordRune(b):
		return true
	case a == '/' && (b == '/' || b == '*'):
		return true
	case prev[0] >= '0' && prev[0] <= '9' && (next == "." || a == '.' && b == '.'):
		return true
	}
	return joins(prev, next)
}

// joins reports whether the punctuation prev would extend into a longer
// operator when followed by next.
func joins(prev, next string) bool {
	joined := prev + next
	for _, tt := range puncts {
		s := string(tt)
		if len(s) > len(prev) && strings.HasPrefix(s, prev) && strings.HasPrefix(joined, s) {
			return true
		}
	}
	return false
}

package ast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/malphas-lang/synx/internal/lexer"
)

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Pos records where a node was parsed from. Synthesized nodes carry the zero span.
type Pos struct {
	Loc lexer.Span
}

// Span returns the node span.
func (p Pos) Span() lexer.Span { return p.Loc }

// SetSpan updates the node span.
func (p *Pos) SetSpan(span lexer.Span) { p.Loc = span }

// Ident is a validated identifier. Raw identifiers keep their `r#` prefix.
type Ident struct {
	Pos
	Name string
}

// NewIdent validates name and constructs an identifier.
func NewIdent(name string) (*Ident, error) {
	if err := ValidateIdent(name); err != nil {
		return nil, err
	}
	return &Ident{Name: name}, nil
}

// MustIdent is NewIdent for names known to be valid. It panics otherwise.
func MustIdent(name string) *Ident {
	id, err := NewIdent(name)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidateIdent reports why name is not a usable identifier.
func ValidateIdent(name string) error {
	word, raw := strings.CutPrefix(name, "r#")
	if word == "" {
		return fmt.Errorf("identifier must not be empty")
	}
	if word == "_" {
		return fmt.Errorf("`_` is not an identifier")
	}
	for i, r := range word {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return fmt.Errorf("invalid identifier %q", name)
		}
	}
	tt := lexer.LookupIdent(word)
	if raw {
		if lexer.IsPathKeyword(tt) {
			return fmt.Errorf("`%s` cannot be a raw identifier", word)
		}
		return nil
	}
	if tt != lexer.IDENT && !lexer.IsPathKeyword(tt) {
		return fmt.Errorf("keyword `%s` used as identifier", word)
	}
	return nil
}

// String returns the identifier text.
func (i *Ident) String() string { return i.Name }

// Unraw returns the identifier without a raw prefix.
func (i *Ident) Unraw() string { return strings.TrimPrefix(i.Name, "r#") }

// Lifetime is a lifetime name including its leading apostrophe, such as 'a.
type Lifetime struct {
	Pos
	Name string
}

// NewLifetime validates and constructs a lifetime.
func NewLifetime(name string) (*Lifetime, error) {
	word, ok := strings.CutPrefix(name, "'")
	if !ok {
		return nil, fmt.Errorf("lifetime %q must start with an apostrophe", name)
	}
	if word != "_" && word != "static" {
		if err := ValidateIdent(word); err != nil || lexer.LookupIdent(word) != lexer.IDENT {
			return nil, fmt.Errorf("invalid lifetime %q", name)
		}
	}
	return &Lifetime{Name: name}, nil
}

func (l *Lifetime) String() string { return l.Name }

// LitKind classifies a literal.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitByteStr
	LitChar
	LitByte
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitStr:
		return "str"
	case LitByteStr:
		return "byte str"
	case LitChar:
		return "char"
	case LitByte:
		return "byte"
	case LitBool:
		return "bool"
	}
	return "unknown"
}

// Lit is a literal. Raw holds the exact source text so printing reproduces it;
// Value holds the decoded contents for strings and chars.
type Lit struct {
	Pos
	Kind  LitKind
	Raw   string
	Value string
}

// NewStrLit constructs a string literal.
func NewStrLit(value string) *Lit {
	return &Lit{Kind: LitStr, Raw: lexer.QuoteString(value), Value: value}
}

// NewIntLit constructs an unsuffixed integer literal.
func NewIntLit(v uint64) *Lit {
	raw := strconv.FormatUint(v, 10)
	return &Lit{Kind: LitInt, Raw: raw, Value: raw}
}

// NewBoolLit constructs `true` or `false`.
func NewBoolLit(v bool) *Lit {
	raw := strconv.FormatBool(v)
	return &Lit{Kind: LitBool, Raw: raw, Value: raw}
}

// LitFromToken converts a literal token. ok is false for non-literal tokens.
func LitFromToken(tok lexer.Token) (*Lit, bool) {
	var kind LitKind
	switch tok.Type {
	case lexer.INT:
		kind = LitInt
	case lexer.FLOAT:
		kind = LitFloat
	case lexer.STRING, lexer.RAW_STRING:
		kind = LitStr
	case lexer.BYTE_STRING, lexer.RAW_BYTE_STRING:
		kind = LitByteStr
	case lexer.CHAR:
		kind = LitChar
	case lexer.BYTE:
		kind = LitByte
	case lexer.TRUE, lexer.FALSE:
		kind = LitBool
	default:
		return nil, false
	}
	return &Lit{Pos: Pos{tok.Span}, Kind: kind, Raw: tok.Raw, Value: tok.Value}, true
}

// Suffix returns the type suffix of a numeric literal, such as "u8".
func (l *Lit) Suffix() string {
	if l.Kind != LitInt && l.Kind != LitFloat {
		return ""
	}
	raw := l.Raw
	start := 0
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0o") || strings.HasPrefix(raw, "0b") {
		start = 2
	}
	for i := start; i < len(raw); i++ {
		c := raw[i]
		isDigit := c >= '0' && c <= '9' || c == '_' || c == '.'
		if start == 2 && raw[1] == 'x' {
			isDigit = isDigit || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		}
		if l.Kind == LitFloat && (c == 'e' || c == 'E') && i+1 < len(raw) &&
			(raw[i+1] == '+' || raw[i+1] == '-' || raw[i+1] >= '0' && raw[i+1] <= '9') {
			i++
			continue
		}
		if !isDigit {
			return raw[i:]
		}
	}
	return ""
}

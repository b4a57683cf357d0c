package ast

import (
	"strings"

	"github.com/malphas-lang/synx/internal/lexer"
)

// AttrStyle distinguishes `#[outer]` from `#![inner]` attributes.
type AttrStyle int

const (
	AttrOuter AttrStyle = iota
	AttrInner
)

// Attribute is `#[path tokens]`. Tokens holds the token trees after the path
// verbatim; use parser.ParseMeta to interpret them. SugaredDoc marks
// attributes written as doc comments.
type Attribute struct {
	Pos
	Style      AttrStyle
	Path       *Path
	Tokens     lexer.TokenStream
	SugaredDoc bool
}

// Meta is the structured form of an attribute.
type Meta interface {
	NestedMeta
	MetaPath() *Path
}

// MetaWord is a bare path such as `test`.
type MetaWord struct {
	Pos
	Path *Path
}

// MetaList is `path(nested, ...)`.
type MetaList struct {
	Pos
	Path   *Path
	Nested []NestedMeta
}

// MetaNameValue is `path = "literal"`.
type MetaNameValue struct {
	Pos
	Path *Path
	Lit  *Lit
}

// NestedMeta is an element of a MetaList: a Meta or a literal.
type NestedMeta interface {
	Node
	nestedMeta()
}

func (m *MetaWord) MetaPath() *Path      { return m.Path }
func (m *MetaList) MetaPath() *Path      { return m.Path }
func (m *MetaNameValue) MetaPath() *Path { return m.Path }

func (*MetaWord) nestedMeta()      {}
func (*MetaList) nestedMeta()      {}
func (*MetaNameValue) nestedMeta() {}
func (*Lit) nestedMeta()           {}

// OuterAttrs filters attrs to outer attributes.
func OuterAttrs(attrs []*Attribute) []*Attribute {
	return filterAttrs(attrs, AttrOuter)
}

// InnerAttrs filters attrs to inner attributes.
func InnerAttrs(attrs []*Attribute) []*Attribute {
	return filterAttrs(attrs, AttrInner)
}

func filterAttrs(attrs []*Attribute, style AttrStyle) []*Attribute {
	var out []*Attribute
	for _, a := range attrs {
		if a.Style == style {
			out = append(out, a)
		}
	}
	return out
}

// DocValue returns the string of a `#[doc = "..."]` attribute.
func (a *Attribute) DocValue() (string, bool) {
	if !a.Path.IsIdent("doc") || len(a.Tokens) != 2 ||
		a.Tokens[0].Type != lexer.ASSIGN || a.Tokens[1].Type != lexer.STRING {
		return "", false
	}
	return a.Tokens[1].Value, true
}

// NewDocAttribute builds a doc attribute; sugared ones print as comments.
func NewDocAttribute(style AttrStyle, text string, sugared bool) *Attribute {
	return &Attribute{
		Style: style,
		Path:  NewPath("doc"),
		Tokens: lexer.TokenStream{
			{Type: lexer.ASSIGN, Raw: "=", Value: "="},
			{Type: lexer.STRING, Raw: lexer.QuoteString(text), Value: text},
		},
		SugaredDoc: sugared,
	}
}

// DeriveList returns the entries of a `#[derive(A, b::C)]` attribute. ok is
// false when the attribute is not a well formed derive.
func (a *Attribute) DeriveList() (names []string, ok bool) {
	if a.Style != AttrOuter || !a.Path.IsIdent("derive") || len(a.Tokens) != 1 {
		return nil, false
	}
	group := a.Tokens[0]
	if !group.IsGroup() || group.Delim != lexer.DelimParen {
		return nil, false
	}
	var cur strings.Builder
	for _, tok := range group.Stream {
		switch tok.Type {
		case lexer.COMMA:
			if cur.Len() == 0 {
				return nil, false
			}
			names = append(names, cur.String())
			cur.Reset()
		case lexer.IDENT, lexer.DOUBLE_COLON:
			cur.WriteString(tok.Raw)
		default:
			return nil, false
		}
	}
	if cur.Len() > 0 {
		names = append(names, cur.String())
	}
	return names, true
}

// NewDeriveAttribute builds `#[derive(names...)]`. Names may be paths.
func NewDeriveAttribute(names []string) *Attribute {
	var inner lexer.TokenStream
	for i, name := range names {
		if i > 0 {
			inner = append(inner, lexer.Token{Type: lexer.COMMA, Raw: ",", Value: ","})
		}
		for j, part := range strings.Split(name, "::") {
			if j > 0 {
				inner = append(inner, lexer.Token{Type: lexer.DOUBLE_COLON, Raw: "::", Value: "::"})
			}
			if part != "" {
				inner = append(inner, lexer.Token{Type: lexer.IDENT, Raw: part, Value: part})
			}
		}
	}
	return &Attribute{
		Style: AttrOuter,
		Path:  NewPath("derive"),
		Tokens: lexer.TokenStream{{
			Type:   lexer.GROUP,
			Delim:  lexer.DelimParen,
			Stream: inner,
		}},
	}
}

// DeriveNames collects the derive entries of all derive attributes in order.
func DeriveNames(attrs []*Attribute) []string {
	var names []string
	for _, a := range attrs {
		if list, ok := a.DeriveList(); ok {
			names = append(names, list...)
		}
	}
	return names
}

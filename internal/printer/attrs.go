package printer

import (
	"strings"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

func (p *printer) attr(a *ast.Attribute) {
	if a.SugaredDoc {
		if text, ok := a.DocValue(); ok && p.docComment(a.Style == ast.AttrInner, text) {
			return
		}
	}
	p.tok("#")
	if a.Style == ast.AttrInner {
		p.tok("!")
	}
	p.tok("[")
	p.path(a.Path)
	p.tokens(a.Tokens)
	p.tok("]")
}

// attrLines prints attributes of the given style one per line.
func (p *printer) attrLines(attrs []*ast.Attribute, style ast.AttrStyle) {
	for _, a := range attrs {
		if a.Style == style {
			p.attr(a)
			p.newline()
		}
	}
}

func (p *printer) outerAttrs(attrs []*ast.Attribute) {
	p.attrLines(attrs, ast.AttrOuter)
}

// inlineAttrs prints attributes followed by a space, for positions inside
// a line such as generic parameters and tuple fields.
func (p *printer) inlineAttrs(attrs []*ast.Attribute) {
	for _, a := range attrs {
		p.attr(a)
		p.space()
	}
}

// docComment writes text as a doc comment when the comment form lexes back
// to the same text.
func (p *printer) docComment(inner bool, text string) bool {
	if !strings.ContainsAny(text, "\r\n") && (inner || !strings.HasPrefix(text, "/")) {
		if inner {
			p.lineComment("//!" + text)
		} else {
			p.lineComment("///" + text)
		}
		return true
	}
	if text == "" || strings.Contains(text, "*/") || strings.Contains(text, "/*") || strings.HasSuffix(text, "/") {
		return false
	}
	if inner {
		p.tok("/*!" + text + "*/")
		return true
	}
	if text[0] == '*' || text[0] == '/' {
		return false
	}
	p.tok("/**" + text + "*/")
	return true
}

// tokens prints token trees. Commas and semicolons are followed by a space
// and `=` and `=>` are surrounded by spaces; otherwise tokens are only
// separated where they would merge.
func (p *printer) tokens(ts lexer.TokenStream) {
	for i := 0; i < len(ts); i++ {
		tok := ts[i]
		if tok.Type == lexer.POUND && tok.SugaredDoc {
			if n := p.sugaredDoc(ts[i:]); n > 0 {
				i += n - 1
				continue
			}
		}
		switch {
		case tok.IsGroup():
			p.tok(tok.Delim.Open())
			p.tokens(tok.Stream)
			p.tok(tok.Delim.Close())
		case tok.Type == lexer.COMMA || tok.Type == lexer.SEMICOLON:
			p.tok(tok.Raw)
			if i < len(ts)-1 {
				p.space()
			}
		case tok.Type == lexer.ASSIGN || tok.Type == lexer.FATARROW:
			p.op(string(tok.Type))
		default:
			p.tok(tokenText(tok))
		}
	}
}

func tokenText(tok lexer.Token) string {
	switch {
	case tok.Raw != "":
		return tok.Raw
	case tok.Value != "":
		return tok.Value
	}
	return lexer.KeywordText(tok.Type)
}

// sugaredDoc prints the tokens of a desugared doc comment at the start of ts
// as the comment. It returns the number of tokens consumed, or 0 when ts does
// not hold a doc comment that can be written back as one.
func (p *printer) sugaredDoc(ts lexer.TokenStream) int {
	n := 1
	inner := len(ts) > n && ts[n].Type == lexer.BANG
	if inner {
		n++
	}
	if len(ts) <= n {
		return 0
	}
	group := ts[n]
	if !group.IsGroup() || group.Delim != lexer.DelimBracket || len(group.Stream) != 3 {
		return 0
	}
	body := group.Stream
	if body[0].Type != lexer.IDENT || body[0].Raw != "doc" || body[1].Type != lexer.ASSIGN || body[2].Type != lexer.STRING {
		return 0
	}
	if !p.docComment(inner, body[2].Value) {
		return 0
	}
	return n + 1
}

func (p *printer) meta(m ast.NestedMeta) {
	switch m := m.(type) {
	case *ast.Lit:
		p.lit(m)
	case *ast.MetaWord:
		p.path(m.Path)
	case *ast.MetaList:
		p.path(m.Path)
		p.tok("(")
		for i, n := range m.Nested {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.meta(n)
		}
		p.tok(")")
	case *ast.MetaNameValue:
		p.path(m.Path)
		p.op("=")
		p.lit(m.Lit)
	}
}

func (p *printer) vis(v ast.Visibility) {
	switch v.Kind {
	case ast.VisInherited:
		return
	case ast.VisPublic:
		p.tok("pub")
	case ast.VisCrate:
		p.tok("pub")
		p.tok("(")
		p.tok("crate")
		p.tok(")")
	case ast.VisRestricted:
		p.tok("pub")
		p.tok("(")
		if v.In {
			p.keyword("in")
		}
		p.path(v.Path)
		p.tok(")")
	}
	p.space()
}

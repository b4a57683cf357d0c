//go:build !minimal

package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
	"github.com/malphas-lang/synx/internal/parser"
)

// lazyStatic is one `vis static ref NAME: Ty = expr;` entry of a
// lazy_static! invocation.
type lazyStatic struct {
	Attrs []*ast.Attribute
	Vis   ast.Visibility
	Name  *ast.Ident
	Type  ast.TypeExpr
	Init  ast.Expr
}

func parseLazyStatic(p *parser.Parser) (*lazyStatic, error) {
	defer p.Enter("lazy static")()

	var (
		out lazyStatic
		err error
	)
	if out.Attrs, err = p.OuterAttributes(); err != nil {
		return nil, err
	}
	if out.Vis, err = p.Visibility(); err != nil {
		return nil, err
	}
	if _, err := p.Expect(lexer.STATIC); err != nil {
		return nil, err
	}
	if _, err := p.Expect(lexer.REF); err != nil {
		return nil, err
	}
	if out.Name, err = p.Ident(); err != nil {
		return nil, err
	}
	if _, err := p.Expect(lexer.COLON); err != nil {
		return nil, err
	}
	if out.Type, err = p.Type(); err != nil {
		return nil, err
	}
	if _, err := p.Expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	if out.Init, err = p.Expr(); err != nil {
		return nil, err
	}
	return &out, nil
}

func macroTokens(t *testing.T, src string) lexer.TokenStream {
	t.Helper()

	mac, ok := mustParseExpr(t, src).(*ast.MacroExpr)
	if !ok {
		t.Fatalf("expected a macro invocation in %q", src)
	}
	return mac.Mac.Tokens
}

func TestParseTokensCustomMacroInput(t *testing.T) {
	toks := macroTokens(t, `lazy_static! {
    /// Known names.
    pub static ref NAMES: Vec<&'static str> = vec!["a", "b"];
    static ref COUNT: usize = 1 + 2;
}`)

	items, err := parser.ParseTokens(toks, parser.Terminated(parseLazyStatic, lexer.SEMICOLON))
	if err != nil {
		t.Fatalf("ParseTokens: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 statics, got %d", len(items))
	}

	names := items[0]
	if names.Name.Name != "NAMES" || !names.Vis.IsPublic() {
		t.Fatalf("unexpected first static %s (vis %v)", names.Name.Name, names.Vis.Kind)
	}
	if len(names.Attrs) != 1 || !names.Attrs[0].SugaredDoc {
		t.Fatalf("expected the doc comment as a sugared attribute, got %+v", names.Attrs)
	}
	if typ, ok := names.Type.(*ast.PathType); !ok || typ.Path.Last().Ident.Name != "Vec" {
		t.Fatalf("expected Vec type, got %T", names.Type)
	}
	if _, ok := names.Init.(*ast.MacroExpr); !ok {
		t.Fatalf("expected vec! initializer, got %T", names.Init)
	}

	count := items[1]
	if count.Name.Name != "COUNT" || count.Vis.Kind != ast.VisInherited {
		t.Fatalf("unexpected second static %s (vis %v)", count.Name.Name, count.Vis.Kind)
	}
	if _, ok := count.Init.(*ast.InfixExpr); !ok {
		t.Fatalf("expected 1 + 2 initializer, got %T", count.Init)
	}
}

func TestParseTokensCustomMacroInputErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"m! { static COUNT: usize = 1; }", "expected `ref`"},
		{"m! { static ref COUNT = 1; }", "expected `:`"},
		{"m! { pub ref COUNT: usize = 1; }", "expected `static`"},
	}
	for _, tt := range tests {
		_, err := parser.ParseTokens(macroTokens(t, tt.src), parser.Terminated(parseLazyStatic, lexer.SEMICOLON))
		var perr *parser.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%s: expected *ParseError, got %v", tt.src, err)
		}
		if !strings.Contains(perr.Message, tt.want) {
			t.Fatalf("%s: expected %q in %q", tt.src, tt.want, perr.Message)
		}
		if len(perr.Rules) == 0 || perr.Rules[len(perr.Rules)-1] != "lazy static" {
			t.Fatalf("%s: expected the failing rule in %v", tt.src, perr.Rules)
		}
	}
}

type binding struct {
	Kind string
	From string
	To   string
}

func parseBind(p *parser.Parser) (binding, error) {
	if _, err := p.Keyword("bind"); err != nil {
		return binding{}, err
	}
	from, err := p.AnyIdent()
	if err != nil {
		return binding{}, err
	}
	if _, err := p.Expect(lexer.FATARROW); err != nil {
		return binding{}, err
	}
	to, err := p.Ident()
	if err != nil {
		return binding{}, err
	}
	return binding{Kind: "bind", From: from.Name, To: to.Name}, nil
}

func parseSkip(p *parser.Parser) (binding, error) {
	if _, err := p.Keyword("skip"); err != nil {
		return binding{}, err
	}
	name, err := p.Ident()
	if err != nil {
		return binding{}, err
	}
	return binding{Kind: "skip", From: name.Name}, nil
}

func parseBindings(p *parser.Parser) ([]binding, error) {
	return parser.Punctuated(p, lexer.COMMA, func(p *parser.Parser) (binding, error) {
		return parser.Alt(p, "`bind` or `skip`", parseBind, parseSkip)
	})
}

func mustTokenize(t *testing.T, src string) lexer.TokenStream {
	t.Helper()

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func TestParseTokensContextualKeywords(t *testing.T) {
	got, err := parser.ParseTokens(mustTokenize(t, "bind type => kind, skip bind, bind match => m,"), parseBindings)
	if err != nil {
		t.Fatalf("ParseTokens: %v", err)
	}
	want := []binding{
		{Kind: "bind", From: "type", To: "kind"},
		{Kind: "skip", From: "bind"},
		{Kind: "bind", From: "match", To: "m"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d bindings, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("binding %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	for _, src := range []string{"unbind x", "skip type"} {
		if _, err := parser.ParseTokens(mustTokenize(t, src), parseBindings); err == nil {
			t.Fatalf("expected %q to fail", src)
		}
	}
}

func TestParseTokensCombinators(t *testing.T) {
	type call struct {
		Args  []string
		Flags []string
		Ret   ast.TypeExpr
	}
	ident := func(p *parser.Parser) (string, error) {
		id, err := p.Ident()
		if err != nil {
			return "", err
		}
		return id.Name, nil
	}
	ret := func(p *parser.Parser) (ast.TypeExpr, error) {
		if _, err := p.Expect(lexer.ARROW); err != nil {
			return nil, err
		}
		return p.Type()
	}
	rule := func(p *parser.Parser) (*call, error) {
		var (
			c   call
			err error
		)
		c.Args, err = parser.Delimited(p, lexer.DelimParen, func(p *parser.Parser) ([]string, error) {
			return parser.Punctuated(p, lexer.COMMA, ident)
		})
		if err != nil {
			return nil, err
		}
		if c.Ret, _, err = parser.Opt(p, ret); err != nil {
			return nil, err
		}
		c.Flags, err = parser.Many(p, ident)
		return &c, err
	}

	c, err := parser.ParseTokens(mustTokenize(t, "(a, b,) -> u8 fast safe"), rule)
	if err != nil {
		t.Fatalf("ParseTokens: %v", err)
	}
	if strings.Join(c.Args, ",") != "a,b" || strings.Join(c.Flags, ",") != "fast,safe" || c.Ret == nil {
		t.Fatalf("unexpected result %+v", c)
	}

	c, err = parser.ParseTokens(mustTokenize(t, "()"), rule)
	if err != nil {
		t.Fatalf("ParseTokens: %v", err)
	}
	if len(c.Args) != 0 || c.Ret != nil || len(c.Flags) != 0 {
		t.Fatalf("unexpected result %+v", c)
	}

	if _, err := parser.ParseTokens(mustTokenize(t, "(a b)"), rule); err == nil {
		t.Fatalf("expected an error for a missing separator")
	}
	if _, err := parser.ParseTokens(mustTokenize(t, "() fast 1"), rule); err == nil {
		t.Fatalf("expected trailing input to be rejected")
	}
}

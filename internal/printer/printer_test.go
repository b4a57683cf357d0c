package printer_test

import (
	"strings"
	"testing"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/parser"
	"github.com/malphas-lang/synx/internal/printer"
)

func mustParseInput(t *testing.T, src string) *ast.MacroInput {
	t.Helper()

	in, err := parser.ParseMacroInput(src)
	if err != nil {
		t.Fatalf("ParseMacroInput(%q): %v", src, err)
	}
	return in
}

func TestPrintMacroInputRoundTrip(t *testing.T) {
	cases := []string{
		"struct Unit;",
		"pub struct Point { pub x: i32, y: i32 }",
		"struct Pair<'a, T: Clone + 'a = u8>(&'a T, pub(crate) u8) where T: Default;",
		"struct Gen<T> where T: Iterator<Item = u8>, for<'b> &'b T: Into<String> { t: T }",
		"pub(in crate::a) enum Op { Add, Neg(i64), Move { x: u8, #[skip] y: u8 }, Done = 4 }",
		"enum Never {}",
		"#[derive(Debug, Clone)] #[repr(C)] struct Tagged { #[doc = \"field\"] a: [u8; 4] }",
		"struct Ptrs { a: *const u8, b: *mut u8, c: fn(u8, ...) -> !, d: &'static (dyn Fn(u8) -> u8 + Send) }",
		"struct Q { a: <T as Iterator>::Item, b: Vec<Vec<u8>>, c: (u8,), d: (), e: Box<(dyn Error + 'static)> }",
		"struct Imp<F: ?Sized + for<'x> FnMut(&'x u8)> { f: Box<F> }",
		"/// Docs.\n/** Block */\nstruct Documented;",
	}
	for _, src := range cases {
		in := mustParseInput(t, src)
		out := printer.MacroInput(in)
		again, err := parser.ParseMacroInput(out)
		if err != nil {
			t.Fatalf("reparse of %q failed: %v\noutput:\n%s", src, err, out)
		}
		if !ast.Equal(in, again) {
			t.Fatalf("round trip of %q changed the tree:\n%s\noutput:\n%s", src, ast.Diff(in, again), out)
		}
		if second := printer.MacroInput(again); second != out {
			t.Fatalf("printing is not stable for %q:\nfirst:\n%s\nsecond:\n%s", src, out, second)
		}
	}
}

func TestPrintStructLayout(t *testing.T) {
	in := mustParseInput(t, "/// A point.\n#[derive(Debug)] pub struct P<T> where T: Copy { x: T, pub y: T }")
	want := "/// A point.\n#[derive(Debug)]\npub struct P<T> where T: Copy {\n    x: T,\n    pub y: T,\n}"
	if got := printer.MacroInput(in); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintEnumLayout(t *testing.T) {
	in := mustParseInput(t, "enum E { A, B(u8, u16), C { x: u8 }, D = 1 }")
	want := "enum E {\n    A,\n    B(u8, u16),\n    C { x: u8 },\n    D = 1,\n}"
	if got := printer.MacroInput(in); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintWithIndent(t *testing.T) {
	in := mustParseInput(t, "struct S { a: u8 }")

	if got := printer.MacroInput(in, printer.WithIndent(2)); got != "struct S {\n  a: u8,\n}" {
		t.Fatalf("unexpected two space output:\n%s", got)
	}
	if got := printer.MacroInput(in, printer.WithIndent(0)); got != "struct S {\n\ta: u8,\n}" {
		t.Fatalf("unexpected tab output:\n%s", got)
	}
}

func TestPrintTypesGlueClosingAngles(t *testing.T) {
	cases := map[string]string{
		"Vec<Vec<u8>>":                       "Vec<Vec<u8>>",
		"HashMap<K,Vec<Option<V>>>":          "HashMap<K, Vec<Option<V>>>",
		"&&u8":                               "& &u8",
		"&'a mut [T]":                        "&'a mut [T]",
		"impl Iterator<Item=u8>+Send":        "impl Iterator<Item = u8> + Send",
		"<Vec<T> as IntoIterator>::IntoIter": "<Vec<T> as IntoIterator>::IntoIter",
	}
	for src, want := range cases {
		typ, err := parser.ParseType(src)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", src, err)
		}
		if got := printer.Type(typ); got != want {
			t.Fatalf("Type(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestPrintSplitFragments(t *testing.T) {
	in := mustParseInput(t, "struct S<'a, T: Clone = u8> where T: Debug { x: &'a T }")
	ig, tg, wc := ast.SplitForImpl(in.Generics)

	if got := printer.ImplGenerics(ig); got != "<'a, T: Clone>" {
		t.Fatalf("ImplGenerics = %q", got)
	}
	if got := printer.TypeGenerics(tg); got != "<'a, T>" {
		t.Fatalf("TypeGenerics = %q", got)
	}
	if got := printer.WhereClause(wc); got != "where T: Debug" {
		t.Fatalf("WhereClause = %q", got)
	}
	if got := printer.Generics(in.Generics); got != "<'a, T: Clone = u8>" {
		t.Fatalf("Generics = %q", got)
	}
}

func TestPrintSplitFragmentsWithoutParams(t *testing.T) {
	in := mustParseInput(t, "struct S;")
	ig, tg, wc := ast.SplitForImpl(in.Generics)

	for name, got := range map[string]string{
		"ImplGenerics": printer.ImplGenerics(ig),
		"TypeGenerics": printer.TypeGenerics(tg),
		"WhereClause":  printer.WhereClause(wc),
	} {
		if got != "" {
			t.Fatalf("%s = %q, want empty", name, got)
		}
	}
}

func TestPrintDocAttributes(t *testing.T) {
	cases := []struct {
		attr *ast.Attribute
		want string
	}{
		{ast.NewDocAttribute(ast.AttrOuter, " Line.", true), "/// Line."},
		{ast.NewDocAttribute(ast.AttrInner, " Crate.", true), "//! Crate."},
		{ast.NewDocAttribute(ast.AttrOuter, "a\nb", true), "/**a\nb*/"},
		{ast.NewDocAttribute(ast.AttrOuter, "x */ y\nz", true), `#[doc = "x */ y\nz"]`},
		{ast.NewDocAttribute(ast.AttrOuter, "/ slashes", true), `#[doc = "/ slashes"]`},
		{ast.NewDocAttribute(ast.AttrInner, "/ slashes", true), "//!/ slashes"},
		{ast.NewDocAttribute(ast.AttrOuter, " plain", false), `#[doc = " plain"]`},
	}
	for _, tc := range cases {
		if got := printer.Attribute(tc.attr); got != tc.want {
			t.Fatalf("Attribute(%+v) = %q, want %q", tc.attr, got, tc.want)
		}
	}
}

func TestPrintDocCommentsRoundTrip(t *testing.T) {
	src := "/// one\n///two\n/** three\n four */\n#[doc = \"five\"]\nstruct S;"
	in := mustParseInput(t, src)
	out := printer.MacroInput(in)
	again := mustParseInput(t, out)
	if !ast.Equal(in, again) {
		t.Fatalf("doc round trip changed the tree:\n%s\noutput:\n%s", ast.Diff(in, again), out)
	}
	if !strings.HasPrefix(out, "/// one\n///two\n") {
		t.Fatalf("expected line doc comments to be kept, got:\n%s", out)
	}
}

func TestPrintAttributeTokens(t *testing.T) {
	attrs, err := parser.ParseAttributes(`#![no_std] #[cfg(all(unix, not(feature = "x")))]`)
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	want := []string{"#![no_std]", `#[cfg(all(unix, not(feature = "x")))]`}
	for i, a := range attrs {
		if got := printer.Attribute(a); got != want[i] {
			t.Fatalf("attribute %d = %q, want %q", i, got, want[i])
		}
	}
}

type foreignNode struct{ ast.Pos }

func TestFprintRejectsUnknownNodes(t *testing.T) {
	var b strings.Builder
	err := printer.Fprint(&b, foreignNode{})
	if err == nil || !strings.Contains(err.Error(), "unsupported node type") {
		t.Fatalf("expected unsupported node error, got %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", b.String())
	}
}

func TestFprintWritesNode(t *testing.T) {
	in := mustParseInput(t, "struct S(u8);")
	var b strings.Builder
	if err := printer.Fprint(&b, in); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	if b.String() != "struct S(u8);" {
		t.Fatalf("unexpected output %q", b.String())
	}
}

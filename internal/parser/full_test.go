//go:build !minimal

package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
	"github.com/malphas-lang/synx/internal/parser"
)

func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	e, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", src, err)
	}
	return e
}

// shape renders the operator structure of an expression with explicit
// grouping, e.g. `(a + (b * c))`.
func shape(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.InfixExpr:
		return fmt.Sprintf("(%s %s %s)", shape(e.Left), e.Op, shape(e.Right))
	case *ast.AssignExpr:
		return fmt.Sprintf("(%s %s %s)", shape(e.Target), e.Op, shape(e.Value))
	case *ast.PrefixExpr:
		return fmt.Sprintf("(%s%s)", e.Op, shape(e.Operand))
	case *ast.RefExpr:
		if e.Mutable {
			return fmt.Sprintf("(&mut %s)", shape(e.Expr))
		}
		return fmt.Sprintf("(&%s)", shape(e.Expr))
	case *ast.CastExpr:
		return fmt.Sprintf("(%s as _)", shape(e.Expr))
	case *ast.RangeExpr:
		op := ".."
		if e.Inclusive {
			op = "..="
		}
		var lo, hi string
		if e.Start != nil {
			lo = shape(e.Start)
		}
		if e.End != nil {
			hi = shape(e.End)
		}
		return "(" + lo + op + hi + ")"
	case *ast.MethodCallExpr:
		return fmt.Sprintf("%s.%s()", shape(e.Receiver), e.Method.Name)
	case *ast.FieldExpr:
		return fmt.Sprintf("%s.%s", shape(e.Target), e.Field.Name)
	case *ast.TupleIndexExpr:
		return fmt.Sprintf("%s.%d", shape(e.Target), e.Index)
	case *ast.CallExpr:
		return shape(e.Callee) + "()"
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", shape(e.Target), shape(e.Index))
	case *ast.TryExpr:
		return shape(e.Expr) + "?"
	case *ast.ParenExpr:
		return "[" + shape(e.Expr) + "]"
	case *ast.PathExpr:
		return e.Path.Names()
	case *ast.LitExpr:
		return e.Lit.Raw
	}
	return fmt.Sprintf("<%T>", e)
}

func TestParseExprPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a - b - c", "((a - b) - c)"},
		{"a = b = c", "(a = (b = c))"},
		{"a += b | c", "(a += (b | c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a == b && c < d", "((a == b) && (c < d))"},
		{"a << b + c", "(a << (b + c))"},
		{"a & b ^ c | d", "(((a & b) ^ c) | d)"},
		{"-x.f()", "(-x.f())"},
		{"!a?", "(!a?)"},
		{"*a[0]", "(*a[0])"},
		{"&mut x.y", "(&mut x.y)"},
		{"&&x", "(&(&x))"},
		{"x as u8 + 1", "((x as _) + 1)"},
		{"-x as u8", "((-x) as _)"},
		{"a..b", "(a..b)"},
		{"..", "(..)"},
		{"..=b", "(..=b)"},
		{"a..", "(a..)"},
		{"a + 1..b * 2", "((a + 1)..(b * 2))"},
		{"x = a..b", "(x = (a..b))"},
		{"(a + b) * c", "([(a + b)] * c)"},
		{"x.0.1", "x.0.1"},
		{"t.0.y", "t.0.y"},
		{"f(a)(b)[c]?", "f()()[c]?"},
		{"x.collect::<Vec<_>>()", "x.collect()"},
		{"std::mem::swap(a, b)", "std::mem::swap()"},
	}

	for _, tt := range tests {
		if got := shape(mustParseExpr(t, tt.src)); got != tt.want {
			t.Fatalf("ParseExpr(%q): expected %s, got %s", tt.src, tt.want, got)
		}
	}
}

func TestParseExprTupleIndexSplitsFloat(t *testing.T) {
	e := mustParseExpr(t, "x.0.1")
	outer, ok := e.(*ast.TupleIndexExpr)
	if !ok || outer.Index != 1 {
		t.Fatalf("expected outer tuple index 1, got %#v", e)
	}
	inner, ok := outer.Target.(*ast.TupleIndexExpr)
	if !ok || inner.Index != 0 {
		t.Fatalf("expected inner tuple index 0, got %#v", outer.Target)
	}
}

func TestParseExprErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"a < b < c", "comparison operators cannot be chained"},
		{"a == b != c", "comparison operators cannot be chained"},
		{"a..=", "inclusive range requires an end, found end of input"},
		{"a.. ..b", "range operators cannot be chained"},
		{"x.", "expected field name or tuple index after `.`, found end of input"},
		{"x.1e3", "invalid tuple index `1e3`"},
		{"+", "expected expression, found `+`"},
	}

	for _, tt := range tests {
		_, err := parser.ParseExpr(tt.src)
		pe := parseErr(t, err)
		if pe.Message != tt.message {
			t.Fatalf("ParseExpr(%q): expected %q, got %q", tt.src, tt.message, pe.Message)
		}
	}
}

func TestParseExprAtoms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"()", "*ast.TupleExpr"},
		{"(a,)", "*ast.TupleExpr"},
		{"(a, b)", "*ast.TupleExpr"},
		{"(a)", "*ast.ParenExpr"},
		{"[]", "*ast.ArrayExpr"},
		{"[1, 2, 3,]", "*ast.ArrayExpr"},
		{"[0u8; 16]", "*ast.RepeatExpr"},
		{"{ a }", "*ast.BlockExpr"},
		{"unsafe { a }", "*ast.BlockExpr"},
		{"if a { b } else if c { d } else { e }", "*ast.IfExpr"},
		{"if let Some(x) | None = y { x }", "*ast.IfLetExpr"},
		{"while a < b { a += 1; }", "*ast.WhileExpr"},
		{"while let Some(x) = it.next() {}", "*ast.WhileLetExpr"},
		{"'a: loop { break 'a 1; }", "*ast.LoopExpr"},
		{"for (k, v) in map.iter() {}", "*ast.ForExpr"},
		{"match x { _ => {} }", "*ast.MatchExpr"},
		{"|| 1", "*ast.ClosureExpr"},
		{"move |a, b: u8| a + b", "*ast.ClosureExpr"},
		{"|x| -> u8 { x }", "*ast.ClosureExpr"},
		{"return", "*ast.ReturnExpr"},
		{"return a + b", "*ast.ReturnExpr"},
		{"break 'outer", "*ast.BreakExpr"},
		{"continue", "*ast.ContinueExpr"},
		{"vec![1, 2]", "*ast.MacroExpr"},
		{"Point { x, y: 2, ..Default::default() }", "*ast.StructExpr"},
		{"<Vec<u8> as Default>::default", "*ast.PathExpr"},
		{"Vec::<u8>::new", "*ast.PathExpr"},
		{`b"bytes"`, "*ast.LitExpr"},
	}

	for _, tt := range tests {
		if got := fmt.Sprintf("%T", mustParseExpr(t, tt.src)); got != tt.want {
			t.Fatalf("ParseExpr(%q): expected %s, got %s", tt.src, tt.want, got)
		}
	}
}

func TestParseStructLiteralFields(t *testing.T) {
	se := mustParseExpr(t, "Point { x, y: 2, ..base }").(*ast.StructExpr)

	if len(se.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(se.Fields))
	}
	if !se.Fields[0].Shorthand || se.Fields[1].Shorthand {
		t.Fatalf("expected only x to be shorthand")
	}
	if shape(se.Fields[0].Value) != "x" {
		t.Fatalf("expected shorthand value x, got %s", shape(se.Fields[0].Value))
	}
	if se.Base == nil || shape(se.Base) != "base" {
		t.Fatalf("expected base expression, got %#v", se.Base)
	}
}

func TestParseConditionRejectsStructLiteral(t *testing.T) {
	e := mustParseExpr(t, "if x == y { 1 } else { 2 }")
	ie := e.(*ast.IfExpr)
	if got := shape(ie.Cond); got != "(x == y)" {
		t.Fatalf("expected condition (x == y), got %s", got)
	}

	e = mustParseExpr(t, "match s { S { a } => a }")
	m := e.(*ast.MatchExpr)
	if _, ok := m.Arms[0].Pats[0].(*ast.StructPat); !ok {
		t.Fatalf("expected struct pattern, got %T", m.Arms[0].Pats[0])
	}

	e = mustParseExpr(t, "if (S { a: 1 }).a { }")
	if _, ok := e.(*ast.IfExpr).Cond.(*ast.FieldExpr); !ok {
		t.Fatalf("expected field access condition, got %T", e.(*ast.IfExpr).Cond)
	}
}

func TestParseMatchArms(t *testing.T) {
	m := mustParseExpr(t, `match x {
    1 | 2 if y => a,
    Some(v) => { v }
    ref r @ _ => r.len(),
    _ => match r { _ => 0 },
}`).(*ast.MatchExpr)

	if len(m.Arms) != 4 {
		t.Fatalf("expected 4 arms, got %d", len(m.Arms))
	}
	if len(m.Arms[0].Pats) != 2 || m.Arms[0].Guard == nil {
		t.Fatalf("expected two alternatives and a guard in the first arm")
	}
	if _, ok := m.Arms[1].Body.(*ast.BlockExpr); !ok {
		t.Fatalf("expected block body, got %T", m.Arms[1].Body)
	}

	_, err := parser.ParseExpr("match x { 1 => a 2 => b }")
	pe := parseErr(t, err)
	if !strings.HasPrefix(pe.Message, "expected `,` after match arm") {
		t.Fatalf("unexpected message %q", pe.Message)
	}
}

func TestParseBlockStatements(t *testing.T) {
	b, err := parser.ParseBlock(`{
    #[allow(unused)]
    let mut x: u32 = 1;;
    let (a, b);
    fn local() {}
    if x > 0 { x -= 1 } else { x = 0 }
    match x { _ => {} }.hash();
    loop { break }
    x.f();
    x
}`)
	if err != nil {
		t.Fatalf("ParseBlock: %v", err)
	}

	want := []string{"*ast.LetStmt", "*ast.LetStmt", "*ast.DeclStmt", "*ast.ExprStmt", "*ast.ExprStmt", "*ast.ExprStmt", "*ast.ExprStmt", "*ast.ExprStmt"}
	if len(b.Stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(b.Stmts))
	}
	for i, s := range b.Stmts {
		if got := fmt.Sprintf("%T", s); got != want[i] {
			t.Fatalf("statement %d: expected %s, got %s", i, want[i], got)
		}
	}

	let := b.Stmts[0].(*ast.LetStmt)
	if len(let.Attrs) != 1 || let.Type == nil || let.Init == nil {
		t.Fatalf("unexpected let statement %+v", let)
	}
	if ip, ok := let.Pat.(*ast.IdentPat); !ok || !ip.Mutable {
		t.Fatalf("expected mutable binding, got %#v", let.Pat)
	}

	ifStmt := b.Stmts[3].(*ast.ExprStmt)
	if ifStmt.Semi {
		t.Fatalf("expected block-like if statement without semicolon")
	}
	hash := b.Stmts[4].(*ast.ExprStmt)
	if _, ok := hash.Expr.(*ast.MethodCallExpr); !ok || !hash.Semi {
		t.Fatalf("expected method call on match with semicolon, got %T", hash.Expr)
	}

	if tail := b.Tail(); tail == nil || shape(tail) != "x" {
		t.Fatalf("expected tail expression x, got %#v", tail)
	}
}

func TestParseBlockRequiresSemicolons(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"{ a b }", "expected `;`, found `b`"},
		{"{ let x = 1 }", "expected `;`, found end of input"},
	}

	for _, tt := range tests {
		_, err := parser.ParseBlock(tt.src)
		pe := parseErr(t, err)
		if pe.Message != tt.message {
			t.Fatalf("ParseBlock(%q): expected %q, got %q", tt.src, tt.message, pe.Message)
		}
	}
}

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"_", "*ast.WildPat"},
		{"..", "*ast.RestPat"},
		{"x", "*ast.IdentPat"},
		{"None", "*ast.IdentPat"},
		{"ref mut x @ Some(_)", "*ast.IdentPat"},
		{"&mut (a, b)", "*ast.RefPat"},
		{"&&x", "*ast.RefPat"},
		{"(a,)", "*ast.TuplePat"},
		{"(a)", "*ast.TuplePat"},
		{"[first, .., last]", "*ast.SlicePat"},
		{"1", "*ast.LitPat"},
		{"-1", "*ast.LitPat"},
		{`"str"`, "*ast.LitPat"},
		{"1..=5", "*ast.RangePat"},
		{"'a'...'z'", "*ast.RangePat"},
		{"i32::MIN..=0", "*ast.RangePat"},
		{"Some(x)", "*ast.TupleStructPat"},
		{"Point { x, y: 0, ref mut z, .. }", "*ast.StructPat"},
		{"std::cmp::Ordering::Less", "*ast.PathPat"},
		{"Self", "*ast.PathPat"},
		{"<T as Trait>::CONST", "*ast.PathPat"},
	}

	for _, tt := range tests {
		pat, err := parser.ParsePat(tt.src)
		if err != nil {
			t.Fatalf("ParsePat(%q): %v", tt.src, err)
		}
		if got := fmt.Sprintf("%T", pat); got != tt.want {
			t.Fatalf("ParsePat(%q): expected %s, got %s", tt.src, tt.want, got)
		}
	}

	sp, _ := parser.ParsePat("Point { x, y: 0, .. }")
	st := sp.(*ast.StructPat)
	if !st.Rest || len(st.Fields) != 2 || !st.Fields[0].Shorthand || st.Fields[1].Shorthand {
		t.Fatalf("unexpected struct pattern %+v", st)
	}

	rp, _ := parser.ParsePat("'a'...'z'")
	if !rp.(*ast.RangePat).Dots {
		t.Fatalf("expected `...` range pattern")
	}
}

const fileSource = `//! Crate docs.
#![allow(unused)]

extern crate alloc as a;
use std::{collections::HashMap, io::{self, Read as _}, fmt::*};

macro_rules! square { ($x:expr) => { $x * $x }; }

pub const MAX: usize = 1 << 4;
static mut COUNT: u32 = 0;
type Map<V> = HashMap<String, V>;

pub(crate) mod inner {
    #![allow(dead_code)]
    fn helper() {}
}

mod outer;

pub trait Shape: Clone + 'static {
    const SIDES: u32;
    type Output: Default;
    fn area(&self) -> f64;
    fn name(&self) -> &str { "shape" }
}

impl<T> Shape for Wrapper<T> where T: Clone {
    const SIDES: u32 = 4;
    type Output = ();
    fn area(&self) -> f64 { 0.0 }
}

impl !Send for Raw {}

unsafe extern "C" fn raw(p: *const u8, ...) {}

thread_local!(static DEPTH: u32 = 0);

fn main() {
    let mut v = vec![1, 2, 3];
    for (i, x) in v.iter().enumerate() {
        if *x > 1 { continue; }
    }
    'outer: loop { break 'outer; }
    println!("{}", square!(2));
}
`

func TestParseFile(t *testing.T) {
	f, err := parser.ParseFile(fileSource, parser.WithFilename("lib.rs"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if len(f.Attrs) != 2 || f.Attrs[0].Style != ast.AttrInner || !f.Attrs[0].SugaredDoc {
		t.Fatalf("expected inner doc and allow attributes, got %+v", f.Attrs)
	}

	want := []string{
		"*ast.ExternCrateDecl",
		"*ast.UseDecl",
		"*ast.MacroDecl",
		"*ast.ConstDecl",
		"*ast.StaticDecl",
		"*ast.TypeAliasDecl",
		"*ast.ModDecl",
		"*ast.ModDecl",
		"*ast.TraitDecl",
		"*ast.ImplDecl",
		"*ast.ImplDecl",
		"*ast.FnDecl",
		"*ast.MacroDecl",
		"*ast.FnDecl",
	}
	if len(f.Decls) != len(want) {
		t.Fatalf("expected %d declarations, got %d", len(want), len(f.Decls))
	}
	for i, d := range f.Decls {
		if got := fmt.Sprintf("%T", d); got != want[i] {
			t.Fatalf("declaration %d: expected %s, got %s", i, want[i], got)
		}
	}

	mr := f.Decls[2].(*ast.MacroDecl)
	if mr.Ident == nil || mr.Ident.Name != "square" || mr.Mac.Delim != lexer.DelimBrace {
		t.Fatalf("unexpected macro_rules declaration %+v", mr)
	}

	inner := f.Decls[6].(*ast.ModDecl)
	if !inner.Inline || len(inner.Attrs) != 1 || inner.Attrs[0].Style != ast.AttrInner || len(inner.Decls) != 1 {
		t.Fatalf("unexpected inline module %+v", inner)
	}
	if outer := f.Decls[7].(*ast.ModDecl); outer.Inline {
		t.Fatalf("expected out-of-line module")
	}

	tr := f.Decls[8].(*ast.TraitDecl)
	if len(tr.Supertraits) != 2 || len(tr.Items) != 4 {
		t.Fatalf("expected 2 supertraits and 4 items, got %d and %d", len(tr.Supertraits), len(tr.Items))
	}
	if fn := tr.Items[3].(*ast.TraitFn); fn.Default == nil {
		t.Fatalf("expected default body on name()")
	}

	impl := f.Decls[9].(*ast.ImplDecl)
	if impl.Trait == nil || !impl.Trait.IsIdent("Shape") || impl.Generics.Where == nil || len(impl.Items) != 3 {
		t.Fatalf("unexpected trait impl %+v", impl)
	}
	if neg := f.Decls[10].(*ast.ImplDecl); !neg.Negative {
		t.Fatalf("expected negative impl")
	}

	raw := f.Decls[11].(*ast.FnDecl)
	if !raw.Sig.Unsafe || raw.Sig.Abi == nil || !raw.Sig.Variadic || len(raw.Sig.Inputs) != 1 {
		t.Fatalf("unexpected signature %+v", raw.Sig)
	}

	main := f.Decls[13].(*ast.FnDecl)
	if len(main.Body.Stmts) != 4 {
		t.Fatalf("expected 4 statements in main, got %d", len(main.Body.Stmts))
	}
}

func TestParseUseTrees(t *testing.T) {
	d, err := parser.ParseDecl("pub use ::std::{io::{self, Write}, fmt as f, sync::*};")
	if err != nil {
		t.Fatalf("ParseDecl: %v", err)
	}
	use := d.(*ast.UseDecl)
	if !use.Global || !use.Vis.IsPublic() {
		t.Fatalf("expected global pub use, got %+v", use)
	}
	path := use.Tree.(*ast.UsePath)
	group := path.Tree.(*ast.UseGroup)
	if len(group.Items) != 3 {
		t.Fatalf("expected 3 group items, got %d", len(group.Items))
	}
	if _, ok := group.Items[1].(*ast.UseRename); !ok {
		t.Fatalf("expected rename, got %T", group.Items[1])
	}
	if _, ok := group.Items[2].(*ast.UsePath).Tree.(*ast.UseGlob); !ok {
		t.Fatalf("expected glob import")
	}
}

func TestParseSelfArguments(t *testing.T) {
	tests := []struct {
		src     string
		ref     bool
		mutable bool
		typed   bool
	}{
		{"fn f(self) {}", false, false, false},
		{"fn f(mut self) {}", false, true, false},
		{"fn f(&self) {}", true, false, false},
		{"fn f(&'a mut self, x: u8) {}", true, true, false},
		{"fn f(self: Box<Self>) {}", false, false, true},
	}

	for _, tt := range tests {
		d, err := parser.ParseDecl(tt.src)
		if err != nil {
			t.Fatalf("ParseDecl(%q): %v", tt.src, err)
		}
		sa, ok := d.(*ast.FnDecl).Sig.Inputs[0].(*ast.SelfArg)
		if !ok {
			t.Fatalf("%q: expected self argument", tt.src)
		}
		if sa.Ref != tt.ref || sa.Mutable != tt.mutable || (sa.Type != nil) != tt.typed {
			t.Fatalf("%q: unexpected self argument %+v", tt.src, sa)
		}
	}
}

func TestParseDeclErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"pub impl S {}", "visibility is not permitted on impl blocks"},
		{"impl !S {}", "negative impls require a trait"},
		{"impl &S for T {}", "expected a trait path before `for`"},
		{"fn f<T, 'a>() {}", "lifetime parameters must be declared prior to type parameters"},
		{"let x = 1;", "expected item, found `let`"},
	}

	for _, tt := range tests {
		_, err := parser.ParseDecl(tt.src)
		pe := parseErr(t, err)
		if pe.Message != tt.message {
			t.Fatalf("ParseDecl(%q): expected %q, got %q", tt.src, tt.message, pe.Message)
		}
	}
}

func TestParseMacroInputFromFileDecl(t *testing.T) {
	d, err := parser.ParseDecl("#[derive(Clone)] struct S<T> { a: T }")
	if err != nil {
		t.Fatalf("ParseDecl: %v", err)
	}
	fromDecl, ok := ast.MacroInputFromDecl(d)
	if !ok {
		t.Fatalf("expected struct declaration to convert")
	}
	direct := mustParseInput(t, "#[derive(Clone)] struct S<T> { a: T }")
	if !ast.Equal(fromDecl, direct) {
		t.Fatalf("inputs differ:\n%s", ast.Diff(direct, fromDecl))
	}
}

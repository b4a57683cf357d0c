package ast

import (
	"testing"

	"github.com/malphas-lang/synx/internal/lexer"
)

func TestNewIdent(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"foo", true},
		{"_bar9", true},
		{"naïve", true},
		{"self", true},
		{"Self", true},
		{"super", true},
		{"crate", true},
		{"r#type", true},
		{"r#match", true},
		{"", false},
		{"_", false},
		{"9lives", false},
		{"has space", false},
		{"fn", false},
		{"struct", false},
		{"r#self", false},
		{"r#", false},
	}

	for _, tt := range tests {
		id, err := NewIdent(tt.name)
		if tt.valid && err != nil {
			t.Fatalf("NewIdent(%q) returned error %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Fatalf("NewIdent(%q) succeeded, want error", tt.name)
		}
		if tt.valid && id.Name != tt.name {
			t.Fatalf("NewIdent(%q).Name = %q", tt.name, id.Name)
		}
	}
}

func TestMustIdentPanicsOnKeyword(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustIdent to panic")
		}
	}()
	MustIdent("while")
}

func TestIdentUnraw(t *testing.T) {
	if got := MustIdent("r#type").Unraw(); got != "type" {
		t.Fatalf("Unraw = %q", got)
	}
}

func TestNewLifetime(t *testing.T) {
	for _, name := range []string{"'a", "'static", "'_", "'long_name"} {
		if _, err := NewLifetime(name); err != nil {
			t.Fatalf("NewLifetime(%q): %v", name, err)
		}
	}
	for _, name := range []string{"a", "'", "'fn", "'1"} {
		if _, err := NewLifetime(name); err == nil {
			t.Fatalf("NewLifetime(%q) succeeded, want error", name)
		}
	}
}

func TestLitSuffix(t *testing.T) {
	tests := []struct {
		lit  *Lit
		want string
	}{
		{&Lit{Kind: LitInt, Raw: "1u8"}, "u8"},
		{&Lit{Kind: LitInt, Raw: "0xffu32"}, "u32"},
		{&Lit{Kind: LitInt, Raw: "0xff"}, ""},
		{&Lit{Kind: LitInt, Raw: "1_000_i64"}, "i64"},
		{&Lit{Kind: LitFloat, Raw: "2.5f32"}, "f32"},
		{&Lit{Kind: LitFloat, Raw: "1e-9"}, ""},
		{&Lit{Kind: LitFloat, Raw: "1e9f64"}, "f64"},
		{NewStrLit("u8"), ""},
	}
	for _, tt := range tests {
		if got := tt.lit.Suffix(); got != tt.want {
			t.Fatalf("Suffix(%q) = %q, want %q", tt.lit.Raw, got, tt.want)
		}
	}
}

func TestLitFromToken(t *testing.T) {
	lit, ok := LitFromToken(lexer.Token{Type: lexer.RAW_STRING, Raw: `r"x"`, Value: "x"})
	if !ok || lit.Kind != LitStr || lit.Value != "x" {
		t.Fatalf("unexpected literal %+v", lit)
	}
	if _, ok := LitFromToken(lexer.Token{Type: lexer.IDENT, Raw: "x"}); ok {
		t.Fatalf("identifier converted to literal")
	}
}

func TestPathHelpers(t *testing.T) {
	p := NewPath("std", "fmt", "Debug")
	if got := p.Names(); got != "std::fmt::Debug" {
		t.Fatalf("Names = %q", got)
	}
	if p.IsIdent("Debug") {
		t.Fatalf("multi-segment path reported as ident")
	}
	if !NewPath("derive").IsIdent("derive") {
		t.Fatalf("single segment path not reported as ident")
	}
	global := &Path{Global: true, Segments: NewPath("x").Segments}
	if global.Ident() != nil {
		t.Fatalf("global path reported as ident")
	}
}

func TestDeriveAttributeRoundTrip(t *testing.T) {
	attr := NewDeriveAttribute([]string{"Debug", "serde::Serialize", "::heapsize::HeapSize"})

	names, ok := attr.DeriveList()
	if !ok {
		t.Fatalf("DeriveList rejected a derive attribute")
	}
	want := []string{"Debug", "serde::Serialize", "::heapsize::HeapSize"}
	if !Equal(names, want) {
		t.Fatalf("DeriveList mismatch: %s", Diff(want, names))
	}

	doc := NewDocAttribute(AttrOuter, " docs", true)
	if _, ok := doc.DeriveList(); ok {
		t.Fatalf("doc attribute reported as derive")
	}
	if v, ok := doc.DocValue(); !ok || v != " docs" {
		t.Fatalf("DocValue = %q, %v", v, ok)
	}

	all := DeriveNames([]*Attribute{doc, NewDeriveAttribute([]string{"A"}), NewDeriveAttribute([]string{"B", "C"})})
	if !Equal(all, []string{"A", "B", "C"}) {
		t.Fatalf("DeriveNames = %v", all)
	}
}

func TestSplitForImpl(t *testing.T) {
	tParam := &TypeParam{
		Ident:   MustIdent("T"),
		Bounds:  []TypeParamBound{NewTraitBound(NewPath("Clone"))},
		Default: NewPathType(NewPath("String")),
	}
	where := &WhereClause{}
	g := &Generics{
		Lifetimes:  []*LifetimeParam{{Lifetime: &Lifetime{Name: "'a"}}},
		TypeParams: []*TypeParam{tParam},
		Where:      where,
	}

	impl, ty, wc := SplitForImpl(g)
	if wc != where {
		t.Fatalf("where clause not passed through")
	}
	if impl.Params.TypeParams[0].Default != nil {
		t.Fatalf("impl generics kept a default")
	}
	if len(impl.Params.TypeParams[0].Bounds) != 1 {
		t.Fatalf("impl generics dropped bounds")
	}
	if tParam.Default == nil {
		t.Fatalf("SplitForImpl mutated the input generics")
	}

	args := ty.Args()
	if len(args.Args) != 2 {
		t.Fatalf("expected 2 type generic args, got %d", len(args.Args))
	}
	if _, ok := args.Args[0].(*LifetimeArg); !ok {
		t.Fatalf("expected lifetime argument first, got %T", args.Args[0])
	}

	self := ty.SelfType(MustIdent("Foo"))
	if self.Path.Segments[0].Args == nil {
		t.Fatalf("SelfType dropped generic arguments")
	}

	emptyImpl, emptyTy, emptyWhere := SplitForImpl(&Generics{})
	if !emptyImpl.Params.IsEmpty() || emptyTy.Args() != nil || emptyWhere != nil {
		t.Fatalf("empty generics should split into empty fragments")
	}
}

func TestEqualIgnoresSpans(t *testing.T) {
	a := &PathType{Path: NewPath("Vec")}
	b := &PathType{Pos: Pos{lexer.Span{Line: 3, Column: 4, Start: 10, End: 13}}, Path: NewPath("Vec")}
	b.Path.Segments[0].Ident.SetSpan(lexer.Span{Line: 3, Column: 4})
	if !Equal(a, b) {
		t.Fatalf("spans should not affect equality: %s", Diff(a, b))
	}
	c := &PathType{Path: NewPath("Box")}
	if Equal(a, c) {
		t.Fatalf("different paths compared equal")
	}
	if Diff(a, c) == "" {
		t.Fatalf("expected a diff for different paths")
	}
}

func TestBinaryPrecedenceOrdering(t *testing.T) {
	order := []lexer.TokenType{
		lexer.ASSIGN, lexer.DOT_DOT, lexer.OR, lexer.AND, lexer.EQ, lexer.PIPE,
		lexer.CARET, lexer.AMPERSAND, lexer.SHL, lexer.PLUS, lexer.ASTERISK, lexer.AS,
	}
	prev := PrecLowest
	for _, op := range order {
		p, ok := BinaryPrecedence(op)
		if !ok {
			t.Fatalf("no precedence for %q", op)
		}
		if p <= prev {
			t.Fatalf("precedence of %q (%d) not above previous (%d)", op, p, prev)
		}
		prev = p
	}
	if !IsAssignOp(lexer.SHR_EQ) || IsAssignOp(lexer.EQ) {
		t.Fatalf("assignment classification wrong")
	}
	if !IsCompareOp(lexer.LE) || !IsNonAssoc(PrecCompare) || !IsRightAssoc(PrecAssign) {
		t.Fatalf("comparison classification wrong")
	}
}

func TestMacroInputHelpers(t *testing.T) {
	in := &MacroInput{
		Attrs: []*Attribute{NewDeriveAttribute([]string{"Builder"})},
		Name:  MustIdent("E"),
		Body: &EnumBody{Variants: []*Variant{
			{Name: MustIdent("A"), Style: StructUnit},
			{Name: MustIdent("B"), Style: StructTuple, Fields: []*Field{{Type: NewPathType(NewPath("u8"))}}},
		}},
	}
	if !in.IsEnum() || in.IsStruct() || in.Kind() != "enum" {
		t.Fatalf("enum classification wrong")
	}
	if in.FieldCount() != 1 {
		t.Fatalf("FieldCount = %d", in.FieldCount())
	}
	if !Equal(in.DeriveNames(), []string{"Builder"}) {
		t.Fatalf("DeriveNames = %v", in.DeriveNames())
	}
}

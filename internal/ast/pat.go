//go:build !minimal

package ast

// Pat represents a pattern.
type Pat interface {
	Node
	patNode()
}

// WildPat is `_`.
type WildPat struct {
	Pos
}

// IdentPat binds a name: `ref mut name @ sub`.
type IdentPat struct {
	Pos
	ByRef   bool
	Mutable bool
	Name    *Ident
	Sub     Pat
}

// LitPat matches a literal or a negated numeric literal.
type LitPat struct {
	Pos
	Expr Expr
}

// RangePat is `lo..=hi` or the older `lo...hi`.
type RangePat struct {
	Pos
	Lo   Expr
	Hi   Expr
	Dots bool // `...` spelling
}

// PathPat matches a unit struct, unit variant or constant.
type PathPat struct {
	Pos
	QSelf *QSelf
	Path  *Path
}

// TupleStructPat is `Path(a, b, ..)`.
type TupleStructPat struct {
	Pos
	Path  *Path
	Elems []Pat
}

// StructPat is `Path { a, b: pat, .. }`.
type StructPat struct {
	Pos
	Path   *Path
	Fields []*FieldPat
	Rest   bool
}

// FieldPat is one field of a struct pattern. Shorthand marks `Point { x }`
// where Pat is the IdentPat binding the field name.
type FieldPat struct {
	Pos
	Attrs     []*Attribute
	Name      *Ident
	Pat       Pat
	Shorthand bool
}

// TuplePat is `(a, b, ..)`.
type TuplePat struct {
	Pos
	Elems []Pat
}

// SlicePat is `[a, b, ..]`.
type SlicePat struct {
	Pos
	Elems []Pat
}

// RefPat is `&pat` or `&mut pat`.
type RefPat struct {
	Pos
	Mutable bool
	Pat     Pat
}

// RestPat is `..` inside tuple, tuple struct and slice patterns.
type RestPat struct {
	Pos
}

func (*WildPat) patNode()        {}
func (*IdentPat) patNode()       {}
func (*LitPat) patNode()         {}
func (*RangePat) patNode()       {}
func (*PathPat) patNode()        {}
func (*TupleStructPat) patNode() {}
func (*StructPat) patNode()      {}
func (*TuplePat) patNode()       {}
func (*SlicePat) patNode()       {}
func (*RefPat) patNode()         {}
func (*RestPat) patNode()        {}

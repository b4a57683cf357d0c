package ast

// TypeExpr represents a type expression.
type TypeExpr interface {
	Node
	typeNode()
}

// PathType is a possibly qualified path used as a type.
type PathType struct {
	Pos
	QSelf *QSelf
	Path  *Path
}

// ReferenceType represents a reference type (&'a mut T).
type ReferenceType struct {
	Pos
	Lifetime *Lifetime
	Mutable  bool
	Elem     TypeExpr
}

// PointerType represents a raw pointer type (*const T or *mut T).
type PointerType struct {
	Pos
	Mutable bool
	Elem    TypeExpr
}

// SliceType represents [T].
type SliceType struct {
	Pos
	Elem TypeExpr
}

// ArrayType represents [T; N].
type ArrayType struct {
	Pos
	Elem TypeExpr
	Len  Expr
}

// TupleType represents (A, B). The empty tuple is the unit type.
type TupleType struct {
	Pos
	Elems []TypeExpr
}

// FnType is a bare function pointer type such as `for<'a> unsafe extern "C" fn(&'a u8) -> u8`.
type FnType struct {
	Pos
	Lifetimes []*LifetimeParam
	Unsafe    bool
	Abi       *Abi
	Inputs    []*FnTypeArg
	Variadic  bool
	Output    TypeExpr
}

// FnTypeArg is one input of a bare function type. Name is nil when the input
// is unnamed; Wild marks a `_` name.
type FnTypeArg struct {
	Pos
	Name *Ident
	Wild bool
	Type TypeExpr
}

// Abi is an `extern` qualifier with an optional ABI string.
type Abi struct {
	Pos
	Name *Lit
}

// NeverType is `!`.
type NeverType struct {
	Pos
}

// InferType is `_`.
type InferType struct {
	Pos
}

// TraitObjectType is `dyn A + B` or a bare bound list when Dyn is false.
type TraitObjectType struct {
	Pos
	Dyn    bool
	Bounds []TypeParamBound
}

// ImplTraitType is `impl A + B`.
type ImplTraitType struct {
	Pos
	Bounds []TypeParamBound
}

// ParenType is a parenthesized type, kept to preserve grouping of bounds.
type ParenType struct {
	Pos
	Elem TypeExpr
}

func (*PathType) typeNode()        {}
func (*ReferenceType) typeNode()   {}
func (*PointerType) typeNode()     {}
func (*SliceType) typeNode()       {}
func (*ArrayType) typeNode()       {}
func (*TupleType) typeNode()       {}
func (*FnType) typeNode()          {}
func (*NeverType) typeNode()       {}
func (*InferType) typeNode()       {}
func (*TraitObjectType) typeNode() {}
func (*ImplTraitType) typeNode()   {}
func (*ParenType) typeNode()       {}

// NewPathType wraps a path as a type.
func NewPathType(path *Path) *PathType {
	return &PathType{Path: path}
}

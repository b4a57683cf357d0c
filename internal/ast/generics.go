package ast

// Generics is a generic parameter list with its where clause. Lifetime
// parameters always precede type parameters.
type Generics struct {
	Pos
	Lifetimes  []*LifetimeParam
	TypeParams []*TypeParam
	Where      *WhereClause
}

// IsEmpty reports whether there are no parameters. The where clause is not considered.
func (g *Generics) IsEmpty() bool {
	return g == nil || (len(g.Lifetimes) == 0 && len(g.TypeParams) == 0)
}

// LifetimeParam is `'a: 'b + 'c`.
type LifetimeParam struct {
	Pos
	Attrs    []*Attribute
	Lifetime *Lifetime
	Bounds   []*Lifetime
}

// TypeParam is `T: Bound = Default`.
type TypeParam struct {
	Pos
	Attrs   []*Attribute
	Ident   *Ident
	Bounds  []TypeParamBound
	Default TypeExpr
}

// TypeParamBound is a trait or lifetime bound.
type TypeParamBound interface {
	Node
	boundNode()
}

// TraitBound is `?Sized`, `for<'a> Fn(&'a T)` or a parenthesized `(Trait)`.
type TraitBound struct {
	Pos
	Paren     bool
	Maybe     bool
	Lifetimes []*LifetimeParam
	Path      *Path
}

// LifetimeBound is a lifetime used as a bound.
type LifetimeBound struct {
	Pos
	Lifetime *Lifetime
}

func (*TraitBound) boundNode()    {}
func (*LifetimeBound) boundNode() {}

// WhereClause is `where` followed by predicates.
type WhereClause struct {
	Pos
	Predicates []WherePredicate
}

// WherePredicate is a single where clause predicate.
type WherePredicate interface {
	Node
	wherePredicate()
}

// BoundPredicate is `for<'a> T: Bound`.
type BoundPredicate struct {
	Pos
	Lifetimes []*LifetimeParam
	Bounded   TypeExpr
	Bounds    []TypeParamBound
}

// LifetimePredicate is `'a: 'b`.
type LifetimePredicate struct {
	Pos
	Lifetime *Lifetime
	Bounds   []*Lifetime
}

func (*BoundPredicate) wherePredicate()    {}
func (*LifetimePredicate) wherePredicate() {}

// NewTraitBound builds a plain trait bound from a path.
func NewTraitBound(path *Path) *TraitBound {
	return &TraitBound{Path: path}
}

package ast

import "strings"

// Path is a possibly global sequence of segments such as ::std::vec::Vec<T>.
type Path struct {
	Pos
	Global   bool
	Segments []*PathSegment
}

// PathSegment is one segment of a path with optional generic arguments.
type PathSegment struct {
	Pos
	Ident *Ident
	Args  PathArgs
}

// NewPath builds a relative path from segment names. It panics on invalid names.
func NewPath(names ...string) *Path {
	p := &Path{}
	for _, name := range names {
		p.Segments = append(p.Segments, &PathSegment{Ident: MustIdent(name)})
	}
	return p
}

// IsIdent reports whether the path is the single bare identifier name.
func (p *Path) IsIdent(name string) bool {
	id := p.Ident()
	return id != nil && id.Name == name
}

// Ident returns the identifier of a single-segment path without arguments.
func (p *Path) Ident() *Ident {
	if p == nil || p.Global || len(p.Segments) != 1 || p.Segments[0].Args != nil {
		return nil
	}
	return p.Segments[0].Ident
}

// Last returns the final segment.
func (p *Path) Last() *PathSegment {
	if len(p.Segments) == 0 {
		return nil
	}
	return p.Segments[len(p.Segments)-1]
}

// Names renders the path without generic arguments, e.g. "std::fmt::Debug".
func (p *Path) Names() string {
	var b strings.Builder
	if p.Global {
		b.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteString("::")
		}
		b.WriteString(seg.Ident.Name)
	}
	return b.String()
}

// PathArgs are the generic arguments of a path segment.
type PathArgs interface {
	Node
	pathArgs()
}

// AngleBracketedArgs is `<'a, T, Item = U>`; Turbofish records a leading `::`.
type AngleBracketedArgs struct {
	Pos
	Turbofish bool
	Args      []GenericArg
}

// ParenthesizedArgs is the `(A, B) -> C` sugar of the Fn traits.
type ParenthesizedArgs struct {
	Pos
	Inputs []TypeExpr
	Output TypeExpr
}

func (*AngleBracketedArgs) pathArgs() {}
func (*ParenthesizedArgs) pathArgs()  {}

// GenericArg is one argument inside angle brackets.
type GenericArg interface {
	Node
	genericArg()
}

type LifetimeArg struct {
	Pos
	Lifetime *Lifetime
}

type TypeArg struct {
	Pos
	Type TypeExpr
}

// BindingArg is an associated type binding such as `Item = u8`.
type BindingArg struct {
	Pos
	Ident *Ident
	Type  TypeExpr
}

// ConstArg is a const generic argument written as a literal or a block.
type ConstArg struct {
	Pos
	Expr Expr
}

func (*LifetimeArg) genericArg() {}
func (*TypeArg) genericArg()     {}
func (*BindingArg) genericArg()  {}
func (*ConstArg) genericArg()    {}

// QSelf is the qualified self of `<T as Trait>::Name`. Position counts how many
// leading segments of the accompanying path belong to the trait; zero means the
// `<T>::Name` form without `as`.
type QSelf struct {
	Pos
	Type     TypeExpr
	Position int
}

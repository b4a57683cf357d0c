package ast

import "github.com/malphas-lang/synx/internal/lexer"

// ImplGenerics is the parameter list for an `impl<...>` header: parameters
// keep their attributes and bounds but drop defaults.
type ImplGenerics struct {
	Params *Generics
}

// TypeGenerics is the argument list naming every parameter in order, for the
// type position of an impl: `Foo<'a, T>`.
type TypeGenerics struct {
	Params *Generics
}

func (ImplGenerics) Span() lexer.Span { return lexer.Span{} }
func (TypeGenerics) Span() lexer.Span { return lexer.Span{} }

// SplitForImpl splits generics into the three fragments needed to write an
// impl block for the declaring type: `impl<IG> Trait for Name<TG> WC`.
// The where clause is returned as is and may be nil.
func SplitForImpl(g *Generics) (ImplGenerics, TypeGenerics, *WhereClause) {
	if g == nil {
		return ImplGenerics{}, TypeGenerics{}, nil
	}
	impl := &Generics{Pos: g.Pos, Lifetimes: append([]*LifetimeParam(nil), g.Lifetimes...)}
	for _, tp := range g.TypeParams {
		stripped := *tp
		stripped.Default = nil
		impl.TypeParams = append(impl.TypeParams, &stripped)
	}
	return ImplGenerics{Params: impl}, TypeGenerics{Params: g}, g.Where
}

// SplitForImpl is the method form of the package-level SplitForImpl.
func (g *Generics) SplitForImpl() (ImplGenerics, TypeGenerics, *WhereClause) {
	return SplitForImpl(g)
}

// Args returns the type generics as angle bracketed path arguments, or nil
// when there are no parameters.
func (tg TypeGenerics) Args() *AngleBracketedArgs {
	if tg.Params.IsEmpty() {
		return nil
	}
	args := &AngleBracketedArgs{}
	for _, lt := range tg.Params.Lifetimes {
		args.Args = append(args.Args, &LifetimeArg{Lifetime: lt.Lifetime})
	}
	for _, tp := range tg.Params.TypeParams {
		args.Args = append(args.Args, &TypeArg{Type: NewPathType(&Path{
			Segments: []*PathSegment{{Ident: tp.Ident}},
		})})
	}
	return args
}

// SelfType builds the path type `Name<TG>` for an impl block.
func (tg TypeGenerics) SelfType(name *Ident) *PathType {
	seg := &PathSegment{Ident: name}
	if args := tg.Args(); args != nil {
		seg.Args = args
	}
	return NewPathType(&Path{Segments: []*PathSegment{seg}})
}

//go:build !minimal

package ast

// File represents a parsed source file: inner attributes followed by declarations.
type File struct {
	Pos
	Attrs []*Attribute
	Decls []Decl
}

// Decl represents an item declaration.
type Decl interface {
	Node
	declNode()
}

// FnDecl is a function with a body.
type FnDecl struct {
	Pos
	Attrs []*Attribute
	Vis   Visibility
	Sig   *FnSig
	Body  *Block
}

// FnSig is a function signature shared by free functions, trait and impl methods.
type FnSig struct {
	Pos
	Const    bool
	Unsafe   bool
	Abi      *Abi
	Name     *Ident
	Generics *Generics
	Inputs   []FnArg
	Variadic bool
	Output   TypeExpr
}

// FnArg is a SelfArg or a TypedArg.
type FnArg interface {
	Node
	fnArg()
}

// SelfArg is `self`, `mut self`, `&'a mut self` or `self: Type`.
type SelfArg struct {
	Pos
	Ref      bool
	Lifetime *Lifetime
	Mutable  bool
	Type     TypeExpr
}

// TypedArg is `pat: Type`.
type TypedArg struct {
	Pos
	Pat  Pat
	Type TypeExpr
}

func (*SelfArg) fnArg()  {}
func (*TypedArg) fnArg() {}

// StructDecl is a struct declaration.
type StructDecl struct {
	Pos
	Attrs    []*Attribute
	Vis      Visibility
	Name     *Ident
	Generics *Generics
	Style    StructStyle
	Fields   []*Field
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Pos
	Attrs    []*Attribute
	Vis      Visibility
	Name     *Ident
	Generics *Generics
	Variants []*Variant
}

// TraitDecl is a trait declaration.
type TraitDecl struct {
	Pos
	Attrs       []*Attribute
	Vis         Visibility
	Unsafe      bool
	Name        *Ident
	Generics    *Generics
	Supertraits []TypeParamBound
	Items       []TraitItem
}

// TraitItem is a member of a trait.
type TraitItem interface {
	Node
	traitItem()
}

// TraitFn is a trait method with an optional default body.
type TraitFn struct {
	Pos
	Attrs   []*Attribute
	Sig     *FnSig
	Default *Block
}

// TraitConst is an associated constant with an optional default.
type TraitConst struct {
	Pos
	Attrs   []*Attribute
	Name    *Ident
	Type    TypeExpr
	Default Expr
}

// TraitType is an associated type with optional bounds and default.
type TraitType struct {
	Pos
	Attrs   []*Attribute
	Name    *Ident
	Bounds  []TypeParamBound
	Default TypeExpr
}

// TraitMacro is a macro invocation inside a trait.
type TraitMacro struct {
	Pos
	Attrs []*Attribute
	Mac   *Macro
}

func (*TraitFn) traitItem()    {}
func (*TraitConst) traitItem() {}
func (*TraitType) traitItem()  {}
func (*TraitMacro) traitItem() {}

// ImplDecl is an inherent or trait impl block. Trait is nil for inherent impls.
type ImplDecl struct {
	Pos
	Attrs    []*Attribute
	Unsafe   bool
	Generics *Generics
	Negative bool
	Trait    *Path
	SelfType TypeExpr
	Items    []ImplItem
}

// ImplItem is a member of an impl block.
type ImplItem interface {
	Node
	implItem()
}

// ImplFn is a method in an impl block.
type ImplFn struct {
	Pos
	Attrs []*Attribute
	Vis   Visibility
	Sig   *FnSig
	Body  *Block
}

// ImplConst is an associated constant definition.
type ImplConst struct {
	Pos
	Attrs []*Attribute
	Vis   Visibility
	Name  *Ident
	Type  TypeExpr
	Value Expr
}

// ImplType is an associated type definition.
type ImplType struct {
	Pos
	Attrs []*Attribute
	Vis   Visibility
	Name  *Ident
	Type  TypeExpr
}

// ImplMacro is a macro invocation inside an impl block.
type ImplMacro struct {
	Pos
	Attrs []*Attribute
	Mac   *Macro
}

func (*ImplFn) implItem()    {}
func (*ImplConst) implItem() {}
func (*ImplType) implItem()  {}
func (*ImplMacro) implItem() {}

// ModDecl is `mod name;` or an inline module when Inline is set. Inner
// attributes of an inline module are kept in Attrs with AttrInner style.
type ModDecl struct {
	Pos
	Attrs  []*Attribute
	Vis    Visibility
	Name   *Ident
	Inline bool
	Decls  []Decl
}

// UseDecl is a use declaration.
type UseDecl struct {
	Pos
	Attrs  []*Attribute
	Vis    Visibility
	Global bool
	Tree   UseTree
}

// UseTree is one node of a use declaration tree.
type UseTree interface {
	Node
	useTree()
}

// UsePath is `ident::tree`.
type UsePath struct {
	Pos
	Ident *Ident
	Tree  UseTree
}

// UseName is a leaf import.
type UseName struct {
	Pos
	Ident *Ident
}

// UseRename is `ident as rename`; Rename is nil for `as _`.
type UseRename struct {
	Pos
	Ident  *Ident
	Rename *Ident
}

// UseGlob is `*`.
type UseGlob struct {
	Pos
}

// UseGroup is `{a, b::c}`.
type UseGroup struct {
	Pos
	Items []UseTree
}

func (*UsePath) useTree()   {}
func (*UseName) useTree()   {}
func (*UseRename) useTree() {}
func (*UseGlob) useTree()   {}
func (*UseGroup) useTree()  {}

// ConstDecl is `const NAME: Type = value;`.
type ConstDecl struct {
	Pos
	Attrs []*Attribute
	Vis   Visibility
	Name  *Ident
	Type  TypeExpr
	Value Expr
}

// StaticDecl is `static mut NAME: Type = value;`.
type StaticDecl struct {
	Pos
	Attrs   []*Attribute
	Vis     Visibility
	Mutable bool
	Name    *Ident
	Type    TypeExpr
	Value   Expr
}

// TypeAliasDecl is `type Name<T> = Type;`.
type TypeAliasDecl struct {
	Pos
	Attrs    []*Attribute
	Vis      Visibility
	Name     *Ident
	Generics *Generics
	Type     TypeExpr
}

// ExternCrateDecl is `extern crate name as rename;`.
type ExternCrateDecl struct {
	Pos
	Attrs  []*Attribute
	Vis    Visibility
	Name   *Ident
	Rename *Ident
}

// MacroDecl is a macro invocation in item position. Ident is set for
// `macro_rules! name { ... }`.
type MacroDecl struct {
	Pos
	Attrs []*Attribute
	Ident *Ident
	Mac   *Macro
}

func (*FnDecl) declNode()          {}
func (*StructDecl) declNode()      {}
func (*EnumDecl) declNode()        {}
func (*TraitDecl) declNode()       {}
func (*ImplDecl) declNode()        {}
func (*ModDecl) declNode()         {}
func (*UseDecl) declNode()         {}
func (*ConstDecl) declNode()       {}
func (*StaticDecl) declNode()      {}
func (*TypeAliasDecl) declNode()   {}
func (*ExternCrateDecl) declNode() {}
func (*MacroDecl) declNode()       {}

// MacroInputFromDecl converts a struct or enum declaration into a MacroInput.
// ok is false for every other declaration kind.
func MacroInputFromDecl(d Decl) (*MacroInput, bool) {
	switch d := d.(type) {
	case *StructDecl:
		return &MacroInput{
			Pos:      d.Pos,
			Attrs:    d.Attrs,
			Vis:      d.Vis,
			Name:     d.Name,
			Generics: d.Generics,
			Body:     &StructBody{Pos: d.Pos, Style: d.Style, Fields: d.Fields},
		}, true
	case *EnumDecl:
		return &MacroInput{
			Pos:      d.Pos,
			Attrs:    d.Attrs,
			Vis:      d.Vis,
			Name:     d.Name,
			Generics: d.Generics,
			Body:     &EnumBody{Pos: d.Pos, Variants: d.Variants},
		}, true
	}
	return nil, false
}

// Decl converts the input back into a struct or enum declaration.
func (m *MacroInput) Decl() Decl {
	switch b := m.Body.(type) {
	case *EnumBody:
		return &EnumDecl{
			Pos:      m.Pos,
			Attrs:    m.Attrs,
			Vis:      m.Vis,
			Name:     m.Name,
			Generics: m.Generics,
			Variants: b.Variants,
		}
	case *StructBody:
		return &StructDecl{
			Pos:      m.Pos,
			Attrs:    m.Attrs,
			Vis:      m.Vis,
			Name:     m.Name,
			Generics: m.Generics,
			Style:    b.Style,
			Fields:   b.Fields,
		}
	}
	return nil
}

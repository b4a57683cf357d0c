//go:build !minimal

package ast

import "reflect"

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if isNilNode(node) || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		walkAttrs(n.Attrs, fn)
		for _, d := range n.Decls {
			Walk(d, fn)
		}

	case *Attribute:
		walkOpt(n.Path, fn)

	case *Path:
		for _, seg := range n.Segments {
			Walk(seg, fn)
		}
	case *PathSegment:
		walkOpt(n.Ident, fn)
		if n.Args != nil {
			Walk(n.Args, fn)
		}
	case *AngleBracketedArgs:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *ParenthesizedArgs:
		for _, t := range n.Inputs {
			Walk(t, fn)
		}
		walkOpt(n.Output, fn)
	case *LifetimeArg:
		walkOpt(n.Lifetime, fn)
	case *TypeArg:
		Walk(n.Type, fn)
	case *BindingArg:
		walkOpt(n.Ident, fn)
		Walk(n.Type, fn)
	case *ConstArg:
		Walk(n.Expr, fn)
	case *QSelf:
		Walk(n.Type, fn)

	// types
	case *PathType:
		if n.QSelf != nil {
			Walk(n.QSelf, fn)
		}
		walkOpt(n.Path, fn)
	case *ReferenceType:
		if n.Lifetime != nil {
			Walk(n.Lifetime, fn)
		}
		Walk(n.Elem, fn)
	case *PointerType:
		Walk(n.Elem, fn)
	case *SliceType:
		Walk(n.Elem, fn)
	case *ArrayType:
		Walk(n.Elem, fn)
		Walk(n.Len, fn)
	case *TupleType:
		for _, t := range n.Elems {
			Walk(t, fn)
		}
	case *FnType:
		for _, lt := range n.Lifetimes {
			Walk(lt, fn)
		}
		for _, in := range n.Inputs {
			Walk(in.Type, fn)
		}
		walkOpt(n.Output, fn)
	case *TraitObjectType:
		walkBounds(n.Bounds, fn)
	case *ImplTraitType:
		walkBounds(n.Bounds, fn)
	case *ParenType:
		Walk(n.Elem, fn)

	// generics
	case *Generics:
		for _, lt := range n.Lifetimes {
			Walk(lt, fn)
		}
		for _, tp := range n.TypeParams {
			Walk(tp, fn)
		}
		if n.Where != nil {
			Walk(n.Where, fn)
		}
	case *LifetimeParam:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Lifetime, fn)
	case *TypeParam:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Ident, fn)
		walkBounds(n.Bounds, fn)
		walkOpt(n.Default, fn)
	case *TraitBound:
		walkOpt(n.Path, fn)
	case *LifetimeBound:
		walkOpt(n.Lifetime, fn)
	case *WhereClause:
		for _, p := range n.Predicates {
			Walk(p, fn)
		}
	case *BoundPredicate:
		Walk(n.Bounded, fn)
		walkBounds(n.Bounds, fn)
	case *LifetimePredicate:
		walkOpt(n.Lifetime, fn)

	// derive input
	case *MacroInput:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkOpt(n.Generics, fn)
		walkOpt(n.Body, fn)
	case *StructBody:
		walkFields(n.Fields, fn)
	case *EnumBody:
		for _, v := range n.Variants {
			Walk(v, fn)
		}
	case *Variant:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkFields(n.Fields, fn)
		walkOpt(n.Discriminant, fn)
	case *Field:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		Walk(n.Type, fn)

	// declarations
	case *FnDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Sig, fn)
		walkOpt(n.Body, fn)
	case *FnSig:
		walkOpt(n.Name, fn)
		walkOpt(n.Generics, fn)
		for _, in := range n.Inputs {
			Walk(in, fn)
		}
		walkOpt(n.Output, fn)
	case *SelfArg:
		walkOpt(n.Type, fn)
	case *TypedArg:
		Walk(n.Pat, fn)
		Walk(n.Type, fn)
	case *StructDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkOpt(n.Generics, fn)
		walkFields(n.Fields, fn)
	case *EnumDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkOpt(n.Generics, fn)
		for _, v := range n.Variants {
			Walk(v, fn)
		}
	case *TraitDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkOpt(n.Generics, fn)
		walkBounds(n.Supertraits, fn)
		for _, it := range n.Items {
			Walk(it, fn)
		}
	case *TraitFn:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Sig, fn)
		walkOpt(n.Default, fn)
	case *TraitConst:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		Walk(n.Type, fn)
		walkOpt(n.Default, fn)
	case *TraitType:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkBounds(n.Bounds, fn)
		walkOpt(n.Default, fn)
	case *TraitMacro:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Mac, fn)
	case *ImplDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Generics, fn)
		walkOpt(n.Trait, fn)
		Walk(n.SelfType, fn)
		for _, it := range n.Items {
			Walk(it, fn)
		}
	case *ImplFn:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Sig, fn)
		walkOpt(n.Body, fn)
	case *ImplConst:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		Walk(n.Type, fn)
		Walk(n.Value, fn)
	case *ImplType:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		Walk(n.Type, fn)
	case *ImplMacro:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Mac, fn)
	case *ModDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		for _, d := range n.Decls {
			Walk(d, fn)
		}
	case *UseDecl:
		walkAttrs(n.Attrs, fn)
		Walk(n.Tree, fn)
	case *UsePath:
		walkOpt(n.Ident, fn)
		Walk(n.Tree, fn)
	case *UseName:
		walkOpt(n.Ident, fn)
	case *UseRename:
		walkOpt(n.Ident, fn)
		walkOpt(n.Rename, fn)
	case *UseGroup:
		for _, it := range n.Items {
			Walk(it, fn)
		}
	case *ConstDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		Walk(n.Type, fn)
		Walk(n.Value, fn)
	case *StaticDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		Walk(n.Type, fn)
		Walk(n.Value, fn)
	case *TypeAliasDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkOpt(n.Generics, fn)
		Walk(n.Type, fn)
	case *ExternCrateDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Name, fn)
		walkOpt(n.Rename, fn)
	case *MacroDecl:
		walkAttrs(n.Attrs, fn)
		walkOpt(n.Ident, fn)
		walkOpt(n.Mac, fn)
	case *Macro:
		walkOpt(n.Path, fn)

	// statements
	case *Block:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}
	case *LetStmt:
		walkAttrs(n.Attrs, fn)
		Walk(n.Pat, fn)
		walkOpt(n.Type, fn)
		walkOpt(n.Init, fn)
	case *DeclStmt:
		Walk(n.Decl, fn)
	case *ExprStmt:
		Walk(n.Expr, fn)

	// expressions
	case *LitExpr:
		walkOpt(n.Lit, fn)
	case *PathExpr:
		if n.QSelf != nil {
			Walk(n.QSelf, fn)
		}
		walkOpt(n.Path, fn)
	case *PrefixExpr:
		Walk(n.Operand, fn)
	case *InfixExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *AssignExpr:
		Walk(n.Target, fn)
		Walk(n.Value, fn)
	case *CastExpr:
		Walk(n.Expr, fn)
		Walk(n.Type, fn)
	case *CallExpr:
		Walk(n.Callee, fn)
		walkExprs(n.Args, fn)
	case *MethodCallExpr:
		Walk(n.Receiver, fn)
		walkOpt(n.Method, fn)
		walkOpt(n.Turbofish, fn)
		walkExprs(n.Args, fn)
	case *FieldExpr:
		Walk(n.Target, fn)
		walkOpt(n.Field, fn)
	case *TupleIndexExpr:
		Walk(n.Target, fn)
	case *IndexExpr:
		Walk(n.Target, fn)
		Walk(n.Index, fn)
	case *TryExpr:
		Walk(n.Expr, fn)
	case *RefExpr:
		Walk(n.Expr, fn)
	case *RangeExpr:
		walkOpt(n.Start, fn)
		walkOpt(n.End, fn)
	case *TupleExpr:
		walkExprs(n.Elems, fn)
	case *ArrayExpr:
		walkExprs(n.Elems, fn)
	case *RepeatExpr:
		Walk(n.Elem, fn)
		Walk(n.Len, fn)
	case *StructExpr:
		walkOpt(n.Path, fn)
		for _, f := range n.Fields {
			walkOpt(f.Name, fn)
			Walk(f.Value, fn)
		}
		walkOpt(n.Base, fn)
	case *BlockExpr:
		walkOpt(n.Block, fn)
	case *IfExpr:
		Walk(n.Cond, fn)
		walkOpt(n.Then, fn)
		walkOpt(n.Else, fn)
	case *IfLetExpr:
		walkPats(n.Pats, fn)
		Walk(n.Expr, fn)
		walkOpt(n.Then, fn)
		walkOpt(n.Else, fn)
	case *WhileExpr:
		Walk(n.Cond, fn)
		walkOpt(n.Body, fn)
	case *WhileLetExpr:
		walkPats(n.Pats, fn)
		Walk(n.Expr, fn)
		walkOpt(n.Body, fn)
	case *LoopExpr:
		walkOpt(n.Body, fn)
	case *ForExpr:
		Walk(n.Pat, fn)
		Walk(n.Iter, fn)
		walkOpt(n.Body, fn)
	case *MatchExpr:
		Walk(n.Scrutinee, fn)
		for _, arm := range n.Arms {
			Walk(arm, fn)
		}
	case *Arm:
		walkAttrs(n.Attrs, fn)
		walkPats(n.Pats, fn)
		walkOpt(n.Guard, fn)
		Walk(n.Body, fn)
	case *ClosureExpr:
		for _, in := range n.Inputs {
			Walk(in.Pat, fn)
			walkOpt(in.Type, fn)
		}
		walkOpt(n.Output, fn)
		Walk(n.Body, fn)
	case *BreakExpr:
		walkOpt(n.Value, fn)
	case *ReturnExpr:
		walkOpt(n.Value, fn)
	case *MacroExpr:
		walkOpt(n.Mac, fn)
	case *ParenExpr:
		Walk(n.Expr, fn)

	// patterns
	case *IdentPat:
		walkOpt(n.Name, fn)
		walkOpt(n.Sub, fn)
	case *LitPat:
		Walk(n.Expr, fn)
	case *RangePat:
		Walk(n.Lo, fn)
		Walk(n.Hi, fn)
	case *PathPat:
		if n.QSelf != nil {
			Walk(n.QSelf, fn)
		}
		walkOpt(n.Path, fn)
	case *TupleStructPat:
		walkOpt(n.Path, fn)
		walkPats(n.Elems, fn)
	case *StructPat:
		walkOpt(n.Path, fn)
		for _, f := range n.Fields {
			Walk(f.Pat, fn)
		}
	case *TuplePat:
		walkPats(n.Elems, fn)
	case *SlicePat:
		walkPats(n.Elems, fn)
	case *RefPat:
		Walk(n.Pat, fn)
	}
}

// walkOpt walks a child that may be absent.
func walkOpt(node Node, fn func(Node) bool) {
	if !isNilNode(node) {
		Walk(node, fn)
	}
}

func walkAttrs(attrs []*Attribute, fn func(Node) bool) {
	for _, a := range attrs {
		Walk(a, fn)
	}
}

func walkBounds(bounds []TypeParamBound, fn func(Node) bool) {
	for _, b := range bounds {
		Walk(b, fn)
	}
}

func walkFields(fields []*Field, fn func(Node) bool) {
	for _, f := range fields {
		Walk(f, fn)
	}
}

func walkExprs(exprs []Expr, fn func(Node) bool) {
	for _, e := range exprs {
		Walk(e, fn)
	}
}

func walkPats(pats []Pat, fn func(Node) bool) {
	for _, p := range pats {
		Walk(p, fn)
	}
}

// isNilNode reports whether node is nil or a typed nil pointer.
func isNilNode(node Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

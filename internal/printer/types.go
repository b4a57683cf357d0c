package printer

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

func (p *printer) ident(id *ast.Ident) {
	p.tok(id.Name)
}

func (p *printer) lit(l *ast.Lit) {
	if l.Raw != "" {
		p.tok(l.Raw)
		return
	}
	switch l.Kind {
	case ast.LitStr:
		p.tok(lexer.QuoteString(l.Value))
	case ast.LitByteStr:
		p.tok("b" + lexer.QuoteString(l.Value))
	case ast.LitChar:
		r := []rune(l.Value)
		if len(r) == 1 {
			p.tok(lexer.QuoteChar(r[0]))
			return
		}
		p.tok(l.Value)
	default:
		p.tok(l.Value)
	}
}

func (p *printer) lifetime(lt *ast.Lifetime) {
	p.tok(lt.Name)
}

func (p *printer) path(path *ast.Path) {
	p.pathIn(path, false)
}

// exprPath prints a path in expression or pattern position, where generic
// arguments always take the turbofish form.
func (p *printer) exprPath(path *ast.Path) {
	p.pathIn(path, true)
}

func (p *printer) pathIn(path *ast.Path, expr bool) {
	if path.Global {
		p.tok("::")
	}
	p.pathSegments(path.Segments, expr)
}

func (p *printer) pathSegments(segs []*ast.PathSegment, expr bool) {
	for i, seg := range segs {
		if i > 0 {
			p.tok("::")
		}
		p.pathSegment(seg, expr)
	}
}

func (p *printer) pathSegment(seg *ast.PathSegment, expr bool) {
	p.ident(seg.Ident)
	switch args := seg.Args.(type) {
	case *ast.AngleBracketedArgs:
		if args.Turbofish || expr {
			p.tok("::")
		}
		p.angleArgs(args)
	case *ast.ParenthesizedArgs:
		p.tok("(")
		for i, t := range args.Inputs {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.typ(t)
		}
		p.tok(")")
		p.returnType(args.Output)
	}
}

func (p *printer) angleArgs(args *ast.AngleBracketedArgs) {
	p.tok("<")
	for i, a := range args.Args {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.genericArg(a)
	}
	p.closeAngle()
}

func (p *printer) genericArg(a ast.GenericArg) {
	switch a := a.(type) {
	case *ast.LifetimeArg:
		p.lifetime(a.Lifetime)
	case *ast.TypeArg:
		p.typ(a.Type)
	case *ast.BindingArg:
		p.ident(a.Ident)
		p.op("=")
		p.typ(a.Type)
	case *ast.ConstArg:
		p.expr(a.Expr)
	}
}

// qpath prints `<T as Trait>::rest` from a QSelf and the accompanying path.
func (p *printer) qpath(q *ast.QSelf, path *ast.Path, expr bool) {
	p.tok("<")
	p.typ(q.Type)
	pos := min(q.Position, len(path.Segments))
	if pos > 0 {
		p.op("as")
		if path.Global {
			p.tok("::")
		}
		p.pathSegments(path.Segments[:pos], false)
	}
	p.closeAngle()
	p.tok("::")
	p.pathSegments(path.Segments[pos:], expr)
}

func (p *printer) returnType(t ast.TypeExpr) {
	if t == nil {
		return
	}
	p.op("->")
	p.typ(t)
}

func (p *printer) typ(t ast.TypeExpr) {
	switch t := t.(type) {
	case *ast.PathType:
		if t.QSelf != nil {
			p.qpath(t.QSelf, t.Path, false)
			return
		}
		p.path(t.Path)
	case *ast.ReferenceType:
		p.tok("&")
		if t.Lifetime != nil {
			p.lifetime(t.Lifetime)
			p.space()
		}
		if t.Mutable {
			p.keyword("mut")
		}
		p.typ(t.Elem)
	case *ast.PointerType:
		p.tok("*")
		if t.Mutable {
			p.keyword("mut")
		} else {
			p.keyword("const")
		}
		p.typ(t.Elem)
	case *ast.SliceType:
		p.tok("[")
		p.typ(t.Elem)
		p.tok("]")
	case *ast.ArrayType:
		p.tok("[")
		p.typ(t.Elem)
		p.tok(";")
		p.space()
		p.expr(t.Len)
		p.tok("]")
	case *ast.TupleType:
		p.tok("(")
		for i, e := range t.Elems {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.typ(e)
		}
		if len(t.Elems) == 1 {
			p.tok(",")
		}
		p.tok(")")
	case *ast.FnType:
		p.fnType(t)
	case *ast.NeverType:
		p.tok("!")
	case *ast.InferType:
		p.tok("_")
	case *ast.TraitObjectType:
		if t.Dyn {
			p.keyword("dyn")
		}
		p.bounds(t.Bounds)
	case *ast.ImplTraitType:
		p.keyword("impl")
		p.bounds(t.Bounds)
	case *ast.ParenType:
		p.tok("(")
		p.typ(t.Elem)
		p.tok(")")
	}
}

func (p *printer) fnType(t *ast.FnType) {
	if len(t.Lifetimes) > 0 {
		p.boundLifetimes(t.Lifetimes)
	}
	if t.Unsafe {
		p.keyword("unsafe")
	}
	if t.Abi != nil {
		p.abi(t.Abi)
	}
	p.tok("fn")
	p.tok("(")
	for i, in := range t.Inputs {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		switch {
		case in.Wild:
			p.tok("_")
			p.tok(":")
			p.space()
		case in.Name != nil:
			p.ident(in.Name)
			p.tok(":")
			p.space()
		}
		p.typ(in.Type)
	}
	if t.Variadic {
		if len(t.Inputs) > 0 {
			p.tok(",")
			p.space()
		}
		p.tok("...")
	}
	p.tok(")")
	p.returnType(t.Output)
}

func (p *printer) abi(a *ast.Abi) {
	p.keyword("extern")
	if a.Name != nil {
		p.lit(a.Name)
		p.space()
	}
}

// boundLifetimes prints a `for<'a, 'b>` binder followed by a space.
func (p *printer) boundLifetimes(lts []*ast.LifetimeParam) {
	p.tok("for")
	p.tok("<")
	for i, lp := range lts {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.lifetimeParam(lp)
	}
	p.closeAngle()
	p.space()
}

func (p *printer) bounds(bounds []ast.TypeParamBound) {
	for i, b := range bounds {
		if i > 0 {
			p.op("+")
		}
		p.bound(b)
	}
}

func (p *printer) bound(b ast.TypeParamBound) {
	switch b := b.(type) {
	case *ast.LifetimeBound:
		p.lifetime(b.Lifetime)
	case *ast.TraitBound:
		if b.Paren {
			p.tok("(")
		}
		if b.Maybe {
			p.tok("?")
		}
		if len(b.Lifetimes) > 0 {
			p.boundLifetimes(b.Lifetimes)
		}
		p.path(b.Path)
		if b.Paren {
			p.tok(")")
		}
	}
}

func (p *printer) lifetimeBounds(lts []*ast.Lifetime) {
	for i, lt := range lts {
		if i > 0 {
			p.op("+")
		}
		p.lifetime(lt)
	}
}

func (p *printer) lifetimeParam(lp *ast.LifetimeParam) {
	p.inlineAttrs(lp.Attrs)
	p.lifetime(lp.Lifetime)
	if len(lp.Bounds) > 0 {
		p.tok(":")
		p.space()
		p.lifetimeBounds(lp.Bounds)
	}
}

func (p *printer) typeParam(tp *ast.TypeParam) {
	p.inlineAttrs(tp.Attrs)
	p.ident(tp.Ident)
	if len(tp.Bounds) > 0 {
		p.tok(":")
		p.space()
		p.bounds(tp.Bounds)
	}
	if tp.Default != nil {
		p.op("=")
		p.typ(tp.Default)
	}
}

// generics prints the parameter list, or nothing when there are no
// parameters.
func (p *printer) generics(g *ast.Generics) {
	if g.IsEmpty() {
		return
	}
	p.tok("<")
	n := 0
	for _, lp := range g.Lifetimes {
		if n > 0 {
			p.tok(",")
			p.space()
		}
		p.lifetimeParam(lp)
		n++
	}
	for _, tp := range g.TypeParams {
		if n > 0 {
			p.tok(",")
			p.space()
		}
		p.typeParam(tp)
		n++
	}
	p.closeAngle()
}

func (p *printer) typeGenerics(tg ast.TypeGenerics) {
	if args := tg.Args(); args != nil {
		p.angleArgs(args)
	}
}

func (p *printer) whereClause(wc *ast.WhereClause) {
	if wc == nil {
		return
	}
	p.tok("where")
	for i, pred := range wc.Predicates {
		if i > 0 {
			p.tok(",")
		}
		p.space()
		p.wherePredicate(pred)
	}
}

// trailingWhere prints a where clause preceded by a space.
func (p *printer) trailingWhere(g *ast.Generics) {
	if g == nil || g.Where == nil {
		return
	}
	p.space()
	p.whereClause(g.Where)
}

func (p *printer) wherePredicate(pred ast.WherePredicate) {
	switch pred := pred.(type) {
	case *ast.BoundPredicate:
		if len(pred.Lifetimes) > 0 {
			p.boundLifetimes(pred.Lifetimes)
		}
		p.typ(pred.Bounded)
		p.tok(":")
		if len(pred.Bounds) > 0 {
			p.space()
			p.bounds(pred.Bounds)
		}
	case *ast.LifetimePredicate:
		p.lifetime(pred.Lifetime)
		p.tok(":")
		if len(pred.Bounds) > 0 {
			p.space()
			p.lifetimeBounds(pred.Bounds)
		}
	}
}

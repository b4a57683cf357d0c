//go:build !minimal

package printer

import (
	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// File prints a source file.
func File(f *ast.File, opts ...Option) string {
	return run(opts, func(p *printer) { p.file(f) })
}

// Decl prints a single declaration.
func Decl(d ast.Decl, opts ...Option) string {
	return run(opts, func(p *printer) { p.decl(d) })
}

// Expr prints an expression.
func Expr(e ast.Expr, opts ...Option) string {
	return run(opts, func(p *printer) { p.expr(e) })
}

// Stmt prints a statement.
func Stmt(s ast.Stmt, opts ...Option) string {
	return run(opts, func(p *printer) { p.stmt(s) })
}

// Pat prints a pattern.
func Pat(pt ast.Pat, opts ...Option) string {
	return run(opts, func(p *printer) { p.pat(pt) })
}

// Block prints a brace delimited block.
func Block(b *ast.Block, opts ...Option) string {
	return run(opts, func(p *printer) { p.block(b) })
}

func (p *printer) fullNode(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.File:
		p.file(n)
	case ast.Decl:
		p.decl(n)
	case ast.Stmt:
		p.stmt(n)
	case ast.Pat:
		p.pat(n)
	case *ast.Block:
		p.block(n)
	case *ast.Arm:
		p.arm(n)
	case *ast.FieldValue:
		p.fieldValue(n)
	case *ast.FieldPat:
		p.fieldPat(n)
	case *ast.ClosureParam:
		p.closureParam(n)
	case *ast.Macro:
		p.macro(n)
	case *ast.FnSig:
		p.fnSig(n)
	case ast.FnArg:
		p.fnArg(n)
	case ast.TraitItem:
		p.traitItem(n)
	case ast.ImplItem:
		p.implItem(n)
	case ast.UseTree:
		p.useTree(n)
	default:
		return false
	}
	return true
}

func (p *printer) file(f *ast.File) {
	for _, a := range f.Attrs {
		p.attr(a)
		p.newline()
	}
	if len(f.Attrs) > 0 && len(f.Decls) > 0 {
		p.newline()
	}
	p.decls(f.Decls)
}

// decls prints declarations separated by blank lines.
func (p *printer) decls(ds []ast.Decl) {
	for i, d := range ds {
		if i > 0 {
			p.newline()
		}
		p.decl(d)
		p.newline()
	}
}

func (p *printer) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.FnDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.fnSig(d.Sig)
		p.space()
		p.block(d.Body)
	case *ast.StructDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.structDecl(d.Name, d.Generics, d.Style, d.Fields)
	case *ast.EnumDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.enumDecl(d.Name, d.Generics, d.Variants)
	case *ast.TraitDecl:
		p.traitDecl(d)
	case *ast.ImplDecl:
		p.implDecl(d)
	case *ast.ModDecl:
		p.modDecl(d)
	case *ast.UseDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.keyword("use")
		if d.Global {
			p.tok("::")
		}
		p.useTree(d.Tree)
		p.tok(";")
	case *ast.ConstDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.keyword("const")
		p.typedValue(d.Name, d.Type, d.Value)
	case *ast.StaticDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.keyword("static")
		if d.Mutable {
			p.keyword("mut")
		}
		p.typedValue(d.Name, d.Type, d.Value)
	case *ast.TypeAliasDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.keyword("type")
		p.ident(d.Name)
		p.generics(d.Generics)
		p.trailingWhere(d.Generics)
		p.op("=")
		p.typ(d.Type)
		p.tok(";")
	case *ast.ExternCrateDecl:
		p.outerAttrs(d.Attrs)
		p.vis(d.Vis)
		p.keyword("extern")
		p.keyword("crate")
		p.ident(d.Name)
		if d.Rename != nil {
			p.op("as")
			p.ident(d.Rename)
		}
		p.tok(";")
	case *ast.MacroDecl:
		p.outerAttrs(d.Attrs)
		p.exprPath(d.Mac.Path)
		p.tok("!")
		if d.Ident != nil {
			p.space()
			p.ident(d.Ident)
		}
		p.macroGroup(d.Mac.Delim, d.Mac.Tokens)
		p.macroSemi(d.Mac)
	}
}

func (p *printer) macroSemi(m *ast.Macro) {
	if m.Delim != lexer.DelimBrace {
		p.tok(";")
	}
}

// typedValue prints `NAME: Type = value;` for constants and statics.
func (p *printer) typedValue(name *ast.Ident, t ast.TypeExpr, value ast.Expr) {
	p.ident(name)
	p.tok(":")
	p.space()
	p.typ(t)
	if value != nil {
		p.op("=")
		p.expr(value)
	}
	p.tok(";")
}

func (p *printer) fnSig(s *ast.FnSig) {
	if s.Const {
		p.keyword("const")
	}
	if s.Unsafe {
		p.keyword("unsafe")
	}
	if s.Abi != nil {
		p.abi(s.Abi)
	}
	p.keyword("fn")
	p.ident(s.Name)
	p.generics(s.Generics)
	p.tok("(")
	for i, in := range s.Inputs {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.fnArg(in)
	}
	if s.Variadic {
		if len(s.Inputs) > 0 {
			p.tok(",")
			p.space()
		}
		p.tok("...")
	}
	p.tok(")")
	p.returnType(s.Output)
	p.trailingWhere(s.Generics)
}

func (p *printer) fnArg(a ast.FnArg) {
	switch a := a.(type) {
	case *ast.SelfArg:
		if a.Ref {
			p.tok("&")
			if a.Lifetime != nil {
				p.lifetime(a.Lifetime)
				p.space()
			}
		}
		if a.Mutable {
			p.keyword("mut")
		}
		p.tok("self")
		if a.Type != nil {
			p.tok(":")
			p.space()
			p.typ(a.Type)
		}
	case *ast.TypedArg:
		p.pat(a.Pat)
		p.tok(":")
		p.space()
		p.typ(a.Type)
	}
}

// items prints the members of a trait or impl body, one per line.
func (p *printer) items(n int, item func(i int)) {
	p.space()
	p.tok("{")
	if n == 0 {
		p.tok("}")
		return
	}
	p.newline()
	p.indent()
	for i := 0; i < n; i++ {
		item(i)
		p.newline()
	}
	p.unindent()
	p.tok("}")
}

func (p *printer) traitDecl(d *ast.TraitDecl) {
	p.outerAttrs(d.Attrs)
	p.vis(d.Vis)
	if d.Unsafe {
		p.keyword("unsafe")
	}
	p.keyword("trait")
	p.ident(d.Name)
	p.generics(d.Generics)
	if len(d.Supertraits) > 0 {
		p.tok(":")
		p.space()
		p.bounds(d.Supertraits)
	}
	p.trailingWhere(d.Generics)
	p.items(len(d.Items), func(i int) { p.traitItem(d.Items[i]) })
}

func (p *printer) traitItem(it ast.TraitItem) {
	switch it := it.(type) {
	case *ast.TraitFn:
		p.outerAttrs(it.Attrs)
		p.fnSig(it.Sig)
		if it.Default == nil {
			p.tok(";")
			return
		}
		p.space()
		p.block(it.Default)
	case *ast.TraitConst:
		p.outerAttrs(it.Attrs)
		p.keyword("const")
		p.typedValue(it.Name, it.Type, it.Default)
	case *ast.TraitType:
		p.outerAttrs(it.Attrs)
		p.keyword("type")
		p.ident(it.Name)
		if len(it.Bounds) > 0 {
			p.tok(":")
			p.space()
			p.bounds(it.Bounds)
		}
		if it.Default != nil {
			p.op("=")
			p.typ(it.Default)
		}
		p.tok(";")
	case *ast.TraitMacro:
		p.outerAttrs(it.Attrs)
		p.macro(it.Mac)
		p.macroSemi(it.Mac)
	}
}

func (p *printer) implDecl(d *ast.ImplDecl) {
	p.outerAttrs(d.Attrs)
	if d.Unsafe {
		p.keyword("unsafe")
	}
	p.tok("impl")
	p.generics(d.Generics)
	p.space()
	if d.Negative {
		p.tok("!")
	}
	if d.Trait != nil {
		p.path(d.Trait)
		p.op("for")
	}
	p.typ(d.SelfType)
	p.trailingWhere(d.Generics)
	p.items(len(d.Items), func(i int) { p.implItem(d.Items[i]) })
}

func (p *printer) implItem(it ast.ImplItem) {
	switch it := it.(type) {
	case *ast.ImplFn:
		p.outerAttrs(it.Attrs)
		p.vis(it.Vis)
		p.fnSig(it.Sig)
		p.space()
		p.block(it.Body)
	case *ast.ImplConst:
		p.outerAttrs(it.Attrs)
		p.vis(it.Vis)
		p.keyword("const")
		p.typedValue(it.Name, it.Type, it.Value)
	case *ast.ImplType:
		p.outerAttrs(it.Attrs)
		p.vis(it.Vis)
		p.keyword("type")
		p.ident(it.Name)
		p.op("=")
		p.typ(it.Type)
		p.tok(";")
	case *ast.ImplMacro:
		p.outerAttrs(it.Attrs)
		p.macro(it.Mac)
		p.macroSemi(it.Mac)
	}
}

func (p *printer) modDecl(d *ast.ModDecl) {
	p.outerAttrs(d.Attrs)
	p.vis(d.Vis)
	p.keyword("mod")
	p.ident(d.Name)
	if !d.Inline {
		p.tok(";")
		return
	}
	p.space()
	p.tok("{")
	inner := ast.InnerAttrs(d.Attrs)
	if len(inner) == 0 && len(d.Decls) == 0 {
		p.tok("}")
		return
	}
	p.newline()
	p.indent()
	for _, a := range inner {
		p.attr(a)
		p.newline()
	}
	if len(inner) > 0 && len(d.Decls) > 0 {
		p.newline()
	}
	p.decls(d.Decls)
	p.unindent()
	p.tok("}")
}

func (p *printer) useTree(t ast.UseTree) {
	switch t := t.(type) {
	case *ast.UsePath:
		p.ident(t.Ident)
		p.tok("::")
		p.useTree(t.Tree)
	case *ast.UseName:
		p.ident(t.Ident)
	case *ast.UseRename:
		p.ident(t.Ident)
		p.op("as")
		if t.Rename == nil {
			p.tok("_")
		} else {
			p.ident(t.Rename)
		}
	case *ast.UseGlob:
		p.tok("*")
	case *ast.UseGroup:
		p.tok("{")
		for i, item := range t.Items {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.useTree(item)
		}
		p.tok("}")
	}
}

func (p *printer) pats(ps []ast.Pat) {
	for i, pt := range ps {
		if i > 0 {
			p.op("|")
		}
		p.pat(pt)
	}
}

func (p *printer) patList(open string, ps []ast.Pat, close string) {
	p.tok(open)
	for i, pt := range ps {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.pat(pt)
	}
	p.tok(close)
}

func (p *printer) pat(pt ast.Pat) {
	switch pt := pt.(type) {
	case *ast.WildPat:
		p.tok("_")
	case *ast.RestPat:
		p.tok("..")
	case *ast.IdentPat:
		if pt.ByRef {
			p.keyword("ref")
		}
		if pt.Mutable {
			p.keyword("mut")
		}
		p.ident(pt.Name)
		if pt.Sub != nil {
			p.op("@")
			p.pat(pt.Sub)
		}
	case *ast.LitPat:
		p.expr(pt.Expr)
	case *ast.RangePat:
		p.expr(pt.Lo)
		if pt.Dots {
			p.tok("...")
		} else {
			p.tok("..=")
		}
		p.expr(pt.Hi)
	case *ast.PathPat:
		if pt.QSelf != nil {
			p.qpath(pt.QSelf, pt.Path, true)
			return
		}
		p.exprPath(pt.Path)
	case *ast.TupleStructPat:
		p.exprPath(pt.Path)
		p.patList("(", pt.Elems, ")")
	case *ast.StructPat:
		p.structPat(pt)
	case *ast.TuplePat:
		p.tok("(")
		for i, e := range pt.Elems {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.pat(e)
		}
		if len(pt.Elems) == 1 {
			if _, rest := pt.Elems[0].(*ast.RestPat); !rest {
				p.tok(",")
			}
		}
		p.tok(")")
	case *ast.SlicePat:
		p.patList("[", pt.Elems, "]")
	case *ast.RefPat:
		p.tok("&")
		if pt.Mutable {
			p.keyword("mut")
		}
		p.pat(pt.Pat)
	}
}

func (p *printer) structPat(pt *ast.StructPat) {
	p.exprPath(pt.Path)
	p.space()
	p.tok("{")
	if len(pt.Fields) == 0 && !pt.Rest {
		p.tok("}")
		return
	}
	p.space()
	for i, f := range pt.Fields {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.fieldPat(f)
	}
	if pt.Rest {
		if len(pt.Fields) > 0 {
			p.tok(",")
			p.space()
		}
		p.tok("..")
	}
	p.space()
	p.tok("}")
}

func (p *printer) fieldPat(f *ast.FieldPat) {
	p.inlineAttrs(f.Attrs)
	if ip, ok := f.Pat.(*ast.IdentPat); ok && f.Shorthand && ip.Sub == nil && ip.Name.Name == f.Name.Name {
		p.pat(ip)
		return
	}
	p.ident(f.Name)
	p.tok(":")
	p.space()
	p.pat(f.Pat)
}

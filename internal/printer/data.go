package printer

import "github.com/malphas-lang/synx/internal/ast"

func (p *printer) macroInput(in *ast.MacroInput) {
	p.outerAttrs(in.Attrs)
	p.vis(in.Vis)
	switch body := in.Body.(type) {
	case *ast.StructBody:
		p.structDecl(in.Name, in.Generics, body.Style, body.Fields)
	case *ast.EnumBody:
		p.enumDecl(in.Name, in.Generics, body.Variants)
	}
}

func (p *printer) structDecl(name *ast.Ident, g *ast.Generics, style ast.StructStyle, fields []*ast.Field) {
	p.keyword("struct")
	p.ident(name)
	p.generics(g)
	switch style {
	case ast.StructNamed:
		p.trailingWhere(g)
		p.space()
		p.namedFields(fields)
	case ast.StructTuple:
		p.tupleFields(fields)
		p.trailingWhere(g)
		p.tok(";")
	default:
		p.trailingWhere(g)
		p.tok(";")
	}
}

func (p *printer) enumDecl(name *ast.Ident, g *ast.Generics, variants []*ast.Variant) {
	p.keyword("enum")
	p.ident(name)
	p.generics(g)
	p.trailingWhere(g)
	p.space()
	if len(variants) == 0 {
		p.tok("{")
		p.tok("}")
		return
	}
	p.tok("{")
	p.newline()
	p.indent()
	for _, v := range variants {
		p.variant(v)
		p.tok(",")
		p.newline()
	}
	p.unindent()
	p.tok("}")
}

func (p *printer) variant(v *ast.Variant) {
	p.outerAttrs(v.Attrs)
	p.ident(v.Name)
	switch v.Style {
	case ast.StructNamed:
		p.space()
		if hasFieldAttrs(v.Fields) {
			p.namedFields(v.Fields)
		} else {
			p.inlineNamedFields(v.Fields)
		}
	case ast.StructTuple:
		p.tupleFields(v.Fields)
	}
	if v.Discriminant != nil {
		p.op("=")
		p.expr(v.Discriminant)
	}
}

func hasFieldAttrs(fields []*ast.Field) bool {
	for _, f := range fields {
		if len(f.Attrs) > 0 {
			return true
		}
	}
	return false
}

// namedFields prints `{ a: T }` with one field per line.
func (p *printer) namedFields(fields []*ast.Field) {
	p.tok("{")
	if len(fields) == 0 {
		p.tok("}")
		return
	}
	p.newline()
	p.indent()
	for _, f := range fields {
		p.field(f)
		p.tok(",")
		p.newline()
	}
	p.unindent()
	p.tok("}")
}

func (p *printer) inlineNamedFields(fields []*ast.Field) {
	p.tok("{")
	if len(fields) == 0 {
		p.tok("}")
		return
	}
	p.space()
	for i, f := range fields {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.field(f)
	}
	p.space()
	p.tok("}")
}

func (p *printer) tupleFields(fields []*ast.Field) {
	p.tok("(")
	for i, f := range fields {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.field(f)
	}
	p.tok(")")
}

func (p *printer) field(f *ast.Field) {
	if f.Name == nil {
		p.inlineAttrs(f.Attrs)
		p.vis(f.Vis)
		p.typ(f.Type)
		return
	}
	p.outerAttrs(f.Attrs)
	p.vis(f.Vis)
	p.ident(f.Name)
	p.tok(":")
	p.space()
	p.typ(f.Type)
}

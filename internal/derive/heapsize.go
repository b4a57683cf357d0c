//go:build !minimal

package derive

import (
	"text/template"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/expand"
	"github.com/malphas-lang/synx/internal/printer"
)

const heapSizeTemplate = `
impl{{.ImplGenerics}} HeapSize for {{.SelfType}} {{.WhereClause}} {
    fn heap_size_of_children(&self) -> usize {
    {{- if eq .Kind "enum"}}
        match self {
        {{- range .Variants}}
            {{.Pattern}} => 0{{range .Fields}} + HeapSize::heap_size_of_children({{.Binding}}){{end}},
        {{- end}}
        }
    {{- else}}
        0{{range .Fields}} + HeapSize::heap_size_of_children(&self.{{.Member}}){{end}}
    {{- end}}
    }
}
`

var heapSizeTmpl = template.Must(ParseTemplate("HeapSize", heapSizeTemplate))

// HeapSize derives `impl HeapSize` summing the heap size of every field.
// Each type parameter gets a `HeapSize` bound in the impl header.
type HeapSize struct {
	PrintOptions []printer.Option
}

// Transform implements expand.Transformer.
func (h HeapSize) Transform(in *ast.MacroInput) (*expand.Expansion, error) {
	bounded := *in
	bounded.Generics = addTraitBound(in.Generics, "HeapSize")

	decls, err := Quote(heapSizeTmpl, NewTemplateData(&bounded, h.PrintOptions...))
	if err != nil {
		return nil, err
	}
	return expand.Keep(in, decls...), nil
}

// addTraitBound returns a copy of g in which every type parameter is bounded
// by trait. Parameters already naming it are left alone.
func addTraitBound(g *ast.Generics, trait string) *ast.Generics {
	if g == nil {
		return nil
	}
	out := *g
	out.TypeParams = make([]*ast.TypeParam, len(g.TypeParams))
	for i, tp := range g.TypeParams {
		cp := *tp
		if !hasTraitBound(tp.Bounds, trait) {
			cp.Bounds = append(append([]ast.TypeParamBound(nil), tp.Bounds...), ast.NewTraitBound(ast.NewPath(trait)))
		}
		out.TypeParams[i] = &cp
	}
	return &out
}

func hasTraitBound(bounds []ast.TypeParamBound, trait string) bool {
	for _, b := range bounds {
		if tb, ok := b.(*ast.TraitBound); ok && !tb.Maybe && tb.Path.IsIdent(trait) {
			return true
		}
	}
	return false
}

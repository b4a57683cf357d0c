//go:build !minimal

package derive

import (
	"fmt"
	"text/template"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/expand"
	"github.com/malphas-lang/synx/internal/parser"
	"github.com/malphas-lang/synx/internal/printer"
)

const builderTemplate = `
{{.Vis}}struct {{.Name}}Builder{{.ImplGenerics}} {{.WhereClause}} {
{{- range .Fields}}
    {{.Name}}: Option<{{.Type}}>,
{{- end}}
}

impl{{.ImplGenerics}} {{.SelfType}} {{.WhereClause}} {
    {{.Vis}}fn builder() -> {{.Name}}Builder{{.TypeGenerics}} {
        {{.Name}}Builder {
        {{- range .Fields}}
            {{.Name}}: None,
        {{- end}}
        }
    }
}

impl{{.ImplGenerics}} {{.Name}}Builder{{.TypeGenerics}} {{.WhereClause}} {
{{- range .Fields}}
    pub fn {{.Name}}(&mut self, {{.Name}}: {{.Type}}) -> &mut Self {
        self.{{.Name}} = Some({{.Name}});
        self
    }
{{end}}
    pub fn build(&mut self) -> Result<{{.SelfType}}, String> {
        Ok({{.Name}} {
        {{- range .Fields}}
        {{- if .Default}}
            {{.Name}}: self.{{.Name}}.take().unwrap_or_default(),
        {{- else}}
            {{.Name}}: self.{{.Name}}.take().ok_or_else(|| String::from({{quote (printf "field %s is not set" .Name)}}))?,
        {{- end}}
        {{- end}}
        })
    }
}
`

var builderTmpl = template.Must(ParseTemplate("Builder", builderTemplate))

type builderField struct {
	FieldData
	Default bool
}

type builderData struct {
	*TemplateData
	Fields []builderField
}

// Builder derives a FooBuilder type with one setter per field and a build
// method that fails when a required field was never set. Fields marked
// `#[builder(default)]` fall back to Default::default().
type Builder struct {
	PrintOptions []printer.Option
}

// Transform implements expand.Transformer.
func (b Builder) Transform(in *ast.MacroInput) (*expand.Expansion, error) {
	body, ok := in.Body.(*ast.StructBody)
	if !ok || body.Style != ast.StructNamed {
		return nil, &UnsupportedError{Derive: "Builder", Decl: in.Name.Name, Reason: "only structs with named fields are supported"}
	}

	data := builderData{TemplateData: NewTemplateData(in, b.PrintOptions...)}
	fields := make([]*ast.Field, len(body.Fields))
	for i, f := range body.Fields {
		def, attrs, err := builderOptions(f)
		if err != nil {
			return nil, fmt.Errorf("field `%s`: %w", f.Name.Name, err)
		}
		data.Fields = append(data.Fields, builderField{FieldData: data.TemplateData.Fields[i], Default: def})

		cp := *f
		cp.Attrs = attrs
		fields[i] = &cp
	}

	decls, err := Quote(builderTmpl, data)
	if err != nil {
		return nil, err
	}

	out := *in
	out.Body = &ast.StructBody{Pos: body.Pos, Style: body.Style, Fields: fields}
	return expand.Keep(&out, decls...), nil
}

// builderOptions reads the `#[builder(...)]` attributes of f and returns the
// remaining attributes.
func builderOptions(f *ast.Field) (def bool, rest []*ast.Attribute, err error) {
	for _, a := range f.Attrs {
		if a.Style != ast.AttrOuter || !a.Path.IsIdent("builder") {
			rest = append(rest, a)
			continue
		}
		meta, err := parser.ParseMeta(a)
		if err != nil {
			return false, nil, err
		}
		list, ok := meta.(*ast.MetaList)
		if !ok {
			return false, nil, fmt.Errorf("expected #[builder(...)], found `%s`", printer.Attribute(a))
		}
		for _, n := range list.Nested {
			w, ok := n.(*ast.MetaWord)
			if !ok || !w.Path.IsIdent("default") {
				return false, nil, fmt.Errorf("unknown builder option `%s`", printer.Print(n))
			}
			def = true
		}
	}
	return def, rest, nil
}

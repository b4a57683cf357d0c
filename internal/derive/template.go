//go:build !minimal

// Package derive provides the built-in derive transformers and a template
// based transformer for derives declared in configuration.
//
// Transformers write the generated items as source text through
// text/template and parse the result back with parser.ParseFile, so
// everything they emit has already been through the grammar.
package derive

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/expand"
	"github.com/malphas-lang/synx/internal/parser"
	"github.com/malphas-lang/synx/internal/printer"
)

// TemplateData is the value a derive template is executed with.
type TemplateData struct {
	Name         string
	Vis          string // "pub ", "pub(crate) " or empty
	Kind         string // "struct" or "enum"
	Style        string // "named", "tuple" or "unit"; empty for enums
	Generics     string // <'a, T: Clone = u8>
	ImplGenerics string // <'a, T: Clone>
	TypeGenerics string // <'a, T>
	WhereClause  string // where T: Debug
	SelfType     string // Name<'a, T>
	Fields       []FieldData
	Variants     []VariantData
}

// FieldData describes one field of a struct or variant.
type FieldData struct {
	Index int
	Name  string // empty for tuple fields
	Type  string
	Vis   string
	// Member is the accessor after `self.`: the name or the index.
	Member string
	// Binding is the identifier used when the field is bound in a pattern.
	Binding string
	Attrs   []string
}

// VariantData describes one enum variant.
type VariantData struct {
	Name   string
	Style  string
	Fields []FieldData
	// Pattern matches the variant and binds every field to its Binding.
	Pattern string
}

// NewTemplateData flattens in into the strings a template needs.
func NewTemplateData(in *ast.MacroInput, opts ...printer.Option) *TemplateData {
	ig, tg, wc := ast.SplitForImpl(in.Generics)
	data := &TemplateData{
		Name:         in.Name.Name,
		Vis:          printer.Print(&in.Vis, opts...),
		Kind:         in.Kind(),
		Generics:     printer.Generics(in.Generics, opts...),
		ImplGenerics: printer.ImplGenerics(ig, opts...),
		TypeGenerics: printer.TypeGenerics(tg, opts...),
		WhereClause:  printer.WhereClause(wc, opts...),
	}
	data.SelfType = data.Name + data.TypeGenerics

	switch b := in.Body.(type) {
	case *ast.StructBody:
		data.Style = b.Style.String()
		data.Fields = fieldData(b.Fields, opts)
	case *ast.EnumBody:
		for _, v := range b.Variants {
			vd := VariantData{
				Name:   v.Name.Name,
				Style:  v.Style.String(),
				Fields: fieldData(v.Fields, opts),
			}
			vd.Pattern = variantPattern(data.Name, vd)
			data.Variants = append(data.Variants, vd)
		}
	}
	return data
}

func fieldData(fields []*ast.Field, opts []printer.Option) []FieldData {
	out := make([]FieldData, 0, len(fields))
	for i, f := range fields {
		fd := FieldData{
			Index: i,
			Type:  printer.Type(f.Type, opts...),
			Vis:   printer.Print(&f.Vis, opts...),
		}
		if f.Name != nil {
			fd.Name = f.Name.Name
			fd.Member = f.Name.Name
			fd.Binding = f.Name.Name
		} else {
			fd.Member = strconv.Itoa(i)
			fd.Binding = "f" + strconv.Itoa(i)
		}
		for _, a := range f.Attrs {
			fd.Attrs = append(fd.Attrs, printer.Attribute(a, opts...))
		}
		out = append(out, fd)
	}
	return out
}

func variantPattern(enum string, v VariantData) string {
	path := enum + "::" + v.Name
	switch v.Style {
	case "tuple":
		binds := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			binds[i] = f.Binding
		}
		return path + "(" + strings.Join(binds, ", ") + ")"
	case "named":
		binds := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			binds[i] = f.Binding
		}
		return path + " { " + strings.Join(binds, ", ") + " }"
	default:
		return path
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower":      strings.ToLower,
		"upper":      strings.ToUpper,
		"join":       strings.Join,
		"quote":      strconv.Quote,
		"snakeCase":  snakeCase,
		"notLast":    func(i, length int) bool { return i < length-1 },
		"hasPrefix":  strings.HasPrefix,
		"trimSpace":  strings.TrimSpace,
		"isNamed":    func(style string) bool { return style == "named" },
		"isTuple":    func(style string) bool { return style == "tuple" },
		"isUnit":     func(style string) bool { return style == "unit" },
		"fieldCount": func(fs []FieldData) int { return len(fs) },
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseTemplate parses a derive template with the derive helper functions.
func ParseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	return tmpl, nil
}

// Quote executes tmpl with data and parses the output as a list of
// declarations.
func Quote(tmpl *template.Template, data any) ([]ast.Decl, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %q: %w", tmpl.Name(), err)
	}
	f, err := parser.ParseFile(buf.String(), parser.WithFilename(tmpl.Name()))
	if err != nil {
		return nil, fmt.Errorf("template %q produced invalid source: %w", tmpl.Name(), err)
	}
	if len(f.Attrs) > 0 {
		return nil, fmt.Errorf("template %q produced inner attributes", tmpl.Name())
	}
	return f.Decls, nil
}

// TemplateTransformer is a derive whose output is described by a template.
type TemplateTransformer struct {
	Name     string
	Template *template.Template
	// StructsOnly rejects enums.
	StructsOnly bool
	// ReplaceOriginal drops the annotated declaration from the output.
	ReplaceOriginal bool
}

// NewTemplateTransformer parses text and returns a transformer for name.
func NewTemplateTransformer(name, text string, structsOnly, replaceOriginal bool) (*TemplateTransformer, error) {
	tmpl, err := ParseTemplate(name, text)
	if err != nil {
		return nil, err
	}
	return &TemplateTransformer{
		Name:            name,
		Template:        tmpl,
		StructsOnly:     structsOnly,
		ReplaceOriginal: replaceOriginal,
	}, nil
}

// Transform implements expand.Transformer.
func (t *TemplateTransformer) Transform(in *ast.MacroInput) (*expand.Expansion, error) {
	if t.StructsOnly && !in.IsStruct() {
		return nil, &UnsupportedError{Derive: t.Name, Decl: in.Name.Name, Reason: "only structs are supported"}
	}
	decls, err := Quote(t.Template, NewTemplateData(in))
	if err != nil {
		return nil, err
	}
	if t.ReplaceOriginal {
		return expand.Replace(decls...), nil
	}
	return expand.Keep(in, decls...), nil
}

package ast

// VisKind is the kind of a visibility qualifier.
type VisKind int

const (
	VisInherited  VisKind = iota // no qualifier
	VisPublic                    // pub
	VisCrate                     // pub(crate)
	VisRestricted                // pub(self), pub(super), pub(in path)
)

// Visibility is a visibility qualifier. Path is set for VisRestricted; In
// records the `pub(in path)` spelling.
type Visibility struct {
	Pos
	Kind VisKind
	Path *Path
	In   bool
}

// IsPublic reports whether the qualifier is a bare `pub`.
func (v Visibility) IsPublic() bool { return v.Kind == VisPublic }

// MacroInput is the input of a derive transformer: a struct or enum
// declaration with its attributes, visibility, name and generics.
type MacroInput struct {
	Pos
	Attrs    []*Attribute
	Vis      Visibility
	Name     *Ident
	Generics *Generics
	Body     Body
}

// Body is a StructBody or an EnumBody.
type Body interface {
	Node
	bodyNode()
}

// StructStyle distinguishes named, tuple and unit field lists.
type StructStyle int

const (
	StructNamed StructStyle = iota // { a: T }
	StructTuple                    // (T)
	StructUnit                     // no fields
)

func (s StructStyle) String() string {
	switch s {
	case StructNamed:
		return "named"
	case StructTuple:
		return "tuple"
	default:
		return "unit"
	}
}

// StructBody holds the fields of a struct.
type StructBody struct {
	Pos
	Style  StructStyle
	Fields []*Field
}

// EnumBody holds the variants of an enum.
type EnumBody struct {
	Pos
	Variants []*Variant
}

func (*StructBody) bodyNode() {}
func (*EnumBody) bodyNode()   {}

// Variant is an enum variant with an optional explicit discriminant.
type Variant struct {
	Pos
	Attrs        []*Attribute
	Name         *Ident
	Style        StructStyle
	Fields       []*Field
	Discriminant Expr
}

// Field is a named or positional field. Name is nil for tuple fields.
type Field struct {
	Pos
	Attrs []*Attribute
	Vis   Visibility
	Name  *Ident
	Type  TypeExpr
}

// IsStruct reports whether the input is a struct.
func (m *MacroInput) IsStruct() bool {
	_, ok := m.Body.(*StructBody)
	return ok
}

// IsEnum reports whether the input is an enum.
func (m *MacroInput) IsEnum() bool {
	_, ok := m.Body.(*EnumBody)
	return ok
}

// FieldCount counts struct fields, or the fields of all variants of an enum.
func (m *MacroInput) FieldCount() int {
	switch b := m.Body.(type) {
	case *StructBody:
		return len(b.Fields)
	case *EnumBody:
		n := 0
		for _, v := range b.Variants {
			n += len(v.Fields)
		}
		return n
	}
	return 0
}

// DeriveNames lists the derive entries on the input in attribute order.
func (m *MacroInput) DeriveNames() []string {
	return DeriveNames(m.Attrs)
}

// Kind names the declaration kind, "struct" or "enum".
func (m *MacroInput) Kind() string {
	if m.IsEnum() {
		return "enum"
	}
	return "struct"
}

package ast

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/malphas-lang/synx/internal/lexer"
)

var compareOptions = []cmp.Option{
	cmpopts.IgnoreTypes(lexer.Span{}),
	cmpopts.EquateEmpty(),
}

// Equal reports whether two trees are structurally equal. Source spans are
// ignored, as is the difference between nil and empty lists.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, compareOptions...)
}

// Diff renders the structural differences between two trees, or "" when
// they are Equal.
func Diff(a, b any) string {
	return cmp.Diff(a, b, compareOptions...)
}

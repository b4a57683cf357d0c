//go:build !minimal

package expand

import (
	"errors"
	"fmt"

	"github.com/malphas-lang/synx/internal/diag"
	"github.com/malphas-lang/synx/internal/lexer"
)

var (
	// ErrDuplicateName is wrapped by a RegistrationError for a name that is
	// already registered.
	ErrDuplicateName = errors.New("name already registered")
	// ErrEmptyName is wrapped by a RegistrationError for an empty name.
	ErrEmptyName = errors.New("empty transformer name")
	// ErrNilTransformer is wrapped by a RegistrationError for a nil transformer.
	ErrNilTransformer = errors.New("nil transformer")
)

// RegistrationError reports a rejected Register call. The registry is left
// unchanged.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register transformer %q: %v", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// TransformerError reports a failing transformer together with the
// declaration it was applied to.
type TransformerError struct {
	Transformer string
	Decl        string
	Span        lexer.Span
	Err         error
}

func (e *TransformerError) Error() string {
	msg := fmt.Sprintf("transformer %q failed on `%s`: %v", e.Transformer, e.Decl, e.Err)
	if e.Span.Line > 0 {
		msg = e.Span.String() + ": " + msg
	}
	return msg
}

func (e *TransformerError) Unwrap() error { return e.Err }

// ToDiagnostic converts the failure into a shared diagnostic pointing at the
// declaration.
func (e *TransformerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageExpand,
		Severity: diag.SeverityError,
		Code:     diag.CodeExpandTransformerFailed,
		Message:  fmt.Sprintf("derive `%s` failed: %v", e.Transformer, e.Err),
		Span:     e.Span.Diag(),
	}.WithNote(fmt.Sprintf("while expanding `%s`", e.Decl))
}

// IOError reports an unreadable source or an unwritable destination.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

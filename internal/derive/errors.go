//go:build !minimal

package derive

import (
	"errors"
	"fmt"
)

// ErrUnknownBuiltin is returned by RegisterBuiltins for a name that has no
// built-in transformer.
var ErrUnknownBuiltin = errors.New("unknown built-in derive")

// UnsupportedError reports a derive applied to a declaration shape it cannot
// handle.
type UnsupportedError struct {
	Derive string
	Decl   string
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("derive `%s` cannot be applied to `%s`: %s", e.Derive, e.Decl, e.Reason)
}

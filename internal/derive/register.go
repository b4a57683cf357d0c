//go:build !minimal

package derive

import (
	"fmt"
	"slices"

	"github.com/malphas-lang/synx/internal/expand"
	"github.com/malphas-lang/synx/internal/printer"
)

var builtins = map[string]func(opts []printer.Option) expand.Transformer{
	"Builder":  func(opts []printer.Option) expand.Transformer { return Builder{PrintOptions: opts} },
	"HeapSize": func(opts []printer.Option) expand.Transformer { return HeapSize{PrintOptions: opts} },
}

// Builtins returns the names of the built-in derives in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisterBuiltins registers the named built-in derives with reg, or all of
// them when names is empty.
func RegisterBuiltins(reg *expand.Registry, names []string, opts ...printer.Option) error {
	if len(names) == 0 {
		names = Builtins()
	}
	for _, name := range names {
		mk, ok := builtins[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBuiltin, name)
		}
		if err := reg.Register(name, mk(opts)); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTemplate parses text and registers it under name.
func RegisterTemplate(reg *expand.Registry, name, text string, structsOnly, replaceOriginal bool) error {
	t, err := NewTemplateTransformer(name, text, structsOnly, replaceOriginal)
	if err != nil {
		return err
	}
	return reg.Register(name, t)
}

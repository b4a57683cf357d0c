//go:build !minimal

// Package expand runs registered derive transformers over a source file and
// writes the expanded file.
//
// A Registry is an ordinary value owned by the caller. Independent
// registries do not share state, and a single registry may serve concurrent
// expansions once its transformers are registered.
package expand

import (
	"log/slog"
	"sync"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/printer"
)

// Transformer generates declarations for a struct or enum that names it in a
// derive attribute.
type Transformer interface {
	Transform(in *ast.MacroInput) (*Expansion, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(in *ast.MacroInput) (*Expansion, error)

// Transform calls f(in).
func (f TransformerFunc) Transform(in *ast.MacroInput) (*Expansion, error) {
	return f(in)
}

// Expansion is the result of one transformer invocation. Original is the
// declaration to keep in the output, possibly modified; nil removes it.
// Generated declarations are written right after it.
type Expansion struct {
	Original  *ast.MacroInput
	Generated []ast.Decl
}

// Keep returns an expansion that retains in unchanged and appends generated.
func Keep(in *ast.MacroInput, generated ...ast.Decl) *Expansion {
	return &Expansion{Original: in, Generated: generated}
}

// Replace returns an expansion that drops the original declaration.
func Replace(generated ...ast.Decl) *Expansion {
	return &Expansion{Generated: generated}
}

// Registry maps derive names to transformers.
type Registry struct {
	mu           sync.RWMutex
	names        []string
	transformers map[string]Transformer

	logger    *slog.Logger
	metrics   *Metrics
	printOpts []printer.Option
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for expansion runs. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records expansion runs in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithPrinterOptions sets the options used to print expanded files.
func WithPrinterOptions(opts ...printer.Option) Option {
	return func(r *Registry) { r.printOpts = append(r.printOpts, opts...) }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		transformers: make(map[string]Transformer),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates name with t. Names match derive entries exactly, so a
// transformer meant for `#[derive(a::B)]` registers as "a::B". Registering a
// name twice fails with a *RegistrationError and keeps the first transformer.
func (r *Registry) Register(name string, t Transformer) error {
	switch {
	case name == "":
		return &RegistrationError{Name: name, Err: ErrEmptyName}
	case t == nil:
		return &RegistrationError{Name: name, Err: ErrNilTransformer}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transformers[name]; ok {
		return &RegistrationError{Name: name, Err: ErrDuplicateName}
	}
	r.transformers[name] = t
	r.names = append(r.names, name)
	r.logger.Debug("Transformer registered", "transformer", name)
	return nil
}

// RegisterFunc registers a function as a transformer.
func (r *Registry) RegisterFunc(name string, fn func(in *ast.MacroInput) (*Expansion, error)) error {
	if fn == nil {
		return &RegistrationError{Name: name, Err: ErrNilTransformer}
	}
	return r.Register(name, TransformerFunc(fn))
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Lookup returns the transformer registered under name.
func (r *Registry) Lookup(name string) (Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transformers[name]
	return t, ok
}

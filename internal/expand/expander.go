//go:build !minimal

package expand

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/parser"
	"github.com/malphas-lang/synx/internal/printer"
)

// State is the phase of an expansion run.
type State int

const (
	StateIdle State = iota
	StateParsing
	StateExpanding
	StatePrinting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParsing:
		return "parsing"
	case StateExpanding:
		return "expanding"
	case StatePrinting:
		return "printing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// run tracks one expansion. Runs are not shared between goroutines.
type run struct {
	reg    *Registry
	id     string
	logger *slog.Logger
	state  State
	start  time.Time
}

func (r *Registry) newRun(attrs ...any) *run {
	id := uuid.New().String()
	return &run{
		reg:    r,
		id:     id,
		logger: r.logger.With(append([]any{"run_id", id}, attrs...)...),
		start:  time.Now(),
	}
}

func (ru *run) enter(s State) {
	ru.logger.Debug("Expansion state changed", "from", ru.state.String(), "to", s.String())
	ru.state = s
}

func (ru *run) fail(err error) error {
	ru.enter(StateFailed)
	ru.logger.Error("Expansion failed", "error", err)
	ru.reg.metrics.recordRun(err, time.Since(ru.start))
	return err
}

func (ru *run) done() {
	ru.enter(StateDone)
	ru.reg.metrics.recordRun(nil, time.Since(ru.start))
}

// ExpandFile parses src, runs the registered transformers and writes the
// printed result to dst. On any failure dst is left untouched.
func (r *Registry) ExpandFile(src, dst string) error {
	ru := r.newRun("src", src, "dst", dst)

	data, err := os.ReadFile(src)
	if err != nil {
		return ru.fail(&IOError{Op: "read", Path: src, Err: err})
	}

	out, err := ru.expandText(src, string(data))
	if err != nil {
		return ru.fail(err)
	}

	if err := writeFileAtomic(dst, []byte(out), 0o644); err != nil {
		return ru.fail(&IOError{Op: "write", Path: dst, Err: err})
	}

	ru.done()
	ru.logger.Info("Expansion written", "bytes", len(out), "elapsed", time.Since(ru.start))
	return nil
}

// ExpandSource expands text in memory and returns the printed file. filename
// is used in spans and diagnostics only.
func (r *Registry) ExpandSource(filename, text string) (string, error) {
	ru := r.newRun("src", filename)
	out, err := ru.expandText(filename, text)
	if err != nil {
		return "", ru.fail(err)
	}
	ru.done()
	return out, nil
}

// Expand runs the registered transformers over f and returns the expanded
// file. f itself is not modified.
func (r *Registry) Expand(f *ast.File) (*ast.File, error) {
	ru := r.newRun()
	ru.enter(StateExpanding)
	out, err := ru.expandFile(f)
	if err != nil {
		return nil, ru.fail(err)
	}
	ru.done()
	return out, nil
}

func (ru *run) expandText(filename, text string) (string, error) {
	ru.enter(StateParsing)
	f, err := parser.ParseFile(text, parser.WithFilename(filename))
	if err != nil {
		return "", err
	}

	ru.enter(StateExpanding)
	out, err := ru.expandFile(f)
	if err != nil {
		return "", err
	}

	ru.enter(StatePrinting)
	return printer.File(out, ru.reg.printOpts...), nil
}

func (ru *run) expandFile(f *ast.File) (*ast.File, error) {
	decls, err := ru.expandDecls(f.Decls)
	if err != nil {
		return nil, err
	}
	return &ast.File{Pos: f.Pos, Attrs: f.Attrs, Decls: decls}, nil
}

func (ru *run) expandDecls(decls []ast.Decl) ([]ast.Decl, error) {
	out := make([]ast.Decl, 0, len(decls))
	for _, d := range decls {
		if m, ok := d.(*ast.ModDecl); ok && m.Inline {
			inner, err := ru.expandDecls(m.Decls)
			if err != nil {
				return nil, err
			}
			cp := *m
			cp.Decls = inner
			out = append(out, &cp)
			continue
		}

		in, ok := ast.MacroInputFromDecl(d)
		if !ok {
			out = append(out, d)
			continue
		}
		names := ru.matched(in)
		if len(names) == 0 {
			out = append(out, d)
			continue
		}
		expanded, err := ru.expandDecl(in, names)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// matched returns the registered derive names of in, in marker order and
// without repeats.
func (ru *run) matched(in *ast.MacroInput) []string {
	var names []string
	for _, name := range ast.DeriveNames(in.Attrs) {
		if _, ok := ru.reg.Lookup(name); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func (ru *run) expandDecl(in *ast.MacroInput, names []string) ([]ast.Decl, error) {
	declName := in.Name.Name
	cur := stripDerives(in, names)

	var generated []ast.Decl
	for _, name := range names {
		if cur == nil {
			ru.logger.Debug("Original dropped, skipping transformer", "transformer", name, "decl", declName)
			continue
		}
		t, _ := ru.reg.Lookup(name)
		exp, err := invoke(t, cur)
		if err == nil {
			err = checkExpansion(exp)
		}
		n := 0
		if exp != nil {
			n = len(exp.Generated)
		}
		ru.reg.metrics.recordInvocation(name, n, err)
		if err != nil {
			return nil, &TransformerError{
				Transformer: name,
				Decl:        declName,
				Span:        in.Span(),
				Err:         err,
			}
		}
		ru.logger.Debug("Transformer applied", "transformer", name, "decl", declName, "generated", n)
		cur = exp.Original
		generated = append(generated, exp.Generated...)
	}

	out := make([]ast.Decl, 0, len(generated)+1)
	if cur != nil {
		out = append(out, cur.Decl())
	}
	return append(out, generated...), nil
}

func invoke(t Transformer, in *ast.MacroInput) (exp *Expansion, err error) {
	defer func() {
		if v := recover(); v != nil {
			exp, err = nil, fmt.Errorf("panic: %v", v)
		}
	}()
	return t.Transform(in)
}

var errNilExpansion = errors.New("transformer returned no expansion")

func checkExpansion(exp *Expansion) error {
	if exp == nil {
		return errNilExpansion
	}
	for i, d := range exp.Generated {
		if d == nil {
			return fmt.Errorf("generated declaration %d is nil", i)
		}
	}
	if exp.Original != nil && exp.Original.Decl() == nil {
		return errors.New("retained original has no body")
	}
	return nil
}

// stripDerives returns a copy of in whose derive attributes no longer name
// any of names. A derive attribute left empty is dropped.
func stripDerives(in *ast.MacroInput, names []string) *ast.MacroInput {
	attrs := make([]*ast.Attribute, 0, len(in.Attrs))
	for _, a := range in.Attrs {
		list, ok := a.DeriveList()
		if !ok {
			attrs = append(attrs, a)
			continue
		}
		kept := slices.DeleteFunc(slices.Clone(list), func(n string) bool {
			return slices.Contains(names, n)
		})
		switch {
		case len(kept) == len(list):
			attrs = append(attrs, a)
		case len(kept) > 0:
			na := ast.NewDeriveAttribute(kept)
			na.Pos = a.Pos
			attrs = append(attrs, na)
		}
	}
	cp := *in
	cp.Attrs = attrs
	return &cp
}

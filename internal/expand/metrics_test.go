//go:build !minimal

package expand

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/parser"
)

func TestMetricsRecordExpansions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := NewRegistry(WithMetrics(m), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	err := r.RegisterFunc("Gen", func(in *ast.MacroInput) (*Expansion, error) {
		a, err := parser.ParseDecl(fmt.Sprintf("impl %s {}", in.Name.Name))
		if err != nil {
			return nil, err
		}
		b, err := parser.ParseDecl(fmt.Sprintf("fn make_%s() {}", in.Name.Name))
		if err != nil {
			return nil, err
		}
		return Keep(in, a, b), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterFunc("Fail", func(*ast.MacroInput) (*Expansion, error) {
		return nil, errors.New("no")
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := r.ExpandSource("a.rs", "#[derive(Gen)] struct A; #[derive(Gen)] struct B;"); err != nil {
		t.Fatalf("ExpandSource: %v", err)
	}
	if _, err := r.ExpandSource("b.rs", "#[derive(Fail)] struct C;"); err == nil {
		t.Fatalf("expected failure")
	}

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"files success", m.files.WithLabelValues("success"), 1},
		{"files error", m.files.WithLabelValues("error"), 1},
		{"gen invocations", m.invocations.WithLabelValues("Gen", "success"), 2},
		{"fail invocations", m.invocations.WithLabelValues("Fail", "error"), 1},
		{"generated", m.generated.WithLabelValues("Gen"), 4},
	}
	for _, tc := range checks {
		if got := testutil.ToFloat64(tc.c); got != tc.want {
			t.Fatalf("%s = %v, want %v", tc.name, got, tc.want)
		}
	}

	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Fatalf("expected one duration histogram, got %d", n)
	}
	if n, err := testutil.GatherAndCount(reg, "synx_expand_files_total"); err != nil || n != 2 {
		t.Fatalf("GatherAndCount = %d, %v", n, err)
	}
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	m.recordRun(nil, 0)
	m.recordInvocation("x", 3, errors.New("x"))
}

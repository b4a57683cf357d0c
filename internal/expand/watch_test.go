//go:build !minimal

package expand_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/expand"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := expand.NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	done := make(chan struct{}, 1)
	for i := 0; i < 10; i++ {
		d.Trigger(func() {
			calls.Add(1)
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced callback never ran")
	}
	time.Sleep(60 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected one callback, got %d", n)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := expand.NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(80 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("expected no callbacks after Stop, got %d", n)
	}
}

func TestNewWatcherRequiresPath(t *testing.T) {
	if _, err := expand.NewWatcher(expand.WatchConfig{}, nil); err == nil {
		t.Fatalf("expected an error for an empty path")
	}
}

func waitForFile(t *testing.T, path, substr string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && strings.Contains(string(data), substr) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	data, _ := os.ReadFile(path)
	t.Fatalf("timed out waiting for %q in %s, last content:\n%s", substr, path, data)
}

func TestWatchFileReexpandsOnChange(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.rs")
	dst := filepath.Join(dir, "out.rs")
	if err := os.WriteFile(src, []byte("#[derive(Gen)] struct First;"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newRegistry(t)
	mustRegister(t, r, "Gen", implGen)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.WatchFile(ctx, src, dst, expand.WatchConfig{Debounce: 10 * time.Millisecond})
	}()

	waitForFile(t, dst, "impl First")

	// Give the watcher time to register the directory before changing the source.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(src, []byte("#[derive(Gen)] struct Second;"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForFile(t, dst, "impl Second")

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("WatchFile: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("WatchFile did not return after cancel")
	}
}

func TestWatchFileIgnoresItsOwnOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.rs")
	dst := filepath.Join(dir, "out.rs")
	if err := os.WriteFile(src, []byte("#[derive(Gen)] struct First;"), 0o644); err != nil {
		t.Fatal(err)
	}

	var runs atomic.Int32
	r := newRegistry(t)
	mustRegister(t, r, "Gen", func(in *ast.MacroInput) (*expand.Expansion, error) {
		runs.Add(1)
		return implGen(in)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.WatchFile(ctx, src, dst, expand.WatchConfig{
			Debounce:   20 * time.Millisecond,
			Extensions: []string{".rs"},
		})
	}()

	waitForFile(t, dst, "impl First")
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(src, []byte("#[derive(Gen)] struct Second;"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForFile(t, dst, "impl Second")

	settled := runs.Load()
	time.Sleep(300 * time.Millisecond)
	if n := runs.Load(); n != settled {
		t.Fatalf("writing the output retriggered expansion: %d runs, then %d", settled, n)
	}
	if settled > 3 {
		t.Fatalf("expected at most three runs for one edit, got %d", settled)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("WatchFile: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("WatchFile did not return after cancel")
	}
}

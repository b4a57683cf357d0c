package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runSynx(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpandCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	src := writeFile(t, dir, "model.rs", "#[derive(HeapSize, Debug)]\nstruct Model { name: String }\n")
	dst := filepath.Join(dir, "model.out.rs")
	metrics := filepath.Join(dir, "synx.prom")

	code, stdout, stderr := runSynx(t, "expand", src, dst, "--metrics-file", metrics)
	if code != 0 {
		t.Fatalf("expand exited %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "expanded") {
		t.Fatalf("unexpected stdout %q", stdout)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if !strings.Contains(string(data), "impl HeapSize for Model") || !strings.Contains(string(data), "#[derive(Debug)]") {
		t.Fatalf("unexpected expansion:\n%s", data)
	}

	prom, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), `synx_expand_files_total{result="success"} 1`) {
		t.Fatalf("metrics file misses the run counter:\n%s", prom)
	}
}

func TestExpandCommandWithConfiguredTemplate(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "synx.yaml", `
logging:
  level: debug
  format: json
printer:
  indent: 2
expand:
  builtins: [Builder]
  derives:
    - name: Describe
      template: |
        impl{{.ImplGenerics}} Describe for {{.SelfType}} {{.WhereClause}} {
            fn describe() -> &'static str { {{quote .Name}} }
        }
`)
	src := writeFile(t, dir, "in.rs", "#[derive(Describe)]\nstruct Point { x: i32 }\n")
	dst := filepath.Join(dir, "out.rs")

	code, _, stderr := runSynx(t, "-c", cfg, "expand", src, dst)
	if code != 0 {
		t.Fatalf("expand exited %d: %s", code, stderr)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "impl Describe for Point") || !strings.Contains(string(data), "\n  x: i32,") {
		t.Fatalf("unexpected expansion:\n%s", data)
	}
	if !strings.Contains(stderr, `"run_id"`) {
		t.Fatalf("expected JSON debug logs with run ids, got:\n%s", stderr)
	}
}

func TestExpandCommandTransformerFailure(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	src := writeFile(t, dir, "in.rs", "#[derive(Builder)]\nenum Mode { A }\n")
	dst := filepath.Join(dir, "out.rs")

	code, _, stderr := runSynx(t, "expand", src, dst)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "Builder") || !strings.Contains(stderr, "Mode") {
		t.Fatalf("expected a diagnostic naming the derive and declaration, got:\n%s", stderr)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatalf("dst must not be written on failure, stat err=%v", err)
	}
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "lib.rs", "fn  main( ) { let x=1 ; }")

	code, stdout, stderr := runSynx(t, "fmt", path)
	if code != 0 {
		t.Fatalf("fmt exited %d: %s", code, stderr)
	}
	want := "fn main() {\n    let x = 1;\n}\n"
	if stdout != want {
		t.Fatalf("unexpected output %q, want %q", stdout, want)
	}

	if code, _, stderr := runSynx(t, "fmt", "-w", path); code != 0 {
		t.Fatalf("fmt -w exited %d: %s", code, stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Fatalf("file not rewritten: %q", data)
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	typ := writeFile(t, dir, "type.txt", "HashMap<K,Vec<V>>")

	code, stdout, stderr := runSynx(t, "parse", "--rule", "type", typ)
	if code != 0 {
		t.Fatalf("parse exited %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "ok (HashMap<K, Vec<V>>)") {
		t.Fatalf("unexpected stdout %q", stdout)
	}

	bad := writeFile(t, dir, "bad.rs", "struct S {\n    a\n}\n")
	code, _, stderr = runSynx(t, "parse", bad)
	if code != 1 {
		t.Fatalf("expected failure for invalid source, got %d", code)
	}
	if !strings.Contains(stderr, "bad.rs:") || !strings.Contains(stderr, "|") {
		t.Fatalf("expected a source snippet diagnostic, got:\n%s", stderr)
	}

	code, _, stderr = runSynx(t, "parse", "--rule", "nope", typ)
	if code != 1 || !strings.Contains(stderr, "unknown rule") {
		t.Fatalf("expected unknown rule error, got %d: %s", code, stderr)
	}
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "lib.rs", "struct S<'a, T: Clone = u8> where T: Debug { x: &'a T }\nmod m { enum E {} }\nfn f() {}\n")

	code, stdout, stderr := runSynx(t, "split", path)
	if code != 0 {
		t.Fatalf("split exited %d: %s", code, stderr)
	}
	for _, want := range []string{
		"struct S\n",
		"  impl:  <'a, T: Clone>\n",
		"  type:  <'a, T>\n",
		"  where: where T: Debug\n",
		"m::enum E\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("missing %q in output:\n%s", want, stdout)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	chdir(t, t.TempDir())

	code, stdout, _ := runSynx(t, "version")
	if code != 0 || !strings.HasPrefix(stdout, "synx "+Version) {
		t.Fatalf("unexpected version output (%d): %q", code, stdout)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "synx.yaml", "logging:\n  level: loud\n")

	code, _, stderr := runSynx(t, "-c", cfg, "version")
	if code != 1 || !strings.Contains(stderr, "config error") || !strings.Contains(stderr, "logging.level") {
		t.Fatalf("expected config error, got %d: %s", code, stderr)
	}
}

package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/malphas-lang/synx/internal/diag"
	"github.com/malphas-lang/synx/internal/lexer"
)

func TestFromLexerError(t *testing.T) {
	err := lexer.LexerError{
		Kind:    lexer.ErrUnterminatedString,
		Message: "unterminated string literal",
		Span: lexer.Span{
			Line:   1,
			Column: 3,
			Start:  2,
			End:    6,
		},
	}

	diagnostic := err.ToDiagnostic()

	if diagnostic.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, diagnostic.Stage)
	}
	if diagnostic.Code != diag.CodeLexerUnterminatedString {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerUnterminatedString, diagnostic.Code)
	}
	if diagnostic.Message != err.Message {
		t.Fatalf("expected message %q, got %q", err.Message, diagnostic.Message)
	}
}

func TestFormatterRendersSnippet(t *testing.T) {
	src := "struct S {\n    a: u8,\n    a: u16,\n}\n"

	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseInvalidInput,
		Message:  "duplicate field `a`",
	}.
		WithPrimarySpan(diag.Span{Filename: "s.rs", Line: 3, Column: 5, Start: 26, End: 27}, "redeclared here").
		WithSecondarySpan(diag.Span{Filename: "s.rs", Line: 2, Column: 5, Start: 15, End: 16}, "first declared here").
		WithHelp("rename one of the fields")

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.AddSource("s.rs", src)
	f.Format(d)

	out := buf.String()
	for _, want := range []string{
		"error[PARSE_INVALID_INPUT]: duplicate field `a`",
		"  --> s.rs:2:5",
		" 3 |     a: u16,",
		"   |     ^ redeclared here",
		"   |     ~",
		"   | first declared here",
		"help: rename one of the fields",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatterWithoutSourceFallsBack(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.Format(diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  "no location",
	}.WithNote("nothing to show"))

	out := buf.String()
	if !strings.HasPrefix(out, "warning: no location\n") {
		t.Fatalf("unexpected header in %q", out)
	}
	if !strings.Contains(out, "= note: nothing to show") {
		t.Fatalf("expected note in %q", out)
	}
}

package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/malphas-lang/synx/internal/diag"
)

func TestLexerErrors_UnterminatedString(t *testing.T) {
	input := `"hello`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if tok.Raw != `"hello` {
		t.Fatalf("expected raw token %q, got %q", `"hello`, tok.Raw)
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}

	err := l.Errors[0]
	if err.Kind != ErrUnterminatedString {
		t.Fatalf("expected ErrUnterminatedString, got %v", err.Kind)
	}
	if err.Message != "unterminated string literal" {
		t.Fatalf("unexpected error message %q", err.Message)
	}
	if err.Span.Line != 1 || err.Span.Column != 1 {
		t.Fatalf("expected span line=1 column=1, got line=%d column=%d", err.Span.Line, err.Span.Column)
	}
	if err.Span.Start != 0 || err.Span.End != len(input) {
		t.Fatalf("expected span [0,%d), got [%d,%d)", len(input), err.Span.Start, err.Span.End)
	}
}

func TestLexerErrors_Table(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    LexerErrorKind
		message string
	}{
		{"hex escape out of range", `"\x80"`, ErrInvalidEscape, "out of range hex escape"},
		{"short hex escape", `"\x4"`, ErrInvalidEscape, "numeric character escape is too short"},
		{"unicode escape too long", `"\u{1234567}"`, ErrInvalidEscape, "unicode escape must have 1 to 6 hex digits"},
		{"unicode escape not a scalar", `'\u{D800}'`, ErrInvalidEscape, "invalid unicode character escape"},
		{"unicode escape beyond range", `"\u{110000}"`, ErrInvalidEscape, "invalid unicode character escape"},
		{"unicode escape in byte string", `b"\u{41}"`, ErrInvalidEscape, "unicode escape in byte literal"},
		{"unknown escape", `"\q"`, ErrInvalidEscape, "unknown character escape"},
		{"non-ascii byte", `b'é'`, ErrInvalidChar, "non-ASCII character in byte literal"},
		{"non-ascii raw byte string", `br"é"`, ErrInvalidChar, "non-ASCII character in raw byte string"},
		{"empty char", `''`, ErrInvalidChar, "empty character literal"},
		{"multi char", `'ab'`, ErrInvalidChar, "character literal may only contain one codepoint"},
		{"binary digit", `0b102`, ErrInvalidNumber, "invalid digit"},
		{"octal digit", `0o8`, ErrInvalidNumber, "invalid digit"},
		{"empty hex", `0x`, ErrInvalidNumber, "no valid digits"},
		{"empty exponent", `1e`, ErrInvalidNumber, "expected at least one digit in exponent"},
		{"unterminated raw string", `r#"abc"`, ErrUnterminatedString, "unterminated raw string literal"},
		{"unterminated block comment", `/* never closed`, ErrUnterminatedBlockComment, "unterminated block comment"},
		{"illegal rune", "§", ErrIllegalRune, "illegal character"},
		{"keyword lifetime", `'fn`, ErrInvalidChar, "lifetimes cannot use keyword names"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for tok := l.NextToken(); tok.Type != EOF; tok = l.NextToken() {
			}
			if len(l.Errors) == 0 {
				t.Fatalf("expected a lexer error for %q", tt.input)
			}
			err := l.Errors[0]
			if err.Kind != tt.kind {
				t.Fatalf("expected kind %v, got %v (%s)", tt.kind, err.Kind, err.Message)
			}
			if !strings.Contains(err.Message, tt.message) {
				t.Fatalf("expected message containing %q, got %q", tt.message, err.Message)
			}
		})
	}
}

func TestLexerErrors_ByteFormsAcceptHighHexEscapes(t *testing.T) {
	l := New(`b'\xff' b"\x80\x00"`)
	for tok := l.NextToken(); tok.Type != EOF; tok = l.NextToken() {
		if tok.Type == ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token %q", tok.Raw)
		}
	}
	if len(l.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", l.Errors)
	}
}

func TestLexerError_ToDiagnostic(t *testing.T) {
	err := LexerError{
		Kind:    ErrIllegalRune,
		Message: `illegal character "§"`,
		Span: Span{
			Filename: "lib.rs",
			Line:     2,
			Column:   5,
			Start:    4,
			End:      6,
		},
	}

	diagnostic := err.ToDiagnostic()

	if diagnostic.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, diagnostic.Stage)
	}
	if diagnostic.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, diagnostic.Severity)
	}
	if diagnostic.Code != diag.CodeLexerIllegalRune {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerIllegalRune, diagnostic.Code)
	}

	wantSpan := diag.Span{Filename: "lib.rs", Line: 2, Column: 5, Start: 4, End: 6}
	if diagnostic.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, diagnostic.Span)
	}
	if got := err.Error(); got != `lib.rs:2:5: illegal character "§"` {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestTokenizeReturnsLexerError(t *testing.T) {
	_, err := Tokenize(`struct S { name: "unterminated }`)
	var lexErr *LexerError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexerError, got %T (%v)", err, err)
	}
	if lexErr.Kind != ErrUnterminatedString {
		t.Fatalf("expected ErrUnterminatedString, got %v", lexErr.Kind)
	}
}

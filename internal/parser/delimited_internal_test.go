package parser

import (
	"testing"

	"github.com/malphas-lang/synx/internal/lexer"
)

func newTestParser(t *testing.T, src string) *Parser {
	t.Helper()

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return newParser(toks, streamEnd(toks, ""), &state{})
}

func TestEatSplitsJointOperators(t *testing.T) {
	p := newTestParser(t, ">>= x")

	if !p.eat(lexer.GT) {
		t.Fatalf("expected to split `>` off `>>=`")
	}
	if got := p.peek(); got.Type != lexer.GE || got.Raw != ">=" {
		t.Fatalf("expected remainder `>=`, got %q %q", got.Type, got.Raw)
	}

	c := p.mark()
	if !p.eat(lexer.GT) {
		t.Fatalf("expected to split `>` off `>=`")
	}
	if got := p.peek(); got.Type != lexer.ASSIGN || got.Span.Start != 2 {
		t.Fatalf("expected `=` at offset 2, got %q at %d", got.Type, got.Span.Start)
	}

	p.reset(c)
	if got := p.peek(); got.Type != lexer.GE {
		t.Fatalf("expected reset to restore `>=`, got %q", got.Type)
	}
	if !p.eat(lexer.GE) || !p.at(lexer.IDENT) {
		t.Fatalf("expected to consume `>=` and reach the identifier")
	}
}

func TestPunctuatedAllowsEmpty(t *testing.T) {
	p := newTestParser(t, "")

	res, err := punctuated(p, delimitedConfig{AllowEmpty: true}, func(int) (string, error) {
		t.Fatalf("unexpected element parse invocation for empty list")
		return "", nil
	})
	if err != nil {
		t.Fatalf("expected success for empty list, got %v", err)
	}
	if len(res.Items) != 0 || res.Trailing {
		t.Fatalf("expected no items and no trailing separator, got %+v", res)
	}
}

func TestPunctuatedTrailingSeparator(t *testing.T) {
	tests := []struct {
		src           string
		allowTrailing bool
		items         int
		trailing      bool
		wantErr       bool
	}{
		{"a, b", true, 2, false, false},
		{"a, b,", true, 2, true, false},
		{"a, b,", false, 0, false, true},
		{"a b", true, 0, false, true},
	}

	for _, tt := range tests {
		p := newTestParser(t, tt.src)
		res, err := punctuated(p, delimitedConfig{AllowTrailing: tt.allowTrailing}, func(int) (string, error) {
			tok, err := p.expect(lexer.IDENT)
			return tok.Raw, err
		})
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected an error", tt.src)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.src, err)
		}
		if len(res.Items) != tt.items || res.Trailing != tt.trailing {
			t.Fatalf("%q: expected %d items trailing=%v, got %d trailing=%v", tt.src, tt.items, tt.trailing, len(res.Items), res.Trailing)
		}
	}
}

func TestPunctuatedStopsAtClosing(t *testing.T) {
	p := newTestParser(t, "a, b>> c")

	res, err := punctuated(p, delimitedConfig{Closing: lexer.GT, AllowTrailing: true}, func(int) (string, error) {
		tok, err := p.expect(lexer.IDENT)
		return tok.Raw, err
	})
	if err != nil {
		t.Fatalf("punctuated: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	if !p.eat(lexer.GT) || !p.eat(lexer.GT) || !p.at(lexer.IDENT) {
		t.Fatalf("expected the closing `>>` to be left for the caller")
	}
}

func TestAltPrefersFurthestFailure(t *testing.T) {
	p := newTestParser(t, "a b c")

	_, err := alt(p, "thing",
		func() (string, error) {
			p.next()
			return "", p.errorf("first")
		},
		func() (string, error) {
			p.next()
			p.next()
			return "", p.errorf("second")
		},
	)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if got := p.st.report(err).(*ParseError); got.Message != "second" {
		t.Fatalf("expected furthest failure %q, got %q", "second", got.Message)
	}
	if p.pos != 0 {
		t.Fatalf("expected alt to rewind, cursor at %d", p.pos)
	}
}

func TestAltStopsOnInvalidInput(t *testing.T) {
	p := newTestParser(t, "a")

	calls := 0
	_, err := alt(p, "thing",
		func() (string, error) {
			calls++
			return "", p.invalidf(p.here(), "bad")
		},
		func() (string, error) {
			calls++
			return "ok", nil
		},
	)
	if err == nil || !isCut(err) {
		t.Fatalf("expected the invalid input error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected alt to stop after the first alternative, got %d calls", calls)
	}
}

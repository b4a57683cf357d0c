package parser

import (
	"fmt"
	"strings"

	"github.com/malphas-lang/synx/internal/diag"
	"github.com/malphas-lang/synx/internal/lexer"
)

// ParseError reports where matching failed and which rules were active.
// Rules lists the rule stack from the entry rule inwards.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Rules    []string
	Severity diag.Severity
	Code     diag.Code

	// cut marks errors found after the input was already recognized, such as
	// duplicate field names; alternatives are not retried past them.
	cut bool
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Span, e.Message)
	if len(e.Rules) > 0 {
		msg += " (in " + strings.Join(e.Rules, " > ") + ")"
	}
	return msg
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e *ParseError) ToDiagnostic() diag.Diagnostic {
	severity := e.Severity
	if severity == "" {
		severity = diag.SeverityError
	}
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: severity,
		Code:     e.Code,
		Message:  e.Message,
		Span:     e.Span.Diag(),
	}
	if len(e.Rules) > 0 {
		d = d.WithNote("while parsing " + strings.Join(e.Rules, " > "))
	}
	return d
}

func (p *Parser) newError(span lexer.Span, code diag.Code, msg string) *ParseError {
	if span.Filename == "" && p.st.filename != "" {
		span.Filename = p.st.filename
	}
	return &ParseError{
		Message:  msg,
		Span:     span,
		Rules:    append([]string(nil), p.st.rules...),
		Severity: diag.SeverityError,
		Code:     code,
	}
}

// record keeps the failure that reached furthest into the input.
func (p *Parser) record(err *ParseError) *ParseError {
	if f := p.st.furthest; f == nil || err.Span.Start > f.Span.Start {
		p.st.furthest = err
	}
	return err
}

// errorf reports an unexpected token at the current position.
func (p *Parser) errorf(format string, args ...any) error {
	return p.record(p.newError(p.here(), diag.CodeParseUnexpectedToken, fmt.Sprintf(format, args...)))
}

// trailing reports input left over after an entry rule matched.
func (p *Parser) trailing() error {
	msg := fmt.Sprintf("unexpected %s, expected end of input", describe(p.peek()))
	return p.record(p.newError(p.here(), diag.CodeParseTrailingInput, msg))
}

// invalidf reports well-formed input that breaks a grammar invariant. The
// error is final: enclosing alternatives do not backtrack over it.
func (p *Parser) invalidf(span lexer.Span, format string, args ...any) error {
	err := p.newError(span, diag.CodeParseInvalidInput, fmt.Sprintf(format, args...))
	err.cut = true
	return err
}

func isCut(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.cut
}

// report picks the error to surface once a rule has failed.
func (st *state) report(err error) error {
	pe, ok := err.(*ParseError)
	if !ok || pe.cut {
		return err
	}
	if f := st.furthest; f != nil && f.Span.Start >= pe.Span.Start {
		return f
	}
	return pe
}

package parser

import (
	"fmt"

	"github.com/malphas-lang/synx/internal/diag"
	"github.com/malphas-lang/synx/internal/lexer"
)

// alt tries each alternative in order from the same cursor and returns the
// first success. A final error from any alternative stops the search. When
// no alternative got past the first token, the failure names what instead.
func alt[T any](p *Parser, what string, alts ...func() (T, error)) (T, error) {
	var zero T
	start := p.mark()
	for _, try := range alts {
		v, err := try()
		if err == nil {
			return v, nil
		}
		if isCut(err) {
			return zero, err
		}
		p.reset(start)
	}
	err := p.newError(p.here(), diag.CodeParseUnexpectedToken, fmt.Sprintf("expected %s, found %s", what, describe(p.peek())))
	if f := p.st.furthest; f == nil || f.Span.Start <= err.Span.Start {
		p.st.furthest = err
	}
	return zero, err
}

// opt runs parse and rewinds when it fails. ok reports whether it matched.
func opt[T any](p *Parser, parse func() (T, error)) (v T, ok bool, err error) {
	start := p.mark()
	v, err = parse()
	if err == nil {
		return v, true, nil
	}
	p.reset(start)
	if isCut(err) {
		return v, false, err
	}
	var zero T
	return zero, false, nil
}

// many runs parse until it fails or stops making progress.
func many[T any](p *Parser, parse func() (T, error)) ([]T, error) {
	var items []T
	for !p.atEnd() {
		start := p.mark()
		v, ok, err := opt(p, parse)
		if err != nil {
			return items, err
		}
		if !ok || p.mark() == start {
			break
		}
		items = append(items, v)
	}
	return items, nil
}

// many1 is many requiring at least one match.
func many1[T any](p *Parser, parse func() (T, error)) ([]T, error) {
	first, err := parse()
	if err != nil {
		return nil, err
	}
	rest, err := many(p, parse)
	if err != nil {
		return nil, err
	}
	return append([]T{first}, rest...), nil
}

type delimitedConfig struct {
	// Closing ends the list without being consumed. Empty means the end of
	// the current group.
	Closing   lexer.TokenType
	Separator lexer.TokenType

	AllowEmpty    bool
	AllowTrailing bool

	MissingElementMsg string
}

type delimitedResult[T any] struct {
	Items    []T
	Trailing bool
}

func (p *Parser) atClosing(cfg delimitedConfig) bool {
	if cfg.Closing == "" {
		return p.atEnd()
	}
	return p.atPunct(cfg.Closing)
}

// punctuated parses separated items up to the closing token or the end of
// the group.
func punctuated[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, error)) (delimitedResult[T], error) {
	var result delimitedResult[T]

	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}
	missing := func() error {
		msg := cfg.MissingElementMsg
		if msg == "" {
			msg = "expected element"
		}
		return p.errorf("%s, found %s", msg, describe(p.peek()))
	}

	if p.atClosing(cfg) {
		if cfg.AllowEmpty {
			return result, nil
		}
		return result, missing()
	}

	for {
		item, err := parseItem(len(result.Items))
		if err != nil {
			return result, err
		}
		result.Items = append(result.Items, item)

		if p.atClosing(cfg) {
			return result, nil
		}
		if !p.eat(cfg.Separator) {
			closing := "end of list"
			if cfg.Closing != "" {
				closing = "`" + string(cfg.Closing) + "`"
			}
			return result, p.errorf("expected `%s` or %s, found %s", cfg.Separator, closing, describe(p.peek()))
		}
		if p.atClosing(cfg) {
			if cfg.AllowTrailing {
				result.Trailing = true
				return result, nil
			}
			return result, missing()
		}
	}
}

// commaList parses a comma separated list filling the rest of a group.
func commaList[T any](p *Parser, parseItem func() (T, error)) (delimitedResult[T], error) {
	return punctuated(p, delimitedConfig{AllowEmpty: true, AllowTrailing: true}, func(int) (T, error) {
		return parseItem()
	})
}

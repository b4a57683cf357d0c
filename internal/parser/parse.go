package parser

import (
	"strings"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// Rule is an entry grammar rule. Entry points require the rule to consume
// the whole input.
type Rule[T any] func(p *Parser) (T, error)

var (
	MacroInputRule  Rule[*ast.MacroInput]  = (*Parser).parseMacroInput
	StructInputRule Rule[*ast.MacroInput]  = (*Parser).parseStructInput
	TypeRule        Rule[ast.TypeExpr]     = (*Parser).parseType
	PathRule        Rule[*ast.Path]        = (*Parser).parseTypePath
	GenericsRule    Rule[*ast.Generics]    = (*Parser).parseGenericsWithWhere
	AttributesRule  Rule[[]*ast.Attribute] = (*Parser).parseAttributes
)

func (p *Parser) parseTypePath() (*ast.Path, error) {
	return p.parsePath(pathType)
}

// ParseMacroInput parses a single struct or enum declaration, the input of a
// derive transformer.
func ParseMacroInput(src string, opts ...Option) (*ast.MacroInput, error) {
	return parseSource(src, MacroInputRule, opts)
}

// ParseStruct parses a single struct declaration. An enum is an error.
func ParseStruct(src string, opts ...Option) (*ast.MacroInput, error) {
	return parseSource(src, StructInputRule, opts)
}

// ParseType parses a single type.
func ParseType(src string, opts ...Option) (ast.TypeExpr, error) {
	return parseSource(src, TypeRule, opts)
}

// ParsePath parses a path in type position, such as `std::vec::Vec<T>`.
func ParsePath(src string, opts ...Option) (*ast.Path, error) {
	return parseSource(src, PathRule, opts)
}

// ParseGenerics parses `<...>` followed by an optional where clause.
func ParseGenerics(src string, opts ...Option) (*ast.Generics, error) {
	return parseSource(src, GenericsRule, opts)
}

// ParseAttributes parses a run of inner and then outer attributes.
func ParseAttributes(src string, opts ...Option) ([]*ast.Attribute, error) {
	return parseSource(src, AttributesRule, opts)
}

// ParseMeta interprets an attribute as a word, a list or a name-value pair.
func ParseMeta(attr *ast.Attribute, opts ...Option) (ast.Meta, error) {
	return ParseTokens(attr.Tokens, func(p *Parser) (ast.Meta, error) {
		return p.parseMetaAfter(attr.Path)
	}, opts...)
}

// ParseTokens applies rule to already lexed token trees.
func ParseTokens[T any](toks lexer.TokenStream, rule Rule[T], opts ...Option) (T, error) {
	cfg := newOptions(opts)
	return run(toks, streamEnd(toks, cfg.filename), cfg.filename, rule)
}

func parseSource[T any](src string, rule Rule[T], opts []Option) (T, error) {
	cfg := newOptions(opts)
	toks, err := lexer.Tokenize(src, lexer.WithFilename(cfg.filename))
	if err != nil {
		var zero T
		return zero, err
	}
	return run(toks, sourceEnd(src, cfg.filename), cfg.filename, rule)
}

func run[T any](toks lexer.TokenStream, end lexer.Span, filename string, rule Rule[T]) (T, error) {
	st := &state{filename: filename}
	p := newParser(toks, end, st)
	v, err := rule(p)
	if err == nil && !p.atEnd() {
		err = p.trailing()
	}
	if err != nil {
		var zero T
		return zero, st.report(err)
	}
	return v, nil
}

// sourceEnd is the position just past the last byte of src.
func sourceEnd(src, filename string) lexer.Span {
	line := 1 + strings.Count(src, "\n")
	col := len(src) - strings.LastIndex(src, "\n")
	return lexer.Span{Filename: filename, Line: line, Column: col, Start: len(src), End: len(src)}
}

func streamEnd(toks lexer.TokenStream, filename string) lexer.Span {
	if len(toks) == 0 {
		return lexer.Span{Filename: filename}
	}
	last := toks[len(toks)-1]
	span := last.Span
	if last.IsGroup() {
		span = last.CloseSpan
	}
	span.Column += span.End - span.Start
	span.Start = span.End
	if span.Filename == "" {
		span.Filename = filename
	}
	return span
}

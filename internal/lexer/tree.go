package lexer

import "fmt"

var (
	openers = map[TokenType]Delimiter{
		LPAREN:   DelimParen,
		LBRACKET: DelimBracket,
		LBRACE:   DelimBrace,
	}
	closers = map[TokenType]Delimiter{
		RPAREN:   DelimParen,
		RBRACKET: DelimBracket,
		RBRACE:   DelimBrace,
	}
)

// Tokenize lexes src into token trees. Every balanced pair of delimiters
// becomes a single GROUP token. The first lexical error, including an
// unbalanced delimiter, is returned as a *LexerError.
func Tokenize(src string, opts ...Option) (TokenStream, error) {
	l := New(src, opts...)

	type frame struct {
		open   Token
		stream TokenStream
	}
	stack := []frame{{}}

	for {
		tok := l.NextToken()
		if len(l.Errors) > 0 {
			err := l.Errors[0]
			return nil, &err
		}
		if tok.Type == EOF {
			break
		}

		if delim, ok := openers[tok.Type]; ok {
			tok.Delim = delim
			stack = append(stack, frame{open: tok})
			continue
		}

		if delim, ok := closers[tok.Type]; ok {
			top := stack[len(stack)-1]
			if len(stack) == 1 {
				return nil, &LexerError{
					Kind:    ErrUnbalancedDelimiter,
					Message: fmt.Sprintf("unexpected closing delimiter `%s`", tok.Raw),
					Span:    tok.Span,
				}
			}
			if top.open.Delim != delim {
				return nil, &LexerError{
					Kind: ErrUnbalancedDelimiter,
					Message: fmt.Sprintf("mismatched closing delimiter `%s` for `%s` opened at %s",
						tok.Raw, top.open.Delim.Open(), top.open.Span),
					Span: tok.Span,
				}
			}
			stack = stack[:len(stack)-1]

			span := top.open.Span
			span.End = tok.Span.End
			group := Token{
				Type:      GROUP,
				Delim:     delim,
				Stream:    top.stream,
				Span:      span,
				CloseSpan: tok.Span,
			}
			parent := &stack[len(stack)-1]
			parent.stream = append(parent.stream, group)
			continue
		}

		top := &stack[len(stack)-1]
		top.stream = append(top.stream, tok)
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].open
		return nil, &LexerError{
			Kind:    ErrUnbalancedDelimiter,
			Message: fmt.Sprintf("unclosed delimiter `%s`", open.Raw),
			Span:    open.Span,
		}
	}
	return stack[0].stream, nil
}

// Flatten expands GROUP tokens back into delimiter tokens.
func (ts TokenStream) Flatten() []Token {
	var out []Token
	for _, tok := range ts {
		if !tok.IsGroup() {
			out = append(out, tok)
			continue
		}
		open := Token{Type: TokenType(tok.Delim.Open()), Raw: tok.Delim.Open(), Value: tok.Delim.Open(), Span: tok.Span}
		closeTok := Token{Type: TokenType(tok.Delim.Close()), Raw: tok.Delim.Close(), Value: tok.Delim.Close(), Span: tok.CloseSpan}
		out = append(out, open)
		out = append(out, tok.Stream.Flatten()...)
		out = append(out, closeTok)
	}
	return out
}

// Clone returns a deep copy of the stream.
func (ts TokenStream) Clone() TokenStream {
	if ts == nil {
		return nil
	}
	out := make(TokenStream, len(ts))
	for i, tok := range ts {
		out[i] = tok
		if tok.IsGroup() {
			out[i].Stream = tok.Stream.Clone()
		}
	}
	return out
}

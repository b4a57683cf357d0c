package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // byte offset into the source
	End      int    // exclusive end byte offset
}

// String renders the span as file:line:column.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Delimiter identifies the bracket kind of a GROUP token.
type Delimiter int

const (
	DelimNone Delimiter = iota
	DelimParen
	DelimBracket
	DelimBrace
)

// Open returns the opening glyph of the delimiter.
func (d Delimiter) Open() string {
	switch d {
	case DelimParen:
		return "("
	case DelimBracket:
		return "["
	case DelimBrace:
		return "{"
	}
	return ""
}

// Close returns the closing glyph of the delimiter.
func (d Delimiter) Close() string {
	switch d {
	case DelimParen:
		return ")"
	case DelimBracket:
		return "]"
	case DelimBrace:
		return "}"
	}
	return ""
}

// Token represents a lexical token.
//
// GROUP tokens own the token trees between a pair of delimiters; Delim names the
// bracket kind and Stream holds the nested tokens. All other tokens are leaves.
type Token struct {
	Type  TokenType
	Raw   string // exact bytes from source
	Value string // decoded value (for strings and chars, same as Raw for others)
	Span  Span   // source location information

	Delim     Delimiter
	Stream    TokenStream
	CloseSpan Span // span of the closing delimiter of a GROUP

	// SugaredDoc marks the `#` that opens an attribute desugared from a doc comment.
	SugaredDoc bool
}

// TokenStream is an ordered sequence of token trees.
type TokenStream []Token

// IsGroup reports whether the token is a delimiter group.
func (t Token) IsGroup() bool { return t.Type == GROUP }

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	GROUP   TokenType = "GROUP"

	// Identifiers and literals
	IDENT           TokenType = "IDENT"    // add, foobar, r#type
	LIFETIME        TokenType = "LIFETIME" // 'a, 'static
	INT             TokenType = "INT"      // 1343456, 0xff_u8
	FLOAT           TokenType = "FLOAT"    // 3.14, 1e9, 2.5f32
	STRING          TokenType = "STRING"   // "hello"
	RAW_STRING      TokenType = "RAW_STRING"
	BYTE_STRING     TokenType = "BYTE_STRING"
	RAW_BYTE_STRING TokenType = "RAW_BYTE_STRING"
	CHAR            TokenType = "CHAR" // 'a'
	BYTE            TokenType = "BYTE" // b'a'

	// Operators
	ASSIGN      TokenType = "="
	FATARROW    TokenType = "=>"
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	BANG        TokenType = "!"
	AMPERSAND   TokenType = "&"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	PERCENT     TokenType = "%"
	CARET       TokenType = "^"
	PIPE        TokenType = "|"
	AND         TokenType = "&&"
	OR          TokenType = "||"
	SHL         TokenType = "<<"
	SHR         TokenType = ">>"
	QUESTION    TokenType = "?"
	AT          TokenType = "@"
	POUND       TokenType = "#"
	DOLLAR      TokenType = "$"
	TILDE       TokenType = "~"
	UNDERSCORE  TokenType = "_"
	PLUS_EQ     TokenType = "+="
	MINUS_EQ    TokenType = "-="
	STAR_EQ     TokenType = "*="
	SLASH_EQ    TokenType = "/="
	PERCENT_EQ  TokenType = "%="
	CARET_EQ    TokenType = "^="
	AMP_EQ      TokenType = "&="
	PIPE_EQ     TokenType = "|="
	SHL_EQ      TokenType = "<<="
	SHR_EQ      TokenType = ">>="
	DOT_DOT     TokenType = ".."
	DOT_DOT_DOT TokenType = "..."
	DOT_DOT_EQ  TokenType = "..="

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA        TokenType = ","
	SEMICOLON    TokenType = ";"
	COLON        TokenType = ":"
	DOUBLE_COLON TokenType = "::"
	DOT          TokenType = "."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	ARROW TokenType = "->"

	// Keywords
	AS       TokenType = "AS"
	BREAK    TokenType = "BREAK"
	CONST    TokenType = "CONST"
	CONTINUE TokenType = "CONTINUE"
	CRATE    TokenType = "CRATE"
	DYN      TokenType = "DYN"
	ELSE     TokenType = "ELSE"
	ENUM     TokenType = "ENUM"
	EXTERN   TokenType = "EXTERN"
	FALSE    TokenType = "FALSE"
	FN       TokenType = "FN"
	FOR      TokenType = "FOR"
	IF       TokenType = "IF"
	IMPL     TokenType = "IMPL"
	IN       TokenType = "IN"
	LET      TokenType = "LET"
	LOOP     TokenType = "LOOP"
	MATCH    TokenType = "MATCH"
	MOD      TokenType = "MOD"
	MOVE     TokenType = "MOVE"
	MUT      TokenType = "MUT"
	PUB      TokenType = "PUB"
	REF      TokenType = "REF"
	RETURN   TokenType = "RETURN"
	SELF     TokenType = "SELF"
	SELF_TY  TokenType = "SELF_TY"
	STATIC   TokenType = "STATIC"
	STRUCT   TokenType = "STRUCT"
	SUPER    TokenType = "SUPER"
	TRAIT    TokenType = "TRAIT"
	TRUE     TokenType = "TRUE"
	TYPE     TokenType = "TYPE"
	UNSAFE   TokenType = "UNSAFE"
	USE      TokenType = "USE"
	WHERE    TokenType = "WHERE"
	WHILE    TokenType = "WHILE"

	// Trivia tokens (comments, whitespace, newlines)
	LINE_COMMENT  TokenType = "LINE_COMMENT"  // //
	BLOCK_COMMENT TokenType = "BLOCK_COMMENT" // /* */
	WHITESPACE    TokenType = "WHITESPACE"    // spaces, tabs
	NEWLINE       TokenType = "NEWLINE"       // \n, \r\n
)

var keywords = map[string]TokenType{
	"as":       AS,
	"break":    BREAK,
	"const":    CONST,
	"continue": CONTINUE,
	"crate":    CRATE,
	"dyn":      DYN,
	"else":     ELSE,
	"enum":     ENUM,
	"extern":   EXTERN,
	"false":    FALSE,
	"fn":       FN,
	"for":      FOR,
	"if":       IF,
	"impl":     IMPL,
	"in":       IN,
	"let":      LET,
	"loop":     LOOP,
	"match":    MATCH,
	"mod":      MOD,
	"move":     MOVE,
	"mut":      MUT,
	"pub":      PUB,
	"ref":      REF,
	"return":   RETURN,
	"self":     SELF,
	"Self":     SELF_TY,
	"static":   STATIC,
	"struct":   STRUCT,
	"super":    SUPER,
	"trait":    TRAIT,
	"true":     TRUE,
	"type":     TYPE,
	"unsafe":   UNSAFE,
	"use":      USE,
	"where":    WHERE,
	"while":    WHILE,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether word is a strict keyword.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// IsPathKeyword reports whether a keyword may appear as a path segment.
func IsPathKeyword(tt TokenType) bool {
	switch tt {
	case SELF, SELF_TY, SUPER, CRATE:
		return true
	}
	return false
}

// IsWordToken reports whether the token is an identifier or keyword.
func IsWordToken(tt TokenType) bool {
	if tt == IDENT {
		return true
	}
	for _, kw := range keywords {
		if kw == tt {
			return true
		}
	}
	return false
}

// IsLiteral reports whether the token type is a literal.
func IsLiteral(tt TokenType) bool {
	switch tt {
	case INT, FLOAT, STRING, RAW_STRING, BYTE_STRING, RAW_BYTE_STRING, CHAR, BYTE, TRUE, FALSE:
		return true
	}
	return false
}

// punctuation lists every operator glyph, longest first within a shared prefix.
var punctuation = []TokenType{
	SHL_EQ, SHR_EQ, DOT_DOT_DOT, DOT_DOT_EQ,
	DOUBLE_COLON, ARROW, FATARROW, EQ, NOT_EQ, LE, GE, AND, OR,
	PLUS_EQ, MINUS_EQ, STAR_EQ, SLASH_EQ, PERCENT_EQ, CARET_EQ, AMP_EQ, PIPE_EQ,
	SHL, SHR, DOT_DOT,
	ASSIGN, PLUS, MINUS, BANG, AMPERSAND, ASTERISK, SLASH, PERCENT, CARET, PIPE,
	QUESTION, AT, POUND, DOLLAR, TILDE, LT, GT, COMMA, SEMICOLON, COLON, DOT,
}

// Punctuation returns every operator glyph the lexer recognizes, longest first.
func Punctuation() []TokenType {
	out := make([]TokenType, len(punctuation))
	copy(out, punctuation)
	return out
}

// IsPunct reports whether tt is an operator or separator glyph.
func IsPunct(tt TokenType) bool {
	for _, p := range punctuation {
		if p == tt {
			return true
		}
	}
	return false
}

// KeywordText returns the source spelling of a keyword token type, or the
// type itself for punctuation and other tokens.
func KeywordText(tt TokenType) string {
	for word, kw := range keywords {
		if kw == tt {
			return word
		}
	}
	return string(tt)
}

package ast

import "github.com/malphas-lang/synx/internal/lexer"

// Prec is an expression binding strength. Both the parser and the printer
// derive operator grouping from this table.
type Prec int

const (
	PrecLowest  Prec = iota
	PrecAssign       // = += -= ... (right associative)
	PrecRange        // .. ..= (non associative)
	PrecOr           // ||
	PrecAnd          // &&
	PrecCompare      // == != < > <= >= (non associative)
	PrecBitOr        // |
	PrecBitXor       // ^
	PrecBitAnd       // &
	PrecShift        // << >>
	PrecSum          // + -
	PrecProduct      // * / %
	PrecCast         // as
	PrecPrefix       // - ! * & &mut
	PrecPostfix      // calls, fields, indexing, ?
	PrecAtom
)

var binaryPrecedence = map[lexer.TokenType]Prec{
	lexer.ASSIGN:      PrecAssign,
	lexer.PLUS_EQ:     PrecAssign,
	lexer.MINUS_EQ:    PrecAssign,
	lexer.STAR_EQ:     PrecAssign,
	lexer.SLASH_EQ:    PrecAssign,
	lexer.PERCENT_EQ:  PrecAssign,
	lexer.CARET_EQ:    PrecAssign,
	lexer.AMP_EQ:      PrecAssign,
	lexer.PIPE_EQ:     PrecAssign,
	lexer.SHL_EQ:      PrecAssign,
	lexer.SHR_EQ:      PrecAssign,
	lexer.DOT_DOT:     PrecRange,
	lexer.DOT_DOT_EQ:  PrecRange,
	lexer.DOT_DOT_DOT: PrecRange,
	lexer.OR:          PrecOr,
	lexer.AND:         PrecAnd,
	lexer.EQ:          PrecCompare,
	lexer.NOT_EQ:      PrecCompare,
	lexer.LT:          PrecCompare,
	lexer.GT:          PrecCompare,
	lexer.LE:          PrecCompare,
	lexer.GE:          PrecCompare,
	lexer.PIPE:        PrecBitOr,
	lexer.CARET:       PrecBitXor,
	lexer.AMPERSAND:   PrecBitAnd,
	lexer.SHL:         PrecShift,
	lexer.SHR:         PrecShift,
	lexer.PLUS:        PrecSum,
	lexer.MINUS:       PrecSum,
	lexer.ASTERISK:    PrecProduct,
	lexer.SLASH:       PrecProduct,
	lexer.PERCENT:     PrecProduct,
	lexer.AS:          PrecCast,
}

// BinaryPrecedence returns the precedence of an infix operator token.
func BinaryPrecedence(op lexer.TokenType) (Prec, bool) {
	p, ok := binaryPrecedence[op]
	return p, ok
}

// IsAssignOp reports whether op is `=` or a compound assignment.
func IsAssignOp(op lexer.TokenType) bool {
	return binaryPrecedence[op] == PrecAssign
}

// IsCompareOp reports whether op is a comparison.
func IsCompareOp(op lexer.TokenType) bool {
	return binaryPrecedence[op] == PrecCompare
}

// IsRightAssoc reports whether operators at p group to the right.
func IsRightAssoc(p Prec) bool {
	return p == PrecAssign
}

// IsNonAssoc reports whether operators at p cannot be chained.
func IsNonAssoc(p Prec) bool {
	return p == PrecCompare || p == PrecRange
}

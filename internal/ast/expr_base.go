package ast

import "github.com/malphas-lang/synx/internal/lexer"

// Expr represents an expression node. Declaration-only builds see only the
// literal, path and prefix forms used by array lengths and discriminants.
type Expr interface {
	Node
	exprNode()
}

// LitExpr is a literal expression.
type LitExpr struct {
	Pos
	Lit *Lit
}

// PathExpr is a possibly qualified path used as an expression.
type PathExpr struct {
	Pos
	QSelf *QSelf
	Path  *Path
}

// PrefixExpr is a unary operator applied to an operand: `-x`, `!x`, `*x`.
type PrefixExpr struct {
	Pos
	Op      lexer.TokenType
	Operand Expr
}

func (*LitExpr) exprNode()    {}
func (*PathExpr) exprNode()   {}
func (*PrefixExpr) exprNode() {}

// NewLitExpr wraps a literal as an expression.
func NewLitExpr(lit *Lit) *LitExpr {
	return &LitExpr{Lit: lit}
}

//go:build !minimal

package ast

import "github.com/malphas-lang/synx/internal/lexer"

// InfixExpr is a binary operator expression such as `a + b` or `a && b`.
type InfixExpr struct {
	Pos
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

// AssignExpr is `target = value` or a compound assignment when Op is not `=`.
type AssignExpr struct {
	Pos
	Op     lexer.TokenType
	Target Expr
	Value  Expr
}

// CastExpr is `expr as Type`.
type CastExpr struct {
	Pos
	Expr Expr
	Type TypeExpr
}

// CallExpr is `callee(args)`.
type CallExpr struct {
	Pos
	Callee Expr
	Args   []Expr
}

// MethodCallExpr is `receiver.method::<T>(args)`.
type MethodCallExpr struct {
	Pos
	Receiver  Expr
	Method    *Ident
	Turbofish *AngleBracketedArgs
	Args      []Expr
}

// FieldExpr is `target.field`.
type FieldExpr struct {
	Pos
	Target Expr
	Field  *Ident
}

// TupleIndexExpr is `target.0`.
type TupleIndexExpr struct {
	Pos
	Target Expr
	Index  int
}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Pos
	Target Expr
	Index  Expr
}

// TryExpr is `expr?`.
type TryExpr struct {
	Pos
	Expr Expr
}

// RefExpr is `&expr` or `&mut expr`.
type RefExpr struct {
	Pos
	Mutable bool
	Expr    Expr
}

// RangeExpr is `start..end` or `start..=end`; either bound may be nil.
type RangeExpr struct {
	Pos
	Start     Expr
	End       Expr
	Inclusive bool
}

// TupleExpr is `(a, b)`; a single element tuple keeps its trailing comma when printed.
type TupleExpr struct {
	Pos
	Elems []Expr
}

// ArrayExpr is `[a, b]`.
type ArrayExpr struct {
	Pos
	Elems []Expr
}

// RepeatExpr is `[elem; len]`.
type RepeatExpr struct {
	Pos
	Elem Expr
	Len  Expr
}

// StructExpr is `Path { field: value, ..base }`.
type StructExpr struct {
	Pos
	Path   *Path
	Fields []*FieldValue
	Base   Expr
}

// FieldValue is one field initializer. Shorthand marks `Point { x }`.
type FieldValue struct {
	Pos
	Name      *Ident
	Value     Expr
	Shorthand bool
}

// Block is a brace delimited statement list. A trailing ExprStmt without
// semicolon is the block's value.
type Block struct {
	Pos
	Stmts []Stmt
}

// BlockExpr is a block used as an expression, optionally `unsafe`.
type BlockExpr struct {
	Pos
	Unsafe bool
	Block  *Block
}

// IfExpr is `if cond { ... } else ...`. Else is a *BlockExpr, *IfExpr or *IfLetExpr.
type IfExpr struct {
	Pos
	Cond Expr
	Then *Block
	Else Expr
}

// IfLetExpr is `if let pat = expr { ... } else ...`.
type IfLetExpr struct {
	Pos
	Pats []Pat
	Expr Expr
	Then *Block
	Else Expr
}

// WhileExpr is `'label: while cond { ... }`.
type WhileExpr struct {
	Pos
	Label *Lifetime
	Cond  Expr
	Body  *Block
}

// WhileLetExpr is `while let pat = expr { ... }`.
type WhileLetExpr struct {
	Pos
	Label *Lifetime
	Pats  []Pat
	Expr  Expr
	Body  *Block
}

// LoopExpr is `loop { ... }`.
type LoopExpr struct {
	Pos
	Label *Lifetime
	Body  *Block
}

// ForExpr is `for pat in iter { ... }`.
type ForExpr struct {
	Pos
	Label *Lifetime
	Pat   Pat
	Iter  Expr
	Body  *Block
}

// MatchExpr is `match scrutinee { arms }`.
type MatchExpr struct {
	Pos
	Scrutinee Expr
	Arms      []*Arm
}

// Arm is `pat | pat if guard => body`.
type Arm struct {
	Pos
	Attrs []*Attribute
	Pats  []Pat
	Guard Expr
	Body  Expr
}

// ClosureExpr is `move |a, b: u8| -> T body`.
type ClosureExpr struct {
	Pos
	Move   bool
	Inputs []*ClosureParam
	Output TypeExpr
	Body   Expr
}

// ClosureParam is a closure input with an optional type.
type ClosureParam struct {
	Pos
	Pat  Pat
	Type TypeExpr
}

// BreakExpr is `break 'label value`.
type BreakExpr struct {
	Pos
	Label *Lifetime
	Value Expr
}

// ContinueExpr is `continue 'label`.
type ContinueExpr struct {
	Pos
	Label *Lifetime
}

// ReturnExpr is `return value`.
type ReturnExpr struct {
	Pos
	Value Expr
}

// Macro is a macro invocation `path!(tokens)`; the body is kept as token trees.
type Macro struct {
	Pos
	Path   *Path
	Delim  lexer.Delimiter
	Tokens lexer.TokenStream
}

// MacroExpr is a macro invocation in expression position.
type MacroExpr struct {
	Pos
	Mac *Macro
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Pos
	Expr Expr
}

func (*InfixExpr) exprNode()      {}
func (*AssignExpr) exprNode()     {}
func (*CastExpr) exprNode()       {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*FieldExpr) exprNode()      {}
func (*TupleIndexExpr) exprNode() {}
func (*IndexExpr) exprNode()      {}
func (*TryExpr) exprNode()        {}
func (*RefExpr) exprNode()        {}
func (*RangeExpr) exprNode()      {}
func (*TupleExpr) exprNode()      {}
func (*ArrayExpr) exprNode()      {}
func (*RepeatExpr) exprNode()     {}
func (*StructExpr) exprNode()     {}
func (*BlockExpr) exprNode()      {}
func (*IfExpr) exprNode()         {}
func (*IfLetExpr) exprNode()      {}
func (*WhileExpr) exprNode()      {}
func (*WhileLetExpr) exprNode()   {}
func (*LoopExpr) exprNode()       {}
func (*ForExpr) exprNode()        {}
func (*MatchExpr) exprNode()      {}
func (*ClosureExpr) exprNode()    {}
func (*BreakExpr) exprNode()      {}
func (*ContinueExpr) exprNode()   {}
func (*ReturnExpr) exprNode()     {}
func (*MacroExpr) exprNode()      {}
func (*ParenExpr) exprNode()      {}

// ExprPrecedence returns how tightly e binds as an operand.
func ExprPrecedence(e Expr) Prec {
	switch e := e.(type) {
	case *ClosureExpr, *ReturnExpr, *BreakExpr:
		return PrecLowest
	case *AssignExpr:
		return PrecAssign
	case *RangeExpr:
		return PrecRange
	case *InfixExpr:
		p, _ := BinaryPrecedence(e.Op)
		return p
	case *CastExpr:
		return PrecCast
	case *PrefixExpr, *RefExpr:
		return PrecPrefix
	case *CallExpr, *MethodCallExpr, *FieldExpr, *TupleIndexExpr, *IndexExpr, *TryExpr:
		return PrecPostfix
	}
	return PrecAtom
}

// IsBlockLike reports whether e ends with a block and may stand as a
// statement without a trailing semicolon.
func IsBlockLike(e Expr) bool {
	switch e := e.(type) {
	case *BlockExpr, *IfExpr, *IfLetExpr, *WhileExpr, *WhileLetExpr, *LoopExpr, *ForExpr, *MatchExpr:
		return true
	case *MacroExpr:
		return e.Mac.Delim == lexer.DelimBrace
	}
	return false
}

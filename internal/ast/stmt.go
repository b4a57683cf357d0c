//go:build !minimal

package ast

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// LetStmt is `let pat: Type = init;`.
type LetStmt struct {
	Pos
	Attrs []*Attribute
	Pat   Pat
	Type  TypeExpr
	Init  Expr
}

// DeclStmt is a nested declaration.
type DeclStmt struct {
	Pos
	Decl Decl
}

// ExprStmt is an expression statement; Semi records a trailing semicolon.
type ExprStmt struct {
	Pos
	Expr Expr
	Semi bool
}

func (*LetStmt) stmtNode()  {}
func (*DeclStmt) stmtNode() {}
func (*ExprStmt) stmtNode() {}

// Tail returns the value expression of a block, if any.
func (b *Block) Tail() Expr {
	if len(b.Stmts) == 0 {
		return nil
	}
	if es, ok := b.Stmts[len(b.Stmts)-1].(*ExprStmt); ok && !es.Semi {
		return es.Expr
	}
	return nil
}

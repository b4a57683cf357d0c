//go:build !minimal

package parser

import "github.com/malphas-lang/synx/internal/ast"

var (
	FileRule  Rule[*ast.File]  = (*Parser).parseFile
	DeclRule  Rule[ast.Decl]   = (*Parser).parseDecl
	ExprRule  Rule[ast.Expr]   = (*Parser).parseExpr
	StmtRule  Rule[ast.Stmt]   = (*Parser).parseStmt
	BlockRule Rule[*ast.Block] = (*Parser).parseBlock
	PatRule   Rule[ast.Pat]    = (*Parser).parsePat
)

// ParseFile parses a complete source file.
func ParseFile(src string, opts ...Option) (*ast.File, error) {
	return parseSource(src, FileRule, opts)
}

// ParseDecl parses a single item declaration.
func ParseDecl(src string, opts ...Option) (ast.Decl, error) {
	return parseSource(src, DeclRule, opts)
}

// ParseExpr parses a single expression.
func ParseExpr(src string, opts ...Option) (ast.Expr, error) {
	return parseSource(src, ExprRule, opts)
}

// ParseStmt parses a single statement. A trailing expression without `;`
// is accepted.
func ParseStmt(src string, opts ...Option) (ast.Stmt, error) {
	return parseSource(src, StmtRule, opts)
}

// ParseBlock parses a brace-delimited block.
func ParseBlock(src string, opts ...Option) (*ast.Block, error) {
	return parseSource(src, BlockRule, opts)
}

// ParsePat parses a single pattern. Alternatives separated by `|` are an
// error here; they are only valid in match arms and `let` conditions.
func ParsePat(src string, opts ...Option) (ast.Pat, error) {
	return parseSource(src, PatRule, opts)
}

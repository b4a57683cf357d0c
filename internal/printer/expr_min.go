//go:build minimal

package printer

import "github.com/malphas-lang/synx/internal/ast"

// expr prints the constant expressions of the declarations-only profile.
func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.LitExpr:
		p.lit(e.Lit)
	case *ast.PathExpr:
		p.pathExpr(e)
	case *ast.PrefixExpr:
		p.tok(string(e.Op))
		p.expr(e.Operand)
	}
}

func (p *printer) fullNode(ast.Node) bool { return false }

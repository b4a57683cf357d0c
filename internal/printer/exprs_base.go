package printer

import "github.com/malphas-lang/synx/internal/ast"

func (p *printer) pathExpr(e *ast.PathExpr) {
	if e.QSelf != nil {
		p.qpath(e.QSelf, e.Path, true)
		return
	}
	p.exprPath(e.Path)
}

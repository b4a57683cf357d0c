//go:build !minimal

package printer

import (
	"strconv"
	"strings"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

// exprCtx carries the position an expression is printed in.
type exprCtx struct {
	stmt     bool // leftmost in a statement or match arm body
	noStruct bool // condition of if, while, for or match
}

// operand is the context of a child that is not leftmost.
func (c exprCtx) operand() exprCtx {
	return exprCtx{noStruct: c.noStruct}
}

func (p *printer) expr(e ast.Expr) {
	p.exprIn(e, exprCtx{})
}

// sub prints a child expression, in parentheses when paren is set.
// Parentheses reset the context.
func (p *printer) sub(e ast.Expr, c exprCtx, paren bool) {
	if paren {
		p.tok("(")
		p.exprIn(e, exprCtx{})
		p.tok(")")
		return
	}
	p.exprIn(e, c)
}

// leftmost prints the first operand of a postfix, binary or cast
// expression. A block-like operand at the start of a statement would end
// the statement, so it is parenthesized unless dot is set: a following `.`
// or `?` continues the statement.
func (p *printer) leftmost(e ast.Expr, c exprCtx, paren, dot bool) {
	if c.stmt && !dot && startsStmt(e) {
		paren = true
	}
	p.sub(e, c, paren)
}

func startsStmt(e ast.Expr) bool {
	switch e.(type) {
	case *ast.BlockExpr, *ast.IfExpr, *ast.IfLetExpr, *ast.WhileExpr, *ast.WhileLetExpr,
		*ast.LoopExpr, *ast.ForExpr, *ast.MatchExpr:
		return true
	}
	return false
}

// opensRight reports whether e ends in an operand that would swallow any
// operator printed after it.
func opensRight(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.ClosureExpr, *ast.ReturnExpr, *ast.BreakExpr:
		return true
	case *ast.RangeExpr:
		return e.End == nil || opensRight(e.End)
	case *ast.InfixExpr:
		return opensRight(e.Right)
	case *ast.AssignExpr:
		return opensRight(e.Value)
	case *ast.PrefixExpr:
		return opensRight(e.Operand)
	case *ast.RefExpr:
		return opensRight(e.Expr)
	}
	return false
}

// endsWithType reports whether e ends in a cast, whose type would take a
// following `<` as the start of generic arguments.
func endsWithType(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.CastExpr:
		return true
	case *ast.InfixExpr:
		return endsWithType(e.Right)
	case *ast.AssignExpr:
		return endsWithType(e.Value)
	case *ast.RangeExpr:
		return e.End != nil && endsWithType(e.End)
	case *ast.PrefixExpr:
		return endsWithType(e.Operand)
	case *ast.RefExpr:
		return endsWithType(e.Expr)
	case *ast.ReturnExpr:
		return e.Value != nil && endsWithType(e.Value)
	case *ast.BreakExpr:
		return e.Value != nil && endsWithType(e.Value)
	}
	return false
}

// absorbs reports whether e may stand unparenthesized at the right edge of
// any operator.
func absorbs(e ast.Expr) bool {
	switch e.(type) {
	case *ast.ClosureExpr, *ast.ReturnExpr, *ast.BreakExpr:
		return true
	}
	return false
}

func leftParens(e ast.Expr, prec ast.Prec, op lexer.TokenType) bool {
	cp := ast.ExprPrecedence(e)
	if cp < prec || (cp == prec && (ast.IsRightAssoc(prec) || ast.IsNonAssoc(prec))) {
		return true
	}
	if opensRight(e) {
		return true
	}
	return strings.HasPrefix(string(op), "<") && endsWithType(e)
}

func rightParens(e ast.Expr, prec ast.Prec) bool {
	if absorbs(e) {
		return false
	}
	cp := ast.ExprPrecedence(e)
	if ast.IsRightAssoc(prec) {
		return cp < prec
	}
	return cp <= prec
}

func postfixParens(e ast.Expr) bool {
	return ast.ExprPrecedence(e) < ast.PrecPostfix
}

func (p *printer) exprIn(e ast.Expr, c exprCtx) {
	switch e := e.(type) {
	case *ast.LitExpr:
		p.lit(e.Lit)
	case *ast.PathExpr:
		p.pathExpr(e)
	case *ast.PrefixExpr:
		p.tok(string(e.Op))
		p.sub(e.Operand, c.operand(), !absorbs(e.Operand) && ast.ExprPrecedence(e.Operand) < ast.PrecPrefix)
	case *ast.RefExpr:
		p.tok("&")
		if e.Mutable {
			p.keyword("mut")
		}
		p.sub(e.Expr, c.operand(), !absorbs(e.Expr) && ast.ExprPrecedence(e.Expr) < ast.PrecPrefix)
	case *ast.InfixExpr:
		prec, _ := ast.BinaryPrecedence(e.Op)
		p.leftmost(e.Left, c, leftParens(e.Left, prec, e.Op), false)
		p.op(string(e.Op))
		p.sub(e.Right, c.operand(), rightParens(e.Right, prec))
	case *ast.AssignExpr:
		p.leftmost(e.Target, c, leftParens(e.Target, ast.PrecAssign, e.Op), false)
		p.op(string(e.Op))
		p.sub(e.Value, c.operand(), rightParens(e.Value, ast.PrecAssign))
	case *ast.CastExpr:
		p.leftmost(e.Expr, c, leftParens(e.Expr, ast.PrecCast, lexer.AS), false)
		p.op("as")
		p.typ(e.Type)
	case *ast.RangeExpr:
		if e.Start != nil {
			p.leftmost(e.Start, c, leftParens(e.Start, ast.PrecRange, lexer.DOT_DOT), false)
		}
		if e.Inclusive {
			p.tok("..=")
		} else {
			p.tok("..")
		}
		if e.End != nil {
			p.sub(e.End, c.operand(), rightParens(e.End, ast.PrecRange))
		}
	case *ast.CallExpr:
		_, field := e.Callee.(*ast.FieldExpr)
		p.leftmost(e.Callee, c, field || postfixParens(e.Callee), false)
		p.exprList("(", e.Args, ")")
	case *ast.MethodCallExpr:
		p.leftmost(e.Receiver, c, postfixParens(e.Receiver), true)
		p.tok(".")
		p.ident(e.Method)
		if e.Turbofish != nil {
			p.tok("::")
			p.angleArgs(e.Turbofish)
		}
		p.exprList("(", e.Args, ")")
	case *ast.FieldExpr:
		p.leftmost(e.Target, c, postfixParens(e.Target), true)
		p.tok(".")
		p.ident(e.Field)
	case *ast.TupleIndexExpr:
		p.leftmost(e.Target, c, postfixParens(e.Target), true)
		p.tok(".")
		p.tok(strconv.Itoa(e.Index))
	case *ast.IndexExpr:
		p.leftmost(e.Target, c, postfixParens(e.Target), false)
		p.tok("[")
		p.expr(e.Index)
		p.tok("]")
	case *ast.TryExpr:
		p.leftmost(e.Expr, c, postfixParens(e.Expr), true)
		p.tok("?")
	case *ast.ParenExpr:
		p.tok("(")
		p.expr(e.Expr)
		p.tok(")")
	case *ast.TupleExpr:
		p.tok("(")
		p.commaExprs(e.Elems)
		if len(e.Elems) == 1 {
			p.tok(",")
		}
		p.tok(")")
	case *ast.ArrayExpr:
		p.exprList("[", e.Elems, "]")
	case *ast.RepeatExpr:
		p.tok("[")
		p.expr(e.Elem)
		p.tok(";")
		p.space()
		p.expr(e.Len)
		p.tok("]")
	case *ast.StructExpr:
		if c.noStruct {
			p.sub(e, c, true)
			return
		}
		p.structExpr(e)
	case *ast.BlockExpr:
		if e.Unsafe {
			p.keyword("unsafe")
		}
		p.block(e.Block)
	case *ast.IfExpr:
		p.keyword("if")
		p.exprIn(e.Cond, exprCtx{noStruct: true})
		p.space()
		p.block(e.Then)
		p.elseBranch(e.Else)
	case *ast.IfLetExpr:
		p.keyword("if")
		p.keyword("let")
		p.pats(e.Pats)
		p.op("=")
		p.exprIn(e.Expr, exprCtx{noStruct: true})
		p.space()
		p.block(e.Then)
		p.elseBranch(e.Else)
	case *ast.WhileExpr:
		p.label(e.Label)
		p.keyword("while")
		p.exprIn(e.Cond, exprCtx{noStruct: true})
		p.space()
		p.block(e.Body)
	case *ast.WhileLetExpr:
		p.label(e.Label)
		p.keyword("while")
		p.keyword("let")
		p.pats(e.Pats)
		p.op("=")
		p.exprIn(e.Expr, exprCtx{noStruct: true})
		p.space()
		p.block(e.Body)
	case *ast.LoopExpr:
		p.label(e.Label)
		p.keyword("loop")
		p.block(e.Body)
	case *ast.ForExpr:
		p.label(e.Label)
		p.keyword("for")
		p.pat(e.Pat)
		p.op("in")
		p.exprIn(e.Iter, exprCtx{noStruct: true})
		p.space()
		p.block(e.Body)
	case *ast.MatchExpr:
		p.keyword("match")
		p.exprIn(e.Scrutinee, exprCtx{noStruct: true})
		p.space()
		p.tok("{")
		if len(e.Arms) == 0 {
			p.tok("}")
			return
		}
		p.newline()
		p.indent()
		for _, arm := range e.Arms {
			p.arm(arm)
			p.newline()
		}
		p.unindent()
		p.tok("}")
	case *ast.ClosureExpr:
		p.closure(e, c)
	case *ast.BreakExpr:
		p.tok("break")
		if e.Label != nil {
			p.space()
			p.lifetime(e.Label)
		}
		if e.Value != nil {
			p.space()
			p.exprIn(e.Value, c.operand())
		}
	case *ast.ContinueExpr:
		p.tok("continue")
		if e.Label != nil {
			p.space()
			p.lifetime(e.Label)
		}
	case *ast.ReturnExpr:
		p.tok("return")
		if e.Value != nil {
			p.space()
			p.exprIn(e.Value, c.operand())
		}
	case *ast.MacroExpr:
		p.macro(e.Mac)
	}
}

func (p *printer) commaExprs(es []ast.Expr) {
	for i, e := range es {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.expr(e)
	}
}

func (p *printer) exprList(open string, es []ast.Expr, close string) {
	p.tok(open)
	p.commaExprs(es)
	p.tok(close)
}

func (p *printer) structExpr(e *ast.StructExpr) {
	p.exprPath(e.Path)
	p.space()
	p.tok("{")
	if len(e.Fields) == 0 && e.Base == nil {
		p.tok("}")
		return
	}
	p.space()
	for i, f := range e.Fields {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.fieldValue(f)
	}
	if e.Base != nil {
		if len(e.Fields) > 0 {
			p.tok(",")
			p.space()
		}
		p.tok("..")
		p.expr(e.Base)
	}
	p.space()
	p.tok("}")
}

func (p *printer) fieldValue(f *ast.FieldValue) {
	if f.Shorthand && isIdentPath(f.Value, f.Name.Name) {
		p.ident(f.Name)
		return
	}
	p.ident(f.Name)
	p.tok(":")
	p.space()
	p.expr(f.Value)
}

func isIdentPath(e ast.Expr, name string) bool {
	pe, ok := e.(*ast.PathExpr)
	if !ok || pe.QSelf != nil || pe.Path.Global || len(pe.Path.Segments) != 1 {
		return false
	}
	seg := pe.Path.Segments[0]
	return seg.Args == nil && seg.Ident.Name == name
}

func (p *printer) elseBranch(e ast.Expr) {
	if e == nil {
		return
	}
	p.space()
	p.keyword("else")
	p.expr(e)
}

func (p *printer) label(lt *ast.Lifetime) {
	if lt == nil {
		return
	}
	p.lifetime(lt)
	p.tok(":")
	p.space()
}

func (p *printer) arm(a *ast.Arm) {
	p.outerAttrs(a.Attrs)
	p.pats(a.Pats)
	if a.Guard != nil {
		p.op("if")
		p.expr(a.Guard)
	}
	p.op("=>")
	p.exprIn(a.Body, exprCtx{stmt: true})
	p.tok(",")
}

func (p *printer) closure(e *ast.ClosureExpr, c exprCtx) {
	if e.Move {
		p.keyword("move")
	}
	if len(e.Inputs) == 0 {
		p.tok("||")
	} else {
		p.tok("|")
		for i, in := range e.Inputs {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.closureParam(in)
		}
		p.tok("|")
	}
	if e.Output != nil {
		p.op("->")
		p.typ(e.Output)
	}
	p.space()
	p.exprIn(e.Body, c.operand())
}

func (p *printer) closureParam(in *ast.ClosureParam) {
	p.pat(in.Pat)
	if in.Type != nil {
		p.tok(":")
		p.space()
		p.typ(in.Type)
	}
}

func (p *printer) macro(m *ast.Macro) {
	p.exprPath(m.Path)
	p.tok("!")
	p.macroGroup(m.Delim, m.Tokens)
}

// macroGroup prints a macro body. Brace bodies are set off by spaces.
func (p *printer) macroGroup(d lexer.Delimiter, ts lexer.TokenStream) {
	if d == lexer.DelimNone {
		d = lexer.DelimParen
	}
	if d != lexer.DelimBrace {
		p.tok(d.Open())
		p.tokens(ts)
		p.tok(d.Close())
		return
	}
	p.space()
	p.tok("{")
	if len(ts) > 0 {
		p.space()
		p.tokens(ts)
		p.space()
	}
	p.tok("}")
}

func (p *printer) block(b *ast.Block) {
	p.tok("{")
	if len(b.Stmts) == 0 {
		p.tok("}")
		return
	}
	p.newline()
	p.indent()
	for _, s := range b.Stmts {
		p.stmt(s)
		p.newline()
	}
	p.unindent()
	p.tok("}")
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LetStmt:
		p.outerAttrs(s.Attrs)
		p.keyword("let")
		p.pat(s.Pat)
		if s.Type != nil {
			p.tok(":")
			p.space()
			p.typ(s.Type)
		}
		if s.Init != nil {
			p.op("=")
			p.expr(s.Init)
		}
		p.tok(";")
	case *ast.DeclStmt:
		p.decl(s.Decl)
	case *ast.ExprStmt:
		p.exprIn(s.Expr, exprCtx{stmt: true})
		if s.Semi {
			p.tok(";")
		}
	}
}

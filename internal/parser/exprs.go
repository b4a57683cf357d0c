//go:build !minimal

package parser

import (
	"strconv"
	"strings"

	"github.com/malphas-lang/synx/internal/ast"
	"github.com/malphas-lang/synx/internal/lexer"
)

func (p *Parser) parseExpr() (ast.Expr, error) {
	defer p.rule("expression")()
	return p.parseBinary(ast.PrecLowest)
}

// parseCondExpr parses a condition or scrutinee. Struct literals are not
// allowed at this level because the brace group that follows is the body.
func (p *Parser) parseCondExpr() (ast.Expr, error) {
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

func (p *Parser) atRangeOp() bool {
	tt := p.peek().Type
	return tt == lexer.DOT_DOT || tt == lexer.DOT_DOT_EQ
}

// parseBinary is the Pratt loop: it reads operators binding at least as
// tightly as min, with grouping taken from the ast precedence table.
func (p *Parser) parseBinary(min ast.Prec) (ast.Expr, error) {
	start := p.here()
	if min <= ast.PrecRange && p.atRangeOp() {
		left, err := p.parseRange(start, nil)
		if err != nil {
			return nil, err
		}
		return p.parseBinaryFrom(start, left, min)
	}
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryFrom(start, left, min)
}

func (p *Parser) parseBinaryFrom(start lexer.Span, left ast.Expr, min ast.Prec) (ast.Expr, error) {
	for {
		op := p.peek().Type

		if op == lexer.DOT_DOT || op == lexer.DOT_DOT_EQ {
			if min > ast.PrecRange {
				return left, nil
			}
			if _, ok := left.(*ast.RangeExpr); ok {
				return nil, p.errorf("range operators cannot be chained")
			}
			r, err := p.parseRange(start, left)
			if err != nil {
				return nil, err
			}
			left = r
			continue
		}

		if op == lexer.AS {
			if min > ast.PrecCast {
				return left, nil
			}
			p.next()
			ty, err := p.parseTypeNoPlus()
			if err != nil {
				return nil, err
			}
			left = &ast.CastExpr{Pos: ast.Pos{Loc: p.span(start)}, Expr: left, Type: ty}
			continue
		}

		prec, ok := ast.BinaryPrecedence(op)
		if !ok || prec < min || prec == ast.PrecRange {
			return left, nil
		}
		p.next()

		if ast.IsAssignOp(op) {
			value, err := p.parseBinary(ast.PrecAssign)
			if err != nil {
				return nil, err
			}
			left = &ast.AssignExpr{Pos: ast.Pos{Loc: p.span(start)}, Op: op, Target: left, Value: value}
			continue
		}

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.InfixExpr{Pos: ast.Pos{Loc: p.span(start)}, Op: op, Left: left, Right: right}
		if ast.IsCompareOp(op) && ast.IsCompareOp(p.peek().Type) {
			return nil, p.errorf("comparison operators cannot be chained")
		}
	}
}

// parseRange parses `..` or `..=` and an optional end. start is nil for the
// prefix forms `..b` and `..`.
func (p *Parser) parseRange(span lexer.Span, start ast.Expr) (ast.Expr, error) {
	tok := p.next()
	r := &ast.RangeExpr{Start: start, Inclusive: tok.Type == lexer.DOT_DOT_EQ}
	if p.canStartExpr() && !p.atRangeOp() {
		end, err := p.parseBinary(ast.PrecRange + 1)
		if err != nil {
			return nil, err
		}
		r.End = end
	} else if r.Inclusive {
		return nil, p.errorf("inclusive range requires an end, found %s", describe(p.peek()))
	}
	r.Pos = ast.Pos{Loc: p.span(span)}
	return r, nil
}

func (p *Parser) canStartExpr() bool {
	tok := p.peek()
	switch tok.Type {
	case lexer.IDENT, lexer.LIFETIME, lexer.INT, lexer.FLOAT, lexer.STRING, lexer.RAW_STRING,
		lexer.BYTE_STRING, lexer.RAW_BYTE_STRING, lexer.CHAR, lexer.BYTE, lexer.TRUE, lexer.FALSE,
		lexer.SELF, lexer.SELF_TY, lexer.SUPER, lexer.CRATE, lexer.DOUBLE_COLON, lexer.LT, lexer.SHL,
		lexer.MINUS, lexer.BANG, lexer.ASTERISK, lexer.AMPERSAND, lexer.AND, lexer.PIPE, lexer.OR,
		lexer.MOVE, lexer.IF, lexer.MATCH, lexer.LOOP, lexer.WHILE, lexer.FOR, lexer.UNSAFE,
		lexer.RETURN, lexer.BREAK, lexer.CONTINUE, lexer.DOT_DOT, lexer.DOT_DOT_EQ:
		return true
	case lexer.GROUP:
		return tok.Delim != lexer.DelimBrace || !p.noStruct
	}
	return false
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	start := p.here()
	tok := p.peek()
	switch tok.Type {
	case lexer.MINUS, lexer.BANG, lexer.ASTERISK:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpr{Pos: ast.Pos{Loc: p.span(start)}, Op: tok.Type, Operand: operand}, nil
	case lexer.AMPERSAND, lexer.AND:
		p.eat(lexer.AMPERSAND)
		mut := p.eat(lexer.MUT)
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.RefExpr{Pos: ast.Pos{Loc: p.span(start)}, Mutable: mut, Expr: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	start := p.here()
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixFrom(start, e)
}

func (p *Parser) parsePostfixFrom(start lexer.Span, e ast.Expr) (ast.Expr, error) {
	for {
		switch {
		case p.at(lexer.QUESTION):
			p.next()
			e = &ast.TryExpr{Pos: ast.Pos{Loc: p.span(start)}, Expr: e}

		case p.atGroup(lexer.DelimParen):
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			e = &ast.CallExpr{Pos: ast.Pos{Loc: p.span(start)}, Callee: e, Args: args}

		case p.atGroup(lexer.DelimBracket):
			sub, _, _ := p.group(lexer.DelimBracket)
			index, err := sub.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := sub.finish(); err != nil {
				return nil, err
			}
			e = &ast.IndexExpr{Pos: ast.Pos{Loc: p.span(start)}, Target: e, Index: index}

		case p.at(lexer.DOT):
			p.next()
			next, err := p.parseDotSuffix(start, e)
			if err != nil {
				return nil, err
			}
			e = next

		default:
			return e, nil
		}
	}
}

// parseDotSuffix parses what follows `.`: a field, a method call or a tuple
// index. `x.0.1` lexes its indices as the float `0.1`, which is split here.
func (p *Parser) parseDotSuffix(start lexer.Span, e ast.Expr) (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.IDENT:
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		var turbofish *ast.AngleBracketedArgs
		if p.at(lexer.DOUBLE_COLON) {
			p.next()
			if turbofish, err = p.parseAngleArgs(true); err != nil {
				return nil, err
			}
		}
		if turbofish == nil && !p.atGroup(lexer.DelimParen) {
			return &ast.FieldExpr{Pos: ast.Pos{Loc: p.span(start)}, Target: e, Field: name}, nil
		}
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return &ast.MethodCallExpr{
			Pos:       ast.Pos{Loc: p.span(start)},
			Receiver:  e,
			Method:    name,
			Turbofish: turbofish,
			Args:      args,
		}, nil

	case lexer.INT:
		idx, ok := tupleIndex(tok.Raw)
		if !ok {
			return nil, p.errorf("invalid tuple index %s", describe(tok))
		}
		p.next()
		return &ast.TupleIndexExpr{Pos: ast.Pos{Loc: p.span(start)}, Target: e, Index: idx}, nil

	case lexer.FLOAT:
		first, second, found := strings.Cut(tok.Raw, ".")
		a, okA := tupleIndex(first)
		b, okB := tupleIndex(second)
		if !found || !okA || !okB {
			return nil, p.errorf("invalid tuple index %s", describe(tok))
		}
		p.next()
		inner := &ast.TupleIndexExpr{Pos: ast.Pos{Loc: p.span(start)}, Target: e, Index: a}
		return &ast.TupleIndexExpr{Pos: ast.Pos{Loc: p.span(start)}, Target: inner, Index: b}, nil
	}
	return nil, p.errorf("expected field name or tuple index after `.`, found %s", describe(tok))
}

func tupleIndex(raw string) (int, bool) {
	if raw == "" || (len(raw) > 1 && raw[0] == '0') {
		return 0, false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	sub, _, err := p.expectGroup(lexer.DelimParen)
	if err != nil {
		return nil, err
	}
	res, err := commaList(sub, sub.parseExpr)
	if err != nil {
		return nil, err
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (p *Parser) atBlockLikeStart() bool {
	switch p.peek().Type {
	case lexer.IF, lexer.MATCH, lexer.LOOP, lexer.WHILE, lexer.FOR:
		return true
	case lexer.UNSAFE:
		return isBraceGroup(p.peekN(1))
	case lexer.LIFETIME:
		return p.peekN(1).Type == lexer.COLON
	}
	return p.atGroup(lexer.DelimBrace)
}

func isBraceGroup(tok lexer.Token) bool {
	return tok.IsGroup() && tok.Delim == lexer.DelimBrace
}

// parseExprEarly parses an expression in statement or match arm position.
// A leading block-like expression ends there unless `.` or `?` follows it;
// ended reports that case.
func (p *Parser) parseExprEarly() (e ast.Expr, ended bool, err error) {
	if !p.atBlockLikeStart() {
		e, err = p.parseExpr()
		return e, false, err
	}
	start := p.here()
	if e, err = p.parseAtom(); err != nil {
		return nil, false, err
	}
	if !p.at(lexer.DOT) && !p.at(lexer.QUESTION) {
		return e, true, nil
	}
	if e, err = p.parsePostfixFrom(start, e); err != nil {
		return nil, false, err
	}
	e, err = p.parseBinaryFrom(start, e, ast.PrecLowest)
	return e, false, err
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	start := p.here()
	tok := p.peek()
	switch {
	case lexer.IsLiteral(tok.Type):
		lit, err := p.parseLit()
		if err != nil {
			return nil, err
		}
		return &ast.LitExpr{Pos: lit.Pos, Lit: lit}, nil
	case p.atGroup(lexer.DelimParen):
		return p.parseParenExpr()
	case p.atGroup(lexer.DelimBracket):
		return p.parseArrayExpr()
	case p.atGroup(lexer.DelimBrace):
		return p.parseBlockExpr()
	case tok.Type == lexer.UNSAFE && isBraceGroup(p.peekN(1)):
		return p.parseBlockExpr()
	case tok.Type == lexer.IF:
		return p.parseIf()
	case tok.Type == lexer.MATCH:
		return p.parseMatch()
	case tok.Type == lexer.LOOP || tok.Type == lexer.WHILE || tok.Type == lexer.FOR:
		return p.parseLoop(start, nil)
	case tok.Type == lexer.LIFETIME && p.peekN(1).Type == lexer.COLON:
		label, err := p.parseLifetime()
		if err != nil {
			return nil, err
		}
		p.next()
		return p.parseLoop(start, label)
	case tok.Type == lexer.PIPE || tok.Type == lexer.OR || tok.Type == lexer.MOVE:
		return p.parseClosure()
	case tok.Type == lexer.RETURN:
		p.next()
		r := &ast.ReturnExpr{}
		if p.canStartExpr() {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			r.Value = v
		}
		r.Pos = ast.Pos{Loc: p.span(start)}
		return r, nil
	case tok.Type == lexer.BREAK:
		p.next()
		b := &ast.BreakExpr{}
		if p.at(lexer.LIFETIME) {
			b.Label, _ = p.parseLifetime()
		}
		if p.canStartExpr() {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			b.Value = v
		}
		b.Pos = ast.Pos{Loc: p.span(start)}
		return b, nil
	case tok.Type == lexer.CONTINUE:
		p.next()
		c := &ast.ContinueExpr{}
		if p.at(lexer.LIFETIME) {
			c.Label, _ = p.parseLifetime()
		}
		c.Pos = ast.Pos{Loc: p.span(start)}
		return c, nil
	case tok.Type == lexer.LT || tok.Type == lexer.SHL:
		qself, path, err := p.parseQPath(pathExpr)
		if err != nil {
			return nil, err
		}
		return &ast.PathExpr{Pos: ast.Pos{Loc: p.span(start)}, QSelf: qself, Path: path}, nil
	case isPathSegmentStart(tok) || tok.Type == lexer.DOUBLE_COLON:
		return p.parsePathExpr()
	}
	return nil, p.errorf("expected expression, found %s", describe(tok))
}

// parsePathExpr parses a path, a macro invocation or a struct literal.
func (p *Parser) parsePathExpr() (ast.Expr, error) {
	start := p.here()
	path, err := p.parsePath(pathExpr)
	if err != nil {
		return nil, err
	}
	if p.at(lexer.BANG) && p.peekN(1).IsGroup() {
		mac, err := p.parseMacroBody(start, path)
		if err != nil {
			return nil, err
		}
		return &ast.MacroExpr{Pos: mac.Pos, Mac: mac}, nil
	}
	if !p.noStruct && p.atGroup(lexer.DelimBrace) {
		return p.parseStructExpr(start, path)
	}
	return &ast.PathExpr{Pos: path.Pos, Path: path}, nil
}

// parseMacroBody parses `!` and the delimited token trees after a macro path.
func (p *Parser) parseMacroBody(start lexer.Span, path *ast.Path) (*ast.Macro, error) {
	if _, err := p.expect(lexer.BANG); err != nil {
		return nil, err
	}
	tok := p.peek()
	if !tok.IsGroup() || p.partial > 0 {
		return nil, p.errorf("expected macro arguments, found %s", describe(tok))
	}
	p.next()
	return &ast.Macro{
		Pos:    ast.Pos{Loc: p.span(start)},
		Path:   path,
		Delim:  tok.Delim,
		Tokens: tok.Stream.Clone(),
	}, nil
}

func (p *Parser) parseStructExpr(start lexer.Span, path *ast.Path) (ast.Expr, error) {
	defer p.rule("struct literal")()

	sub, _, err := p.expectGroup(lexer.DelimBrace)
	if err != nil {
		return nil, err
	}
	se := &ast.StructExpr{Path: path}
	for !sub.atEnd() {
		if sub.eat(lexer.DOT_DOT) {
			base, err := sub.parseExpr()
			if err != nil {
				return nil, err
			}
			se.Base = base
			break
		}
		fv, err := sub.parseFieldValue()
		if err != nil {
			return nil, err
		}
		se.Fields = append(se.Fields, fv)
		if !sub.eat(lexer.COMMA) {
			break
		}
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	se.Pos = ast.Pos{Loc: p.span(start)}
	return se, nil
}

func (p *Parser) parseFieldValue() (*ast.FieldValue, error) {
	start := p.here()
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if !p.eat(lexer.COLON) {
		return &ast.FieldValue{
			Pos:       name.Pos,
			Name:      name,
			Value:     identExpr(name),
			Shorthand: true,
		}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FieldValue{Pos: ast.Pos{Loc: p.span(start)}, Name: name, Value: value}, nil
}

func identExpr(name *ast.Ident) *ast.PathExpr {
	return &ast.PathExpr{
		Pos:  name.Pos,
		Path: &ast.Path{Pos: name.Pos, Segments: []*ast.PathSegment{{Pos: name.Pos, Ident: name}}},
	}
}

// parseParenExpr parses `()`, `(e)` or a tuple `(a, b)`; `(a,)` is a tuple.
func (p *Parser) parseParenExpr() (ast.Expr, error) {
	start := p.here()
	sub, _, err := p.expectGroup(lexer.DelimParen)
	if err != nil {
		return nil, err
	}
	res, err := commaList(sub, sub.parseExpr)
	if err != nil {
		return nil, err
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	span := p.span(start)
	if len(res.Items) == 1 && !res.Trailing {
		return &ast.ParenExpr{Pos: ast.Pos{Loc: span}, Expr: res.Items[0]}, nil
	}
	return &ast.TupleExpr{Pos: ast.Pos{Loc: span}, Elems: res.Items}, nil
}

func (p *Parser) parseArrayExpr() (ast.Expr, error) {
	start := p.here()
	sub, _, err := p.expectGroup(lexer.DelimBracket)
	if err != nil {
		return nil, err
	}
	if sub.atEnd() {
		return &ast.ArrayExpr{Pos: ast.Pos{Loc: p.span(start)}}, nil
	}
	first, err := sub.parseExpr()
	if err != nil {
		return nil, err
	}
	if sub.eat(lexer.SEMICOLON) {
		n, err := sub.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := sub.finish(); err != nil {
			return nil, err
		}
		return &ast.RepeatExpr{Pos: ast.Pos{Loc: p.span(start)}, Elem: first, Len: n}, nil
	}
	elems := []ast.Expr{first}
	for sub.eat(lexer.COMMA) && !sub.atEnd() {
		e, err := sub.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if err := sub.finish(); err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{Pos: ast.Pos{Loc: p.span(start)}, Elems: elems}, nil
}

func (p *Parser) parseBlockExpr() (*ast.BlockExpr, error) {
	start := p.here()
	unsafe := p.eat(lexer.UNSAFE)
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.BlockExpr{Pos: ast.Pos{Loc: p.span(start)}, Unsafe: unsafe, Block: block}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	defer p.rule("block")()

	start := p.here()
	sub, _, err := p.expectGroup(lexer.DelimBrace)
	if err != nil {
		return nil, err
	}
	stmts, err := sub.parseStmts()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Pos: ast.Pos{Loc: p.span(start)}, Stmts: stmts}, nil
}

func (p *Parser) parseIf() (ast.Expr, error) {
	defer p.rule("if")()

	start := p.here()
	if _, err := p.expect(lexer.IF); err != nil {
		return nil, err
	}
	if p.eat(lexer.LET) {
		pats, err := p.parsePats()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		e, err := p.parseCondExpr()
		if err != nil {
			return nil, err
		}
		then, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		els, err := p.parseElse()
		if err != nil {
			return nil, err
		}
		return &ast.IfLetExpr{Pos: ast.Pos{Loc: p.span(start)}, Pats: pats, Expr: e, Then: then, Else: els}, nil
	}

	cond, err := p.parseCondExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	els, err := p.parseElse()
	if err != nil {
		return nil, err
	}
	return &ast.IfExpr{Pos: ast.Pos{Loc: p.span(start)}, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseElse() (ast.Expr, error) {
	if !p.eat(lexer.ELSE) {
		return nil, nil
	}
	if p.at(lexer.IF) {
		return p.parseIf()
	}
	return p.parseBlockExpr()
}

func (p *Parser) parseMatch() (ast.Expr, error) {
	defer p.rule("match")()

	start := p.here()
	if _, err := p.expect(lexer.MATCH); err != nil {
		return nil, err
	}
	scrutinee, err := p.parseCondExpr()
	if err != nil {
		return nil, err
	}
	sub, _, err := p.expectGroup(lexer.DelimBrace)
	if err != nil {
		return nil, err
	}
	m := &ast.MatchExpr{Scrutinee: scrutinee}
	for !sub.atEnd() {
		arm, err := sub.parseArm()
		if err != nil {
			return nil, err
		}
		m.Arms = append(m.Arms, arm)
	}
	m.Pos = ast.Pos{Loc: p.span(start)}
	return m, nil
}

func (p *Parser) parseArm() (*ast.Arm, error) {
	defer p.rule("match arm")()

	start := p.here()
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	pats, err := p.parsePats()
	if err != nil {
		return nil, err
	}
	arm := &ast.Arm{Attrs: attrs, Pats: pats}
	if p.eat(lexer.IF) {
		if arm.Guard, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.FATARROW); err != nil {
		return nil, err
	}
	body, ended, err := p.parseExprEarly()
	if err != nil {
		return nil, err
	}
	arm.Body = body
	arm.Pos = ast.Pos{Loc: p.span(start)}
	if !p.eat(lexer.COMMA) && !ended && !p.atEnd() {
		return nil, p.errorf("expected `,` after match arm, found %s", describe(p.peek()))
	}
	return arm, nil
}

func (p *Parser) parseLoop(start lexer.Span, label *ast.Lifetime) (ast.Expr, error) {
	defer p.rule("loop")()

	switch {
	case p.eat(lexer.LOOP):
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.LoopExpr{Pos: ast.Pos{Loc: p.span(start)}, Label: label, Body: body}, nil

	case p.eat(lexer.WHILE):
		if p.eat(lexer.LET) {
			pats, err := p.parsePats()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return nil, err
			}
			e, err := p.parseCondExpr()
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			return &ast.WhileLetExpr{Pos: ast.Pos{Loc: p.span(start)}, Label: label, Pats: pats, Expr: e, Body: body}, nil
		}
		cond, err := p.parseCondExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.WhileExpr{Pos: ast.Pos{Loc: p.span(start)}, Label: label, Cond: cond, Body: body}, nil

	case p.eat(lexer.FOR):
		pat, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.IN); err != nil {
			return nil, err
		}
		iter, err := p.parseCondExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ForExpr{Pos: ast.Pos{Loc: p.span(start)}, Label: label, Pat: pat, Iter: iter, Body: body}, nil
	}
	return nil, p.errorf("expected `loop`, `while` or `for` after label, found %s", describe(p.peek()))
}

func (p *Parser) parseClosure() (ast.Expr, error) {
	defer p.rule("closure")()

	start := p.here()
	c := &ast.ClosureExpr{Move: p.eat(lexer.MOVE)}
	if !p.eat(lexer.OR) {
		if _, err := p.expect(lexer.PIPE); err != nil {
			return nil, err
		}
		for !p.eat(lexer.PIPE) {
			param, err := p.parseClosureParam()
			if err != nil {
				return nil, err
			}
			c.Inputs = append(c.Inputs, param)
			if !p.eat(lexer.COMMA) {
				if _, err := p.expect(lexer.PIPE); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	if p.eat(lexer.ARROW) {
		out, err := p.parseTypeNoPlus()
		if err != nil {
			return nil, err
		}
		c.Output = out
		body, err := p.parseBlockExpr()
		if err != nil {
			return nil, err
		}
		c.Body = body
	} else {
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.Body = body
	}
	c.Pos = ast.Pos{Loc: p.span(start)}
	return c, nil
}

func (p *Parser) parseClosureParam() (*ast.ClosureParam, error) {
	start := p.here()
	pat, err := p.parsePat()
	if err != nil {
		return nil, err
	}
	param := &ast.ClosureParam{Pat: pat}
	if p.eat(lexer.COLON) {
		if param.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	param.Pos = ast.Pos{Loc: p.span(start)}
	return param, nil
}

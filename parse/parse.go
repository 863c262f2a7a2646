// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse is the front end: it turns C-family source text into the
// resolved syntax trees the rewriter consumes. The grammar is the subset
// the engine needs: namespaces, struct/class declarations with fields and
// inline methods, free functions, and C expression statements including
// assignment, compound assignment, and increment/decrement forms.
package parse

import (
	"fmt"

	"encap/syntax"
)

// Unit parses and resolves one compilation unit. The returned tree has
// every member expression bound to the field or method it denotes, where
// the subset's type information allows it.
func Unit(name string, src []byte) (u *syntax.Unit, err error) {
	table := syntax.NewLineTable(name, src)
	toks, lerr := lex(src)
	if lerr != nil {
		return nil, fmt.Errorf("%s: %s", table.Position(lerr.pos), lerr.msg)
	}
	p := &parser{table: table, toks: toks}
	defer func() {
		if e := recover(); e != nil {
			pe, ok := e.(*parseError)
			if !ok {
				panic(e)
			}
			u, err = nil, fmt.Errorf("%s: %s", table.Position(pe.pos), pe.msg)
		}
	}()
	u = &syntax.Unit{
		Span: mkspan(0, syntax.Pos(len(src))),
		Name: name,
	}
	for !p.at(tEOF) {
		u.Decls = append(u.Decls, p.decl())
	}
	resolve(u)
	return u, nil
}

type parseError struct {
	pos syntax.Pos
	msg string
}

type parser struct {
	table *syntax.LineTable
	toks  []token
	i     int
}

func (p *parser) cur() token     { return p.toks[p.i] }
func (p *parser) at(k kind) bool { return p.toks[p.i].kind == k }

func (p *parser) errorf(pos syntax.Pos, format string, args ...interface{}) {
	panic(&parseError{pos, fmt.Sprintf(format, args...)})
}

// got consumes the next token if it is the given keyword or punctuation.
func (p *parser) got(lit string) bool {
	if p.cur().is(lit) {
		p.i++
		return true
	}
	return false
}

func (p *parser) want(lit string) token {
	t := p.cur()
	if !t.is(lit) {
		p.errorf(t.pos, "expected %q, found %q", lit, t.lit)
	}
	p.i++
	return t
}

func (p *parser) ident() token {
	t := p.cur()
	if t.kind != tIdent {
		p.errorf(t.pos, "expected identifier, found %q", t.lit)
	}
	p.i++
	return t
}

func mkspan(a, b syntax.Pos) syntax.Span {
	return syntax.Span{Start: a, Stop: b}
}

// Declarations.

func (p *parser) decl() syntax.Decl {
	t := p.cur()
	switch {
	case t.is("namespace"):
		return p.namespace()
	case t.is("struct") || t.is("class"):
		return p.aggregate()
	default:
		start := t.pos
		typ := p.typ()
		name := p.ident()
		if p.cur().is("(") {
			return p.funcRest(start, typ, name)
		}
		return p.varRest(start, typ, name)
	}
}

func (p *parser) namespace() *syntax.NamespaceDecl {
	start := p.want("namespace").pos
	name := p.ident()
	p.want("{")
	d := &syntax.NamespaceDecl{Name: name.lit}
	for !p.cur().is("}") {
		if p.at(tEOF) {
			p.errorf(p.cur().pos, "unexpected end of file in namespace %s", name.lit)
		}
		d.Decls = append(d.Decls, p.decl())
	}
	rbrace := p.want("}")
	d.Span = mkspan(start, rbrace.end())
	return d
}

func (p *parser) aggregate() *syntax.AggregateDecl {
	kw := p.cur()
	p.i++
	name := p.ident()
	p.want("{")
	d := &syntax.AggregateDecl{
		Keyword: kw.lit,
		Name:    name.lit,
		NamePos: name.pos,
	}
	for !p.cur().is("}") {
		t := p.cur()
		switch {
		case t.kind == tEOF:
			p.errorf(t.pos, "unexpected end of file in %s %s", kw.lit, name.lit)
		case t.is("public") || t.is("private") || t.is("protected"):
			p.i++
			p.want(":")
		case t.is("struct") || t.is("class"):
			d.Members = append(d.Members, p.aggregate())
		default:
			d.Members = append(d.Members, p.member())
		}
	}
	d.Rbrace = p.want("}").pos
	stop := d.Rbrace + 1
	if t := p.cur(); t.is(";") {
		p.i++
		stop = t.end()
	}
	d.Span = mkspan(kw.pos, stop)
	return d
}

// member parses one field or inline method of an aggregate.
func (p *parser) member() syntax.Decl {
	start := p.cur().pos
	typ := p.typ()
	name := p.ident()
	if p.cur().is("(") {
		m := &syntax.MethodDecl{
			Result:  typ,
			Name:    name.lit,
			NamePos: name.pos,
			Params:  p.params(),
			Const:   p.got("const"),
		}
		m.Body = p.block()
		stop := m.Body.End()
		if t := p.cur(); t.is(";") {
			p.i++
			stop = t.end()
		}
		m.Span = mkspan(start, stop)
		return m
	}
	semi := p.want(";")
	return &syntax.FieldDecl{
		Span:    mkspan(start, semi.end()),
		Type:    typ,
		Name:    name.lit,
		NamePos: name.pos,
	}
}

func (p *parser) funcRest(start syntax.Pos, typ syntax.Type, name token) *syntax.FuncDecl {
	d := &syntax.FuncDecl{
		Result:  typ,
		Name:    name.lit,
		NamePos: name.pos,
		Params:  p.params(),
	}
	d.Body = p.block()
	d.Span = mkspan(start, d.Body.End())
	return d
}

func (p *parser) varRest(start syntax.Pos, typ syntax.Type, name token) *syntax.VarDecl {
	d := &syntax.VarDecl{
		Type:    typ,
		Name:    name.lit,
		NamePos: name.pos,
	}
	if p.got("=") {
		d.Init = p.expr()
	}
	semi := p.want(";")
	d.Span = mkspan(start, semi.end())
	return d
}

func (p *parser) params() []*syntax.ParamDecl {
	p.want("(")
	var ps []*syntax.ParamDecl
	for !p.cur().is(")") {
		if len(ps) > 0 {
			p.want(",")
		}
		start := p.cur().pos
		typ := p.typ()
		pd := &syntax.ParamDecl{Type: typ}
		stop := p.toks[p.i-1].end()
		if p.at(tIdent) {
			name := p.ident()
			pd.Name = name.lit
			stop = name.end()
		}
		pd.Span = mkspan(start, stop)
		ps = append(ps, pd)
	}
	p.want(")")
	return ps
}

// typ parses `[const] name [&|*]` with an optionally qualified name.
func (p *parser) typ() syntax.Type {
	var t syntax.Type
	t.Const = p.got("const")
	t.Name = p.ident().lit
	for p.got("::") {
		t.Name += "::" + p.ident().lit
	}
	switch {
	case p.got("&"):
		t.Ref = true
	case p.got("*"):
		t.Ptr = true
	}
	return t
}

// Statements.

func (p *parser) stmt() syntax.Stmt {
	t := p.cur()
	switch {
	case t.is("{"):
		return p.block()

	case t.is("if"):
		p.i++
		p.want("(")
		cond := p.expr()
		p.want(")")
		s := &syntax.IfStmt{Cond: cond, Then: p.stmt()}
		stop := s.Then.End()
		if p.got("else") {
			s.Else = p.stmt()
			stop = s.Else.End()
		}
		s.Span = mkspan(t.pos, stop)
		return s

	case t.is("while"):
		p.i++
		p.want("(")
		cond := p.expr()
		p.want(")")
		s := &syntax.WhileStmt{Cond: cond, Body: p.stmt()}
		s.Span = mkspan(t.pos, s.Body.End())
		return s

	case t.is("for"):
		p.i++
		p.want("(")
		s := &syntax.ForStmt{}
		if !p.got(";") {
			s.Init = p.simpleStmt()
		}
		if !p.cur().is(";") {
			s.Cond = p.expr()
		}
		p.want(";")
		if !p.cur().is(")") {
			s.Post = p.expr()
		}
		p.want(")")
		s.Body = p.stmt()
		s.Span = mkspan(t.pos, s.Body.End())
		return s

	case t.is("return"):
		p.i++
		s := &syntax.ReturnStmt{}
		if !p.cur().is(";") {
			s.Result = p.expr()
		}
		semi := p.want(";")
		s.Span = mkspan(t.pos, semi.end())
		return s

	default:
		return p.simpleStmt()
	}
}

// block parses `{ stmts }`.
func (p *parser) block() *syntax.BlockStmt {
	open := p.want("{")
	b := &syntax.BlockStmt{}
	for !p.cur().is("}") {
		b.Stmts = append(b.Stmts, p.stmt())
	}
	close := p.want("}")
	b.Span = mkspan(open.pos, close.end())
	return b
}

// simpleStmt parses a declaration statement or an expression statement,
// consuming the terminating semicolon.
func (p *parser) simpleStmt() syntax.Stmt {
	if p.isDeclStart() {
		start := p.cur().pos
		typ := p.typ()
		name := p.ident()
		vd := p.varDeclRest(start, typ, name)
		return &syntax.DeclStmt{Span: vd.Span, Decl: vd}
	}
	e := p.expr()
	semi := p.want(";")
	return &syntax.ExprStmt{Span: mkspan(e.Pos(), semi.end()), X: e}
}

func (p *parser) varDeclRest(start syntax.Pos, typ syntax.Type, name token) *syntax.VarDecl {
	d := &syntax.VarDecl{Type: typ, Name: name.lit, NamePos: name.pos}
	if p.got("=") {
		d.Init = p.expr()
	}
	semi := p.want(";")
	d.Span = mkspan(start, semi.end())
	return d
}

// isDeclStart looks ahead for `[const] name[::name...] [&|*] ident`,
// the shape that begins a declaration rather than an expression.
func (p *parser) isDeclStart() bool {
	j := p.i
	if p.toks[j].is("const") {
		j++
	}
	if p.toks[j].kind != tIdent {
		return false
	}
	j++
	for p.toks[j].is("::") {
		j++
		if p.toks[j].kind != tIdent {
			return false
		}
		j++
	}
	if p.toks[j].is("&") || p.toks[j].is("*") {
		j++
	}
	return p.toks[j].kind == tIdent
}

// Expressions, precedence climbing.

var assignOps = map[string]syntax.Op{
	"=": syntax.OpAssign, "+=": syntax.OpAddAssign, "-=": syntax.OpSubAssign,
	"*=": syntax.OpMulAssign, "/=": syntax.OpDivAssign, "%=": syntax.OpRemAssign,
	"&=": syntax.OpAndAssign, "|=": syntax.OpOrAssign, "^=": syntax.OpXorAssign,
	"<<=": syntax.OpShlAssign, ">>=": syntax.OpShrAssign,
}

var binOps = map[string]syntax.Op{
	"||": syntax.OpLOr, "&&": syntax.OpLAnd,
	"|": syntax.OpOr, "^": syntax.OpXor, "&": syntax.OpAnd,
	"==": syntax.OpEq, "!=": syntax.OpNe,
	"<": syntax.OpLt, ">": syntax.OpGt, "<=": syntax.OpLe, ">=": syntax.OpGe,
	"<<": syntax.OpShl, ">>": syntax.OpShr,
	"+": syntax.OpAdd, "-": syntax.OpSub,
	"*": syntax.OpMul, "/": syntax.OpDiv, "%": syntax.OpRem,
}

var prefixOps = map[string]syntax.Op{
	"++": syntax.OpIncr, "--": syntax.OpDecr,
	"!": syntax.OpNot, "~": syntax.OpCompl,
	"-": syntax.OpNeg, "+": syntax.OpPos,
	"&": syntax.OpAddr, "*": syntax.OpDeref,
}

func (p *parser) expr() syntax.Expr { return p.assign() }

func (p *parser) assign() syntax.Expr {
	lhs := p.cond()
	t := p.cur()
	if t.kind == tPunct {
		if op, ok := assignOps[t.lit]; ok {
			p.i++
			rhs := p.assign()
			return &syntax.BinaryExpr{
				Span:  mkspan(lhs.Pos(), rhs.End()),
				Op:    op,
				OpPos: t.pos,
				X:     lhs,
				Y:     rhs,
			}
		}
	}
	return lhs
}

func (p *parser) cond() syntax.Expr {
	c := p.binary(1)
	if !p.got("?") {
		return c
	}
	then := p.expr()
	p.want(":")
	els := p.assign()
	return &syntax.CondExpr{
		Span: mkspan(c.Pos(), els.End()),
		Cond: c,
		Then: then,
		Else: els,
	}
}

func (p *parser) binary(minPrec int) syntax.Expr {
	lhs := p.unary()
	for {
		t := p.cur()
		if t.kind != tPunct {
			return lhs
		}
		op, ok := binOps[t.lit]
		if !ok || op.Precedence() < minPrec {
			return lhs
		}
		p.i++
		rhs := p.binary(op.Precedence() + 1)
		lhs = &syntax.BinaryExpr{
			Span:  mkspan(lhs.Pos(), rhs.End()),
			Op:    op,
			OpPos: t.pos,
			X:     lhs,
			Y:     rhs,
		}
	}
}

func (p *parser) unary() syntax.Expr {
	t := p.cur()
	if t.kind == tPunct {
		if op, ok := prefixOps[t.lit]; ok {
			p.i++
			x := p.unary()
			return &syntax.UnaryExpr{
				Span: mkspan(t.pos, x.End()),
				Op:   op,
				X:    x,
			}
		}
	}
	return p.postfix()
}

func (p *parser) postfix() syntax.Expr {
	e := p.primary()
	for {
		t := p.cur()
		switch {
		case t.is(".") || t.is("->"):
			p.i++
			sel := p.ident()
			e = &syntax.MemberExpr{
				Span:   mkspan(e.Pos(), sel.end()),
				Base:   e,
				Arrow:  t.is("->"),
				Sel:    sel.lit,
				SelPos: sel.pos,
			}
		case t.is("("):
			p.i++
			var args []syntax.Expr
			for !p.cur().is(")") {
				if len(args) > 0 {
					p.want(",")
				}
				args = append(args, p.expr())
			}
			rparen := p.want(")")
			e = &syntax.CallExpr{
				Span: mkspan(e.Pos(), rparen.end()),
				Fun:  e,
				Args: args,
			}
		case t.is("++") || t.is("--"):
			p.i++
			op := syntax.OpIncr
			if t.is("--") {
				op = syntax.OpDecr
			}
			e = &syntax.UnaryExpr{
				Span:    mkspan(e.Pos(), t.end()),
				Op:      op,
				X:       e,
				Postfix: true,
			}
		default:
			return e
		}
	}
}

func (p *parser) primary() syntax.Expr {
	t := p.cur()
	switch {
	case t.kind == tIdent:
		p.i++
		return &syntax.Ident{Span: mkspan(t.pos, t.end()), Name: t.lit}
	case t.kind == tNumber || t.kind == tString || t.kind == tChar:
		p.i++
		return &syntax.BasicLit{Span: mkspan(t.pos, t.end()), Value: t.lit}
	case t.is("("):
		p.i++
		e := p.expr()
		rparen := p.want(")")
		return &syntax.ParenExpr{Span: mkspan(t.pos, rparen.end()), X: e}
	}
	p.errorf(t.pos, "expected expression, found %q", t.lit)
	return nil
}

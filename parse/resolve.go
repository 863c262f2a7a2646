// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"encap/syntax"
)

// resolve binds names in u: aggregates get qualified names, fields get
// owners, and member expressions in function bodies get the field or
// method declaration they denote. Names the subset cannot type (calls to
// undeclared functions, members of unknown types) are left unbound; the
// rewriter treats unbound members as untracked.
func resolve(u *syntax.Unit) {
	r := &resolver{
		aggs:    make(map[string]*syntax.AggregateDecl),
		globals: make(map[string]*syntax.VarDecl),
	}
	r.collect(u.Decls, "")
	r.bodies(u.Decls, nil)
}

type resolver struct {
	aggs    map[string]*syntax.AggregateDecl // by qualified name
	globals map[string]*syntax.VarDecl       // by qualified name
}

func (r *resolver) collect(decls []syntax.Decl, prefix string) {
	for _, d := range decls {
		switch d := d.(type) {
		case *syntax.NamespaceDecl:
			r.collect(d.Decls, prefix+d.Name+"::")
		case *syntax.AggregateDecl:
			r.collectAggregate(d, prefix)
		case *syntax.VarDecl:
			r.globals[prefix+d.Name] = d
		}
	}
}

func (r *resolver) collectAggregate(d *syntax.AggregateDecl, prefix string) {
	d.Qual = prefix + d.Name
	r.aggs[d.Qual] = d
	for _, m := range d.Members {
		switch m := m.(type) {
		case *syntax.FieldDecl:
			m.Owner = d
			m.Qual = d.Qual + "::" + m.Name
		case *syntax.MethodDecl:
			m.Owner = d
		case *syntax.AggregateDecl:
			r.collectAggregate(m, d.Qual+"::")
		}
	}
}

func (r *resolver) bodies(decls []syntax.Decl, ns []string) {
	for _, d := range decls {
		switch d := d.(type) {
		case *syntax.NamespaceDecl:
			r.bodies(d.Decls, append(ns, d.Name))
		case *syntax.FuncDecl:
			r.fn(d.Params, d.Body, ns)
		case *syntax.AggregateDecl:
			for _, m := range d.Methods() {
				r.fn(m.Params, m.Body, ns)
			}
		}
	}
}

// A scope is one level of local bindings.
type scope struct {
	parent *scope
	vars   map[string]*syntax.VarDecl
	parms  map[string]*syntax.ParamDecl
}

func newScope(parent *scope) *scope {
	return &scope{
		parent: parent,
		vars:   make(map[string]*syntax.VarDecl),
		parms:  make(map[string]*syntax.ParamDecl),
	}
}

func (s *scope) lookup(name string) (*syntax.VarDecl, *syntax.ParamDecl) {
	for ; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, nil
		}
		if p, ok := s.parms[name]; ok {
			return nil, p
		}
	}
	return nil, nil
}

func (r *resolver) fn(params []*syntax.ParamDecl, body *syntax.BlockStmt, ns []string) {
	if body == nil {
		return
	}
	sc := newScope(nil)
	for _, p := range params {
		if p.Name != "" {
			sc.parms[p.Name] = p
		}
	}
	r.block(body, sc, ns)
}

func (r *resolver) block(b *syntax.BlockStmt, parent *scope, ns []string) {
	sc := newScope(parent)
	for _, s := range b.Stmts {
		r.stmt(s, sc, ns)
	}
}

func (r *resolver) stmt(s syntax.Stmt, sc *scope, ns []string) {
	switch s := s.(type) {
	case *syntax.BlockStmt:
		r.block(s, sc, ns)
	case *syntax.ExprStmt:
		r.exprType(s.X, sc, ns)
	case *syntax.DeclStmt:
		if s.Decl.Init != nil {
			r.exprType(s.Decl.Init, sc, ns)
		}
		sc.vars[s.Decl.Name] = s.Decl
	case *syntax.IfStmt:
		r.exprType(s.Cond, sc, ns)
		r.stmt(s.Then, newScope(sc), ns)
		if s.Else != nil {
			r.stmt(s.Else, newScope(sc), ns)
		}
	case *syntax.WhileStmt:
		r.exprType(s.Cond, sc, ns)
		r.stmt(s.Body, newScope(sc), ns)
	case *syntax.ForStmt:
		inner := newScope(sc)
		if s.Init != nil {
			r.stmt(s.Init, inner, ns)
		}
		if s.Cond != nil {
			r.exprType(s.Cond, inner, ns)
		}
		if s.Post != nil {
			r.exprType(s.Post, inner, ns)
		}
		r.stmt(s.Body, inner, ns)
	case *syntax.ReturnStmt:
		if s.Result != nil {
			r.exprType(s.Result, sc, ns)
		}
	}
}

// exprType resolves e and reports its type, when known.
func (r *resolver) exprType(e syntax.Expr, sc *scope, ns []string) (syntax.Type, bool) {
	switch e := e.(type) {
	case *syntax.Ident:
		if v, p := sc.lookup(e.Name); v != nil {
			e.Var = v
			return v.Type, true
		} else if p != nil {
			e.Parm = p
			return p.Type, true
		}
		if g := r.lookupGlobal(e.Name, ns); g != nil {
			e.Var = g
			return g.Type, true
		}
		return syntax.Type{}, false

	case *syntax.BasicLit:
		return syntax.Type{Name: "int"}, true

	case *syntax.ParenExpr:
		return r.exprType(e.X, sc, ns)

	case *syntax.MemberExpr:
		bt, ok := r.exprType(e.Base, sc, ns)
		if !ok {
			return syntax.Type{}, false
		}
		agg := r.lookupAggregate(bt.Name, ns)
		if agg == nil {
			return syntax.Type{}, false
		}
		for _, f := range agg.Fields() {
			if f.Name == e.Sel {
				e.Field = f
				return f.Type, true
			}
		}
		for _, m := range agg.Methods() {
			if m.Name == e.Sel {
				e.Method = m
				return m.Result, true
			}
		}
		return syntax.Type{}, false

	case *syntax.CallExpr:
		for _, a := range e.Args {
			r.exprType(a, sc, ns)
		}
		return r.exprType(e.Fun, sc, ns)

	case *syntax.UnaryExpr:
		t, ok := r.exprType(e.X, sc, ns)
		switch e.Op {
		case syntax.OpAddr:
			t = t.NonReference()
			t.Ptr = true
		case syntax.OpDeref:
			t.Ptr = false
		}
		return t, ok

	case *syntax.BinaryExpr:
		r.exprType(e.Y, sc, ns)
		return r.exprType(e.X, sc, ns)

	case *syntax.CondExpr:
		r.exprType(e.Cond, sc, ns)
		r.exprType(e.Else, sc, ns)
		return r.exprType(e.Then, sc, ns)
	}
	return syntax.Type{}, false
}

// lookupAggregate finds the aggregate a type name denotes, searching the
// innermost enclosing namespace outward, the way unqualified name lookup
// works in the source language.
func (r *resolver) lookupAggregate(name string, ns []string) *syntax.AggregateDecl {
	if name == "" {
		return nil
	}
	for i := len(ns); i >= 0; i-- {
		q := name
		if i > 0 {
			q = strings.Join(ns[:i], "::") + "::" + name
		}
		if d, ok := r.aggs[q]; ok {
			return d
		}
	}
	return nil
}

func (r *resolver) lookupGlobal(name string, ns []string) *syntax.VarDecl {
	for i := len(ns); i >= 0; i-- {
		q := name
		if i > 0 {
			q = strings.Join(ns[:i], "::") + "::" + name
		}
		if d, ok := r.globals[q]; ok {
			return d
		}
	}
	return nil
}

// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"encap/syntax"
)

// Accessors rewrites every access to the configured fields into calls on
// synthesized getter/setter methods, and inserts those methods into the
// owning aggregates.
//
// Direct use of a field lets non-const references and pointers escape,
// which the rewrite cannot follow: given `int &z = foo.x;` the alias z
// can later be read or written and statically tracking it is infeasible.
// Such sites are still rewritten, with an advisory warning on the side
// channel.
type Accessors struct {
	// Fields lists the qualified names of the fields to encapsulate,
	// e.g. "Foo::x" or "ns::Foo::x".
	Fields []string

	// EntryPoint names the free function whose body is scanned for
	// access sites. Defaults to "main".
	EntryPoint string
}

// NewAccessors builds an Accessors transform from its config section:
// either a bare sequence of qualified field names, or a mapping with
// Fields and optional EntryPoint keys.
func NewAccessors(cfg *yaml.Node) (Transform, error) {
	a := &Accessors{EntryPoint: "main"}
	if cfg == nil {
		return nil, xerrors.New("Accessors: missing configuration")
	}
	switch cfg.Kind {
	case yaml.SequenceNode:
		if err := cfg.Decode(&a.Fields); err != nil {
			return nil, xerrors.Errorf("Accessors configuration: %w", err)
		}
	case yaml.MappingNode:
		var m struct {
			Fields     []string `yaml:"Fields"`
			EntryPoint string   `yaml:"EntryPoint"`
		}
		if err := cfg.Decode(&m); err != nil {
			return nil, xerrors.Errorf("Accessors configuration: %w", err)
		}
		a.Fields = m.Fields
		if m.EntryPoint != "" {
			a.EntryPoint = m.EntryPoint
		}
	default:
		return nil, xerrors.New("Accessors: configuration must be a list of fields or a mapping")
	}
	return a, nil
}

func (a *Accessors) Name() string { return "Accessors" }

func (a *Accessors) Rewrite(snap *Snapshot) {
	p := &accessorsPass{
		snap:     snap,
		entry:    a.EntryPoint,
		targets:  make(map[string]bool),
		bindings: make(map[*syntax.FieldDecl]*fieldBinding),
	}
	for _, name := range a.Fields {
		p.targets[name] = true
	}
	p.collect(snap.Unit().Decls)
	for _, body := range p.bodies {
		p.stmtList(body.Stmts)
	}
	p.synthesize()
}

// A fieldBinding associates one tracked field with the rewrites made
// against it. Accessors are synthesized only for bindings that saw at
// least one access site, so re-running the transform over already
// rewritten text produces no further edits.
type fieldBinding struct {
	field     *syntax.FieldDecl
	rewritten bool
}

type accessorsPass struct {
	snap     *Snapshot
	entry    string
	targets  map[string]bool
	bindings map[*syntax.FieldDecl]*fieldBinding
	order    []*fieldBinding
	bodies   []*syntax.BlockStmt

	// Hoisted statements accumulated for the boundary statement being
	// processed, in source order of their access sites.
	before []string
	after  []string

	// forceBraces requests synthetic braces around the current boundary
	// even without hoists. Statement-level increment/decrement sets it,
	// so its rewrite is braced when it is the sole unbraced body of a
	// control statement.
	forceBraces bool
}

// collect walks the declaration tree, recording a binding for every
// targeted field and the executable bodies to scan. A configured name
// that is never found simply produces no binding.
func (p *accessorsPass) collect(decls []syntax.Decl) {
	for _, d := range decls {
		switch d := d.(type) {
		case *syntax.NamespaceDecl:
			p.collect(d.Decls)
		case *syntax.AggregateDecl:
			p.collectAggregate(d)
		case *syntax.FuncDecl:
			if d.Name == p.entry && d.Body != nil {
				p.bodies = append(p.bodies, d.Body)
			}
		}
	}
}

func (p *accessorsPass) collectAggregate(d *syntax.AggregateDecl) {
	for _, m := range d.Members {
		switch m := m.(type) {
		case *syntax.FieldDecl:
			if !p.targets[m.Qual] {
				continue
			}
			getter, setter := accessorNames(m)
			hasGet, hasSet := hasMethod(d, getter), hasMethod(d, setter)
			switch {
			case hasGet && hasSet:
				// Both accessors already declared: the field is already
				// encapsulated, and running again must change nothing.
				continue
			case hasGet || hasSet:
				name := getter
				if hasSet {
					name = setter
				}
				p.snap.ErrorAt(m.NamePos,
					"cannot encapsulate %s: %s already declares a method %s",
					m.Qual, d.Qual, name)
				continue
			}
			b := &fieldBinding{field: m}
			p.bindings[m] = b
			p.order = append(p.order, b)
		case *syntax.AggregateDecl:
			p.collectAggregate(m)
		}
	}
}

// hasMethod reports whether d declares a user-authored method name.
func hasMethod(d *syntax.AggregateDecl, name string) bool {
	for _, m := range d.Methods() {
		if !m.Implicit && m.Name == name {
			return true
		}
	}
	return false
}

func accessorNames(f *syntax.FieldDecl) (getter, setter string) {
	name := upperFirst(f.Name)
	return "get" + name, "set" + name
}

// upperFirst upper-cases exactly the first character of the field name.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Statement walk. Statements never nest inside expressions in this
// language, so each statement is a potential boundary for the hoisted
// edits its expressions produce.

func (p *accessorsPass) stmtList(ss []syntax.Stmt) {
	for _, s := range ss {
		p.stmt(s)
	}
}

func (p *accessorsPass) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.BlockStmt:
		p.stmtList(s.Stmts)

	case *syntax.ExprStmt:
		p.boundary(s, func() {
			p.classify(s.X, true)
		})

	case *syntax.DeclStmt:
		p.checkEscape(s)
		p.boundary(s, func() {
			if s.Decl.Init != nil {
				p.classify(s.Decl.Init, false)
			}
		})

	case *syntax.IfStmt:
		// Hoists from the condition anchor on the whole statement: the
		// condition evaluates once, before entry.
		p.boundary(s, func() {
			p.classify(s.Cond, false)
		})
		p.stmt(s.Then)
		if s.Else != nil {
			p.stmt(s.Else)
		}

	case *syntax.WhileStmt:
		p.boundary(s, func() {
			p.classify(s.Cond, false)
		})
		p.stmt(s.Body)

	case *syntax.ForStmt:
		p.boundary(s, func() {
			switch init := s.Init.(type) {
			case *syntax.ExprStmt:
				p.classify(init.X, false)
			case *syntax.DeclStmt:
				p.checkEscape(init)
				if init.Decl.Init != nil {
					p.classify(init.Decl.Init, false)
				}
			}
			if s.Cond != nil {
				p.classify(s.Cond, false)
			}
			if s.Post != nil {
				p.classify(s.Post, false)
			}
		})
		p.stmt(s.Body)

	case *syntax.ReturnStmt:
		p.boundary(s, func() {
			if s.Result != nil {
				p.classify(s.Result, false)
			}
		})
	}
}

// boundary runs f with fresh hoist lists and then flushes any hoisted
// statements around s, bracing s when its parent is not a block so the
// hoisted siblings stay legal.
func (p *accessorsPass) boundary(s syntax.Stmt, f func()) {
	savedBefore, savedAfter, savedForce := p.before, p.after, p.forceBraces
	p.before, p.after, p.forceBraces = nil, nil, false
	f()
	before, after, force := p.before, p.after, p.forceBraces
	p.before, p.after, p.forceBraces = savedBefore, savedAfter, savedForce

	if len(before) == 0 && len(after) == 0 && !force {
		return
	}
	needBraces := false
	if parent := p.snap.Parent(s); parent != nil {
		if _, ok := parent.(*syntax.BlockStmt); !ok {
			needBraces = true
		}
	}
	if len(before) == 0 && len(after) == 0 && !needBraces {
		return
	}
	if needBraces {
		p.snap.InsertAt(s.Pos(), "{\n")
	}
	for _, h := range before {
		p.snap.InsertAt(s.Pos(), h+"\n")
	}
	for _, h := range after {
		p.snap.InsertAt(s.End(), "\n"+h)
	}
	if needBraces {
		p.snap.InsertAt(s.End(), "\n}")
	}
}

// classify recursively visits an expression tree, dispatching every
// access site of a tracked field to the planner. top reports whether e
// is the entire expression of an expression statement, in which case a
// write site is its own statement boundary and rewrites in place.
//
// Only the left operand of a binary operator is checked for field
// identity: an assignment whose right side reads a tracked field is
// classified as a read of that sub-expression.
func (p *accessorsPass) classify(e syntax.Expr, top bool) {
	// A write site wrapped in parentheses is replaced together with
	// them; the replacement call needs no grouping.
	if inner := unparen(e); inner != e {
		switch ie := inner.(type) {
		case *syntax.BinaryExpr:
			if ie.Op.IsAssign() {
				if m := p.trackedMember(ie.X); m != nil {
					p.assign(ie, m, e, top)
					return
				}
			}
		case *syntax.UnaryExpr:
			if ie.Op.IsIncDec() {
				if m := p.trackedMember(ie.X); m != nil {
					p.incDec(ie, m, e, top)
					return
				}
			}
		}
		p.classify(inner, top)
		return
	}

	switch e := e.(type) {
	case *syntax.BinaryExpr:
		if e.Op.IsAssign() {
			if m := p.trackedMember(e.X); m != nil {
				p.assign(e, m, e, top)
				return
			}
		}
		p.classify(e.X, false)
		p.classify(e.Y, false)

	case *syntax.UnaryExpr:
		if e.Op.IsIncDec() {
			if m := p.trackedMember(e.X); m != nil {
				p.incDec(e, m, e, top)
				return
			}
		}
		if e.Op == syntax.OpAddr {
			if m := p.trackedMember(e.X); m != nil {
				p.snap.WarnAt(e.Pos(),
					"a pointer to %s escapes here; uses of the alias are not rewritten",
					m.Field.Qual)
			}
		}
		p.classify(e.X, false)

	case *syntax.MemberExpr:
		if m := p.trackedMember(e); m != nil {
			p.read(m)
			return
		}
		p.classify(e.Base, false)

	case *syntax.CallExpr:
		p.classify(e.Fun, false)
		for _, a := range e.Args {
			p.classify(a, false)
		}

	case *syntax.CondExpr:
		p.classify(e.Cond, false)
		p.classify(e.Then, false)
		p.classify(e.Else, false)
	}
}

// unparen strips any parentheses around e.
func unparen(e syntax.Expr) syntax.Expr {
	for {
		pe, ok := e.(*syntax.ParenExpr)
		if !ok {
			return e
		}
		e = pe.X
	}
}

// trackedMember reports whether e is a member expression denoting a
// tracked field, and marks the binding as rewritten if so.
func (p *accessorsPass) trackedMember(e syntax.Expr) *syntax.MemberExpr {
	m, ok := e.(*syntax.MemberExpr)
	if !ok || m.Field == nil {
		return nil
	}
	b := p.bindings[m.Field]
	if b == nil {
		return nil
	}
	b.rewritten = true
	return m
}

// Planner: each matched site either replaces itself in place (when the
// site is the whole statement) or hoists a setter call next to the
// statement boundary and leaves a getter call at the occurrence.

func (p *accessorsPass) assign(e *syntax.BinaryExpr, m *syntax.MemberExpr, node syntax.Expr, top bool) {
	call := p.setCall(e, m)
	if top {
		p.snap.ReplaceNode(node, call)
		return
	}
	// The assignment's value is consumed by the surrounding expression.
	// Hoist the setter before the boundary; the occurrence reads the
	// just-assigned value back through the getter.
	p.before = append(p.before, call+";")
	p.snap.ReplaceNode(node, p.getCall(m))
}

func (p *accessorsPass) incDec(e *syntax.UnaryExpr, m *syntax.MemberExpr, node syntax.Expr, top bool) {
	call := p.incDecCall(e, m)
	if top {
		p.snap.ReplaceNode(node, call)
		p.forceBraces = true
		return
	}
	if e.Postfix {
		// The old value must be observed before the mutation.
		p.after = append(p.after, call+";")
	} else {
		p.before = append(p.before, call+";")
	}
	p.snap.ReplaceNode(node, p.getCall(m))
}

func (p *accessorsPass) read(m *syntax.MemberExpr) {
	p.snap.ReplaceNode(m, p.getCall(m))
}

// render pretty-prints an expression with nested access sites already
// rewritten: reads become getter calls in place, and nested writes
// append their hoisted setter statements to the current boundary's
// lists. Rendered text replaces whole spans, so the nested sites never
// turn into overlapping edits of their own.
func (p *accessorsPass) render(e syntax.Expr) string {
	return syntax.PrintExprWith(e, p.renderSite)
}

func (p *accessorsPass) renderSite(e syntax.Expr) (string, bool) {
	switch e := e.(type) {
	case *syntax.BinaryExpr:
		if e.Op.IsAssign() {
			if m := p.trackedMember(e.X); m != nil {
				p.before = append(p.before, p.setCall(e, m)+";")
				return p.getCall(m), true
			}
		}
	case *syntax.UnaryExpr:
		if e.Op.IsIncDec() {
			if m := p.trackedMember(e.X); m != nil {
				call := p.incDecCall(e, m) + ";"
				if e.Postfix {
					p.after = append(p.after, call)
				} else {
					p.before = append(p.before, call)
				}
				return p.getCall(m), true
			}
		}
	case *syntax.MemberExpr:
		if m := p.trackedMember(e); m != nil {
			return p.getCall(m), true
		}
	}
	return "", false
}

// sel returns the member access spelling for m's receiver.
func sel(m *syntax.MemberExpr) string {
	if m.Arrow {
		return "->"
	}
	return "."
}

func (p *accessorsPass) getCall(m *syntax.MemberExpr) string {
	getter, _ := accessorNames(m.Field)
	return p.render(m.Base) + sel(m) + getter + "()"
}

// setCall builds the setter call replacing a plain or compound
// assignment: `base.setX( rhs )` or `base.setX( base.getX() op rhs )`.
func (p *accessorsPass) setCall(e *syntax.BinaryExpr, m *syntax.MemberExpr) string {
	getter, setter := accessorNames(m.Field)
	base := p.render(m.Base)
	rhs := p.render(e.Y)
	if e.Op.IsCompoundAssign() {
		return fmt.Sprintf("%s%s%s( %s%s%s() %s %s )",
			base, sel(m), setter, base, sel(m), getter, e.Op.Underlying(), rhs)
	}
	return fmt.Sprintf("%s%s%s( %s )", base, sel(m), setter, rhs)
}

// incDecCall builds `base.setX( base.getX() + 1)` (or - for decrement).
func (p *accessorsPass) incDecCall(e *syntax.UnaryExpr, m *syntax.MemberExpr) string {
	getter, setter := accessorNames(m.Field)
	base := p.render(m.Base)
	dir := "+"
	if e.Op == syntax.OpDecr {
		dir = "-"
	}
	return fmt.Sprintf("%s%s%s( %s%s%s() %s 1)",
		base, sel(m), setter, base, sel(m), getter, dir)
}

// checkEscape warns when a declaration binds a non-const reference to a
// tracked field: the alias can be read or written later and the rewrite
// cannot follow it. Pointer escapes via address-of are reported by the
// classifier.
func (p *accessorsPass) checkEscape(s *syntax.DeclStmt) {
	t := s.Decl.Type
	if !t.Ref || t.Const || s.Decl.Init == nil {
		return
	}
	var found *syntax.MemberExpr
	syntax.Inspect(s.Decl.Init, func(n syntax.Node) bool {
		if found != nil {
			return false
		}
		if m, ok := n.(*syntax.MemberExpr); ok && m.Field != nil && p.bindings[m.Field] != nil {
			found = m
			return false
		}
		return true
	})
	if found != nil {
		p.snap.WarnAt(s.Pos(),
			"a non-const reference to %s escapes here; uses of the alias are not rewritten",
			found.Field.Qual)
	}
}

// Synthesizer: for each binding with at least one rewrite, insert the
// accessor declarations into the owning aggregate, immediately after the
// last user-authored method, or immediately before the closing brace
// when the aggregate has no user-authored method at all.

func (p *accessorsPass) synthesize() {
	for _, b := range p.order {
		if !b.rewritten {
			continue
		}
		f := b.field
		text := accessorText(f)
		var last *syntax.MethodDecl
		for _, m := range f.Owner.Methods() {
			if m.Implicit {
				continue
			}
			last = m
		}
		if last == nil {
			p.snap.InsertAt(f.Owner.Rbrace, text)
		} else {
			p.snap.InsertAt(last.End(), "\n"+strings.TrimSuffix(text, "\n"))
		}
	}
}

// accessorText renders the three synthesized members: a const getter
// returning a const reference, a non-const getter returning a mutable
// reference, and a setter taking a const reference.
func accessorText(f *syntax.FieldDecl) string {
	name := upperFirst(f.Name)
	typ := f.Type.NonReference()
	ctyp := typ.WithConst()
	var b strings.Builder
	fmt.Fprintf(&b, "%s &get%s() const { return %s; };\n", ctyp, name, f.Name)
	fmt.Fprintf(&b, "%s &get%s()  { return %s; };\n", typ, name, f.Name)
	fmt.Fprintf(&b, "void set%s(%s& _%s) { %s = _%s; };\n", name, ctyp, f.Name, f.Name, f.Name)
	return b.String()
}

// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "testing"

func TestParents(t *testing.T) {
	x := id("a")
	es := &ExprStmt{X: x}
	blk := &BlockStmt{Stmts: []Stmt{es}}
	ifs := &IfStmt{Cond: id("c"), Then: blk}
	body := &BlockStmt{Stmts: []Stmt{ifs}}
	fn := &FuncDecl{Name: "f", Body: body}
	u := &Unit{Decls: []Decl{fn}}

	parents := Parents(u)
	for _, tt := range []struct{ child, parent Node }{
		{x, es},
		{es, blk},
		{blk, ifs},
		{ifs, body},
		{body, fn},
		{fn, u},
	} {
		if have := parents[tt.child]; have != tt.parent {
			t.Errorf("parent(%T) = %T, want %T", tt.child, have, tt.parent)
		}
	}
	if parents[u] != nil {
		t.Errorf("root has a parent")
	}
}

func TestInspectSkipsNil(t *testing.T) {
	// An if with no else and a method with no body must not panic and
	// must not visit nil slots.
	m := &MethodDecl{Name: "m"}
	ifs := &IfStmt{Cond: id("c"), Then: &BlockStmt{}}
	n := 0
	Inspect(ifs, func(Node) bool { n++; return true })
	if n != 3 {
		t.Errorf("visited %d nodes, want 3", n)
	}
	Inspect(m, func(Node) bool { return true })
}

// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "testing"

func id(name string) *Ident  { return &Ident{Name: name} }
func lit(v string) *BasicLit { return &BasicLit{Value: v} }

func member(base Expr, sel string) *MemberExpr {
	return &MemberExpr{Base: base, Sel: sel}
}

func TestPrintExpr(t *testing.T) {
	tests := []struct {
		e    Expr
		want string
	}{
		{id("a"), "a"},
		{member(id("p"), "x"), "p.x"},
		{&MemberExpr{Base: id("q"), Arrow: true, Sel: "x"}, "q->x"},
		{&BinaryExpr{Op: OpAdd, X: id("a"), Y: id("b")}, "a + b"},
		{
			// Parens reappear where precedence demands them.
			&BinaryExpr{Op: OpMul, X: &BinaryExpr{Op: OpAdd, X: id("a"), Y: id("b")}, Y: id("c")},
			"(a + b) * c",
		},
		{
			&BinaryExpr{Op: OpAdd, X: id("a"), Y: &BinaryExpr{Op: OpMul, X: id("b"), Y: id("c")}},
			"a + b * c",
		},
		{
			&UnaryExpr{Op: OpNeg, X: &BinaryExpr{Op: OpAdd, X: id("a"), Y: id("b")}},
			"-(a + b)",
		},
		{&UnaryExpr{Op: OpIncr, X: member(id("p"), "x"), Postfix: true}, "p.x++"},
		{&UnaryExpr{Op: OpDecr, X: member(id("p"), "x")}, "--p.x"},
		{
			&BinaryExpr{Op: OpAssign, X: member(id("p"), "x"), Y: lit("3")},
			"p.x = 3",
		},
		{
			&BinaryExpr{Op: OpAddAssign, X: member(id("p"), "x"), Y: lit("3")},
			"p.x += 3",
		},
		{
			&CallExpr{Fun: member(id("p"), "getX")},
			"p.getX()",
		},
		{
			&CallExpr{Fun: id("f"), Args: []Expr{id("a"), lit("1")}},
			"f(a, 1)",
		},
		{
			&ParenExpr{X: &BinaryExpr{Op: OpAdd, X: id("a"), Y: id("b")}},
			"(a + b)",
		},
		{
			&CondExpr{Cond: id("a"), Then: id("b"), Else: id("c")},
			"a ? b : c",
		},
	}
	for _, tt := range tests {
		if have := PrintExpr(tt.e); have != tt.want {
			t.Errorf("PrintExpr = %q, want %q", have, tt.want)
		}
	}
}

func TestPrintExprWith(t *testing.T) {
	// a + p.x, with the member access substituted.
	target := member(id("p"), "x")
	e := &BinaryExpr{Op: OpAdd, X: id("a"), Y: target}
	have := PrintExprWith(e, func(sub Expr) (string, bool) {
		if sub == Expr(target) {
			return "p.getX()", true
		}
		return "", false
	})
	if want := "a + p.getX()"; have != want {
		t.Errorf("PrintExprWith = %q, want %q", have, want)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{Type{Name: "int"}, "int"},
		{Type{Const: true, Name: "int"}, "const int"},
		{Type{Name: "int", Ref: true}, "int &"},
		{Type{Const: true, Name: "Point", Ptr: true}, "const Point *"},
	}
	for _, tt := range tests {
		if have := tt.t.String(); have != tt.want {
			t.Errorf("Type%+v.String() = %q, want %q", tt.t, have, tt.want)
		}
	}
}

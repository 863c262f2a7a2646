// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"encap/syntax"
)

func text(src string, n syntax.Node) string {
	return src[n.Pos():n.End()]
}

func TestUnit(t *testing.T) {
	src := `struct Point {
	int x;
	int y;
	int norm() { return 0; }
};

int main() {
	Point p;
	p.x = p.y + 1;
	return 0;
}
`
	u, err := Unit("point.cpp", []byte(src))
	require.NoError(t, err)
	require.Len(t, u.Decls, 2)

	point, ok := u.Decls[0].(*syntax.AggregateDecl)
	require.True(t, ok)
	require.Equal(t, "struct", point.Keyword)
	require.Equal(t, "Point", point.Qual)
	require.Len(t, point.Fields(), 2)
	require.Len(t, point.Methods(), 1)
	require.Equal(t, "Point::x", point.Fields()[0].Qual)
	require.Same(t, point, point.Fields()[0].Owner)

	fn, ok := u.Decls[1].(*syntax.FuncDecl)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body.Stmts, 3)

	decl := fn.Body.Stmts[0].(*syntax.DeclStmt)
	require.Equal(t, "Point", decl.Decl.Type.Name)
	require.Equal(t, "p", decl.Decl.Name)

	es := fn.Body.Stmts[1].(*syntax.ExprStmt)
	require.Equal(t, "p.x = p.y + 1;", text(src, es))

	asn := es.X.(*syntax.BinaryExpr)
	require.Equal(t, syntax.OpAssign, asn.Op)

	lhs := asn.X.(*syntax.MemberExpr)
	require.NotNil(t, lhs.Field)
	require.Equal(t, "Point::x", lhs.Field.Qual)
	require.Same(t, decl.Decl, lhs.Base.(*syntax.Ident).Var)
	require.Equal(t, "p.x", text(src, lhs))

	add := asn.Y.(*syntax.BinaryExpr)
	require.Equal(t, syntax.OpAdd, add.Op)
	rhs := add.X.(*syntax.MemberExpr)
	require.NotNil(t, rhs.Field)
	require.Equal(t, "Point::y", rhs.Field.Qual)
}

func TestNamespaces(t *testing.T) {
	src := `namespace geo {
struct Vec {
	int len;
};
}

int main() {
	geo::Vec v;
	v.len = 1;
	return 0;
}
`
	u, err := Unit("vec.cpp", []byte(src))
	require.NoError(t, err)

	ns := u.Decls[0].(*syntax.NamespaceDecl)
	require.Equal(t, "geo", ns.Name)
	vec := ns.Decls[0].(*syntax.AggregateDecl)
	require.Equal(t, "geo::Vec", vec.Qual)
	require.Equal(t, "geo::Vec::len", vec.Fields()[0].Qual)

	fn := u.Decls[1].(*syntax.FuncDecl)
	asn := fn.Body.Stmts[1].(*syntax.ExprStmt).X.(*syntax.BinaryExpr)
	m := asn.X.(*syntax.MemberExpr)
	require.Same(t, vec.Fields()[0], m.Field)
}

func TestIncDec(t *testing.T) {
	src := `struct C { int n; };
int main() {
	C c;
	c.n++;
	++c.n;
	return c.n;
}
`
	u, err := Unit("c.cpp", []byte(src))
	require.NoError(t, err)

	fn := u.Decls[1].(*syntax.FuncDecl)
	post := fn.Body.Stmts[1].(*syntax.ExprStmt).X.(*syntax.UnaryExpr)
	require.Equal(t, syntax.OpIncr, post.Op)
	require.True(t, post.Postfix)
	require.Equal(t, "c.n++", text(src, post))
	require.NotNil(t, post.X.(*syntax.MemberExpr).Field)

	pre := fn.Body.Stmts[2].(*syntax.ExprStmt).X.(*syntax.UnaryExpr)
	require.Equal(t, syntax.OpIncr, pre.Op)
	require.False(t, pre.Postfix)

	ret := fn.Body.Stmts[3].(*syntax.ReturnStmt)
	require.NotNil(t, ret.Result.(*syntax.MemberExpr).Field)
}

func TestArrowMember(t *testing.T) {
	src := `struct C { int n; };
int main() {
	C c;
	C *q = &c;
	q->n = 1;
	return 0;
}
`
	u, err := Unit("c.cpp", []byte(src))
	require.NoError(t, err)

	fn := u.Decls[1].(*syntax.FuncDecl)
	ptr := fn.Body.Stmts[1].(*syntax.DeclStmt)
	require.True(t, ptr.Decl.Type.Ptr)

	asn := fn.Body.Stmts[2].(*syntax.ExprStmt).X.(*syntax.BinaryExpr)
	m := asn.X.(*syntax.MemberExpr)
	require.True(t, m.Arrow)
	require.NotNil(t, m.Field)
	require.Equal(t, "C::n", m.Field.Qual)
}

func TestForLoop(t *testing.T) {
	src := `struct C { int n; };
int main() {
	C c;
	for (int i = 0; i < 3; i++) {
		c.n += i;
	}
	return 0;
}
`
	u, err := Unit("c.cpp", []byte(src))
	require.NoError(t, err)

	fn := u.Decls[1].(*syntax.FuncDecl)
	loop := fn.Body.Stmts[1].(*syntax.ForStmt)
	require.IsType(t, &syntax.DeclStmt{}, loop.Init)
	require.IsType(t, &syntax.BinaryExpr{}, loop.Cond)
	post := loop.Post.(*syntax.UnaryExpr)
	require.True(t, post.Postfix)

	body := loop.Body.(*syntax.BlockStmt)
	ca := body.Stmts[0].(*syntax.ExprStmt).X.(*syntax.BinaryExpr)
	require.Equal(t, syntax.OpAddAssign, ca.Op)
	require.NotNil(t, ca.X.(*syntax.MemberExpr).Field)
	require.NotNil(t, ca.Y.(*syntax.Ident).Var)
}

func TestAccessorShapes(t *testing.T) {
	// The parser must accept what the rewriter synthesizes.
	src := `struct Point {
	int x;
const int &getX() const { return x; };
int &getX()  { return x; };
void setX(const int& _x) { x = _x; };
};

int main() {
	Point p;
	p.setX( p.getX() + 1);
	return 0;
}
`
	u, err := Unit("point.cpp", []byte(src))
	require.NoError(t, err)

	point := u.Decls[0].(*syntax.AggregateDecl)
	require.Len(t, point.Fields(), 1)
	require.Len(t, point.Methods(), 3)
	getter := point.Methods()[0]
	require.Equal(t, "getX", getter.Name)
	require.True(t, getter.Const)
	require.True(t, getter.Result.Ref)
	require.True(t, getter.Result.Const)

	fn := u.Decls[1].(*syntax.FuncDecl)
	call := fn.Body.Stmts[1].(*syntax.ExprStmt).X.(*syntax.CallExpr)
	m := call.Fun.(*syntax.MemberExpr)
	require.Nil(t, m.Field)
	require.NotNil(t, m.Method)
	require.Equal(t, "setX", m.Method.Name)
}

func TestParseError(t *testing.T) {
	_, err := Unit("t.cpp", []byte("struct {"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "t.cpp:1:"), "error = %v", err)
}

func TestLexError(t *testing.T) {
	_, err := Unit("t.cpp", []byte("int main() { char c = 'x; }"))
	require.Error(t, err)
}

// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Inspect traverses the tree rooted at n in depth-first source order,
// calling f for each node. If f returns false, the node's children are
// skipped. Nil child slots (an absent else arm, an omitted for clause)
// are not visited.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range children(n) {
		if c != nil {
			Inspect(c, f)
		}
	}
}

// Parents returns a lookup table from each node under root to its
// parent. It is built once per tree and replaces repeated upward
// re-walks when the rewriter needs a node's statement boundary.
func Parents(root Node) map[Node]Node {
	parents := make(map[Node]Node)
	var walk func(n Node)
	walk = func(n Node) {
		for _, c := range children(n) {
			if c != nil {
				parents[c] = n
				walk(c)
			}
		}
	}
	walk(root)
	return parents
}

// children returns n's direct children in source order. Absent slots are
// returned as nil entries so callers decide how to treat them.
func children(n Node) []Node {
	switch n := n.(type) {
	case *Unit:
		return declNodes(n.Decls)
	case *NamespaceDecl:
		return declNodes(n.Decls)
	case *AggregateDecl:
		return declNodes(n.Members)
	case *FieldDecl:
		return nil
	case *MethodDecl:
		kids := paramNodes(n.Params)
		kids = append(kids, blockOrNil(n.Body))
		return kids
	case *FuncDecl:
		kids := paramNodes(n.Params)
		kids = append(kids, blockOrNil(n.Body))
		return kids
	case *ParamDecl:
		return nil
	case *VarDecl:
		return []Node{exprOrNil(n.Init)}

	case *BlockStmt:
		kids := make([]Node, len(n.Stmts))
		for i, s := range n.Stmts {
			kids[i] = s
		}
		return kids
	case *ExprStmt:
		return []Node{n.X}
	case *DeclStmt:
		return []Node{n.Decl}
	case *IfStmt:
		return []Node{n.Cond, n.Then, stmtOrNil(n.Else)}
	case *WhileStmt:
		return []Node{n.Cond, n.Body}
	case *ForStmt:
		return []Node{stmtOrNil(n.Init), exprOrNil(n.Cond), exprOrNil(n.Post), n.Body}
	case *ReturnStmt:
		return []Node{exprOrNil(n.Result)}

	case *Ident, *BasicLit:
		return nil
	case *MemberExpr:
		return []Node{n.Base}
	case *UnaryExpr:
		return []Node{n.X}
	case *BinaryExpr:
		return []Node{n.X, n.Y}
	case *CallExpr:
		kids := []Node{n.Fun}
		for _, a := range n.Args {
			kids = append(kids, a)
		}
		return kids
	case *ParenExpr:
		return []Node{n.X}
	case *CondExpr:
		return []Node{n.Cond, n.Then, n.Else}
	}
	return nil
}

func declNodes(ds []Decl) []Node {
	kids := make([]Node, len(ds))
	for i, d := range ds {
		kids[i] = d
	}
	return kids
}

func paramNodes(ps []*ParamDecl) []Node {
	kids := make([]Node, len(ps))
	for i, p := range ps {
		kids[i] = p
	}
	return kids
}

// stmtOrNil converts a possibly nil Stmt to a possibly nil Node.
// A plain conversion would produce a non-nil interface holding a nil
// pointer.
func stmtOrNil(s Stmt) Node {
	if s == nil {
		return nil
	}
	return s
}

func exprOrNil(e Expr) Node {
	if e == nil {
		return nil
	}
	return e
}

func blockOrNil(b *BlockStmt) Node {
	if b == nil {
		return nil
	}
	return b
}

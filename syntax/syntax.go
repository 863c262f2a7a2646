// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax defines the resolved syntax tree for the C-family subset
// the rewriter operates on. The tree is a closed, tagged set of node
// variants: every node is one of the types below, carries a byte-offset
// span into the unit text, and is immutable once the front end has
// produced it.
package syntax

// A Node is any syntax tree node.
type Node interface {
	Pos() Pos
	End() Pos
}

// A Decl is a declaration node.
type Decl interface {
	Node
	declNode()
}

// A Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// An Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// A Unit is one parsed compilation unit.
type Unit struct {
	Span
	Name  string
	Decls []Decl
}

// A Type is the spelled form of a declared type: an optional const
// qualifier, a (possibly qualified) name, and an optional reference or
// pointer declarator.
type Type struct {
	Const bool
	Name  string
	Ref   bool
	Ptr   bool
}

// NonReference returns the type with any reference declarator stripped.
func (t Type) NonReference() Type {
	t.Ref = false
	return t
}

// WithConst returns the const-qualified form of the type.
func (t Type) WithConst() Type {
	t.Const = true
	return t
}

func (t Type) String() string {
	s := t.Name
	if t.Const {
		s = "const " + s
	}
	switch {
	case t.Ref:
		s += " &"
	case t.Ptr:
		s += " *"
	}
	return s
}

// Declarations.

type (
	// A NamespaceDecl is `namespace name { decls }`.
	NamespaceDecl struct {
		Span
		Name  string
		Decls []Decl
	}

	// An AggregateDecl is a struct or class declaration. Members holds
	// fields, methods, and nested declarations in declaration order.
	AggregateDecl struct {
		Span
		Keyword string // "struct" or "class"
		Name    string
		NamePos Pos
		Members []Decl
		Rbrace  Pos // position of the closing '}'
		Qual    string
	}

	// A FieldDecl is a data member of an aggregate.
	FieldDecl struct {
		Span
		Type    Type
		Name    string
		NamePos Pos
		Owner   *AggregateDecl
		Qual    string
	}

	// A MethodDecl is a member function with an inline body.
	// Implicit marks compiler-synthesized methods, which a front end may
	// report but which never correspond to user-authored source.
	MethodDecl struct {
		Span
		Result   Type
		Name     string
		NamePos  Pos
		Params   []*ParamDecl
		Const    bool
		Body     *BlockStmt
		Implicit bool
		Owner    *AggregateDecl
	}

	// A FuncDecl is a free function.
	FuncDecl struct {
		Span
		Result  Type
		Name    string
		NamePos Pos
		Params  []*ParamDecl
		Body    *BlockStmt
	}

	// A ParamDecl is one function or method parameter.
	ParamDecl struct {
		Span
		Type Type
		Name string
	}

	// A VarDecl is a variable declaration, either at scope level or as
	// the payload of a DeclStmt. Init may be nil.
	VarDecl struct {
		Span
		Type    Type
		Name    string
		NamePos Pos
		Init    Expr
	}
)

func (*NamespaceDecl) declNode() {}
func (*AggregateDecl) declNode() {}
func (*FieldDecl) declNode()     {}
func (*MethodDecl) declNode()    {}
func (*FuncDecl) declNode()      {}
func (*ParamDecl) declNode()     {}
func (*VarDecl) declNode()       {}

// Methods returns the aggregate's member functions in declaration order.
func (d *AggregateDecl) Methods() []*MethodDecl {
	var ms []*MethodDecl
	for _, m := range d.Members {
		if m, ok := m.(*MethodDecl); ok {
			ms = append(ms, m)
		}
	}
	return ms
}

// Fields returns the aggregate's data members in declaration order.
func (d *AggregateDecl) Fields() []*FieldDecl {
	var fs []*FieldDecl
	for _, m := range d.Members {
		if f, ok := m.(*FieldDecl); ok {
			fs = append(fs, f)
		}
	}
	return fs
}

// Statements.

type (
	// A BlockStmt is `{ stmts }`.
	BlockStmt struct {
		Span
		Stmts []Stmt
	}

	// An ExprStmt is an expression used as a statement, `x;`.
	// Its span includes the terminating semicolon.
	ExprStmt struct {
		Span
		X Expr
	}

	// A DeclStmt is a local variable declaration statement.
	// Its span includes the terminating semicolon.
	DeclStmt struct {
		Span
		Decl *VarDecl
	}

	// An IfStmt is `if (cond) then` with an optional else arm.
	// Else is nil when the branch is absent.
	IfStmt struct {
		Span
		Cond Expr
		Then Stmt
		Else Stmt
	}

	// A WhileStmt is `while (cond) body`.
	WhileStmt struct {
		Span
		Cond Expr
		Body Stmt
	}

	// A ForStmt is `for (init; cond; post) body`.
	// Init, Cond, and Post may each be nil.
	ForStmt struct {
		Span
		Init Stmt
		Cond Expr
		Post Expr
		Body Stmt
	}

	// A ReturnStmt is `return x;` with an optional result.
	ReturnStmt struct {
		Span
		Result Expr
	}
)

func (*BlockStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()   {}
func (*DeclStmt) stmtNode()   {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}

// Expressions.

type (
	// An Ident names a variable or function.
	Ident struct {
		Span
		Name string
		Var  *VarDecl   // resolved local or global, or nil
		Parm *ParamDecl // resolved parameter, or nil
	}

	// A BasicLit is an integer, character, or string literal.
	// Value holds the literal's source spelling.
	BasicLit struct {
		Span
		Value string
	}

	// A MemberExpr is `base.sel` or `base->sel`. The resolver fills in
	// Field or Method with the declaration the selector denotes.
	MemberExpr struct {
		Span
		Base   Expr
		Arrow  bool
		Sel    string
		SelPos Pos
		Field  *FieldDecl
		Method *MethodDecl
	}

	// A UnaryExpr is a prefix or postfix unary operation.
	UnaryExpr struct {
		Span
		Op      Op
		X       Expr
		Postfix bool
	}

	// A BinaryExpr is a binary operation, including assignment and
	// compound assignment.
	BinaryExpr struct {
		Span
		Op    Op
		OpPos Pos
		X     Expr
		Y     Expr
	}

	// A CallExpr is `fun(args)`.
	CallExpr struct {
		Span
		Fun  Expr
		Args []Expr
	}

	// A ParenExpr is a parenthesized expression as written in source.
	ParenExpr struct {
		Span
		X Expr
	}

	// A CondExpr is `cond ? then : else`.
	CondExpr struct {
		Span
		Cond Expr
		Then Expr
		Else Expr
	}
)

func (*Ident) exprNode()      {}
func (*BasicLit) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*ParenExpr) exprNode()  {}
func (*CondExpr) exprNode()   {}

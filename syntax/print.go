// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "strings"

// A RewriteFunc substitutes replacement text for chosen subtrees while
// printing. It returns the text to emit and true, or false to let the
// printer render the node itself.
type RewriteFunc func(Expr) (string, bool)

// PrintExpr renders an expression subtree back to source text.
func PrintExpr(e Expr) string {
	return PrintExprWith(e, nil)
}

// PrintExprWith renders an expression subtree, consulting rw at every
// node before printing it.
func PrintExprWith(e Expr, rw RewriteFunc) string {
	p := &printer{rw: rw}
	p.expr(e, 0)
	return p.b.String()
}

// Printing precedence levels. Binary operators occupy 1 through 10 (see
// Op.Precedence); the levels below bracket them.
const (
	precLowest  = 0 // assignment, conditional
	precUnary   = 11
	precPostfix = 12
	precPrimary = 13
)

type printer struct {
	b  strings.Builder
	rw RewriteFunc
}

// expr prints e, parenthesizing it when its own binding power is weaker
// than the context demands.
func (p *printer) expr(e Expr, ctx int) {
	if p.rw != nil {
		if s, ok := p.rw(e); ok {
			p.b.WriteString(s)
			return
		}
	}
	switch e := e.(type) {
	case *Ident:
		p.b.WriteString(e.Name)

	case *BasicLit:
		p.b.WriteString(e.Value)

	case *ParenExpr:
		p.b.WriteString("(")
		p.expr(e.X, precLowest)
		p.b.WriteString(")")

	case *MemberExpr:
		p.expr(e.Base, precPostfix)
		if e.Arrow {
			p.b.WriteString("->")
		} else {
			p.b.WriteString(".")
		}
		p.b.WriteString(e.Sel)

	case *CallExpr:
		p.expr(e.Fun, precPostfix)
		p.b.WriteString("(")
		for i, a := range e.Args {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expr(a, precLowest)
		}
		p.b.WriteString(")")

	case *UnaryExpr:
		if e.Postfix {
			p.paren(ctx > precPostfix, func() {
				p.expr(e.X, precPostfix)
				p.b.WriteString(e.Op.String())
			})
			return
		}
		p.paren(ctx > precUnary, func() {
			p.b.WriteString(e.Op.String())
			p.expr(e.X, precUnary)
		})

	case *BinaryExpr:
		if e.Op.IsAssign() {
			p.paren(ctx > precLowest, func() {
				p.expr(e.X, precUnary)
				p.b.WriteString(" " + e.Op.String() + " ")
				p.expr(e.Y, precLowest)
			})
			return
		}
		prec := e.Op.Precedence()
		p.paren(ctx > prec, func() {
			p.expr(e.X, prec)
			p.b.WriteString(" " + e.Op.String() + " ")
			p.expr(e.Y, prec+1)
		})

	case *CondExpr:
		p.paren(ctx > precLowest, func() {
			p.expr(e.Cond, 1)
			p.b.WriteString(" ? ")
			p.expr(e.Then, precLowest)
			p.b.WriteString(" : ")
			p.expr(e.Else, precLowest)
		})
	}
}

func (p *printer) paren(need bool, f func()) {
	if need {
		p.b.WriteString("(")
	}
	f()
	if need {
		p.b.WriteString(")")
	}
}

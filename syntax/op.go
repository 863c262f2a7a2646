// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// An Op is a unary or binary operator.
type Op int

const (
	OpNone Op = iota

	// Binary arithmetic and bitwise.
	OpAdd // +
	OpSub // -
	OpMul // *
	OpDiv // /
	OpRem // %
	OpAnd // &
	OpOr  // |
	OpXor // ^
	OpShl // <<
	OpShr // >>

	// Comparison and logic.
	OpEq   // ==
	OpNe   // !=
	OpLt   // <
	OpGt   // >
	OpLe   // <=
	OpGe   // >=
	OpLAnd // &&
	OpLOr  // ||

	// Assignment.
	OpAssign    // =
	OpAddAssign // +=
	OpSubAssign // -=
	OpMulAssign // *=
	OpDivAssign // /=
	OpRemAssign // %=
	OpAndAssign // &=
	OpOrAssign  // |=
	OpXorAssign // ^=
	OpShlAssign // <<=
	OpShrAssign // >>=

	// Unary.
	OpIncr  // ++
	OpDecr  // --
	OpNot   // !
	OpCompl // ~
	OpNeg   // unary -
	OpPos   // unary +
	OpAddr  // unary &
	OpDeref // unary *
)

var opStrings = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpRem: "%",
	OpAnd: "&", OpOr: "|", OpXor: "^", OpShl: "<<", OpShr: ">>",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpLAnd: "&&", OpLOr: "||",
	OpAssign: "=", OpAddAssign: "+=", OpSubAssign: "-=", OpMulAssign: "*=",
	OpDivAssign: "/=", OpRemAssign: "%=", OpAndAssign: "&=", OpOrAssign: "|=",
	OpXorAssign: "^=", OpShlAssign: "<<=", OpShrAssign: ">>=",
	OpIncr: "++", OpDecr: "--", OpNot: "!", OpCompl: "~",
	OpNeg: "-", OpPos: "+", OpAddr: "&", OpDeref: "*",
}

func (op Op) String() string {
	if s, ok := opStrings[op]; ok {
		return s
	}
	return "?"
}

// IsAssign reports whether op is plain or compound assignment.
func (op Op) IsAssign() bool {
	return op >= OpAssign && op <= OpShrAssign
}

// IsCompoundAssign reports whether op is a compound assignment.
func (op Op) IsCompoundAssign() bool {
	return op > OpAssign && op <= OpShrAssign
}

// IsIncDec reports whether op is ++ or --.
func (op Op) IsIncDec() bool {
	return op == OpIncr || op == OpDecr
}

var compoundUnderlying = map[Op]Op{
	OpAddAssign: OpAdd,
	OpSubAssign: OpSub,
	OpMulAssign: OpMul,
	OpDivAssign: OpDiv,
	OpRemAssign: OpRem,
	OpAndAssign: OpAnd,
	OpOrAssign:  OpOr,
	OpXorAssign: OpXor,
	OpShlAssign: OpShl,
	OpShrAssign: OpShr,
}

// Underlying returns the arithmetic operator a compound assignment
// applies, e.g. OpAdd for OpAddAssign.
func (op Op) Underlying() Op {
	if u, ok := compoundUnderlying[op]; ok {
		return u
	}
	return op
}

// Binary operator precedence, higher binds tighter. Assignment and the
// conditional operator sit below OpLOr; they are handled separately by
// the parser and printer.
func (op Op) Precedence() int {
	switch op {
	case OpLOr:
		return 1
	case OpLAnd:
		return 2
	case OpOr:
		return 3
	case OpXor:
		return 4
	case OpAnd:
		return 5
	case OpEq, OpNe:
		return 6
	case OpLt, OpGt, OpLe, OpGe:
		return 7
	case OpShl, OpShr:
		return 8
	case OpAdd, OpSub:
		return 9
	case OpMul, OpDiv, OpRem:
		return 10
	}
	return 0
}

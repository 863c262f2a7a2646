// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"

	"encap/syntax"
)

type kind int

const (
	tEOF kind = iota
	tIdent
	tKeyword
	tNumber
	tString
	tChar
	tPunct
)

type token struct {
	kind kind
	lit  string
	pos  syntax.Pos
}

func (t token) end() syntax.Pos { return t.pos + syntax.Pos(len(t.lit)) }

func (t token) is(lit string) bool {
	return (t.kind == tPunct || t.kind == tKeyword) && t.lit == lit
}

var keywords = map[string]bool{
	"namespace": true,
	"struct":    true,
	"class":     true,
	"const":     true,
	"if":        true,
	"else":      true,
	"while":     true,
	"for":       true,
	"return":    true,
	"public":    true,
	"private":   true,
	"protected": true,
}

// Multi-character operators, longest first so the lexer can greedy-match.
var operators = []string{
	"<<=", ">>=",
	"->", "::", "++", "--", "&&", "||", "==", "!=", "<=", ">=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
}

type lexError struct {
	pos syntax.Pos
	msg string
}

func lex(src []byte) ([]token, *lexError) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}

		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			j := i + 2
			for j+1 < len(src) && !(src[j] == '*' && src[j+1] == '/') {
				j++
			}
			if j+1 >= len(src) {
				return nil, &lexError{syntax.Pos(i), "unterminated block comment"}
			}
			i = j + 2

		case isIdentStart(c):
			j := i
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			word := string(src[i:j])
			k := tIdent
			if keywords[word] {
				k = tKeyword
			}
			toks = append(toks, token{k, word, syntax.Pos(i)})
			i = j

		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && (isIdentPart(src[j]) || src[j] == '.') {
				j++
			}
			toks = append(toks, token{tNumber, string(src[i:j]), syntax.Pos(i)})
			i = j

		case c == '"' || c == '\'':
			j := i + 1
			for j < len(src) && src[j] != c {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(src) {
				return nil, &lexError{syntax.Pos(i), "unterminated literal"}
			}
			k := tString
			if c == '\'' {
				k = tChar
			}
			toks = append(toks, token{k, string(src[i : j+1]), syntax.Pos(i)})
			i = j + 1

		default:
			if op := matchOperator(src[i:]); op != "" {
				toks = append(toks, token{tPunct, op, syntax.Pos(i)})
				i += len(op)
				break
			}
			if isPunct(c) {
				toks = append(toks, token{tPunct, string(c), syntax.Pos(i)})
				i++
				break
			}
			return nil, &lexError{syntax.Pos(i), fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, token{tEOF, "", syntax.Pos(len(src))})
	return toks, nil
}

func matchOperator(s []byte) string {
	for _, op := range operators {
		if len(s) >= len(op) && string(s[:len(op)]) == op {
			return op
		}
	}
	return ""
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func isPunct(c byte) bool {
	switch c {
	case '{', '}', '(', ')', '[', ']', ';', ',', '.', ':', '?',
		'+', '-', '*', '/', '%', '&', '|', '^', '~', '!', '<', '>', '=':
		return true
	}
	return false
}

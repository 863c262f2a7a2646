// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor implements the source-to-source rewriting engine: a
// per-unit Snapshot of text, syntax, and pending edits, and the
// transforms that fill it. Each compilation unit is processed by its own
// Snapshot; nothing is shared across units.
package refactor

import (
	"fmt"
	"io"
	"os"

	"encap/diff"
	"encap/edit"
	"encap/parse"
	"encap/syntax"
)

// A Refactor holds the state for an active rewriting run.
type Refactor struct {
	Stdout   io.Writer
	Stderr   io.Writer
	ShowDiff bool
}

func New() *Refactor {
	return &Refactor{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run performs the full pipeline for one compilation unit: parse and
// resolve src, apply the transforms in order, and flush the edit buffer.
// It returns the rewritten text along with the snapshot, whose side
// channel carries advisory warnings. The text is nil when the unit could
// not be parsed or a transform reported errors.
func (r *Refactor) Run(name string, src []byte, transforms []Transform) ([]byte, *Snapshot, error) {
	unit, err := parse.Unit(name, src)
	if err != nil {
		return nil, nil, err
	}
	snap := NewSnapshot(name, src, unit)
	for _, t := range transforms {
		t.Rewrite(snap)
	}
	if err := snap.Errors.Err(); err != nil {
		return nil, snap, err
	}
	return snap.Bytes(), snap, nil
}

// A Snapshot is one compilation unit's text and parsed syntax, plus the
// edits and diagnostics accumulated against it. Edits always reference
// original-source offsets; no edit observes another edit's effect.
type Snapshot struct {
	name     string
	text     []byte
	unit     *syntax.Unit
	table    *syntax.LineTable
	buf      *edit.Buffer
	parents  map[syntax.Node]syntax.Node
	warnings []*Error

	Errors *ErrorList
}

func NewSnapshot(name string, text []byte, unit *syntax.Unit) *Snapshot {
	return &Snapshot{
		name:    name,
		text:    text,
		unit:    unit,
		table:   syntax.NewLineTable(name, text),
		buf:     edit.NewBuffer(text),
		parents: syntax.Parents(unit),
		Errors:  &ErrorList{},
	}
}

func (s *Snapshot) Name() string       { return s.name }
func (s *Snapshot) Unit() *syntax.Unit { return s.unit }

// Parent returns the syntax parent of n, or nil for the unit root.
func (s *Snapshot) Parent(n syntax.Node) syntax.Node {
	return s.parents[n]
}

// Text returns the original source in the range [lo, hi).
func (s *Snapshot) Text(lo, hi syntax.Pos) []byte {
	return s.text[lo:hi]
}

func (s *Snapshot) ReplaceAt(lo, hi syntax.Pos, repl string) {
	s.buf.Replace(int(lo), int(hi), repl)
}

func (s *Snapshot) InsertAt(pos syntax.Pos, repl string) {
	s.buf.Insert(int(pos), repl)
}

func (s *Snapshot) DeleteAt(lo, hi syntax.Pos) {
	s.buf.Delete(int(lo), int(hi))
}

func (s *Snapshot) ReplaceNode(n syntax.Node, repl string) {
	s.ReplaceAt(n.Pos(), n.End(), repl)
}

func (s *Snapshot) Position(pos syntax.Pos) syntax.Position {
	return s.table.Position(pos)
}

// Addr renders pos as file:line:col for diagnostics.
func (s *Snapshot) Addr(pos syntax.Pos) string {
	return s.Position(pos).String()
}

func (s *Snapshot) ErrorAt(pos syntax.Pos, format string, args ...interface{}) {
	s.Errors.Add(&Error{Pos: s.Position(pos), Msg: fmt.Sprintf(format, args...)})
}

// WarnAt records an advisory diagnostic. Warnings are a side channel:
// they never affect the rewritten text.
func (s *Snapshot) WarnAt(pos syntax.Pos, format string, args ...interface{}) {
	s.warnings = append(s.warnings, &Error{Pos: s.Position(pos), Msg: fmt.Sprintf(format, args...)})
}

// Warnings returns the advisory diagnostics recorded so far, in order.
func (s *Snapshot) Warnings() []*Error {
	return s.warnings
}

// NumEdits returns the number of edits recorded so far.
func (s *Snapshot) NumEdits() int {
	return s.buf.Len()
}

// Bytes applies the recorded edits to the original text.
func (s *Snapshot) Bytes() []byte {
	return s.buf.Bytes()
}

// Diff returns the unit's pending edits in unified diff format.
func (s *Snapshot) Diff() ([]byte, error) {
	return diff.Diff("old/"+s.name, s.text, "new/"+s.name, s.Bytes())
}

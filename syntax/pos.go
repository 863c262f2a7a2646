// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// A Pos is a byte offset into the text of a compilation unit.
// NoPos marks a missing or unknown position.
type Pos int

const NoPos Pos = -1

func (p Pos) IsValid() bool { return p >= 0 }

// A Span is a half-open byte range [Start, Stop) in the unit text.
// It is embedded in every syntax node.
type Span struct {
	Start Pos
	Stop  Pos
}

func (s Span) Pos() Pos { return s.Start }
func (s Span) End() Pos { return s.Stop }

// A Position is a resolved source location, for diagnostics.
type Position struct {
	Filename string
	Offset   int
	Line     int // 1-based
	Column   int // 1-based, in bytes
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// A LineTable maps offsets in one unit's text to line:column positions.
type LineTable struct {
	name  string
	size  int
	lines []int // offset of each line start
}

func NewLineTable(name string, text []byte) *LineTable {
	t := &LineTable{name: name, size: len(text), lines: []int{0}}
	for i, b := range text {
		if b == '\n' && i+1 < len(text) {
			t.lines = append(t.lines, i+1)
		}
	}
	return t
}

func (t *LineTable) Position(pos Pos) Position {
	if !pos.IsValid() || int(pos) > t.size {
		return Position{Filename: t.name}
	}
	// Binary search for the line containing pos.
	lo, hi := 0, len(t.lines)
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if t.lines[mid] <= int(pos) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Position{
		Filename: t.name,
		Offset:   int(pos),
		Line:     lo + 1,
		Column:   int(pos) - t.lines[lo] + 1,
	}
}

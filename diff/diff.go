// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs and
// renders the result in unified diff format.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// context lines shown around each change.
const context = 3

// A line is one line of the combined old/new text, tagged with ' ', '-',
// or '+'.
type line struct {
	op   byte
	text string
}

// Diff returns the differences between old and new in unified diff
// format, or nil if the inputs are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}

	dmp := diffmatchpatch.New()
	a, b, byLine := dmp.DiffLinesToChars(string(old), string(new))
	ds := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), byLine)

	var ls []line
	for _, d := range ds {
		var op byte
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = ' '
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		if d.Text == "" {
			continue
		}
		for _, t := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			ls = append(ls, line{op, t})
		}
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)

	oldN, newN := 0, 0
	advance := func(l line) {
		if l.op != '+' {
			oldN++
		}
		if l.op != '-' {
			newN++
		}
	}

	i := 0
	for _, g := range groups(ls) {
		for i < g.lo {
			advance(ls[i])
			i++
		}
		oldStart, newStart := oldN+1, newN+1
		var body bytes.Buffer
		oldCount, newCount := 0, 0
		for i < g.hi {
			l := ls[i]
			advance(l)
			if l.op != '+' {
				oldCount++
			}
			if l.op != '-' {
				newCount++
			}
			body.WriteByte(l.op)
			body.WriteString(l.text)
			body.WriteByte('\n')
			i++
		}
		if oldCount == 0 {
			oldStart--
		}
		if newCount == 0 {
			newStart--
		}
		fmt.Fprintf(&out, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		out.Write(body.Bytes())
	}
	return out.Bytes(), nil
}

// A group is a half-open index range of lines forming one hunk.
type group struct {
	lo, hi int
}

// groups clusters changed lines into hunk ranges, merging changes whose
// separating run of equal lines fits inside twice the context width.
func groups(ls []line) []group {
	var gs []group
	i := 0
	for i < len(ls) {
		if ls[i].op == ' ' {
			i++
			continue
		}
		first, last := i, i
		j := i + 1
		for j < len(ls) {
			if ls[j].op != ' ' {
				last = j
				j++
				continue
			}
			k := j
			for k < len(ls) && ls[k].op == ' ' {
				k++
			}
			if k < len(ls) && k-j <= 2*context {
				j = k
				continue
			}
			break
		}
		lo := first - context
		if lo < 0 {
			lo = 0
		}
		hi := last + 1 + context
		if hi > len(ls) {
			hi = len(ls)
		}
		gs = append(gs, group{lo, hi})
		i = hi
	}
	return gs
}

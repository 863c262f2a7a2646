// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edit

import "testing"

func TestEdits(t *testing.T) {
	b := NewBuffer([]byte("abcdefg"))
	b.Insert(0, "01")
	b.Replace(2, 4, "CD")
	b.Delete(5, 6)
	if n := b.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}
	if have, want := b.String(), "01abCDeg"; have != want {
		t.Errorf("String() = %q, want %q", have, want)
	}
}

func TestSamePositionOrder(t *testing.T) {
	b := NewBuffer([]byte("xy"))
	b.Insert(1, "{")
	b.Insert(1, "a")
	b.Insert(1, "b")
	if have, want := b.String(), "x{aby"; have != want {
		t.Errorf("String() = %q, want %q", have, want)
	}
}

func TestOverlapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Bytes did not panic on overlapping edits")
		}
	}()
	b := NewBuffer([]byte("abcdef"))
	b.Replace(1, 4, "X")
	b.Replace(3, 5, "Y")
	b.Bytes()
}

func TestInvalidPositionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Insert did not panic on out-of-range position")
		}
	}()
	b := NewBuffer([]byte("abc"))
	b.Insert(4, "x")
}

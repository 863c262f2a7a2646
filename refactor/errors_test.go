// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"errors"
	"testing"

	"encap/syntax"
)

func TestErrorList(t *testing.T) {
	var l ErrorList
	if l.Err() != nil {
		t.Errorf("empty list is an error")
	}

	pos := syntax.Position{Filename: "t.cpp", Line: 3, Column: 7}
	l.Add(&Error{Pos: pos, Msg: "boom"})
	l.Add(&Error{Pos: pos, Msg: "boom"}) // duplicate, dropped
	l.Add(errors.New("plain"))
	if l.NumErrors() != 2 {
		t.Fatalf("NumErrors = %d, want 2", l.NumErrors())
	}
	if want := "t.cpp:3:7: boom\nplain"; l.Error() != want {
		t.Errorf("Error() = %q, want %q", l.Error(), want)
	}

	var m ErrorList
	m.Add(&Error{Msg: "other"})
	m.Add(&l)
	if m.NumErrors() != 3 {
		t.Errorf("merged NumErrors = %d, want 3", m.NumErrors())
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg.Lookup("Accessors") != nil {
		t.Errorf("Lookup found an unregistered transform")
	}
	reg.Register("Accessors", NewAccessors)
	if reg.Lookup("Accessors") == nil {
		t.Errorf("Lookup missed a registered transform")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "Accessors" {
		t.Errorf("Names = %v", names)
	}
}

// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"strings"

	"encap/syntax"
)

// An Error is an error at a particular source position.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

type errorKey struct {
	pos syntax.Position
	msg string
}

// An ErrorList is a set of Errors. It is also an error itself. The zero
// value is an empty list, ready to use. Duplicate errors (same position
// and message) are suppressed.
type ErrorList struct {
	errs []*Error
	set  map[errorKey]bool
}

// Add adds an error to l. An *ErrorList argument is merged element-wise;
// any other error is added with no position information.
func (l *ErrorList) Add(err error) {
	var e *Error
	switch err := err.(type) {
	case nil:
		return
	case *ErrorList:
		for _, e := range err.errs {
			l.Add(e)
		}
		return
	case *Error:
		e = err
	default:
		e = &Error{Msg: err.Error()}
	}

	k := errorKey{e.Pos, e.Msg}
	if l.set[k] {
		return
	}
	if l.set == nil {
		l.set = make(map[errorKey]bool)
	}
	l.set[k] = true
	l.errs = append(l.errs, e)
}

// Err returns l if it contains any errors, or nil if it is empty.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

// NumErrors returns the number of errors in the list.
func (l *ErrorList) NumErrors() int {
	return len(l.errs)
}

// Errs returns the errors in the list, in the order added.
func (l *ErrorList) Errs() []*Error {
	return l.errs
}

func (l *ErrorList) Error() string {
	var b strings.Builder
	for i, e := range l.errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

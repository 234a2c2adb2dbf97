// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diag implements the error kinds, panic/stop conventions and
// per-rank logging shared by every other package in this module.
package diag

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind classifies an error by how the caller should react to it.
type Kind int

const (
	// InvalidInput marks malformed or out-of-range construction input.
	InvalidInput Kind = iota

	// IOFailure marks a failure to open or read an external resource.
	IOFailure

	// NumericalWarning marks a recoverable numerical condition (e.g. a
	// small LU pivot). It is reported, never thrown.
	NumericalWarning

	// NonConvergence marks max_iter exhausted without reaching tolerance.
	NonConvergence

	// CommunicationFailure marks a failed message-passing primitive.
	CommunicationFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case IOFailure:
		return "IOFailure"
	case NumericalWarning:
		return "NumericalWarning"
	case NonConvergence:
		return "NonConvergence"
	case CommunicationFailure:
		return "CommunicationFailure"
	}
	return "UnknownKind"
}

// Error wraps a formatted message with its Kind so callers can recover
// the category with errors.As without parsing message text.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// Err builds a *Error the way gosl/chk.Err builds a plain error.
func Err(kind Kind, msg string, prm ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, prm...)}
}

// Is lets errors.Is(err, &Error{Kind: InvalidInput}) match any *Error of
// the same Kind, whatever its message; most callers instead type-assert
// to *Error and read Kind.
func (e *Error) Is(target error) bool {
	o, ok := target.(*Error)
	return ok && o.Kind == e.Kind
}

// Panicf signals a programming error (size mismatch, violated
// invariant) the same way gosl/chk.Panic does: these are bugs, not
// InvalidInput, and are never expected to be recovered from in normal
// operation.
func Panicf(msg string, prm ...interface{}) {
	chk.Panic(msg, prm...)
}

// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package la implements the dense row-major matrix type and the
// BLAS-1/2/3 kernels, LU/LUP factorization and triangular solves that
// every solver in this module is built on.
package la

import "github.com/cpmech/neudiff/diag"

// Shape2D is an ordered (rows, cols) pair. Both must be positive.
type Shape2D struct {
	Rows int
	Cols int
}

// NewShape2D validates and builds a Shape2D.
func NewShape2D(rows, cols int) Shape2D {
	if rows < 1 || cols < 1 {
		diag.Panicf("la: shape must have rows>=1 and cols>=1; got (%d,%d)", rows, cols)
	}
	return Shape2D{Rows: rows, Cols: cols}
}

// Nelems is rows*cols.
func (s Shape2D) Nelems() int { return s.Rows * s.Cols }

// IsSquare reports whether rows == cols.
func (s Shape2D) IsSquare() bool { return s.Rows == s.Cols }

// Padding is a four-sided non-negative halo thickness.
type Padding struct {
	North, South, East, West int
}

// Padded returns the shape this Shape2D grows to once p is added on
// every side.
func (s Shape2D) Padded(p Padding) Shape2D {
	return Shape2D{
		Rows: s.Rows + p.North + p.South,
		Cols: s.Cols + p.East + p.West,
	}
}

// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "github.com/cpmech/neudiff/diag"

// MatrixView is a non-owning, non-resizable view over a contiguous
// buffer, used to address a padded block's interior and halo without
// copying. Unlike Matrix it never allocates; it borrows Data for its
// lifetime.
type MatrixView[T Real] struct {
	Shape Shape2D
	Data  []T
}

// ViewOf returns a MatrixView over m's own storage (a no-op borrow),
// useful when a function wants to take either a Matrix or a
// MatrixView uniformly.
func (m *Matrix[T]) ViewOf() MatrixView[T] {
	return MatrixView[T]{Shape: m.Shape, Data: m.Data}
}

func (v MatrixView[T]) index(i, j int) int {
	if i < 0 || i >= v.Shape.Rows || j < 0 || j >= v.Shape.Cols {
		diag.Panicf("la: view index (%d,%d) out of range for shape (%d,%d)", i, j, v.Shape.Rows, v.Shape.Cols)
	}
	return i*v.Shape.Cols + j
}

// Get is the debug-checked element read.
func (v MatrixView[T]) Get(i, j int) T { return v.Data[v.index(i, j)] }

// Set is the debug-checked element write.
func (v MatrixView[T]) Set(i, j int, val T) { v.Data[v.index(i, j)] = val }

// Row returns the stride-1 sub-slice for row i.
func (v MatrixView[T]) Row(i int) []T {
	c := v.Shape.Cols
	return v.Data[i*c : i*c+c]
}

// InteriorShape returns the unpadded (rows, cols) addressed by p
// inside a padded buffer of shape v.Shape: the region a
// Distributed2DBlock's owner reads and writes every iteration,
// excluding the halo. Interior cell (i,j)
// lives at v.Get(i+p.North, j+p.West).
func (v MatrixView[T]) InteriorShape(p Padding) Shape2D {
	rows := v.Shape.Rows - p.North - p.South
	cols := v.Shape.Cols - p.East - p.West
	if rows <= 0 || cols <= 0 {
		diag.Panicf("la: padding %+v leaves no interior in shape %v", p, v.Shape)
	}
	return Shape2D{Rows: rows, Cols: cols}
}

// NewPadded allocates a zeroed padded buffer of the given interior
// shape and halo thickness, returning a Matrix covering the whole
// padded extent (ViewOf gives a MatrixView over it). Interior(i,j) for
// 0<=i<rows,0<=j<cols then lives at (i+p.North, j+p.West).
func NewPadded[T Real](interior Shape2D, p Padding) *Matrix[T] {
	padded := interior.Padded(p)
	return NewMatrix[T](padded.Rows, padded.Cols)
}

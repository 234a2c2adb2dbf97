// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package stencil implements the 5-point constant-coefficient stencil
// that discretizes the diffusion PDE, its two traversal orders, and
// the dense-matrix materialization used by the direct LU baseline.
package stencil

import (
	"github.com/cpmech/neudiff/la"
)

// Constant is a translation-invariant 5-point operator over a padded
// grid of shape Shape: apply(i,j,u) = Center*u[i,j] + N*u[i-1,j] +
// S*u[i+1,j] + W*u[i,j-1] + E*u[i,j+1], for every interior (i,j). The
// boundary layer of Shape holds zero and is never written.
type Constant[T la.Real] struct {
	Center, North, South, East, West T
	Shape                            la.Shape2D // padded shape, including the zero boundary layer
}

// halfPad is the one-cell Dirichlet boundary every stencil carries.
var halfPad = la.Padding{North: 1, South: 1, East: 1, West: 1}

// Apply evaluates (A*u)[i,j] for one interior grid point. i,j index
// into the padded buffer u (so interior point (0,0) of an (M,N) grid
// is u.Get(1,1)).
func (c Constant[T]) Apply(u la.MatrixView[T], i, j int) T {
	return c.Center*u.Get(i, j) +
		c.North*u.Get(i-1, j) +
		c.South*u.Get(i+1, j) +
		c.West*u.Get(i, j-1) +
		c.East*u.Get(i, j+1)
}

// interior returns the (rows, cols) of unknowns this stencil's
// padded Shape carries, i.e. Shape shrunk by the one-cell Dirichlet
// halo on every side.
func (c Constant[T]) interior() la.Shape2D {
	return la.Shape2D{Rows: c.Shape.Rows - 2, Cols: c.Shape.Cols - 2}
}

// Traversal selects the order Visit walks interior cells in.
type Traversal int

const (
	// RowMajor visits (i,j) in increasing row, then column order.
	RowMajor Traversal = iota
	// ColMajor visits (i,j) in increasing column, then row order.
	ColMajor
	// Checkerboard visits every "red" cell ((i+j) even) first, then
	// every "black" cell ((i+j) odd). Within each color, cells are
	// independent: this is the traversal that makes parallel GS/SOR
	// possible.
	Checkerboard
)

// Visit calls fn(i, j) once for every interior grid point, in the
// order t selects. Interior coordinates are local to u (1-based,
// skipping the boundary layer).
func (c Constant[T]) Visit(t Traversal, fn func(i, j int)) {
	shp := c.interior()
	switch t {
	case RowMajor:
		for i := 1; i <= shp.Rows; i++ {
			for j := 1; j <= shp.Cols; j++ {
				fn(i, j)
			}
		}
	case ColMajor:
		for j := 1; j <= shp.Cols; j++ {
			for i := 1; i <= shp.Rows; i++ {
				fn(i, j)
			}
		}
	case Checkerboard:
		for _, parity := range [2]int{0, 1} {
			for i := 1; i <= shp.Rows; i++ {
				for j := 1; j <= shp.Cols; j++ {
					if (i+j)%2 == parity {
						fn(i, j)
					}
				}
			}
		}
	}
}

// MaxResidual computes max_{i,j} |f[i-1,j-1] - (Au)[i,j]| over every
// interior grid point, where f is the (M-2,N-2)-shaped source matrix
// and u is the padded field.
func (c Constant[T]) MaxResidual(u la.MatrixView[T], f *la.Matrix[T]) T {
	var best T
	first := true
	c.Visit(RowMajor, func(i, j int) {
		r := la.Abs(f.Get(i-1, j-1) - c.Apply(u, i, j))
		if first || r > best {
			best = r
			first = false
		}
	})
	return best
}

// BuildMatrix materializes the dense (M*N)x(M*N) operator this
// stencil represents over its interior unknowns, in row-major
// unknown ordering, for the direct LU baseline. This is
// O((M*N)^2) and is only ever used for cross-checking small problems.
func (c Constant[T]) BuildMatrix() *la.Matrix[T] {
	shp := c.interior()
	M, N := shp.Rows, shp.Cols
	n := M * N
	A := la.NewMatrix[T](n, n)
	idx := func(i, j int) int { return i*N + j } // 0-based interior index
	for i := 0; i < M; i++ {
		for j := 0; j < N; j++ {
			row := idx(i, j)
			A.Set(row, row, c.Center)
			if i > 0 {
				A.Set(row, idx(i-1, j), c.North)
			}
			if i < M-1 {
				A.Set(row, idx(i+1, j), c.South)
			}
			if j > 0 {
				A.Set(row, idx(i, j-1), c.West)
			}
			if j < N-1 {
				A.Set(row, idx(i, j+1), c.East)
			}
		}
	}
	return A
}

// NewPaddedField allocates a zeroed padded field matching this
// stencil's interior shape, with the canonical one-cell Dirichlet
// halo on every side, and returns it together with the halo record
// used by Apply/Visit.
func NewPaddedField[T la.Real](interiorRows, interiorCols int) (*la.Matrix[T], la.Padding) {
	return la.NewPadded[T](la.Shape2D{Rows: interiorRows, Cols: interiorCols}, halfPad), halfPad
}

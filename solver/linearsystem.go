// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the fixed-point solver framework: a
// single generic convergence driver plus one State per algorithm
// (Point-Jacobi, Gauss-Seidel, SOR, CG, Jacobi-PCG), all sharing a
// read-only LinearSystem.
package solver

import (
	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
)

// LinearSystem is an owned (A, b) pair: A square, A.Rows == len(b).
// It is shared by read-only reference between the driver and every
// solver state built on it, and is never mutated during iteration.
type LinearSystem[T la.Real] struct {
	A *la.Matrix[T]
	B []T
}

// NewLinearSystem validates and wraps (A, b).
func NewLinearSystem[T la.Real](A *la.Matrix[T], b []T) (*LinearSystem[T], error) {
	if !A.Shape.IsSquare() {
		return nil, diag.Err(diag.InvalidInput, "solver: A must be square, got shape %v", A.Shape)
	}
	if A.Rows() != len(b) {
		return nil, diag.Err(diag.InvalidInput, "solver: A.Rows()=%d must equal len(b)=%d", A.Rows(), len(b))
	}
	return &LinearSystem[T]{A: A, B: b}, nil
}

// N is the system's dimension.
func (s *LinearSystem[T]) N() int { return s.A.Rows() }

// Residual returns b - A*x.
func (s *LinearSystem[T]) Residual(x []T) []T {
	Ax := la.MatVec(s.A, x)
	r := make([]T, len(Ax))
	for i := range r {
		r[i] = s.B[i] - Ax[i]
	}
	return r
}

// ResidualInf returns ||b - A*x||_inf, the quantity every concrete
// state reports at the end of its run.
func (s *LinearSystem[T]) ResidualInf(x []T) T {
	return la.MaxAbs(s.Residual(x))
}

// checkSymmetric scans A in one O(n^2) pass, failing at the first
// asymmetric entry found.
func checkSymmetric[T la.Real](A *la.Matrix[T]) error {
	n := A.Rows()
	var maxAbs T
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := la.Abs(A.Get(i, j))
			if a > maxAbs {
				maxAbs = a
			}
		}
	}
	const rtol, atol = 1e-9, 1e-12
	tol := T(rtol)*maxAbs + T(atol)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if la.Abs(A.Get(i, j)-A.Get(j, i)) > tol {
				return diag.Err(diag.InvalidInput, "solver: A is not symmetric at (%d,%d): A[i,j]=%v, A[j,i]=%v", i, j, A.Get(i, j), A.Get(j, i))
			}
		}
	}
	return nil
}

// checkNonZeroDiagonal rejects a system PJ/GS/SOR cannot divide by.
func checkNonZeroDiagonal[T la.Real](A *la.Matrix[T]) error {
	n := A.Rows()
	for i := 0; i < n; i++ {
		if A.Get(i, i) == 0 {
			return diag.Err(diag.InvalidInput, "solver: A has a zero diagonal entry at row %d", i)
		}
	}
	return nil
}

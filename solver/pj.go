// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/neudiff/la"
)

// PJState is the Point-Jacobi fixed-point state: it holds the current
// iterate x and a scratch next-iterate, and needs a non-zero diagonal
// (checked at construction).
type PJState[T la.Real] struct {
	sys      *LinearSystem[T]
	x, xNext []T
	iter     int
	errVal   T
}

// NewPJ builds a Point-Jacobi state from x0 (the initial guess; nil
// means start from zero).
func NewPJ[T la.Real](sys *LinearSystem[T], x0 []T) (*PJState[T], error) {
	if err := checkNonZeroDiagonal(sys.A); err != nil {
		return nil, err
	}
	n := sys.N()
	x := make([]T, n)
	if x0 != nil {
		copy(x, x0)
	}
	return &PJState[T]{sys: sys, x: x, xNext: make([]T, n), errVal: T(math.Inf(1))}, nil
}

// Update performs one Jacobi sweep: for each row i,
// x'[i] = (b[i] - sum_{j!=i} A[i,j]*x[j]) / A[i,i], then swaps x, x'.
func (s *PJState[T]) Update() {
	n := s.sys.N()
	A, b := s.sys.A, s.sys.B
	for i := 0; i < n; i++ {
		row := A.Row(i)
		sum := b[i]
		for j := 0; j < n; j++ {
			if j != i {
				sum -= row[j] * s.x[j]
			}
		}
		s.xNext[i] = sum / row[i]
	}
	s.errVal = relativeMaxDiff(s.xNext, s.x)
	s.x, s.xNext = s.xNext, s.x
	s.iter++
}

// relativeMaxDiff computes max_i |x'[i]-x[i]|/|x[i]|, with the
// convention |0|/|0| = 0, the error measure shared by PJ/GS/SOR.
func relativeMaxDiff[T la.Real](xNew, xOld []T) T {
	var best T
	first := true
	for i := range xNew {
		diff := la.Abs(xNew[i] - xOld[i])
		denom := la.Abs(xOld[i])
		var r T
		if denom == 0 {
			if diff == 0 {
				r = 0
			} else {
				r = diff // undefined ratio: fall back to the absolute difference
			}
		} else {
			r = diff / denom
		}
		if first || r > best {
			best = r
			first = false
		}
	}
	return best
}

// Error returns the maximum relative difference between the last two
// iterates.
func (s *PJState[T]) Error() float64 { return float64(s.errVal) }

// Iteration returns the number of completed sweeps.
func (s *PJState[T]) Iteration() int { return s.iter }

// X returns the current iterate (read-only use expected).
func (s *PJState[T]) X() []T { return s.x }

// ResidualInf reports ||b - A*x||_inf for the current iterate, the
// figure every solver reports alongside its final flux.
func (s *PJState[T]) ResidualInf() T { return s.sys.ResidualInf(s.x) }

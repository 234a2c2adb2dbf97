// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
)

// SORState is the Gauss-Seidel / Successive-Over-Relaxation state:
//
//	x[i] <- (1-omega)*x[i] + omega*(b[i] - sum_{j!=i} A[i,j]*x[j]) / A[i,i]
//
// omega == 1 is the classical Gauss-Seidel update. Any omega in the
// open interval (0, 2) is accepted; convergence is only guaranteed
// for symmetric positive-definite systems in that range.
type SORState[T la.Real] struct {
	sys    *LinearSystem[T]
	x      []T
	omega  T
	iter   int
	errVal T
}

// NewGS builds a plain Gauss-Seidel state (omega == 1).
func NewGS[T la.Real](sys *LinearSystem[T], x0 []T) (*SORState[T], error) {
	return NewSOR(sys, x0, T(1))
}

// NewSOR builds an SOR state with relaxation factor omega. omega must
// lie in (0, 2), the range of the SPD-convergence guarantee; any other
// value is rejected with InvalidInput and no state is built.
func NewSOR[T la.Real](sys *LinearSystem[T], x0 []T, omega T) (*SORState[T], error) {
	if err := checkNonZeroDiagonal(sys.A); err != nil {
		return nil, err
	}
	if omega <= 0 || omega >= 2 {
		return nil, diag.Err(diag.InvalidInput, "solver: SOR relaxation factor omega must be in (0,2), got %v", omega)
	}
	n := sys.N()
	x := make([]T, n)
	if x0 != nil {
		copy(x, x0)
	}
	return &SORState[T]{sys: sys, x: x, omega: omega, errVal: T(math.Inf(1))}, nil
}

// IsGS reports whether this state is the omega==1 Gauss-Seidel alias.
func (s *SORState[T]) IsGS() bool { return s.omega == 1 }

// Update performs one SOR sweep in place: row i's update consumes
// already-updated x[j] for j<i and stale x[j] for j>i, the
// sequential Gauss-Seidel dependency.
func (s *SORState[T]) Update() {
	n := s.sys.N()
	A, b := s.sys.A, s.sys.B
	var maxDiff T
	first := true
	for i := 0; i < n; i++ {
		row := A.Row(i)
		sum := b[i]
		for j := 0; j < n; j++ {
			if j != i {
				sum -= row[j] * s.x[j]
			}
		}
		gsUpdate := sum / row[i]
		old := s.x[i]
		next := (1-s.omega)*old + s.omega*gsUpdate
		diff := la.Abs(next - old)
		denom := la.Abs(old)
		var r T
		if denom == 0 {
			r = diff
		} else {
			r = diff / denom
		}
		if first || r > maxDiff {
			maxDiff = r
			first = false
		}
		s.x[i] = next
	}
	s.errVal = maxDiff
	s.iter++
}

// Error returns the maximum relative difference between the last two
// iterates.
func (s *SORState[T]) Error() float64 { return float64(s.errVal) }

// Iteration returns the number of completed sweeps.
func (s *SORState[T]) Iteration() int { return s.iter }

// X returns the current iterate.
func (s *SORState[T]) X() []T { return s.x }

// ResidualInf reports ||b - A*x||_inf for the current iterate.
func (s *SORState[T]) ResidualInf() T { return s.sys.ResidualInf(s.x) }

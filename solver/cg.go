// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/neudiff/la"
)

// CGOptions configures Conjugate Gradient. Every RefreshEvery
// iterations the residual is recomputed exactly (r = b - A.x) instead
// of updated recurrently (r -= alpha*A.d), bounding the drift
// floating-point round-off otherwise accumulates.
type CGOptions struct {
	RefreshEvery int
}

// DefaultCGOptions refreshes the residual every 10 iterations.
func DefaultCGOptions() CGOptions { return CGOptions{RefreshEvery: 10} }

// CGState is the Conjugate Gradient state for a symmetric
// positive-definite system. Construction validates that A is square
// and (by an O(n^2) scan) symmetric; see checkSymmetric.
type CGState[T la.Real] struct {
	sys      *LinearSystem[T]
	opts     CGOptions
	x, r, d  []T
	ad       []T // scratch: A*d
	iter     int
	errVal   T
	rdotrOld T
}

// NewCG builds a CG state with x initially zero, r = b (since x0=0
// means r0 = b - A.0 = b), d = r.
func NewCG[T la.Real](sys *LinearSystem[T], opts CGOptions) (*CGState[T], error) {
	if err := checkSymmetric(sys.A); err != nil {
		return nil, err
	}
	n := sys.N()
	r := make([]T, n)
	copy(r, sys.B)
	d := make([]T, n)
	copy(d, r)
	s := &CGState[T]{
		sys: sys, opts: opts,
		x: make([]T, n), r: r, d: d, ad: make([]T, n),
	}
	s.errVal = la.NormL2(r)
	s.rdotrOld = la.Dot(r, r)
	return s, nil
}

// NewCGFromStencilKnownSymmetric skips the O(n^2) symmetry scan when
// the caller already knows A is symmetric by construction (e.g. it
// came from stencil.Constant.BuildMatrix, which is symmetric for a
// well-posed diffusion problem).
func NewCGFromStencilKnownSymmetric[T la.Real](sys *LinearSystem[T], opts CGOptions) *CGState[T] {
	n := sys.N()
	r := make([]T, n)
	copy(r, sys.B)
	d := make([]T, n)
	copy(d, r)
	s := &CGState[T]{sys: sys, opts: opts, x: make([]T, n), r: r, d: d, ad: make([]T, n)}
	s.errVal = la.NormL2(r)
	s.rdotrOld = la.Dot(r, r)
	return s
}

// Update performs one CG iteration.
func (s *CGState[T]) Update() {
	la.Gemv(s.sys.A, s.d, s.ad, T(1), T(0), la.General, la.NonUnit)
	dAd := la.Dot(s.d, s.ad)
	alpha := s.rdotrOld / dAd

	la.Axpy(s.d, s.x, alpha)

	s.iter++
	if s.opts.RefreshEvery > 0 && s.iter%s.opts.RefreshEvery == 0 {
		copy(s.r, s.sys.Residual(s.x))
	} else {
		la.Axpy(s.ad, s.r, -alpha)
	}

	rdotrNew := la.Dot(s.r, s.r)
	beta := rdotrNew / s.rdotrOld

	for i := range s.d {
		s.d[i] = s.r[i] + beta*s.d[i]
	}

	s.rdotrOld = rdotrNew
	s.errVal = la.NormL2(s.r)
}

// Error returns ||r||_2.
func (s *CGState[T]) Error() float64 { return float64(s.errVal) }

// Iteration returns the number of completed iterations.
func (s *CGState[T]) Iteration() int { return s.iter }

// X returns the current iterate.
func (s *CGState[T]) X() []T { return s.x }

// ResidualInf reports ||b - A*x||_inf for the current iterate.
func (s *CGState[T]) ResidualInf() T { return s.sys.ResidualInf(s.x) }

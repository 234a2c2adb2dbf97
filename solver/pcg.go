// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
)

// Preconditioner is the capability PCG needs: given a residual r,
// produce z = M^-1 * r.
type Preconditioner[T la.Real] interface {
	Apply(r []T, z []T)
}

// JacobiPreconditioner is M = diag(A), the cheapest preconditioner
// that still helps diagonally-dominant diffusion systems.
type JacobiPreconditioner[T la.Real] struct {
	invDiag []T
}

// NewJacobiPreconditioner builds M^-1 = diag(A)^-1 once up front.
func NewJacobiPreconditioner[T la.Real](A *la.Matrix[T]) (*JacobiPreconditioner[T], error) {
	n := A.Rows()
	inv := make([]T, n)
	for i := 0; i < n; i++ {
		d := A.Get(i, i)
		if d == 0 {
			return nil, diag.Err(diag.InvalidInput, "solver: Jacobi preconditioner requires a non-zero diagonal, row %d is zero", i)
		}
		inv[i] = 1 / d
	}
	return &JacobiPreconditioner[T]{invDiag: inv}, nil
}

// Apply sets z[i] = r[i] / A[i,i].
func (p *JacobiPreconditioner[T]) Apply(r []T, z []T) {
	for i := range r {
		z[i] = p.invDiag[i] * r[i]
	}
}

// PCGState is the preconditioned Conjugate Gradient state: identical
// to CGState except the search direction is built from the
// preconditioned residual z = M^-1*r rather than r itself.
type PCGState[T la.Real] struct {
	sys       *LinearSystem[T]
	opts      CGOptions
	precond   Preconditioner[T]
	x, r, d   []T
	z         []T // preconditioned residual, M^-1*r
	ad        []T // scratch: A*d
	iter      int
	errVal    T
	rdotzOld  T
	normB     T
}

// NewPCG builds a PCG state. M must already be built against sys.A
// (e.g. via NewJacobiPreconditioner).
func NewPCG[T la.Real](sys *LinearSystem[T], precond Preconditioner[T], opts CGOptions) (*PCGState[T], error) {
	if err := checkSymmetric(sys.A); err != nil {
		return nil, err
	}
	n := sys.N()
	r := make([]T, n)
	copy(r, sys.B)
	z := make([]T, n)
	precond.Apply(r, z)
	d := make([]T, n)
	copy(d, z)
	s := &PCGState[T]{
		sys: sys, opts: opts, precond: precond,
		x: make([]T, n), r: r, z: z, d: d, ad: make([]T, n),
	}
	s.normB = la.NormL2(sys.B)
	if s.normB == 0 {
		s.normB = 1 // b == 0 means x == 0 is exact; avoid 0/0 in the error
	}
	s.errVal = la.NormL2(r) / s.normB
	s.rdotzOld = la.Dot(r, z)
	return s, nil
}

// Update performs one PCG iteration: alpha from d^T*A*d, x and r
// updated as in plain CG, then z = M^-1*r and beta from the
// preconditioned inner products.
func (s *PCGState[T]) Update() {
	la.Gemv(s.sys.A, s.d, s.ad, T(1), T(0), la.General, la.NonUnit)
	dAd := la.Dot(s.d, s.ad)
	alpha := s.rdotzOld / dAd

	la.Axpy(s.d, s.x, alpha)

	s.iter++
	if s.opts.RefreshEvery > 0 && s.iter%s.opts.RefreshEvery == 0 {
		copy(s.r, s.sys.Residual(s.x))
	} else {
		la.Axpy(s.ad, s.r, -alpha)
	}

	s.precond.Apply(s.r, s.z)
	rdotzNew := la.Dot(s.r, s.z)
	beta := rdotzNew / s.rdotzOld

	for i := range s.d {
		s.d[i] = s.z[i] + beta*s.d[i]
	}

	s.rdotzOld = rdotzNew
	s.errVal = la.NormL2(s.r) / s.normB
}

// Error returns ||r||_2 / ||b||_2, the relative residual norm PCG
// reports (unlike plain CG, which reports the absolute ||r||_2).
func (s *PCGState[T]) Error() float64 { return float64(s.errVal) }

// Iteration returns the number of completed iterations.
func (s *PCGState[T]) Iteration() int { return s.iter }

// X returns the current iterate.
func (s *PCGState[T]) X() []T { return s.x }

// ResidualInf reports ||b - A*x||_inf for the current iterate.
func (s *PCGState[T]) ResidualInf() T { return s.sys.ResidualInf(s.x) }

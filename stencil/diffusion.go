// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stencil

import (
	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
)

// DiffusionParams are the physical inputs to a steady-state,
// one-speed, one-group neutron diffusion problem on a rectangular,
// homogeneous, isotropic-scattering domain with zero-Dirichlet
// (vacuum) boundaries.
type DiffusionParams[T la.Real] struct {
	A, B         T           // region extents along x and y
	M, N         int         // interior grid points per axis
	D            T           // diffusion coefficient
	SigmaA       T           // absorption cross-section
	Source       *la.Matrix[T] // fixed source, shape (M,N), values >= 0
}

// Validate enforces the builder's preconditions: D>0, SigmaA>=0, source
// values >= 0, source shape == (M,N). It returns the first violation
// found, as an InvalidInput diag.Error naming the offending field.
func (p DiffusionParams[T]) Validate() error {
	if p.A <= 0 {
		return diag.Err(diag.InvalidInput, "diffusion: region extent A must be > 0, got %v", p.A)
	}
	if p.B <= 0 {
		return diag.Err(diag.InvalidInput, "diffusion: region extent B must be > 0, got %v", p.B)
	}
	if p.M < 1 || p.N < 1 {
		return diag.Err(diag.InvalidInput, "diffusion: grid (M,N)=(%d,%d) must have both >= 1", p.M, p.N)
	}
	if p.D <= 0 {
		return diag.Err(diag.InvalidInput, "diffusion: diffusion coefficient D must be > 0, got %v", p.D)
	}
	if p.SigmaA < 0 {
		return diag.Err(diag.InvalidInput, "diffusion: absorption cross-section SigmaA must be >= 0, got %v", p.SigmaA)
	}
	if p.Source == nil {
		return diag.Err(diag.InvalidInput, "diffusion: source must not be nil")
	}
	if p.Source.Rows() != p.M || p.Source.Cols() != p.N {
		return diag.Err(diag.InvalidInput, "diffusion: source shape (%d,%d) must equal grid (%d,%d)", p.Source.Rows(), p.Source.Cols(), p.M, p.N)
	}
	for _, v := range p.Source.Data {
		if v < 0 {
			return diag.Err(diag.InvalidInput, "diffusion: source values must be >= 0, found %v", v)
		}
	}
	return nil
}

// BuildStencil derives the 5-point Constant stencil of the
// finite-difference discretization:
//
//   hx = A/(M+1), hy = B/(N+1)
//   North = South = -D/hx^2
//   West  = East  = -D/hy^2
//   Center = -2*(North+West) + SigmaA
//
// Validate must be called (or already known to pass) before this is
// called; BuildStencil itself does not re-validate.
func (p DiffusionParams[T]) BuildStencil() Constant[T] {
	hx := p.A / T(p.M+1)
	hy := p.B / T(p.N+1)
	ns := -p.D / (hx * hx)
	we := -p.D / (hy * hy)
	center := -T(2)*(ns+we) + p.SigmaA
	shape := la.Shape2D{Rows: p.M, Cols: p.N}.Padded(halfPad)
	return Constant[T]{
		Center: center,
		North:  ns,
		South:  ns,
		East:   we,
		West:   we,
		Shape:  shape,
	}
}

// BuildLinearSystem assembles the dense (A,b) pair for the direct LU
// baseline: A is the stencil's dense materialization, b is the
// source flattened in row-major order. Validate should be called
// first.
func (p DiffusionParams[T]) BuildLinearSystem() (A *la.Matrix[T], b []T) {
	s := p.BuildStencil()
	A = s.BuildMatrix()
	b = make([]T, p.M*p.N)
	for i := 0; i < p.M; i++ {
		for j := 0; j < p.N; j++ {
			b[i*p.N+j] = p.Source.Get(i, j)
		}
	}
	return A, b
}

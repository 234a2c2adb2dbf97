// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"math"

	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/solver"
	"github.com/cpmech/neudiff/stencil"
)

// ParallelPJ drives a distributed Point-Jacobi iteration across the
// process grid. Jacobi has no intra-iteration dependency, so unlike
// ParallelSOR it needs no coloring: every rank sweeps its whole
// interior from the previous iterate into a scratch block, commits
// the scratch, then a single halo exchange and the MAX-reduced global
// error close the iteration.
type ParallelPJ struct {
	Dom     *MPIDomain2D
	Block   *Distributed2DBlock
	Stencil stencil.Constant[float64]
	Source  *Distributed2DBlock
	next    []float64 // scratch next-iterate, interior only, row-major
	iter    int
	errVal  float64
}

// NewParallelPJ builds a parallel Point-Jacobi state over block.
func NewParallelPJ(dom *MPIDomain2D, block, source *Distributed2DBlock, s stencil.Constant[float64]) (*ParallelPJ, error) {
	if s.Center == 0 {
		return nil, diag.Err(diag.InvalidInput, "domain: Point-Jacobi requires a non-zero stencil center")
	}
	return &ParallelPJ{
		Dom: dom, Block: block, Stencil: s, Source: source,
		next:   make([]float64, block.Info.Local.Nelems()),
		errVal: math.Inf(1),
	}, nil
}

// Update performs one Jacobi sweep over the whole interior, commits
// the scratch iterate, exchanges halos once and MAX-reduces the error.
func (p *ParallelPJ) Update() {
	var maxDiff float64
	first := true
	v := p.Block.View()
	srcV := p.Source.View()
	cols := p.Block.LocalCols()
	for i := 0; i < p.Block.LocalRows(); i++ {
		for j := 0; j < cols; j++ {
			old := p.Block.Get(i, j)
			f := srcV.Get(i+1, j+1)
			val := gsUpdate(p.Stencil, v, i+1, j+1, f)
			diff := math.Abs(val - old)
			denom := math.Abs(old)
			var r float64
			if denom == 0 {
				r = diff
			} else {
				r = diff / denom
			}
			if first || r > maxDiff {
				maxDiff = r
				first = false
			}
			p.next[i*cols+j] = val
		}
	}
	copyIntoInterior(p.Block, p.next)
	ExchangeHalo(p.Dom, p.Block)
	p.errVal = diag.MaxFloat64(p.Dom.NProcs() > 1, maxDiff)
	p.iter++
}

// Error returns the most recently MAX-reduced global error.
func (p *ParallelPJ) Error() float64 { return p.errVal }

// Iteration returns the number of completed sweeps.
func (p *ParallelPJ) Iteration() int { return p.iter }

// ResidualInf reports the MAX-reduced global stencil residual of the
// current iterate.
func (p *ParallelPJ) ResidualInf() float64 {
	return distributedResidualInf(p.Dom, p.Block, p.Source, p.Stencil)
}

var _ solver.State = (*ParallelPJ)(nil)

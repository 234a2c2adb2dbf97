// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"math"

	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
	"github.com/cpmech/neudiff/solver"
	"github.com/cpmech/neudiff/stencil"
)

// ParallelSOR drives a distributed red/black Gauss-Seidel / SOR
// iteration across the process grid, with a two-phase schedule:
//
//  1. red ranks update their red cells, black ranks update their
//     black cells (independent, no cross-rank dependency within a
//     phase);
//  2. halo exchange;
//  3. swap roles (black cells, then red cells);
//  4. halo exchange again;
//  5. every rank computes its local error; MAX-reduced globally is
//     the convergence criterion every rank checks identically.
type ParallelSOR struct {
	Dom      *MPIDomain2D
	Block    *Distributed2DBlock
	Stencil  stencil.Constant[float64]
	Source   *Distributed2DBlock // local source term f, same shape as Block
	Omega    float64
	iter     int
	errVal   float64
}

// NewParallelSOR builds a parallel SOR state. omega == 1 is the
// Gauss-Seidel alias, same convention as solver.SORState.
func NewParallelSOR(dom *MPIDomain2D, block, source *Distributed2DBlock, s stencil.Constant[float64], omega float64) (*ParallelSOR, error) {
	if omega <= 0 || omega >= 2 {
		return nil, diag.Err(diag.InvalidInput, "domain: SOR relaxation factor omega must be in (0,2), got %v", omega)
	}
	return &ParallelSOR{Dom: dom, Block: block, Stencil: s, Source: source, Omega: omega, errVal: math.Inf(1)}, nil
}

// Update performs one full red/black sweep with a halo exchange
// after each color, then the MAX-reduced global error.
func (p *ParallelSOR) Update() {
	var localMax float64
	first := true
	for _, wantRed := range [2]bool{p.Dom.IsRed(), p.Dom.IsBlack()} {
		m := p.sweepColor(wantRed)
		if first || m > localMax {
			localMax = m
			first = false
		}
		ExchangeHalo(p.Dom, p.Block)
	}
	p.errVal = diag.MaxFloat64(p.Dom.NProcs() > 1, localMax)
	p.iter++
}

// sweepColor updates every interior cell whose (globalRow+globalCol)
// parity matches wantRed, returning the sweep's local maximum
// relative change.
func (p *ParallelSOR) sweepColor(wantRed bool) float64 {
	var maxDiff float64
	first := true
	v := p.Block.View()
	srcV := p.Source.View()
	for i := 0; i < p.Block.LocalRows(); i++ {
		gi := p.Block.Info.RowOffset + i
		for j := 0; j < p.Block.LocalCols(); j++ {
			gj := p.Block.Info.ColOffset + j
			isRed := (gi+gj)%2 == 0
			if isRed != wantRed {
				continue
			}
			old := p.Block.Get(i, j)
			// v/srcV are padded views: interior cell (i,j) lives at (i+1,j+1).
			f := srcV.Get(i+1, j+1)
			gs := gsUpdate(p.Stencil, v, i+1, j+1, f)
			next := (1-p.Omega)*old + p.Omega*gs
			diff := math.Abs(next - old)
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
			p.Block.Set(i, j, next)
		}
	}
	return maxDiff
}

// gsUpdate solves the 5-point stencil equation for cell (i,j) given
// its (possibly just-exchanged) neighbor values:
//
//	center*u[i,j] = f[i,j] - north*u[i-1,j] - south*u[i+1,j] - east*u[i,j+1] - west*u[i,j-1]
func gsUpdate(s stencil.Constant[float64], v la.MatrixView[float64], i, j int, f float64) float64 {
	sum := f
	sum -= s.North * v.Get(i-1, j)
	sum -= s.South * v.Get(i+1, j)
	sum -= s.East * v.Get(i, j+1)
	sum -= s.West * v.Get(i, j-1)
	return sum / s.Center
}

// Error returns the most recently MAX-reduced global error.
func (p *ParallelSOR) Error() float64 { return p.errVal }

// Iteration returns the number of completed full red/black sweeps.
func (p *ParallelSOR) Iteration() int { return p.iter }

// ResidualInf reports the MAX-reduced global stencil residual of the
// current iterate.
func (p *ParallelSOR) ResidualInf() float64 {
	return distributedResidualInf(p.Dom, p.Block, p.Source, p.Stencil)
}

// distributedResidualInf computes max |f - A.u| over this rank's
// interior (the halos already mirror the neighbor interiors after the
// last exchange) and MAX-reduces it across the group.
func distributedResidualInf(dom *MPIDomain2D, block, source *Distributed2DBlock, s stencil.Constant[float64]) float64 {
	var best float64
	first := true
	v := block.View()
	srcV := source.View()
	for i := 0; i < block.LocalRows(); i++ {
		for j := 0; j < block.LocalCols(); j++ {
			r := math.Abs(srcV.Get(i+1, j+1) - s.Apply(v, i+1, j+1))
			if first || r > best {
				best = r
				first = false
			}
		}
	}
	return diag.MaxFloat64(dom.NProcs() > 1, best)
}

var _ solver.State = (*ParallelSOR)(nil)

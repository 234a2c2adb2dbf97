// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
)

// halo1 is the fixed one-cell-thick halo every block carries.
var halo1 = la.Padding{North: 1, South: 1, East: 1, West: 1}

// Block2DInfo describes one rank's ownership of a slice of the global
// field: its local interior shape and where that interior sits in the
// global (row-major) index space.
type Block2DInfo struct {
	Global    la.Shape2D // full field shape (Rg, Cg)
	Local     la.Shape2D // this rank's interior shape (Rl, Cl)
	RowOffset int        // this block's first global row
	ColOffset int        // this block's first global column
}

// PlanBlocks2D validates that Global is evenly divisible by the
// process grid and returns the owning block for every rank, indexed
// rank-major (row*Cp+col).
func PlanBlocks2D(dom *MPIDomain2D, global la.Shape2D) ([]Block2DInfo, error) {
	if global.Rows%dom.Rp != 0 || global.Cols%dom.Cp != 0 {
		return nil, diag.Err(diag.InvalidInput, "domain: global shape %v is not divisible by process grid (%d,%d)", global, dom.Rp, dom.Cp)
	}
	rl := global.Rows / dom.Rp
	cl := global.Cols / dom.Cp
	blocks := make([]Block2DInfo, dom.Rp*dom.Cp)
	for row := 0; row < dom.Rp; row++ {
		for col := 0; col < dom.Cp; col++ {
			blocks[row*dom.Cp+col] = Block2DInfo{
				Global:    global,
				Local:     la.Shape2D{Rows: rl, Cols: cl},
				RowOffset: row * rl,
				ColOffset: col * cl,
			}
		}
	}
	return blocks, nil
}

// Distributed2DBlock is one rank's padded local buffer: a (Rl+2,Cl+2)
// matrix whose interior lives at offset (1,1), with a one-cell halo
// on every side that is zero until the first exchange fills it (or
// stays zero forever on a true global boundary, the Dirichlet case).
//
// Distribution is instantiated at float64: gosl/mpi's point-to-point
// and reduction primitives move []float64 (and []int), so this is the
// one layer of the module that is not generic over la.Real.
type Distributed2DBlock struct {
	Info   Block2DInfo
	Dom    *MPIDomain2D
	Buffer *la.Matrix[float64]
}

// NewDistributed2DBlock allocates the zeroed padded buffer for info.
func NewDistributed2DBlock(dom *MPIDomain2D, info Block2DInfo) *Distributed2DBlock {
	return &Distributed2DBlock{
		Info:   info,
		Dom:    dom,
		Buffer: la.NewPadded[float64](info.Local, halo1),
	}
}

// View returns a MatrixView over the whole padded buffer (interior +
// halo), for use with la's indexing helpers.
func (b *Distributed2DBlock) View() la.MatrixView[float64] { return b.Buffer.ViewOf() }

// Get reads the interior cell (i,j), 0<=i<Local.Rows, 0<=j<Local.Cols.
func (b *Distributed2DBlock) Get(i, j int) float64 { return b.Buffer.Get(i+1, j+1) }

// Set writes the interior cell (i,j).
func (b *Distributed2DBlock) Set(i, j int, v float64) { b.Buffer.Set(i+1, j+1, v) }

// LocalRows, LocalCols report this rank's interior shape.
func (b *Distributed2DBlock) LocalRows() int { return b.Info.Local.Rows }
func (b *Distributed2DBlock) LocalCols() int { return b.Info.Local.Cols }

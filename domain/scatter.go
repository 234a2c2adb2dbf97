// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/neudiff/la"
)

// rootRank is the manager process that holds the full global field
// contiguously and drives scatter/gather.
const rootRank = 0

// ScatterBlock2D copies each rank's slice of global (row-major,
// stride global.Cols) into dst's interior. Called identically on
// every rank: rank 0 owns global and, for every other rank, extracts
// its block and sends it; every rank then fills its own interior
// with the strided copy.
func ScatterBlock2D(dom *MPIDomain2D, global *la.Matrix[float64], blocks []Block2DInfo, dst *Distributed2DBlock) {
	if dom.Rank == rootRank {
		for r := 0; r < dom.NProcs(); r++ {
			buf := extractBlock(global, blocks[r])
			if r == rootRank {
				copyIntoInterior(dst, buf)
			} else {
				mpi.DblSend(buf, r)
			}
		}
		return
	}
	buf := make([]float64, dst.Info.Local.Nelems())
	mpi.DblRecv(buf, rootRank)
	copyIntoInterior(dst, buf)
}

// extractBlock copies blk's slice of global into a flat row-major
// buffer of shape blk.Local.
func extractBlock(global *la.Matrix[float64], blk Block2DInfo) []float64 {
	buf := make([]float64, blk.Local.Nelems())
	k := 0
	for i := 0; i < blk.Local.Rows; i++ {
		for j := 0; j < blk.Local.Cols; j++ {
			buf[k] = global.Get(blk.RowOffset+i, blk.ColOffset+j)
			k++
		}
	}
	return buf
}

// copyIntoInterior writes a flat row-major buffer into dst's interior.
func copyIntoInterior(dst *Distributed2DBlock, buf []float64) {
	k := 0
	for i := 0; i < dst.LocalRows(); i++ {
		for j := 0; j < dst.LocalCols(); j++ {
			dst.Set(i, j, buf[k])
			k++
		}
	}
}

// GatherBlock2D is ScatterBlock2D's exact inverse: every rank sends
// its interior to rank 0, which writes it back into global at the
// block's offset.
func GatherBlock2D(dom *MPIDomain2D, global *la.Matrix[float64], blocks []Block2DInfo, src *Distributed2DBlock) {
	if dom.Rank == rootRank {
		writeBlock(global, src.Info, extractInterior(src))
		for r := 1; r < dom.NProcs(); r++ {
			blk := blocks[r]
			buf := make([]float64, blk.Local.Nelems())
			mpi.DblRecv(buf, r)
			writeBlock(global, blk, buf)
		}
		return
	}
	mpi.DblSend(extractInterior(src), rootRank)
}

// extractInterior flattens b's interior in row-major order.
func extractInterior(b *Distributed2DBlock) []float64 {
	buf := make([]float64, b.Info.Local.Nelems())
	k := 0
	for i := 0; i < b.LocalRows(); i++ {
		for j := 0; j < b.LocalCols(); j++ {
			buf[k] = b.Get(i, j)
			k++
		}
	}
	return buf
}

func writeBlock(global *la.Matrix[float64], blk Block2DInfo, buf []float64) {
	k := 0
	for i := 0; i < blk.Local.Rows; i++ {
		for j := 0; j < blk.Local.Cols; j++ {
			global.Set(blk.RowOffset+i, blk.ColOffset+j, buf[k])
			k++
		}
	}
}

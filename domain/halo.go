// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "github.com/cpmech/gosl/mpi"

// ExchangeHalo performs the point-to-point exchange between
// neighboring blocks: every rank sends its interior edge rows/cols to
// each of its (up to four) neighbors and receives the matching halo
// from the opposite side. gosl/mpi's DblSend/DblRecv are blocking and
// untagged, so the schedule both avoids deadlock and disambiguates
// the four directions by ordering alone: the two directions of each
// axis are exchanged in two rank-color phases, red ranks sending
// first and then receiving, black ranks receiving first and then
// sending. Messages between a fixed rank pair are therefore matched
// in program order.
func ExchangeHalo(dom *MPIDomain2D, b *Distributed2DBlock) {
	if dom.NProcs() == 1 {
		return
	}
	exchangeAxis(dom, b, North, South)
	exchangeAxis(dom, b, East, West)
}

// exchangeAxis exchanges the two opposite directions of one axis
// (North/South or East/West) using the red/black phase order.
func exchangeAxis(dom *MPIDomain2D, b *Distributed2DBlock, a, bDir Direction) {
	if dom.IsRed() {
		sendEdge(dom, b, a)
		sendEdge(dom, b, bDir)
		recvEdge(dom, b, a)
		recvEdge(dom, b, bDir)
	} else {
		recvEdge(dom, b, a)
		recvEdge(dom, b, bDir)
		sendEdge(dom, b, a)
		sendEdge(dom, b, bDir)
	}
}

// sendEdge sends this rank's interior edge facing dir to the neighbor
// in that direction.
func sendEdge(dom *MPIDomain2D, b *Distributed2DBlock, dir Direction) {
	to, ok := dom.Neighbor(dir)
	if !ok {
		return
	}
	buf := extractEdge(b, dir)
	mpi.DblSend(buf, to)
}

// recvEdge receives the halo facing dir from the neighbor in that
// direction and writes it into the padded border.
func recvEdge(dom *MPIDomain2D, b *Distributed2DBlock, dir Direction) {
	from, ok := dom.Neighbor(dir)
	if !ok {
		return
	}
	n := edgeLen(b, dir)
	buf := make([]float64, n)
	mpi.DblRecv(buf, from)
	writeHalo(b, dir, buf)
}

// edgeLen is the number of cells along the edge facing dir.
func edgeLen(b *Distributed2DBlock, dir Direction) int {
	if dir == North || dir == South {
		return b.LocalCols()
	}
	return b.LocalRows()
}

// extractEdge reads this rank's interior row/column adjacent to dir,
// the row/column the neighbor in that direction needs as its halo.
func extractEdge(b *Distributed2DBlock, dir Direction) []float64 {
	n := edgeLen(b, dir)
	buf := make([]float64, n)
	switch dir {
	case North:
		for j := 0; j < n; j++ {
			buf[j] = b.Get(0, j)
		}
	case South:
		for j := 0; j < n; j++ {
			buf[j] = b.Get(b.LocalRows()-1, j)
		}
	case West:
		for i := 0; i < n; i++ {
			buf[i] = b.Get(i, 0)
		}
	case East:
		for i := 0; i < n; i++ {
			buf[i] = b.Get(i, b.LocalCols()-1)
		}
	}
	return buf
}

// writeHalo writes a received edge into the padded border on side
// dir: the halo layer this rank's own interior update will read as a
// neighbor value.
func writeHalo(b *Distributed2DBlock, dir Direction, buf []float64) {
	rows, cols := b.Buffer.Rows(), b.Buffer.Cols()
	switch dir {
	case North:
		for j := 0; j < len(buf); j++ {
			b.Buffer.Set(0, j+1, buf[j])
		}
	case South:
		for j := 0; j < len(buf); j++ {
			b.Buffer.Set(rows-1, j+1, buf[j])
		}
	case West:
		for i := 0; i < len(buf); i++ {
			b.Buffer.Set(i+1, 0, buf[i])
		}
	case East:
		for i := 0; i < len(buf); i++ {
			b.Buffer.Set(i+1, cols-1, buf[i])
		}
	}
}

// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/neudiff/la"
)

// Test_topology01 checks the serial (1-process) topology: no
// neighbors, rank 0, red by definition (0+0 even).
func Test_topology01(tst *testing.T) {

	chk.PrintTitle("Test topology01: serial (1x1) topology has no neighbors")

	dom, err := NewMPIDomain2D(1, 1)
	if err != nil {
		tst.Fatalf("NewMPIDomain2D: %v", err)
	}
	for _, d := range []Direction{North, South, East, West} {
		if _, ok := dom.Neighbor(d); ok {
			tst.Errorf("expected no %v neighbor in a 1x1 grid", d)
		}
	}
	if !dom.IsRed() || dom.IsBlack() {
		tst.Errorf("expected the single rank to be red")
	}
}

// Test_topology02 checks that a process-grid shape not matching the
// running process count is rejected.
func Test_topology02(tst *testing.T) {

	chk.PrintTitle("Test topology02: mismatched process-grid shape is InvalidInput")

	if _, err := NewMPIDomain2D(2, 2); err == nil {
		tst.Errorf("expected InvalidInput: a 2x2 grid needs 4 processes, only 1 is running outside mpirun")
	}
}

// Test_block01 checks PlanBlocks2D's offsets for a 2x2 grid over an
// 8x8 global field: every rank gets a 4x4 interior block at the
// expected offset, and the reverse direction (a field indivisible by
// the process grid) is rejected.
func Test_block01(tst *testing.T) {

	chk.PrintTitle("Test block01: PlanBlocks2D offsets and divisibility")

	dom := &MPIDomain2D{Rp: 2, Cp: 2, Row: 0, Col: 0, Rank: 0}
	blocks, err := PlanBlocks2D(dom, la.Shape2D{Rows: 8, Cols: 8})
	if err != nil {
		tst.Fatalf("PlanBlocks2D: %v", err)
	}
	want := []Block2DInfo{
		{Global: la.Shape2D{Rows: 8, Cols: 8}, Local: la.Shape2D{Rows: 4, Cols: 4}, RowOffset: 0, ColOffset: 0},
		{Global: la.Shape2D{Rows: 8, Cols: 8}, Local: la.Shape2D{Rows: 4, Cols: 4}, RowOffset: 0, ColOffset: 4},
		{Global: la.Shape2D{Rows: 8, Cols: 8}, Local: la.Shape2D{Rows: 4, Cols: 4}, RowOffset: 4, ColOffset: 0},
		{Global: la.Shape2D{Rows: 8, Cols: 8}, Local: la.Shape2D{Rows: 4, Cols: 4}, RowOffset: 4, ColOffset: 4},
	}
	for i, w := range want {
		if blocks[i] != w {
			tst.Errorf("block %d: got %+v, want %+v", i, blocks[i], w)
		}
	}

	if _, err := PlanBlocks2D(dom, la.Shape2D{Rows: 9, Cols: 8}); err == nil {
		tst.Errorf("expected InvalidInput for a global shape not divisible by the process grid")
	}
}

// Test_color01 checks the red/black rule across a whole process
// grid: (Row+Col) even is red, every other cell is black, and the
// pattern is the familiar checkerboard.
func Test_color01(tst *testing.T) {

	chk.PrintTitle("Test color01: red/black coloring by process coordinate parity")

	for rp := 1; rp <= 3; rp++ {
		for cp := 1; cp <= 3; cp++ {
			for row := 0; row < rp; row++ {
				for col := 0; col < cp; col++ {
					d := &MPIDomain2D{Rp: rp, Cp: cp, Row: row, Col: col}
					wantRed := (row+col)%2 == 0
					if d.IsRed() != wantRed {
						tst.Errorf("(%d,%d) in a %dx%d grid: IsRed()=%v, want %v", row, col, rp, cp, d.IsRed(), wantRed)
					}
					if d.IsRed() == d.IsBlack() {
						tst.Errorf("(%d,%d): IsRed and IsBlack must disagree", row, col)
					}
				}
			}
		}
	}
}

// Test_halo01 checks the edge-extraction/write-back halo primitives
// in isolation (without any actual message passing): extractEdge
// reads the correct interior row/column for each direction, and
// writeHalo deposits it on the matching padded border.
func Test_halo01(tst *testing.T) {

	chk.PrintTitle("Test halo01: extractEdge/writeHalo round-trip per direction")

	dom := &MPIDomain2D{Rp: 1, Cp: 1, Row: 0, Col: 0, Rank: 0}
	info := Block2DInfo{Global: la.Shape2D{Rows: 3, Cols: 3}, Local: la.Shape2D{Rows: 3, Cols: 3}}
	src := NewDistributed2DBlock(dom, info)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			src.Set(i, j, float64(i*3+j+1))
		}
	}

	for _, d := range []Direction{North, South, East, West} {
		edge := extractEdge(src, d)
		dst := NewDistributed2DBlock(dom, info)
		writeHalo(dst, d, edge)
		switch d {
		case North:
			chk.Vector(tst, "North edge written to row 0 of padded buffer", 1e-17, dst.Buffer.Row(0)[1:4], edge)
		case South:
			chk.Vector(tst, "South edge written to last row of padded buffer", 1e-17, dst.Buffer.Row(dst.Buffer.Rows()-1)[1:4], edge)
		case West:
			for i, v := range edge {
				chk.Scalar(tst, "West edge written to col 0", 1e-17, dst.Buffer.Get(i+1, 0), v)
			}
		case East:
			for i, v := range edge {
				chk.Scalar(tst, "East edge written to last col", 1e-17, dst.Buffer.Get(i+1, dst.Buffer.Cols()-1), v)
			}
		}
	}
}

// Test_halo02 checks that ExchangeHalo is a no-op in serial (1x1)
// mode: with a single rank there is nothing to exchange, so the
// padded buffer is left exactly as it was.
func Test_halo02(tst *testing.T) {

	chk.PrintTitle("Test halo02: ExchangeHalo is a no-op with one process")

	dom, err := NewMPIDomain2D(1, 1)
	if err != nil {
		tst.Fatalf("NewMPIDomain2D: %v", err)
	}
	info := Block2DInfo{Global: la.Shape2D{Rows: 2, Cols: 2}, Local: la.Shape2D{Rows: 2, Cols: 2}}
	b := NewDistributed2DBlock(dom, info)
	b.Set(0, 0, 1)
	b.Set(1, 1, 2)
	before := append([]float64{}, b.Buffer.Data...)

	ExchangeHalo(dom, b)
	ExchangeHalo(dom, b)

	chk.Vector(tst, "padded buffer unchanged after two no-op exchanges", 1e-17, b.Buffer.Data, before)
}

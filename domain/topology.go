// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package domain implements the 2D Cartesian domain decomposition:
// process-grid topology, block scatter/gather, halo exchange and a
// red/black parallel GS/SOR driver built on top of the solver
// package's fixed-point framework.
package domain

import (
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/neudiff/diag"
)

// Direction names the four neighbor directions a block can have,
// matching the padding sides la.Padding already names.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return "Unknown"
}

// noNeighbor marks a true global-grid boundary: no rank to talk to on
// that side, and the halo there stays zero (Dirichlet).
const noNeighbor = -1

// MPIDomain2D is the Rp x Cp process-grid abstraction every
// Distributed2DBlock is built against. It owns no field data; it only
// answers "who is my neighbor" and "am I red or black".
type MPIDomain2D struct {
	Rp, Cp     int // process-grid shape
	Row, Col   int // this rank's coordinate in the process grid
	Rank       int
	neighbors  [4]int // indexed by Direction; noNeighbor if none
}

// NewMPIDomain2D builds the topology for the calling rank. Rp*Cp must
// equal the running process count (1 in serial/non-MPI mode).
func NewMPIDomain2D(rp, cp int) (*MPIDomain2D, error) {
	if rp < 1 || cp < 1 {
		return nil, diag.Err(diag.InvalidInput, "domain: process-grid shape (%d,%d) must have both >= 1", rp, cp)
	}
	size := 1
	rank := 0
	if mpi.IsOn() {
		size = mpi.Size()
		rank = mpi.Rank()
	}
	if rp*cp != size {
		return nil, diag.Err(diag.InvalidInput, "domain: process-grid (%d,%d) has %d cells, but %d processes are running", rp, cp, rp*cp, size)
	}
	row := rank / cp
	col := rank % cp
	d := &MPIDomain2D{Rp: rp, Cp: cp, Row: row, Col: col, Rank: rank}
	d.neighbors = [4]int{noNeighbor, noNeighbor, noNeighbor, noNeighbor}
	if row > 0 {
		d.neighbors[North] = (row-1)*cp + col
	}
	if row < rp-1 {
		d.neighbors[South] = (row+1)*cp + col
	}
	if col < cp-1 {
		d.neighbors[East] = row*cp + col + 1
	}
	if col > 0 {
		d.neighbors[West] = row*cp + col - 1
	}
	return d, nil
}

// Neighbor returns the rank in direction dir, or (noNeighbor, false)
// when dir lands outside the global grid.
func (d *MPIDomain2D) Neighbor(dir Direction) (rank int, ok bool) {
	r := d.neighbors[dir]
	return r, r != noNeighbor
}

// IsRed reports whether this rank's process-grid coordinate is the
// "red" color of the checkerboard: (Row+Col) even.
func (d *MPIDomain2D) IsRed() bool { return (d.Row+d.Col)%2 == 0 }

// IsBlack is the complement of IsRed.
func (d *MPIDomain2D) IsBlack() bool { return !d.IsRed() }

// NProcs is Rp*Cp.
func (d *MPIDomain2D) NProcs() int { return d.Rp * d.Cp }

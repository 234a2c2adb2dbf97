// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// Group carries just enough process-group state for Stop to decide
// whether one rank's failure must abort every rank: the rank, the
// process count and whether the run is actually distributed.
type Group struct {
	Rank  int
	Nproc int
	Distr bool

	wspcStop []int
	wspcInum []int
}

// NewGroup builds a Group from the current MPI state, exactly the way
// fem.Start does: rank 0 and size 1 when MPI was never started.
func NewGroup() *Group {
	g := &Group{Rank: 0, Nproc: 1, Distr: false}
	if mpi.IsOn() {
		g.Rank = mpi.Rank()
		g.Nproc = mpi.Size()
		g.Distr = g.Nproc > 1
	}
	if g.Distr {
		g.wspcStop = make([]int, g.Nproc)
		g.wspcInum = make([]int, g.Nproc)
	}
	return g
}

// Stop decides whether this rank (and, if distributed, the whole
// group) must abort because of err. It is the direct generalization of
// fem.Stop to an arbitrary caller, not tied to the FEM domain type.
func (g *Group) Stop(err error, msg string) bool {
	if !g.Distr {
		if err != nil {
			io.Pfred("neudiff: %s failed: %v\n", msg, err)
			return true
		}
		return false
	}
	for i := range g.wspcStop {
		g.wspcStop[i] = 0
	}
	if err != nil {
		io.Pfred("neudiff: rank %d failed on %s: %v\n", g.Rank, msg, err)
		g.wspcStop[g.Rank] = 1
	}
	mpi.IntAllReduceMax(g.wspcStop, g.wspcInum)
	for _, s := range g.wspcStop {
		if s > 0 {
			return true
		}
	}
	return false
}

// MaxFloat64 performs an Allreduce-with-MAX over a single float64,
// the collective behind the global convergence check. In serial mode
// (no MPI, or a single rank) it is the identity.
func MaxFloat64(distr bool, local float64) float64 {
	if !distr || !mpi.IsOn() || mpi.Size() <= 1 {
		return local
	}
	x := []float64{local}
	w := make([]float64, 1)
	mpi.AllReduceMax(x, w)
	return x[0]
}

// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// State is the capability set the driver is generic over: every
// concrete algorithm (PJ, GS, SOR, CG, PCG) implements it, and the
// loop below never special-cases any of them.
type State interface {
	// Update advances the iterate by one step, incrementing Iteration()
	// and recomputing Error().
	Update()
	Error() float64
	Iteration() int
}

// Result is the outcome the driver hands back to the caller.
// Diverged distinguishes a NaN error (treated as divergence) from an
// ordinary max_iter exhaustion; both report Converged == false.
type Result struct {
	Converged bool
	Diverged  bool
	Error     float64
	Iter      int
}

// Verbose, when true, makes Run print an iteration/error table while
// it drives the state.
var Verbose = false

// Run drives any State to convergence or exhaustion:
//
//	while iter < max_iter and error >= tolerance:
//	    state.Update()
//	return (converged = error < tolerance, final state)
//
// It never special-cases an algorithm: every PJ/GS/SOR/CG/PCG state
// plugs into this one loop.
func Run(s State, settings Settings[float64]) Result {
	if Verbose {
		io.Pfyel("%6s%23s\n", "iter", "error")
	}
	for s.Iteration() < settings.MaxIter && !(s.Error() < settings.Tolerance) {
		if math.IsNaN(s.Error()) {
			return Result{Diverged: true, Error: s.Error(), Iter: s.Iteration()}
		}
		s.Update()
		if Verbose {
			io.Pf("%6d%23.15e\n", s.Iteration(), s.Error())
		}
		if math.IsNaN(s.Error()) {
			return Result{Diverged: true, Error: s.Error(), Iter: s.Iteration()}
		}
	}
	return Result{
		Converged: s.Error() < settings.Tolerance,
		Error:     s.Error(),
		Iter:      s.Iteration(),
	}
}

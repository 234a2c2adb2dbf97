// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
	"github.com/cpmech/neudiff/stencil"
)

// unitSquareSystem builds the 3x3 unit-square diffusion system with
// a unit source, shared by every cross-algorithm test below.
func unitSquareSystem() *LinearSystem[float64] {
	src := la.Ones[float64](3, 3)
	p := stencil.DiffusionParams[float64]{A: 1, B: 1, M: 3, N: 3, D: 1, SigmaA: 0, Source: src}
	A, b := p.BuildLinearSystem()
	sys, err := NewLinearSystem(A, b)
	if err != nil {
		panic(err)
	}
	return sys
}

// Test_solver01 checks that PJ, GS, SOR, CG and PCG all converge to
// the direct LU solution (within tolerance) on the same system.
func Test_solver01(tst *testing.T) {

	chk.PrintTitle("Test solver01: PJ/GS/SOR/CG/PCG agree with LU on the unit-square problem")

	sys := unitSquareSystem()
	settings, err := NewSettings(1e-10, 10000)
	if err != nil {
		tst.Fatalf("NewSettings: %v", err)
	}

	xLU, status := la.DenseSolve(sys.A, sys.B)
	if status != la.Success {
		tst.Fatalf("expected a clean LU factorization")
	}

	pj, err := NewPJ(sys, nil)
	if err != nil {
		tst.Fatalf("NewPJ: %v", err)
	}
	resPJ := Run(pj, settings)
	if !resPJ.Converged {
		tst.Errorf("PJ did not converge: %+v", resPJ)
	}

	gs, err := NewGS(sys, nil)
	if err != nil {
		tst.Fatalf("NewGS: %v", err)
	}
	resGS := Run(gs, settings)
	if !resGS.Converged {
		tst.Errorf("GS did not converge: %+v", resGS)
	}

	sor, err := NewSOR(sys, nil, 1.2)
	if err != nil {
		tst.Fatalf("NewSOR: %v", err)
	}
	resSOR := Run(sor, settings)
	if !resSOR.Converged {
		tst.Errorf("SOR did not converge: %+v", resSOR)
	}

	cg, err := NewCG(sys, DefaultCGOptions())
	if err != nil {
		tst.Fatalf("NewCG: %v", err)
	}
	resCG := Run(cg, settings)
	if !resCG.Converged {
		tst.Errorf("CG did not converge: %+v", resCG)
	}

	jac, err := NewJacobiPreconditioner(sys.A)
	if err != nil {
		tst.Fatalf("NewJacobiPreconditioner: %v", err)
	}
	pcg, err := NewPCG(sys, jac, DefaultCGOptions())
	if err != nil {
		tst.Fatalf("NewPCG: %v", err)
	}
	resPCG := Run(pcg, settings)
	if !resPCG.Converged {
		tst.Errorf("PCG did not converge: %+v", resPCG)
	}

	for i := range xLU {
		chk.Scalar(tst, "PJ vs LU", 1e-6, pj.X()[i], xLU[i])
		chk.Scalar(tst, "GS vs LU", 1e-6, gs.X()[i], xLU[i])
		chk.Scalar(tst, "SOR vs LU", 1e-6, sor.X()[i], xLU[i])
		chk.Scalar(tst, "CG vs LU", 1e-6, cg.X()[i], xLU[i])
		chk.Scalar(tst, "PCG vs LU", 1e-6, pcg.X()[i], xLU[i])
	}
}

// Test_solver02 checks that a state started from the already
// converged solution reports convergence within 1-2 iterations.
func Test_solver02(tst *testing.T) {

	chk.PrintTitle("Test solver02: idempotent convergence from a converged start")

	sys := unitSquareSystem()
	xLU, status := la.DenseSolve(sys.A, sys.B)
	if status != la.Success {
		tst.Fatalf("expected a clean LU factorization")
	}
	settings, err := NewSettings(1e-9, 10000)
	if err != nil {
		tst.Fatalf("NewSettings: %v", err)
	}

	pj, err := NewPJ(sys, xLU)
	if err != nil {
		tst.Fatalf("NewPJ: %v", err)
	}
	resPJ := Run(pj, settings)
	if !resPJ.Converged || resPJ.Iter > 2 {
		tst.Errorf("expected PJ to settle within 2 iterations from a converged start, got %+v", resPJ)
	}

	gs, err := NewGS(sys, xLU)
	if err != nil {
		tst.Fatalf("NewGS: %v", err)
	}
	res := Run(gs, settings)
	if !res.Converged {
		tst.Errorf("expected immediate convergence, got %+v", res)
	}
	if res.Iter > 2 {
		tst.Errorf("expected convergence within 2 iterations from a converged start, took %d", res.Iter)
	}

	sor, err := NewSOR(sys, xLU, 1.3)
	if err != nil {
		tst.Fatalf("NewSOR: %v", err)
	}
	res2 := Run(sor, settings)
	if !res2.Converged || res2.Iter > 2 {
		tst.Errorf("expected SOR to settle within 2 iterations, got %+v", res2)
	}
}

// Test_solver03 checks the SOR relaxation range: omega==1 is accepted
// as a Gauss-Seidel alias, and omega outside (0,2) is rejected at
// construction with InvalidInput.
func Test_solver03(tst *testing.T) {

	chk.PrintTitle("Test solver03: SOR omega range")

	sys := unitSquareSystem()

	one, err := NewSOR(sys, nil, 1.0)
	if err != nil {
		tst.Errorf("expected omega=1.0 to be accepted as a GS alias, got %v", err)
	} else if !one.IsGS() {
		tst.Errorf("expected IsGS() true for omega=1.0")
	}

	if _, err := NewSOR(sys, nil, 0.0); err == nil {
		tst.Errorf("expected InvalidInput for omega=0")
	} else if de, ok := err.(*diag.Error); !ok || de.Kind != diag.InvalidInput {
		tst.Errorf("expected InvalidInput, got %v", err)
	}

	if _, err := NewSOR(sys, nil, 2.0); err == nil {
		tst.Errorf("expected InvalidInput for omega=2")
	}

	if _, err := NewSOR(sys, nil, -0.5); err == nil {
		tst.Errorf("expected InvalidInput for omega<0")
	}
}

// Test_solver04 checks that CG's residual norm falls below tolerance
// within n+5 iterations on an SPD system (the classical n-iteration
// bound, with slack for round-off).
func Test_solver04(tst *testing.T) {

	chk.PrintTitle("Test solver04: CG residual bound")

	sys := unitSquareSystem()
	settings, err := NewSettings(1e-10, sys.N()+5)
	if err != nil {
		tst.Fatalf("NewSettings: %v", err)
	}
	cg, err := NewCG(sys, DefaultCGOptions())
	if err != nil {
		tst.Fatalf("NewCG: %v", err)
	}
	res := Run(cg, settings)
	if !res.Converged {
		tst.Errorf("expected CG to converge within n+5 iterations on an SPD 9x9 system, got %+v", res)
	}
	if res.Iter > sys.N()+5 {
		tst.Errorf("CG exceeded the classical n-iteration exact-arithmetic bound by too much: %d iters for n=%d", res.Iter, sys.N())
	}

	// independent cross-check: gonum/floats computes the same L2 residual
	// norm from first principles, rather than trusting la.NormL2 twice.
	r := sys.Residual(cg.X())
	gonumNorm := floats.Norm(r, 2)
	chk.Scalar(tst, "||r||_2 (la.NormL2 vs gonum/floats.Norm)", 1e-9, la.NormL2(r), gonumNorm)
}

// Test_solver05 checks that PJ, GS, SOR and CG all agree with the
// direct LU solution on a fixed, symmetric, diagonally dominant system.
func Test_solver05(tst *testing.T) {

	chk.PrintTitle("Test solver05: PJ/GS/SOR/CG agree with LU on a diagonally dominant system")

	n := 6
	A := la.NewMatrix[float64](n, n)
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := 0; j < n; j++ {
			if j != i {
				v := 1.0 / float64(1+(i+j)%3)
				A.Set(i, j, v)
				rowSum += v
			}
		}
		A.Set(i, i, rowSum+5) // strictly diagonally dominant and symmetric
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i + 1)
	}
	sys, err := NewLinearSystem(A, b)
	if err != nil {
		tst.Fatalf("NewLinearSystem: %v", err)
	}
	xLU, status := la.DenseSolve(A, b)
	if status != la.Success {
		tst.Fatalf("expected a clean LU factorization")
	}
	settings, err := NewSettings(1e-10, 20000)
	if err != nil {
		tst.Fatalf("NewSettings: %v", err)
	}

	pj, _ := NewPJ(sys, nil)
	Run(pj, settings)
	gs, _ := NewGS(sys, nil)
	Run(gs, settings)
	sor, _ := NewSOR(sys, nil, 1.1)
	Run(sor, settings)
	cg, err := NewCG(sys, DefaultCGOptions())
	if err != nil {
		tst.Fatalf("NewCG: %v", err)
	}
	Run(cg, settings)

	for i := range xLU {
		chk.Scalar(tst, "PJ vs LU", 1e-6, pj.X()[i], xLU[i])
		chk.Scalar(tst, "GS vs LU", 1e-6, gs.X()[i], xLU[i])
		chk.Scalar(tst, "SOR vs LU", 1e-6, sor.X()[i], xLU[i])
		chk.Scalar(tst, "CG vs LU", 1e-6, cg.X()[i], xLU[i])
	}
}

// Test_solver06 drives CG over random SPD systems: it either converges
// within n iterations (the exact-arithmetic bound, with slack for
// round-off) or reports non-convergence, and a converged x satisfies
// ||b - A.x||_2 <= tau * ||b||_2.
func Test_solver06(tst *testing.T) {

	chk.PrintTitle("Test solver06: CG on random SPD systems")

	rng := rand.New(rand.NewSource(3))
	const tau = 1e-8
	for trial := 0; trial < 10; trial++ {
		n := 4 + trial
		A := la.RandomSPD[float64](n, rng)
		b := la.RandomVector[float64](n, -2, 2, rng)
		sys, err := NewLinearSystem(A, b)
		if err != nil {
			tst.Fatalf("NewLinearSystem: %v", err)
		}
		settings, err := NewSettings(tau, n+10)
		if err != nil {
			tst.Fatalf("NewSettings: %v", err)
		}
		cg, err := NewCG(sys, DefaultCGOptions())
		if err != nil {
			tst.Fatalf("trial %d: NewCG: %v", trial, err)
		}
		res := Run(cg, settings)
		if !res.Converged {
			continue // non-convergence is a legal outcome, just reported
		}
		rn := la.NormL2(sys.Residual(cg.X()))
		bn := la.NormL2(b)
		if rn > tau*bn {
			tst.Errorf("trial %d: ||b-A.x||_2=%v exceeds tau*||b||_2=%v", trial, rn, tau*bn)
		}
	}
}

// nanState drives Run into the NaN path: its first update poisons the
// error, which the driver must classify as divergence, not an
// ordinary exhaustion.
type nanState struct{ iter int }

func (s *nanState) Update() { s.iter++ }

func (s *nanState) Error() float64 {
	if s.iter == 0 {
		return 1
	}
	return math.NaN()
}

func (s *nanState) Iteration() int { return s.iter }

func Test_solver07(tst *testing.T) {

	chk.PrintTitle("Test solver07: NaN error reports divergence, not plain exhaustion")

	settings, err := NewSettings(1e-10, 100)
	if err != nil {
		tst.Fatalf("NewSettings: %v", err)
	}
	res := Run(&nanState{}, settings)
	if res.Converged {
		tst.Errorf("a NaN error must not count as convergence")
	}
	if !res.Diverged {
		tst.Errorf("expected the Diverged flag for a NaN error, got %+v", res)
	}
}

// Test_settings01 checks that Settings.Equal compares each field to
// its own counterpart.
func Test_settings01(tst *testing.T) {

	chk.PrintTitle("Test settings01: Settings.Equal compares field-wise")

	a := Settings[float64]{Tolerance: 1e-8, MaxIter: 100}
	if !a.Equal(Settings[float64]{Tolerance: 1e-8, MaxIter: 100}) {
		tst.Errorf("identical settings must compare equal")
	}
	if a.Equal(Settings[float64]{Tolerance: 1e-8, MaxIter: 200}) {
		tst.Errorf("different MaxIter must compare unequal")
	}
	if a.Equal(Settings[float64]{Tolerance: 1e-9, MaxIter: 100}) {
		tst.Errorf("different Tolerance must compare unequal")
	}

	if _, err := NewSettings(-1.0, 100); err == nil {
		tst.Errorf("expected InvalidInput for a negative tolerance")
	}
	if _, err := NewSettings(1e-8, 0); err == nil {
		tst.Errorf("expected InvalidInput for max_iter = 0")
	}
}

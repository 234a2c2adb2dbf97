// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stencil

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/neudiff/la"
)

func unitSquareParams() DiffusionParams[float64] {
	src := la.Ones[float64](3, 3)
	return DiffusionParams[float64]{A: 1, B: 1, M: 3, N: 3, D: 1, SigmaA: 0, Source: src}
}

func Test_diffusion01(tst *testing.T) {

	chk.PrintTitle("Test diffusion01: validation catches bad inputs")

	p := unitSquareParams()
	if err := p.Validate(); err != nil {
		tst.Errorf("expected valid params, got %v", err)
	}

	bad := p
	bad.D = 0
	if err := bad.Validate(); err == nil {
		tst.Errorf("expected InvalidInput for D<=0")
	}

	bad2 := p
	bad2.Source = la.NewMatrix[float64](2, 2)
	if err := bad2.Validate(); err == nil {
		tst.Errorf("expected InvalidInput for mismatched source shape")
	}
}

func Test_diffusion02(tst *testing.T) {

	chk.PrintTitle("Test diffusion02: stencil coefficients for a 1x1 unit square")

	p := unitSquareParams()
	s := p.BuildStencil()

	hx := 1.0 / 4.0
	wantNS := -1.0 / (hx * hx)
	chk.Scalar(tst, "North", 1e-14, s.North, wantNS)
	chk.Scalar(tst, "South", 1e-14, s.South, wantNS)
	chk.Scalar(tst, "East", 1e-14, s.East, wantNS)
	chk.Scalar(tst, "West", 1e-14, s.West, wantNS)
	chk.Scalar(tst, "Center", 1e-14, s.Center, -2*(wantNS+wantNS))
}

func Test_stencil01(tst *testing.T) {

	chk.PrintTitle("Test stencil01: row-major, col-major and checkerboard visit the same set")

	p := unitSquareParams()
	s := p.BuildStencil()

	count := map[Traversal]int{}
	seen := map[Traversal]map[[2]int]bool{RowMajor: {}, ColMajor: {}, Checkerboard: {}}
	for _, t := range []Traversal{RowMajor, ColMajor, Checkerboard} {
		s.Visit(t, func(i, j int) {
			count[t]++
			seen[t][[2]int{i, j}] = true
		})
	}
	if count[RowMajor] != 9 || count[ColMajor] != 9 || count[Checkerboard] != 9 {
		tst.Errorf("expected 9 interior cells per traversal, got %v", count)
	}
	for k := range seen[RowMajor] {
		if !seen[ColMajor][k] || !seen[Checkerboard][k] {
			tst.Errorf("traversal %v missing cell %v", k, k)
		}
	}
}

func Test_stencil02(tst *testing.T) {

	chk.PrintTitle("Test stencil02: build_matrix agrees with Apply on a sample field")

	p := unitSquareParams()
	s := p.BuildStencil()
	A := s.BuildMatrix()

	u, _ := NewPaddedField[float64](3, 3)
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	k := 0
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			u.Set(i, j, vals[k])
			k++
		}
	}
	uv := u.ViewOf()

	Au := la.MatVec(A, vals)
	k = 0
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			got := s.Apply(uv, i, j)
			chk.Scalar(tst, "Apply vs BuildMatrix", 1e-12, got, Au[k])
			k++
		}
	}
}

func Test_stencil03(tst *testing.T) {

	chk.PrintTitle("Test stencil03: unit-source solution is symmetric, positive, peaks at the center")

	p := unitSquareParams()
	A, b := p.BuildLinearSystem()
	x, status := la.DenseSolve(A, b)
	if status != la.Success {
		tst.Errorf("expected a clean factorization")
	}
	// unknown ordering is row-major (i,j) -> i*3+j for a 3x3 interior grid;
	// the center cell is (1,1) -> index 4
	center := x[4]
	for i, v := range x {
		if v <= 0 {
			tst.Errorf("expected a strictly positive flux at index %d, got %v", i, v)
		}
		if i != 4 && v > center+1e-12 {
			tst.Errorf("expected the center to be the maximum; x[%d]=%v > center=%v", i, v, center)
		}
	}
	// symmetry about the center: corners equal each other, edge-midpoints equal each other
	chk.Scalar(tst, "corner(0,0) == corner(2,2)", 1e-9, x[0], x[8])
	chk.Scalar(tst, "corner(0,2) == corner(2,0)", 1e-9, x[2], x[6])
	chk.Scalar(tst, "edge(0,1) == edge(1,0)", 1e-9, x[1], x[3])

	// the stencil residual of the direct solution vanishes
	s := p.BuildStencil()
	u, _ := NewPaddedField[float64](3, 3)
	k := 0
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			u.Set(i, j, x[k])
			k++
		}
	}
	res := s.MaxResidual(u.ViewOf(), p.Source)
	if res > 1e-9 {
		tst.Errorf("expected a vanishing stencil residual for the direct solution, got %v", res)
	}
}

// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

// This program checks the distributed solver end to end: run with
//
//	mpirun -np 4 go run t_parallel4_main.go
//
// It partitions an 8x8 diffusion problem across a 2x2 process grid,
// drives the distributed red/black SOR iteration to convergence,
// verifies that further halo exchanges without interior updates leave
// the padded buffers unchanged, gathers the flux field on rank 0,
// and compares it against the serial SOR solution of the identical
// problem within 1e-10.
package main

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/neudiff/domain"
	"github.com/cpmech/neudiff/la"
	"github.com/cpmech/neudiff/solver"
	"github.com/cpmech/neudiff/stencil"
)

func main() {

	utl.Tsilent = false
	var tst testing.T
	defer func() {
		if mpi.Rank() == 0 {
			if err := recover(); err != nil {
				utl.PfRed("ERROR: %v\n", err)
			}
			if tst.Failed() {
				utl.PfRed("test failed\n")
			} else {
				utl.Pfgreen("OK\n")
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if mpi.Size() != 4 {
		utl.Panic("this check must run with exactly 4 processes (mpirun -np 4), got %d\n", mpi.Size())
	}

	const m, n = 8, 8
	p := stencil.DiffusionParams[float64]{A: 1, B: 1, M: m, N: n, D: 1, SigmaA: 0.1, Source: la.Ones[float64](m, n)}
	if err := p.Validate(); err != nil {
		utl.Panic("invalid parameters: %v\n", err)
	}

	dom, err := domain.NewMPIDomain2D(2, 2)
	if err != nil {
		utl.Panic("%v\n", err)
	}
	global := la.Shape2D{Rows: m, Cols: n}
	blocks, err := domain.PlanBlocks2D(dom, global)
	if err != nil {
		utl.Panic("%v\n", err)
	}

	flux := domain.NewDistributed2DBlock(dom, blocks[dom.Rank])
	src := domain.NewDistributed2DBlock(dom, blocks[dom.Rank])
	domain.ScatterBlock2D(dom, p.Source, blocks, src)

	s := p.BuildStencil()
	const omega = 1.2
	sor, err := domain.NewParallelSOR(dom, flux, src, s, omega)
	if err != nil {
		utl.Panic("%v\n", err)
	}
	settings, err := solver.NewSettings(1e-12, 20000)
	if err != nil {
		utl.Panic("%v\n", err)
	}
	solver.Run(sor, settings)

	// the halos already mirror the neighbor interiors after the
	// last sweep, so two more exchanges without interior updates must
	// leave the padded buffer bitwise unchanged, on every rank.
	before := append([]float64{}, flux.Buffer.Data...)
	domain.ExchangeHalo(dom, flux)
	domain.ExchangeHalo(dom, flux)
	for i, v := range flux.Buffer.Data {
		if v != before[i] {
			utl.Panic("rank %d: halo exchange is not idempotent at flat index %d: %v != %v\n", dom.Rank, i, v, before[i])
		}
	}

	var gathered *la.Matrix[float64]
	if dom.Rank == 0 {
		gathered = la.NewMatrix[float64](m, n)
	}
	domain.GatherBlock2D(dom, gathered, blocks, flux)

	// every rank takes part in the PJ check's collectives
	checkParallelPJ(&tst, dom, blocks, p, settings)

	if dom.Rank != 0 {
		return
	}

	// serial reference: the same problem, same algorithm, one process
	A, b := p.BuildLinearSystem()
	sys, err := solver.NewLinearSystem(A, b)
	if err != nil {
		utl.Panic("%v\n", err)
	}
	refState, err := solver.NewSOR(sys, nil, omega)
	if err != nil {
		utl.Panic("%v\n", err)
	}
	solver.Run(refState, settings)

	chk.PrintTitle("parallel (2x2, 4 ranks) vs serial SOR on an 8x8 diffusion problem")
	ref := refState.X()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			chk.Scalar(&tst, "gathered vs serial", 1e-10, gathered.Get(i, j), ref[i*n+j])
		}
	}
}

// checkParallelPJ repeats the gather-and-compare check with the
// distributed Point-Jacobi sweep, against the direct solution.
func checkParallelPJ(tst *testing.T, dom *domain.MPIDomain2D, blocks []domain.Block2DInfo, p stencil.DiffusionParams[float64], settings solver.Settings[float64]) {
	const m, n = 8, 8
	flux := domain.NewDistributed2DBlock(dom, blocks[dom.Rank])
	src := domain.NewDistributed2DBlock(dom, blocks[dom.Rank])
	domain.ScatterBlock2D(dom, p.Source, blocks, src)

	pj, err := domain.NewParallelPJ(dom, flux, src, p.BuildStencil())
	if err != nil {
		utl.Panic("%v\n", err)
	}
	solver.Run(pj, settings)

	var gathered *la.Matrix[float64]
	if dom.Rank == 0 {
		gathered = la.NewMatrix[float64](m, n)
	}
	domain.GatherBlock2D(dom, gathered, blocks, flux)

	if dom.Rank != 0 {
		return
	}
	A, b := p.BuildLinearSystem()
	ref, status := la.DenseSolve(A, b)
	if status != la.Success {
		utl.Panic("unexpected small pivot in the reference factorization\n")
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			chk.Scalar(tst, "gathered PJ vs direct", 1e-9, gathered.Get(i, j), ref[i*n+j])
		}
	}
}

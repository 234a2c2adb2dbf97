// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/domain"
	"github.com/cpmech/neudiff/la"
	"github.com/cpmech/neudiff/solver"
	"github.com/cpmech/neudiff/stencil"
)

func main() {

	// catch errors
	utl.Tsilent = false
	defer func() {
		if mpi.Rank() == 0 {
			if err := recover(); err != nil {
				utl.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		utl.PfWhite("\nNeudiff -- 2D one-speed neutron diffusion engine\n\n")
	}

	// flags: region, grid, material, algorithm
	a := flag.Float64("a", 1, "region extent along x")
	b := flag.Float64("b", 1, "region extent along y")
	M := flag.Int("M", 9, "interior grid points along x")
	N := flag.Int("N", 9, "interior grid points along y")
	D := flag.Float64("D", 1, "diffusion coefficient")
	sigA := flag.Float64("siga", 0, "absorption cross-section")
	source := flag.String("source", "", "path to a whitespace-separated file of M*N source values (default: all ones)")

	algo := flag.String("algo", "sor", "solver: lu, pj, gs, sor, cg, pcg")
	tol := flag.Float64("tol", 1e-8, "convergence tolerance")
	maxIter := flag.Int("maxiter", 10000, "maximum iteration count")
	omega := flag.Float64("omega", 1.2, "SOR relaxation factor, omega in (0,2)")
	refresh := flag.Int("k", 10, "CG/PCG residual-refresh frequency")

	rp := flag.Int("rp", 1, "process-grid rows (parallel mode)")
	cp := flag.Int("cp", 1, "process-grid cols (parallel mode)")
	verbose := flag.Bool("v", false, "print an iteration table")

	flag.Parse()
	solver.Verbose = *verbose

	grp := diag.NewGroup()

	logger, err := diag.NewLogger(".", "neudiff", grp.Rank)
	if grp.Stop(err, "creating the per-rank log file") {
		os.Exit(1)
	}
	defer logger.Close()

	// build and validate the physical problem; every rank does this
	// identically
	src, err := loadSource(*source, *M, *N)
	logger.LogErr(err, "loading source")
	if grp.Stop(err, "loading source") {
		os.Exit(1)
	}
	params := stencil.DiffusionParams[float64]{A: *a, B: *b, M: *M, N: *N, D: *D, SigmaA: *sigA, Source: src}
	if grp.Stop(params.Validate(), "validating diffusion parameters") {
		os.Exit(1)
	}

	dom, err := domain.NewMPIDomain2D(*rp, *cp)
	if grp.Stop(err, "building process-grid topology") {
		os.Exit(1)
	}

	result, err := run(params, dom, *algo, *tol, *maxIter, *omega, *refresh)
	logger.LogErr(err, "running the solver")
	if grp.Stop(err, "running the solver") {
		os.Exit(1)
	}
	if result.SmallPivot {
		logger.LogErr(diag.Err(diag.NumericalWarning, "factorization hit a near-zero pivot"), "factorizing")
	}

	if dom.Rank == 0 {
		printResult(*algo, result)
	}
}

// engineResult is what the engine hands back: the flux field (rank 0
// only), the converged flag, the final iterative error, the iteration
// count and the final ||b-A.x||_inf residual.
type engineResult struct {
	Flux       *la.Matrix[float64]
	Converged  bool
	Diverged   bool
	SmallPivot bool // reported, never fatal
	Error      float64
	Iter       int
	Residual   float64
}

// run dispatches to the serial dense/iterative path (process-grid
// 1x1) or the distributed path (process-grid > 1x1).
func run(p stencil.DiffusionParams[float64], dom *domain.MPIDomain2D, algo string, tol float64, maxIter int, omega float64, refresh int) (engineResult, error) {
	if dom.NProcs() == 1 {
		return runSerial(p, algo, tol, maxIter, omega, refresh)
	}
	return runParallel(p, dom, algo, omega, tol, maxIter)
}

func runSerial(p stencil.DiffusionParams[float64], algo string, tol float64, maxIter int, omega float64, refresh int) (engineResult, error) {
	A, b := p.BuildLinearSystem()

	if strings.EqualFold(algo, "lu") {
		x, status := la.DenseSolve(A, b)
		return engineResult{
			Flux:       fieldOf(x, p.M, p.N),
			Residual:   la.MaxAbsDiff(la.MatVec(A, x), b),
			Converged:  true,
			SmallPivot: status == la.SmallPivot,
		}, nil
	}

	sys, err := solver.NewLinearSystem(A, b)
	if err != nil {
		return engineResult{}, err
	}
	settings, err := solver.NewSettings(tol, maxIter)
	if err != nil {
		return engineResult{}, err
	}

	var state solver.State
	var x func() []float64
	switch strings.ToLower(algo) {
	case "pj":
		s, err := solver.NewPJ(sys, nil)
		if err != nil {
			return engineResult{}, err
		}
		state, x = s, s.X
	case "gs":
		s, err := solver.NewGS(sys, nil)
		if err != nil {
			return engineResult{}, err
		}
		state, x = s, s.X
	case "sor":
		s, err := solver.NewSOR(sys, nil, omega)
		if err != nil {
			return engineResult{}, err
		}
		state, x = s, s.X
	case "cg":
		s, err := solver.NewCG(sys, solver.CGOptions{RefreshEvery: refresh})
		if err != nil {
			return engineResult{}, err
		}
		state, x = s, s.X
	case "pcg":
		jac, err := solver.NewJacobiPreconditioner(A)
		if err != nil {
			return engineResult{}, err
		}
		s, err := solver.NewPCG(sys, jac, solver.CGOptions{RefreshEvery: refresh})
		if err != nil {
			return engineResult{}, err
		}
		state, x = s, s.X
	default:
		return engineResult{}, diag.Err(diag.InvalidInput, "main: unknown algorithm %q (want lu, pj, gs, sor, cg, pcg)", algo)
	}

	res := solver.Run(state, settings)
	xv := x()
	return engineResult{
		Flux:      fieldOf(xv, p.M, p.N),
		Converged: res.Converged,
		Diverged:  res.Diverged,
		Error:     res.Error,
		Iter:      res.Iter,
		Residual:  sys.ResidualInf(xv),
	}, nil
}

// parallelState is the capability runParallel needs beyond
// solver.State: the MAX-reduced global residual every rank reports
// identically.
type parallelState interface {
	solver.State
	ResidualInf() float64
}

// runParallel drives a distributed iteration across the process grid
// and gathers the flux field on rank 0. PJ, GS and SOR have
// domain-decomposed forms; LU, CG and PCG run serially only.
func runParallel(p stencil.DiffusionParams[float64], dom *domain.MPIDomain2D, algo string, omega, tol float64, maxIter int) (engineResult, error) {
	global := la.Shape2D{Rows: p.M, Cols: p.N}
	blocks, err := domain.PlanBlocks2D(dom, global)
	if err != nil {
		return engineResult{}, err
	}

	fluxBlock := domain.NewDistributed2DBlock(dom, blocks[dom.Rank])
	srcBlock := domain.NewDistributed2DBlock(dom, blocks[dom.Rank])
	domain.ScatterBlock2D(dom, p.Source, blocks, srcBlock)

	s := p.BuildStencil()
	var state parallelState
	switch strings.ToLower(algo) {
	case "pj":
		state, err = domain.NewParallelPJ(dom, fluxBlock, srcBlock, s)
	case "gs":
		state, err = domain.NewParallelSOR(dom, fluxBlock, srcBlock, s, 1)
	case "sor":
		state, err = domain.NewParallelSOR(dom, fluxBlock, srcBlock, s, omega)
	default:
		err = diag.Err(diag.InvalidInput, "main: algorithm %q has no domain-decomposed form (want pj, gs or sor in parallel mode)", algo)
	}
	if err != nil {
		return engineResult{}, err
	}
	settings, err := solver.NewSettings(tol, maxIter)
	if err != nil {
		return engineResult{}, err
	}
	res := solver.Run(state, settings)

	var gathered *la.Matrix[float64]
	if dom.Rank == 0 {
		gathered = la.NewMatrix[float64](p.M, p.N)
	}
	domain.GatherBlock2D(dom, gathered, blocks, fluxBlock)

	return engineResult{
		Flux:      gathered,
		Converged: res.Converged,
		Diverged:  res.Diverged,
		Error:     res.Error,
		Iter:      res.Iter,
		Residual:  state.ResidualInf(),
	}, nil
}

// fieldOf reshapes a flat row-major solution vector into its (M,N)
// field matrix.
func fieldOf(x []float64, m, n int) *la.Matrix[float64] {
	out := la.NewMatrix[float64](m, n)
	copy(out.Data, x)
	return out
}

// loadSource reads M*N whitespace-separated values from path, or
// returns an all-ones (M,N) source when path is empty.
func loadSource(path string, m, n int) (*la.Matrix[float64], error) {
	if path == "" {
		return la.Ones[float64](m, n), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Err(diag.IOFailure, "main: cannot read source file %q: %v", path, err)
	}
	fields := strings.Fields(string(raw))
	if len(fields) != m*n {
		return nil, diag.Err(diag.InvalidInput, "main: source file %q has %d values, expected M*N=%d", path, len(fields), m*n)
	}
	out := la.NewMatrix[float64](m, n)
	for i, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, diag.Err(diag.InvalidInput, "main: source file %q: value %q is not a number", path, tok)
		}
		out.Data[i] = v
	}
	return out, nil
}

// printResult renders the run summary and the final flux field.
func printResult(algo string, r engineResult) {
	io.Pf("\nalgorithm    : %s\n", algo)
	io.Pf("converged    : %v\n", r.Converged)
	if r.Diverged {
		io.Pfred("diverged     : the iterative error became NaN\n")
	}
	if r.SmallPivot {
		io.Pfyel("warning      : LU encountered a small pivot\n")
	}
	io.Pf("iterations   : %d\n", r.Iter)
	io.Pf("final error  : %23.15e\n", r.Error)
	if r.Residual != 0 || r.Converged {
		io.Pf("||b-A.x||_oo : %23.15e\n", r.Residual)
	}
	if r.Flux == nil {
		return
	}
	io.Pf("\nflux field (%d x %d):\n", r.Flux.Rows(), r.Flux.Cols())
	for i := 0; i < r.Flux.Rows(); i++ {
		for j := 0; j < r.Flux.Cols(); j++ {
			io.Pf("%12.5e", r.Flux.Get(i, j))
		}
		io.Pf("\n")
	}
}

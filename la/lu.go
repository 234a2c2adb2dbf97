// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "github.com/cpmech/neudiff/diag"

// pivotEps is the small compile-time tolerance below which a pivot is
// reported as SmallPivot rather than fatal.
const pivotEps = 1e-14

// LUStatus is the outcome of a factorization.
type LUStatus int

const (
	// Success means every pivot encountered was well above pivotEps.
	Success LUStatus = iota
	// SmallPivot means at least one pivot was within pivotEps of zero;
	// a numerical warning the caller decides how to act on, not fatal.
	SmallPivot
)

// LUFactorInPlace overwrites A with its combined L\U factors: unit
// lower triangle in the strict lower part, upper triangle (including
// diagonal pivots) in the upper — no partial pivoting. A must be
// square, or rectangular up to min(rows,cols).
func LUFactorInPlace[T Real](A *Matrix[T]) LUStatus {
	n := A.Rows()
	k := A.Cols()
	if k < n {
		n = k
	}
	status := Success
	for k := 0; k < n; k++ {
		pivot := A.Get(k, k)
		if absT(pivot) < T(pivotEps) {
			status = SmallPivot
			if pivot == 0 {
				continue // leave the column as-is; caller sees SmallPivot
			}
		}
		for i := k + 1; i < A.Rows(); i++ {
			factor := A.Get(i, k) / pivot
			A.Set(i, k, factor)
			for j := k + 1; j < A.Cols(); j++ {
				A.Set(i, j, A.Get(i, j)-factor*A.Get(k, j))
			}
		}
	}
	return status
}

// LUPFactorInPlace factors A in place with partial row pivoting: at
// each column k, the largest-magnitude candidate from row k downward
// is selected (ties broken by the lowest row index), swapped into row
// k, and the swap is recorded. It returns the row-permutation matrix P
// built from the accumulated swaps (so that P*A_original == L*U) and
// the pivot status.
func LUPFactorInPlace[T Real](A *Matrix[T]) (P *Matrix[T], status LUStatus) {
	n := A.Rows()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	status = Success
	for k := 0; k < n; k++ {
		best := k
		bestAbs := absT(A.Get(k, k))
		for i := k + 1; i < n; i++ {
			v := absT(A.Get(i, k))
			if v > bestAbs {
				bestAbs = v
				best = i
			}
		}
		if best != k {
			A.SwapRows(best, k)
			perm[best], perm[k] = perm[k], perm[best]
		}
		pivot := A.Get(k, k)
		if absT(pivot) < T(pivotEps) {
			status = SmallPivot
			if pivot == 0 {
				continue
			}
		}
		for i := k + 1; i < n; i++ {
			factor := A.Get(i, k) / pivot
			A.Set(i, k, factor)
			for j := k + 1; j < n; j++ {
				A.Set(i, j, A.Get(i, j)-factor*A.Get(k, j))
			}
		}
	}
	return FromPermutation[T](perm), status
}

// ExtractLowerUnit splits a combined L\U buffer into its unit-diagonal
// lower-triangular factor L, leaving U (the same buffer, with its
// strict-lower part now implicitly zero because callers only ever read
// U's upper part) conceptually in place. L is returned as a fresh
// matrix so both factors can be held simultaneously.
func ExtractLowerUnit[T Real](LU *Matrix[T]) *Matrix[T] {
	n := LU.Rows()
	L := Eye[T](n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			L.Set(i, j, LU.Get(i, j))
		}
	}
	return L
}

// ExtractUpper returns the upper-triangular part of a combined L\U
// buffer (including the diagonal), zeroing the strict lower part.
func ExtractUpper[T Real](LU *Matrix[T]) *Matrix[T] {
	n := LU.Rows()
	U := NewMatrix[T](n, LU.Cols())
	for i := 0; i < n; i++ {
		for j := i; j < LU.Cols(); j++ {
			U.Set(i, j, LU.Get(i, j))
		}
	}
	return U
}

// ForwardSubstitution solves L*x = b by forward row elimination. With
// dk == Unit the division by L's diagonal is skipped, which lets
// callers pass a combined L\U buffer's strict-lower part directly,
// without ever materializing a unit-diagonal L.
func ForwardSubstitution[T Real](L *Matrix[T], b []T, dk DiagKind) []T {
	n := L.Rows()
	if len(b) != n {
		diag.Panicf("la: ForwardSubstitution: L is %v, len(b)=%d", L.Shape, len(b))
	}
	x := make([]T, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		row := L.Row(i)
		for j := 0; j < i; j++ {
			sum -= row[j] * x[j]
		}
		if dk == Unit {
			x[i] = sum
		} else {
			x[i] = sum / row[i]
		}
	}
	return x
}

// BackwardSubstitution solves U*x = b from the last row upward. U's
// diagonal is assumed non-zero (callers check LUStatus before calling
// this).
func BackwardSubstitution[T Real](U *Matrix[T], b []T) []T {
	n := U.Rows()
	if len(b) != n {
		diag.Panicf("la: BackwardSubstitution: U is %v, len(b)=%d", U.Shape, len(b))
	}
	x := make([]T, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		row := U.Row(i)
		for j := i + 1; j < n; j++ {
			sum -= row[j] * x[j]
		}
		x[i] = sum / row[i]
	}
	return x
}

// LUSolve composes forward and backward substitution: L*U*x = b.
func LUSolve[T Real](L, U *Matrix[T], b []T) []T {
	y := ForwardSubstitution(L, b, Unit)
	return BackwardSubstitution(U, y)
}

// LUPSolve solves L*U*x = P*b, i.e. the factored form of the
// originally-pivoted system A*x = b.
func LUPSolve[T Real](L, U, P *Matrix[T], b []T) []T {
	pb := MatVec(P, b)
	return LUSolve(L, U, pb)
}

// DenseSolve factors A with partial pivoting and solves A*x = b in one
// call, the direct baseline the iterative solvers are checked against.
// A is cloned so the caller's matrix is left untouched.
func DenseSolve[T Real](A *Matrix[T], b []T) (x []T, status LUStatus) {
	work := A.Clone()
	P, status := LUPFactorInPlace(work)
	L := ExtractLowerUnit(work)
	U := ExtractUpper(work)
	x = LUPSolve(L, U, P, b)
	return x, status
}

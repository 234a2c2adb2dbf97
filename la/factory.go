// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "github.com/cpmech/neudiff/diag"

// Zeros returns an (m x n) matrix of zeros.
func Zeros[T Real](m, n int) *Matrix[T] { return NewMatrix[T](m, n) }

// Ones returns an (m x n) matrix of ones.
func Ones[T Real](m, n int) *Matrix[T] {
	out := NewMatrix[T](m, n)
	Fill(out.Data, T(1))
	return out
}

// Eye returns the (m x n) identity-like matrix: 1 on the main
// diagonal, 0 elsewhere.
func Eye[T Real](m, n int) *Matrix[T] {
	out := NewMatrix[T](m, n)
	d := m
	if n < d {
		d = n
	}
	for i := 0; i < d; i++ {
		out.Set(i, i, T(1))
	}
	return out
}

// Diagonal returns a square matrix with v on its main diagonal.
func Diagonal[T Real](v []T) *Matrix[T] {
	n := len(v)
	out := NewMatrix[T](n, n)
	for i, x := range v {
		out.Set(i, i, x)
	}
	return out
}

// FromPermutation builds the row-permutation matrix P such that
// P.x == permute(x, p): P[i, p[i]] = 1 for every i. This is the
// factory form of the permutation LUPFactor returns.
func FromPermutation[T Real](p []int) *Matrix[T] {
	n := len(p)
	seen := make([]bool, n)
	for _, pi := range p {
		if pi < 0 || pi >= n {
			diag.Panicf("la: FromPermutation: index %d out of range for length %d", pi, n)
		}
		if seen[pi] {
			diag.Panicf("la: FromPermutation: %v is not a permutation (duplicate %d)", p, pi)
		}
		seen[pi] = true
	}
	out := NewMatrix[T](n, n)
	for i, pi := range p {
		out.Set(i, pi, T(1))
	}
	return out
}

// Permute returns x reordered according to p: out[i] = x[p[i]], the
// vector-side counterpart of FromPermutation.
func Permute[T Real](x []T, p []int) []T {
	out := make([]T, len(x))
	for i, pi := range p {
		out[i] = x[pi]
	}
	return out
}

// FuncOf is the element generator from_func accepts: f(i,j) -> value.
type FuncOf[T Real] func(i, j int) T

// FromFunc builds an (m x n) matrix from f. sym restricts filling to
// the chosen triangle (Upper/Lower), the diagonal alone (Diagonal),
// or averages f(i,j) and f(j,i) to force symmetry (Symmetric); dk
// optionally forces a unit diagonal, the way gosl's random-matrix
// builders do for SPD test systems.
func FromFunc[T Real](m, n int, f FuncOf[T], sym Symmetry, dk DiagKind) *Matrix[T] {
	out := NewMatrix[T](m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			switch sym {
			case Upper:
				if j < i {
					continue
				}
			case Lower:
				if j > i {
					continue
				}
			case Diagonal:
				if i != j {
					continue
				}
			}
			var v T
			switch {
			case dk == Unit && i == j:
				v = T(1)
			case sym == Symmetric && i != j:
				v = (f(i, j) + f(j, i)) / T(2)
			default:
				v = f(i, j)
			}
			out.Set(i, j, v)
		}
	}
	return out
}

// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "math/rand"

// Random returns an (m x n) matrix of values in [lo, hi), honoring sym
// and dk exactly as FromFunc does. rng is caller-owned so tests stay
// reproducible across runs (property-based checks seed their own
// *rand.Rand rather than relying on a package-global source).
func Random[T Real](m, n int, lo, hi T, sym Symmetry, dk DiagKind, rng *rand.Rand) *Matrix[T] {
	span := float64(hi - lo)
	f := func(i, j int) T {
		return lo + T(rng.Float64()*span)
	}
	return FromFunc(m, n, FuncOf[T](f), sym, dk)
}

// RandomVector returns a length-n vector of values in [lo, hi).
func RandomVector[T Real](n int, lo, hi T, rng *rand.Rand) []T {
	span := float64(hi - lo)
	out := make([]T, n)
	for i := range out {
		out[i] = lo + T(rng.Float64()*span)
	}
	return out
}

// RandomSPD returns a random symmetric positive-definite (n x n)
// matrix by forming A = R^T*R + n*I for a random R, the standard
// construction used to generate SPD test systems for CG/PCG.
func RandomSPD[T Real](n int, rng *rand.Rand) *Matrix[T] {
	r := Random[T](n, n, T(-1), T(1), General, NonUnit, rng)
	rt := r.Clone().Transpose()
	a := MatMul(rt, r)
	for i := 0; i < n; i++ {
		a.Set(i, i, a.Get(i, i)+T(n))
	}
	return a
}

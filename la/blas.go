// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "github.com/cpmech/neudiff/diag"

// Symmetry tags the triangular-range convention a kernel should use
// when scanning a matrix row.
type Symmetry int

const (
	General Symmetry = iota
	Upper
	Lower
	Symmetric
	Diagonal
)

// DiagKind selects whether a kernel should treat the matrix diagonal as
// literal values (NonUnit) or as an implicit 1 (Unit), the same
// distinction the triangular solves make for a combined L\U buffer.
type DiagKind int

const (
	NonUnit DiagKind = iota
	Unit
)

// Scal performs x <- alpha*x in place. No allocation.
func Scal[T Real](x []T, alpha T) {
	for i := range x {
		x[i] *= alpha
	}
}

// Axpy performs y <- alpha*x + y in place. No allocation.
func Axpy[T Real](x, y []T, alpha T) {
	assertLen(x, y, "Axpy")
	for i := range x {
		y[i] += alpha * x[i]
	}
}

// Dot computes the inner product of x and y.
func Dot[T Real](x, y []T) T {
	assertLen(x, y, "Dot")
	var sum T
	for i := range x {
		sum += x[i] * y[i]
	}
	return sum
}

// NormL2 is sqrt(Dot(v,v)).
func NormL2[T Real](v []T) T {
	return sqrtT(Dot(v, v))
}

// MaxAbsDiff returns max_i |a[i]-b[i]|, the elementwise building block
// behind stencil residual checks and test tolerances.
func MaxAbsDiff[T Real](a, b []T) T {
	assertLen(a, b, "MaxAbsDiff")
	var best T
	for i := range a {
		d := absT(a[i] - b[i])
		if i == 0 || d > best {
			best = d
		}
	}
	return best
}

// MaxAbs returns max_i |v[i]|.
func MaxAbs[T Real](v []T) T {
	var best T
	for i, x := range v {
		a := absT(x)
		if i == 0 || a > best {
			best = a
		}
	}
	return best
}

// Fill sets every element of v to val.
func Fill[T Real](v []T, val T) {
	for i := range v {
		v[i] = val
	}
}

// Gemv computes y <- alpha*A*x + beta*y. sym picks which part of A to
// scan (General scans every entry; Upper/Lower restrict the inner sum
// to the triangle, for triangular-storage matrices); dk == Unit
// treats A's diagonal as 1.
func Gemv[T Real](A *Matrix[T], x, y []T, alpha, beta T, sym Symmetry, dk DiagKind) {
	if A.Cols() != len(x) || A.Rows() != len(y) {
		diag.Panicf("la: Gemv shape mismatch: A is %v, len(x)=%d, len(y)=%d", A.Shape, len(x), len(y))
	}
	n, m := A.Rows(), A.Cols()
	for i := 0; i < n; i++ {
		var acc T
		row := A.Row(i)
		jlo, jhi := 0, m
		switch sym {
		case Upper:
			jlo = i
		case Lower:
			jhi = i + 1
		}
		for j := jlo; j < jhi; j++ {
			if dk == Unit && i == j {
				acc += x[j]
				continue
			}
			acc += row[j] * x[j]
		}
		y[i] = alpha*acc + beta*y[i]
	}
}

// Gemm computes C <- alpha*A*B + beta*C, dense, no symmetry exploited.
func Gemm[T Real](A, B, C *Matrix[T], alpha, beta T) {
	if A.Cols() != B.Rows() || A.Rows() != C.Rows() || B.Cols() != C.Cols() {
		panicShapeMismatch("Gemm", A.Shape, B.Shape, C.Shape)
	}
	n, k, p := A.Rows(), A.Cols(), B.Cols()
	for i := 0; i < n; i++ {
		ai := A.Row(i)
		for j := 0; j < p; j++ {
			var acc T
			for l := 0; l < k; l++ {
				acc += ai[l] * B.Get(l, j)
			}
			C.Set(i, j, alpha*acc+beta*C.Get(i, j))
		}
	}
}

func panicShapeMismatch(op string, shapes ...Shape2D) {
	diag.Panicf("la: %s got incompatible shapes %v", op, shapes)
}

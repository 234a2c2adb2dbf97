// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

// Add returns A+B as a new matrix: an allocating convenience wrapper
// around AddInPlace.
func Add[T Real](a, b *Matrix[T]) *Matrix[T] {
	out := a.Clone()
	out.AddInPlace(b)
	return out
}

// Sub returns A-B as a new matrix.
func Sub[T Real](a, b *Matrix[T]) *Matrix[T] {
	out := a.Clone()
	out.SubInPlace(b)
	return out
}

// ScaleBy returns alpha*A as a new matrix.
func ScaleBy[T Real](alpha T, a *Matrix[T]) *Matrix[T] {
	out := a.Clone()
	out.ScaleInPlace(alpha)
	return out
}

// DivBy returns A/alpha as a new matrix.
func DivBy[T Real](a *Matrix[T], alpha T) *Matrix[T] {
	out := a.Clone()
	out.DivInPlace(alpha)
	return out
}

// MatMul returns A*B as a new matrix (allocating Gemm wrapper).
func MatMul[T Real](a, b *Matrix[T]) *Matrix[T] {
	out := NewMatrix[T](a.Rows(), b.Cols())
	Gemm(a, b, out, T(1), T(0))
	return out
}

// MatVec returns A*x as a freshly allocated vector (allocating Gemv
// wrapper).
func MatVec[T Real](a *Matrix[T], x []T) []T {
	y := make([]T, a.Rows())
	Gemv(a, x, y, T(1), T(0), General, NonUnit)
	return y
}

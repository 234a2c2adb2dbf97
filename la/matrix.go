// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "github.com/cpmech/neudiff/diag"

// Matrix is an owned, row-major dense array of T stored in a single
// flat contiguous buffer: the BLAS kernels and the padded MatrixView
// both need contiguous backing storage, which a slice-of-slices
// ([][]T) cannot offer.
type Matrix[T Real] struct {
	Shape Shape2D
	Data  []T
}

// NewMatrix allocates a zeroed (rows x cols) matrix.
func NewMatrix[T Real](rows, cols int) *Matrix[T] {
	s := NewShape2D(rows, cols)
	return &Matrix[T]{Shape: s, Data: make([]T, s.Nelems())}
}

// Rows and Cols are shorthands used throughout the kernels.
func (m *Matrix[T]) Rows() int { return m.Shape.Rows }
func (m *Matrix[T]) Cols() int { return m.Shape.Cols }

// index converts (i,j) into the flat offset, panicking on out-of-range
// in the same spirit as gosl/chk.Panic guards invariants elsewhere.
func (m *Matrix[T]) index(i, j int) int {
	if i < 0 || i >= m.Shape.Rows || j < 0 || j >= m.Shape.Cols {
		diag.Panicf("la: index (%d,%d) out of range for shape (%d,%d)", i, j, m.Shape.Rows, m.Shape.Cols)
	}
	return i*m.Shape.Cols + j
}

// Get is the debug-checked element read.
func (m *Matrix[T]) Get(i, j int) T { return m.Data[m.index(i, j)] }

// Set is the debug-checked element write.
func (m *Matrix[T]) Set(i, j int, v T) { m.Data[m.index(i, j)] = v }

// At is the checked accessor: it returns an error instead of panicking
// when (i,j) is out of range, for callers on a user-input boundary.
func (m *Matrix[T]) At(i, j int) (T, error) {
	if i < 0 || i >= m.Shape.Rows || j < 0 || j >= m.Shape.Cols {
		var zero T
		return zero, diag.Err(diag.InvalidInput, "la: index (%d,%d) out of range for shape (%d,%d)", i, j, m.Shape.Rows, m.Shape.Cols)
	}
	return m.Data[i*m.Shape.Cols+j], nil
}

// Row returns a lazily-strided view (stride 1, length Cols) over row i,
// backed by the same storage: no allocation, no copy.
func (m *Matrix[T]) Row(i int) []T {
	if i < 0 || i >= m.Shape.Rows {
		diag.Panicf("la: row %d out of range for %d rows", i, m.Shape.Rows)
	}
	c := m.Shape.Cols
	return m.Data[i*c : i*c+c]
}

// Col returns the values of column j as a freshly allocated slice: a
// column is not contiguous in row-major storage, so unlike Row it
// cannot be returned as a sub-slice view.
func (m *Matrix[T]) Col(j int) []T {
	if j < 0 || j >= m.Shape.Cols {
		diag.Panicf("la: col %d out of range for %d cols", j, m.Shape.Cols)
	}
	out := make([]T, m.Shape.Rows)
	for i := range out {
		out[i] = m.Get(i, j)
	}
	return out
}

// SwapRows exchanges rows i and j in place, in O(cols).
func (m *Matrix[T]) SwapRows(i, j int) {
	if i == j {
		return
	}
	ri, rj := m.Row(i), m.Row(j)
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// Transpose returns A^T as a new matrix, or transposes in place when A
// is square.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	if m.Shape.IsSquare() {
		n := m.Shape.Rows
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := m.Get(i, j), m.Get(j, i)
				m.Set(i, j, b)
				m.Set(j, i, a)
			}
		}
		return m
	}
	out := NewMatrix[T](m.Shape.Cols, m.Shape.Rows)
	for i := 0; i < m.Shape.Rows; i++ {
		for j := 0; j < m.Shape.Cols; j++ {
			out.Set(j, i, m.Get(i, j))
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	out := &Matrix[T]{Shape: m.Shape, Data: make([]T, len(m.Data))}
	copy(out.Data, m.Data)
	return out
}

// AddInPlace performs A += B, element-wise.
func (m *Matrix[T]) AddInPlace(b *Matrix[T]) {
	assertSameShape(m.Shape, b.Shape, "AddInPlace")
	for i := range m.Data {
		m.Data[i] += b.Data[i]
	}
}

// SubInPlace performs A -= B, element-wise.
func (m *Matrix[T]) SubInPlace(b *Matrix[T]) {
	assertSameShape(m.Shape, b.Shape, "SubInPlace")
	for i := range m.Data {
		m.Data[i] -= b.Data[i]
	}
}

// ScaleInPlace performs A *= alpha.
func (m *Matrix[T]) ScaleInPlace(alpha T) {
	for i := range m.Data {
		m.Data[i] *= alpha
	}
}

// DivInPlace performs A /= alpha.
func (m *Matrix[T]) DivInPlace(alpha T) {
	for i := range m.Data {
		m.Data[i] /= alpha
	}
}

// NormFrobenius is the Frobenius norm sqrt(sum A[i,j]^2).
func (m *Matrix[T]) NormFrobenius() T {
	var sum T
	for _, v := range m.Data {
		sum += v * v
	}
	return sqrtT(sum)
}

// NormInf is the max-abs entry, ||A||_inf in the elementwise (not
// induced operator) sense used by the residual checks.
func (m *Matrix[T]) NormInf() T {
	var best T
	for i, v := range m.Data {
		a := absT(v)
		if i == 0 || a > best {
			best = a
		}
	}
	return best
}

func assertSameShape(a, b Shape2D, op string) {
	if a != b {
		diag.Panicf("la: %s requires matching shapes, got %v and %v", op, a, b)
	}
}

func assertLen[T any](a, b []T, op string) {
	if len(a) != len(b) {
		diag.Panicf("la: %s requires matching lengths, got %d and %d", op, len(a), len(b))
	}
}

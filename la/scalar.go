// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"math"

	"github.com/chewxy/math32"
)

// Real is the scalar parameter T threaded through every component: the
// engine is built once, generically, over single or double precision.
type Real interface {
	~float32 | ~float64
}

// Abs is the exported form of absT, for callers outside this package
// that need a precision-generic absolute value (e.g. stencil residual
// checks) without reaching for math.Abs's float64-only signature.
func Abs[T Real](x T) T { return absT(x) }

// absT is a branch, not a library call: both float32 and float64 share
// the same sign-bit semantics, so there is nothing for math/math32 to
// add here.
func absT[T Real](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// sqrtT dispatches to the precision-appropriate sqrt: math32.Sqrt for
// the float32 instantiation of T, math.Sqrt for float64. This is the
// one place the generic kernels need a non-generic math routine.
func sqrtT[T Real](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Sqrt(v))
	case float64:
		return T(math.Sqrt(v))
	default:
		return T(math.Sqrt(float64(x)))
	}
}

// isNaNT reports whether x is NaN, for any precision of T.
func isNaNT[T Real](x T) bool {
	return x != x
}

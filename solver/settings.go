// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/neudiff/diag"
	"github.com/cpmech/neudiff/la"
)

// Settings are the two knobs common to every fixed-point solver:
// tolerance and the iteration budget.
type Settings[T la.Real] struct {
	Tolerance T
	MaxIter   int
}

// NewSettings validates tolerance > 0 and max_iter > 0.
func NewSettings[T la.Real](tolerance T, maxIter int) (Settings[T], error) {
	if tolerance <= 0 {
		return Settings[T]{}, diag.Err(diag.InvalidInput, "solver: tolerance must be > 0, got %v", tolerance)
	}
	if maxIter <= 0 {
		return Settings[T]{}, diag.Err(diag.InvalidInput, "solver: max_iter must be > 0, got %d", maxIter)
	}
	return Settings[T]{Tolerance: tolerance, MaxIter: maxIter}, nil
}

// Equal compares field-wise.
func (s Settings[T]) Equal(o Settings[T]) bool {
	return s.Tolerance == o.Tolerance && s.MaxIter == o.MaxIter
}

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"math"
	"testing"
)

func TestVector(t *testing.T) {
	v := Vector{Dim: 6, Indices: []int{0, 3, 5}, Values: []float64{3, 4, 1}}
	w := Vector{Dim: 6, Indices: []int{1, 3, 5}, Values: []float64{7, 2, 2}}

	t.Run("At", func(t *testing.T) {
		for i, want := range []float64{3, 0, 0, 4, 0, 1} {
			if got := v.At(i); got != want {
				t.Errorf("At(%d) = %v, want %v", i, got, want)
			}
		}
	})

	t.Run("Dense", func(t *testing.T) {
		d := v.Dense()
		if len(d) != 6 || d[3] != 4 || d[1] != 0 {
			t.Errorf("Dense() = %v", d)
		}
	})

	t.Run("Norm", func(t *testing.T) {
		if got := v.Norm(); math.Abs(got-math.Sqrt(26)) > epsilon {
			t.Errorf("Norm() = %v, want sqrt(26)", got)
		}
	})

	t.Run("Dot", func(t *testing.T) {
		if got := v.Dot(w); got != 10 {
			t.Errorf("Dot() = %v, want 10", got)
		}
		if v.Dot(w) != w.Dot(v) {
			t.Error("Dot() is not symmetric")
		}
		if got := v.Dot(Vector{Dim: 6}); got != 0 {
			t.Errorf("Dot(empty) = %v, want 0", got)
		}
	})

	t.Run("IsZero", func(t *testing.T) {
		if v.IsZero() {
			t.Error("IsZero() = true for non-zero vector")
		}
		if !(Vector{Dim: 4}).IsZero() {
			t.Error("IsZero() = false for empty vector")
		}
	})
}

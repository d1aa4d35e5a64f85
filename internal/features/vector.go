// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import "math"

// Vector is a sparse feature vector. Indices are strictly increasing and
// every index is below Dim. Zero entries are never stored.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Len returns the number of stored (non-zero) entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// At returns the value at position i.
func (v Vector) At(i int) float64 {
	lo, hi := 0, len(v.Indices)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case v.Indices[mid] == i:
			return v.Values[mid]
		case v.Indices[mid] < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Dense materializes the vector.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether every entry is zero.
func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Dot returns the inner product with o. Both vectors must share the same
// layout; entries beyond the shorter Dim never match.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Matrix is a stack of vectors sharing one layout, in catalog index order.
type Matrix struct {
	Dim  int
	Rows []Vector
}

// Len returns the number of rows.
func (m Matrix) Len() int {
	return len(m.Rows)
}

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package ranking

import "github.com/tomtom215/stylematch/internal/features"

// Cosine returns the cosine similarity of a and b. It is 0 when either
// vector has zero norm, never NaN.
func Cosine(a, b features.Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// Score returns the cosine similarity of q against every row of m, indexed
// like m.Rows.
func Score(q features.Vector, m features.Matrix) []float64 {
	scores := make([]float64, len(m.Rows))
	qn := q.Norm()
	if qn == 0 {
		return scores
	}
	for i, row := range m.Rows {
		rn := row.Norm()
		if rn == 0 {
			continue
		}
		scores[i] = q.Dot(row) / (qn * rn)
	}
	return scores
}

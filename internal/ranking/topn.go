// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package ranking

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/stylematch/internal/features"
)

// ErrInvalidTopN is returned when the requested result count is not positive.
var ErrInvalidTopN = errors.New("top_n must be a positive integer")

// Match is one ranked catalog row.
type Match struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

type selectOptions struct {
	exclude  map[int]struct{}
	minScore float64
	hasMin   bool
}

// Option adjusts a selection.
type Option func(*selectOptions)

// ExcludeIndex drops the given catalog indices from the results. It may be
// passed more than once.
func ExcludeIndex(indices ...int) Option {
	return func(o *selectOptions) {
		if o.exclude == nil {
			o.exclude = make(map[int]struct{}, len(indices))
		}
		for _, i := range indices {
			o.exclude[i] = struct{}{}
		}
	}
}

// MinScore drops matches scoring below s.
func MinScore(s float64) Option {
	return func(o *selectOptions) {
		o.minScore = s
		o.hasMin = true
	}
}

// TopN scores q against m and returns up to n matches, best first. When n
// exceeds the number of eligible rows all of them are returned.
func TopN(q features.Vector, m features.Matrix, n int, opts ...Option) ([]Match, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, n)
	}
	return SelectTop(Score(q, m), n, opts...)
}

// SelectTop picks the n best entries of precomputed scores. NaN scores are
// never selected.
func SelectTop(scores []float64, n int, opts ...Option) ([]Match, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, n)
	}

	var o selectOptions
	for _, opt := range opts {
		opt(&o)
	}

	h := newMatchHeap(min(n, len(scores)))
	if h.limit == 0 {
		return []Match{}, nil
	}
	for i, s := range scores {
		if math.IsNaN(s) {
			continue
		}
		if o.hasMin && s < o.minScore {
			continue
		}
		if _, skip := o.exclude[i]; skip {
			continue
		}
		h.offer(Match{Index: i, Score: s})
	}
	return h.drain(), nil
}

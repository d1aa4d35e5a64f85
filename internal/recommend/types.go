// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package recommend

import (
	"time"

	"github.com/tomtom215/stylematch/internal/catalog"
)

// Item is one recommended catalog row.
type Item struct {
	// Index is the row's position in the catalog.
	Index int `json:"index"`

	// Score is the cosine similarity to the query, in [0, 1].
	Score float64 `json:"score"`

	// Row is the catalog row itself.
	Row catalog.Row `json:"-"`
}

// Result is a ranked list of items, best first, at most TopN long.
type Result struct {
	Items []Item `json:"items"`

	// TopN is the effective count after defaults and caps.
	TopN int `json:"top_n"`

	// Fingerprint identifies the catalog snapshot that produced the result.
	Fingerprint string `json:"fingerprint"`

	// CacheHit reports whether the result came from the response cache.
	CacheHit bool `json:"cache_hit"`
}

// Rows returns the catalog rows of the result in rank order.
func (r *Result) Rows() []catalog.Row {
	rows := make([]catalog.Row, len(r.Items))
	for i, it := range r.Items {
		rows[i] = it.Row
	}
	return rows
}

// Status describes the published snapshot.
type Status struct {
	Initialized bool `json:"initialized"`

	Rows           int       `json:"rows"`
	Dim            int       `json:"dim"`
	VocabularySize int       `json:"vocabulary_size"`
	Fingerprint    string    `json:"fingerprint,omitempty"`
	FittedAt       time.Time `json:"fitted_at"`

	// Generation counts successful initializations.
	Generation int64 `json:"generation"`

	// FromSnapshot reports whether the encoder was restored from disk.
	FromSnapshot bool `json:"from_snapshot"`

	CacheEntries int `json:"cache_entries"`
}

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

// Package validation checks decoded API requests with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field errors are reported by
// JSON name so messages match what clients sent:
//
//	productDisplayName is required
//	top_n must be at most 100
package validation

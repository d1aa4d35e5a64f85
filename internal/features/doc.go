// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

// Package features turns catalog rows and queries into comparable feature
// vectors.
//
// # Encoding
//
// Fit learns two things from the catalog, once:
//
//   - a term vocabulary over the text field, weighted by smoothed inverse
//     document frequency: idf(t) = ln((1+n)/(1+df(t))) + 1
//   - for each categorical field, the sorted set of observed values plus a
//     trailing "unknown" slot
//
// Transform applies that fitted state without changing it. Term counts are
// multiplied by idf and the text segment is L2 normalized; each categorical
// field contributes exactly one 1.0 entry, in the unknown slot when the
// value is missing or was never seen during Fit.
//
// # Layout
//
// Every vector produced by one Encoder has the same Dim and the same
// partition:
//
//	[ text terms | gender values | gender? | masterCategory values | masterCategory? | ... ]
//
// Vectors are sparse. Vector.Dense materializes one when needed.
//
// # Snapshots
//
// SnapshotStore persists fitted encoders keyed by the catalog fingerprint so
// a restart against an unchanged catalog can skip Fit.
package features

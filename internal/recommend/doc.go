// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

// Package recommend serves content-based product recommendations from a
// fixed catalog.
//
// # Architecture
//
// Initialize fits a features.Encoder on the catalog, encodes every row into
// a features.Matrix, and publishes the result as an immutable snapshot.
// Recommend encodes a query with the same encoder and ranks the matrix by
// cosine similarity using the ranking package.
//
//	svc := recommend.New(recommend.DefaultConfig())
//	if err := svc.Initialize(ctx, rows); err != nil {
//	    return err
//	}
//
//	res, err := svc.Recommend(ctx, catalog.NewQuery("red cotton shirt", map[string]string{
//	    catalog.FieldGender: "Men",
//	}), 5)
//
// # Thread Safety
//
// The service is safe for concurrent use. The current snapshot sits behind
// an atomic pointer and Recommend never takes a lock. Initialize is
// serialized by a mutex and swaps the snapshot only after a successful fit,
// so requests in flight finish against the previous catalog and a failed
// reload leaves it in place. TryInitialize returns ErrReloadInProgress
// instead of waiting.
//
// # Caching
//
// Responses are kept in an LRU keyed by the normalized query and result
// count; the cache is purged on every successful Initialize. When a
// snapshot directory is configured the fitted encoder is also persisted
// and reused on the next start if the catalog fingerprint still matches.
package recommend

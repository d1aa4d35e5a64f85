// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

// Package catalog loads and cleans the product catalog that feeds the
// recommendation service.
//
// # Record Shape
//
// A catalog row carries one free-text field (the product display name) and a
// fixed, ordered set of categorical fields. The shape is declared once in
// DefaultSchema and never changes for the lifetime of a fitted encoder:
//
//	productDisplayName   text (required, non-empty after cleaning)
//	gender               categorical
//	masterCategory       categorical
//	subCategory          categorical
//	articleType          categorical
//	season               categorical
//	usage                categorical
//
// Every other column found in the source (id, baseColour, year, ...) is kept
// verbatim in Row.Extra so results can be rendered with the full product.
//
// # Sources
//
// Three backing stores are supported, selected by catalog.source:
//
//   - csv: encoding/csv reader, malformed lines skipped and counted
//   - duckdb: read_csv(ignore_errors=true) for .csv files, or a table in a DuckDB file
//   - sqlite: a table in a SQLite file (pure Go driver)
//
// All sources apply the same cleaning: rows whose text field is empty are
// dropped and the survivors are reindexed densely from zero.
//
// # Resilience
//
// BreakerSource wraps any Source with a circuit breaker so periodic reloads
// stop hitting a broken store until it recovers.
package catalog

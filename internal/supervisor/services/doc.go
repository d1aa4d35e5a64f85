// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

// Package services wraps long-running components as suture services.
//
//   - CatalogService: startup catalog load, periodic and on-demand reloads
//     rate limited with golang.org/x/time/rate
//   - HTTPServerService: an http.Server with graceful shutdown
//
// Every service implements fmt.Stringer so supervisor events name it.
package services

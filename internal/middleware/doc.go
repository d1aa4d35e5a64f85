// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package middleware holds the service's own HTTP middleware. Each one is an
http.HandlerFunc wrapper; the api package adapts them for chi's r.Use.

  - RequestID: X-Request-ID propagation plus logging context ids
  - RequestLogger: one zerolog access line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for bodies of at least MinCompressSize bytes

CORS, rate limiting, panic recovery and timeouts come from chi's ecosystem
(go-chi/cors, go-chi/httprate, chi/middleware) and are wired in api.
*/
package middleware

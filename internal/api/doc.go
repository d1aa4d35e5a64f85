// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package api serves the recommendation service over HTTP with chi.

Routes:

	POST /api/v1/recommend         ranked recommendations for a product record
	POST /recommend                legacy form/JSON endpoint, returns a bare array
	GET  /api/v1/catalog           catalog and encoder status
	POST /api/v1/catalog/reload    reload the catalog now (409 busy, 429 throttled)
	POST /api/v1/chat              broadcast a chat message to WebSocket clients
	POST /chat                     legacy chat post, plain OK reply
	GET  /ws                       chat WebSocket (Origin must be an allowed CORS origin)
	GET  /health/live              liveness
	GET  /health/ready             readiness, 503 until the catalog is loaded
	GET  /metrics                  Prometheus

Versioned endpoints answer with the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"timestamp": ..., "request_id": ..., "query_time_ms": 3}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "productDisplayName is required"}}

Errors from the recommend package map to status codes in errors.go.
*/
package api

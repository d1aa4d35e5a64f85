// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

HTTP Metrics:
  - stylematch_api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - stylematch_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - stylematch_api_active_requests: In-flight requests (gauge)

Recommendation Metrics:
  - stylematch_recommend_requests_total: Recommend calls by outcome (counter)
    Labels: status (ok, invalid, not_initialized, error)
  - stylematch_recommend_duration_seconds: Recommend latency (histogram)
  - stylematch_recommend_cache_hits_total / _misses_total (counters)

Catalog Metrics:
  - stylematch_catalog_rows: Rows in the active snapshot (gauge)
  - stylematch_feature_dimensions: Feature vector length (gauge)
  - stylematch_vocabulary_size: Fitted text vocabulary size (gauge)
  - stylematch_catalog_reloads_total: Initialize attempts by outcome (counter)
    Labels: status (success, failure, skipped)
  - stylematch_catalog_reload_duration_seconds: Fit plus transform time (histogram)
  - stylematch_catalog_last_reload_timestamp_seconds (gauge)

Resilience Metrics:
  - stylematch_circuit_breaker_state: 0 closed, 1 half-open, 2 open (gauge)
    Labels: name

# Example Queries

	# p95 recommend latency
	histogram_quantile(0.95, rate(stylematch_recommend_duration_seconds_bucket[5m]))

	# cache hit ratio
	rate(stylematch_recommend_cache_hits_total[5m]) /
	  (rate(stylematch_recommend_cache_hits_total[5m]) + rate(stylematch_recommend_cache_misses_total[5m]))
*/
package metrics

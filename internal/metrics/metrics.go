// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommend outcome labels.
const (
	StatusOK             = "ok"
	StatusInvalid        = "invalid"
	StatusNotInitialized = "not_initialized"
	StatusError          = "error"
)

// Reload outcome labels.
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
	ReloadSkipped = "skipped"
)

// Chat message outcome labels.
const (
	ChatDelivered = "delivered"
	ChatRejected  = "rejected"
	ChatDropped   = "dropped"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylematch_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_recommend_requests_total",
			Help: "Total number of recommend calls by outcome",
		},
		[]string{"status"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stylematch_recommend_duration_seconds",
			Help:    "Time to transform a query and rank the catalog",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylematch_recommend_cache_hits_total",
			Help: "Recommend calls served from the response cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylematch_recommend_cache_misses_total",
			Help: "Recommend calls that had to rank the catalog",
		},
	)

	// Catalog Metrics
	CatalogRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_catalog_rows",
			Help: "Number of rows in the active catalog snapshot",
		},
	)

	FeatureDimensions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_feature_dimensions",
			Help: "Length of feature vectors produced by the active encoder",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_vocabulary_size",
			Help: "Number of text terms in the active encoder",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_catalog_reloads_total",
			Help: "Catalog initialize attempts by outcome",
		},
		[]string{"status"},
	)

	CatalogReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stylematch_catalog_reload_duration_seconds",
			Help:    "Time to fit the encoder and build the feature matrix",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CatalogLastReload = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_catalog_last_reload_timestamp_seconds",
			Help: "Unix time of the last successful catalog initialize",
		},
	)

	// Chat Metrics
	ChatClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_chat_clients",
			Help: "Number of connected chat websocket clients",
		},
	)

	ChatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_chat_messages_total",
			Help: "Chat messages offered to the hub by outcome",
		},
		[]string{"status"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stylematch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stylematch_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommend records the outcome and latency of one recommend call.
func RecordRecommend(status string, duration time.Duration) {
	RecommendRequests.WithLabelValues(status).Inc()
	if status == StatusOK {
		RecommendDuration.Observe(duration.Seconds())
	}
}

// RecordCacheLookup counts a response cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordReload records a catalog initialize attempt. Gauges are only
// updated on success so they always describe the active snapshot.
func RecordReload(status string, duration time.Duration, rows, dims, vocab int) {
	CatalogReloads.WithLabelValues(status).Inc()
	if status != ReloadSuccess {
		return
	}
	CatalogReloadDuration.Observe(duration.Seconds())
	CatalogRows.Set(float64(rows))
	FeatureDimensions.Set(float64(dims))
	VocabularySize.Set(float64(vocab))
	CatalogLastReload.Set(float64(time.Now().Unix()))
}

// SetChatClients records the number of connected chat clients.
func SetChatClients(n int) {
	ChatClients.Set(float64(n))
}

// RecordChatMessage counts one chat message by outcome.
func RecordChatMessage(status string) {
	ChatMessages.WithLabelValues(status).Inc()
}

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package api

import (
	"net/http"
	"time"
)

// HealthLive handles GET /health/live. It only proves the process serves
// HTTP.
func (router *Router) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"alive":          true,
		"uptime_seconds": time.Since(router.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready. It answers 503 until the first
// catalog snapshot is published.
func (router *Router) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	st := router.svc.Status()
	data := map[string]any{
		"ready":      st.Initialized,
		"rows":       st.Rows,
		"generation": st.Generation,
	}
	if !router.svc.Ready() {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog not loaded", data)
		return
	}
	rw.Success(data)
}

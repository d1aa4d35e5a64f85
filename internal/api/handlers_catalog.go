// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package api

import (
	"net/http"
)

// CatalogStatus handles GET /api/v1/catalog.
func (router *Router) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(router.svc.Status())
}

// ReloadCatalog handles POST /api/v1/catalog/reload. The reload runs in the
// request; the response carries the status after it.
func (router *Router) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status, err := router.reloader.Reload(r.Context())
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(status)
}

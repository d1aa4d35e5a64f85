// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/stylematch/internal/catalog"
	"github.com/tomtom215/stylematch/internal/middleware"
	"github.com/tomtom215/stylematch/internal/recommend"
	ws "github.com/tomtom215/stylematch/internal/websocket"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 64 << 10

// Recommender is the part of *recommend.Service the API needs.
type Recommender interface {
	Recommend(ctx context.Context, q catalog.Query, topN int) (*recommend.Result, error)
	Status() recommend.Status
	Ready() bool
}

// CatalogReloader reloads the catalog on demand.
type CatalogReloader interface {
	Reload(ctx context.Context) (recommend.Status, error)
}

// RouterConfig holds router settings.
type RouterConfig struct {
	// Schema maps catalog rows back to product records in responses.
	Schema catalog.Schema

	// RequestTimeout bounds API handlers; zero disables the timeout.
	RequestTimeout time.Duration

	// MaxBodyBytes caps request bodies.
	// Default: 64 KiB
	MaxBodyBytes int64

	// Middleware configures CORS and rate limiting; nil means defaults.
	Middleware *ChiMiddlewareConfig

	// Chat is the chat hub. When nil the chat endpoints answer 503.
	Chat *ws.Hub
}

// Router holds the handlers and their dependencies.
type Router struct {
	svc       Recommender
	reloader  CatalogReloader
	cfg       RouterConfig
	mw        *ChiMiddleware
	startTime time.Time
}

// NewRouter creates a router. reloader may be nil, in which case the
// reload endpoint is not registered.
//
//nolint:gocritic // cfg is copied so later edits by the caller do not leak in
func NewRouter(svc Recommender, reloader CatalogReloader, cfg RouterConfig) *Router {
	if !cfg.Schema.HasTextField() {
		cfg.Schema = catalog.DefaultSchema
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Router{
		svc:       svc,
		reloader:  reloader,
		cfg:       cfg,
		mw:        NewChiMiddleware(cfg.Middleware),
		startTime: time.Now(),
	}
}

// Handler builds the chi handler tree.
func (router *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(adapt(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(adapt(middleware.RequestLogger))
	r.Use(adapt(middleware.PrometheusMetrics))
	r.Use(router.mw.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusNotFound, ErrCodeNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health/live", router.HealthLive)
	r.Get("/health/ready", router.HealthReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// The upgrade hijacks the connection, so it stays outside the
	// timeout and compression middleware.
	r.Get("/ws", router.ChatSocket)

	r.Group(func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		if router.cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.cfg.RequestTimeout))
		}
		r.Use(adapt(middleware.Compression))

		r.Post("/recommend", router.LegacyRecommend)
		r.Post("/chat", router.LegacyChat)

		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/recommend", router.Recommend)
			r.Post("/chat", router.PostChat)
			r.Get("/catalog", router.CatalogStatus)
			if router.reloader != nil {
				r.Post("/catalog/reload", router.ReloadCatalog)
			}
		})
	})

	return r
}

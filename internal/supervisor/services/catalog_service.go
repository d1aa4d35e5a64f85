// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/stylematch/internal/catalog"
	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/metrics"
	"github.com/tomtom215/stylematch/internal/recommend"
)

// ErrReloadThrottled is returned by Reload when the previous reload was
// less than MinReloadGap ago.
var ErrReloadThrottled = errors.New("catalog reload throttled")

// Initializer is the part of *recommend.Service the catalog service drives.
type Initializer interface {
	Initialize(ctx context.Context, rows []catalog.Row) error
	Status() recommend.Status
}

// CatalogServiceConfig holds configuration for the catalog service.
type CatalogServiceConfig struct {
	// ReloadInterval is how often the catalog is reloaded. Zero disables
	// periodic reloads; manual reloads still work.
	ReloadInterval time.Duration

	// MinReloadGap is the minimum time between two non-startup reloads.
	MinReloadGap time.Duration

	// LoadTimeout bounds a single source load.
	// Default: 5 minutes
	LoadTimeout time.Duration
}

// CatalogService loads the catalog into the recommendation service at
// startup and keeps it fresh afterwards. A failed startup load makes Serve
// return an error so the supervisor retries with backoff. Later failures
// are logged and the previous snapshot keeps serving.
type CatalogService struct {
	source  catalog.Source
	target  Initializer
	config  CatalogServiceConfig
	limiter *rate.Limiter
	logger  zerolog.Logger
	name    string

	// reloadMu makes load+initialize one unit; TryLock turns overlap into
	// recommend.ErrReloadInProgress.
	reloadMu sync.Mutex
	trigger  chan struct{}
	loaded   atomic.Bool
}

// NewCatalogService creates a catalog service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(source catalog.Source, target Initializer, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Minute
	}

	limit := rate.Inf
	if cfg.MinReloadGap > 0 {
		limit = rate.Every(cfg.MinReloadGap)
	}

	return &CatalogService{
		source:  source,
		target:  target,
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("service", "catalog").Logger(),
		name:    "catalog-service",
		trigger: make(chan struct{}, 1),
	}
}

// Serve implements suture.Service.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.logger.Info().
		Str("source", s.source.Describe()).
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("catalog service starting")

	if !s.loaded.Load() {
		if _, err := s.reload(ctx, "startup", true); err != nil {
			return fmt.Errorf("initial catalog load: %w", err)
		}
		s.loaded.Store(true)
	}

	var tick <-chan time.Time
	if s.config.ReloadInterval > 0 {
		ticker := time.NewTicker(s.config.ReloadInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog service shutting down")
			return ctx.Err()

		case <-tick:
			s.background(ctx, "scheduled")

		case <-s.trigger:
			s.background(ctx, "triggered")
		}
	}
}

// Trigger asks Serve to reload soon. It never blocks; a trigger that is
// already pending absorbs this one.
func (s *CatalogService) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Reload loads the catalog and re-initializes the service synchronously.
// It fails with ErrReloadThrottled inside MinReloadGap and with
// recommend.ErrReloadInProgress while another reload runs.
func (s *CatalogService) Reload(ctx context.Context) (recommend.Status, error) {
	if !s.limiter.Allow() {
		metrics.RecordReload(metrics.ReloadSkipped, 0, 0, 0, 0)
		return s.target.Status(), ErrReloadThrottled
	}
	return s.reload(ctx, "manual", false)
}

// Loaded reports whether the startup load has completed.
func (s *CatalogService) Loaded() bool {
	return s.loaded.Load()
}

func (s *CatalogService) background(ctx context.Context, reason string) {
	if !s.limiter.Allow() {
		metrics.RecordReload(metrics.ReloadSkipped, 0, 0, 0, 0)
		s.logger.Debug().Str("reason", reason).Msg("catalog reload throttled")
		return
	}
	if _, err := s.reload(ctx, reason, false); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn().Err(err).Str("reason", reason).Msg("catalog reload failed, keeping current snapshot")
	}
}

// reload runs one load+initialize. The startup load waits for the lock;
// every other reload gives up immediately.
func (s *CatalogService) reload(ctx context.Context, reason string, wait bool) (recommend.Status, error) {
	if wait {
		s.reloadMu.Lock()
	} else if !s.reloadMu.TryLock() {
		metrics.RecordReload(metrics.ReloadSkipped, 0, 0, 0, 0)
		return s.target.Status(), recommend.ErrReloadInProgress
	}
	defer s.reloadMu.Unlock()

	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := s.logger.With().
		Str("reason", reason).
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Logger()
	start := time.Now()

	loadCtx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
	rows, err := s.source.Load(loadCtx)
	cancel()
	if err != nil {
		metrics.RecordReload(metrics.ReloadFailure, time.Since(start), 0, 0, 0)
		return s.target.Status(), fmt.Errorf("load %s: %w", s.source.Describe(), err)
	}

	// reloadMu already excludes other reloads, so a blocking Initialize
	// only waits for direct callers of the recommendation service.
	if err := s.target.Initialize(ctx, rows); err != nil {
		metrics.RecordReload(metrics.ReloadFailure, time.Since(start), 0, 0, 0)
		return s.target.Status(), fmt.Errorf("initialize: %w", err)
	}

	status := s.target.Status()
	metrics.RecordReload(metrics.ReloadSuccess, time.Since(start), status.Rows, status.Dim, status.VocabularySize)
	logger.Info().
		Int("rows", status.Rows).
		Int("dim", status.Dim).
		Int64("generation", status.Generation).
		Dur("duration", time.Since(start)).
		Msg("catalog reloaded")

	return status, nil
}

// String implements fmt.Stringer for suture logs.
func (s *CatalogService) String() string {
	return s.name
}

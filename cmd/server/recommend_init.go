// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylematch/internal/catalog"
	"github.com/tomtom215/stylematch/internal/config"
	"github.com/tomtom215/stylematch/internal/recommend"
	"github.com/tomtom215/stylematch/internal/supervisor/services"
)

// RecommendComponents holds the recommendation stack.
type RecommendComponents struct {
	Service *recommend.Service
	Catalog *services.CatalogService
}

// initRecommend builds the recommendation service and the catalog service
// that feeds it.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	recCfg := buildRecommendConfig(cfg)
	if err := recCfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend config: %w", err)
	}

	source, err := catalog.NewSource(&cfg.Catalog)
	if err != nil {
		return nil, err
	}
	guarded := catalog.NewBreakerSource(source, catalog.DefaultBreakerSettings())

	svc := recommend.New(recCfg)
	catalogSvc := services.NewCatalogService(guarded, svc, services.CatalogServiceConfig{
		ReloadInterval: cfg.Catalog.ReloadInterval,
		MinReloadGap:   cfg.Catalog.MinReloadGap,
	}, logger)

	logger.Info().
		Str("source", guarded.Describe()).
		Dur("reload_interval", cfg.Catalog.ReloadInterval).
		Int("default_top_n", recCfg.DefaultTopN).
		Bool("exclude_self", recCfg.ExcludeSelf).
		Bool("cache", recCfg.Cache.Enabled).
		Str("snapshot_dir", recCfg.Snapshot.Dir).
		Msg("Recommendation service configured")

	return &RecommendComponents{Service: svc, Catalog: catalogSvc}, nil
}

// buildRecommendConfig maps application config onto recommend.Config.
func buildRecommendConfig(cfg *config.Config) recommend.Config {
	recCfg := recommend.DefaultConfig()
	recCfg.DefaultTopN = cfg.Recommend.DefaultTopN
	recCfg.MaxTopN = cfg.Recommend.MaxTopN
	recCfg.ExcludeSelf = cfg.Recommend.ExcludeSelf
	recCfg.Workers = cfg.Recommend.Workers
	recCfg.Cache.Enabled = cfg.Recommend.CacheSize > 0
	if recCfg.Cache.Enabled {
		recCfg.Cache.Size = cfg.Recommend.CacheSize
		recCfg.Cache.TTL = cfg.Recommend.CacheTTL
	}
	recCfg.Snapshot.Dir = cfg.Catalog.SnapshotDir
	return recCfg
}

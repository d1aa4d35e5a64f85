// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/stylematch/internal/catalog"
)

// DefaultTopN is the result count used when a request asks for zero.
const DefaultTopN = 5

// Config contains all configuration for the recommendation service.
type Config struct {
	// Schema names the text and categorical fields. Zero means
	// catalog.DefaultSchema.
	Schema catalog.Schema `json:"-"`

	// DefaultTopN replaces a requested count of zero.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the requested count. Zero disables the cap.
	MaxTopN int `json:"max_top_n"`

	// ExcludeSelf drops catalog rows identical to the query (same text and
	// same categorical values). Off by default.
	ExcludeSelf bool `json:"exclude_self"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`

	// Workers bounds the goroutines used to encode the catalog.
	// Zero means GOMAXPROCS.
	Workers int `json:"workers"`

	// Snapshot contains encoder persistence parameters.
	Snapshot SnapshotConfig `json:"snapshot"`
}

// CacheConfig contains response cache parameters.
type CacheConfig struct {
	// Enabled turns the response cache on.
	Enabled bool `json:"enabled"`

	// Size is the maximum number of cached responses.
	Size int `json:"size"`

	// TTL is how long a cached response stays valid.
	TTL time.Duration `json:"ttl"`
}

// SnapshotConfig contains encoder persistence parameters.
type SnapshotConfig struct {
	// Dir is where encoder snapshots are written. Empty disables
	// persistence.
	Dir string `json:"dir"`

	// Name is the snapshot file prefix.
	Name string `json:"name"`

	// Keep is how many versions survive a prune.
	Keep int `json:"keep"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Schema:      catalog.DefaultSchema,
		DefaultTopN: DefaultTopN,
		MaxTopN:     100,
		Cache: CacheConfig{
			Enabled: true,
			Size:    1000,
			TTL:     10 * time.Minute,
		},
		Snapshot: SnapshotConfig{
			Name: "encoder",
			Keep: 3,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver matches how Config is passed around
func (c Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < 0 {
		return fmt.Errorf("max_top_n must be non-negative, got %d", c.MaxTopN)
	}
	if c.MaxTopN > 0 && c.DefaultTopN > c.MaxTopN {
		return fmt.Errorf("default_top_n (%d) exceeds max_top_n (%d)", c.DefaultTopN, c.MaxTopN)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Cache.Enabled {
		if c.Cache.Size < 1 {
			return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
	}
	if c.Snapshot.Dir != "" && c.Snapshot.Name == "" {
		return fmt.Errorf("snapshot.name is required when snapshot.dir is set")
	}
	if c.Snapshot.Keep < 0 {
		return fmt.Errorf("snapshot.keep must be non-negative, got %d", c.Snapshot.Keep)
	}
	return nil
}

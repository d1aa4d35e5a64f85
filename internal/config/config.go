// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_PORT: listen port (default: 4000)
//   - HTTP_TIMEOUT: read/write timeout (default: 30s)
//   - REQUEST_TIMEOUT: per-request handler timeout (default: 10s)
type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	Timeout        time.Duration `koanf:"timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// CatalogConfig describes where the product catalog comes from and how it
// is refreshed.
//
// Environment Variables:
//   - CATALOG_SOURCE: csv, duckdb or sqlite (default: csv)
//   - CATALOG_PATH: file to read (default: data/styles.csv)
//   - CATALOG_TABLE: table for duckdb/sqlite databases (default: styles)
//   - CATALOG_RELOAD_INTERVAL: periodic reload, 0 disables (default: 0)
//   - CATALOG_MIN_RELOAD_GAP: minimum time between reloads (default: 30s)
//   - CATALOG_SNAPSHOT_DIR: encoder snapshot directory, empty disables
type CatalogConfig struct {
	// Source selects the loader: csv, duckdb or sqlite.
	Source string `koanf:"source"`

	// Path is the CSV file or database file.
	Path string `koanf:"path"`

	// Table is the table read from a database file. Ignored for csv, and
	// for duckdb when Path ends in .csv.
	Table string `koanf:"table"`

	ReloadInterval time.Duration `koanf:"reload_interval"`
	MinReloadGap   time.Duration `koanf:"min_reload_gap"`

	SnapshotDir string `koanf:"snapshot_dir"`
}

// RecommendConfig holds recommendation service settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_TOP_N (default: 5)
//   - RECOMMEND_MAX_TOP_N (default: 100)
//   - RECOMMEND_EXCLUDE_SELF (default: false)
//   - RECOMMEND_CACHE_SIZE, 0 disables the response cache (default: 1000)
//   - RECOMMEND_CACHE_TTL (default: 10m)
//   - RECOMMEND_WORKERS, 0 means GOMAXPROCS (default: 0)
type RecommendConfig struct {
	DefaultTopN int           `koanf:"default_top_n"`
	MaxTopN     int           `koanf:"max_top_n"`
	ExcludeSelf bool          `koanf:"exclude_self"`
	CacheSize   int           `koanf:"cache_size"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
	Workers     int           `koanf:"workers"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing priority. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

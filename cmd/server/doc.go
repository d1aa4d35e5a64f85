// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package main is the entry point for the Stylematch server.

Stylematch loads a product catalog, encodes every product as a TF-IDF vector
over its display name joined with one-hot categorical columns, and serves
cosine-similarity recommendations over HTTP.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("stylematch")
	├── CatalogSupervisor ("catalog-layer")
	│   └── CatalogService (startup load, periodic and on-demand reloads)
	├── MessagingSupervisor ("messaging-layer")
	│   └── ChatHubService (storefront chat broadcasts)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Environment: optional .env file (godotenv)
 2. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 3. Logging: zerolog with JSON/console output modes
 4. Catalog source: csv, duckdb or sqlite behind a circuit breaker
 5. Recommendation service: encoder, snapshot store and response cache
 6. Chat hub
 7. Supervisor tree: catalog service, chat hub and HTTP server

The HTTP server accepts traffic before the catalog is loaded. Until the
first load succeeds, /health/ready and the recommend endpoints answer 503.

# Configuration

Priority: Environment variables > Config file > .env file > Defaults

	HTTP_PORT=4000                 # listen port
	CATALOG_SOURCE=csv             # csv, duckdb or sqlite
	CATALOG_PATH=data/styles.csv   # catalog file
	CATALOG_RELOAD_INTERVAL=0      # periodic reload, 0 disables
	CATALOG_SNAPSHOT_DIR=          # encoder snapshots, empty disables
	RECOMMEND_DEFAULT_TOP_N=5
	LOG_LEVEL=info
	LOG_FORMAT=json

# Endpoints

	POST /recommend               legacy form/JSON endpoint, bare array reply
	POST /api/v1/recommend        JSON envelope with scores
	GET  /api/v1/catalog          catalog and encoder status
	POST /api/v1/catalog/reload   reload the catalog now
	POST /chat                    legacy chat post, plain OK reply
	POST /api/v1/chat             broadcast a chat message
	GET  /ws                      chat WebSocket
	GET  /health/live             liveness
	GET  /health/ready            readiness
	GET  /metrics                 Prometheus metrics

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests, then the supervisor reports any service that failed
to stop in time.
*/
package main

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package config provides layered configuration for the stylematch server and
CLI.

Configuration is loaded with Koanf v2 in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/stylematch/config.yaml or /etc/stylematch/config.yml
 3. Environment variables, mapped explicitly (see envTransformFunc)

Example config.yaml:

	server:
	  port: 4000
	catalog:
	  source: duckdb
	  path: /data/styles.csv
	  reload_interval: 1h
	recommend:
	  default_top_n: 5
	  exclude_self: false
	logging:
	  level: debug
	  format: console

Validate is run by Load and rejects out-of-range values with an error naming
the environment variable to fix.
*/
package config

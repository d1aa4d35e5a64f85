// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package logging provides structured logging for stylematch on top of zerolog.

A package-level logger is configured once at startup from config.LoggingConfig:

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

and used through level helpers:

	logging.Info().Int("rows", n).Str("fingerprint", fp).Msg("Encoder fitted")
	logging.Error().Err(err).Msg("Catalog reload failed")

Request-scoped logging goes through Ctx, which attaches the request_id and
correlation_id stored in the context by the HTTP middleware or the catalog
reload job:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("Invalid recommend request")

SlogHandler bridges log/slog consumers (the suture supervisor tree via
sutureslog) onto the same zerolog output.

Output is JSON by default; Format "console" selects zerolog's human-readable
writer for local use and the CLI.
*/
package logging

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tomtom215/stylematch/internal/logging"
)

// SQLiteSource reads the catalog from a table in a SQLite database file.
type SQLiteSource struct {
	path   string
	table  string
	schema Schema
}

// NewSQLiteSource creates a SQLite backed source.
func NewSQLiteSource(path, table string, schema Schema) *SQLiteSource {
	return &SQLiteSource{path: path, table: table, schema: schema}
}

// Describe implements Source.
func (s *SQLiteSource) Describe() string {
	return "sqlite:" + s.path + "#" + s.table
}

// Load implements Source.
func (s *SQLiteSource) Load(ctx context.Context) ([]Row, error) {
	table, err := quoteTable(s.table)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only connection
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	ok, err := hasColumn(rows, s.schema.TextField)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTextColumn, s.schema.TextField)
	}

	records, err := scanRecords(ctx, rows)
	if err != nil {
		return nil, err
	}

	out, stats := Clean(s.schema, records)
	logging.Info().
		Str("component", "catalog").
		Str("source", s.Describe()).
		Int("read", stats.Read).
		Int("dropped_no_text", stats.DroppedNoText).
		Int("rows", stats.Kept).
		Msg("Catalog loaded")

	return out, nil
}

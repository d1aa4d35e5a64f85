// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/stylematch/internal/logging"
)

// DuckDBSource reads the catalog through DuckDB.
//
// For a .csv path the file is scanned with read_csv in an in-memory database,
// with ignore_errors so malformed lines are skipped like the CSV source does.
// Any other path is opened read-only as a DuckDB database and the configured
// table is read.
type DuckDBSource struct {
	path   string
	table  string
	schema Schema
}

// NewDuckDBSource creates a DuckDB backed source.
func NewDuckDBSource(path, table string, schema Schema) *DuckDBSource {
	return &DuckDBSource{path: path, table: table, schema: schema}
}

// Describe implements Source.
func (s *DuckDBSource) Describe() string {
	if s.isCSV() {
		return "duckdb:read_csv:" + s.path
	}
	return "duckdb:" + s.path + "#" + s.table
}

func (s *DuckDBSource) isCSV() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".csv")
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) ([]Row, error) {
	dsn := ""
	if !s.isCSV() {
		dsn = s.path + "?access_mode=read_only"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only connection

	query, args, err := s.selectQuery()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
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

// selectQuery builds the scan statement. CSV columns are read as VARCHAR so
// numeric looking values (year, id) are not reformatted.
func (s *DuckDBSource) selectQuery() (string, []any, error) {
	if s.isCSV() {
		return "SELECT * FROM read_csv(?, header = true, all_varchar = true, ignore_errors = true)",
			[]any{s.path}, nil
	}

	table, err := quoteTable(s.table)
	if err != nil {
		return "", nil, err
	}
	return "SELECT * FROM " + table, nil, nil
}

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/stylematch/internal/config"
)

// Source kinds accepted by NewSource.
const (
	SourceCSV    = "csv"
	SourceDuckDB = "duckdb"
	SourceSQLite = "sqlite"
)

var (
	// ErrUnknownSource is returned by NewSource for an unsupported source kind.
	ErrUnknownSource = errors.New("unknown catalog source")

	// ErrNoHeader is returned when a tabular source has no header row.
	ErrNoHeader = errors.New("catalog has no header row")

	// ErrMissingTextColumn is returned when the source lacks the text column.
	ErrMissingTextColumn = errors.New("catalog is missing the text column")
)

// Source loads a cleaned catalog.
type Source interface {
	// Load returns the cleaned rows, reindexed from zero.
	Load(ctx context.Context) ([]Row, error)

	// Describe returns a short human readable identifier for logs.
	Describe() string
}

// LoadStats describes what cleaning did to a raw catalog.
type LoadStats struct {
	Read          int // records handed to Clean
	Skipped       int // malformed source lines
	DroppedNoText int // records whose text field was empty
	Kept          int
}

// NewSource builds the Source selected by cfg.Source.
func NewSource(cfg *config.CatalogConfig) (Source, error) {
	schema := DefaultSchema
	switch strings.ToLower(cfg.Source) {
	case "", SourceCSV:
		return NewCSVSource(cfg.Path, schema), nil
	case SourceDuckDB:
		return NewDuckDBSource(cfg.Path, cfg.Table, schema), nil
	case SourceSQLite:
		return NewSQLiteSource(cfg.Path, cfg.Table, schema), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

// Clean turns raw column maps into rows. Records with an empty text field
// are dropped and the rest are indexed densely in input order.
func Clean(schema Schema, records []map[string]string) ([]Row, LoadStats) {
	stats := LoadStats{Read: len(records)}
	rows := make([]Row, 0, len(records))

	for _, rec := range records {
		text := strings.TrimSpace(rec[schema.TextField])
		if text == "" {
			stats.DroppedNoText++
			continue
		}

		row := Row{
			Index:      len(rows),
			Text:       text,
			Categories: make(map[string]string, len(schema.CategoricalFields)),
		}
		for _, f := range schema.CategoricalFields {
			if v := strings.TrimSpace(rec[f]); v != "" {
				row.Categories[f] = v
			}
		}
		for k, v := range rec {
			if schema.IsKnown(k) {
				continue
			}
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}
			row.Extra[k] = v
		}
		rows = append(rows, row)
	}

	stats.Kept = len(rows)
	return rows, stats
}

// Fingerprint hashes the schema fields of every row in order. Two catalogs
// with the same fingerprint fit to identical encoders.
func Fingerprint(schema Schema, rows []Row) string {
	h := sha256.New()
	writePart(h, schema.TextField)
	for _, f := range schema.CategoricalFields {
		writePart(h, f)
	}
	for _, r := range rows {
		h.Write([]byte{0x1e})
		writePart(h, r.Text)
		for _, f := range schema.CategoricalFields {
			writePart(h, r.Category(f))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writePart writes s length-prefixed so no value can spill into the next.
func writePart(w io.Writer, s string) {
	_, _ = io.WriteString(w, strconv.Itoa(len(s)))
	_, _ = io.WriteString(w, ":")
	_, _ = io.WriteString(w, s)
}

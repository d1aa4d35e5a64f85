// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/stylematch/internal/logging"
)

// CSVSource reads a catalog from a CSV file with a header row.
//
// Lines with the wrong number of fields or broken quoting are skipped, not
// fatal. Only a missing file, an empty file, or a header without the text
// column fails the load.
type CSVSource struct {
	path   string
	schema Schema
}

// NewCSVSource creates a CSV backed source.
func NewCSVSource(path string, schema Schema) *CSVSource {
	return &CSVSource{path: path, schema: schema}
}

// Describe implements Source.
func (s *CSVSource) Describe() string {
	return "csv:" + s.path
}

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", s.path, err)
	}
	defer f.Close()

	rows, stats, err := ReadCSV(ctx, f, s.schema)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}

	logging.Info().
		Str("component", "catalog").
		Str("source", s.Describe()).
		Int("read", stats.Read).
		Int("skipped", stats.Skipped).
		Int("dropped_no_text", stats.DroppedNoText).
		Int("rows", stats.Kept).
		Msg("Catalog loaded")

	return rows, nil
}

// ReadCSV parses CSV from r and cleans it against schema.
func ReadCSV(ctx context.Context, r io.Reader, schema Schema) ([]Row, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	// Field count is checked manually so a short line skips instead of aborting.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, LoadStats{}, ErrNoHeader
		}
		return nil, LoadStats{}, fmt.Errorf("header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if !containsField(header, schema.TextField) {
		return nil, LoadStats{}, fmt.Errorf("%w: %s", ErrMissingTextColumn, schema.TextField)
	}

	var (
		records []map[string]string
		skipped int
	)
	for line := 0; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, LoadStats{}, err
			}
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, LoadStats{}, err
		}
		if len(fields) != len(header) {
			skipped++
			continue
		}

		rec := make(map[string]string, len(header))
		for i, name := range header {
			rec[name] = fields[i]
		}
		records = append(records, rec)
	}

	rows, stats := Clean(schema, records)
	stats.Skipped = skipped
	return rows, stats, nil
}

func containsField(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

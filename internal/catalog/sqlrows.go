// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidTable is returned when a configured table name is not a plain
// SQL identifier.
var ErrInvalidTable = errors.New("invalid catalog table name")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// quoteTable validates name and returns it double quoted.
func quoteTable(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return `"` + name + `"`, nil
}

// scanRecords reads every row of a result set into column maps. NULL becomes
// the empty string, which Clean treats as missing.
func scanRecords(ctx context.Context, rows *sql.Rows) ([]map[string]string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	var records []map[string]string
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec := make(map[string]string, len(cols))
		for i, c := range cols {
			if values[i].Valid {
				rec[c] = values[i].String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return records, nil
}

// hasColumn reports whether the result set exposes the named column.
func hasColumn(rows *sql.Rows, name string) (bool, error) {
	cols, err := rows.Columns()
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

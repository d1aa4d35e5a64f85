// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

var (
	// ErrEmptyRecord is returned when a record document has no content.
	ErrEmptyRecord = errors.New("record is empty")

	// ErrInvalidRecord is returned for anything but a flat JSON object.
	ErrInvalidRecord = errors.New("invalid record")
)

// DecodeRecord reads one JSON object of column values. Strings, numbers
// and booleans are rendered as text; null means the column is absent.
// Nested values are rejected.
func DecodeRecord(r io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRecord
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidRecord)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidRecord)
	}

	rec := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			rec[k] = val
		case json.Number:
			rec[k] = val.String()
		case bool:
			rec[k] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("%w: field %q must be a scalar", ErrInvalidRecord, k)
		}
	}
	return rec, nil
}

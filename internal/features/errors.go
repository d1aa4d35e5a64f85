// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import "errors"

var (
	// ErrEmptyCatalog is returned by Fit when the catalog has no rows.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrMissingRequiredField is returned when the schema or a row has no
	// text field.
	ErrMissingRequiredField = errors.New("missing required text field")

	// ErrNotFitted is returned when transforming with an encoder that was
	// never fitted.
	ErrNotFitted = errors.New("encoder is not fitted")
)

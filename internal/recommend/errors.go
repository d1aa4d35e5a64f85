// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package recommend

import (
	"errors"

	"github.com/tomtom215/stylematch/internal/features"
	"github.com/tomtom215/stylematch/internal/ranking"
)

var (
	// ErrInvalidQuery is returned when a query lacks the text field.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrServiceNotInitialized is returned by Recommend before the first
	// successful Initialize.
	ErrServiceNotInitialized = errors.New("recommendation service not initialized")

	// ErrReloadInProgress is returned by TryInitialize while another
	// initialize holds the lock.
	ErrReloadInProgress = errors.New("catalog reload already in progress")
)

// Errors from the encoder and ranker, re-exported so callers only need
// this package.
var (
	ErrEmptyCatalog         = features.ErrEmptyCatalog
	ErrMissingRequiredField = features.ErrMissingRequiredField
	ErrNotFitted            = features.ErrNotFitted
	ErrInvalidTopN          = ranking.ErrInvalidTopN
)

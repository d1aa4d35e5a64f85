// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/recommend"
	"github.com/tomtom215/stylematch/internal/supervisor/services"
	ws "github.com/tomtom215/stylematch/internal/websocket"
)

// errorStatus maps a service error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrInvalidQuery),
		errors.Is(err, recommend.ErrInvalidTopN),
		errors.Is(err, recommend.ErrMissingRequiredField),
		errors.Is(err, ws.ErrEmptyMessage),
		errors.Is(err, ws.ErrMessageTooLong),
		errors.Is(err, ws.ErrInvalidMessage):
		return http.StatusBadRequest, ErrCodeValidation
	case errors.Is(err, recommend.ErrServiceNotInitialized),
		errors.Is(err, ws.ErrHubBusy):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	case errors.Is(err, recommend.ErrReloadInProgress):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, services.ErrReloadThrottled):
		return http.StatusTooManyRequests, ErrCodeTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// errorMessage is the client-facing text. Internal errors are not echoed.
func errorMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "An internal error occurred"
	}
	return err.Error()
}

// respondServiceError logs err and writes the mapped envelope.
func respondServiceError(rw *ResponseWriter, err error) {
	status, code := errorStatus(err)
	event := logWarnOrError(rw.r, status)
	event.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("Request failed")
	rw.Error(status, code, errorMessage(status, err))
}

func logWarnOrError(r *http.Request, status int) *zerolog.Event {
	logger := logging.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		return logger.Error().Str("component", "api")
	}
	return logger.Warn().Str("component", "api")
}

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

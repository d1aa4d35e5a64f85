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
	"testing"

	"github.com/tomtom215/stylematch/internal/recommend"
	"github.com/tomtom215/stylematch/internal/supervisor/services"
	ws "github.com/tomtom215/stylematch/internal/websocket"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{recommend.ErrInvalidQuery, http.StatusBadRequest, ErrCodeValidation},
		{fmt.Errorf("rank: %w", recommend.ErrInvalidTopN), http.StatusBadRequest, ErrCodeValidation},
		{recommend.ErrServiceNotInitialized, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{recommend.ErrReloadInProgress, http.StatusConflict, ErrCodeConflict},
		{services.ErrReloadThrottled, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout},
		{ws.ErrEmptyMessage, http.StatusBadRequest, ErrCodeValidation},
		{ws.ErrMessageTooLong, http.StatusBadRequest, ErrCodeValidation},
		{ws.ErrHubBusy, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := errorStatus(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("errorStatus() = %d %s, want %d %s", status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"line\nforged", `line\x0aforged`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"ünïcode", "ünïcode"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

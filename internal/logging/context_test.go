// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package logging

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateIDs(t *testing.T) {
	if _, err := uuid.Parse(GenerateRequestID()); err != nil {
		t.Errorf("GenerateRequestID() is not a UUID: %v", err)
	}

	a := CorrelationIDFromContext(ContextWithNewCorrelationID(context.Background()))
	b := CorrelationIDFromContext(ContextWithNewCorrelationID(context.Background()))
	if len(a) != 8 {
		t.Errorf("correlation id = %q, want 8 chars", a)
	}
	if a == b {
		t.Error("correlation ids should differ")
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if CorrelationIDFromContext(ctx) != "" || RequestIDFromContext(ctx) != "" {
		t.Fatal("empty context should carry no ids")
	}

	ctx = context.WithValue(ctx, correlationIDKey, "reload-1")
	ctx = ContextWithRequestID(ctx, "req-42")
	if got := CorrelationIDFromContext(ctx); got != "reload-1" {
		t.Errorf("CorrelationIDFromContext() = %q", got)
	}
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}
}

func TestCtx(t *testing.T) {
	tests := []struct {
		name       string
		ctx        func() context.Context
		wantReq    string
		wantCorrID bool
	}{
		{
			name:    "request id",
			ctx:     func() context.Context { return ContextWithRequestID(context.Background(), "req-7") },
			wantReq: "req-7",
		},
		{
			name: "both ids",
			ctx: func() context.Context {
				return ContextWithNewCorrelationID(ContextWithRequestID(context.Background(), "req-8"))
			},
			wantReq:    "req-8",
			wantCorrID: true,
		},
		{
			name: "no ids",
			ctx:  context.Background,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureGlobal(t, "info")

			Ctx(tt.ctx()).Info().Msg("recommend")

			m := decodeLine(t, strings.TrimSpace(buf.String()))
			if got, _ := m["request_id"].(string); got != tt.wantReq {
				t.Errorf("request_id = %q, want %q", got, tt.wantReq)
			}
			if _, ok := m["correlation_id"]; ok != tt.wantCorrID {
				t.Errorf("correlation_id present = %v, want %v", ok, tt.wantCorrID)
			}
		})
	}
}

// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stylematch/internal/catalog"
	"github.com/tomtom215/stylematch/internal/recommend"
)

func fashionRows() []catalog.Row {
	row := func(i int, text, gender, article string) catalog.Row {
		return catalog.Row{
			Index: i,
			Text:  text,
			Categories: map[string]string{
				catalog.FieldGender:      gender,
				catalog.FieldArticleType: article,
			},
			Extra: map[string]string{"id": string(rune('a' + i))},
		}
	}
	return []catalog.Row{
		row(0, "Turtle Check Men Navy Blue Shirt", "Men", "Shirts"),
		row(1, "Peter England Men Party Blue Jeans", "Men", "Jeans"),
		row(2, "Titan Women Silver Watch", "Women", "Watches"),
		row(3, "Navy Blue Check Shirt", "Men", "Shirts"),
	}
}

// newTestService returns an initialized service, or an empty one when
// rows is nil.
func newTestService(t *testing.T, rows []catalog.Row) *recommend.Service {
	t.Helper()
	svc := recommend.New(recommend.DefaultConfig())
	if rows != nil {
		if err := svc.Initialize(context.Background(), rows); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
	}
	return svc
}

type fakeReloader struct {
	status recommend.Status
	err    error
	calls  int
}

func (f *fakeReloader) Reload(context.Context) (recommend.Status, error) {
	f.calls++
	return f.status, f.err
}

func newTestHandler(t *testing.T, svc Recommender, reloader CatalogReloader) http.Handler {
	t.Helper()
	cfg := RouterConfig{Middleware: DefaultChiMiddlewareConfig()}
	cfg.Middleware.RateLimitDisabled = true
	return NewRouter(svc, reloader, cfg).Handler()
}

func do(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// envelope decodes an APIResponse, keeping data raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	h := newTestHandler(t, newTestService(t, fashionRows()), nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"unknown path", http.MethodGet, "/api/v1/nope", http.StatusNotFound, ErrCodeNotFound},
		{"wrong method", http.MethodGet, "/api/v1/recommend", http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
		{"reload not registered", http.MethodPost, "/api/v1/catalog/reload", http.StatusNotFound, ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, "", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	h := newTestHandler(t, newTestService(t, fashionRows()), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("X-Request-ID", "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "trace-123" {
		t.Errorf("X-Request-ID = %q, want trace-123", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if env := decodeEnvelope(t, rec); env.Meta == nil || env.Meta.RequestID != "trace-123" {
		t.Errorf("meta = %+v, want request id echoed", env.Meta)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := RouterConfig{Middleware: DefaultChiMiddlewareConfig()}
	cfg.Middleware.RateLimitRequests = 2
	h := NewRouter(newTestService(t, fashionRows()), nil, cfg).Handler()

	var last *httptest.ResponseRecorder
	for range 3 {
		last = do(t, h, http.MethodGet, "/api/v1/catalog", "", "")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if env := decodeEnvelope(t, last); env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	// health checks are outside the limited group
	if rec := do(t, h, http.MethodGet, "/health/live", "", ""); rec.Code != http.StatusOK {
		t.Errorf("/health/live status = %d, want 200", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestHandler(t, newTestService(t, fashionRows()), nil)
	do(t, h, http.MethodPost, "/api/v1/recommend", "application/json", `{"productDisplayName":"navy shirt"}`)

	rec := do(t, h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"stylematch_recommend_requests_total", "stylematch_api_requests_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("/metrics missing %s", name)
		}
	}
}

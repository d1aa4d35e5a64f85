// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

type stubSource struct {
	rows  []Row
	err   error
	calls int
}

func (s *stubSource) Load(context.Context) ([]Row, error) {
	s.calls++
	return s.rows, s.err
}

func (s *stubSource) Describe() string { return "stub" }

func TestBreakerSource_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &stubSource{err: errors.New("disk unavailable")}
	src := NewBreakerSource(inner, BreakerSettings{ConsecutiveFailures: 2, Timeout: time.Hour})

	for i := 0; i < 2; i++ {
		if _, err := src.Load(context.Background()); err == nil {
			t.Fatalf("Load() #%d error = nil, want failure", i)
		}
	}
	if src.State() != gobreaker.StateOpen.String() {
		t.Fatalf("State() = %s, want open", src.State())
	}

	_, err := src.Load(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Load() while open error = %v, want ErrOpenState", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner.calls = %d, want 2 (open circuit must not reach the store)", inner.calls)
	}
}

func TestBreakerSource_PassThrough(t *testing.T) {
	inner := &stubSource{rows: []Row{{Index: 0, Text: "Blue Jeans"}}}
	src := NewBreakerSource(inner, BreakerSettings{})

	rows, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Text != "Blue Jeans" {
		t.Errorf("Load() = %+v", rows)
	}
	if src.Describe() != "stub" {
		t.Errorf("Describe() = %q, want inner description", src.Describe())
	}
}

func TestBreakerSource_CancellationDoesNotTrip(t *testing.T) {
	inner := &stubSource{err: context.Canceled}
	src := NewBreakerSource(inner, BreakerSettings{ConsecutiveFailures: 1, Timeout: time.Hour})

	for i := 0; i < 3; i++ {
		_, _ = src.Load(context.Background())
	}
	if src.State() != gobreaker.StateClosed.String() {
		t.Errorf("State() = %s, want closed after cancellations", src.State())
	}
}

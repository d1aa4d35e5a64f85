// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newSlogForTest(level zerolog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf).Level(level))), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	logger, buf := newSlogForTest(zerolog.DebugLevel)

	logger.Warn("service restarted",
		"service", "catalog-reloader",
		"restarts", 2,
		"backoff", 15*time.Second,
		"healthy", false,
		"err", errors.New("load failed"),
	)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["level"] != "warn" || m["message"] != "service restarted" {
		t.Errorf("entry = %v", m)
	}
	if m["service"] != "catalog-reloader" || m["restarts"] != float64(2) || m["healthy"] != false {
		t.Errorf("attrs = %v", m)
	}
	if m["err"] != "load failed" {
		t.Errorf("err = %v, want the error text", m["err"])
	}
}

func TestSlogHandler_GroupsNestOutermostFirst(t *testing.T) {
	logger, buf := newSlogForTest(zerolog.InfoLevel)

	logger.WithGroup("supervisor").WithGroup("event").Info("terminated", "service", "http")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["supervisor.event.service"] != "http" {
		t.Errorf("entry = %v, want key supervisor.event.service", m)
	}
}

func TestSlogHandler_GroupAttr(t *testing.T) {
	logger, buf := newSlogForTest(zerolog.InfoLevel)

	logger.WithGroup("reload").Info("done", slog.Group("encoder", slog.Int("dim", 12), slog.String("fp", "abc")))

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["reload.encoder.dim"] != float64(12) || m["reload.encoder.fp"] != "abc" {
		t.Errorf("entry = %v", m)
	}
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	logger, buf := newSlogForTest(zerolog.InfoLevel)

	base := logger.With("component", "supervisor")
	base.Info("first")
	base.With("tree", "root").Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	first := decodeLine(t, lines[0])
	second := decodeLine(t, lines[1])
	if first["component"] != "supervisor" {
		t.Errorf("first = %v", first)
	}
	if _, ok := first["tree"]; ok {
		t.Error("child attrs leaked into parent handler")
	}
	if second["component"] != "supervisor" || second["tree"] != "root" {
		t.Errorf("second = %v", second)
	}
}

func TestSlogHandler_EmptyGroupAndAttrsReturnSame(t *testing.T) {
	h := NewSlogHandlerWithLogger(zerolog.Nop())
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("WithGroup(\"\") should return the receiver")
	}
	if h.WithAttrs(nil) != slog.Handler(h) {
		t.Error("WithAttrs(nil) should return the receiver")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLoggerWithLevel(t *testing.T) {
	buf := captureGlobal(t, "debug")

	logger := NewSlogLoggerWithLevel("error")
	logger.Warn("suppressed")
	logger.Error("surfaced")

	out := buf.String()
	if strings.Contains(out, "suppressed") || !strings.Contains(out, "surfaced") {
		t.Errorf("output = %s", out)
	}

	NewSlogLogger().Info("global")
	if !strings.Contains(buf.String(), "global") {
		t.Error("NewSlogLogger() should write to the global logger")
	}
}

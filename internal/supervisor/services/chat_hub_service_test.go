// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/stylematch/internal/websocket"
)

// fakeHub fails its first failures runs, then runs until canceled.
type fakeHub struct {
	failures int32
	runs     atomic.Int32
}

func (f *fakeHub) RunWithContext(ctx context.Context) error {
	if n := f.runs.Add(1); n <= f.failures {
		return errors.New("hub crashed")
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestChatHubService_Interface(t *testing.T) {
	var _ suture.Service = (*ChatHubService)(nil)
	var _ ContextHub = (*websocket.Hub)(nil)
}

func TestChatHubService_Serve(t *testing.T) {
	tests := []struct {
		name    string
		hub     *fakeHub
		cancel  bool
		wantErr string
	}{
		{"returns context error on cancel", &fakeHub{}, true, context.Canceled.Error()},
		{"propagates hub errors", &fakeHub{failures: 1}, false, "hub crashed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewChatHubService(tt.hub)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()
			if tt.cancel {
				cancel()
			}

			select {
			case err := <-errCh:
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("Serve() error = %v, want %q", err, tt.wantErr)
				}
			case <-time.After(time.Second):
				t.Fatal("Serve did not return")
			}
		})
	}
}

func TestChatHubService_String(t *testing.T) {
	if got := NewChatHubService(&fakeHub{}).String(); got != "chat-hub" {
		t.Errorf("String() = %q, want chat-hub", got)
	}
}

func TestChatHubService_RestartedBySupervisor(t *testing.T) {
	hub := &fakeHub{failures: 2}
	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 5,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          100 * time.Millisecond,
	})
	sup.Add(NewChatHubService(hub))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for hub.runs.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("runs = %d, want 3", hub.runs.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	<-errCh
}

func TestChatHubService_RealHub(t *testing.T) {
	hub := websocket.NewHub()
	svc := NewChatHubService(hub)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	if err := hub.BroadcastChat("hello"); err != nil {
		t.Fatal(err)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

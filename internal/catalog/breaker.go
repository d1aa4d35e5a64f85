// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/metrics"
)

// BreakerSettings tunes the circuit breaker around a catalog source.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit after this many failed loads.
	// Default: 3
	ConsecutiveFailures uint32

	// Timeout is how long the circuit stays open before a trial load.
	// Default: 5 minutes
	Timeout time.Duration
}

// DefaultBreakerSettings returns the settings used by the server.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 3,
		Timeout:             5 * time.Minute,
	}
}

// BreakerSource wraps a Source with a circuit breaker. While the circuit is
// open Load fails fast with gobreaker.ErrOpenState.
type BreakerSource struct {
	inner Source
	cb    *gobreaker.CircuitBreaker[[]Row]
	name  string
}

// NewBreakerSource wraps inner.
func NewBreakerSource(inner Source, settings BreakerSettings) *BreakerSource {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = DefaultBreakerSettings().ConsecutiveFailures
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultBreakerSettings().Timeout
	}

	name := "catalog-source"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	threshold := settings.ConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker[[]Row](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Cancellation says nothing about the health of the store.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("component", "catalog").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerSource{inner: inner, cb: cb, name: name}
}

// Describe implements Source.
func (b *BreakerSource) Describe() string {
	return b.inner.Describe()
}

// Load implements Source.
func (b *BreakerSource) Load(ctx context.Context) ([]Row, error) {
	return b.cb.Execute(func() ([]Row, error) {
		return b.inner.Load(ctx)
	})
}

// State returns the breaker state name.
func (b *BreakerSource) State() string {
	return b.cb.State().String()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

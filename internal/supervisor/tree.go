// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// TreeConfig holds supervision parameters. Zero values fall back to
// suture's documented defaults.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay, in seconds.
	FailureDecay float64

	// FailureBackoff is how long to wait once the threshold is exceeded.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds graceful shutdown of each service.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's built-in defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Tree wraps the root supervisor.
type Tree struct {
	root   *suture.Supervisor
	logger zerolog.Logger
}

// NewTree builds the root supervisor with supervision events routed to
// the structured logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTree(cfg TreeConfig, logger zerolog.Logger) *Tree {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5.0
	}
	if cfg.FailureDecay == 0 {
		cfg.FailureDecay = 30.0
	}
	if cfg.FailureBackoff == 0 {
		cfg.FailureBackoff = 15 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	treeLogger := logger.With().Str("component", "supervisor").Logger()

	root := suture.New("cartwise", suture.Spec{
		EventHook:        eventHook(treeLogger),
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		Timeout:          cfg.ShutdownTimeout,
	})

	return &Tree{root: root, logger: treeLogger}
}

// Add registers a service with the root supervisor.
func (t *Tree) Add(svc suture.Service) suture.ServiceToken {
	return t.root.Add(svc)
}

// Serve runs the tree until the context is cancelled or the tree fails
// terminally.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// eventHook translates suture supervision events into zerolog events.
// Service failures log at warn; the rest is lifecycle noise at debug.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func eventHook(logger zerolog.Logger) suture.EventHook {
	return func(event suture.Event) {
		var evt *zerolog.Event
		switch event.Type() {
		case suture.EventTypeServicePanic, suture.EventTypeServiceTerminate:
			evt = logger.Warn()
		case suture.EventTypeBackoff, suture.EventTypeResume:
			evt = logger.Info()
		default:
			evt = logger.Debug()
		}
		for key, value := range event.Map() {
			evt = evt.Interface(key, value)
		}
		evt.Msg(event.String())
	}
}

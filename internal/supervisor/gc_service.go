// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package supervisor

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/cartwise/cartwise/internal/store"
)

// GCService periodically runs the store's value-log garbage collection.
type GCService struct {
	store    *store.Store
	interval time.Duration
	logger   zerolog.Logger
}

// NewGCService builds the garbage collection service. A non-positive
// interval falls back to ten minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGCService(st *store.Store, interval time.Duration, logger zerolog.Logger) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{
		store:    st,
		interval: interval,
		logger:   logger.With().Str("service", "store-gc").Logger(),
	}
}

// Serve runs garbage collection on the configured interval until the
// context is cancelled. ErrNoRewrite just means there was nothing worth
// collecting.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			err := s.store.RunValueLogGC()
			switch {
			case err == nil:
				s.logger.Debug().Dur("duration", time.Since(start)).Msg("value log gc reclaimed space")
			case errors.Is(err, badger.ErrNoRewrite):
				s.logger.Trace().Msg("value log gc found nothing to rewrite")
			default:
				s.logger.Warn().Err(err).Msg("value log gc failed")
			}
		}
	}
}

// String names the service in supervision events.
func (s *GCService) String() string {
	return "store-gc"
}

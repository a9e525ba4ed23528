// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPService runs the API's HTTP server as a supervised service. The
// http.Server is built per Serve call so a restart after a crash gets a
// fresh listener.
type HTTPService struct {
	addr            string
	handler         http.Handler
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// HTTPServiceConfig configures the supervised HTTP server.
type HTTPServiceConfig struct {
	Addr            string
	Handler         http.Handler
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// NewHTTPService builds the supervised HTTP server service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPService(cfg HTTPServiceConfig, logger zerolog.Logger) *HTTPService {
	return &HTTPService{
		addr:            cfg.Addr,
		handler:         cfg.Handler,
		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger.With().Str("service", "http").Logger(),
	}
}

// Serve listens until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *HTTPService) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("http server shutdown")
			_ = server.Close()
		}
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return ctx.Err()
		}
		return err
	}
}

// String names the service in supervision events.
func (s *HTTPService) String() string {
	return "http-server"
}

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Command server runs the Cartwise API: a product catalog with
// content-based and collaborative recommendations over BadgerDB.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cartwise/cartwise/internal/api"
	"github.com/cartwise/cartwise/internal/config"
	"github.com/cartwise/cartwise/internal/logging"
	"github.com/cartwise/cartwise/internal/store"
	"github.com/cartwise/cartwise/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(store.Config{
		Path:     cfg.Storage.Path,
		InMemory: cfg.Storage.InMemory,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error().Err(err).Msg("store close")
		}
	}()

	if cfg.Storage.SeedPath != "" {
		if err := st.SeedFromFile(ctx, cfg.Storage.SeedPath); err != nil {
			return err
		}
	}

	handler, err := api.NewHandler(cfg, st, logger)
	if err != nil {
		return err
	}

	tree := supervisor.NewTree(supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)
	tree.Add(supervisor.NewHTTPService(supervisor.HTTPServiceConfig{
		Addr:            cfg.Server.Addr(),
		Handler:         handler.Router(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger))
	if !cfg.Storage.InMemory {
		tree.Add(supervisor.NewGCService(st, cfg.Storage.GCInterval, logger))
	}

	logger.Info().Str("addr", cfg.Server.Addr()).Msg("cartwise starting")
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info().Msg("cartwise stopped")
	return nil
}

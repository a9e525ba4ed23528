// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cartwise/cartwise/internal/auth"
	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/config"
	"github.com/cartwise/cartwise/internal/recommend"
	"github.com/cartwise/cartwise/internal/recommend/collaborative"
	"github.com/cartwise/cartwise/internal/store"
)

// Handler holds the dependencies the HTTP handlers share.
type Handler struct {
	store       *store.Store
	tokens      *auth.TokenManager
	authMW      *auth.Middleware
	recommender *recommend.Recommender
	content     *recommend.ContentRecommender
	predictor   *collaborative.Predictor
	cfg         *config.Config
	logger      zerolog.Logger
}

// NewHandler wires the handler set from configuration and the store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(cfg *config.Config, st *store.Store, logger zerolog.Logger) (*Handler, error) {
	tokens, err := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	engineCfg := &recommend.Config{
		CategoryWeight: cfg.Recommend.CategoryWeight,
		PriceWeight:    cfg.Recommend.PriceWeight,
		DefaultTopN:    cfg.Recommend.DefaultTopN,
		MaxConcurrent:  cfg.Recommend.MaxConcurrent,
	}
	recommender, err := recommend.NewRecommender(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("recommender: %w", err)
	}
	content, err := recommend.NewContentRecommender(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("content recommender: %w", err)
	}

	predictor, err := collaborative.NewPredictor(&collaborative.Config{
		K:               cfg.Recommend.Collaborative.K,
		DefaultTopN:     cfg.Recommend.DefaultTopN,
		HoldoutFraction: cfg.Recommend.Collaborative.HoldoutFraction,
		Seed:            cfg.Recommend.Collaborative.Seed,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("collaborative predictor: %w", err)
	}

	return &Handler{
		store:       st,
		tokens:      tokens,
		authMW:      auth.NewMiddleware(tokens),
		recommender: recommender,
		content:     content,
		predictor:   predictor,
		cfg:         cfg,
		logger:      logger.With().Str("component", "api").Logger(),
	}, nil
}

// snapshot loads the catalog as the flat product list the recommendation
// engine ranks over. Selling prices are resolved here so discounts are
// already applied when price similarity and ceilings are evaluated.
func (h *Handler) snapshot(ctx context.Context) ([]recommend.Product, error) {
	products, err := h.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make([]recommend.Product, len(products))
	for i := range products {
		snapshot[i] = toEngineProduct(&products[i])
	}
	return snapshot, nil
}

// toEngineProduct maps a catalog product onto the engine's input type.
func toEngineProduct(p *catalog.Product) recommend.Product {
	return recommend.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		SellingPrice: p.SellingPrice(),
		Location:     p.Location,
	}
}

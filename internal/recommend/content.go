// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cartwise/cartwise/internal/recommend/similarity"
)

// ContentRecommender ranks products by description similarity alone. It is
// the engine behind "more like this" listings, where no filters apply and
// category or price should not influence the ordering.
type ContentRecommender struct {
	config *Config
	logger zerolog.Logger
	stop   similarity.StopWordSet
}

// NewContentRecommender creates a ContentRecommender from the given
// configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContentRecommender(cfg *Config, logger zerolog.Logger) (*ContentRecommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &ContentRecommender{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend.content").Logger(),
		stop:   cfg.stopWordSet(),
	}, nil
}

// MoreLikeThis returns the topN products most similar to the target by
// text similarity over name and description. Ties keep snapshot order.
// topN of zero means the configured default.
//
// Returns *NotFoundError when the target is not in the snapshot.
func (r *ContentRecommender) MoreLikeThis(_ context.Context, snapshot []Product, productID string, topN int) ([]ScoredProduct, error) {
	if productID == "" {
		return nil, &InvalidInputError{Field: "product_id", Reason: "must not be empty"}
	}
	if topN < 0 {
		return nil, &InvalidInputError{Field: "top_n", Reason: "must not be negative"}
	}
	if topN == 0 {
		topN = r.config.DefaultTopN
	}

	target := -1
	docs := make([]string, len(snapshot))
	for i, p := range snapshot {
		docs[i] = p.Name + " " + p.Description
		if p.ID == productID {
			target = i
		}
	}
	if target < 0 {
		return nil, &NotFoundError{ProductID: productID}
	}

	ranked := rankAgainst(similarity.Text(docs, r.stop), target)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	products := make([]ScoredProduct, len(ranked))
	for i, c := range ranked {
		products[i] = ScoredProduct{
			Product: snapshot[c.index],
			Score:   round2(c.score),
		}
	}

	r.logger.Debug().
		Str("product_id", productID).
		Int("returned", len(products)).
		Msg("content similarity ranked")

	return products, nil
}

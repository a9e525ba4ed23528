// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/cartwise/cartwise/internal/recommend/similarity"
)

// Recommender blends text, category and price similarity into a single
// ranking and applies hard constraint filters afterwards. It is stateless
// apart from configuration and safe for concurrent use.
type Recommender struct {
	config *Config
	logger zerolog.Logger
	stop   similarity.StopWordSet

	// sem bounds concurrent matrix builds; nil when unbounded.
	sem *semaphore.Weighted
}

// NewRecommender creates a Recommender from the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(cfg *Config, logger zerolog.Logger) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Recommender{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		stop:   cfg.stopWordSet(),
	}
	if cfg.MaxConcurrent > 0 {
		r.sem = semaphore.NewWeighted(cfg.MaxConcurrent)
	}
	return r, nil
}

// Related ranks the snapshot by blended similarity to the query's target
// product and returns the top results that survive the query's filters.
//
// Scoring weights depend on which filters the query carries: category match
// contributes only under a category filter, price proximity only under a
// price ceiling, and text similarity absorbs the remainder. Filters
// themselves are hard constraints applied after ranking, in the order
// location, price ceiling, category; they remove candidates but never
// change scores.
//
// Returns *NotFoundError when the target is not in the snapshot and
// *InvalidInputError for malformed query parameters.
func (r *Recommender) Related(ctx context.Context, snapshot []Product, q Query) (*Result, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	if q.TopN == 0 {
		q.TopN = r.config.DefaultTopN
	}

	target := -1
	for i := range snapshot {
		if snapshot[i].ID == q.ProductID {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, &NotFoundError{ProductID: q.ProductID}
	}

	weights := r.config.weightsFor(q)

	fused, err := r.buildFused(ctx, snapshot, weights)
	if err != nil {
		return nil, err
	}

	ranked := rankAgainst(fused, target)
	filtered := applyFilters(snapshot, ranked, q)

	if len(filtered) > q.TopN {
		filtered = filtered[:q.TopN]
	}

	products := make([]ScoredProduct, len(filtered))
	for i, c := range filtered {
		products[i] = ScoredProduct{
			Product: snapshot[c.index],
			Score:   round2(c.score),
		}
	}

	r.logger.Debug().
		Str("product_id", q.ProductID).
		Int("candidates", len(snapshot)-1).
		Int("returned", len(products)).
		Float64("text_weight", weights.Text).
		Float64("category_weight", weights.Category).
		Float64("price_weight", weights.Price).
		Msg("related products ranked")

	return &Result{
		Target:     snapshot[target],
		Products:   products,
		Weights:    weights,
		Candidates: len(snapshot) - 1,
	}, nil
}

// buildFused computes the weighted blend of the similarity matrices the
// query actually needs. Matrices with zero weight are never built.
func (r *Recommender) buildFused(ctx context.Context, snapshot []Product, w Weights) (*similarity.Matrix, error) {
	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("acquire build slot: %w", err)
		}
		defer r.sem.Release(1)
	}

	docs := make([]string, len(snapshot))
	for i, p := range snapshot {
		docs[i] = p.Name + " " + p.Description
	}

	matrices := []*similarity.Matrix{similarity.Text(docs, r.stop)}
	factors := []float64{w.Text}

	if w.Category > 0 {
		categories := make([]string, len(snapshot))
		for i, p := range snapshot {
			categories[i] = p.CategoryID
		}
		matrices = append(matrices, similarity.Category(categories))
		factors = append(factors, w.Category)
	}

	if w.Price > 0 {
		prices := make([]float64, len(snapshot))
		for i, p := range snapshot {
			prices[i] = p.SellingPrice
		}
		matrices = append(matrices, similarity.Price(prices))
		factors = append(factors, w.Price)
	}

	return similarity.Fuse(matrices, factors), nil
}

// candidate pairs a snapshot index with its score against the target.
type candidate struct {
	index int
	score float64
}

// rankAgainst orders every snapshot index except the target by descending
// score. Ties keep snapshot order; the sort is stable and the input is
// already in snapshot order.
func rankAgainst(m *similarity.Matrix, target int) []candidate {
	ranked := make([]candidate, 0, m.Dim()-1)
	for i := 0; i < m.Dim(); i++ {
		if i == target {
			continue
		}
		ranked = append(ranked, candidate{index: i, score: m.At(target, i)})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})
	return ranked
}

// applyFilters removes candidates that violate the query's hard
// constraints. Filters apply in a fixed order: location, price ceiling,
// category. Order does not change the surviving set, but it is kept stable
// so logs and traces stay comparable.
func applyFilters(snapshot []Product, ranked []candidate, q Query) []candidate {
	out := ranked

	if q.Location != "" {
		out = keep(out, func(c candidate) bool {
			return snapshot[c.index].Location == q.Location
		})
	}
	if q.MaxPrice != nil {
		out = keep(out, func(c candidate) bool {
			return snapshot[c.index].SellingPrice <= *q.MaxPrice
		})
	}
	if q.CategoryID != "" {
		out = keep(out, func(c candidate) bool {
			return snapshot[c.index].CategoryID == q.CategoryID
		})
	}
	return out
}

// keep filters a ranked slice in order, preserving ranking.
func keep(in []candidate, pred func(candidate) bool) []candidate {
	out := in[:0:0]
	for _, c := range in {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// validateQuery rejects malformed query parameters before any work happens.
func validateQuery(q Query) error {
	if q.ProductID == "" {
		return &InvalidInputError{Field: "product_id", Reason: "must not be empty"}
	}
	if q.TopN < 0 {
		return &InvalidInputError{Field: "top_n", Reason: "must not be negative"}
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return &InvalidInputError{Field: "max_price", Reason: "must not be negative"}
	}
	return nil
}

// round2 rounds to two decimal places, the precision results are served at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package collaborative

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Rating is a single explicit user rating of a product.
type Rating struct {
	// UserID identifies the rating user.
	UserID string `json:"user_id"`

	// ProductID identifies the rated product.
	ProductID string `json:"product_id"`

	// Value is the star rating, 1 to 5.
	Value float64 `json:"value"`
}

// Prediction is a product with its predicted rating for a user.
type Prediction struct {
	// ProductID is the predicted product.
	ProductID string `json:"product_id"`

	// Score is the predicted rating, rounded to two decimal places.
	Score float64 `json:"score"`
}

// Config holds tuning parameters for the collaborative predictor.
type Config struct {
	// K is the number of nearest neighbors considered per prediction.
	K int `json:"k" koanf:"k"`

	// DefaultTopN is the result count when the caller does not specify one.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// HoldoutFraction is the share of ratings withheld for the RMSE
	// diagnostic. The diagnostic is skipped when zero.
	HoldoutFraction float64 `json:"holdout_fraction" koanf:"holdout_fraction"`

	// Seed drives the holdout split, keeping the diagnostic reproducible.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		K:               5,
		DefaultTopN:     3,
		HoldoutFraction: 0.2,
		Seed:            42,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.HoldoutFraction < 0 || c.HoldoutFraction >= 1 {
		return fmt.Errorf("holdout_fraction %f out of [0,1)", c.HoldoutFraction)
	}
	return nil
}

// Predictor ranks unrated products for a user by predicted rating.
// It is stateless apart from configuration and safe for concurrent use.
type Predictor struct {
	config *Config
	logger zerolog.Logger
}

// NewPredictor creates a Predictor from the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPredictor(cfg *Config, logger zerolog.Logger) (*Predictor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	clone := *cfg
	return &Predictor{
		config: &clone,
		logger: logger.With().Str("component", "recommend.collaborative").Logger(),
	}, nil
}

// TopN predicts ratings for every product the user has not rated and
// returns the topN highest, ordered by predicted rating descending with
// product ID as the tie-break. topN of zero means the configured default.
//
// An empty rating snapshot yields an empty result. A user absent from the
// snapshot is ranked by global product means.
func (p *Predictor) TopN(_ context.Context, ratings []Rating, userID string, topN int) ([]Prediction, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id must not be empty")
	}
	if topN < 0 {
		return nil, fmt.Errorf("top_n must not be negative, got %d", topN)
	}
	if topN == 0 {
		topN = p.config.DefaultTopN
	}

	for _, r := range ratings {
		if r.Value < 1 || r.Value > 5 {
			return nil, fmt.Errorf("rating %f for product %q out of [1,5]", r.Value, r.ProductID)
		}
	}

	if len(ratings) == 0 {
		return []Prediction{}, nil
	}

	m := buildModel(ratings)

	if p.config.HoldoutFraction > 0 {
		if rmse, n, ok := p.evaluate(ratings); ok {
			p.logger.Debug().
				Float64("rmse", rmse).
				Int("holdout", n).
				Int64("seed", p.config.Seed).
				Msg("rating prediction diagnostic")
		}
	}

	rated := m.users[userID]
	neighbors := m.nearestNeighbors(userID, p.config.K)

	predictions := make([]Prediction, 0, len(m.products))
	for _, productID := range m.products {
		if _, ok := rated[productID]; ok {
			continue
		}
		predictions = append(predictions, Prediction{
			ProductID: productID,
			Score:     round2(m.predict(neighbors, productID)),
		})
	}

	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].Score != predictions[j].Score {
			return predictions[i].Score > predictions[j].Score
		}
		return predictions[i].ProductID < predictions[j].ProductID
	})

	if len(predictions) > topN {
		predictions = predictions[:topN]
	}

	p.logger.Debug().
		Str("user_id", userID).
		Int("neighbors", len(neighbors)).
		Int("returned", len(predictions)).
		Msg("collaborative predictions ranked")

	return predictions, nil
}

// model is the in-memory rating matrix plus the aggregates prediction needs.
type model struct {
	// users maps user ID to their product->rating vector.
	users map[string]map[string]float64

	// products is the sorted list of all rated product IDs.
	products []string

	// productMeans is the global mean rating per product.
	productMeans map[string]float64
}

// neighbor pairs a user ID with its similarity to the target user.
type neighbor struct {
	userID     string
	similarity float64
}

// buildModel indexes a rating snapshot. Later duplicates of the same
// (user, product) pair overwrite earlier ones.
func buildModel(ratings []Rating) *model {
	m := &model{
		users:        make(map[string]map[string]float64),
		productMeans: make(map[string]float64),
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range ratings {
		vec := m.users[r.UserID]
		if vec == nil {
			vec = make(map[string]float64)
			m.users[r.UserID] = vec
		}
		if prev, ok := vec[r.ProductID]; ok {
			sums[r.ProductID] -= prev
			counts[r.ProductID]--
		}
		vec[r.ProductID] = r.Value
		sums[r.ProductID] += r.Value
		counts[r.ProductID]++
	}

	m.products = make([]string, 0, len(sums))
	for productID, sum := range sums {
		m.products = append(m.products, productID)
		m.productMeans[productID] = sum / float64(counts[productID])
	}
	sort.Strings(m.products)

	return m
}

// nearestNeighbors returns the k users most similar to the target by
// cosine similarity over co-rated products. Users with no overlap are
// skipped. Equal similarities tie-break on user ID so the neighborhood is
// deterministic.
func (m *model) nearestNeighbors(userID string, k int) []neighbor {
	target := m.users[userID]
	if len(target) == 0 {
		return nil
	}

	neighbors := make([]neighbor, 0, len(m.users))
	for otherID, other := range m.users {
		if otherID == userID {
			continue
		}
		if sim := cosineOverlap(target, other); sim > 0 {
			neighbors = append(neighbors, neighbor{userID: otherID, similarity: sim})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].userID < neighbors[j].userID
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// predict estimates the rating a user would give a product as the
// similarity-weighted average of neighbor ratings, falling back to the
// product's global mean when no neighbor has rated it.
func (m *model) predict(neighbors []neighbor, productID string) float64 {
	var weighted, simSum float64
	for _, nb := range neighbors {
		if r, ok := m.users[nb.userID][productID]; ok {
			weighted += nb.similarity * r
			simSum += nb.similarity
		}
	}
	if simSum == 0 {
		return m.productMeans[productID]
	}
	return weighted / simSum
}

// cosineOverlap computes cosine similarity restricted to products both
// users rated. No overlap yields 0.
func cosineOverlap(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot, normA, normB float64
	for productID, va := range a {
		vb, ok := b[productID]
		if !ok {
			continue
		}
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// round2 rounds to two decimal places, the precision results are served at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

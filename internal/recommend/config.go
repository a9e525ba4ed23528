// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package recommend

import (
	"fmt"
	"math"

	"github.com/cartwise/cartwise/internal/recommend/similarity"
)

// Config holds tuning parameters for the recommendation engine.
type Config struct {
	// CategoryWeight is the weight given to category match when the
	// query carries a category filter.
	CategoryWeight float64 `json:"category_weight" koanf:"category_weight"`

	// PriceWeight is the weight given to price proximity when the query
	// carries a price ceiling.
	PriceWeight float64 `json:"price_weight" koanf:"price_weight"`

	// DefaultTopN is the result count when the query does not specify one.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// StopWords are removed from the text corpus before weighting.
	// Nil means the built-in English list.
	StopWords []string `json:"stop_words,omitempty" koanf:"stop_words"`

	// MaxConcurrent bounds concurrent matrix builds across requests.
	// Zero means no bound.
	MaxConcurrent int64 `json:"max_concurrent" koanf:"max_concurrent"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		CategoryWeight: 0.3,
		PriceWeight:    0.2,
		DefaultTopN:    3,
		MaxConcurrent:  8,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.CategoryWeight < 0 || c.CategoryWeight > 1 {
		return fmt.Errorf("category_weight %f out of [0,1]", c.CategoryWeight)
	}
	if c.PriceWeight < 0 || c.PriceWeight > 1 {
		return fmt.Errorf("price_weight %f out of [0,1]", c.PriceWeight)
	}
	if c.CategoryWeight+c.PriceWeight > 1 {
		return fmt.Errorf("category_weight + price_weight = %f exceeds 1",
			c.CategoryWeight+c.PriceWeight)
	}
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent must be non-negative, got %d", c.MaxConcurrent)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.StopWords != nil {
		clone.StopWords = make([]string, len(c.StopWords))
		copy(clone.StopWords, c.StopWords)
	}
	return &clone
}

// stopWordSet resolves the configured stop words, falling back to the
// built-in English list.
func (c *Config) stopWordSet() similarity.StopWordSet {
	if c.StopWords == nil {
		return similarity.NewStopWordSet(similarity.DefaultStopWords())
	}
	return similarity.NewStopWordSet(c.StopWords)
}

// weightPrecision snaps the derived text weight back onto the precision
// weights are configured at, so 1 - 0.3 - 0.2 is exactly 0.5 rather than
// the raw float subtraction result.
const weightPrecision = 1e9

// weightsFor derives the signal blend for a query. Category and price
// weights apply only when the corresponding filter is present; text absorbs
// whatever remains, so the three always sum to 1.
func (c *Config) weightsFor(q Query) Weights {
	w := Weights{}
	if q.CategoryID != "" {
		w.Category = c.CategoryWeight
	}
	if q.MaxPrice != nil {
		w.Price = c.PriceWeight
	}
	w.Text = math.Round((1-w.Category-w.Price)*weightPrecision) / weightPrecision
	return w
}

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package recommend

// Product is the catalog snapshot entry the engine ranks over.
// Callers map their storage model onto this type.
type Product struct {
	// ID is the unique product identifier.
	ID string `json:"id"`

	// Name is the display name, part of the text corpus.
	Name string `json:"name"`

	// Description is the free-text description, part of the text corpus.
	Description string `json:"description"`

	// CategoryID identifies the product's category.
	CategoryID string `json:"category_id"`

	// SellingPrice is the effective price after discounts.
	SellingPrice float64 `json:"selling_price"`

	// Location is the fulfilment location, matched exactly by the
	// location filter.
	Location string `json:"location,omitempty"`
}

// Query describes a request for products related to a target product.
type Query struct {
	// ProductID is the target product. Must exist in the snapshot.
	ProductID string `json:"product_id"`

	// TopN is the maximum number of results. Defaults to
	// Config.DefaultTopN if zero.
	TopN int `json:"top_n,omitempty"`

	// Location, when non-empty, restricts results to products with an
	// exactly matching location. It never influences scores.
	Location string `json:"location,omitempty"`

	// MaxPrice, when set, restricts results to products at or below the
	// ceiling and shifts scoring weight onto price proximity. A pointer
	// distinguishes "no ceiling" from a ceiling of zero.
	MaxPrice *float64 `json:"max_price,omitempty"`

	// CategoryID, when non-empty, restricts results to the category and
	// shifts scoring weight onto category match.
	CategoryID string `json:"category_id,omitempty"`
}

// ScoredProduct is a ranked result with its blended similarity score.
type ScoredProduct struct {
	// Product is the recommended product.
	Product Product `json:"product"`

	// Score is the blended similarity to the target, rounded to two
	// decimal places. Higher is more similar.
	Score float64 `json:"score"`
}

// Weights is the per-signal weight breakdown used for a query.
// The three weights always sum to 1.
type Weights struct {
	Text     float64 `json:"text"`
	Category float64 `json:"category"`
	Price    float64 `json:"price"`
}

// Result is the outcome of a Related call.
type Result struct {
	// Target is the product the query was anchored on.
	Target Product `json:"target"`

	// Products is the ranked, filtered recommendation list.
	Products []ScoredProduct `json:"products"`

	// Weights records the signal blend used for this query.
	Weights Weights `json:"weights"`

	// Candidates is the snapshot size the ranking considered,
	// excluding the target itself.
	Candidates int `json:"candidates"`
}

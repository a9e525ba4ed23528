// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package similarity builds pairwise product similarity matrices for the
// recommendation engine.
//
// Each builder turns a product snapshot into a square symmetric Matrix
// indexed by the product's position in the snapshot:
//
//   - Text: TF-IDF over product name and description, cosine similarity.
//   - Category: 1 for products sharing a category identifier, else 0.
//   - Price: 1 minus the absolute distance of min-max normalized selling
//     prices.
//
// All builders are pure functions over their inputs and are safe to call
// concurrently. Matrices are recomputed per call; nothing is cached.
package similarity

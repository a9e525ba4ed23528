// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package collaborative implements user-based collaborative filtering over
// explicit 1-5 star ratings.
//
// Predictions use the k most similar users by cosine similarity computed
// over co-rated products. Products no similar user has rated fall back to
// the product's global mean rating. A user with no ratings receives the
// global mean ranking, which makes cold-start output deterministic.
//
// Every call operates on the full rating snapshot passed in; a seeded
// 80/20 holdout split is used only to log an RMSE diagnostic, never to
// restrict the data predictions are drawn from.
package collaborative

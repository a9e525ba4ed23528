// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// https://github.com/cartwise/cartwise
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package recommend implements content-based product recommendations.
//
// The package operates on immutable catalog snapshots: every call receives
// the full product list, builds the similarity matrices it needs, and ranks
// against them. Nothing is cached between calls, so results always reflect
// the snapshot passed in.
//
// Two entry points are provided. Recommender.Related blends text, category
// and price similarity with filter-dependent weights and applies hard
// constraint filters after ranking. ContentRecommender.MoreLikeThis ranks by
// description similarity alone.
//
// This package has no dependencies on other internal packages; callers map
// their catalog types onto the Product and Rating inputs.
package recommend

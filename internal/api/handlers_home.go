// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cartwise/cartwise/internal/auth"
	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/metrics"
	"github.com/cartwise/cartwise/internal/recommend"
	"github.com/cartwise/cartwise/internal/recommend/collaborative"
)

// homeSectionLimit caps each home listing section.
const homeSectionLimit = 8

// homeResponse is the personalized landing page payload.
type homeResponse struct {
	// NewAdded lists the most recently added products.
	NewAdded []productView `json:"new_added"`

	// Trending lists the best-rated products.
	Trending []productView `json:"trending"`

	// SimilarToRecent lists products similar to the user's most recently
	// rated product. Empty for users with no ratings.
	SimilarToRecent []recommend.ScoredProduct `json:"similar_to_recent_view"`

	// MightInterestYou lists collaborative filtering picks for the user.
	MightInterestYou []productView `json:"might_interest_you"`
}

// Home assembles the landing page sections for the authenticated user.
// The personalized sections degrade to empty for users without history;
// the catalog-wide sections always render.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	resp := homeResponse{
		SimilarToRecent:  []recommend.ScoredProduct{},
		MightInterestYou: []productView{},
	}

	newest, err := h.store.ListNewestProducts(ctx, homeSectionLimit)
	if err != nil {
		rw.StorageError(err)
		return
	}
	resp.NewAdded = toProductViews(newest)

	ratings, err := h.store.ListRatings(ctx)
	if err != nil {
		rw.StorageError(err)
		return
	}
	resp.Trending = h.trendingProducts(ctx, ratings)

	// Recently viewed product IDs can be passed explicitly; without them
	// the user's most recently rated product stands in.
	seeds := recentViewSeeds(r.URL.Query().Get("recent_view"))
	if len(seeds) == 0 {
		if recent := mostRecentRating(ratings, userID); recent != nil {
			seeds = []string{recent.ProductID}
		}
	}
	if len(seeds) > 0 {
		snapshot, err := h.snapshot(ctx)
		if err != nil {
			rw.StorageError(err)
			return
		}
		resp.SimilarToRecent = h.similarToSeeds(ctx, snapshot, seeds)
	}

	if picks, err := h.interestPicks(ctx, ratings, userID); err == nil {
		resp.MightInterestYou = picks
	} else {
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("collaborative picks failed")
	}

	rw.Success(resp)
}

// maxRecentViewSeeds caps how many recently viewed products feed the
// similarity section.
const maxRecentViewSeeds = 3

// recentViewSeeds parses the comma-separated recent_view parameter.
func recentViewSeeds(raw string) []string {
	if raw == "" {
		return nil
	}
	var seeds []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		seeds = append(seeds, id)
		if len(seeds) == maxRecentViewSeeds {
			break
		}
	}
	return seeds
}

// similarToSeeds merges text-similarity results across the seed products,
// keeping each candidate once at its best score and never echoing a seed.
func (h *Handler) similarToSeeds(ctx context.Context, snapshot []recommend.Product, seeds []string) []recommend.ScoredProduct {
	seedSet := make(map[string]struct{}, len(seeds))
	for _, id := range seeds {
		seedSet[id] = struct{}{}
	}

	best := make(map[string]recommend.ScoredProduct)
	for _, seed := range seeds {
		start := time.Now()
		similar, err := h.content.MoreLikeThis(ctx, snapshot, seed, 0)
		metrics.ObserveRecommend("content", time.Since(start), err)
		if err != nil {
			continue
		}
		for _, sp := range similar {
			if _, isSeed := seedSet[sp.Product.ID]; isSeed {
				continue
			}
			if prev, ok := best[sp.Product.ID]; !ok || sp.Score > prev.Score {
				best[sp.Product.ID] = sp
			}
		}
	}

	merged := make([]recommend.ScoredProduct, 0, len(best))
	for _, sp := range best {
		merged = append(merged, sp)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return merged[i].Product.ID < merged[j].Product.ID
	})
	if len(merged) > homeSectionLimit {
		merged = merged[:homeSectionLimit]
	}
	return merged
}

// trendingProducts ranks products by mean rating descending, product ID as
// the tie-break. Products that vanished from the catalog are skipped.
func (h *Handler) trendingProducts(ctx context.Context, ratings []catalog.Rating) []productView {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range ratings {
		sums[r.ProductID] += r.Value
		counts[r.ProductID]++
	}

	type rated struct {
		productID string
		mean      float64
	}
	ranked := make([]rated, 0, len(sums))
	for id, sum := range sums {
		ranked = append(ranked, rated{productID: id, mean: sum / float64(counts[id])})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].mean != ranked[j].mean {
			return ranked[i].mean > ranked[j].mean
		}
		return ranked[i].productID < ranked[j].productID
	})
	if len(ranked) > homeSectionLimit {
		ranked = ranked[:homeSectionLimit]
	}

	views := make([]productView, 0, len(ranked))
	for _, entry := range ranked {
		product, err := h.store.GetProduct(ctx, entry.productID)
		if err != nil {
			continue
		}
		views = append(views, toProductView(product))
	}
	return views
}

// interestPicks maps collaborative predictions onto catalog products.
func (h *Handler) interestPicks(ctx context.Context, ratings []catalog.Rating, userID string) ([]productView, error) {
	snapshot := make([]collaborative.Rating, len(ratings))
	for i, r := range ratings {
		snapshot[i] = collaborative.Rating{UserID: r.UserID, ProductID: r.ProductID, Value: r.Value}
	}

	start := time.Now()
	predictions, err := h.predictor.TopN(ctx, snapshot, userID, homeSectionLimit)
	metrics.ObserveRecommend("collaborative", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	views := make([]productView, 0, len(predictions))
	for _, pred := range predictions {
		product, err := h.store.GetProduct(ctx, pred.ProductID)
		if err != nil {
			continue
		}
		views = append(views, toProductView(product))
	}
	return views, nil
}

// mostRecentRating returns the user's newest rating, or nil.
func mostRecentRating(ratings []catalog.Rating, userID string) *catalog.Rating {
	var recent *catalog.Rating
	for i := range ratings {
		if ratings[i].UserID != userID {
			continue
		}
		if recent == nil || ratings[i].CreatedAt.After(recent.CreatedAt) {
			recent = &ratings[i]
		}
	}
	return recent
}

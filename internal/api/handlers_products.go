// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/metrics"
	"github.com/cartwise/cartwise/internal/recommend"
	"github.com/cartwise/cartwise/internal/store"
)

// productView is a catalog product with its resolved selling price.
type productView struct {
	catalog.Product
	SellingPrice float64 `json:"selling_price"`
}

func toProductView(p *catalog.Product) productView {
	return productView{Product: *p, SellingPrice: p.SellingPrice()}
}

func toProductViews(products []catalog.Product) []productView {
	views := make([]productView, len(products))
	for i := range products {
		views[i] = toProductView(&products[i])
	}
	return views
}

// ListProducts returns the full catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(toProductViews(products))
}

// GetProduct returns a single product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	product, err := h.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("product not found")
			return
		}
		rw.StorageError(err)
		return
	}
	rw.Success(toProductView(product))
}

// SearchProducts returns products matching the q parameter.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := r.URL.Query().Get("q")
	if q == "" {
		rw.BadRequest("missing query parameter q")
		return
	}

	products, err := h.store.SearchProducts(r.Context(), q)
	if err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(toProductViews(products))
}

// ListCategories returns all categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(categories)
}

// ListCategoryProducts returns the products of one category.
func (h *Handler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	categoryID := chi.URLParam(r, "id")
	if _, err := h.store.GetCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("category not found")
			return
		}
		rw.StorageError(err)
		return
	}

	products, err := h.store.ListProductsByCategory(r.Context(), categoryID)
	if err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(toProductViews(products))
}

// RelatedProducts ranks the catalog by blended similarity to the product
// and applies the optional hard filters from the query string: location,
// max_price, and category. top_n bounds the result count.
func (h *Handler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	query := recommend.Query{
		ProductID:  chi.URLParam(r, "id"),
		Location:   r.URL.Query().Get("location"),
		CategoryID: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			rw.BadRequest("top_n must be a non-negative integer")
			return
		}
		query.TopN = n
	}
	if raw := r.URL.Query().Get("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			rw.BadRequest("max_price must be a non-negative number")
			return
		}
		query.MaxPrice = &price
	}

	snapshot, err := h.snapshot(r.Context())
	if err != nil {
		rw.StorageError(err)
		return
	}

	start := time.Now()
	result, err := h.recommender.Related(r.Context(), snapshot, query)
	metrics.ObserveRecommend("related", time.Since(start), err)
	if err != nil {
		h.writeEngineError(rw, err)
		return
	}
	rw.Success(result)
}

// SimilarProducts returns the products most similar to the product by
// description alone, with no filters.
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	topN := 0
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			rw.BadRequest("top_n must be a non-negative integer")
			return
		}
		topN = n
	}

	snapshot, err := h.snapshot(r.Context())
	if err != nil {
		rw.StorageError(err)
		return
	}

	start := time.Now()
	products, err := h.content.MoreLikeThis(r.Context(), snapshot, chi.URLParam(r, "id"), topN)
	metrics.ObserveRecommend("content", time.Since(start), err)
	if err != nil {
		h.writeEngineError(rw, err)
		return
	}
	rw.Success(products)
}

// writeEngineError maps recommendation engine errors onto the envelope.
func (h *Handler) writeEngineError(rw *ResponseWriter, err error) {
	var notFound *recommend.NotFoundError
	if errors.As(err, &notFound) {
		rw.NotFound("product not found")
		return
	}
	var invalid *recommend.InvalidInputError
	if errors.As(err, &invalid) {
		rw.BadRequest(invalid.Error())
		return
	}
	h.logger.Error().Err(err).Msg("recommendation failed")
	rw.InternalError("recommendation failed")
}

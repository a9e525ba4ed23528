// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cartwise/cartwise/internal/auth"
	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/store"
	"github.com/cartwise/cartwise/internal/validation"
)

// createRatingRequest is the rating submission body.
type createRatingRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Value     float64 `json:"value" validate:"gte=1,lte=5"`
}

// CreateRating stores an authenticated user's rating of a product. A user
// may rate each product once; repeats answer 409.
func (h *Handler) CreateRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	var req createRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("malformed request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			rw.ValidationError("invalid rating", verrs.Fields)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	if _, err := h.store.GetProduct(r.Context(), req.ProductID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("product not found")
			return
		}
		rw.StorageError(err)
		return
	}

	rating := catalog.Rating{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
		Value:     req.Value,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateRating(r.Context(), &rating); err != nil {
		if errors.Is(err, store.ErrConflict) {
			rw.Conflict("product already rated")
			return
		}
		rw.StorageError(err)
		return
	}

	rw.Created(rating)
}

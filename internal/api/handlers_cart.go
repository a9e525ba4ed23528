// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/cartwise/cartwise/internal/auth"
	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/store"
	"github.com/cartwise/cartwise/internal/validation"
)

// GetCart returns the authenticated user's cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	cart, err := h.store.GetCart(r.Context(), userID)
	if err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(cart)
}

// putCartItemRequest sets a product's quantity in the cart. Quantity zero
// removes the line.
type putCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=10"`
}

// PutCartItem upserts one cart line for the authenticated user.
func (h *Handler) PutCartItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	var req putCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("malformed request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			rw.ValidationError("invalid cart item", verrs.Fields)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	if req.Quantity > 0 {
		if _, err := h.store.GetProduct(r.Context(), req.ProductID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				rw.NotFound("product not found")
				return
			}
			rw.StorageError(err)
			return
		}
	}

	cart, err := h.store.GetCart(r.Context(), userID)
	if err != nil {
		rw.StorageError(err)
		return
	}

	cart.Items = upsertCartItem(cart.Items, req.ProductID, req.Quantity)
	cart.UpdatedAt = time.Now().UTC()

	if err := h.store.PutCart(r.Context(), cart); err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(cart)
}

// RemoveCartItem drops one product's line from the authenticated user's
// cart. Removing a product that is not in the cart is a no-op success.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	cart, err := h.store.GetCart(r.Context(), userID)
	if err != nil {
		rw.StorageError(err)
		return
	}

	cart.Items = upsertCartItem(cart.Items, chi.URLParam(r, "productID"), 0)
	cart.UpdatedAt = time.Now().UTC()

	if err := h.store.PutCart(r.Context(), cart); err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(cart)
}

// ClearCart empties the authenticated user's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	if err := h.store.DeleteCart(r.Context(), userID); err != nil {
		rw.StorageError(err)
		return
	}
	rw.NoContent()
}

// upsertCartItem replaces, appends or removes the line for a product.
func upsertCartItem(items []catalog.CartItem, productID string, quantity int) []catalog.CartItem {
	out := items[:0:0]
	found := false
	for _, item := range items {
		if item.ProductID == productID {
			found = true
			if quantity > 0 {
				out = append(out, catalog.CartItem{ProductID: productID, Quantity: quantity})
			}
			continue
		}
		out = append(out, item)
	}
	if !found && quantity > 0 {
		out = append(out, catalog.CartItem{ProductID: productID, Quantity: quantity})
	}
	return out
}

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cartwise/cartwise/internal/auth"
	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/metrics"
	"github.com/cartwise/cartwise/internal/store"
)

// orderReferenceLength is the random part of an order reference.
const orderReferenceLength = 12

// newOrderReference builds a human-facing order reference like
// REF_3F2A9C1B7D4E.
func newOrderReference() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "REF_" + hex[:orderReferenceLength]
}

// Checkout turns the authenticated user's cart into an order, priced at
// the current selling prices, and empties the cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
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
	if len(cart.Items) == 0 {
		rw.BadRequest("cart is empty")
		return
	}

	items := make([]catalog.OrderItem, 0, len(cart.Items))
	var total float64
	for _, line := range cart.Items {
		product, err := h.store.GetProduct(r.Context(), line.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				rw.Conflict("product " + line.ProductID + " no longer available")
				return
			}
			rw.StorageError(err)
			return
		}

		item := catalog.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.SellingPrice(),
		}
		items = append(items, item)
		total += item.Subtotal()
	}

	order := catalog.Order{
		ID:        uuid.NewString(),
		Reference: newOrderReference(),
		UserID:    userID,
		Items:     items,
		Total:     math.Round(total*100) / 100,
		Status:    catalog.OrderPlaced,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateOrder(r.Context(), &order); err != nil {
		rw.StorageError(err)
		return
	}
	if err := h.store.DeleteCart(r.Context(), userID); err != nil {
		// The order is placed; a stale cart is recoverable.
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("clear cart after checkout")
	}

	metrics.OrdersPlaced.Inc()
	h.logger.Info().
		Str("order_id", order.ID).
		Str("reference", order.Reference).
		Str("user_id", userID).
		Float64("total", order.Total).
		Msg("order placed")
	rw.Created(order)
}

// ListOrders returns the authenticated user's orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	orders, err := h.store.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		rw.StorageError(err)
		return
	}
	rw.Success(orders)
}

// GetOrder returns one of the authenticated user's orders. Another user's
// order answers 404, not 403, to avoid leaking order IDs.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		rw.Unauthorized("authentication required")
		return
	}

	order, err := h.store.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("order not found")
			return
		}
		rw.StorageError(err)
		return
	}
	if order.UserID != userID {
		rw.NotFound("order not found")
		return
	}
	rw.Success(order)
}

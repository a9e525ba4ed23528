// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package catalog

import "time"

// MaxCartQuantity is the per-product quantity limit in a cart.
const MaxCartQuantity = 10

// CartItem is a product plus quantity in a user's cart. Quantity zero
// removes the item.
type CartItem struct {
	// ProductID references the product.
	ProductID string `json:"product_id" validate:"required"`

	// Quantity is the number of units, 0 to MaxCartQuantity.
	Quantity int `json:"quantity" validate:"gte=0,lte=10"`
}

// Cart is a user's open shopping cart.
type Cart struct {
	// UserID owns the cart.
	UserID string `json:"user_id" validate:"required"`

	// Items are the cart lines, one per product.
	Items []CartItem `json:"items" validate:"dive"`

	// UpdatedAt is the last modification time.
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderPlaced is the initial state after checkout.
	OrderPlaced OrderStatus = "PLACED"
	// OrderCancelled marks a cancelled order.
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderItem is a purchased product line, priced at checkout time.
type OrderItem struct {
	// ProductID references the product.
	ProductID string `json:"product_id" validate:"required"`

	// Name is the product name at checkout time.
	Name string `json:"name"`

	// Quantity is the number of units.
	Quantity int `json:"quantity" validate:"gte=1,lte=10"`

	// UnitPrice is the selling price per unit at checkout time.
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// Order is a completed checkout.
type Order struct {
	// ID is the unique order identifier.
	ID string `json:"id" validate:"required"`

	// Reference is the human-facing order reference.
	Reference string `json:"reference" validate:"required"`

	// UserID owns the order.
	UserID string `json:"user_id" validate:"required"`

	// Items are the purchased lines.
	Items []OrderItem `json:"items" validate:"required,min=1,dive"`

	// Total is the order total at checkout time.
	Total float64 `json:"total" validate:"gte=0"`

	// Status is the lifecycle state.
	Status OrderStatus `json:"status"`

	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// Subtotal is the line total for an order item.
func (i *OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package catalog

import "time"

// DiscountType describes how a product's discount is applied.
type DiscountType string

const (
	// DiscountNone means the product sells at list price.
	DiscountNone DiscountType = "NONE"
	// DiscountFixed subtracts a fixed amount from the list price.
	DiscountFixed DiscountType = "FIXED"
	// DiscountUnit subtracts a percentage of the list price.
	DiscountUnit DiscountType = "UNIT"
)

// Valid reports whether the discount type is one of the known values.
func (d DiscountType) Valid() bool {
	switch d {
	case DiscountNone, DiscountFixed, DiscountUnit:
		return true
	default:
		return false
	}
}

// Product is a catalog entry.
type Product struct {
	// ID is the unique product identifier.
	ID string `json:"id" validate:"required"`

	// Name is the display name.
	Name string `json:"name" validate:"required,max=200"`

	// Description is the free-text description used for text similarity.
	Description string `json:"description" validate:"max=5000"`

	// CategoryID references the product's category.
	CategoryID string `json:"category_id" validate:"required"`

	// Price is the list price before discounts.
	Price float64 `json:"price" validate:"gte=0"`

	// Discount is the discount amount; a fixed sum for FIXED, a
	// percentage for UNIT, ignored for NONE.
	Discount float64 `json:"discount" validate:"gte=0"`

	// DiscountType selects how Discount applies.
	DiscountType DiscountType `json:"discount_type" validate:"oneof=NONE FIXED UNIT"`

	// Location is the fulfilment location.
	Location string `json:"location,omitempty"`

	// Stock is the units available.
	Stock int `json:"stock" validate:"gte=0"`

	// CreatedAt is when the product was added to the catalog.
	CreatedAt time.Time `json:"created_at"`
}

// SellingPrice is the effective price after applying the discount.
// The result never goes below zero.
func (p *Product) SellingPrice() float64 {
	var price float64
	switch p.DiscountType {
	case DiscountFixed:
		price = p.Price - p.Discount
	case DiscountUnit:
		price = p.Price - p.Price*p.Discount/100
	default:
		price = p.Price
	}
	if price < 0 {
		return 0
	}
	return price
}

// Category groups products.
type Category struct {
	// ID is the unique category identifier.
	ID string `json:"id" validate:"required"`

	// Name is the display name.
	Name string `json:"name" validate:"required,max=100"`
}

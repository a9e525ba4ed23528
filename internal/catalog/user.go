// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package catalog

import "time"

// User is a registered account. Authentication uses a short numeric code
// instead of a password; only its bcrypt hash is stored.
type User struct {
	// ID is the unique user identifier.
	ID string `json:"id" validate:"required"`

	// Username is the unique login name.
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`

	// Name is the display name.
	Name string `json:"name" validate:"required,max=100"`

	// CodeHash is the bcrypt hash of the six-digit sign-in code.
	// Never serialized to API responses.
	CodeHash string `json:"-"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// Rating is an explicit 1-5 star product rating. A user may rate a
// product at most once.
type Rating struct {
	// ID is the unique rating identifier.
	ID string `json:"id" validate:"required"`

	// UserID references the rating user.
	UserID string `json:"user_id" validate:"required"`

	// ProductID references the rated product.
	ProductID string `json:"product_id" validate:"required"`

	// Value is the star rating.
	Value float64 `json:"value" validate:"gte=1,lte=5"`

	// CreatedAt is when the rating was submitted.
	CreatedAt time.Time `json:"created_at"`
}

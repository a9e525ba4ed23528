// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package recommend

import "fmt"

// NotFoundError indicates the query's target product is absent from the
// snapshot. Callers typically translate it to a 404.
type NotFoundError struct {
	// ProductID is the identifier that was not found.
	ProductID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found in snapshot", e.ProductID)
}

// InvalidInputError indicates a malformed query parameter.
type InvalidInputError struct {
	// Field is the offending query field.
	Field string

	// Reason describes what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

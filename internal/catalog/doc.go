// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package catalog defines the domain model of the product catalog: products
// with discount pricing, categories, user accounts, ratings, carts and
// orders. The types carry validation tags consumed by the validation
// package; persistence lives in the store package.
package catalog

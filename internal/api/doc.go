// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package api provides the HTTP surface of the service: a Chi route tree,
// the standard response envelope, request middleware, and the handlers for
// catalog, recommendation, auth, cart and order operations.
package api

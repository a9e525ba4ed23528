// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package store persists the catalog in BadgerDB. Documents are stored as
// JSON values under typed key prefixes; uniqueness constraints (usernames,
// one rating per user and product) are enforced with index keys written in
// the same transaction as the document.
package store

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package auth implements sign-in with short numeric codes and stateless
// JWT sessions.
//
// Accounts authenticate with a six-digit code generated at sign-up instead
// of a password; only the bcrypt hash is stored. Successful sign-in issues
// an HS256-signed JWT carrying the user ID, verified by the middleware on
// protected routes.
package auth

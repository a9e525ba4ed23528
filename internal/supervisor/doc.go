// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package supervisor runs the service's long-lived components under a
// suture supervision tree: the HTTP server and the store's value-log
// garbage collector. A crashing component is restarted with backoff
// instead of taking the process down.
package supervisor

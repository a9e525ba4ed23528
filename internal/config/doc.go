// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package config loads service configuration from three layered sources:
// built-in defaults, an optional YAML file, and environment variables, with
// later layers overriding earlier ones.
package config

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package store

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/cartwise/cartwise/internal/catalog"
)

// SeedFile is the on-disk layout of a catalog seed file.
type SeedFile struct {
	Categories []catalog.Category `json:"categories"`
	Products   []catalog.Product  `json:"products"`
}

// SeedFromFile loads categories and products from a JSON seed file into an
// empty store. A store that already has products is left untouched so
// restarts do not clobber live data.
func (s *Store) SeedFromFile(ctx context.Context, path string) error {
	existing, err := s.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("check existing products: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug().Int("products", len(existing)).Msg("store already seeded")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for i := range seed.Categories {
		if err := s.PutCategory(ctx, &seed.Categories[i]); err != nil {
			return fmt.Errorf("seed category %q: %w", seed.Categories[i].ID, err)
		}
	}
	for i := range seed.Products {
		if err := s.PutProduct(ctx, &seed.Products[i]); err != nil {
			return fmt.Errorf("seed product %q: %w", seed.Products[i].ID, err)
		}
	}

	s.logger.Info().
		Int("categories", len(seed.Categories)).
		Int("products", len(seed.Products)).
		Str("path", path).
		Msg("seeded catalog")
	return nil
}

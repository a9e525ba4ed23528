// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package store

import (
	"context"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cartwise/cartwise/internal/catalog"
)

// PutProduct creates or replaces a product.
func (s *Store) PutProduct(_ context.Context, p *catalog.Product) error {
	return s.put(productKeyPrefix+p.ID, p)
}

// GetProduct returns a product by ID, or ErrNotFound.
func (s *Store) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := s.get(productKeyPrefix+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns all products ordered by ID. The order is the
// snapshot order recommendation ranking ties break on, so it must be
// stable across calls.
func (s *Store) ListProducts(_ context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	err := s.scanPrefix(productKeyPrefix, func(val []byte) error {
		var p catalog.Product
		if err := json.Unmarshal(val, &p); err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts returns products whose name or description contains the
// query, case-insensitively, ordered by ID.
func (s *Store) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := all[:0:0]
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ListProductsByCategory returns products in a category, ordered by ID.
func (s *Store) ListProductsByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := all[:0:0]
	for _, p := range all {
		if p.CategoryID == categoryID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ListNewestProducts returns up to limit products ordered by creation time
// descending, newest first. Ties keep ID order.
func (s *Store) ListNewestProducts(ctx context.Context, limit int) ([]catalog.Product, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// PutCategory creates or replaces a category.
func (s *Store) PutCategory(_ context.Context, c *catalog.Category) error {
	return s.put(categoryKeyPrefix+c.ID, c)
}

// GetCategory returns a category by ID, or ErrNotFound.
func (s *Store) GetCategory(_ context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	if err := s.get(categoryKeyPrefix+id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns all categories ordered by ID.
func (s *Store) ListCategories(_ context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	err := s.scanPrefix(categoryKeyPrefix, func(val []byte) error {
		var c catalog.Category
		if err := json.Unmarshal(val, &c); err != nil {
			return err
		}
		categories = append(categories, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

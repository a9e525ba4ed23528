// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cartwise/cartwise/internal/catalog"
)

// GetCart returns a user's cart. A user without a stored cart gets an
// empty one, not ErrNotFound.
func (s *Store) GetCart(_ context.Context, userID string) (*catalog.Cart, error) {
	var c catalog.Cart
	err := s.get(cartKeyPrefix+userID, &c)
	if errors.Is(err, ErrNotFound) {
		return &catalog.Cart{UserID: userID, Items: []catalog.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PutCart replaces a user's cart.
func (s *Store) PutCart(_ context.Context, c *catalog.Cart) error {
	return s.put(cartKeyPrefix+c.UserID, c)
}

// DeleteCart removes a user's cart, typically after checkout.
func (s *Store) DeleteCart(_ context.Context, userID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(cartKeyPrefix + userID))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete cart: %w", err)
		}
		return nil
	})
}

// CreateOrder stores a new order and its user index entry.
func (s *Store) CreateOrder(_ context.Context, o *catalog.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(orderKeyPrefix+o.ID), data); err != nil {
			return fmt.Errorf("set order: %w", err)
		}
		userKey := []byte(orderUserKeyPrefix + o.UserID + ":" + o.ID)
		if err := txn.Set(userKey, []byte(o.ID)); err != nil {
			return fmt.Errorf("set order index: %w", err)
		}
		return nil
	})
}

// GetOrder returns an order by ID, or ErrNotFound.
func (s *Store) GetOrder(_ context.Context, id string) (*catalog.Order, error) {
	var o catalog.Order
	if err := s.get(orderKeyPrefix+id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrdersByUser returns a user's orders ordered by order ID.
func (s *Store) ListOrdersByUser(_ context.Context, userID string) ([]catalog.Order, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(orderUserKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list order index: %w", err)
	}

	orders := make([]catalog.Order, 0, len(ids))
	for _, id := range ids {
		var o catalog.Order
		if err := s.get(orderKeyPrefix+id, &o); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

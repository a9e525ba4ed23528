// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cartwise/cartwise/internal/catalog"
)

// CreateUser stores a new user. Usernames are unique, compared
// case-insensitively; a taken username returns ErrConflict.
func (s *Store) CreateUser(_ context.Context, u *catalog.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	usernameKey := []byte(usernameKeyPrefix + strings.ToLower(u.Username))
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(usernameKey)
		if err == nil {
			return fmt.Errorf("username %q: %w", u.Username, ErrConflict)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		if err := txn.Set([]byte(userKeyPrefix+u.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(usernameKey, []byte(u.ID)); err != nil {
			return fmt.Errorf("set username index: %w", err)
		}
		return nil
	})
}

// GetUser returns a user by ID, or ErrNotFound.
func (s *Store) GetUser(_ context.Context, id string) (*catalog.User, error) {
	var u catalog.User
	if err := s.get(userKeyPrefix+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername resolves a username through the index, or ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*catalog.User, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(usernameKeyPrefix + strings.ToLower(username)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get username index: %w", err)
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}

// CreateRating stores a new rating. A user may rate a product once; a
// second rating for the same pair returns ErrConflict.
func (s *Store) CreateRating(_ context.Context, r *catalog.Rating) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}

	pairKey := []byte(ratingUserKeyPrefix + r.UserID + ":" + r.ProductID)
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(pairKey)
		if err == nil {
			return fmt.Errorf("rating for product %q by user %q: %w", r.ProductID, r.UserID, ErrConflict)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check rating: %w", err)
		}

		if err := txn.Set([]byte(ratingKeyPrefix+r.ID), data); err != nil {
			return fmt.Errorf("set rating: %w", err)
		}
		if err := txn.Set(pairKey, []byte(r.ID)); err != nil {
			return fmt.Errorf("set rating index: %w", err)
		}
		return nil
	})
}

// ListRatings returns all ratings ordered by ID.
func (s *Store) ListRatings(_ context.Context) ([]catalog.Rating, error) {
	var ratings []catalog.Rating
	err := s.scanPrefix(ratingKeyPrefix, func(val []byte) error {
		var r catalog.Rating
		if err := json.Unmarshal(val, &r); err != nil {
			return err
		}
		ratings = append(ratings, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListRatingsByUser returns a user's ratings ordered by rating ID.
func (s *Store) ListRatingsByUser(ctx context.Context, userID string) ([]catalog.Rating, error) {
	all, err := s.ListRatings(ctx)
	if err != nil {
		return nil, err
	}

	matched := all[:0:0]
	for _, r := range all {
		if r.UserID == userID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

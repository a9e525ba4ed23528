// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/cartwise/cartwise/internal/metrics"
)

// observe records one store operation's latency, deferred at the top of
// each access helper.
func observe(operation string, start time.Time) {
	metrics.ObserveStoreOperation(operation, time.Since(start))
}

// Key prefixes for BadgerDB storage.
const (
	productKeyPrefix    = "product:"
	categoryKeyPrefix   = "category:"
	userKeyPrefix       = "user:"
	usernameKeyPrefix   = "username:"
	ratingKeyPrefix     = "rating:"
	ratingUserKeyPrefix = "rating_user:"
	cartKeyPrefix       = "cart:"
	orderKeyPrefix      = "order:"
	orderUserKeyPrefix  = "order_user:"
)

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict indicates a uniqueness constraint was violated.
	ErrConflict = errors.New("store: conflict")
)

// Config holds storage configuration.
type Config struct {
	// Path is the on-disk database directory.
	Path string `json:"path" koanf:"path"`

	// InMemory runs the database without persistence, for tests and
	// ephemeral deployments.
	InMemory bool `json:"in_memory" koanf:"in_memory"`
}

// Store is the BadgerDB-backed catalog store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens the database at the configured path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(badgerLogger{logger: logger.With().Str("component", "badger").Logger()})
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is open and readable.
func (s *Store) Ping() error {
	return s.db.View(func(*badger.Txn) error { return nil })
}

// RunValueLogGC triggers one round of value-log garbage collection.
// Returns badger.ErrNoRewrite when there was nothing to collect.
func (s *Store) RunValueLogGC() error {
	return s.db.RunValueLogGC(0.5)
}

// get unmarshals the document at key into out.
func (s *Store) get(key string, out any) error {
	defer observe("get", time.Now())
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// put marshals doc and writes it at key.
func (s *Store) put(key string, doc any) error {
	defer observe("put", time.Now())
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// scanPrefix calls fn with each value stored under the prefix, in key order.
func (s *Store) scanPrefix(prefix string, fn func(val []byte) error) error {
	defer observe("scan", time.Now())
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// badgerLogger adapts zerolog to badger's Logger interface.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

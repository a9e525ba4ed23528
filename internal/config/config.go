// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package config

import (
	"fmt"
	"time"
)

// Config is the root service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// ReadTimeout bounds request reads.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// StorageConfig configures the BadgerDB store.
type StorageConfig struct {
	// Path is the database directory.
	Path string `koanf:"path"`

	// InMemory disables persistence, for tests and demos.
	InMemory bool `koanf:"in_memory"`

	// SeedPath optionally points at a JSON catalog seed file loaded when
	// the store is empty.
	SeedPath string `koanf:"seed_path"`

	// GCInterval is how often value-log garbage collection runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig configures authentication and rate limiting.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Required, minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTTL bounds session token lifetime.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// AuthRateLimit is requests per window allowed on auth endpoints.
	AuthRateLimit int `koanf:"auth_rate_limit"`

	// AuthRateWindow is the rate-limit window for auth endpoints.
	AuthRateWindow time.Duration `koanf:"auth_rate_window"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`

	// Caller adds file:line to log events.
	Caller bool `koanf:"caller"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	// CategoryWeight applies when a query carries a category filter.
	CategoryWeight float64 `koanf:"category_weight"`

	// PriceWeight applies when a query carries a price ceiling.
	PriceWeight float64 `koanf:"price_weight"`

	// DefaultTopN is the result count when a request does not specify one.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxConcurrent bounds concurrent similarity matrix builds.
	MaxConcurrent int64 `koanf:"max_concurrent"`

	// Collaborative tunes the rating predictor.
	Collaborative CollaborativeConfig `koanf:"collaborative"`
}

// CollaborativeConfig tunes the collaborative filtering predictor.
type CollaborativeConfig struct {
	// K is the neighborhood size.
	K int `koanf:"k"`

	// HoldoutFraction is withheld for the RMSE diagnostic.
	HoldoutFraction float64 `koanf:"holdout_fraction"`

	// Seed drives the diagnostic holdout split.
	Seed int64 `koanf:"seed"`
}

// defaultConfig returns the built-in defaults, the lowest-priority layer.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Storage: StorageConfig{
			Path:       "/data/cartwise",
			InMemory:   false,
			SeedPath:   "",
			GCInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			JWTSecret:      "",
			SessionTTL:     24 * time.Hour,
			AuthRateLimit:  10,
			AuthRateWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			CategoryWeight: 0.3,
			PriceWeight:    0.2,
			DefaultTopN:    3,
			MaxConcurrent:  8,
			Collaborative: CollaborativeConfig{
				K:               5,
				HoldoutFraction: 0.2,
				Seed:            42,
			},
		},
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.SessionTTL <= 0 {
		return fmt.Errorf("security.session_ttl must be positive")
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required unless storage.in_memory is set")
	}
	if c.Recommend.CategoryWeight+c.Recommend.PriceWeight > 1 {
		return fmt.Errorf("recommend weights must not exceed 1")
	}
	if c.Recommend.DefaultTopN <= 0 {
		return fmt.Errorf("recommend.default_top_n must be positive")
	}
	if c.Recommend.Collaborative.K <= 0 {
		return fmt.Errorf("recommend.collaborative.k must be positive")
	}
	return nil
}

// Addr is the listener address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

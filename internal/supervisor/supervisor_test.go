// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package supervisor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cartwise/cartwise/internal/store"
)

func TestHTTPServiceServeAndShutdown(t *testing.T) {
	// Grab a free port, then hand its address to the service.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	svc := NewHTTPService(HTTPServiceConfig{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
		ShutdownTimeout: time.Second,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Wait for the listener to come up.
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestHTTPServiceListenFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	// The port is already taken, Serve must fail rather than hang.
	svc := NewHTTPService(HTTPServiceConfig{
		Addr:            listener.Addr().String(),
		Handler:         http.NotFoundHandler(),
		ShutdownTimeout: time.Second,
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Serve(ctx); err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v, want a bind error", err)
	}
}

func TestGCServiceStopsOnCancel(t *testing.T) {
	st, err := store.Open(store.Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	svc := NewGCService(st, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Let a few ticks fire against the in-memory store.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewTreeDefaults(t *testing.T) {
	tree := NewTree(TreeConfig{}, zerolog.Nop())
	if tree.root == nil {
		t.Fatal("root supervisor is nil")
	}

	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 || cfg.FailureBackoff != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

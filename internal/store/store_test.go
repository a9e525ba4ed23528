// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/metrics"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestProductRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &catalog.Product{
		ID:           "p1",
		Name:         "Red Shoes",
		Description:  "comfortable running shoes",
		CategoryID:   "footwear",
		Price:        60,
		Discount:     10,
		DiscountType: catalog.DiscountFixed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.PutProduct(ctx, p); err != nil {
		t.Fatalf("PutProduct: %v", err)
	}

	got, err := s.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != p.Name || got.SellingPrice() != 50 {
		t.Errorf("got %+v, want name %q selling price 50", got, p.Name)
	}

	if _, err := s.GetProduct(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProduct(missing) = %v, want ErrNotFound", err)
	}
}

func TestListProductsStableOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Inserted out of order; listing must come back in key order.
	for _, id := range []string{"p3", "p1", "p2"} {
		if err := s.PutProduct(ctx, &catalog.Product{ID: id, Name: id, CategoryID: "c"}); err != nil {
			t.Fatalf("PutProduct(%s): %v", id, err)
		}
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	want := []string{"p1", "p2", "p3"}
	if len(products) != len(want) {
		t.Fatalf("len = %d, want %d", len(products), len(want))
	}
	for i, id := range want {
		if products[i].ID != id {
			t.Errorf("products[%d].ID = %q, want %q", i, products[i].ID, id)
		}
	}
}

func TestSearchProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	products := []catalog.Product{
		{ID: "p1", Name: "Red Shoes", Description: "running shoes", CategoryID: "c"},
		{ID: "p2", Name: "Gaming Laptop", Description: "powerful laptop", CategoryID: "c"},
	}
	for i := range products {
		if err := s.PutProduct(ctx, &products[i]); err != nil {
			t.Fatalf("PutProduct: %v", err)
		}
	}

	got, err := s.SearchProducts(ctx, "SHOES")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("got %+v, want [p1]", got)
	}
}

func TestCreateUserUniqueUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &catalog.User{ID: "u1", Username: "alice", Name: "Alice"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Same username, different case, different ID.
	dup := &catalog.User{ID: "u2", Username: "Alice", Name: "Other Alice"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Errorf("CreateUser duplicate = %v, want ErrConflict", err)
	}

	got, err := s.GetUserByUsername(ctx, "ALICE")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("ID = %q, want u1", got.ID)
	}
}

func TestCreateRatingUniquePerUserAndProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := &catalog.Rating{ID: "r1", UserID: "u1", ProductID: "p1", Value: 5}
	if err := s.CreateRating(ctx, r); err != nil {
		t.Fatalf("CreateRating: %v", err)
	}

	dup := &catalog.Rating{ID: "r2", UserID: "u1", ProductID: "p1", Value: 1}
	if err := s.CreateRating(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Errorf("CreateRating duplicate = %v, want ErrConflict", err)
	}

	// Same user, different product is fine.
	other := &catalog.Rating{ID: "r3", UserID: "u1", ProductID: "p2", Value: 3}
	if err := s.CreateRating(ctx, other); err != nil {
		t.Errorf("CreateRating other product: %v", err)
	}

	ratings, err := s.ListRatingsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListRatingsByUser: %v", err)
	}
	if len(ratings) != 2 {
		t.Errorf("len = %d, want 2", len(ratings))
	}
}

func TestCartLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Missing cart reads as empty.
	cart, err := s.GetCart(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("new cart has %d items, want 0", len(cart.Items))
	}

	cart.Items = []catalog.CartItem{{ProductID: "p1", Quantity: 2}}
	if err := s.PutCart(ctx, cart); err != nil {
		t.Fatalf("PutCart: %v", err)
	}

	got, err := s.GetCart(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("got %+v, want one item with quantity 2", got.Items)
	}

	if err := s.DeleteCart(ctx, "u1"); err != nil {
		t.Fatalf("DeleteCart: %v", err)
	}
	got, err = s.GetCart(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCart after delete: %v", err)
	}
	if len(got.Items) != 0 {
		t.Errorf("cart not empty after delete: %+v", got.Items)
	}
}

func TestOrdersByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orders := []catalog.Order{
		{ID: "o1", Reference: "REF_AAAABBBBCCCC", UserID: "u1", Items: []catalog.OrderItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}}, Total: 10, Status: catalog.OrderPlaced},
		{ID: "o2", Reference: "REF_DDDDEEEEFFFF", UserID: "u2", Items: []catalog.OrderItem{{ProductID: "p2", Quantity: 1, UnitPrice: 20}}, Total: 20, Status: catalog.OrderPlaced},
	}
	for i := range orders {
		if err := s.CreateOrder(ctx, &orders[i]); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}

	got, err := s.ListOrdersByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListOrdersByUser: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o1" {
		t.Errorf("got %+v, want [o1]", got)
	}
}

// storeOpSamples reads the histogram sample count for one operation label.
func storeOpSamples(t *testing.T, operation string) uint64 {
	t.Helper()
	obs, err := metrics.StoreOperationDuration.GetMetricWithLabelValues(operation)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%q): %v", operation, err)
	}
	var m dto.Metric
	if err := obs.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestOperationsRecordDuration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	putBefore := storeOpSamples(t, "put")
	getBefore := storeOpSamples(t, "get")
	scanBefore := storeOpSamples(t, "scan")

	p := &catalog.Product{ID: "p1", Name: "Red Shoes", CategoryID: "footwear", DiscountType: catalog.DiscountNone}
	if err := s.PutProduct(ctx, p); err != nil {
		t.Fatalf("PutProduct: %v", err)
	}
	if _, err := s.GetProduct(ctx, "p1"); err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if _, err := s.ListProducts(ctx); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}

	if got := storeOpSamples(t, "put"); got <= putBefore {
		t.Errorf("put samples = %d, want > %d", got, putBefore)
	}
	if got := storeOpSamples(t, "get"); got <= getBefore {
		t.Errorf("get samples = %d, want > %d", got, getBefore)
	}
	if got := storeOpSamples(t, "scan"); got <= scanBefore {
		t.Errorf("scan samples = %d, want > %d", got, scanBefore)
	}
}

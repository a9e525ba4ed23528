// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newTestContentRecommender(t *testing.T) *ContentRecommender {
	t.Helper()
	r, err := NewContentRecommender(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewContentRecommender: %v", err)
	}
	return r
}

func TestMoreLikeThisIgnoresCategoryAndPrice(t *testing.T) {
	r := newTestContentRecommender(t)

	// p2 shares vocabulary with p1 despite a different category and a far
	// higher price; it must still rank first.
	snapshot := []Product{
		{ID: "p1", Name: "Trail Shoes", Description: "lightweight trail running shoes", CategoryID: "footwear", SellingPrice: 60},
		{ID: "p2", Name: "Trail Running Pack", Description: "lightweight pack for trail running", CategoryID: "outdoor", SellingPrice: 900},
		{ID: "p3", Name: "Desk Lamp", Description: "adjustable desk lamp", CategoryID: "home", SellingPrice: 60},
	}

	got, err := r.MoreLikeThis(context.Background(), snapshot, "p1", 0)
	if err != nil {
		t.Fatalf("MoreLikeThis: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Product.ID != "p2" {
		t.Errorf("top result = %q, want p2", got[0].Product.ID)
	}
	if got[1].Score != 0 {
		t.Errorf("disjoint vocabulary score = %f, want 0", got[1].Score)
	}
}

func TestMoreLikeThisTopNTruncates(t *testing.T) {
	r := newTestContentRecommender(t)

	got, err := r.MoreLikeThis(context.Background(), testSnapshot(), "p1", 1)
	if err != nil {
		t.Fatalf("MoreLikeThis: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Product.ID != "p2" {
		t.Errorf("top result = %q, want p2", got[0].Product.ID)
	}
}

func TestMoreLikeThisUnknownTarget(t *testing.T) {
	r := newTestContentRecommender(t)

	_, err := r.MoreLikeThis(context.Background(), testSnapshot(), "missing", 3)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nf.ProductID != "missing" {
		t.Errorf("ProductID = %q, want missing", nf.ProductID)
	}
}

func TestMoreLikeThisInvalidInput(t *testing.T) {
	r := newTestContentRecommender(t)

	var ii *InvalidInputError
	if _, err := r.MoreLikeThis(context.Background(), testSnapshot(), "", 3); !errors.As(err, &ii) {
		t.Errorf("empty id: error = %v, want *InvalidInputError", err)
	}
	if _, err := r.MoreLikeThis(context.Background(), testSnapshot(), "p1", -2); !errors.As(err, &ii) {
		t.Errorf("negative top_n: error = %v, want *InvalidInputError", err)
	}
}

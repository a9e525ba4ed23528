// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package collaborative

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func newTestPredictor(t *testing.T) *Predictor {
	t.Helper()
	p, err := NewPredictor(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPredictor: %v", err)
	}
	return p
}

func testRatings() []Rating {
	return []Rating{
		{UserID: "alice", ProductID: "i1", Value: 5},
		{UserID: "alice", ProductID: "i2", Value: 3},
		{UserID: "bob", ProductID: "i1", Value: 5},
		{UserID: "bob", ProductID: "i2", Value: 3},
		{UserID: "bob", ProductID: "i3", Value: 5},
		{UserID: "carol", ProductID: "i1", Value: 1},
		{UserID: "carol", ProductID: "i3", Value: 2},
	}
}

func TestTopNWeightedNeighborAverage(t *testing.T) {
	p := newTestPredictor(t)

	// Alice's only unrated product is i3. Bob and Carol both co-rate with
	// her at similarity 1, so the prediction is the plain average of their
	// i3 ratings.
	got, err := p.TopN(context.Background(), testRatings(), "alice", 0)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ProductID != "i3" {
		t.Errorf("ProductID = %q, want i3", got[0].ProductID)
	}
	if math.Abs(got[0].Score-3.5) > 1e-9 {
		t.Errorf("Score = %f, want 3.5", got[0].Score)
	}
}

func TestTopNColdUserGetsGlobalMeans(t *testing.T) {
	p := newTestPredictor(t)

	got, err := p.TopN(context.Background(), testRatings(), "dave", 0)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}

	// i1 mean 11/3, i3 mean 3.5, i2 mean 3.
	want := []Prediction{
		{ProductID: "i1", Score: 3.67},
		{ProductID: "i3", Score: 3.5},
		{ProductID: "i2", Score: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopNColdUserDeterministic(t *testing.T) {
	p := newTestPredictor(t)

	first, err := p.TopN(context.Background(), testRatings(), "dave", 0)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	for run := 0; run < 5; run++ {
		got, err := p.TopN(context.Background(), testRatings(), "dave", 0)
		if err != nil {
			t.Fatalf("TopN run %d: %v", run, err)
		}
		for i := range first {
			if got[i] != first[i] {
				t.Fatalf("run %d diverged at %d: %+v vs %+v", run, i, got[i], first[i])
			}
		}
	}
}

func TestTopNEmptySnapshot(t *testing.T) {
	p := newTestPredictor(t)

	got, err := p.TopN(context.Background(), nil, "alice", 3)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestTopNSingleRating(t *testing.T) {
	p := newTestPredictor(t)

	ratings := []Rating{{UserID: "alice", ProductID: "i1", Value: 4}}

	// Another user sees the product's global mean, which is the one rating.
	got, err := p.TopN(context.Background(), ratings, "bob", 3)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != "i1" || got[0].Score != 4 {
		t.Errorf("got %+v, want [{i1 4}]", got)
	}

	// The rating user has nothing left to recommend.
	got, err = p.TopN(context.Background(), ratings, "alice", 3)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestTopNTieBreakOnProductID(t *testing.T) {
	p := newTestPredictor(t)

	ratings := []Rating{
		{UserID: "alice", ProductID: "b", Value: 3},
		{UserID: "alice", ProductID: "a", Value: 3},
	}

	got, err := p.TopN(context.Background(), ratings, "dave", 3)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(got) != 2 || got[0].ProductID != "a" || got[1].ProductID != "b" {
		t.Errorf("got %+v, want a before b", got)
	}
}

func TestTopNTruncates(t *testing.T) {
	p := newTestPredictor(t)

	got, err := p.TopN(context.Background(), testRatings(), "dave", 2)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestTopNInvalidInput(t *testing.T) {
	p := newTestPredictor(t)

	if _, err := p.TopN(context.Background(), testRatings(), "", 3); err == nil {
		t.Error("empty user_id: expected error")
	}
	if _, err := p.TopN(context.Background(), testRatings(), "alice", -1); err == nil {
		t.Error("negative top_n: expected error")
	}
	bad := []Rating{{UserID: "alice", ProductID: "i1", Value: 6}}
	if _, err := p.TopN(context.Background(), bad, "alice", 3); err == nil {
		t.Error("out-of-range rating: expected error")
	}
}

func TestBuildModelDuplicateOverwrites(t *testing.T) {
	m := buildModel([]Rating{
		{UserID: "alice", ProductID: "i1", Value: 2},
		{UserID: "alice", ProductID: "i1", Value: 4},
	})

	if got := m.users["alice"]["i1"]; got != 4 {
		t.Errorf("rating = %f, want 4 (last write wins)", got)
	}
	if got := m.productMeans["i1"]; got != 4 {
		t.Errorf("mean = %f, want 4", got)
	}
}

func TestCosineOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b map[string]float64
		want float64
	}{
		{
			name: "identical over overlap",
			a:    map[string]float64{"i1": 5, "i2": 3},
			b:    map[string]float64{"i1": 5, "i2": 3, "i3": 1},
			want: 1,
		},
		{
			name: "no overlap",
			a:    map[string]float64{"i1": 5},
			b:    map[string]float64{"i2": 3},
			want: 0,
		},
		{
			name: "single co-rated product",
			a:    map[string]float64{"i1": 5},
			b:    map[string]float64{"i1": 1},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineOverlap(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineOverlap = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEvaluateReproducible(t *testing.T) {
	p := newTestPredictor(t)

	r1, n1, ok1 := p.evaluate(testRatings())
	r2, n2, ok2 := p.evaluate(testRatings())
	if ok1 != ok2 || n1 != n2 || r1 != r2 {
		t.Errorf("evaluate not reproducible: (%f,%d,%v) vs (%f,%d,%v)", r1, n1, ok1, r2, n2, ok2)
	}
}

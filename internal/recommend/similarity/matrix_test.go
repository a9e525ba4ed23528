// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package similarity

import (
	"math"
	"testing"
)

func TestMatrixSetSymmetric(t *testing.T) {
	m := NewMatrix(3)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			m.set(i, j, float64(i*3+j))
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("At(%d,%d) = %f, At(%d,%d) = %f, want symmetric",
					i, j, m.At(i, j), j, i, m.At(j, i))
			}
		}
	}
	if got := m.At(1, 2); got != 5 {
		t.Errorf("At(1,2) = %f, want 5", got)
	}
}

func TestCategoryMatrix(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		i, j       int
		want       float64
	}{
		{"same category", []string{"footwear", "footwear", "electronics"}, 0, 1, 1},
		{"different category", []string{"footwear", "footwear", "electronics"}, 0, 2, 0},
		{"diagonal", []string{"footwear", "footwear", "electronics"}, 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Category(tt.categories)
			if got := m.At(tt.i, tt.j); got != tt.want {
				t.Errorf("At(%d,%d) = %f, want %f", tt.i, tt.j, got, tt.want)
			}
			if got := m.At(tt.j, tt.i); got != tt.want {
				t.Errorf("At(%d,%d) = %f, want %f (symmetry)", tt.j, tt.i, got, tt.want)
			}
		})
	}
}

func TestPriceMatrix(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		i, j   int
		want   float64
	}{
		{"extremes of the range", []float64{0, 100, 50}, 0, 1, 0},
		{"midpoint to extreme", []float64{0, 100, 50}, 0, 2, 0.5},
		{"diagonal", []float64{0, 100, 50}, 1, 1, 1},
		{"identical prices normalize to 0.5", []float64{30, 30}, 0, 1, 1},
		{"single product", []float64{99.5}, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Price(tt.prices)
			if got := m.At(tt.i, tt.j); math.Abs(got-tt.want) > epsilon {
				t.Errorf("At(%d,%d) = %f, want %f", tt.i, tt.j, got, tt.want)
			}
		})
	}
}

func TestNormalizePricesAllEqual(t *testing.T) {
	norm := normalizePrices([]float64{42, 42, 42})
	for i, v := range norm {
		if v != 0.5 {
			t.Errorf("norm[%d] = %f, want 0.5", i, v)
		}
	}
}

func TestFuse(t *testing.T) {
	a := Category([]string{"x", "x"})    // all ones
	b := Price([]float64{10, 20})        // 1 on diagonal, 0 off-diagonal
	fused := Fuse([]*Matrix{a, b}, []float64{0.3, 0.2})

	if got := fused.At(0, 0); math.Abs(got-0.5) > epsilon {
		t.Errorf("At(0,0) = %f, want 0.5", got)
	}
	if got := fused.At(0, 1); math.Abs(got-0.3) > epsilon {
		t.Errorf("At(0,1) = %f, want 0.3", got)
	}
}

func TestFuseSkipsZeroWeights(t *testing.T) {
	a := Category([]string{"x", "y"})
	fused := Fuse([]*Matrix{a}, []float64{0})

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if fused.At(i, j) != 0 {
				t.Errorf("At(%d,%d) = %f, want 0", i, j, fused.At(i, j))
			}
		}
	}
}

func TestFuseEmpty(t *testing.T) {
	fused := Fuse(nil, nil)
	if fused.Dim() != 0 {
		t.Errorf("Dim() = %d, want 0", fused.Dim())
	}
}

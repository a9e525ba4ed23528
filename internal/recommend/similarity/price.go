// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package similarity

import "math"

// Price builds a proximity matrix over selling prices. Prices are min-max
// normalized to [0,1] across the snapshot; entry (i,j) is
// 1 - |norm(i) - norm(j)|.
//
// When every price is identical the normalized value is defined as 0.5 for
// all products, so the matrix degenerates to all-ones instead of dividing
// by zero.
func Price(prices []float64) *Matrix {
	n := len(prices)
	m := NewMatrix(n)
	norm := normalizePrices(prices)

	for i := 0; i < n; i++ {
		m.set(i, i, 1)
		for j := i + 1; j < n; j++ {
			m.set(i, j, 1-math.Abs(norm[i]-norm[j]))
		}
	}

	return m
}

// normalizePrices rescales prices to [0,1] using the observed min and max.
func normalizePrices(prices []float64) []float64 {
	norm := make([]float64, len(prices))
	if len(prices) == 0 {
		return norm
	}

	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}

	span := maxPrice - minPrice
	for i, p := range prices {
		if span == 0 {
			norm[i] = 0.5
			continue
		}
		norm[i] = (p - minPrice) / span
	}
	return norm
}

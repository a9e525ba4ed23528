// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package similarity

// Category builds a binary similarity matrix over category identifiers:
// entry (i,j) is 1 when products i and j share a category, else 0.
func Category(categories []string) *Matrix {
	n := len(categories)
	m := NewMatrix(n)

	for i := 0; i < n; i++ {
		m.set(i, i, 1)
		for j := i + 1; j < n; j++ {
			if categories[i] == categories[j] {
				m.set(i, j, 1)
			}
		}
	}

	return m
}

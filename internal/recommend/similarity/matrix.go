// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package similarity

// Matrix is a square, symmetric, real-valued similarity matrix indexed by
// product position in the snapshot. Entry (i,i) holds the maximum similarity
// value for the matrix's scale; it exists only so the target product can be
// excluded from its own recommendations and is never returned to callers.
type Matrix struct {
	n      int
	values []float64
}

// NewMatrix creates an n×n zero matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{
		n:      n,
		values: make([]float64, n*n),
	}
}

// Dim returns the matrix dimension.
func (m *Matrix) Dim() int {
	return m.n
}

// At returns the similarity between positions i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.values[i*m.n+j]
}

// set writes both (i,j) and (j,i) to keep the matrix symmetric.
func (m *Matrix) set(i, j int, v float64) {
	m.values[i*m.n+j] = v
	m.values[j*m.n+i] = v
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.values[i*m.n:(i+1)*m.n])
	return row
}

// Fuse combines matrices into a new matrix using per-matrix weights.
// All matrices must share the same dimension; weights and matrices are
// paired by index.
func Fuse(matrices []*Matrix, weights []float64) *Matrix {
	if len(matrices) == 0 {
		return NewMatrix(0)
	}

	fused := NewMatrix(matrices[0].n)
	for k, m := range matrices {
		w := weights[k]
		if w == 0 {
			continue
		}
		for idx, v := range m.values {
			fused.values[idx] += w * v
		}
	}
	return fused
}

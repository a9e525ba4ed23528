// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package similarity

import (
	"math"
	"strings"
	"unicode"
)

// Text builds a cosine-similarity matrix from TF-IDF document vectors.
//
// Each document is tokenized, lower-cased and stripped of stop words; term
// weights use smoothed inverse document frequency:
//
//	idf(t) = ln((1+N)/(1+df(t))) + 1
//
// Document vectors are L2-normalized, so the dot product of two vectors is
// their cosine similarity. Values fall in [0,1]; the diagonal is 1.
//
// A document with no non-stopword terms yields a zero vector: its similarity
// with every other document is 0, which is a valid outcome, not an error.
// Its diagonal entry is still 1, the maximum of the scale, so the target row
// exclusion works uniformly.
func Text(docs []string, stop StopWordSet) *Matrix {
	n := len(docs)
	m := NewMatrix(n)

	// Term counts per document and document frequency per term.
	counts := make([]map[string]float64, n)
	df := make(map[string]int)

	for i, doc := range docs {
		tf := make(map[string]float64)
		for _, term := range tokenize(doc, stop) {
			tf[term]++
		}
		counts[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	// TF-IDF weights, L2-normalized per document.
	vectors := make([]map[string]float64, n)
	for i, tf := range counts {
		vec := make(map[string]float64, len(tf))
		var norm float64
		for term, count := range tf {
			idf := math.Log(float64(1+n)/float64(1+df[term])) + 1
			w := count * idf
			vec[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}

	for i := 0; i < n; i++ {
		m.set(i, i, 1)
		for j := i + 1; j < n; j++ {
			m.set(i, j, dot(vectors[i], vectors[j]))
		}
	}

	return m
}

// tokenize lower-cases the text and splits it into terms of two or more
// letters or digits, dropping stop words.
func tokenize(text string, stop StopWordSet) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stop.Contains(f) {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// dot computes the dot product of two sparse vectors, iterating the smaller.
func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	var sum float64
	for term, va := range a {
		if vb, ok := b[term]; ok {
			sum += va * vb
		}
	}
	return sum
}

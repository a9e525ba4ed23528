// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package collaborative

import (
	"math"
	"math/rand"
)

// evaluate computes an RMSE diagnostic over a seeded holdout split.
//
// The snapshot is shuffled with the configured seed and HoldoutFraction of
// it is withheld; a model built from the remainder predicts each withheld
// rating. Returns false when the split leaves nothing to train on or
// nothing to score.
func (p *Predictor) evaluate(ratings []Rating) (rmse float64, holdout int, ok bool) {
	n := len(ratings)
	cut := int(math.Round(float64(n) * p.config.HoldoutFraction))
	if cut == 0 || cut == n {
		return 0, 0, false
	}

	perm := rand.New(rand.NewSource(p.config.Seed)).Perm(n) //nolint:gosec // reproducible split, not security
	train := make([]Rating, 0, n-cut)
	test := make([]Rating, 0, cut)
	for i, idx := range perm {
		if i < cut {
			test = append(test, ratings[idx])
		} else {
			train = append(train, ratings[idx])
		}
	}

	m := buildModel(train)

	var sumSq float64
	var scored int
	for _, r := range test {
		// Products unseen in the training split cannot be scored.
		if _, known := m.productMeans[r.ProductID]; !known {
			continue
		}
		neighbors := m.nearestNeighbors(r.UserID, p.config.K)
		diff := m.predict(neighbors, r.ProductID) - r.Value
		sumSq += diff * diff
		scored++
	}
	if scored == 0 {
		return 0, 0, false
	}

	return math.Sqrt(sumSq / float64(scored)), scored, true
}

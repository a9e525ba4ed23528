// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.CollectAndCount(HTTPRequestDuration)
	ObserveHTTPRequest("GET", "/api/v1/products", 200, 5*time.Millisecond)
	after := testutil.CollectAndCount(HTTPRequestDuration)
	if after <= before {
		t.Errorf("histogram series count did not grow: %d -> %d", before, after)
	}
}

func TestObserveRecommendErrorCounting(t *testing.T) {
	base := testutil.ToFloat64(RecommendErrors.WithLabelValues("related"))

	ObserveRecommend("related", time.Millisecond, nil)
	if got := testutil.ToFloat64(RecommendErrors.WithLabelValues("related")); got != base {
		t.Errorf("error counter moved on success: %f", got)
	}

	ObserveRecommend("related", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(RecommendErrors.WithLabelValues("related")); got != base+1 {
		t.Errorf("error counter = %f, want %f", got, base+1)
	}
}

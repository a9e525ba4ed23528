// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package metrics registers the service's Prometheus collectors and the
// helpers the handlers use to record them.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cartwise_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestsInFlight tracks concurrent in-flight requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cartwise_http_requests_in_flight",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// RecommendDuration tracks recommendation computation latency per kind.
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cartwise_recommend_duration_seconds",
			Help:    "Recommendation computation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"kind"}, // "related", "content", "collaborative"
	)

	// RecommendErrors counts failed recommendation computations per kind.
	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cartwise_recommend_errors_total",
			Help: "Total failed recommendation computations",
		},
		[]string{"kind"},
	)

	// StoreOperationDuration tracks store operation latency.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cartwise_store_operation_duration_seconds",
			Help:    "BadgerDB operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// AuthAttempts counts sign-in attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cartwise_auth_attempts_total",
			Help: "Total sign-in attempts by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	// OrdersPlaced counts completed checkouts.
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cartwise_orders_placed_total",
			Help: "Total orders placed",
		},
	)
)

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveStoreOperation records one store operation.
func ObserveStoreOperation(operation string, duration time.Duration) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveRecommend records one recommendation computation.
func ObserveRecommend(kind string, duration time.Duration, err error) {
	RecommendDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err != nil {
		RecommendErrors.WithLabelValues(kind).Inc()
	}
}

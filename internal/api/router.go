// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the service's route tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.HealthLive)
	r.Get("/readyz", h.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Metrics)

		// Auth endpoints are rate limited against brute force.
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(h.cfg.Security.AuthRateLimit, h.cfg.Security.AuthRateWindow))
			r.Post("/signup", h.SignUp)
			r.Post("/signin", h.SignIn)
		})

		// Public catalog and recommendation reads.
		r.Get("/products", h.ListProducts)
		r.Get("/products/search", h.SearchProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/products/{id}/related", h.RelatedProducts)
		r.Get("/products/{id}/similar", h.SimilarProducts)
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{id}/products", h.ListCategoryProducts)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(h.authMW.Require)

			r.Get("/home", h.Home)
			r.Post("/ratings", h.CreateRating)
			r.Get("/cart", h.GetCart)
			r.Put("/cart/items", h.PutCartItem)
			r.Delete("/cart/items/{productID}", h.RemoveCartItem)
			r.Delete("/cart", h.ClearCart)
			r.Post("/orders", h.Checkout)
			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{id}", h.GetOrder)
		})
	})

	return r
}

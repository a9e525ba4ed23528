// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import "net/http"

// HealthLive reports process liveness. It always succeeds while the
// process can serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// HealthReady reports readiness: the store must be open and readable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.store.Ping(); err != nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeStorageError, "store not ready")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}

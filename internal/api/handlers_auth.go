// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cartwise/cartwise/internal/auth"
	"github.com/cartwise/cartwise/internal/catalog"
	"github.com/cartwise/cartwise/internal/metrics"
	"github.com/cartwise/cartwise/internal/store"
	"github.com/cartwise/cartwise/internal/validation"
)

// signUpRequest is the sign-up request body.
type signUpRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Name     string `json:"name" validate:"required,max=100"`
}

// signUpResponse returns the generated sign-in code exactly once; only its
// hash is stored.
type signUpResponse struct {
	User catalog.User `json:"user"`
	Code string       `json:"code"`
}

// SignUp creates an account and returns its one-time-visible sign-in code.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("malformed request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			rw.ValidationError("invalid sign-up request", verrs.Fields)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	code, err := auth.GenerateCode()
	if err != nil {
		rw.InternalError("could not generate sign-in code")
		return
	}
	hash, err := auth.HashCode(code)
	if err != nil {
		rw.InternalError("could not hash sign-in code")
		return
	}

	user := catalog.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Name:      req.Name,
		CodeHash:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			rw.Conflict("username already taken")
			return
		}
		rw.StorageError(err)
		return
	}

	h.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user signed up")
	rw.Created(signUpResponse{User: user, Code: code})
}

// signInRequest is the sign-in request body.
type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code" validate:"required,signin_code"`
}

// signInResponse carries the session token.
type signInResponse struct {
	Token string       `json:"token"`
	User  catalog.User `json:"user"`
}

// SignIn verifies the sign-in code and issues a session token. Unknown
// usernames and wrong codes both answer 401 without distinguishing which.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("malformed request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			rw.ValidationError("invalid sign-in request", verrs.Fields)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthAttempts.WithLabelValues("failure").Inc()
			rw.Unauthorized("invalid credentials")
			return
		}
		rw.StorageError(err)
		return
	}

	if !auth.VerifyCode(user.CodeHash, req.Code) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		rw.Unauthorized("invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		rw.InternalError("could not issue token")
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	h.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	rw.Success(signInResponse{Token: token, User: *user})
}

// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if len(code) != CodeLength {
		t.Errorf("len = %d, want %d", len(code), CodeLength)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Errorf("code %q contains non-digit %q", code, r)
		}
	}
}

func TestHashAndVerifyCode(t *testing.T) {
	hash, err := HashCode("123456")
	if err != nil {
		t.Fatalf("HashCode: %v", err)
	}
	if !VerifyCode(hash, "123456") {
		t.Error("correct code rejected")
	}
	if VerifyCode(hash, "654321") {
		t.Error("wrong code accepted")
	}
}

func TestTokenManagerSecretLength(t *testing.T) {
	if _, err := NewTokenManager("short", time.Hour); err == nil {
		t.Error("short secret accepted")
	}
	if _, err := NewTokenManager(testSecret, 0); err == nil {
		t.Error("zero ttl accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := m.Issue("u1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" {
		t.Errorf("claims = %+v, want u1/alice", claims)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	other, err := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := other.Issue("u1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Error("token signed with different secret accepted")
	}
	if _, err := m.Verify("not.a.token"); err == nil {
		t.Error("malformed token accepted")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Millisecond)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := m.Issue("u1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := m.Verify(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestMiddlewareRequire(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	mw := NewMiddleware(m)

	var gotUserID string
	handler := mw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader func() string
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: func() string { tok, _ := m.Issue("u1", "alice"); return "Bearer " + tok },
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: func() string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: func() string { tok, _ := m.Issue("u1", "alice"); return "Basic " + tok },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: func() string { return "Bearer garbage" },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tt.authHeader(); h != "" {
				req.Header.Set("Authorization", h)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != "u1" {
				t.Errorf("user id = %q, want u1", gotUserID)
			}
		})
	}
}

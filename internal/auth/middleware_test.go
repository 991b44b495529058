// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateDisabledPassesThrough(t *testing.T) {
	mw := NewMiddleware(nil, false)
	rec := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/notes", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuthenticateRejectsWithEnvelope(t *testing.T) {
	m, _ := newTestManager(t, "test-secret")
	mw := NewMiddleware(m, true)
	handler := mw.Authenticate(okHandler())

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing token", "", ReasonNotFound},
		{"malformed token", "Bearer junk", ReasonInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/notes", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body struct {
				Status  bool   `json:"status"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
			}
			if body.Status {
				t.Error("status must be false")
			}
			if body.Message != tt.want {
				t.Errorf("message = %q, want %q", body.Message, tt.want)
			}
		})
	}
}

func TestAuthenticateAcceptsIssuedToken(t *testing.T) {
	m, _ := newTestManager(t, "test-secret")
	mw := NewMiddleware(m, true)
	handler := mw.Authenticate(okHandler())

	key, err := m.IssueToken(context.Background(), "ci", nil)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	for _, header := range []string{"Authorization", "authtoken"} {
		r := httptest.NewRequest("GET", "/api/notes", nil)
		r.Header.Set(header, key.Token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Errorf("%s header: status = %d, want 200", header, rec.Code)
		}
	}
}

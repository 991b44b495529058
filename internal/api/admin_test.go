// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/crewdesk/crewdesk-api/internal/auth"
	"github.com/crewdesk/crewdesk-api/internal/config"
	"github.com/crewdesk/crewdesk-api/internal/database"
)

const (
	testAdminKey = "admin-test-key"
	testSecret   = "signing-test-secret"
)

func newAuthedRouter(t *testing.T) (*chi.Mux, *database.DB) {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	cfg.Auth.Secret = testSecret
	cfg.Auth.AdminKey = testAdminKey
	cfg.API.RateLimitPerMinute = 0

	keys, err := auth.NewManager(db, testSecret)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	router, err := NewRouter(NewHandler(db, cfg), auth.NewMiddleware(keys, true), keys)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	return router, db
}

func doAuthed(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestAdminKeyRequired(t *testing.T) {
	router, _ := newAuthedRouter(t)

	rec := doAuthed(t, router, "GET", "/restapi/keys", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key status = %d, want 401", rec.Code)
	}

	rec = doAuthed(t, router, "GET", "/restapi/keys", "wrong-key", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key status = %d, want 401", rec.Code)
	}
}

func TestAdminKeyUnconfigured(t *testing.T) {
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	cfg.Auth.Enabled = false
	cfg.API.RateLimitPerMinute = 0

	router, err := NewRouter(NewHandler(db, cfg), auth.NewMiddleware(nil, false), nil)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	rec := doAuthed(t, router, "GET", "/restapi/keys", "anything", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 while no admin key is configured", rec.Code)
	}
}

func TestKeyLifecycleAndTokenAuth(t *testing.T) {
	router, _ := newAuthedRouter(t)

	// Resources are closed without a token.
	rec := doAuthed(t, router, "GET", "/api/notes", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", rec.Code)
	}
	if body := decodeObject(t, rec); body["message"] != "Token not found" {
		t.Errorf("message = %v, want Token not found", body["message"])
	}

	// Validation errors on key creation use the field-error envelope.
	rec = doAuthed(t, router, "POST", "/restapi/keys", testAdminKey, `{"expires_at":"2030-01-01 00:00:00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("nameless key status = %d, want 400", rec.Code)
	}

	rec = doAuthed(t, router, "POST", "/restapi/keys", testAdminKey, `{"name":"ci"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create key status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeObject(t, rec)
	token, _ := created["token"].(string)
	if token == "" {
		t.Fatalf("create key response has no token: %s", rec.Body.String())
	}
	keyID, _ := created["id"].(float64)
	if keyID < 1 {
		t.Fatalf("create key response has no id: %s", rec.Body.String())
	}

	// The issued token opens the resources.
	rec = doAuthed(t, router, "POST", "/api/notes", token, `{"title":"Meeting notes"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create note status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doAuthed(t, router, "GET", "/restapi/keys", testAdminKey, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list keys status = %d, body %s", rec.Code, rec.Body.String())
	}
	if keys := decodeArray(t, rec); len(keys) != 1 {
		t.Errorf("listed %d keys, want 1", len(keys))
	}

	// Revocation locks the token out immediately.
	rec = doAuthed(t, router, "DELETE", fmt.Sprintf("/restapi/keys/%d", int64(keyID)), testAdminKey, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("revoke status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doAuthed(t, router, "GET", "/api/notes", token, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token status = %d, want 401", rec.Code)
	}
	if body := decodeObject(t, rec); body["message"] != "Token not found" {
		t.Errorf("message = %v, want Token not found", body["message"])
	}
}

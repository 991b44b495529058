// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk-api/internal/database"
)

func newTestManager(t *testing.T, secret string) (*Manager, *database.DB) {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := NewManager(db, secret)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m, db
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var authErr *Error
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	return authErr.Reason
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(nil, ""); err == nil {
		t.Error("expected an error for an empty secret")
	}
}

func TestIssueAndValidate(t *testing.T) {
	m, _ := newTestManager(t, "test-secret")
	ctx := context.Background()

	key, err := m.IssueToken(ctx, "ci", nil)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if key.ID < 1 || key.Token == "" {
		t.Fatalf("unexpected key: %+v", key)
	}

	if err := m.ValidateToken(ctx, key.Token); err != nil {
		t.Errorf("ValidateToken() error = %v, want nil", err)
	}
}

func TestValidateFailureReasons(t *testing.T) {
	m, db := newTestManager(t, "test-secret")
	ctx := context.Background()

	if got := reasonOf(t, m.ValidateToken(ctx, "")); got != ReasonNotFound {
		t.Errorf("empty token reason = %q, want %q", got, ReasonNotFound)
	}
	if got := reasonOf(t, m.ValidateToken(ctx, "not-a-jwt")); got != ReasonInvalid {
		t.Errorf("malformed token reason = %q, want %q", got, ReasonInvalid)
	}

	// A well-formed token signed with a different secret.
	other, _ := newTestManager(t, "other-secret")
	foreign, err := other.IssueToken(ctx, "foreign", nil)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if got := reasonOf(t, m.ValidateToken(ctx, foreign.Token)); got != ReasonInvalid {
		t.Errorf("wrong-secret token reason = %q, want %q", got, ReasonInvalid)
	}

	// Expired when the token carries a past exp claim.
	past := time.Now().Add(-time.Hour)
	expired, err := m.IssueToken(ctx, "expired", &past)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if got := reasonOf(t, m.ValidateToken(ctx, expired.Token)); got != ReasonExpired {
		t.Errorf("expired token reason = %q, want %q", got, ReasonExpired)
	}

	// A valid signature without a stored row is not found.
	key, err := m.IssueToken(ctx, "revoked", nil)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if err := db.RevokeAPIKey(ctx, key.ID); err != nil {
		t.Fatalf("RevokeAPIKey() error = %v", err)
	}
	if got := reasonOf(t, m.ValidateToken(ctx, key.Token)); got != ReasonNotFound {
		t.Errorf("revoked token reason = %q, want %q", got, ReasonNotFound)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		authtoken     string
		want          string
	}{
		{"bearer", "Bearer abc.def.ghi", "", "abc.def.ghi"},
		{"bearer lowercase", "bearer abc", "", "abc"},
		{"raw authorization", "abc.def.ghi", "", "abc.def.ghi"},
		{"authtoken fallback", "", "abc", "abc"},
		{"authorization wins", "Bearer first", "second", "first"},
		{"whitespace", "  Bearer abc  ", "", "abc"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractToken(tt.authorization, tt.authtoken); got != tt.want {
				t.Errorf("ExtractToken(%q, %q) = %q, want %q", tt.authorization, tt.authtoken, got, tt.want)
			}
		})
	}
}

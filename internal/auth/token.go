// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

// Package auth implements API token issuance and verification.
//
// Tokens are signed JWTs (HS256) that must also exist, undeleted and
// unexpired, in the persisted api_keys store. Revoking a key therefore takes
// effect immediately even though the signature stays valid.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/crewdesk/crewdesk-api/internal/database"
	"github.com/crewdesk/crewdesk-api/internal/logging"
)

// Failure reasons surfaced to callers in the auth envelope.
const (
	ReasonNotFound = "Token not found"
	ReasonInvalid  = "Invalid token"
	ReasonExpired  = "Token has expired"
)

// Error is an authentication failure with a caller-facing reason.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// KeyStore is the persistence surface the manager needs. Implemented by
// *database.DB.
type KeyStore interface {
	CreateAPIKey(ctx context.Context, key *database.APIKey) (int64, error)
	ListAPIKeys(ctx context.Context) ([]database.APIKey, error)
	FindAPIKeyByToken(ctx context.Context, token string) (*database.APIKey, error)
	RevokeAPIKey(ctx context.Context, id int64) error
}

// Manager issues and validates API tokens against the key store.
type Manager struct {
	store  KeyStore
	secret []byte
}

// NewManager creates a token manager signing with the given secret.
func NewManager(store KeyStore, secret string) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("auth secret must not be empty")
	}
	return &Manager{store: store, secret: []byte(secret)}, nil
}

// IssueToken signs a new token, records it in the store and returns the key
// row with the signed token string. A nil expiry issues a non-expiring token.
func (m *Manager) IssueToken(ctx context.Context, name string, expiresAt *time.Time) (*database.APIKey, error) {
	claims := jwt.MapClaims{
		"name": name,
		"iat":  jwt.NewNumericDate(time.Now()),
		"jti":  uuid.NewString(),
	}
	if expiresAt != nil {
		claims["exp"] = jwt.NewNumericDate(*expiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	key := &database.APIKey{
		Name:      name,
		Token:     signed,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	id, err := m.store.CreateAPIKey(ctx, key)
	if err != nil {
		return nil, err
	}
	key.ID = id

	logging.Info().Int64("key_id", id).Str("name", name).Msg("API key issued")
	return key, nil
}

// ValidateToken verifies a raw token string. A failure is always an *Error
// carrying one of the fixed reasons; any other error is a store failure.
func (m *Manager) ValidateToken(ctx context.Context, raw string) error {
	if raw == "" {
		return &Error{Reason: ReasonNotFound}
	}

	_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return &Error{Reason: ReasonExpired}
		}
		return &Error{Reason: ReasonInvalid}
	}

	key, err := m.store.FindAPIKeyByToken(ctx, raw)
	if errors.Is(err, database.ErrAPIKeyNotFound) {
		return &Error{Reason: ReasonNotFound}
	}
	if err != nil {
		return err
	}
	if key.ExpiresAt != nil && time.Now().After(*key.ExpiresAt) {
		return &Error{Reason: ReasonExpired}
	}
	return nil
}

// ExtractToken pulls the token from a request's headers. The Authorization
// header is preferred, with or without the Bearer prefix; the legacy
// authtoken header is accepted as a fallback.
func ExtractToken(authorization, authtoken string) string {
	header := strings.TrimSpace(authorization)
	if header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return header
	}
	return strings.TrimSpace(authtoken)
}

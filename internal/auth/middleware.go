// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package auth

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/crewdesk/crewdesk-api/internal/logging"
	"github.com/crewdesk/crewdesk-api/internal/models"
)

// Middleware authenticates every request passing through it. There is no
// per-route bypass: a failed check short-circuits before any handler runs.
type Middleware struct {
	manager *Manager
	enabled bool
}

// NewMiddleware creates the authenticator. When enabled is false the
// middleware passes every request through; intended for tests and embedded
// setups only.
func NewMiddleware(manager *Manager, enabled bool) *Middleware {
	return &Middleware{manager: manager, enabled: enabled}
}

// Authenticate validates the request token and rejects the request with the
// fixed auth envelope when it is missing, invalid or expired.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		token := ExtractToken(r.Header.Get("Authorization"), r.Header.Get("authtoken"))
		if err := m.manager.ValidateToken(r.Context(), token); err != nil {
			reason := ReasonNotFound
			var authErr *Error
			if errors.As(err, &authErr) {
				reason = authErr.Reason
			} else {
				logging.Error().Err(err).Msg("Token lookup failed")
			}
			writeAuthFailure(w, reason)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeAuthFailure writes the fixed short-circuit body used for every
// authentication failure.
func writeAuthFailure(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	body, err := json.Marshal(&models.AuthFailure{Message: reason})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal auth failure")
		return
	}
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write auth failure")
	}
}

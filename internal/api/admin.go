// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewdesk/crewdesk-api/internal/auth"
	"github.com/crewdesk/crewdesk-api/internal/models"
	"github.com/crewdesk/crewdesk-api/internal/validation"
)

// adminHandler serves the /restapi key-management endpoints: issuing,
// listing and revoking the API tokens the authenticator checks.
type adminHandler struct {
	h    *Handler
	keys *auth.Manager
}

// mount registers the key-management routes behind the admin-key check.
func (a *adminHandler) mount(r chi.Router) {
	r.Use(a.requireAdminKey)
	r.Get("/keys", a.ListKeys)
	r.Post("/keys", a.CreateKey)
	r.Delete("/keys/{id}", a.RevokeKey)
}

// requireAdminKey guards key management with the configured admin key. The
// endpoints stay closed until auth.admin_key is set.
func (a *adminHandler) requireAdminKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminKey := a.h.cfg.Auth.AdminKey
		if adminKey == "" {
			respondFailure(w, http.StatusForbidden, "Admin key is not configured")
			return
		}
		provided := auth.ExtractToken(r.Header.Get("Authorization"), r.Header.Get("authtoken"))
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			respondJSON(w, http.StatusUnauthorized, &models.AuthFailure{Message: auth.ReasonNotFound})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListKeys returns all live API keys, token values included.
func (a *adminHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := a.h.db.ListAPIKeys(r.Context())
	if err != nil {
		respondStoreError(w, msgNoData, err)
		return
	}
	if len(keys) == 0 {
		respondFailure(w, http.StatusNotFound, msgNoData)
		return
	}

	records := make([]models.Record, 0, len(keys))
	for _, key := range keys {
		record := models.Record{
			"id":         strconv.FormatInt(key.ID, 10),
			"name":       key.Name,
			"token":      key.Token,
			"created_at": key.CreatedAt.Format("2006-01-02 15:04:05"),
			"expires_at": nil,
		}
		if key.ExpiresAt != nil {
			record["expires_at"] = key.ExpiresAt.Format("2006-01-02 15:04:05")
		}
		records = append(records, record)
	}
	respondJSON(w, http.StatusOK, records)
}

// CreateKey issues and stores a new signed token. The token string is
// returned once in the response body.
func (a *adminHandler) CreateKey(w http.ResponseWriter, r *http.Request) {
	if a.keys == nil {
		respondFailure(w, http.StatusForbidden, "Token signing is not configured")
		return
	}

	payload := parsePayload(r)
	rules := validation.RuleSet{
		"name":       "required",
		"expires_at": "valid_date[Y-m-d H:i:s]|if_exist",
	}
	if errs := validation.Validate(payload, rules, nil); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	var expiresAt *time.Time
	if payload.Has("expires_at") {
		t, err := time.Parse("2006-01-02 15:04:05", validation.Stringify(payload["expires_at"]))
		if err == nil {
			expiresAt = &t
		}
	}

	key, err := a.keys.IssueToken(r.Context(), validation.Stringify(payload["name"]), expiresAt)
	if err != nil {
		respondStoreError(w, "API key add fail", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"status":   200,
		"messages": map[string]string{"success": "API key add success"},
		"id":       key.ID,
		"token":    key.Token,
	})
}

// RevokeKey soft-deletes an issued key; the token stops working immediately.
func (a *adminHandler) RevokeKey(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondFailure(w, http.StatusNotFound, "Invalid API key ID")
		return
	}
	if err := a.h.db.RevokeAPIKey(r.Context(), id); err != nil {
		respondFailure(w, http.StatusBadRequest, "API key delete fail")
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess("API key delete success"))
}

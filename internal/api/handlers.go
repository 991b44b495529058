// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

// Package api wires the HTTP surface: request normalization, the generic
// resource handler driven by entity descriptors, the router and the response
// envelopes.
package api

import (
	"github.com/crewdesk/crewdesk-api/internal/config"
	"github.com/crewdesk/crewdesk-api/internal/database"
)

// Handler bundles the dependencies shared by every endpoint.
type Handler struct {
	db  *database.DB
	cfg *config.Config
}

// NewHandler creates the shared handler state.
func NewHandler(db *database.DB, cfg *config.Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}

// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"context"
	"strconv"

	"github.com/crewdesk/crewdesk-api/internal/logging"
	"github.com/crewdesk/crewdesk-api/internal/validation"
)

// resolveCreatedBy resolves the user id recorded as the creator of a new
// record. The posted created_by is used when it identifies an existing user;
// anything else (absent, non-numeric, below 1, unknown user) falls back to
// the configured default identity. The write is never rejected over a bad
// attribution value.
func (h *Handler) resolveCreatedBy(ctx context.Context, payload Payload) int64 {
	fallback := h.cfg.API.DefaultAttributionUserID

	raw, ok := payload["created_by"]
	if !ok {
		return fallback
	}

	id, err := strconv.ParseInt(validation.Stringify(raw), 10, 64)
	if err != nil || id < 1 {
		logging.Debug().Str("created_by", sanitizeLogValue(validation.Stringify(raw))).
			Msg("Invalid created_by, using fallback identity")
		return fallback
	}

	exists, err := h.db.Exists(ctx, "users", map[string]any{"id": id})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to resolve created_by user")
		return fallback
	}
	if !exists {
		logging.Debug().Int64("created_by", id).Msg("Unknown created_by user, using fallback identity")
		return fallback
	}
	return id
}

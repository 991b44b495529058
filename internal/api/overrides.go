// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewdesk/crewdesk-api/internal/database"
	"github.com/crewdesk/crewdesk-api/internal/validation"
)

// deleteClientCascade is the clients delete hook: the client and its
// dependent sub-records are removed together.
func deleteClientCascade(ctx context.Context, h *Handler, id int64) error {
	exists, err := h.db.Exists(ctx, "clients", map[string]any{"id": id, "is_lead": 0})
	if err != nil {
		return err
	}
	if !exists {
		return database.ErrRecordNotFound
	}
	return h.db.DeleteClientCascade(ctx, id)
}

// hashUserPassword is the users mutate hook: a posted plaintext password is
// stored bcrypt-hashed. An absent password leaves the stored hash untouched.
func hashUserPassword(_ *Handler, payload Payload, fields map[string]any) error {
	if !payload.Has("password") {
		return nil
	}
	plain := validation.Stringify(payload["password"])
	if plain == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fields["password"] = string(hash)
	return nil
}

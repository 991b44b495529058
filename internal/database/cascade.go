// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package database

import (
	"context"
	"fmt"

	"github.com/crewdesk/crewdesk-api/internal/logging"
)

// clientDependentTables lists tables whose rows belong to a client and must
// be soft-deleted together with it.
var clientDependentTables = []string{
	"notes",
	"projects",
	"invoices",
	"estimates",
	"proposals",
	"orders",
	"contracts",
	"tickets",
	"events",
	"expenses",
	"users",
}

// DeleteClientCascade soft-deletes a client and all of its dependent
// sub-records (contacts, notes, projects, invoices and so on) in one
// transaction. Returns ErrRecordNotFound when the client is missing or
// already deleted.
func (db *DB) DeleteClientCascade(ctx context.Context, clientID int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin client delete: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, "UPDATE clients SET deleted = 1 WHERE id = ? AND deleted = 0", clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read client delete result: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	for _, table := range clientDependentTables {
		query := "UPDATE " + table + " SET deleted = 1 WHERE client_id = ? AND deleted = 0"
		if _, err := tx.ExecContext(ctx, query, clientID); err != nil {
			return fmt.Errorf("failed to delete client %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit client delete: %w", err)
	}

	logging.Info().Int64("client_id", clientID).Msg("Client and sub-items deleted")
	return nil
}

// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrAPIKeyNotFound is returned when a token has no live api_keys row.
var ErrAPIKeyNotFound = errors.New("api key not found")

// APIKey is an issued API token recorded in the settings store. The Token
// column holds the signed token string; validation checks both the signature
// and the presence of a live row.
type APIKey struct {
	ID        int64
	Name      string
	Token     string
	ExpiresAt *time.Time
	CreatedAt time.Time
	Deleted   bool
}

const timeLayout = "2006-01-02 15:04:05"

// CreateAPIKey stores an issued key and returns its id.
func (db *DB) CreateAPIKey(ctx context.Context, key *APIKey) (int64, error) {
	var expires any
	if key.ExpiresAt != nil {
		expires = key.ExpiresAt.UTC().Format(timeLayout)
	}
	created := key.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := db.conn.ExecContext(ctx,
		"INSERT INTO api_keys (name, token, expires_at, created_at) VALUES (?, ?, ?, ?)",
		key.Name, key.Token, expires, created.Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to create api key: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new api key id: %w", err)
	}
	return id, nil
}

// ListAPIKeys returns all live keys, newest first. Token values are included;
// callers decide whether to redact them.
func (db *DB) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name, token, expires_at, created_at, deleted FROM api_keys WHERE deleted = 0 ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	var keys []APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate api keys: %w", err)
	}
	return keys, nil
}

// FindAPIKeyByToken returns the live key matching the token string, or
// ErrAPIKeyNotFound.
func (db *DB) FindAPIKeyByToken(ctx context.Context, token string) (*APIKey, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, name, token, expires_at, created_at, deleted FROM api_keys WHERE token = ? AND deleted = 0", token)

	key, err := scanAPIKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAPIKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// RevokeAPIKey soft-deletes an issued key.
func (db *DB) RevokeAPIKey(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, "UPDATE api_keys SET deleted = 1 WHERE id = ? AND deleted = 0", id)
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read api key revoke result: %w", err)
	}
	if affected == 0 {
		return ErrAPIKeyNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAPIKey(s scanner) (APIKey, error) {
	var (
		key     APIKey
		expires sql.NullString
		created string
		deleted int
	)
	if err := s.Scan(&key.ID, &key.Name, &key.Token, &expires, &created, &deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return key, err
		}
		return key, fmt.Errorf("failed to scan api key: %w", err)
	}
	if expires.Valid && expires.String != "" {
		t, err := time.Parse(timeLayout, expires.String)
		if err == nil {
			key.ExpiresAt = &t
		}
	}
	if t, err := time.Parse(timeLayout, created); err == nil {
		key.CreatedAt = t
	}
	key.Deleted = deleted != 0
	return key, nil
}

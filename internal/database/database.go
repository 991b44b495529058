// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

// Package database implements the generic persistence gateway over an
// embedded SQLite store.
//
// Resource handlers never build SQL themselves; they call the gateway with a
// table name and dynamic field maps. Every read applies a standing deleted=0
// predicate so soft-deleted rows never surface.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	// SQLite driver, registered as "sqlite3".
	_ "github.com/mattn/go-sqlite3"

	"github.com/crewdesk/crewdesk-api/internal/logging"
)

// ErrRecordNotFound is returned when an update or delete matches no live row.
var ErrRecordNotFound = errors.New("record not found")

// identPattern restricts table and column names used to build SQL. Names come
// from entity descriptors, never from request input; the check guards against
// descriptor mistakes reaching the query builder.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// DB wraps the SQLite connection used by the persistence gateway.
type DB struct {
	conn *sql.DB
	path string
}

// New opens (creating if needed) the SQLite database at path and applies the
// schema. Use ":memory:" for an in-memory store.
func New(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers; a single pooled connection avoids
	// SQLITE_BUSY churn and keeps :memory: stores visible across calls.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	logging.Info().Str("path", path).Msg("Database opened")
	return db, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the raw connection for package-internal helpers and tests.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// checkIdent validates an identifier before it is interpolated into SQL.
func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

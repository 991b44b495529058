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
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/crewdesk/crewdesk-api/internal/models"
)

// searchLimit bounds keyword search results per the suggestion contract.
const searchLimit = 10

// ListMember is a filter value for comma-separated list columns: the row
// matches when the list contains Value as one of its elements.
type ListMember struct {
	Value string
}

// GetDetails returns all live rows of a table matching the filter map,
// ordered by id. A nil or empty filter map returns every live row.
func (db *DB) GetDetails(ctx context.Context, table string, filters map[string]any) ([]models.Record, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + table + " WHERE deleted = 0"
	where, args, err := buildFilters(filters)
	if err != nil {
		return nil, err
	}
	query += where + " ORDER BY id ASC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetDetail returns the live row with the given id, or nil when none exists.
func (db *DB) GetDetail(ctx context.Context, table string, id int64, filters map[string]any) (models.Record, error) {
	merged := map[string]any{"id": id}
	for k, v := range filters {
		merged[k] = v
	}
	records, err := db.GetDetails(ctx, table, merged)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// SearchSuggestions returns up to ten live rows where any of the given
// columns matches the keyword, most recent first.
func (db *DB) SearchSuggestions(ctx context.Context, table string, columns []string, orderColumn, keyword string, filters map[string]any) ([]models.Record, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	if err := checkIdent(orderColumn); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("search on %s needs at least one column", table)
	}

	query := "SELECT * FROM " + table + " WHERE deleted = 0"
	where, args, err := buildFilters(filters)
	if err != nil {
		return nil, err
	}
	query += where

	likes := make([]string, 0, len(columns))
	pattern := "%" + escapeLike(keyword) + "%"
	for _, col := range columns {
		if err := checkIdent(col); err != nil {
			return nil, err
		}
		likes = append(likes, col+" LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	query += " AND (" + strings.Join(likes, " OR ") + ")"
	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT %d", orderColumn, searchLimit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", table, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Save inserts the field map as a new row when id is zero, otherwise updates
// the existing row in place. It returns the new or affected row id.
func (db *DB) Save(ctx context.Context, table string, fields map[string]any, id int64) (int64, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, fmt.Errorf("nothing to save into %s", table)
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if err := checkIdent(col); err != nil {
			return 0, err
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		args = append(args, fields[col])
	}

	if id == 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), placeholders)
		res, err := db.conn.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read new %s id: %w", table, err)
		}
		return newID, nil
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = ?"
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND deleted = 0", table, strings.Join(sets, ", "))
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s update result: %w", table, err)
	}
	if affected == 0 {
		return 0, ErrRecordNotFound
	}
	return id, nil
}

// SoftDelete marks a live row deleted. Deleting a missing or already-deleted
// row returns ErrRecordNotFound.
func (db *DB) SoftDelete(ctx context.Context, table string, id int64) error {
	if err := checkIdent(table); err != nil {
		return err
	}
	res, err := db.conn.ExecContext(ctx, "UPDATE "+table+" SET deleted = 1 WHERE id = ? AND deleted = 0", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read %s delete result: %w", table, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Exists reports whether a live row matching the filters exists.
func (db *DB) Exists(ctx context.Context, table string, filters map[string]any) (bool, error) {
	if err := checkIdent(table); err != nil {
		return false, err
	}
	query := "SELECT 1 FROM " + table + " WHERE deleted = 0"
	where, args, err := buildFilters(filters)
	if err != nil {
		return false, err
	}
	query += where + " LIMIT 1"

	var one int
	err = db.conn.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", table, err)
	}
	return true, nil
}

// buildFilters renders a filter map as an AND chain with bound arguments.
// Columns are sorted for deterministic SQL.
func buildFilters(filters map[string]any) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	cols := make([]string, 0, len(filters))
	for col := range filters {
		if err := checkIdent(col); err != nil {
			return "", nil, err
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var (
		b    strings.Builder
		args = make([]any, 0, len(cols))
	)
	for _, col := range cols {
		switch v := filters[col].(type) {
		case ListMember:
			// Wrap the list in delimiters so "2" matches "1,2" but not "12".
			b.WriteString(" AND (',' || " + col + " || ',') LIKE ? ESCAPE '\\'")
			args = append(args, "%,"+escapeLike(v.Value)+",%")
		default:
			b.WriteString(" AND " + col + " = ?")
			args = append(args, v)
		}
	}
	return b.String(), args, nil
}

// escapeLike escapes LIKE wildcards in a user-supplied keyword.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// scanRecords reads all rows into dynamically-shaped records. Every non-NULL
// value is rendered as a string so records serialize uniformly.
func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := []models.Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(models.Record, len(cols))
		for i, col := range cols {
			record[col] = renderValue(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return records, nil
}

// renderValue converts a scanned SQL value to its string form. NULL stays nil.
func renderValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveInsertAndGetDetails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.Save(ctx, "notes", map[string]any{
		"title":       "Meeting notes",
		"description": "Summary",
		"project_id":  "1",
		"client_id":   "0",
		"is_public":   "0",
	}, 0)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id < 1 {
		t.Fatalf("Save() id = %d, want >= 1", id)
	}

	records, err := db.GetDetails(ctx, "notes", map[string]any{"id": id})
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("GetDetails() returned %d records, want 1", len(records))
	}
	if records[0]["title"] != "Meeting notes" {
		t.Errorf("title = %v, want Meeting notes", records[0]["title"])
	}
	if records[0]["project_id"] != "1" {
		t.Errorf("project_id = %v, want string \"1\"", records[0]["project_id"])
	}
}

func TestSaveUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.Save(ctx, "notes", map[string]any{"title": "before"}, 0)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := db.Save(ctx, "notes", map[string]any{"title": "after"}, id); err != nil {
		t.Fatalf("Save(update) error = %v", err)
	}

	record, err := db.GetDetail(ctx, "notes", id, nil)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	if record["title"] != "after" {
		t.Errorf("title = %v, want after", record["title"])
	}

	if _, err := db.Save(ctx, "notes", map[string]any{"title": "x"}, 9999); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Save(missing id) error = %v, want ErrRecordNotFound", err)
	}
}

func TestSoftDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.Save(ctx, "notes", map[string]any{"title": "doomed"}, 0)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := db.SoftDelete(ctx, "notes", id); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	record, err := db.GetDetail(ctx, "notes", id, nil)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	if record != nil {
		t.Error("soft-deleted row must not surface in reads")
	}

	if err := db.SoftDelete(ctx, "notes", id); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second delete error = %v, want ErrRecordNotFound", err)
	}
	if err := db.SoftDelete(ctx, "notes", 9999); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("delete of missing row error = %v, want ErrRecordNotFound", err)
	}
}

func TestSearchSuggestions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		created := time.Date(2026, 1, 1+i, 12, 0, 0, 0, time.UTC).Format("2006-01-02 15:04:05")
		_, err := db.Save(ctx, "notes", map[string]any{
			"title":      fmt.Sprintf("meeting %d", i),
			"created_at": created,
		}, 0)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	records, err := db.SearchSuggestions(ctx, "notes", []string{"title", "description"}, "created_at", "meeting", nil)
	if err != nil {
		t.Fatalf("SearchSuggestions() error = %v", err)
	}
	if len(records) != 10 {
		t.Errorf("search returned %d records, want the 10-row page", len(records))
	}
	if records[0]["title"] != "meeting 14" {
		t.Errorf("first result = %v, want most recent row", records[0]["title"])
	}

	records, err = db.SearchSuggestions(ctx, "notes", []string{"title"}, "created_at", "no-such-keyword", nil)
	if err != nil {
		t.Fatalf("SearchSuggestions() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("unexpected matches: %v", records)
	}

	// LIKE wildcards in the keyword are literals, not patterns.
	records, err = db.SearchSuggestions(ctx, "notes", []string{"title"}, "created_at", "%", nil)
	if err != nil {
		t.Fatalf("SearchSuggestions() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("wildcard keyword must not match everything, got %d rows", len(records))
	}
}

func TestGetDetailsListMemberFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	idA, err := db.Save(ctx, "clients", map[string]any{"company_name": "A", "group_ids": "1,2"}, 0)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := db.Save(ctx, "clients", map[string]any{"company_name": "B", "group_ids": "12"}, 0); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := db.GetDetails(ctx, "clients", map[string]any{"group_ids": ListMember{Value: "2"}})
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if len(records) != 1 || records[0]["id"] != fmt.Sprintf("%d", idA) {
		t.Errorf("list filter matched %v, want only the row listing group 2", records)
	}

	records, err = db.GetDetails(ctx, "clients", map[string]any{"group_ids": ListMember{Value: "3"}})
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("unexpected matches for group 3: %v", records)
	}
}

func TestExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.Save(ctx, "users", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"user_type":  "staff",
		"status":     "active",
	}, 0)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ok, err := db.Exists(ctx, "users", map[string]any{"id": id, "status": "active"})
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("expected row to exist")
	}

	ok, err = db.Exists(ctx, "users", map[string]any{"id": id, "status": "inactive"})
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("filters must constrain the existence check")
	}
}

func TestDeleteClientCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	clientID, err := db.Save(ctx, "clients", map[string]any{
		"company_name": "Acme",
		"owner_id":     "1",
		"is_lead":      0,
	}, 0)
	if err != nil {
		t.Fatalf("Save(client) error = %v", err)
	}
	noteID, err := db.Save(ctx, "notes", map[string]any{"title": "client note", "client_id": clientID}, 0)
	if err != nil {
		t.Fatalf("Save(note) error = %v", err)
	}
	projectID, err := db.Save(ctx, "projects", map[string]any{"title": "client project", "client_id": clientID}, 0)
	if err != nil {
		t.Fatalf("Save(project) error = %v", err)
	}

	if err := db.DeleteClientCascade(ctx, clientID); err != nil {
		t.Fatalf("DeleteClientCascade() error = %v", err)
	}

	for _, check := range []struct {
		table string
		id    int64
	}{
		{"clients", clientID},
		{"notes", noteID},
		{"projects", projectID},
	} {
		record, err := db.GetDetail(ctx, check.table, check.id, nil)
		if err != nil {
			t.Fatalf("GetDetail(%s) error = %v", check.table, err)
		}
		if record != nil {
			t.Errorf("%s row %d must be soft-deleted with the client", check.table, check.id)
		}
	}

	if err := db.DeleteClientCascade(ctx, clientID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("cascade on deleted client error = %v, want ErrRecordNotFound", err)
	}
}

func TestIdentifierValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.GetDetails(ctx, "notes; DROP TABLE notes", nil); err == nil {
		t.Error("malformed table name must be rejected")
	}
	if _, err := db.Save(ctx, "notes", map[string]any{"bad column": "x"}, 0); err == nil {
		t.Error("malformed column name must be rejected")
	}
}

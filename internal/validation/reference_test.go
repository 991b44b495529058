// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package validation

import (
	"context"
	"testing"
)

// fakeChecker answers existence checks from a fixed set of table/id pairs.
type fakeChecker struct {
	rows map[string]map[int64]bool
}

func (f *fakeChecker) Exists(_ context.Context, table string, filters map[string]any) (bool, error) {
	id, _ := filters["id"].(int64)
	return f.rows[table][id], nil
}

func TestCheckReferences(t *testing.T) {
	checker := &fakeChecker{rows: map[string]map[int64]bool{
		"users":         {1: true, 2: true},
		"client_groups": {10: true},
	}}

	ownerRef := Reference{Field: "owner_id", Table: "users", Message: "Invalid owner ID"}
	groupRef := Reference{Field: "group_ids", Table: "client_groups", Message: "Invalid Client group id.", Each: true}
	milestoneRef := Reference{Field: "milestone_id", Table: "milestones", Message: "Invalid Milestone ID", SkipZero: true}

	tests := []struct {
		name    string
		payload map[string]any
		refs    []Reference
		want    string
	}{
		{"resolves", map[string]any{"owner_id": "1"}, []Reference{ownerRef}, ""},
		{"missing row", map[string]any{"owner_id": "99"}, []Reference{ownerRef}, "Invalid owner ID"},
		{"non-numeric", map[string]any{"owner_id": "abc"}, []Reference{ownerRef}, "Invalid owner ID"},
		{"absent field skipped", map[string]any{}, []Reference{ownerRef}, ""},
		{"empty value skipped", map[string]any{"owner_id": ""}, []Reference{ownerRef}, ""},
		{"list all valid", map[string]any{"group_ids": "10"}, []Reference{groupRef}, ""},
		{"list one invalid", map[string]any{"group_ids": "10,11"}, []Reference{groupRef}, "Invalid Client group id. : 11"},
		{"zero skipped", map[string]any{"milestone_id": "0"}, []Reference{milestoneRef}, ""},
		{"first violation wins", map[string]any{"owner_id": "99", "group_ids": "11"}, []Reference{ownerRef, groupRef}, "Invalid owner ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckReferences(context.Background(), checker, tt.payload, tt.refs)
			if err != nil {
				t.Fatalf("CheckReferences() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckReferences() = %q, want %q", got, tt.want)
			}
		})
	}
}

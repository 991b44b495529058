// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk-api/internal/validation"
)

// Field describes one insertable column of an entity: the payload key, and
// the value stored when the caller omits it. A nil default (and nil
// DefaultFn) stores NULL.
type Field struct {
	Name      string
	Default   any
	DefaultFn func() any
}

// EntityMessages holds the user-facing message strings of one entity.
type EntityMessages struct {
	AddSuccess    string
	AddFail       string
	UpdateSuccess string
	UpdateFail    string
	DeleteSuccess string
	DeleteFail    string
	InvalidID     string
}

// Entity is the descriptor driving the generic resource handler. One
// descriptor fully defines the behavior of an /api/<name> resource; the few
// entities with bespoke business rules plug in the hook fields instead of
// getting a hand-written handler.
type Entity struct {
	// Name is the URL segment under /api.
	Name string

	// Label is the human-readable singular name used in messages.
	Label string

	// Table is the backing table.
	Table string

	// Rules validates create payloads. UpdateRules validates update payloads
	// (typically the same rules with if_exist). StrictUpdateRules, when set,
	// replaces UpdateRules under api.strict_update_validation; it restores
	// checks the historical behavior only applied on create.
	Rules             validation.RuleSet
	UpdateRules       validation.RuleSet
	StrictUpdateRules validation.RuleSet

	// RuleMessages overrides default validation messages per field and rule.
	RuleMessages validation.Messages

	// References are cross-entity existence constraints, evaluated after
	// field rules pass.
	References []validation.Reference

	// Filters lists the query parameters accepted by index. ListFilters maps
	// a query parameter to a comma-separated list column matched by
	// membership instead of equality (group_id against group_ids).
	Filters     []string
	ListFilters map[string]string

	// SearchColumns are matched by keyword search; OrderColumn orders search
	// results most recent first.
	SearchColumns []string
	OrderColumn   string

	// InsertFields are the columns written on create. UpdateColumns are
	// merged on update: payload value when present, stored value otherwise.
	InsertFields  []Field
	UpdateColumns []string

	// BaseFilters constrain every read and existence check, e.g. is_lead=0
	// for clients sharing a table with leads.
	BaseFilters map[string]any

	// ReadOnly suppresses the mutation routes (activity logs).
	ReadOnly bool

	// Attribution records created_by via the attribution resolver.
	// AttributionField copies created_by from another payload field instead
	// (clients and leads attribute to the owner).
	Attribution      bool
	AttributionField string

	// CreatedAt/CreatedDate stamp the matching column on create.
	CreatedAt   bool
	CreatedDate bool

	// Mutate adjusts the field map before create and update (password
	// hashing for users). DeleteFn replaces the plain soft delete (cascading
	// client removal).
	Mutate   func(h *Handler, payload Payload, fields map[string]any) error
	DeleteFn func(ctx context.Context, h *Handler, id int64) error

	// Messages overrides individual message strings; unset entries use the
	// defaults derived from Label.
	Messages EntityMessages
}

// messages returns the entity's message strings with defaults applied.
func (e *Entity) messages() EntityMessages {
	m := e.Messages
	if m.AddSuccess == "" {
		m.AddSuccess = e.Label + " add success"
	}
	if m.AddFail == "" {
		m.AddFail = e.Label + " add fail"
	}
	if m.UpdateSuccess == "" {
		m.UpdateSuccess = e.Label + " update success"
	}
	if m.UpdateFail == "" {
		m.UpdateFail = e.Label + " update fail"
	}
	if m.DeleteSuccess == "" {
		m.DeleteSuccess = e.Label + " delete success"
	}
	if m.DeleteFail == "" {
		m.DeleteFail = e.Label + " delete fail"
	}
	if m.InvalidID == "" {
		m.InvalidID = "Invalid " + e.Label + " ID"
	}
	return m
}

// validateDescriptor catches descriptor mistakes at startup rather than at
// request time.
func (e *Entity) validateDescriptor() error {
	if e.Name == "" || e.Table == "" || e.Label == "" {
		return fmt.Errorf("entity descriptor missing name, label or table: %+v", e)
	}
	if !e.ReadOnly && len(e.InsertFields) == 0 {
		return fmt.Errorf("entity %s has no insertable fields", e.Name)
	}
	if len(e.SearchColumns) == 0 {
		return fmt.Errorf("entity %s has no search columns", e.Name)
	}
	if e.OrderColumn == "" {
		return fmt.Errorf("entity %s has no search order column", e.Name)
	}
	return nil
}

// Shared default helpers for descriptor tables.

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

func nowDateTime() any { return time.Now().Format(dateTimeLayout) }
func today() any       { return time.Now().Format(dateLayout) }

// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ExistenceChecker answers whether a live row matching the filters exists.
// Implemented by the persistence gateway.
type ExistenceChecker interface {
	Exists(ctx context.Context, table string, filters map[string]any) (bool, error)
}

// Reference declares a cross-entity existence constraint on a payload field:
// the field value must identify a live row in Table. References are evaluated
// after field-level rules pass, first violation wins.
type Reference struct {
	// Field is the payload key holding the referenced id.
	Field string

	// Table is the referenced table.
	Table string

	// Filters are additional column constraints on the referenced row,
	// e.g. {"status": "active"} for owner checks against active users.
	Filters map[string]any

	// Message is the error returned when the reference does not resolve.
	Message string

	// SkipZero skips the check when the value is zero (optional references
	// such as a task's milestone).
	SkipZero bool

	// Each treats the value as a comma-separated id list and checks every
	// element, appending the offending value to the error message.
	Each bool
}

// CheckReferences evaluates reference constraints against a payload. It
// returns the first violation message, or "" when all references resolve.
// Absent fields are skipped: a reference only constrains values the caller
// actually sent.
func CheckReferences(ctx context.Context, checker ExistenceChecker, payload map[string]any, refs []Reference) (string, error) {
	for _, ref := range refs {
		raw, present := payload[ref.Field]
		if !present {
			continue
		}

		value := Stringify(raw)
		if value == "" {
			continue
		}

		values := []string{value}
		if ref.Each {
			values = splitList(value)
		}

		for _, v := range values {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id < 1 {
				if ref.SkipZero && err == nil && id == 0 {
					continue
				}
				return ref.failureMessage(v), nil
			}

			filters := map[string]any{"id": id}
			for k, fv := range ref.Filters {
				filters[k] = fv
			}
			ok, err := checker.Exists(ctx, ref.Table, filters)
			if err != nil {
				return "", fmt.Errorf("failed to check %s reference: %w", ref.Field, err)
			}
			if !ok {
				return ref.failureMessage(v), nil
			}
		}
	}
	return "", nil
}

// failureMessage renders the violation message, appending the offending value
// for list references.
func (r Reference) failureMessage(value string) string {
	if r.Each {
		return r.Message + " : " + value
	}
	return r.Message
}

// splitList splits a comma-separated id list, dropping empty elements.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

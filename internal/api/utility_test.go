// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestUtilityListings(t *testing.T) {
	router, db := newTestRouter(t, nil)
	ctx := context.Background()

	rec := doJSON(t, router, "GET", "/api/client_groups", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("empty table status = %d, want 404", rec.Code)
	}

	if _, err := db.Save(ctx, "client_groups", map[string]any{"title": "VIP"}, 0); err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	rec = doJSON(t, router, "GET", "/api/client_groups", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if records := decodeArray(t, rec); len(records) != 1 || records[0]["title"] != "VIP" {
		t.Errorf("groups = %v, want the seeded group", records)
	}
}

func TestPaymentMethodList(t *testing.T) {
	router, db := newTestRouter(t, nil)

	if _, err := db.Save(context.Background(), "payment_methods", map[string]any{"title": "Bank transfer", "type": "custom"}, 0); err != nil {
		t.Fatalf("failed to seed payment method: %v", err)
	}

	rec := doJSON(t, router, "GET", "/api/payment_method_list", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if records := decodeArray(t, rec); len(records) != 1 || records[0]["title"] != "Bank transfer" {
		t.Errorf("payment methods = %v, want the seeded method", records)
	}
}

func TestLabelListingsScopedByContext(t *testing.T) {
	router, db := newTestRouter(t, nil)
	ctx := context.Background()

	if _, err := db.Save(ctx, "project_labels", map[string]any{"title": "urgent", "context": "project", "color": "#f00"}, 0); err != nil {
		t.Fatalf("failed to seed label: %v", err)
	}
	if _, err := db.Save(ctx, "project_labels", map[string]any{"title": "overdue", "context": "invoice", "color": "#00f"}, 0); err != nil {
		t.Fatalf("failed to seed label: %v", err)
	}

	rec := doJSON(t, router, "GET", "/api/project_labels", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	records := decodeArray(t, rec)
	if len(records) != 1 || records[0]["title"] != "urgent" {
		t.Errorf("project labels = %v, want only the project-context label", records)
	}

	rec = doJSON(t, router, "GET", "/api/invoice_labels", "")
	records = decodeArray(t, rec)
	if len(records) != 1 || records[0]["title"] != "overdue" {
		t.Errorf("invoice labels = %v, want only the invoice-context label", records)
	}
}

func TestContactsByClient(t *testing.T) {
	router, db := newTestRouter(t, nil)
	ctx := context.Background()

	clientID, err := db.Save(ctx, "clients", map[string]any{"company_name": "Acme", "is_lead": 0}, 0)
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	_, err = db.Save(ctx, "users", map[string]any{
		"first_name": "Contact",
		"last_name":  "Person",
		"email":      "contact@example.com",
		"user_type":  "client",
		"client_id":  clientID,
		"status":     "active",
	}, 0)
	if err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}
	seedUser(t, db, "staff@example.com")

	rec := doJSON(t, router, "GET", fmt.Sprintf("/api/contact_by_clientid/%d", clientID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	records := decodeArray(t, rec)
	if len(records) != 1 || records[0]["email"] != "contact@example.com" {
		t.Errorf("contacts = %v, want only the client's contact", records)
	}

	rec = doJSON(t, router, "GET", "/api/staff_owner", "")
	records = decodeArray(t, rec)
	if len(records) != 1 || records[0]["email"] != "staff@example.com" {
		t.Errorf("staff owners = %v, want only the active staff user", records)
	}

	rec = doJSON(t, router, "GET", "/api/contact_by_clientid/abc", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-numeric id status = %d, want 404", rec.Code)
	}
}

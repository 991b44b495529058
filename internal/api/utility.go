// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// mountUtilityRoutes registers the small read-only helper endpoints that back
// admin dropdowns: label and group catalogues plus a few scoped user lists.
// All of them answer with a bare array or the shared no-data failure.
func (h *Handler) mountUtilityRoutes(r chi.Router) {
	r.Get("/client_groups", h.listTable("client_groups", nil))
	r.Get("/project_labels", h.listTable("project_labels", map[string]any{"context": "project"}))
	r.Get("/invoice_labels", h.listTable("project_labels", map[string]any{"context": "invoice"}))
	r.Get("/ticket_labels", h.listTable("project_labels", map[string]any{"context": "ticket"}))
	r.Get("/ticket_types", h.listTable("ticket_types", nil))
	r.Get("/invoice_tax", h.listTable("taxes", nil))
	r.Get("/payment_method_list", h.listTable("payment_methods", nil))
	r.Get("/staff_owner", h.listTable("users", map[string]any{"user_type": "staff", "status": "active"}))
	r.Get("/contact_by_clientid/{id}", h.listByParam("users", "client_id", map[string]any{"user_type": "client"}))
	r.Get("/project_members/{id}", h.listByParam("project_members", "project_id", nil))
}

// listTable serves a fixed filtered listing of one table.
func (h *Handler) listTable(table string, filters map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.db.GetDetails(r.Context(), table, filters)
		if err != nil {
			respondStoreError(w, msgNoData, err)
			return
		}
		if len(records) == 0 {
			respondFailure(w, http.StatusNotFound, msgNoData)
			return
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// listByParam serves a listing scoped by a numeric id path parameter.
func (h *Handler) listByParam(table, column string, extra map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondFailure(w, http.StatusNotFound, msgNoData)
			return
		}
		filters := map[string]any{column: id}
		for k, v := range extra {
			filters[k] = v
		}
		records, err := h.db.GetDetails(r.Context(), table, filters)
		if err != nil {
			respondStoreError(w, msgNoData, err)
			return
		}
		if len(records) == 0 {
			respondFailure(w, http.StatusNotFound, msgNoData)
			return
		}
		respondJSON(w, http.StatusOK, records)
	}
}

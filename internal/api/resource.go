// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crewdesk/crewdesk-api/internal/database"
	"github.com/crewdesk/crewdesk-api/internal/logging"
	"github.com/crewdesk/crewdesk-api/internal/models"
	"github.com/crewdesk/crewdesk-api/internal/validation"
)

// resource is the generic handler for one entity descriptor. Every /api
// resource runs through the same six methods; per-entity differences live in
// the descriptor.
type resource struct {
	h      *Handler
	entity Entity
	msgs   EntityMessages
}

func newResource(h *Handler, e Entity) *resource {
	if e.UpdateRules == nil {
		e.UpdateRules = withIfExist(e.Rules)
	}
	if len(e.UpdateColumns) == 0 && !e.ReadOnly {
		for _, f := range e.InsertFields {
			e.UpdateColumns = append(e.UpdateColumns, f.Name)
		}
	}
	return &resource{h: h, entity: e, msgs: e.messages()}
}

// mount registers the resource routes. Mutations are omitted for read-only
// entities.
func (rs *resource) mount(r chi.Router) {
	r.Route("/"+rs.entity.Name, func(r chi.Router) {
		r.Get("/", rs.Index)
		// The bare /search/ route catches empty keywords, which the
		// {keyword} pattern does not match.
		r.Get("/search/", rs.Search)
		r.Get("/search/{keyword}", rs.Search)
		r.Get("/{id}", rs.Show)
		if !rs.entity.ReadOnly {
			r.Post("/", rs.Create)
			r.Put("/{id}", rs.Update)
			r.Patch("/{id}", rs.Update)
			r.Delete("/{id}", rs.Delete)
		}
	})
}

// baseFilters clones the descriptor's standing filters.
func (rs *resource) baseFilters() map[string]any {
	filters := make(map[string]any, len(rs.entity.BaseFilters)+2)
	for k, v := range rs.entity.BaseFilters {
		filters[k] = v
	}
	return filters
}

// Index lists live rows, optionally narrowed by the descriptor's query
// filters.
func (rs *resource) Index(w http.ResponseWriter, r *http.Request) {
	filters := rs.baseFilters()
	for _, name := range rs.entity.Filters {
		value := r.URL.Query().Get(name)
		if value == "" {
			continue
		}
		if col, ok := rs.entity.ListFilters[name]; ok {
			filters[col] = database.ListMember{Value: value}
			continue
		}
		filters[name] = value
	}

	records, err := rs.h.db.GetDetails(r.Context(), rs.entity.Table, filters)
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

// Show returns one row by id. A non-numeric id is rejected with the entity's
// invalid-id message; a numeric id without a live row answers "no data".
func (rs *resource) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondFailure(w, http.StatusNotFound, rs.msgs.InvalidID)
		return
	}

	record, err := rs.h.db.GetDetail(r.Context(), rs.entity.Table, id, rs.entity.BaseFilters)
	if err != nil {
		respondStoreError(w, msgNoData, err)
		return
	}
	if record == nil {
		respondFailure(w, http.StatusNotFound, msgNoData)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Search returns up to ten rows matching the keyword, most recent first.
func (rs *resource) Search(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")
	if keyword == "" {
		respondFailure(w, http.StatusNotFound, msgNoData)
		return
	}

	records, err := rs.h.db.SearchSuggestions(r.Context(), rs.entity.Table,
		rs.entity.SearchColumns, rs.entity.OrderColumn, keyword, rs.entity.BaseFilters)
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

// Create validates the payload, resolves references and attribution, applies
// insert defaults and persists the new row.
func (rs *resource) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := parsePayload(r)
	if len(payload) == 0 {
		respondFailure(w, http.StatusBadRequest, rs.msgs.AddFail)
		return
	}

	if errs := validation.Validate(payload, rs.entity.Rules, rs.entity.RuleMessages); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	refMsg, err := validation.CheckReferences(ctx, rs.h.db, payload, rs.entity.References)
	if err != nil {
		respondStoreError(w, rs.msgs.AddFail, err)
		return
	}
	if refMsg != "" {
		respondFailure(w, http.StatusBadRequest, refMsg)
		return
	}

	fields := rs.insertFields(payload)
	if rs.entity.Attribution {
		fields["created_by"] = rs.h.resolveCreatedBy(ctx, payload)
	}
	if rs.entity.AttributionField != "" {
		fields["created_by"] = validation.Stringify(payload[rs.entity.AttributionField])
	}
	if rs.entity.CreatedAt {
		fields["created_at"] = nowDateTime()
	}
	if rs.entity.CreatedDate {
		fields["created_date"] = today()
	}
	if rs.entity.Mutate != nil {
		if err := rs.entity.Mutate(rs.h, payload, fields); err != nil {
			logging.Error().Err(err).Str("resource", rs.entity.Name).Msg("Create hook failed")
			respondFailure(w, http.StatusBadRequest, rs.msgs.AddFail)
			return
		}
	}

	id, err := rs.h.db.Save(ctx, rs.entity.Table, fields, 0)
	if err != nil || id == 0 {
		if err != nil {
			logging.Error().Err(err).Str("resource", rs.entity.Name).Msg("Create failed")
		}
		respondFailure(w, http.StatusBadRequest, rs.msgs.AddFail)
		return
	}

	respondJSON(w, http.StatusCreated, models.NewCreated(rs.msgs.AddSuccess, id))
}

// Update merges the payload over the stored row: fields absent from the
// payload keep their current value. The target must exist before validation
// runs.
func (rs *resource) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondFailure(w, http.StatusNotFound, rs.msgs.InvalidID)
		return
	}
	existing, err := rs.h.db.GetDetail(ctx, rs.entity.Table, id, rs.entity.BaseFilters)
	if err != nil {
		respondStoreError(w, rs.msgs.UpdateFail, err)
		return
	}
	if existing == nil {
		respondFailure(w, http.StatusNotFound, rs.msgs.InvalidID)
		return
	}

	payload := parsePayload(r)

	rules := rs.entity.UpdateRules
	if rs.h.cfg.API.StrictUpdateValidation && rs.entity.StrictUpdateRules != nil {
		rules = rs.entity.StrictUpdateRules
	}
	if errs := validation.Validate(payload, rules, rs.entity.RuleMessages); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	refMsg, err := validation.CheckReferences(ctx, rs.h.db, payload, rs.entity.References)
	if err != nil {
		respondStoreError(w, rs.msgs.UpdateFail, err)
		return
	}
	if refMsg != "" {
		respondFailure(w, http.StatusBadRequest, refMsg)
		return
	}

	fields := make(map[string]any, len(rs.entity.UpdateColumns))
	for _, col := range rs.entity.UpdateColumns {
		if payload.Has(col) {
			fields[col] = validation.Stringify(payload[col])
		} else {
			fields[col] = existing[col]
		}
	}
	if rs.entity.Mutate != nil {
		if err := rs.entity.Mutate(rs.h, payload, fields); err != nil {
			logging.Error().Err(err).Str("resource", rs.entity.Name).Msg("Update hook failed")
			respondFailure(w, http.StatusBadRequest, rs.msgs.UpdateFail)
			return
		}
	}

	if _, err := rs.h.db.Save(ctx, rs.entity.Table, fields, id); err != nil {
		if !errors.Is(err, database.ErrRecordNotFound) {
			logging.Error().Err(err).Str("resource", rs.entity.Name).Msg("Update failed")
		}
		respondFailure(w, http.StatusBadRequest, rs.msgs.UpdateFail)
		return
	}

	respondJSON(w, http.StatusOK, models.NewSuccess(rs.msgs.UpdateSuccess))
}

// Delete soft-deletes a row after an existence check. Deleting a missing or
// already-deleted row fails rather than succeeding silently.
func (rs *resource) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondFailure(w, http.StatusNotFound, rs.msgs.InvalidID)
		return
	}

	if rs.entity.DeleteFn != nil {
		if err := rs.entity.DeleteFn(ctx, rs.h, id); err != nil {
			if !errors.Is(err, database.ErrRecordNotFound) {
				logging.Error().Err(err).Str("resource", rs.entity.Name).Msg("Delete failed")
			}
			respondFailure(w, http.StatusBadRequest, rs.msgs.DeleteFail)
			return
		}
		respondJSON(w, http.StatusOK, models.NewSuccess(rs.msgs.DeleteSuccess))
		return
	}

	record, err := rs.h.db.GetDetail(ctx, rs.entity.Table, id, rs.entity.BaseFilters)
	if err != nil {
		respondStoreError(w, rs.msgs.DeleteFail, err)
		return
	}
	if record == nil {
		respondFailure(w, http.StatusBadRequest, rs.msgs.DeleteFail)
		return
	}

	if err := rs.h.db.SoftDelete(ctx, rs.entity.Table, id); err != nil {
		if !errors.Is(err, database.ErrRecordNotFound) {
			logging.Error().Err(err).Str("resource", rs.entity.Name).Msg("Delete failed")
		}
		respondFailure(w, http.StatusBadRequest, rs.msgs.DeleteFail)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(rs.msgs.DeleteSuccess))
}

// insertFields builds the column map for a create: payload value when sent,
// descriptor default otherwise.
func (rs *resource) insertFields(payload Payload) map[string]any {
	fields := make(map[string]any, len(rs.entity.InsertFields)+3)
	for _, f := range rs.entity.InsertFields {
		if payload.Has(f.Name) {
			fields[f.Name] = validation.Stringify(payload[f.Name])
			continue
		}
		if f.DefaultFn != nil {
			fields[f.Name] = f.DefaultFn()
			continue
		}
		fields[f.Name] = f.Default
	}
	for k, v := range rs.entity.BaseFilters {
		fields[k] = v
	}
	return fields
}

// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/crewdesk/crewdesk-api/internal/logging"
	"github.com/crewdesk/crewdesk-api/internal/models"
)

// msgNoData is the shared empty-result message.
const msgNoData = "No data were found"

// sanitizeLogValue removes control characters from strings before they reach
// the log stream, preventing forged log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends any value as a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondFailure sends the single-message failure envelope.
func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.NewFailure(message))
}

// respondFieldErrors sends the per-field validation failure envelope.
func respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, models.NewFieldFailure(fields))
}

// respondStoreError logs a persistence failure and collapses it to the
// generic failure message. The wire shape and status match every other
// failure; the cause only reaches the log.
func respondStoreError(w http.ResponseWriter, message string, err error) {
	logging.Error().Err(err).Msg("Persistence operation failed")
	respondFailure(w, http.StatusBadRequest, message)
}

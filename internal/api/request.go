// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/crewdesk/crewdesk-api/internal/logging"
)

// maxBodySize caps request bodies read by the normalizer.
const maxBodySize = 1 << 20

// Payload is the uniform key-value map every handler consumes, regardless of
// whether the caller sent JSON or form-urlencoded data.
type Payload map[string]any

// Has reports whether the field was sent at all. The partial-update merge
// depends on the distinction between absent and present-but-empty.
func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// parsePayload extracts the request payload. A JSON body takes precedence;
// if JSON parsing fails or yields no fields, form fields are used instead.
// The result is never nil.
func parsePayload(r *http.Request) Payload {
	payload := Payload{}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err == nil && len(body) > 0 {
			var parsed map[string]any
			if err := json.Unmarshal(body, &parsed); err != nil {
				logging.Debug().Err(err).Msg("JSON body unparsable, falling back to form fields")
			} else {
				for k, v := range parsed {
					payload[k] = v
				}
			}
		}
	}

	if len(payload) > 0 {
		return payload
	}

	if err := r.ParseForm(); err != nil {
		logging.Debug().Err(err).Msg("Failed to parse form body")
		return payload
	}
	for k, values := range r.PostForm {
		if len(values) > 0 {
			payload[k] = values[0]
		}
	}
	return payload
}

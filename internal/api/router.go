// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/crewdesk/crewdesk-api/internal/auth"
	"github.com/crewdesk/crewdesk-api/internal/models"
)

// NewRouter assembles the full route tree: the authenticated /api resources,
// the /restapi key management, health and metrics, and the JSON 404 fallback.
func NewRouter(h *Handler, authMW *auth.Middleware, keys *auth.Manager) (*chi.Mux, error) {
	entities := entityRegistry()
	for i := range entities {
		if err := entities[i].validateDescriptor(); err != nil {
			return nil, fmt.Errorf("invalid entity descriptor: %w", err)
		}
	}

	metrics := NewMetrics()

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.API.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "authtoken"},
		MaxAge:         300,
	}))
	if h.cfg.API.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(h.cfg.API.RateLimitPerMinute, time.Minute))
	}

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		// Set before the resources mount so the nested routers inherit the
		// JSON fallback instead of chi's plain-text 404/405.
		api.NotFound(notFoundHandler)
		api.MethodNotAllowed(notFoundHandler)
		api.Use(authMW.Authenticate)
		for _, e := range entities {
			newResource(h, e).mount(api)
		}
		h.mountUtilityRoutes(api)
	})

	admin := &adminHandler{h: h, keys: keys}
	r.Route("/restapi", admin.mount)

	return r, nil
}

// notFoundHandler serves the fixed JSON body for unmatched paths.
func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, &models.RouteNotFound{
		Code:    http.StatusNotFound,
		Message: "Route not found",
	})
}

// healthHandler reports liveness.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

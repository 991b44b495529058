// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

// Command server runs the Crewdesk REST API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crewdesk/crewdesk-api/internal/api"
	"github.com/crewdesk/crewdesk-api/internal/auth"
	"github.com/crewdesk/crewdesk-api/internal/config"
	"github.com/crewdesk/crewdesk-api/internal/database"
	"github.com/crewdesk/crewdesk-api/internal/logging"
)

// shutdownTimeout bounds graceful shutdown once a signal arrives.
const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	var keys *auth.Manager
	if cfg.Auth.Secret != "" {
		keys, err = auth.NewManager(db, cfg.Auth.Secret)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create token manager")
		}
	}
	authMW := auth.NewMiddleware(keys, cfg.Auth.Enabled)

	handler := api.NewHandler(db, cfg)
	router, err := api.NewRouter(handler, authMW, keys)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build router")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("Server starting")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}

	logging.Info().Msg("Server stopped")
}

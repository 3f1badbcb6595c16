// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command devapi runs the in-memory store API for local development.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize structured logger.
//  3. Build the backend (seeding the demo account when enabled).
//  4. Start HTTP server with graceful shutdown.
//
// OTP codes are printed to the log; there is no SMS gateway.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/shopfront/internal/devapi"
	"github.com/taibuivan/shopfront/internal/platform/config"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/logging"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	// The dev backend logs to stdout unless LOG_FILE is set.
	options := logging.FromConfig("shopfront-devapi", cfg)
	options.Fallback = os.Stdout
	log, closeLog := logging.New(options)
	defer closeLog()
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.DevAPIPort),
		slog.Bool("flat_envelope", cfg.DevAPIFlatEnvelope),
	)

	// Stops the rate limiter sweepers on exit.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── 3. Backend ────────────────────────────────────────────────────────
	server, err := devapi.New(ctx, ":"+cfg.DevAPIPort, cfg.DevAPIJWTSecret, devapi.OptionsFromConfig(cfg), log)
	must(log, err, "build backend")

	// ── 4. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

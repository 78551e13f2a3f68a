// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Mozaik CMS server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"mozaik/internal/cache"
	"mozaik/internal/config"
	"mozaik/internal/database"
	"mozaik/internal/handlers"
	"mozaik/internal/imaging"
	"mozaik/internal/render"
	"mozaik/internal/router"
	"mozaik/internal/session"
	"mozaik/internal/storage"
	"mozaik/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL and bring the schema up to date.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions and the full-page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	articleStore := store.NewArticleStore(db)
	authorStore := store.NewAuthorStore(db)
	pageStore := store.NewPageStore(db)
	mediaStore := store.NewMediaStore(db)
	variantStore := store.NewVariantStore(db)
	settingsStore := store.NewSettingsStore(db)

	// Connect to S3-compatible object storage. Optional: the app works
	// without it, with media uploads disabled.
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3BucketPublic,
		)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// libvips worker pool for WebP variant generation.
	imaging.Startup(runtime.NumCPU())
	defer imaging.Shutdown()

	adminHandlers := handlers.NewAdmin(renderer, sessionStore, articleStore, categoryStore, authorStore, pageStore, mediaStore, variantStore, settingsStore, storageClient, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	publicHandlers := handlers.NewPublic(renderer, categoryStore, articleStore, pageStore, mediaStore, variantStore, settingsStore, storageClient, pageCache, cfg.BaseURL)
	apiHandlers := handlers.NewAPI(categoryStore, articleStore)

	r := router.New(router.Options{
		Sessions:     sessionStore,
		SecureCookie: secureCookies,
		AllowOrigins: []string{"*"},
	}, adminHandlers, authHandlers, publicHandlers, apiHandlers)

	// WriteTimeout covers media uploads with variant generation.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain
	// connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"backoffice/internal/cache"
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/handlers"
	"backoffice/internal/router"
	"backoffice/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		return err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	// Connect to Valkey for the translation-group cache. The API degrades
	// to uncached lookups when Valkey is unavailable.
	var i18nCache *cache.TranslationCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, translation caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		i18nCache = cache.NewTranslationCache(valkeyClient, cache.DefaultTranslationTTL)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	permissionStore := store.NewPermissionStore(db)
	categoryStore := store.NewStatCategoryStore(db)
	itemStore := store.NewStatCategoryItemStore(db)
	languageStore := store.NewLanguageStore(db)
	translationStore := store.NewTranslationStore(db)

	api := handlers.NewAPI(categoryStore, itemStore, languageStore, translationStore, userStore, i18nCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(api, userStore, permissionStore)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

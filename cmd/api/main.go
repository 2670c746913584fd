// Command api is the Game Notes API server.
//
// Usage:
//
//	gamenotes-api
//	API_PORT=8080 gamenotes-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/courtsidelabs/gamenotes/internal/api"
	"github.com/courtsidelabs/gamenotes/internal/api/handler"
	"github.com/courtsidelabs/gamenotes/internal/archive"
	"github.com/courtsidelabs/gamenotes/internal/cache"
	"github.com/courtsidelabs/gamenotes/internal/config"
	"github.com/courtsidelabs/gamenotes/internal/narrative"
	"github.com/courtsidelabs/gamenotes/internal/pipeline"
	"github.com/courtsidelabs/gamenotes/internal/provider/cbb"
	"github.com/courtsidelabs/gamenotes/internal/ranker"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Stats provider and ranking engine
	client := cbb.NewClient(cfg.CBBBaseURL, cfg.CBBAPIKey, cfg.CBBRequestsPer, logger)
	engine := ranker.New(client, logger)

	// Narrative generator
	gen := narrative.NewChatClient(narrative.ChatConfig{
		BaseURL:     cfg.MistralBaseURL,
		APIKey:      cfg.MistralAPIKey,
		Model:       cfg.NotesModel,
		Temperature: cfg.NotesTemperature,
	})
	pipe := pipeline.New(client, engine, gen, logger)

	// Notes archive (optional)
	var arch handler.Archive
	if cfg.ArchiveEnabled() {
		logger.Info("Connecting to notes archive...")
		a, err := archive.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to notes archive", "error", err)
			os.Exit(1)
		}
		defer a.Close()
		arch = a
		logger.Info("Notes archive connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Info("Notes archive disabled (no DATABASE_URL)")
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(api.Deps{
		Resolver: client,
		Engine:   engine,
		Runner:   pipe,
		Archive:  arch,
		Cache:    appCache,
		Logger:   logger,
	}, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 180 * time.Second, // notes generation holds the request open
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Game Notes API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

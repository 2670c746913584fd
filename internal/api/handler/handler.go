// Package handler provides HTTP handlers for all API endpoints. Handlers
// call the ranking engine directly and cache the marshaled response bytes,
// so repeat requests for the same ranked table skip the provider entirely.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/courtsidelabs/gamenotes/internal/api/respond"
	"github.com/courtsidelabs/gamenotes/internal/archive"
	"github.com/courtsidelabs/gamenotes/internal/cache"
	"github.com/courtsidelabs/gamenotes/internal/config"
	"github.com/courtsidelabs/gamenotes/internal/pipeline"
)

// Runner executes the full notes pipeline. Implemented by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, params pipeline.Params) (pipeline.Result, error)
}

// Archive stores and retrieves generated notes. Implemented by
// *archive.Archive; nil when no database is configured.
type Archive interface {
	Store(ctx context.Context, n archive.Note) (int64, error)
	Get(ctx context.Context, id int64) (archive.Note, error)
	ListByTeam(ctx context.Context, teamID int64, limit int) ([]archive.Note, error)
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	resolver pipeline.Resolver
	engine   pipeline.Ranker
	runner   Runner
	arch     Archive
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies. arch may be nil.
func New(resolver pipeline.Resolver, engine pipeline.Ranker, runner Runner, arch Archive, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		resolver: resolver,
		engine:   engine,
		runner:   runner,
		arch:     arch,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available optimizations.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":        "Game Notes API",
		"version":     "1.0.0",
		"status":      "running",
		"environment": h.cfg.Environment,
		"docs":        "/docs",
		"optimizations": []string{
			"batched_player_rankings",
			"concurrent_feed_fetch",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckArchive verifies notes-archive connectivity.
// @Summary Archive health check
// @Description Verifies Postgres connectivity for the notes archive.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/archive [get]
func (h *Handler) HealthCheckArchive(w http.ResponseWriter, r *http.Request) {
	if h.arch == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"archive":   "disabled",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.arch.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"archive":   "disconnected",
			"error":     "Archive connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"archive":   "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

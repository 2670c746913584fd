// Package api assembles the Chi router: middleware, Swagger UI, and the
// ranked-stats and notes endpoints.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/courtsidelabs/gamenotes/internal/api/handler"
	"github.com/courtsidelabs/gamenotes/internal/cache"
	"github.com/courtsidelabs/gamenotes/internal/config"
	"github.com/courtsidelabs/gamenotes/internal/pipeline"
)

//go:embed doc.json
var openAPIDoc []byte

// Deps are the wired services the router serves.
type Deps struct {
	Resolver pipeline.Resolver
	Engine   pipeline.Ranker
	Runner   handler.Runner
	Archive  handler.Archive // nil disables archive endpoints
	Cache    *cache.Cache
	Logger   *slog.Logger
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps Deps, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(deps.Resolver, deps.Engine, deps.Runner, deps.Archive, deps.Cache, cfg, deps.Logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/archive", h.HealthCheckArchive)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI served from the embedded OpenAPI document.
	r.Get("/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAPIDoc)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Ranked stats
		r.Get("/rankings/teams/{teamID}", h.GetTeamRankings)
		r.Get("/rankings/players", h.GetPlayerRankings)
		r.Get("/quads/{teamID}", h.GetQuadSplits)
		r.Get("/roster/{teamID}", h.GetRoster)

		// Game notes
		r.Post("/notes", h.GenerateNotes)
		r.Get("/notes/{noteID}", h.GetArchivedNote)
		r.Get("/notes/team/{teamID}", h.ListArchivedNotes)
	})

	return r
}

// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/notes.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is populated from environment variables.
type Config struct {
	// Statistics provider
	CBBAPIKey      string
	CBBBaseURL     string
	CBBRequestsPer int // requests per minute

	// Narrative generator (chat-completions API)
	MistralAPIKey    string
	MistralBaseURL   string
	NotesModel       string
	NotesTemperature float64

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Notes archive (optional; archive disabled when URL is empty)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Cache
	CacheEnabled bool

	// Export
	ExportDir string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	apiKey := envOr("CBB_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("CBB_API_KEY must be set")
	}

	return &Config{
		CBBAPIKey:      apiKey,
		CBBBaseURL:     envOr("CBB_API_BASE_URL", "https://api.example.com"),
		CBBRequestsPer: envInt("CBB_REQUESTS_PER_MINUTE", 120),

		MistralAPIKey:    envOr("MISTRAL_API_KEY", ""),
		MistralBaseURL:   envOr("MISTRAL_BASE_URL", "https://api.mistral.ai"),
		NotesModel:       envOr("NOTES_MODEL", "mistral-large-2512"),
		NotesTemperature: envFloat("NOTES_TEMPERATURE", 0.3),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		ExportDir: envOr("EXPORT_DIR", "."),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ArchiveEnabled reports whether the Postgres notes archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"film2subtitle-api/api/middleware"
	"film2subtitle-api/core/interfaces"
)

const (
	Title   = "Film2Subtitle API"
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger      interfaces.Logger
	RateLimit   int           // requests per window; 0 disables limiting
	RateWindow  time.Duration // rate limit window
	CORSOrigins []string      // defaults to all origins
}

// Server bundles the Huma API with its router and the rate limiter it owns
type Server struct {
	API     huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// NewAPI creates and configures a new Huma API instance
func NewAPI(cfg APIConfig) *Server {
	router := chi.NewRouter()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// CORS first so preflight requests skip logging and limits
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	srv := &Server{Router: router}
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		srv.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(srv.limiter))
	}

	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Search film2subtitle.com and read its subtitle download pages"

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	srv.API = humachi.New(router, config)

	return srv
}

// Close stops background work owned by the server
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

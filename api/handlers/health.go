// ABOUTME: Health check handler
// ABOUTME: Reports availability and pings the cache backend when it supports it

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"film2subtitle-api/core/interfaces"
)

const pingTimeout = 2 * time.Second

// HealthHandler serves the health check
type HealthHandler struct {
	cache interfaces.Cache
}

// NewHealthHandler creates a health handler; cache may be nil
func NewHealthHandler(cache interfaces.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// RegisterRoutes registers the health route under prefix
func (h *HealthHandler) RegisterRoutes(api huma.API, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        prefix + "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body struct {
		Status  string `json:"status" enum:"available,unavailable"`
		Cache   string `json:"cache,omitempty"`
		Entries *int   `json:"cache_entries,omitempty"`
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "available"

	if pinger, ok := h.cache.(interfaces.Pinger); ok {
		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			return nil, huma.Error503ServiceUnavailable("unavailable", err)
		}
		out.Body.Cache = "ok"
	}

	if sizer, ok := h.cache.(interfaces.Sizer); ok {
		n := sizer.Len()
		out.Body.Entries = &n
	}

	return out, nil
}

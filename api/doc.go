// Package api provides the HTTP API layer for the Film2Subtitle service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - middleware/: request logging, request IDs and per-IP rate limiting
//
// # Routes
//
// All routes are mounted under the configured prefix (default /api/v1):
//
//	GET /search/legacy?query=ozark&page=2   scraped search results page
//	GET /download?url=<film2subtitle URL>   articles and download links
//	GET /latest                             entries of the site's RSS feed
//	GET /search?query=ozark                 the site's JSON quick search
//	GET /health                             availability and cache ping
//
// /latest and /search can be switched off with feature flags, in which
// case they answer 404.
//
// # Usage Example
//
//	srv := api.NewAPI(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	})
//	defer srv.Close()
//
//	handlers.NewSubtitleHandler(service, flags).RegisterRoutes(srv.API, "/api/v1")
//	http.ListenAndServe(":8000", srv.Router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "The given URL is not a valid Film2Subtitle URL."
//	}
//
// Failures of the origin site map to 502 or 503; a missing page maps to 404.
package api

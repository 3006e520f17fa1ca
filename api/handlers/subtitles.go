// ABOUTME: Subtitle handlers for the Huma API
// ABOUTME: Exposes legacy search, download pages, the latest feed and quick search

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"film2subtitle-api/core/domain"
	"film2subtitle-api/core/errors"
	"film2subtitle-api/pkg/featureflags"
)

// SubtitleService defines the methods needed from the subtitle service
type SubtitleService interface {
	LegacySearch(ctx context.Context, query string, page int) (*domain.LegacySearchResult, error)
	DownloadPage(ctx context.Context, rawURL string) (*domain.DownloadPage, error)
	Latest(ctx context.Context) ([]domain.FeedEntry, error)
	QuickSearch(ctx context.Context, query string) ([]domain.QuickSearchHit, error)
}

// SubtitleHandler handles subtitle-related HTTP requests
type SubtitleHandler struct {
	service SubtitleService
	flags   featureflags.Manager
}

// NewSubtitleHandler creates a new subtitle handler
func NewSubtitleHandler(service SubtitleService, flags featureflags.Manager) *SubtitleHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}
	return &SubtitleHandler{
		service: service,
		flags:   flags,
	}
}

// RegisterRoutes registers all subtitle routes under prefix
func (h *SubtitleHandler) RegisterRoutes(api huma.API, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "legacySearch",
		Method:      http.MethodGet,
		Path:        prefix + "/search/legacy",
		Summary:     "Search subtitles",
		Description: "Scrapes one page of the site's search results",
		Tags:        []string{"Subtitles"},
	}, h.LegacySearch)

	huma.Register(api, huma.Operation{
		OperationID: "downloadPage",
		Method:      http.MethodGet,
		Path:        prefix + "/download",
		Summary:     "Get a subtitle download page",
		Description: "Scrapes the articles and download links of a film2subtitle.com page",
		Tags:        []string{"Subtitles"},
	}, h.DownloadPage)

	huma.Register(api, huma.Operation{
		OperationID: "latestSubtitles",
		Method:      http.MethodGet,
		Path:        prefix + "/latest",
		Summary:     "Latest subtitles",
		Description: "Entries of the site's RSS feed",
		Tags:        []string{"Subtitles"},
	}, h.Latest)

	huma.Register(api, huma.Operation{
		OperationID: "quickSearch",
		Method:      http.MethodGet,
		Path:        prefix + "/search",
		Summary:     "Quick search",
		Description: "Queries the site's JSON search endpoint",
		Tags:        []string{"Subtitles"},
	}, h.QuickSearch)
}

// LegacySearchInput defines the input for the LegacySearch operation
type LegacySearchInput struct {
	Query string `query:"query" required:"true" minLength:"1" maxLength:"200" doc:"Search term"`
	Page  int    `query:"page" default:"1" minimum:"1" doc:"Results page"`
}

// LegacySearchOutput defines the output for the LegacySearch operation
type LegacySearchOutput struct {
	Body domain.LegacySearchResult
}

// LegacySearch handles GET /search/legacy. A missing results page is
// answered with an empty single-page result.
func (h *SubtitleHandler) LegacySearch(ctx context.Context, input *LegacySearchInput) (*LegacySearchOutput, error) {
	result, err := h.service.LegacySearch(ctx, input.Query, input.Page)
	if errors.IsNotFound(err) {
		empty := domain.NewLegacySearchResult(input.Query, input.Page, 1, nil)
		return &LegacySearchOutput{Body: empty}, nil
	}
	if err != nil {
		return nil, toHumaError(err)
	}

	return &LegacySearchOutput{Body: *result}, nil
}

// DownloadPageInput defines the input for the DownloadPage operation
type DownloadPageInput struct {
	URL string `query:"url" required:"true" minLength:"1" doc:"Full film2subtitle.com page URL"`
}

// DownloadPageOutput defines the output for the DownloadPage operation
type DownloadPageOutput struct {
	Body domain.DownloadPage
}

// DownloadPage handles GET /download
func (h *SubtitleHandler) DownloadPage(ctx context.Context, input *DownloadPageInput) (*DownloadPageOutput, error) {
	page, err := h.service.DownloadPage(ctx, input.URL)
	switch {
	case errors.IsNotFound(err):
		return nil, huma.Error404NotFound("Requested download page not found.")
	case errors.IsInvalidURL(err):
		return nil, huma.Error400BadRequest("The given URL is not a valid Film2Subtitle URL.")
	case err != nil:
		return nil, toHumaError(err)
	}

	return &DownloadPageOutput{Body: *page}, nil
}

// LatestOutput defines the output for the Latest operation
type LatestOutput struct {
	Body struct {
		Entries []domain.FeedEntry `json:"entries"`
	}
}

// Latest handles GET /latest
func (h *SubtitleHandler) Latest(ctx context.Context, _ *struct{}) (*LatestOutput, error) {
	if !h.flags.IsEnabled(ctx, featureflags.LatestFeedEnabled) {
		return nil, huma.Error404NotFound("Latest feed is disabled")
	}

	entries, err := h.service.Latest(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &LatestOutput{}
	out.Body.Entries = entries
	return out, nil
}

// QuickSearchInput defines the input for the QuickSearch operation
type QuickSearchInput struct {
	Query string `query:"query" required:"true" minLength:"1" maxLength:"200" doc:"Search term"`
}

// QuickSearchOutput defines the output for the QuickSearch operation
type QuickSearchOutput struct {
	Body struct {
		Query   string                  `json:"query"`
		Results []domain.QuickSearchHit `json:"results"`
	}
}

// QuickSearch handles GET /search
func (h *SubtitleHandler) QuickSearch(ctx context.Context, input *QuickSearchInput) (*QuickSearchOutput, error) {
	if !h.flags.IsEnabled(ctx, featureflags.QuickSearchEnabled) {
		return nil, huma.Error404NotFound("Quick search is disabled")
	}

	hits, err := h.service.QuickSearch(ctx, input.Query)
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &QuickSearchOutput{}
	out.Body.Query = input.Query
	out.Body.Results = hits
	return out, nil
}

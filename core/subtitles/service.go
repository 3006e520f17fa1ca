// ABOUTME: Subtitle service drives the scraping engine: fetch, parse, cache
// ABOUTME: Entry points for legacy search, download pages, the latest feed and quick search

package subtitles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"film2subtitle-api/core/domain"
	apperrors "film2subtitle-api/core/errors"
	"film2subtitle-api/core/interfaces"
	"film2subtitle-api/core/scraper"
)

const (
	DefaultCacheTTL = 1 * time.Hour

	feedPath        = "/feed/"
	quickSearchPath = "/wp-json/wp/v2/search"
	latestCacheKey  = "feed:latest"
)

// Service exposes the engine operations. It holds no per-call state and is
// safe for concurrent use.
type Service struct {
	deps     interfaces.Dependencies
	cacheTTL time.Duration
}

// NewService creates a subtitle service. A zero cacheTTL uses DefaultCacheTTL.
func NewService(deps interfaces.Dependencies, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	return &Service{deps: deps, cacheTTL: cacheTTL}
}

// NormalizePage maps 0 to 1 and negative pages to their absolute value
func NormalizePage(page int) int {
	if page == 0 {
		return 1
	}
	if page < 0 {
		return -page
	}
	return page
}

// SearchPath returns the site path of a search results page
func SearchPath(page int) string {
	if page <= 1 {
		return "/"
	}
	return fmt.Sprintf("/page/%d/", page)
}

// LegacySearch scrapes one page of the site's search results.
// A missing page is returned as *errors.NotFoundError.
func (s *Service) LegacySearch(ctx context.Context, query string, page int) (*domain.LegacySearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.ErrEmptyQuery
	}
	page = NormalizePage(page)

	cacheKey := fmt.Sprintf("search:legacy:%s:%d", query, page)
	var cached domain.LegacySearchResult
	if s.getCached(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	session, err := s.session()
	if err != nil {
		return nil, err
	}

	doc, err := session.FetchMarkup(ctx, SearchPath(page), &interfaces.RequestOptions{
		Params: url.Values{"s": {query}},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch search page %d: %w", page, err)
	}

	result := scraper.NewSearchParser(doc, query, page).Parse()

	s.deps.Logger.Debug("Search page parsed", map[string]interface{}{
		"query":       query,
		"page":        page,
		"total_pages": result.TotalPages,
		"results":     len(result.Results),
	})

	s.setCached(ctx, cacheKey, result)
	return &result, nil
}

// DownloadPage scrapes a subtitle download page. rawURL is validated before
// any network call.
func (s *Service) DownloadPage(ctx context.Context, rawURL string) (*domain.DownloadPage, error) {
	if !scraper.IsSiteURL(rawURL) {
		return nil, apperrors.NewInvalidURLError("URL does not belong to "+scraper.SiteDomain, rawURL)
	}

	cacheKey := "download:" + rawURL
	var cached domain.DownloadPage
	if s.getCached(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	session, err := s.session()
	if err != nil {
		return nil, err
	}

	doc, err := session.FetchMarkup(ctx, rawURL, nil)
	if err != nil {
		return nil, apperrors.WrapError(err, "fetch download page")
	}

	parser, err := scraper.NewDownloadPageParser(doc)
	if err != nil {
		return nil, err
	}
	page := parser.Parse()

	s.deps.Logger.Debug("Download page parsed", map[string]interface{}{
		"url":      rawURL,
		"type":     page.DownloadBox.Type,
		"links":    len(page.DownloadBox.Links),
		"articles": len(page.Articles),
	})

	s.setCached(ctx, cacheKey, page)
	return &page, nil
}

// Latest returns the entries of the site's RSS feed
func (s *Service) Latest(ctx context.Context) ([]domain.FeedEntry, error) {
	var cached []domain.FeedEntry
	if s.getCached(ctx, latestCacheKey, &cached) {
		return cached, nil
	}

	session, err := s.session()
	if err != nil {
		return nil, err
	}

	resp, err := session.Request(ctx, "GET", feedPath, nil)
	if err != nil {
		return nil, apperrors.WrapError(err, "fetch feed")
	}
	defer resp.Body().Close()

	feed, err := gofeed.NewParser().Parse(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]domain.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		categories := item.Categories
		if categories == nil {
			categories = []string{}
		}
		entries = append(entries, domain.FeedEntry{
			Title:      item.Title,
			URL:        item.Link,
			Published:  item.PublishedParsed,
			Categories: categories,
		})
	}

	s.setCached(ctx, latestCacheKey, entries)
	return entries, nil
}

type quickSearchItem struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// QuickSearch queries the site's JSON search endpoint
func (s *Service) QuickSearch(ctx context.Context, query string) ([]domain.QuickSearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.ErrEmptyQuery
	}

	session, err := s.session()
	if err != nil {
		return nil, err
	}

	var items []quickSearchItem
	err = session.FetchJSON(ctx, quickSearchPath, &items, &interfaces.RequestOptions{
		Params: url.Values{"search": {query}},
	})
	if err != nil {
		return nil, apperrors.WrapError(err, "quick search")
	}

	hits := make([]domain.QuickSearchHit, 0, len(items))
	for _, it := range items {
		hits = append(hits, domain.QuickSearchHit(it))
	}
	return hits, nil
}

func (s *Service) session() (interfaces.Session, error) {
	if s.deps.Session == nil {
		return nil, errors.New("session not configured")
	}
	return s.deps.Session, nil
}

func (s *Service) getCached(ctx context.Context, key string, dest any) bool {
	if s.deps.Cache == nil {
		return false
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.deps.Logger.Warn("Discarding unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

func (s *Service) setCached(ctx context.Context, key string, value any) {
	if s.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache result", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

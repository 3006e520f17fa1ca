package handlers

import (
	"context"
	"time"

	"film2subtitle-api/core/domain"
	"film2subtitle-api/core/interfaces"
)

// mockSubtitleService implements SubtitleService for testing
type mockSubtitleService struct {
	search      *domain.LegacySearchResult
	page        *domain.DownloadPage
	entries     []domain.FeedEntry
	hits        []domain.QuickSearchHit
	err         error
	lastQuery   string
	lastPage    int
	lastURL     string
	searchCalls int
}

func (m *mockSubtitleService) LegacySearch(ctx context.Context, query string, page int) (*domain.LegacySearchResult, error) {
	m.searchCalls++
	m.lastQuery = query
	m.lastPage = page
	if m.err != nil {
		return nil, m.err
	}
	return m.search, nil
}

func (m *mockSubtitleService) DownloadPage(ctx context.Context, rawURL string) (*domain.DownloadPage, error) {
	m.lastURL = rawURL
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func (m *mockSubtitleService) Latest(ctx context.Context) ([]domain.FeedEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func (m *mockSubtitleService) QuickSearch(ctx context.Context, query string) ([]domain.QuickSearchHit, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockCache is a Cache without a Ping method
type mockCache struct{}

func (mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, interfaces.ErrCacheMiss
}

func (mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (mockCache) Delete(ctx context.Context, key string) error {
	return nil
}

// mockPingCache adds a configurable Ping
type mockPingCache struct {
	mockCache
	pingErr error
	pinged  bool
}

func (m *mockPingCache) Ping(ctx context.Context) error {
	m.pinged = true
	return m.pingErr
}

// mockSizedCache reports a fixed entry count
type mockSizedCache struct {
	mockCache
	entries int
}

func (m mockSizedCache) Len() int {
	return m.entries
}

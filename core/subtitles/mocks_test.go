package subtitles

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"film2subtitle-api/core/interfaces"
)

// mockSession is a mock implementation of the Session interface
type mockSession struct {
	mu    sync.Mutex
	calls []string

	requestFunc     func(ctx context.Context, method, path string, opts *interfaces.RequestOptions) (interfaces.Response, error)
	fetchJSONFunc   func(ctx context.Context, path string, dest any, opts *interfaces.RequestOptions) error
	fetchMarkupFunc func(ctx context.Context, path string, opts *interfaces.RequestOptions) (*goquery.Document, error)
}

func (m *mockSession) record(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, path)
}

func (m *mockSession) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockSession) Request(ctx context.Context, method, path string, opts *interfaces.RequestOptions) (interfaces.Response, error) {
	m.record(path)
	if m.requestFunc != nil {
		return m.requestFunc(ctx, method, path, opts)
	}
	return nil, errors.New("unexpected request")
}

func (m *mockSession) FetchJSON(ctx context.Context, path string, dest any, opts *interfaces.RequestOptions) error {
	m.record(path)
	if m.fetchJSONFunc != nil {
		return m.fetchJSONFunc(ctx, path, dest, opts)
	}
	return errors.New("unexpected request")
}

func (m *mockSession) FetchMarkup(ctx context.Context, path string, opts *interfaces.RequestOptions) (*goquery.Document, error) {
	m.record(path)
	if m.fetchMarkupFunc != nil {
		return m.fetchMarkupFunc(ctx, path, opts)
	}
	return nil, errors.New("unexpected request")
}

func (m *mockSession) Close() error { return nil }

// markupSession serves a fixed document for every markup fetch
func markupSession(markup string) *mockSession {
	return &mockSession{
		fetchMarkupFunc: func(ctx context.Context, path string, opts *interfaces.RequestOptions) (*goquery.Document, error) {
			return goquery.NewDocumentFromReader(strings.NewReader(markup))
		},
	}
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a map-backed implementation of the Cache interface
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockLogger records messages by level
type mockLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newMockLogger() *mockLogger {
	return &mockLogger{messages: map[string][]string{}}
}

func (m *mockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[level] = append(m.messages[level], msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.log("debug", msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.log("info", msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log("warn", msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.log("error", msg) }

// ABOUTME: Transport session bound to the film2subtitle.com origin with default headers
// ABOUTME: Validates response statuses into core/errors types and parses markup bodies

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	apperrors "film2subtitle-api/core/errors"
	"film2subtitle-api/core/interfaces"
)

const (
	DefaultBaseURL   = "https://film2subtitle.com/"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	DefaultTimeout   = 30 * time.Second
)

// ErrSessionClosed is returned by every call made after Close.
var ErrSessionClosed = errors.New("session: closed")

// Config configures a Session. Zero fields take the package defaults.
type Config struct {
	BaseURL    string
	HTMLParser string
	UserAgent  string
	Timeout    time.Duration

	// RateLimit caps outbound requests per second. Zero disables the limiter.
	RateLimit float64
	Burst     int
}

// Option customizes a Session at construction
type Option func(*Session)

// WithTransport replaces the round tripper of the underlying client
func WithTransport(rt http.RoundTripper) Option {
	return func(s *Session) {
		s.transport = rt
	}
}

// Session implements interfaces.Session over net/http.
// It is safe for concurrent use.
type Session struct {
	base      *url.URL
	userAgent string
	parse     markupParser
	limiter   *rate.Limiter
	transport http.RoundTripper

	client     *http.Client
	noRedirect *http.Client

	closeOnce sync.Once
	closed    atomic.Bool
}

var _ interfaces.Session = (*Session)(nil)

// New creates a Session. It fails when the base URL is not absolute or the
// markup backend is unknown.
func New(cfg Config, opts ...Option) (*Session, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %q", cfg.BaseURL)
	}

	parse, err := lookupParser(cfg.HTMLParser)
	if err != nil {
		return nil, err
	}

	s := &Session{
		base:      base,
		userAgent: cfg.UserAgent,
		parse:     parse,
		transport: http.DefaultTransport,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{Transport: s.transport, Timeout: cfg.Timeout}
	s.noRedirect = &http.Client{
		Transport: s.transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return s, nil
}

// BaseURL returns the origin every relative path is resolved against
func (s *Session) BaseURL() string {
	return s.base.String()
}

// DefaultHeaders returns the headers sent with every request
func (s *Session) DefaultHeaders() map[string]string {
	return map[string]string{
		"Host":       s.base.Host,
		"User-Agent": s.userAgent,
	}
}

// Request performs a request and validates its status.
// On success the caller must close the response body.
func (s *Session) Request(ctx context.Context, method, path string, opts *interfaces.RequestOptions) (interfaces.Response, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	if opts == nil {
		opts = &interfaces.RequestOptions{}
	}

	target, err := s.resolve(path, opts.Params)
	if err != nil {
		return nil, err
	}

	cancel := context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}

	resp, err := s.do(ctx, method, target, opts)
	if err != nil {
		cancel()
		return nil, err
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		cancel()
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       &cancelOnClose{ReadCloser: resp.Body, cancel: cancel},
		headers:    resp.Header,
	}, nil
}

// FetchJSON performs a GET and decodes the JSON body into dest
func (s *Session) FetchJSON(ctx context.Context, path string, dest any, opts *interfaces.RequestOptions) error {
	body, _, err := s.fetch(ctx, path, opts)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// FetchMarkup performs a GET and parses the body with the configured backend
func (s *Session) FetchMarkup(ctx context.Context, path string, opts *interfaces.RequestOptions) (*goquery.Document, error) {
	body, contentType, err := s.fetch(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	doc, err := s.parse(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// fetch performs a GET and reads the whole body. A body that stops
// arriving fails like any other transport error.
func (s *Session) fetch(ctx context.Context, path string, opts *interfaces.RequestOptions) ([]byte, string, error) {
	resp, err := s.Request(ctx, http.MethodGet, path, opts)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, "", &apperrors.ConnectivityError{Op: http.MethodGet, URL: s.urlFor(path), Err: err}
	}
	return body, resp.Header("Content-Type"), nil
}

func (s *Session) urlFor(path string) string {
	target, err := s.resolve(path, nil)
	if err != nil {
		return path
	}
	return target.String()
}

// Close releases idle pooled connections. Later calls are no-ops.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.client.CloseIdleConnections()
	})
	return nil
}

func (s *Session) resolve(path string, params url.Values) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, apperrors.NewInvalidURLError("", path)
	}
	target := s.base.ResolveReference(ref)

	if len(params) > 0 {
		q := target.Query()
		for key, values := range params {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		target.RawQuery = q.Encode()
	}
	return target, nil
}

func (s *Session) do(ctx context.Context, method string, target *url.URL, opts *interfaces.RequestOptions) (*http.Response, error) {
	body := opts.Body
	contentType := ""
	if body == nil && opts.Form != nil {
		body = strings.NewReader(opts.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	s.applyHeaders(req, opts.Headers)

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &apperrors.ConnectivityError{Op: method, URL: target.String(), Err: err}
		}
	}

	client := s.client
	if opts.DisableRedirects {
		client = s.noRedirect
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &apperrors.ConnectivityError{Op: method, URL: target.String(), Err: err}
	}
	return resp, nil
}

// applyHeaders sets the defaults and then the overrides. The default Host is
// only sent to the base origin; an explicit Host override is always honoured.
func (s *Session) applyHeaders(req *http.Request, overrides map[string]string) {
	for key, value := range s.DefaultHeaders() {
		if strings.EqualFold(key, "Host") {
			if req.URL.Host == s.base.Host {
				req.Host = value
			}
			continue
		}
		req.Header.Set(key, value)
	}
	for key, value := range overrides {
		if strings.EqualFold(key, "Host") {
			req.Host = value
			continue
		}
		req.Header.Set(key, value)
	}
}

func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusMovedPermanently, http.StatusFound, http.StatusNotModified:
		return nil
	case http.StatusBadRequest:
		return apperrors.NewBadRequestError(reasonPhrase(resp))
	case http.StatusUnauthorized:
		return apperrors.NewUnauthorizedError(reasonPhrase(resp))
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(reasonPhrase(resp))
	}
	return &apperrors.APIError{Message: reasonPhrase(resp), Status: resp.StatusCode}
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// cancelOnClose releases a per-request deadline once the body is consumed
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

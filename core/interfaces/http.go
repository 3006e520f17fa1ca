package interfaces

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// RequestOptions tunes a single call to the origin site. The zero value
// sends a plain request that follows redirects and uses the session timeout.
type RequestOptions struct {
	// Params are appended to the request URL's query string.
	Params url.Values

	// Form is sent as an application/x-www-form-urlencoded body.
	// Ignored when Body is set.
	Form url.Values

	// Body is sent as-is.
	Body io.Reader

	// Headers are merged over the session's default headers.
	Headers map[string]string

	// DisableRedirects returns 301/302 responses instead of following them.
	DisableRedirects bool

	// Timeout bounds this request only. Zero keeps the session default.
	Timeout time.Duration
}

// Session is the transport to the origin site.
// Paths are resolved against the site's base URL; absolute URLs are sent as-is.
//
// Every non-success status is returned as an error from core/errors, and
// transport failures as *errors.ConnectivityError.
type Session interface {
	// Request performs a validated request. The caller must close the body.
	Request(ctx context.Context, method, path string, opts *RequestOptions) (Response, error)

	// FetchJSON performs a GET and decodes the JSON body into dest.
	FetchJSON(ctx context.Context, path string, dest any, opts *RequestOptions) error

	// FetchMarkup performs a GET and parses the body into a markup tree.
	FetchMarkup(ctx context.Context, path string, opts *RequestOptions) (*goquery.Document, error)

	// Close releases the connection pool. Safe to call more than once.
	Close() error
}

// Response defines the interface for HTTP responses.
// This abstraction allows different HTTP client implementations to provide
// their own response types while maintaining a consistent interface.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	Header(key string) string
}

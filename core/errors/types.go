// ABOUTME: Error taxonomy shared by the transport session, the parsers and the serving layer
// ABOUTME: Each error carries a human-readable message and a nominal status code

package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyQuery is returned when a search is requested without a query.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// StatusCoder is implemented by every error in the taxonomy.
type StatusCoder interface {
	error
	StatusCode() int
}

// APIError is any non-success response from the origin site that has no
// more specific type.
type APIError struct {
	Message string
	Status  int
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s [%d]", e.Message, e.Status)
}

// StatusCode returns the origin's status code
func (e *APIError) StatusCode() int { return e.Status }

// BadRequestError means the origin site rejected the request as malformed.
type BadRequestError struct {
	Message string
}

// NewBadRequestError creates a BadRequestError, falling back to a default message
func NewBadRequestError(message string) *BadRequestError {
	if message == "" {
		message = "Bad request"
	}
	return &BadRequestError{Message: message}
}

// Error implements the error interface
func (e *BadRequestError) Error() string {
	return fmt.Sprintf("%s [%d]", e.Message, e.StatusCode())
}

// StatusCode returns 400
func (e *BadRequestError) StatusCode() int { return http.StatusBadRequest }

// UnauthorizedError means the origin site refused access to the resource.
type UnauthorizedError struct {
	Message string
}

// NewUnauthorizedError creates an UnauthorizedError, falling back to a default message
func NewUnauthorizedError(message string) *UnauthorizedError {
	if message == "" {
		message = "Unauthorized"
	}
	return &UnauthorizedError{Message: message}
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s [%d]", e.Message, e.StatusCode())
}

// StatusCode returns 401
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// NotFoundError means the origin returned 404 or a required markup element
// is missing from a fetched page.
type NotFoundError struct {
	Message string
}

// NewNotFoundError creates a NotFoundError, falling back to a default message
func NewNotFoundError(message string) *NotFoundError {
	if message == "" {
		message = "Resource not found"
	}
	return &NotFoundError{Message: message}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s [%d]", e.Message, e.StatusCode())
}

// StatusCode returns 404
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// InvalidURLError is returned for caller-supplied URLs that do not belong to
// the site. URL keeps the offending input for diagnostics.
type InvalidURLError struct {
	Message string
	URL     string
}

// NewInvalidURLError creates an InvalidURLError for the given URL
func NewInvalidURLError(message, url string) *InvalidURLError {
	if message == "" {
		message = "Invalid URL"
	}
	return &InvalidURLError{Message: message, URL: url}
}

// Error implements the error interface
func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("%s [%d]: %q", e.Message, e.StatusCode(), e.URL)
}

// StatusCode returns 400
func (e *InvalidURLError) StatusCode() int { return http.StatusBadRequest }

// ConnectivityError wraps transport failures (dial, TLS, timeouts, cancelled
// contexts). It never carries an HTTP status from the origin.
type ConnectivityError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying transport error
func (e *ConnectivityError) Unwrap() error { return e.Err }

// StatusCode returns 503; the serving layer treats connectivity as unavailability
func (e *ConnectivityError) StatusCode() int { return http.StatusServiceUnavailable }

// Timeout reports whether the failure was a deadline or client timeout
func (e *ConnectivityError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsBadRequest checks if an error is a BadRequestError
func IsBadRequest(err error) bool {
	var target *BadRequestError
	return errors.As(err, &target)
}

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}

// IsInvalidURL checks if an error is an InvalidURLError
func IsInvalidURL(err error) bool {
	var target *InvalidURLError
	return errors.As(err, &target)
}

// IsAPIError checks if an error is a generic APIError
func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// IsConnectivity checks if an error is a ConnectivityError
func IsConnectivity(err error) bool {
	var target *ConnectivityError
	return errors.As(err, &target)
}

// StatusCode returns the nominal status of err, or 500 for errors outside the taxonomy
func StatusCode(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

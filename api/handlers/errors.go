// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts engine errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"film2subtitle-api/core/errors"
)

// toHumaError converts engine errors to Huma HTTP errors.
// Failures of the origin site are reported as gateway or availability errors.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, errors.ErrEmptyQuery) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsInvalidURL(err) || errors.IsBadRequest(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsUnauthorized(err) {
		return huma.Error502BadGateway("Origin site refused access", err)
	}

	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.Status >= 500:
			return huma.Error503ServiceUnavailable("Origin site error", err)
		case apiErr.Status == http.StatusTooManyRequests:
			return huma.Error429TooManyRequests("Rate limited by origin site")
		default:
			return huma.Error502BadGateway("Unexpected origin site response", err)
		}
	}

	if errors.IsConnectivity(err) {
		return huma.Error503ServiceUnavailable("Origin site unreachable", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}

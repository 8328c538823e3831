package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMissingToken indicates an authenticated client was created without a token
	ErrMissingToken = errors.New("tikhub API token is required")
	// ErrInvalidBaseURL indicates the base URL is not an absolute http(s) URL
	ErrInvalidBaseURL = errors.New("invalid tikhub base URL")
	// ErrDecode indicates a response body did not match the model for its status
	ErrDecode = errors.New("failed to decode response")
	// ErrNoResult indicates an unexpected status was ignored and there is nothing to decode
	ErrNoResult = errors.New("no result: unexpected response status")
)

// maxErrorContent bounds how much of the body Error() prints.
const maxErrorContent = 512

// UnexpectedStatusError is returned for statuses other than 200 and 422 when
// the client raises on unexpected statuses.
type UnexpectedStatusError struct {
	StatusCode int
	Content    []byte
}

// Error implements the error interface
func (e *UnexpectedStatusError) Error() string {
	content := e.Content
	if len(content) > maxErrorContent {
		content = content[:maxErrorContent]
	}
	return fmt.Sprintf("tikhub API error: unexpected status %d: %s", e.StatusCode, content)
}

// IsNotFound checks if the error indicates a not found response
func (e *UnexpectedStatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *UnexpectedStatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the server throttled the request
func (e *UnexpectedStatusError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError checks if the error is a 5xx response
func (e *UnexpectedStatusError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode <= 599
}

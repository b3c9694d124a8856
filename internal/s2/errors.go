package s2

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrNotFound indicates the requested entity did not resolve.
	ErrNotFound = errors.New("not found in Semantic Scholar")

	// ErrAccessDenied indicates the request was rejected (missing or
	// invalid API key, or a restricted resource).
	ErrAccessDenied = errors.New("Semantic Scholar access denied")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("Semantic Scholar rate limit exceeded")

	// ErrTransport indicates a network or timeout failure before any
	// HTTP status was received.
	ErrTransport = errors.New("network error communicating with Semantic Scholar")

	// ErrInvalidResponse indicates an unexpected API response body.
	ErrInvalidResponse = errors.New("invalid response from Semantic Scholar")
)

// APIError represents an unclassified 4xx/5xx response from the API.
type APIError struct {
	StatusCode int
	Body       string // truncated response body
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("Semantic Scholar API error (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("Semantic Scholar API error (status %d)", e.StatusCode)
}

// IsNotFound returns true if the error indicates an entity was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsAccessDenied returns true if the error indicates an authentication
// or authorization problem.
func IsAccessDenied(err error) bool {
	if errors.Is(err, ErrAccessDenied) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// IsTransport returns true if the error indicates a network failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

package cloudinary

import (
	"errors"
	"fmt"
)

// UpstreamError is returned when the Admin API answers with a non-2xx
// status.
type UpstreamError struct {
	StatusCode int    // HTTP status code
	Message    string // error.message from the response body, if any
}

// Error returns the error message.
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Cloudinary search failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Cloudinary search failed (status %d)", e.StatusCode)
}

// Is reports whether target is an *UpstreamError with the same status.
// A zero StatusCode in target matches any status.
func (e *UpstreamError) Is(target error) bool {
	t, ok := target.(*UpstreamError)
	if !ok {
		return false
	}
	return t.StatusCode == 0 || e.StatusCode == t.StatusCode
}

// Unauthorized reports whether the credentials were rejected.
func (e *UpstreamError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

var (
	// ErrMissingCredentials is returned by NewClient when the cloud name,
	// API key or API secret is empty.
	ErrMissingCredentials = errors.New("cloudinary: cloud name, API key and API secret are required")

	// ErrInvalidPageSize is returned when a search page size is outside 1..500.
	ErrInvalidPageSize = errors.New("cloudinary: page size must be between 1 and 500")
)

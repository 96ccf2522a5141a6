package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrUnauthorized indicates a rejected bearer token
	ErrUnauthorized = errors.New("unauthorized: invalid TMDB token")
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("movie not found")
	// ErrInvalidSortKey indicates an unsupported discover sort expression
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// APIError represents a non-2xx TMDB response
type APIError struct {
	StatusCode int
	// Code is TMDB's own status_code from the error body, 0 if absent
	Code    int
	Message string
	Body    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Unwrap maps status classes onto the package sentinels
func (e *APIError) Unwrap() error {
	switch {
	case e.IsNotFound():
		return ErrNotFound
	case e.IsUnauthorized():
		return ErrUnauthorized
	}
	return nil
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

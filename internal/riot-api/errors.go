package riotapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RiotAPIError represents a custom error type for Riot API responses
type RiotAPIError struct {
	StatusCode int
	Message    string
	Headers    http.Header
}

// Error implements the error interface for RiotAPIError
func (e *RiotAPIError) Error() string {
	return fmt.Sprintf("Riot API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFoundError reports whether the error is a 404 from the Riot API.
// For the spectator endpoint this is the normal "not currently in a game"
// answer, not a failure.
func IsNotFoundError(err error) bool {
	var apiErr *RiotAPIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorizedError reports whether the Riot API rejected our credential.
// Covers both 401 (expired/blank key) and 403 (revoked key).
func IsUnauthorizedError(err error) bool {
	var apiErr *RiotAPIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsRateLimitError checks if the error is a rate limit error based on Riot API documentation
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *RiotAPIError
	if errors.As(err, &apiErr) {
		// Check for 429 status code
		if apiErr.StatusCode == http.StatusTooManyRequests {
			// Check for X-Rate-Limit-Type header
			if rateLimitType := apiErr.Headers.Get("X-Rate-Limit-Type"); rateLimitType != "" {
				return true
			}
			// If no X-Rate-Limit-Type header, it might be a service-specific rate limit
			return strings.Contains(strings.ToLower(apiErr.Message), "rate limit")
		}
	}

	// Fallback to checking error message for non-RiotAPIError types
	return strings.Contains(strings.ToLower(err.Error()), "rate limit")
}

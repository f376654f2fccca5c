package dataservice

import (
	"fmt"
	"time"
)

// Error type constants for programmatic error classification.
const (
	// ErrorTypeRateLimit indicates the request was rate-limited (HTTP 429).
	ErrorTypeRateLimit = "rate_limit"

	// ErrorTypeServerError indicates a data-service failure (HTTP 5xx).
	ErrorTypeServerError = "server_error"

	// ErrorTypeAuthError indicates a rejected or missing API key (HTTP 401/403).
	ErrorTypeAuthError = "auth_error"

	// ErrorTypeClientError indicates an invalid request (HTTP 4xx except 429).
	ErrorTypeClientError = "client_error"
)

// APIError is a non-2xx response from the data service.
//
// Retryable is true for rate limits and server errors; RetryAfter carries the
// Retry-After header when present.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// ErrorType is one of the ErrorType constants.
	ErrorType string

	// Message is the service's error message, or a generic description.
	Message string

	// RequestID echoes the X-Request-ID sent with the request.
	RequestID string

	// Retryable indicates whether the request may succeed if repeated.
	Retryable bool

	// RetryAfter is the server-suggested backoff, zero if none.
	RetryAfter time.Duration

	// Method and Path identify the failed request.
	Method string
	Path   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("data service error [%d]: %s", e.StatusCode, e.Message)
	if e.Method != "" && e.Path != "" {
		msg += fmt.Sprintf(" [%s %s]", e.Method, e.Path)
	}
	if e.RequestID != "" {
		msg += fmt.Sprintf(" (RequestID: %s)", e.RequestID)
	}
	return msg
}

// RetryDelay implements retry.Delayer.
func (e *APIError) RetryDelay() time.Duration {
	return e.RetryAfter
}

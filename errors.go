package predev

import "fmt"

// APIError is the generic failure type for every Pre.dev API call. It covers
// transport failures (StatusCode == 0) and non-2xx responses that are neither
// authentication nor rate-limit failures. AuthenticationError and
// RateLimitError unwrap to an APIError, so callers can match broadly:
//
//	var apiErr *predev.APIError
//	if errors.As(err, &apiErr) { ... }
type APIError struct {
	// StatusCode is the HTTP status of the failed response, or 0 when the
	// request never produced one (timeout, connection refused, DNS failure).
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AuthenticationError reports a 401 response: the API key is missing,
// malformed, or revoked.
type AuthenticationError struct {
	APIError
}

// RateLimitError reports a 429 response. The client performs no retries or
// backoff; reacting to this error is up to the caller.
type RateLimitError struct {
	APIError
}

// Unwrap lets errors.As reach the embedded *APIError.
func (e *AuthenticationError) Unwrap() error { return &e.APIError }

func (e *RateLimitError) Unwrap() error { return &e.APIError }

func newAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("API request failed with status %d: %s", statusCode, message),
	}
}

func newRequestError(err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Request failed: %v", err),
		Err:     err,
	}
}

package predev

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	var err error = &AuthenticationError{APIError{StatusCode: 401, Message: "Invalid API key"}}

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatal("AuthenticationError not matched narrowly")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("AuthenticationError not matched broadly as APIError")
	}
	if apiErr.StatusCode != 401 {
		t.Fatalf("StatusCode = %d, want 401", apiErr.StatusCode)
	}

	err = &RateLimitError{APIError{StatusCode: 429, Message: "Rate limit exceeded"}}
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatal("RateLimitError not matched narrowly")
	}
	if !errors.As(err, &apiErr) {
		t.Fatal("RateLimitError not matched broadly as APIError")
	}

	// A rate-limit error must not match the authentication type.
	if errors.As(err, &authErr) {
		t.Fatal("RateLimitError unexpectedly matched AuthenticationError")
	}
}

func TestAPIErrorMessageIncludesStatus(t *testing.T) {
	err := newAPIError(500, "Internal server error")
	want := "API request failed with status 500: Internal server error"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRequestErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := newRequestError(cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if got := err.Error(); got != "Request failed: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
}

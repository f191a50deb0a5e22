package predev

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient wires a Client to an httptest server running handler.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New("test_key", append([]Option{WithBaseURL(srv.URL)}, opts...)...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty API key")
	}
	if _, err := New("   "); err == nil {
		t.Fatal("expected error for blank API key")
	}
}

func TestNewStripsTrailingSlash(t *testing.T) {
	client, err := New("test_key", WithBaseURL("https://custom.api.com/"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := client.BaseURL(); got != "https://custom.api.com" {
		t.Fatalf("base URL = %q, want %q", got, "https://custom.api.com")
	}
}

func TestAuthHeaderSelection(t *testing.T) {
	var gotSolo, gotEnterprise http.Header

	solo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSolo = r.Header.Clone()
		w.Write([]byte(`{}`))
	})
	if _, err := solo.ListSpecs(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("ListSpecs returned error: %v", err)
	}
	if got := gotSolo.Get("x-api-key"); got != "test_key" {
		t.Fatalf("x-api-key = %q, want %q", got, "test_key")
	}
	if got := gotSolo.Get("x-enterprise-api-key"); got != "" {
		t.Fatalf("unexpected x-enterprise-api-key %q on solo client", got)
	}

	enterprise := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotEnterprise = r.Header.Clone()
		w.Write([]byte(`{}`))
	}, WithEnterprise())
	if _, err := enterprise.ListSpecs(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("ListSpecs returned error: %v", err)
	}
	if got := gotEnterprise.Get("x-enterprise-api-key"); got != "test_key" {
		t.Fatalf("x-enterprise-api-key = %q, want %q", got, "test_key")
	}
	if got := gotEnterprise.Get("x-api-key"); got != "" {
		t.Fatalf("unexpected x-api-key %q on enterprise client", got)
	}
}

func TestSuccessReturnsBodyVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"specId":"123","status":"pending","totalHumanHours":42.5}`))
	})

	result, err := client.FastSpec(context.Background(), SpecRequest{Input: "Build a todo app"})
	if err != nil {
		t.Fatalf("FastSpec returned error: %v", err)
	}
	if got := result["specId"]; got != "123" {
		t.Fatalf("specId = %v, want 123", got)
	}
	if got := result["status"]; got != "pending" {
		t.Fatalf("status = %v, want pending", got)
	}
	if got := result["totalHumanHours"]; got != 42.5 {
		t.Fatalf("totalHumanHours = %v, want 42.5", got)
	}
}

func TestEveryOperationRaisesAuthenticationErrorOn401(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := context.Background()

	calls := map[string]func() (Result, error){
		"FastSpec":      func() (Result, error) { return client.FastSpec(ctx, SpecRequest{Input: "x"}) },
		"DeepSpec":      func() (Result, error) { return client.DeepSpec(ctx, SpecRequest{Input: "x"}) },
		"GetSpecStatus": func() (Result, error) { return client.GetSpecStatus(ctx, "123") },
		"ListSpecs":     func() (Result, error) { return client.ListSpecs(ctx, ListOptions{}) },
		"FindSpecs":     func() (Result, error) { return client.FindSpecs(ctx, "build", ListOptions{}) },
	}
	for name, call := range calls {
		_, err := call()
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			t.Fatalf("%s: error = %v, want AuthenticationError", name, err)
		}
		// Narrow type still matches the broad one.
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("%s: AuthenticationError does not unwrap to APIError", name)
		}
		if apiErr.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", name, apiErr.StatusCode)
		}
	}
}

func TestRateLimitError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FastSpec(context.Background(), SpecRequest{Input: "Build a todo app"})
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("error = %v, want RateLimitError", err)
	}
	if !strings.Contains(err.Error(), "Rate limit exceeded") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestGenericErrorWithJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
	})

	_, err := client.FastSpec(context.Background(), SpecRequest{Input: "Build a todo app"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", apiErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Internal server error") {
		t.Fatalf("message %q missing server error text", err.Error())
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("message %q missing status code", err.Error())
	}
}

func TestGenericErrorWithNonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	_, err := client.GetSpecStatus(context.Background(), "123")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if !strings.Contains(err.Error(), "upstream unavailable") {
		t.Fatalf("message %q missing raw body", err.Error())
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("message %q missing status code", err.Error())
	}
}

func TestGenericErrorWithEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ListSpecs(context.Background(), ListOptions{})
	if err == nil || !strings.Contains(err.Error(), "Unknown error") {
		t.Fatalf("error = %v, want Unknown error fallback", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client, err := New("test_key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.FastSpec(context.Background(), SpecRequest{Input: "Build a todo app"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("status = %d, want 0 for transport failure", apiErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Request failed") {
		t.Fatalf("message %q missing Request failed prefix", err.Error())
	}
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FastSpec(ctx, SpecRequest{Input: "Build a todo app"})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled in chain", err)
	}
}

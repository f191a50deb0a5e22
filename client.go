package predev

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.pre.dev"

const defaultTimeout = 30 * time.Second

// Client talks to the Pre.dev Architect API. It holds only immutable
// configuration, so a single instance is safe for concurrent use; each call
// issues its own request.
type Client struct {
	apiKey     string
	enterprise bool
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client during New.
type Option func(*Client)

// WithBaseURL points the client at a different API host. A trailing slash is
// stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithEnterprise switches authentication to the enterprise header
// (x-enterprise-api-key instead of x-api-key).
func WithEnterprise() Option {
	return func(c *Client) {
		c.enterprise = true
	}
}

// WithHTTPClient replaces the underlying *http.Client, for callers that need
// custom transports or proxies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the default 30s per-request ceiling.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client. The API key comes from your pre.dev settings page.
// No network call is made here; an empty key is the only construction error.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("predev: API key is required")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL reports the effective base URL after normalization.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// authHeader returns the header key/value pair selected by the enterprise
// flag, carrying the supplied key verbatim.
func (c *Client) authHeader() (string, string) {
	if c.enterprise {
		return "x-enterprise-api-key", c.apiKey
	}
	return "x-api-key", c.apiKey
}

// postJSON sends a JSON body to path and decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (Result, error) {
	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// post sends a pre-encoded body (multipart uploads) to path.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req)
}

// get issues a GET to path with the given query parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values) (Result, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	return c.do(req)
}

// do executes the request and maps the outcome onto the error taxonomy:
// 200 parses and returns the body verbatim, 401 and 429 raise their dedicated
// types, anything else becomes an APIError carrying the status code and the
// server's error field (or raw body when it isn't JSON).
func (c *Client) do(req *http.Request) (Result, error) {
	key, value := c.authHeader()
	req.Header.Set(key, value)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newRequestError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newRequestError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp.StatusCode, raw)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, newRequestError(fmt.Errorf("decode response: %w", err))
	}
	return result, nil
}

func errorFromResponse(statusCode int, raw []byte) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return &AuthenticationError{APIError{
			StatusCode: statusCode,
			Message:    "Invalid API key",
		}}
	case http.StatusTooManyRequests:
		return &RateLimitError{APIError{
			StatusCode: statusCode,
			Message:    "Rate limit exceeded",
		}}
	}

	message := strings.TrimSpace(string(raw))
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		message = body.Error
	}
	if message == "" {
		message = "Unknown error"
	}
	return newAPIError(statusCode, message)
}

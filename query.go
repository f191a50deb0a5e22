package predev

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// GetSpecStatus polls an asynchronous generation request. The body is
// returned unchanged; interpreting status values ("completed", "failed", ...)
// is left to the caller.
func (c *Client) GetSpecStatus(ctx context.Context, specID string) (Result, error) {
	if specID == "" {
		return nil, errors.New("predev: spec ID is required")
	}
	return c.get(ctx, "/api/spec-status/"+url.PathEscape(specID), nil)
}

// ListOptions filter and paginate ListSpecs and FindSpecs. Zero-valued fields
// are omitted from the query string.
type ListOptions struct {
	// Status filters by generation status, e.g. "completed" or "failed".
	Status string

	// Endpoint filters by originating endpoint: "fast_spec" or "deep_spec".
	Endpoint string

	// Limit caps the number of returned specs.
	Limit int

	// Skip offsets into the result set for pagination.
	Skip int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Endpoint != "" {
		q.Set("endpoint", o.Endpoint)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	return q
}

// ListSpecs pages through previously generated specs. The response carries
// the spec summaries plus pagination metadata (total, hasMore).
func (c *Client) ListSpecs(ctx context.Context, opts ListOptions) (Result, error) {
	return c.get(ctx, "/api/list-specs", opts.query())
}

// FindSpecs searches spec input text. The query is a regular expression
// evaluated server-side, so "^Build" matches specs whose prompt starts with
// "Build".
func (c *Client) FindSpecs(ctx context.Context, query string, opts ListOptions) (Result, error) {
	if query == "" {
		return nil, errors.New("predev: search query is required")
	}
	q := opts.query()
	q.Set("query", query)
	return c.get(ctx, "/api/find-specs", q)
}

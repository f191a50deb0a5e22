package predev

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

// OutputFormat selects how the generated specification is delivered.
type OutputFormat string

const (
	// OutputURL returns hosted spec URLs (the default).
	OutputURL OutputFormat = "url"
	// OutputJSON returns the structured spec inline.
	OutputJSON OutputFormat = "json"
	// OutputMarkdown returns the rendered spec as markdown text.
	OutputMarkdown OutputFormat = "markdown"
)

// File attaches a document to a spec request. The payload is sent as a
// multipart form instead of plain JSON.
type File struct {
	Name   string
	Reader io.Reader
}

// SpecRequest carries the parameters shared by FastSpec and DeepSpec. Only
// Input is required; zero-valued fields are omitted from the request body.
type SpecRequest struct {
	// Input describes the project or feature to generate a spec for.
	Input string

	// OutputFormat defaults to OutputURL when empty.
	OutputFormat OutputFormat

	// CurrentContext describes an existing system when the spec is a
	// feature addition rather than a new project.
	CurrentContext string

	// DocURLs point at external documentation the generator should consult.
	DocURLs []string

	// File optionally attaches a supporting document.
	File *File

	// Async submits the request for background processing. The response
	// then carries a spec ID to poll with GetSpecStatus.
	Async bool
}

// FastSpec generates a specification quickly, with balanced depth and speed.
// Suited to MVPs and prototypes; generation takes on the order of seconds.
// The response body is returned verbatim as a Result.
func (c *Client) FastSpec(ctx context.Context, req SpecRequest) (Result, error) {
	return c.generateSpec(ctx, "/api/fast-spec", req)
}

// DeepSpec generates an exhaustive specification for complex systems.
// Same contract as FastSpec; only the endpoint and the expected processing
// latency (minutes rather than seconds) differ.
func (c *Client) DeepSpec(ctx context.Context, req SpecRequest) (Result, error) {
	return c.generateSpec(ctx, "/api/deep-spec", req)
}

// FastSpecAsync is shorthand for FastSpec with Async set.
func (c *Client) FastSpecAsync(ctx context.Context, req SpecRequest) (Result, error) {
	req.Async = true
	return c.generateSpec(ctx, "/api/fast-spec", req)
}

// DeepSpecAsync is shorthand for DeepSpec with Async set.
func (c *Client) DeepSpecAsync(ctx context.Context, req SpecRequest) (Result, error) {
	req.Async = true
	return c.generateSpec(ctx, "/api/deep-spec", req)
}

func (c *Client) generateSpec(ctx context.Context, path string, req SpecRequest) (Result, error) {
	if req.Input == "" {
		return nil, errors.New("predev: input text is required")
	}
	if req.File != nil {
		contentType, body, err := encodeMultipart(req)
		if err != nil {
			return nil, err
		}
		return c.post(ctx, path, contentType, body)
	}
	return c.postJSON(ctx, path, req.payload())
}

// payload builds the JSON body, leaving out unset optional fields.
func (r SpecRequest) payload() map[string]any {
	format := r.OutputFormat
	if format == "" {
		format = OutputURL
	}
	payload := map[string]any{
		"input":        r.Input,
		"outputFormat": string(format),
	}
	if r.CurrentContext != "" {
		payload["currentContext"] = r.CurrentContext
	}
	if len(r.DocURLs) > 0 {
		payload["docUrls"] = r.DocURLs
	}
	if r.Async {
		payload["async"] = true
	}
	return payload
}

// encodeMultipart renders the request as a multipart form with the attachment
// under the "file" field and the remaining parameters as plain form values.
func encodeMultipart(req SpecRequest) (string, io.Reader, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for field, value := range req.payload() {
		switch v := value.(type) {
		case string:
			if err := w.WriteField(field, v); err != nil {
				return "", nil, fmt.Errorf("write field %s: %w", field, err)
			}
		case bool:
			if err := w.WriteField(field, "true"); err != nil {
				return "", nil, fmt.Errorf("write field %s: %w", field, err)
			}
		case []string:
			for _, u := range v {
				if err := w.WriteField(field, u); err != nil {
					return "", nil, fmt.Errorf("write field %s: %w", field, err)
				}
			}
		}
	}

	part, err := w.CreateFormFile("file", req.File.Name)
	if err != nil {
		return "", nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, req.File.Reader); err != nil {
		return "", nil, fmt.Errorf("copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return w.FormDataContentType(), &buf, nil
}

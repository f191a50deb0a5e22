package predev

// Result is an API response body parsed verbatim. The remote service does not
// contractually fix its response shape, so fields are exposed as a plain
// string-keyed map; the accessors below cover the fields the API is known to
// return, tolerating the key spellings observed across API versions.
type Result map[string]any

func (r Result) str(keys ...string) string {
	for _, key := range keys {
		if v, ok := r[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// SpecID identifies an asynchronous generation request, for polling with
// GetSpecStatus.
func (r Result) SpecID() string {
	return r.str("specId", "spec_id", "id")
}

// Status reports the generation status, e.g. "pending", "completed" or
// "failed". The client attaches no meaning to the value.
func (r Result) Status() string {
	return r.str("status")
}

// CodingAgentSpecURL points at the machine-oriented spec document.
func (r Result) CodingAgentSpecURL() string {
	return r.str("codingAgentSpecUrl")
}

// HumanSpecURL points at the human-readable spec document.
func (r Result) HumanSpecURL() string {
	return r.str("humanSpecUrl")
}

// ErrorMessage carries the server's failure description for failed specs.
func (r Result) ErrorMessage() string {
	return r.str("errorMessage", "error")
}

// Output returns inline spec content for json/markdown output formats.
func (r Result) Output() string {
	return r.str("output", "markdown")
}

// Specs unpacks the summaries in a list-specs or find-specs response.
func (r Result) Specs() []Result {
	items, ok := r["specs"].([]any)
	if !ok {
		return nil
	}
	specs := make([]Result, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			specs = append(specs, Result(m))
		}
	}
	return specs
}

// Total reports the total number of specs matching a list or find request,
// across all pages.
func (r Result) Total() int {
	if v, ok := r["total"].(float64); ok {
		return int(v)
	}
	return 0
}

// HasMore reports whether further pages remain beyond the current one.
func (r Result) HasMore() bool {
	v, _ := r["hasMore"].(bool)
	return v
}

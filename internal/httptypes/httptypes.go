// Package httptypes holds the declarative HTTP request/response types that
// flow through the parser, templater, and exporters. These are distinct from
// net/http's types: they represent a request or response as written (or
// declared as expected) in a request file, not a live wire exchange.
package httptypes

import (
	"fmt"
	"strings"
)

// Header is an ordered (name, value) pair. Request headers are kept as a
// slice of Header rather than a map because order is significant for wire
// emission and for deterministic diffs, and duplicate names are permitted.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Request is a declarative HTTP request: method, target, version, ordered
// headers, and an optional body.
type Request struct {
	Verb        string   `json:"verb"`
	Target      string   `json:"target"`
	HTTPVersion string   `json:"http_version"`
	Headers     []Header `json:"headers"`
	Body        *string  `json:"body,omitempty"`
}

// WithHeader appends a header and returns the request for chaining.
func (r *Request) WithHeader(name, value string) *Request {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
	return r
}

// Get builds a minimal GET request with an empty body, matching the
// original implementation's HttpRequest::get convenience constructor.
func Get(target, httpVersion string, headers []Header) Request {
	body := ""
	return Request{Verb: "GET", Target: target, HTTPVersion: httpVersion, Headers: headers, Body: &body}
}

// Post builds a minimal POST request, matching HttpRequest::post.
func Post(target, httpVersion string, headers []Header, body *string) Request {
	return Request{Verb: "POST", Target: target, HTTPVersion: httpVersion, Headers: headers, Body: body}
}

// String renders the request as an HTTP wire message: request line, header
// lines, a blank line, and the body — but only the parts that are present.
// A nil or empty body is treated as absent (no trailing blank line).
func (r Request) String() string {
	var headerBlock string
	if len(r.Headers) > 0 {
		lines := make([]string, 0, len(r.Headers))
		for _, h := range r.Headers {
			lines = append(lines, fmt.Sprintf("%s: %s", h.Name, h.Value))
		}
		headerBlock = strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
	}

	var body string
	if r.Body != nil && *r.Body != "" {
		body = *r.Body
	}

	var rest string
	switch {
	case headerBlock != "" && body != "":
		rest = headerBlock + "\n" + body
	case headerBlock != "" && body == "":
		rest = headerBlock
	case headerBlock == "" && body != "":
		rest = "\n" + body
	default:
		rest = ""
	}

	return fmt.Sprintf("%s %s HTTP/%s\n%s", r.Verb, r.Target, r.HTTPVersion, rest)
}

// StatusCode is a validated HTTP status code in the range 100-599.
type StatusCode int

// IsValidStatusCode reports whether code is a valid HTTP status code.
func IsValidStatusCode(code int) bool {
	return code >= 100 && code <= 599
}

// Response is a declarative HTTP response: version, status, headers as a
// mapping (comparison-oriented, per the data model's "Header container
// choice" design note), and an optional body.
type Response struct {
	HTTPVersion string            `json:"http_version"`
	StatusCode  int               `json:"status_code"`
	StatusText  string            `json:"status_text"`
	Headers     map[string]string `json:"headers"`
	Body        *string           `json:"body,omitempty"`
}

// String renders the response as an HTTP wire message: status line, header
// lines in map-iteration order, then the body if present and non-empty.
// Callers needing deterministic header ordering in output should sort keys
// themselves; map order is used here to keep this purely a formatting
// helper with no opinion about comparison semantics.
func (r Response) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/%s %d %s\n", r.HTTPVersion, r.StatusCode, r.StatusText)
	for name, value := range r.Headers {
		fmt.Fprintf(&b, "%s: %s\n", name, value)
	}
	if r.Body != nil && *r.Body != "" {
		b.WriteString(*r.Body)
	}
	return b.String()
}

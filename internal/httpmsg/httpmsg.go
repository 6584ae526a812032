// Package httpmsg parses the raw text of a %request or %response block into
// structured form: a request/status line, ordered headers, and a body. It
// is a small dedicated parser rather than net/http's internal machinery,
// since net/http has no exported "parse a standalone request message from a
// byte slice" entry point for this declarative, non-streaming use case.
package httpmsg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reqfile/reqfile/internal/httptypes"
)

// ParseRequest parses a raw request-line + headers + body text into an
// httptypes.Request. text must not include the fence delimiters.
func ParseRequest(text string) (httptypes.Request, error) {
	lines, body := splitHeaderAndBody(text)
	if len(lines) == 0 {
		return httptypes.Request{}, fmt.Errorf("empty request")
	}

	parts := strings.Fields(lines[0])
	if len(parts) != 3 {
		return httptypes.Request{}, fmt.Errorf("invalid request line: %q", lines[0])
	}

	verb := parts[0]
	target := parts[1]
	version, err := parseHTTPVersion(parts[2])
	if err != nil {
		return httptypes.Request{}, err
	}

	headers, err := parseHeaderLines(lines[1:])
	if err != nil {
		return httptypes.Request{}, err
	}

	req := httptypes.Request{
		Verb:        verb,
		Target:      target,
		HTTPVersion: version,
		Headers:     headers,
	}
	if body != "" {
		req.Body = &body
	} else {
		empty := ""
		req.Body = &empty
	}
	return req, nil
}

// ParseResponse parses a raw status-line + headers + body text into an
// httptypes.Response.
func ParseResponse(text string) (httptypes.Response, error) {
	lines, body := splitHeaderAndBody(text)
	if len(lines) == 0 {
		return httptypes.Response{}, fmt.Errorf("empty response")
	}

	parts := strings.SplitN(lines[0], " ", 3)
	if len(parts) < 2 {
		return httptypes.Response{}, fmt.Errorf("invalid status line: %q", lines[0])
	}

	version, err := parseHTTPVersion(parts[0])
	if err != nil {
		return httptypes.Response{}, err
	}

	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return httptypes.Response{}, fmt.Errorf("invalid status code: %q", parts[1])
	}
	if !httptypes.IsValidStatusCode(code) {
		return httptypes.Response{}, fmt.Errorf("status code out of range: %d", code)
	}

	var statusText string
	if len(parts) == 3 {
		statusText = parts[2]
	}

	headerLines, err := parseHeaderLines(lines[1:])
	if err != nil {
		return httptypes.Response{}, err
	}
	headers := make(map[string]string, len(headerLines))
	for _, h := range headerLines {
		headers[h.Name] = h.Value
	}

	resp := httptypes.Response{
		HTTPVersion: version,
		StatusCode:  code,
		StatusText:  statusText,
		Headers:     headers,
	}
	if body != "" {
		resp.Body = &body
	}
	return resp, nil
}

// parseHTTPVersion accepts both a bare "1.1" form and an "HTTP/1.1" form,
// returning just the version number.
func parseHTTPVersion(s string) (string, error) {
	s = strings.TrimPrefix(s, "HTTP/")
	if s == "" {
		return "", fmt.Errorf("missing HTTP version")
	}
	return s, nil
}

// splitHeaderAndBody splits text into header lines (request/status line
// first) and a body string, on the first blank line.
func splitHeaderAndBody(text string) ([]string, string) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.SplitN(normalized, "\n\n", 2)

	headerSection := parts[0]
	var body string
	if len(parts) == 2 {
		body = parts[1]
	}

	var lines []string
	for _, l := range strings.Split(headerSection, "\n") {
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines, body
}

func parseHeaderLines(lines []string) ([]httptypes.Header, error) {
	var headers []httptypes.Header
	for _, line := range lines {
		idx := strings.Index(line, ":")
		if idx < 0 {
			return nil, fmt.Errorf("invalid header line: %q", line)
		}
		name := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		headers = append(headers, httptypes.Header{Name: name, Value: value})
	}
	return headers, nil
}

// ForbiddenRequestHeaders is the fixed, lowercase set of header names a
// request file may not declare (spec.md §4.3); they are calculated at
// request time by the HTTP client.
var ForbiddenRequestHeaders = map[string]struct{}{
	"host":                              {},
	"accept-charset":                    {},
	"accept-encoding":                   {},
	"access-control-request-headers":    {},
	"access-control-request-method":     {},
	"connection":                        {},
	"content-length":                    {},
	"cookie":                            {},
	"date":                              {},
	"dnt":                               {},
	"expect":                            {},
	"keep-alive":                        {},
	"origin":                            {},
	"permission-policy":                 {},
	"te":                                {},
	"trailer":                           {},
	"transfer-encoding":                 {},
	"upgrade":                           {},
	"via":                               {},
}

// IsForbiddenHeader reports whether name (compared case-insensitively) is in
// the forbidden request-header set.
func IsForbiddenHeader(name string) bool {
	_, ok := ForbiddenRequestHeaders[strings.ToLower(name)]
	return ok
}

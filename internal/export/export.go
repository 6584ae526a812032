// Package export renders a templated request or response as text, in one
// of the formats spec.md §4.8 defines: an HTTP wire message, a curl
// command (requests only), pretty JSON, or the bare body (responses only).
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reqfile/reqfile/internal/httptypes"
)

// RequestFormat selects how ExportRequest renders a request.
type RequestFormat int

const (
	RequestHTTPMessage RequestFormat = iota
	RequestCurl
	RequestJSON
)

// ParseRequestFormat maps a format name to a RequestFormat.
func ParseRequestFormat(s string) (RequestFormat, error) {
	switch s {
	case "http":
		return RequestHTTPMessage, nil
	case "curl":
		return RequestCurl, nil
	case "json":
		return RequestJSON, nil
	default:
		return 0, fmt.Errorf("unknown format: %s", s)
	}
}

func (f RequestFormat) String() string {
	switch f {
	case RequestHTTPMessage:
		return "http"
	case RequestCurl:
		return "curl"
	default:
		return "json"
	}
}

// ExportRequest renders request in the given format.
func ExportRequest(request httptypes.Request, format RequestFormat) (string, error) {
	switch format {
	case RequestHTTPMessage:
		return request.String(), nil
	case RequestCurl:
		return curlCommand(request), nil
	default:
		b, err := json.MarshalIndent(request, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func curlCommand(request httptypes.Request) string {
	verbFlag := ""
	if request.Verb != "GET" {
		verbFlag = fmt.Sprintf("-X %s ", request.Verb)
	}

	var headerArgs string
	if len(request.Headers) > 0 {
		parts := make([]string, 0, len(request.Headers))
		for _, h := range request.Headers {
			parts = append(parts, fmt.Sprintf(`-H "%s: %s"`, h.Name, h.Value))
		}
		headerArgs = strings.Join(parts, " ")
	}

	var bodyArg string
	if request.Body != nil && *request.Body != "" {
		bodyArg = fmt.Sprintf("-d '%s'", *request.Body)
	}

	var headersAndBody string
	switch {
	case headerArgs != "" && bodyArg != "":
		headersAndBody = " " + headerArgs + " " + bodyArg
	case headerArgs != "":
		headersAndBody = " " + headerArgs
	case bodyArg != "":
		headersAndBody = " " + bodyArg
	}

	return fmt.Sprintf("curl %s%s --http%s%s -v", verbFlag, request.Target, request.HTTPVersion, headersAndBody)
}

// ResponseFormat selects how ExportResponse renders a response.
type ResponseFormat int

const (
	ResponseHTTPMessage ResponseFormat = iota
	ResponseJSON
	ResponseBody
)

// ParseResponseFormat maps a format name to a ResponseFormat.
func ParseResponseFormat(s string) (ResponseFormat, error) {
	switch s {
	case "http":
		return ResponseHTTPMessage, nil
	case "json":
		return ResponseJSON, nil
	case "body":
		return ResponseBody, nil
	default:
		return 0, fmt.Errorf("unknown format: %s", s)
	}
}

func (f ResponseFormat) String() string {
	switch f {
	case ResponseHTTPMessage:
		return "http"
	case ResponseBody:
		return "body"
	default:
		return "json"
	}
}

// ExportResponse renders response in the given format.
func ExportResponse(response httptypes.Response, format ResponseFormat) (string, error) {
	switch format {
	case ResponseHTTPMessage:
		return response.String(), nil
	case ResponseBody:
		if response.Body == nil {
			return "", nil
		}
		return *response.Body, nil
	default:
		b, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

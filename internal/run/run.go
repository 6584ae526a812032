// Package run adds the optional HTTP-execution path: template a request
// file, execute the resulting request over the network, and optionally
// assert the result against the file's declared %response block. The
// HTTP client used to execute the request is a swappable collaborator
// interface, not a fixed implementation; this package's data model
// allows exactly one %request per file.
package run

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/reqfile/reqfile/internal/assertresponse"
	"github.com/reqfile/reqfile/internal/httptypes"
	"github.com/reqfile/reqfile/internal/template"
)

// Executor runs a templated httptypes.Request and returns the observed
// response. It is the swappable collaborator spec.md leaves unspecified;
// Client below is this module's concrete net/http-backed implementation.
type Executor interface {
	Execute(ctx context.Context, req httptypes.Request) (httptypes.Response, error)
}

// Client executes requests with a standard net/http.Client.
type Client struct {
	HTTPClient *http.Client
}

// NewClient builds a Client with a sane default timeout.
func NewClient() *Client {
	return &Client{HTTPClient: &http.Client{Timeout: 30 * time.Second}}
}

// Execute builds a net/http.Request from req, sends it, and converts the
// response back into httptypes.Response.
func (c *Client) Execute(ctx context.Context, req httptypes.Request) (httptypes.Response, error) {
	var body io.Reader
	if req.Body != nil && *req.Body != "" {
		body = strings.NewReader(*req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Verb, req.Target, body)
	if err != nil {
		return httptypes.Response{}, fmt.Errorf("building request: %w", err)
	}
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Name, h.Value)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return httptypes.Response{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return httptypes.Response{}, fmt.Errorf("reading response body: %w", err)
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[strings.ToLower(name)] = resp.Header.Get(name)
	}

	bodyStr := string(raw)
	parts := strings.SplitN(resp.Proto, "/", 2)
	version := resp.Proto
	if len(parts) == 2 {
		version = parts[1]
	}

	return httptypes.Response{
		HTTPVersion: version,
		StatusCode:  resp.StatusCode,
		StatusText:  strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))),
		Headers:     headers,
		Body:        &bodyStr,
	}, nil
}

// Result is the outcome of running one request file: the executed
// response, and — when the file declared a %response block — the
// assertion error from comparing against it, or nil if they matched.
type Result struct {
	Response httptypes.Response
	Assert   error
}

// Options configures a single run.
type Options struct {
	Executor Executor
	Params   template.Params
	// Test runs response assertion against the file's %response block, if
	// one is declared. If the file has no %response block, Test is a no-op.
	Test bool
}

// File templates source and executes the resulting request, seeding the
// built-in @requestId provider value: a per-run UUID available to every
// request file without a %config declaration.
func File(ctx context.Context, source string, opts Options) (*Result, error) {
	params := opts.Params
	providerValues := map[string]string{"requestId": uuid.NewString()}
	for k, v := range params.ProviderValues {
		providerValues[k] = v
	}
	params.ProviderValues = providerValues

	templated, errs := template.Template(source, params)
	if errs != nil {
		var merged *multierror.Error
		for _, e := range errs {
			merged = multierror.Append(merged, e)
		}
		return nil, merged.ErrorOrNil()
	}

	executor := opts.Executor
	if executor == nil {
		executor = NewClient()
	}

	resp, err := executor.Execute(ctx, templated.Request)
	if err != nil {
		return nil, err
	}

	result := &Result{Response: resp}
	if opts.Test && templated.Response != nil {
		result.Assert = assertresponse.Assert(*templated.Response, resp)
	}
	return result, nil
}

// Package reqfile is the public API for working with request files:
// parse, template, run, assert, export and diagnose. It is a thin
// façade over the internal/ packages that do the actual work.
package reqfile

import (
	"context"

	"github.com/reqfile/reqfile/internal/assertresponse"
	"github.com/reqfile/reqfile/internal/diagnostics"
	"github.com/reqfile/reqfile/internal/export"
	"github.com/reqfile/reqfile/internal/httptypes"
	"github.com/reqfile/reqfile/internal/parser"
	"github.com/reqfile/reqfile/internal/reqerr"
	"github.com/reqfile/reqfile/internal/run"
	"github.com/reqfile/reqfile/internal/template"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ParsedRequestFile is the validated, reference-bearing view of a parsed
// request file.
type ParsedRequestFile = parser.ParsedRequestFile

// TemplatedRequestFile is a request file with every reference and
// expression resolved.
type TemplatedRequestFile = template.TemplatedRequestFile

// TemplateParams supplies the values a request file's config may demand:
// the environment to template against, and any prompt, secret or
// provider values it requires.
type TemplateParams = template.Params

// Request and Response are the structured HTTP message types a request
// file's %request and %response blocks parse into.
type Request = httptypes.Request
type Response = httptypes.Response

// RunOptions configures Run.
type RunOptions = run.Options

// RunResult is the outcome of executing a request file.
type RunResult = run.Result

// RequestFormat and ResponseFormat select an Export rendering.
type RequestFormat = export.RequestFormat
type ResponseFormat = export.ResponseFormat

const (
	RequestHTTPMessage = export.RequestHTTPMessage
	RequestCurl        = export.RequestCurl
	RequestJSON        = export.RequestJSON
)

const (
	ResponseHTTPMessage = export.ResponseHTTPMessage
	ResponseJSON        = export.ResponseJSON
	ResponseBody        = export.ResponseBody
)

// Parse runs the semantic analyzer over source, returning the validated
// request file or the full list of accumulated errors.
func Parse(source string) (*ParsedRequestFile, []reqerr.Positioned) {
	return parser.Parse(source)
}

// Template parses source and resolves every {{prefix name}} reference and
// {(expr)} expression against params, returning the fully resolved
// request (and response, if declared).
func Template(source string, params TemplateParams) (*TemplatedRequestFile, []reqerr.Positioned) {
	return template.Template(source, params)
}

// AssertResponse compares an actual response against the one expected by
// a request file's %response block, returning nil if they match or a
// *assertresponse.MismatchError describing every difference.
func AssertResponse(expected, actual Response) error {
	return assertresponse.Assert(expected, actual)
}

// ExportRequest renders a request in the given format.
func ExportRequest(request Request, format RequestFormat) (string, error) {
	return export.ExportRequest(request, format)
}

// ExportResponse renders a response in the given format.
func ExportResponse(response Response, format ResponseFormat) (string, error) {
	return export.ExportResponse(response, format)
}

// Diagnose converts a list of analyzer/templater errors into LSP-style
// diagnostics positioned against source.
func Diagnose(source string, errs []reqerr.Positioned) []protocol.Diagnostic {
	return diagnostics.FromErrors(source, errs)
}

// Run templates source and executes the resulting request, optionally
// asserting it against the file's declared %response block.
func Run(ctx context.Context, source string, opts RunOptions) (*RunResult, error) {
	return run.File(ctx, source, opts)
}

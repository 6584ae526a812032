// Package diagnostics shapes the closed reqerr taxonomy into LSP-style
// diagnostic objects: { range: {start, end}, severity, message }, using
// github.com/tliron/glsp's protocol_3_16 types.
package diagnostics

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/reqfile/reqfile/internal/reqerr"
	"github.com/reqfile/reqfile/internal/span"
)

const source = "reqfile"

// FromErrors converts a list of positioned analyzer/templater errors into
// LSP diagnostics, resolving each Span against source for line/character
// positions. Every diagnostic here is an error severity: the analyzer's
// taxonomy has no warning-level entries.
func FromErrors(src string, errs []reqerr.Positioned) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(errs))
	for _, e := range errs {
		diags = append(diags, FromError(src, e))
	}
	return diags
}

// FromError converts a single positioned error into one diagnostic.
func FromError(src string, e reqerr.Positioned) protocol.Diagnostic {
	start, end := span.ToRange(src, e.Span)
	severity := protocol.DiagnosticSeverityError
	diagSource := source
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(start.Line), Character: uint32(start.Character)},
			End:   protocol.Position{Line: uint32(end.Line), Character: uint32(end.Character)},
		},
		Severity: &severity,
		Source:   &diagSource,
		Message:  e.Error(),
	}
}

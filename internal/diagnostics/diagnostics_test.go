package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/reqfile/reqfile/internal/diagnostics"
	"github.com/reqfile/reqfile/internal/reqerr"
	"github.com/reqfile/reqfile/internal/span"
)

func TestFromErrorsResolvesPositions(t *testing.T) {
	src := "line one\nline two\n"
	errs := []reqerr.Positioned{
		reqerr.At(reqerr.MissingRequest{}, span.NoSpan),
		reqerr.At(reqerr.InvalidRequestError{Message: "boom"}, span.Span{Start: 9, End: 13}),
	}

	diags := diagnostics.FromErrors(src, errs)

	require.Len(t, diags, 2)
	assert.Equal(t, "Request file requires a request be defined", diags[0].Message)
	assert.Equal(t, uint32(0), diags[0].Range.Start.Line)

	assert.Equal(t, uint32(1), diags[1].Range.Start.Line)
	assert.Equal(t, uint32(0), diags[1].Range.Start.Character)
	require.NotNil(t, diags[1].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[1].Severity)
}

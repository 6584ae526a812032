package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqfile/reqfile/internal/reftype"
	"github.com/reqfile/reqfile/internal/scan"
	"github.com/reqfile/reqfile/internal/span"
)

func TestReferencesFindsAllKinds(t *testing.T) {
	text := "GET /{{:host}}/{{?path}}?key={{!apiKey}}&id={{@requestId}} HTTP/1.1"
	blockSpan := span.Span{Start: 0, End: len(text)}

	refs := scan.References(text, blockSpan)

	require.Len(t, refs, 4)
	assert.Equal(t, reftype.Ref{Kind: reftype.Variable, Name: "host"}, refs[0].Value)
	assert.Equal(t, reftype.Ref{Kind: reftype.Prompt, Name: "path"}, refs[1].Value)
	assert.Equal(t, reftype.Ref{Kind: reftype.Secret, Name: "apiKey"}, refs[2].Value)
	assert.Equal(t, reftype.Ref{Kind: reftype.Provider, Name: "requestId"}, refs[3].Value)
	for _, r := range refs {
		assert.Equal(t, blockSpan, r.Span)
	}
}

func TestExpressionsCapturesRawBodyAndOffset(t *testing.T) {
	text := "prefix {(1 + 1)} suffix"

	exprs := scan.Expressions(text, 100)

	require.Len(t, exprs, 1)
	assert.Equal(t, "1 + 1", exprs[0].Value)
	assert.Equal(t, 100+len("prefix "), exprs[0].Span.Start)
	assert.Equal(t, 100+len("prefix {(1 + 1)}"), exprs[0].Span.End)
}

func TestReferencesInExpressionsRescansBodies(t *testing.T) {
	exprs := []span.Spanned[string]{
		span.New("1 + {{:count}}", span.Span{Start: 5, End: 20}),
	}
	blockSpan := span.Span{Start: 0, End: 30}

	refs := scan.ReferencesInExpressions(exprs, blockSpan)

	require.Len(t, refs, 1)
	assert.Equal(t, reftype.Ref{Kind: reftype.Variable, Name: "count"}, refs[0].Value)
	assert.Equal(t, blockSpan, refs[0].Span)
}

package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqfile/reqfile/internal/extract"
)

func TestExtractFindsMatchingBlock(t *testing.T) {
	source := "intro\n\n```%request\nGET / HTTP/1.1\n```\n\noutro\n"

	blocks := extract.Extract(source, "%request")

	require.Len(t, blocks, 1)
	assert.Equal(t, "GET / HTTP/1.1", blocks[0].Inner.Value)
	assert.Equal(t, source[blocks[0].Outer.Start:blocks[0].Outer.End], "```%request\nGET / HTTP/1.1\n```")
	assert.Equal(t, source[blocks[0].Inner.Span.Start:blocks[0].Inner.Span.End], "GET / HTTP/1.1")
}

func TestExtractIgnoresOtherLanguages(t *testing.T) {
	source := "```json\n{}\n```\n"

	blocks := extract.Extract(source, "%request")

	assert.Empty(t, blocks)
}

func TestExtractFindsMultipleBlocksInOrder(t *testing.T) {
	source := "```%request\nGET / HTTP/1.1\n```\n" +
		"```%response\nHTTP/1.1 200 OK\n```\n"

	requests := extract.Extract(source, "%request")
	responses := extract.Extract(source, "%response")

	require.Len(t, requests, 1)
	require.Len(t, responses, 1)
	assert.Less(t, requests[0].Outer.Start, responses[0].Outer.Start)
}

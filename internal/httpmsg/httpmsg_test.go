package httpmsg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqfile/reqfile/internal/httpmsg"
)

func TestParseRequestMinimal(t *testing.T) {
	req, err := httpmsg.ParseRequest("GET https://example.com/ HTTP/1.1")

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Verb)
	assert.Equal(t, "https://example.com/", req.Target)
	assert.Equal(t, "1.1", req.HTTPVersion)
	assert.Empty(t, req.Headers)
}

func TestParseRequestWithHeaderAndBody(t *testing.T) {
	req, err := httpmsg.ParseRequest("POST /?query=dev_value HTTP/1.1\nx-test: tv\n\n[1, 2, 3]")

	require.NoError(t, err)
	require.Len(t, req.Headers, 1)
	assert.Equal(t, "x-test", req.Headers[0].Name)
	assert.Equal(t, "tv", req.Headers[0].Value)
	require.NotNil(t, req.Body)
	assert.Equal(t, "[1, 2, 3]", *req.Body)
}

func TestParseResponse(t *testing.T) {
	resp, err := httpmsg.ParseResponse("HTTP/1.1 200 OK\ncontent-type: application/html\n\n<html></html>")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", resp.StatusText)
	assert.Equal(t, "application/html", resp.Headers["content-type"])
	require.NotNil(t, resp.Body)
	assert.Equal(t, "<html></html>", *resp.Body)
}

func TestForbiddenHeader(t *testing.T) {
	assert.True(t, httpmsg.IsForbiddenHeader("Host"))
	assert.True(t, httpmsg.IsForbiddenHeader("HOST"))
	assert.False(t, httpmsg.IsForbiddenHeader("x-test"))
}

package httptypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reqfile/reqfile/internal/httptypes"
)

func TestRequestStringGetNoBody(t *testing.T) {
	req := httptypes.Get("/", "1.1", nil)
	assert.Equal(t, "GET / HTTP/1.1\n", req.String())
}

func TestRequestStringWithHeadersAndBody(t *testing.T) {
	body := "hello"
	req := httptypes.Post("/submit", "1.1", []httptypes.Header{{Name: "Content-Type", Value: "text/plain"}}, &body)
	assert.Equal(t, "POST /submit HTTP/1.1\nContent-Type: text/plain\n\nhello", req.String())
}

func TestWithHeaderAppends(t *testing.T) {
	req := httptypes.Get("/", "1.1", nil)
	req.WithHeader("X-Test", "1").WithHeader("X-Other", "2")

	assert.Equal(t, []httptypes.Header{{Name: "X-Test", Value: "1"}, {Name: "X-Other", Value: "2"}}, req.Headers)
}

func TestIsValidStatusCode(t *testing.T) {
	assert.True(t, httptypes.IsValidStatusCode(200))
	assert.True(t, httptypes.IsValidStatusCode(100))
	assert.True(t, httptypes.IsValidStatusCode(599))
	assert.False(t, httptypes.IsValidStatusCode(99))
	assert.False(t, httptypes.IsValidStatusCode(600))
}

func TestResponseStringOmitsEmptyBody(t *testing.T) {
	empty := ""
	resp := httptypes.Response{HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK", Body: &empty}
	assert.Equal(t, "HTTP/1.1 200 OK\n", resp.String())
}

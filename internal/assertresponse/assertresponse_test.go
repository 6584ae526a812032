package assertresponse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqfile/reqfile/internal/assertresponse"
	"github.com/reqfile/reqfile/internal/httptypes"
)

func body(s string) *string { return &s }

func TestAssertExactMatch(t *testing.T) {
	expected := httptypes.Response{
		HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK",
		Headers: map[string]string{"content-type": "application/json"},
		Body:    body(`{"key": "value"}`),
	}
	actual := expected

	assert.NoError(t, assertresponse.Assert(expected, actual))
}

func TestAssertMismatchedStatus(t *testing.T) {
	expected := httptypes.Response{HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK"}
	actual := httptypes.Response{HTTPVersion: "1.1", StatusCode: 201, StatusText: "CREATED"}

	diffs := assertresponse.Compare(expected, actual)

	require.Len(t, diffs, 2)
	assert.Equal(t, assertresponse.StatusCode, diffs[0].Kind)
	assert.Equal(t, "200", diffs[0].Expected)
	assert.Equal(t, "201", diffs[0].Actual)
	assert.Equal(t, assertresponse.StatusText, diffs[1].Kind)
	assert.Equal(t, "OK", diffs[1].Expected)
	assert.Equal(t, "CREATED", diffs[1].Actual)
}

func TestAssertMissingHeader(t *testing.T) {
	expected := httptypes.Response{
		HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK",
		Headers: map[string]string{"content-type": "application/json", "x-custom-header": "custom-value"},
	}
	actual := httptypes.Response{
		HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK",
		Headers: map[string]string{"content-type": "application/json"},
	}

	diffs := assertresponse.Compare(expected, actual)

	require.Len(t, diffs, 1)
	assert.Equal(t, assertresponse.MissingHeader, diffs[0].Kind)
	assert.Equal(t, "x-custom-header", diffs[0].Header)
}

func TestAssertExtraHeaderIgnored(t *testing.T) {
	expected := httptypes.Response{
		HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK",
		Headers: map[string]string{"content-type": "application/json"},
	}
	actual := httptypes.Response{
		HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK",
		Headers: map[string]string{"content-type": "application/json", "x-custom-header": "custom-value"},
	}

	assert.NoError(t, assertresponse.Assert(expected, actual))
}

func TestAssertMismatchHeaderValue(t *testing.T) {
	expected := httptypes.Response{
		HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK",
		Headers: map[string]string{"content-type": "application/json"},
	}
	actual := httptypes.Response{
		HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK",
		Headers: map[string]string{"content-type": "text/plain"},
	}

	diffs := assertresponse.Compare(expected, actual)

	require.Len(t, diffs, 1)
	assert.Equal(t, assertresponse.MismatchHeaderValue, diffs[0].Kind)
	assert.Equal(t, "content-type", diffs[0].Header)
	assert.Equal(t, "application/json", diffs[0].Expected)
	assert.Equal(t, "text/plain", diffs[0].Actual)
}

func TestAssertMismatchBody(t *testing.T) {
	expected := httptypes.Response{HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK", Body: body("Hello World!")}
	actual := httptypes.Response{HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK", Body: body("Greetings World!")}

	diffs := assertresponse.Compare(expected, actual)

	require.Len(t, diffs, 1)
	assert.Equal(t, assertresponse.Body, diffs[0].Kind)

	err := assertresponse.Assert(expected, actual)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hello World!")
	assert.Contains(t, err.Error(), "Greetings World!")
}

func TestAssertBodyNotRequiredWhenExpectedHasNone(t *testing.T) {
	expected := httptypes.Response{HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK"}
	actual := httptypes.Response{HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK", Body: body("anything")}

	assert.NoError(t, assertresponse.Assert(expected, actual))
}

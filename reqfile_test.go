package reqfile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqfile/reqfile"
)

func TestParseMinimalRequestFile(t *testing.T) {
	source := "```%request\nGET / HTTP/1.1\n```\n"

	parsed, errs := reqfile.Parse(source)

	require.Nil(t, errs)
	require.NotNil(t, parsed)
	assert.Equal(t, "GET", parsed.Request.Value.Verb)
}

func TestTemplateAndExportRoundTrip(t *testing.T) {
	source := "```%request\nGET /?id={(1+1)} HTTP/1.1\n```\n"

	templated, errs := reqfile.Template(source, reqfile.TemplateParams{})
	require.Nil(t, errs)
	require.NotNil(t, templated)

	curl, err := reqfile.ExportRequest(templated.Request, reqfile.RequestCurl)
	require.NoError(t, err)
	assert.Equal(t, "curl /?id=2 --http1.1 -v", curl)
}

type stubExecutor struct {
	response reqfile.Response
}

func (s stubExecutor) Execute(_ context.Context, _ reqfile.Request) (reqfile.Response, error) {
	return s.response, nil
}

func TestRunExecutesAndAsserts(t *testing.T) {
	source := "```%request\nGET / HTTP/1.1\n```\n" +
		"```%response\nHTTP/1.1 200 OK\n```\n"

	exec := stubExecutor{response: reqfile.Response{HTTPVersion: "1.1", StatusCode: 200, StatusText: "OK"}}
	result, err := reqfile.Run(context.Background(), source, reqfile.RunOptions{Executor: exec, Test: true})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NoError(t, result.Assert)
}

func TestDiagnoseReturnsOnePerError(t *testing.T) {
	source := "no request block here\n"

	_, errs := reqfile.Parse(source)
	require.NotEmpty(t, errs)

	diags := reqfile.Diagnose(source, errs)
	assert.Len(t, diags, len(errs))
}

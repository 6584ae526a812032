package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqfile/reqfile/internal/reqerr"
	"github.com/reqfile/reqfile/internal/template"
)

func TestTemplateMinimalRequestNoRefs(t *testing.T) {
	source := "```%request\nGET https://example.com/ HTTP/1.1\n```\n"

	result, errs := template.Template(source, template.Params{})

	require.Empty(t, errs)
	require.NotNil(t, result)
	assert.Equal(t, "GET", result.Request.Verb)
	assert.Equal(t, "https://example.com/", result.Request.Target)
}

func TestTemplateResolvesVarsPromptsSecretsViaEnv(t *testing.T) {
	source := "```%config\n" +
		"secrets = [\"api_key\"]\n\n" +
		"[[vars]]\n" +
		"name = \"query_value\"\n\n" +
		"[envs.dev]\n" +
		"query_value = \"dev_value\"\n\n" +
		"[[prompts]]\n" +
		"name = \"test_value\"\n" +
		"```\n" +
		"```%request\n" +
		"POST /?query={{:query_value}} HTTP/1.1\n" +
		"x-test: {{?test_value}}\n" +
		"x-api-key: {{!api_key}}\n\n" +
		"[1, 2, 3]\n" +
		"```\n"

	env := "dev"
	result, errs := template.Template(source, template.Params{
		Env:     &env,
		Prompts: map[string]string{"test_value": "prompted"},
		Secrets: map[string]string{"api_key": "sekrit"},
	})

	require.Empty(t, errs)
	require.NotNil(t, result)
	assert.Equal(t, "/?query=dev_value", result.Request.Target)
	require.Len(t, result.Request.Headers, 2)
	assert.Equal(t, "prompted", result.Request.Headers[0].Value)
	assert.Equal(t, "sekrit", result.Request.Headers[1].Value)
}

func TestTemplateMissingEnvironment(t *testing.T) {
	source := "```%config\n" +
		"[[vars]]\n" +
		"name = \"query_value\"\n\n" +
		"[envs.dev]\n" +
		"query_value = \"dev_value\"\n" +
		"```\n" +
		"```%request\n" +
		"GET /?query={{:query_value}} HTTP/1.1\n" +
		"```\n"

	env := "prod"
	_, errs := template.Template(source, template.Params{Env: &env})

	require.Len(t, errs, 1)
	var ie reqerr.InvalidEnvError
	require.ErrorAs(t, errs[0], &ie)
	assert.Equal(t, "prod", ie.Env)
}

func TestTemplateMissingSecretFailsFast(t *testing.T) {
	source := "```%config\nsecrets = [\"api_key\"]\n```\n" +
		"```%request\nGET /?k={{!api_key}} HTTP/1.1\n```\n"

	_, errs := template.Template(source, template.Params{})

	require.Len(t, errs, 1)
	var se reqerr.SecretValueNotPassed
	require.ErrorAs(t, errs[0], &se)
	assert.Equal(t, "api_key", se.Name)
}

func TestTemplateProviderValue(t *testing.T) {
	source := "```%request\nGET /?id={{@requestId}} HTTP/1.1\n```\n"

	result, errs := template.Template(source, template.Params{
		ProviderValues: map[string]string{"requestId": "abc-123"},
	})

	require.Empty(t, errs)
	require.NotNil(t, result)
	assert.Equal(t, "/?id=abc-123", result.Request.Target)
}

func TestTemplateExpression(t *testing.T) {
	source := "```%request\nGET /?sum={(1+1)} HTTP/1.1\n```\n"

	result, errs := template.Template(source, template.Params{})

	require.Empty(t, errs)
	require.NotNil(t, result)
	assert.Equal(t, "/?sum=2", result.Request.Target)
}

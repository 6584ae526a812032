// Package template implements the templater (spec.md §4.6): it resolves
// every {{prefix name}} reference and {(expr)} expression in a parsed
// request file against caller-supplied vars/prompts/secrets/provider values
// and yields a fully substituted TemplatedRequestFile.
//
// {(expr)} bodies are genuine expressions, so they are handed to the
// embedded expression language (google/cel-go). A bare {{prefix name}}
// reference is not an expression, just a namespaced lookup with its own
// resolution rule already spelled out in spec.md's reference table (env
// override, else default, else prompt/secret/provider value) — running
// that through a general expression evaluator would add risk without
// adding behavior, so it is resolved by direct lookup instead. This
// divergence from a literal "compile every reference" reading is recorded
// in DESIGN.md.
package template

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/reqfile/reqfile/internal/ast"
	"github.com/reqfile/reqfile/internal/httpmsg"
	"github.com/reqfile/reqfile/internal/httptypes"
	"github.com/reqfile/reqfile/internal/parser"
	"github.com/reqfile/reqfile/internal/reftype"
	"github.com/reqfile/reqfile/internal/reqerr"
	"github.com/reqfile/reqfile/internal/span"
)

// TemplatedRequestFile is the fully substituted, reference-free result of
// templating (spec.md §4.6): ready for export or execution.
type TemplatedRequestFile struct {
	Request  httptypes.Request
	Response *httptypes.Response
}

// Params bundles the caller-supplied values the templater resolves
// references against. Env selects which declared environment's variable
// values apply; nil means "no environment", in which case variables fall
// back to their declared defaults only.
type Params struct {
	Env            *string
	Prompts        map[string]string
	Secrets        map[string]string
	ProviderValues map[string]string
}

// Template runs the full six-step templating algorithm over source,
// fail-fast between steps (a failed step aborts before the next runs) but
// accumulating every independent error found within a step.
func Template(source string, params Params) (*TemplatedRequestFile, []reqerr.Positioned) {
	// Step 1: parse.
	parsed, errs := parser.Parse(source)
	if errs != nil {
		return nil, errs
	}

	// Step 2: validate the requested environment.
	var varValues map[string]string
	if params.Env != nil {
		if parsed.Config == nil || len(parsed.Config.Envs) == 0 {
			return nil, []reqerr.Positioned{reqerr.At(reqerr.NoEnvironmentsDefined{Env: *params.Env}, parsed.ConfigSpan)}
		}
		resolved, ok := parsed.Config.Env(*params.Env)
		if !ok {
			return nil, []reqerr.Positioned{reqerr.At(reqerr.InvalidEnvError{Env: *params.Env}, parsed.ConfigSpan)}
		}
		varValues = resolved
	} else if parsed.Config != nil {
		varValues = parsed.Config.DefaultVariableValues()
	}

	// Step 3: validate required prompts and secrets are all supplied.
	var missing []reqerr.Positioned
	if parsed.Config != nil {
		for _, name := range parsed.Config.RequiredPrompts() {
			if _, ok := params.Prompts[name]; !ok {
				missing = append(missing, reqerr.At(reqerr.PromptValueNotPassed{Name: name}, parsed.ConfigSpan))
			}
		}
		for _, name := range parsed.Config.Secrets {
			if _, ok := params.Secrets[name]; !ok {
				missing = append(missing, reqerr.At(reqerr.SecretValueNotPassed{Name: name}, parsed.ConfigSpan))
			}
		}
	}
	if len(missing) > 0 {
		return nil, missing
	}

	// Step 4: resolve every reference and expression to a replacement
	// string, accumulating failures across both within this single step.
	var promptDefaults, varDefaults map[string]string
	if parsed.Config != nil {
		promptDefaults = parsed.Config.DefaultPromptValues()
		varDefaults = parsed.Config.DefaultVariableValues()
	}

	// When an environment is supplied, its name is additionally bound
	// under the client-context key "env" so that {{@env}} resolves to it.
	providerValues := make(map[string]string, len(params.ProviderValues)+1)
	for k, v := range params.ProviderValues {
		providerValues[k] = v
	}
	if params.Env != nil {
		providerValues["env"] = *params.Env
	}

	resolveRef := func(r reftype.Ref) (string, bool) {
		switch r.Kind {
		case reftype.Variable:
			if varValues != nil {
				if v, ok := varValues[r.Name]; ok {
					return v, true
				}
			}
			if v, ok := varDefaults[r.Name]; ok {
				return v, true
			}
			return "", false
		case reftype.Prompt:
			if v, ok := params.Prompts[r.Name]; ok {
				return v, true
			}
			if v, ok := promptDefaults[r.Name]; ok {
				return v, true
			}
			return "", false
		case reftype.Secret:
			v, ok := params.Secrets[r.Name]
			return v, ok
		case reftype.Provider:
			// A name absent here errors rather than passing through as a
			// literal token: provider values are runtime-supplied, so there
			// is no "default" to fall back to.
			v, ok := providerValues[r.Name]
			return v, ok
		default:
			return "", false
		}
	}

	replacements := map[string]string{}
	var templateErrs []reqerr.Positioned
	for _, r := range parsed.Refs {
		if r.Value.Kind == reftype.Unknown {
			continue
		}
		token := r.Value.Token()
		if _, done := replacements[token]; done {
			continue
		}
		v, ok := resolveRef(r.Value)
		if !ok {
			templateErrs = append(templateErrs, reqerr.At(reqerr.UndefinedReferenceError{Ref: r.Value}, r.Span))
			continue
		}
		replacements[token] = v
	}

	celEnv, celErr := buildCELEnv(parsed, providerValues)
	if celErr != nil {
		templateErrs = append(templateErrs, reqerr.At(
			reqerr.ExpressionEvaluationError{Source: "", Detail: celErr.Error()}, span.NoSpan))
	} else {
		for _, e := range parsed.Exprs {
			token := "{(" + e.Value + ")}"
			if _, done := replacements[token]; done {
				continue
			}
			value, evalErr := evalExpression(celEnv, e.Value, parsed, params, varValues, providerValues)
			if evalErr != nil {
				templateErrs = append(templateErrs, reqerr.At(
					reqerr.ExpressionEvaluationError{Source: e.Value, Detail: evalErr.Error()}, e.Span))
				continue
			}
			replacements[token] = value
		}
	}

	if len(templateErrs) > 0 {
		return nil, templateErrs
	}

	// Step 5: apply every replacement as a single whole-string substitution
	// pass over the source text, then re-parse the request/response blocks.
	working := source
	for token, value := range replacements {
		working = strings.ReplaceAll(working, token, value)
	}

	tree := ast.From(working)
	reqBody, hasReq := tree.Request()
	if !hasReq {
		return nil, []reqerr.Positioned{reqerr.At(fmt.Errorf("internal error: request block lost during templating"), span.NoSpan)}
	}
	req, err := httpmsg.ParseRequest(reqBody.Value + "\n\n")
	if err != nil {
		return nil, []reqerr.Positioned{reqerr.At(fmt.Errorf("internal error: templated request failed to parse: %w", err), span.NoSpan)}
	}

	result := &TemplatedRequestFile{Request: req}
	if respBody, hasResp := tree.Response(); hasResp {
		resp, err := httpmsg.ParseResponse(respBody.Value + "\n\n")
		if err != nil {
			return nil, []reqerr.Positioned{reqerr.At(fmt.Errorf("internal error: templated response failed to parse: %w", err), span.NoSpan)}
		}
		result.Response = &resp
	}

	// Step 6: done — result carries no further references.
	return result, nil
}

// buildCELEnv declares every name the {(expr)} bodies in this file might
// reference: declared vars, prompts, secrets, and any provider value key
// the caller supplied (including the synthetic client-context keys, such
// as "env", that Template binds ahead of resolution). Undeclared names
// used inside an expression surface as a compile failure, reported as
// ExpressionEvaluationError.
func buildCELEnv(parsed *parser.ParsedRequestFile, providerValues map[string]string) (*cel.Env, error) {
	seen := map[string]struct{}{}
	var opts []cel.EnvOption
	declare := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		opts = append(opts, cel.Variable(name, cel.StringType))
	}

	if parsed.Config != nil {
		for _, name := range parsed.Config.VarNames() {
			declare(name)
		}
		for _, name := range parsed.Config.PromptNames() {
			declare(name)
		}
		for _, name := range parsed.Config.Secrets {
			declare(name)
		}
	}
	for name := range providerValues {
		declare(name)
	}

	return cel.NewEnv(opts...)
}

// evalExpression compiles and evaluates a single {(expr)} body, binding
// every declared name to its resolved string value (empty string if
// unresolved, matching the templater's own reference-resolution rule).
func evalExpression(
	env *cel.Env,
	exprSource string,
	parsed *parser.ParsedRequestFile,
	params Params,
	varValues map[string]string,
	providerValues map[string]string,
) (string, error) {
	checked, issues := env.Compile(exprSource)
	if issues != nil && issues.Err() != nil {
		return "", issues.Err()
	}

	prg, err := env.Program(checked)
	if err != nil {
		return "", err
	}

	bindings := map[string]interface{}{}
	if parsed.Config != nil {
		for _, v := range parsed.Config.VarNames() {
			if val, ok := varValues[v]; ok {
				bindings[v] = val
			} else if def, ok := parsed.Config.DefaultVariableValues()[v]; ok {
				bindings[v] = def
			} else {
				bindings[v] = ""
			}
		}
		for _, p := range parsed.Config.PromptNames() {
			if val, ok := params.Prompts[p]; ok {
				bindings[p] = val
			} else if def, ok := parsed.Config.DefaultPromptValues()[p]; ok {
				bindings[p] = def
			} else {
				bindings[p] = ""
			}
		}
		for _, s := range parsed.Config.Secrets {
			bindings[s] = params.Secrets[s]
		}
	}
	for name, value := range providerValues {
		bindings[name] = value
	}

	out, _, err := prg.Eval(bindings)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", out.Value()), nil
}

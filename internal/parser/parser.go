// Package parser implements the error-accumulating semantic analyzer
// (spec.md §4.4): it runs every validation phase to completion and returns
// either a ParsedRequestFile or the full list of accumulated errors.
package parser

import (
	"strings"

	"github.com/reqfile/reqfile/internal/ast"
	"github.com/reqfile/reqfile/internal/config"
	"github.com/reqfile/reqfile/internal/httpmsg"
	"github.com/reqfile/reqfile/internal/httptypes"
	"github.com/reqfile/reqfile/internal/reftype"
	"github.com/reqfile/reqfile/internal/reqerr"
	"github.com/reqfile/reqfile/internal/scan"
	"github.com/reqfile/reqfile/internal/span"
)

// ParsedRequestFile is the fully validated, still reference-bearing view of
// a request file.
type ParsedRequestFile struct {
	Config     *config.Parsed
	ConfigSpan span.Span
	Request    span.Spanned[httptypes.Request]
	Response   *span.Spanned[httptypes.Response]
	Refs       []span.Spanned[reftype.Ref]
	Exprs      []span.Spanned[string]
}

// Parse runs the full semantic analyzer over source, accumulating every
// independent error before returning. On success the error slice is nil.
func Parse(source string) (*ParsedRequestFile, []reqerr.Positioned) {
	var errs []reqerr.Positioned

	tree := ast.From(source)

	reqBody, hasReq := tree.Request()
	var reqNodeSpan span.Span
	for _, n := range tree.Nodes {
		if _, ok := n.Value.(ast.RequestBlock); ok {
			reqNodeSpan = n.Span
			break
		}
	}

	if !hasReq {
		return nil, []reqerr.Positioned{reqerr.At(reqerr.MissingRequest{}, span.NoSpan)}
	}

	respBody, hasResp := tree.Response()
	var respNodeSpan span.Span
	for _, n := range tree.Nodes {
		if _, ok := n.Value.(ast.ResponseBlock); ok {
			respNodeSpan = n.Span
			break
		}
	}

	cfgBody, hasCfg := tree.Config()
	var cfgNodeSpan span.Span
	for _, n := range tree.Nodes {
		if _, ok := n.Value.(ast.ConfigBlock); ok {
			cfgNodeSpan = n.Span
			break
		}
	}

	// Phase 2: scan references/expressions — request, then response, then
	// config, then expression-embedded references (spec.md §5 ordering).
	var refs []span.Spanned[reftype.Ref]
	var exprs []span.Spanned[string]

	var respExprs, cfgExprs []span.Spanned[string]

	refs = append(refs, scan.References(reqBody.Value, reqNodeSpan)...)
	reqExprs := scan.Expressions(reqBody.Value, reqBody.Span.Start)
	exprs = append(exprs, reqExprs...)

	if hasResp {
		refs = append(refs, scan.References(respBody.Value, respNodeSpan)...)
		respExprs = scan.Expressions(respBody.Value, respBody.Span.Start)
		exprs = append(exprs, respExprs...)
	}

	if hasCfg {
		refs = append(refs, scan.References(cfgBody.Value, cfgNodeSpan)...)
		cfgExprs = scan.Expressions(cfgBody.Value, cfgBody.Span.Start)
		exprs = append(exprs, cfgExprs...)
	}

	refs = append(refs, scan.ReferencesInExpressions(reqExprs, reqNodeSpan)...)
	if hasResp {
		refs = append(refs, scan.ReferencesInExpressions(respExprs, respNodeSpan)...)
	}
	if hasCfg {
		refs = append(refs, scan.ReferencesInExpressions(cfgExprs, cfgNodeSpan)...)
	}

	// Phase 3: parse HTTP request.
	req, err := httpmsg.ParseRequest(reqBody.Value + "\n\n")
	if err != nil {
		errs = append(errs, reqerr.At(reqerr.InvalidRequestError{Message: err.Error()}, reqNodeSpan))
	}
	for _, h := range req.Headers {
		if httpmsg.IsForbiddenHeader(h.Name) {
			errs = append(errs, reqerr.At(
				reqerr.ForbiddenRequestHeaderNameError{Name: strings.ToLower(h.Name)}, reqNodeSpan))
		}
	}

	// Phase 4: parse HTTP response, if present.
	var resp httptypes.Response
	if hasResp {
		resp, err = httpmsg.ParseResponse(respBody.Value + "\n\n")
		if err != nil {
			errs = append(errs, reqerr.At(reqerr.InvalidRequestError{Message: err.Error()}, respNodeSpan))
		}
	}

	// Phase 5: parse TOML config, if present.
	var cfg *config.Parsed
	if hasCfg {
		var cfgErr error
		cfg, cfgErr = config.Parse(cfgBody.Value)
		if cfgErr != nil {
			pe, _ := cfgErr.(*config.ParseError)
			lineOffset := 0
			if pe != nil && pe.Line > 0 {
				lineOffset = span.FromPosition(cfgBody.Value, span.Position{Line: pe.Line - 1, Character: 0})
			}
			at := span.Span{Start: cfgBody.Span.Start + lineOffset, End: cfgBody.Span.Start + lineOffset}
			errs = append(errs, reqerr.At(reqerr.InvalidConfigError{Message: cfgErr.Error()}, at))
		}
	}

	// Phase 6: validate vars-in-envs.
	if cfg != nil {
		for _, v := range cfg.Vars {
			if len(cfg.Envs) == 0 {
				errs = append(errs, reqerr.At(reqerr.VariableNotDefinedInAnyEnvironment{Var: v.Name}, cfgNodeSpan))
				continue
			}
			for envName, envValues := range cfg.Envs {
				if _, ok := envValues[v.Name]; ok {
					continue
				}
				if v.Default != nil {
					continue
				}
				errs = append(errs, reqerr.At(reqerr.VariableUndefinedInEnvironment{Var: v.Name, Env: envName}, cfgNodeSpan))
			}
		}
	}

	// Phase 7: validate references against declared config.
	for _, r := range refs {
		switch r.Value.Kind {
		case reftype.Variable:
			if !declaredVar(cfg, r.Value.Name) {
				errs = append(errs, reqerr.At(reqerr.UndefinedReferenceError{Ref: r.Value}, r.Span))
			}
		case reftype.Prompt:
			if !declaredPrompt(cfg, r.Value.Name) {
				errs = append(errs, reqerr.At(reqerr.UndefinedReferenceError{Ref: r.Value}, r.Span))
			}
		case reftype.Secret:
			if !declaredSecret(cfg, r.Value.Name) {
				errs = append(errs, reqerr.At(reqerr.UndefinedReferenceError{Ref: r.Value}, r.Span))
			}
		}
	}

	// Phase 8: validate declared-but-unused.
	if cfg != nil {
		for _, v := range cfg.Vars {
			if !usedSomewhere(refs, exprs, reftype.Variable, v.Name) {
				errs = append(errs, reqerr.At(reqerr.UnusedValueError{Ref: reftype.Ref{Kind: reftype.Variable, Name: v.Name}}, cfgNodeSpan))
			}
		}
		for _, p := range cfg.Prompts {
			if !usedSomewhere(refs, exprs, reftype.Prompt, p.Name) {
				errs = append(errs, reqerr.At(reqerr.UnusedValueError{Ref: reftype.Ref{Kind: reftype.Prompt, Name: p.Name}}, cfgNodeSpan))
			}
		}
		for _, s := range cfg.Secrets {
			if !usedSomewhere(refs, exprs, reftype.Secret, s) {
				errs = append(errs, reqerr.At(reqerr.UnusedValueError{Ref: reftype.Ref{Kind: reftype.Secret, Name: s}}, cfgNodeSpan))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	parsed := &ParsedRequestFile{
		Config:     cfg,
		ConfigSpan: cfgNodeSpan,
		Request:    span.New(req, reqNodeSpan),
		Refs:       refs,
		Exprs:      exprs,
	}
	if hasResp {
		r := span.New(resp, respNodeSpan)
		parsed.Response = &r
	}
	return parsed, nil
}

func declaredVar(cfg *config.Parsed, name string) bool {
	if cfg == nil {
		return false
	}
	for _, v := range cfg.Vars {
		if v.Name == name {
			return true
		}
	}
	return false
}

func declaredPrompt(cfg *config.Parsed, name string) bool {
	if cfg == nil {
		return false
	}
	for _, p := range cfg.Prompts {
		if p.Name == name {
			return true
		}
	}
	return false
}

func declaredSecret(cfg *config.Parsed, name string) bool {
	if cfg == nil {
		return false
	}
	for _, s := range cfg.Secrets {
		if s == name {
			return true
		}
	}
	return false
}

// usedSomewhere reports whether name (of the given kind) appears in refs, or
// as a substring of any expression body (matching the source behavior's
// substring test, per spec.md §4.4 phase 8 and §9's open question).
func usedSomewhere(refs []span.Spanned[reftype.Ref], exprs []span.Spanned[string], kind reftype.Kind, name string) bool {
	for _, r := range refs {
		if r.Value.Kind == kind && r.Value.Name == name {
			return true
		}
	}
	for _, e := range exprs {
		if strings.Contains(e.Value, name) {
			return true
		}
	}
	return false
}

// Package reqerr defines the closed error taxonomy for parsing, resolving,
// and templating request files (spec.md §7). Message templates are
// transcribed from the original implementation's errors.rs, the
// authoritative wording for this taxonomy.
package reqerr

import (
	"fmt"

	"github.com/reqfile/reqfile/internal/reftype"
	"github.com/reqfile/reqfile/internal/span"
)

// Positioned pairs any taxonomy error with the span it occurred at,
// matching the original's Spanned<ReqlangError>.
type Positioned struct {
	Err  error
	Span span.Span
}

func (p Positioned) Error() string { return p.Err.Error() }
func (p Positioned) Unwrap() error { return p.Err }

// At builds a Positioned error.
func At(err error, sp span.Span) Positioned {
	return Positioned{Err: err, Span: sp}
}

// MissingRequest: the request file has no %request block.
type MissingRequest struct{}

func (MissingRequest) Error() string { return "Request file requires a request be defined" }

// InvalidRequestError: the %request block failed to parse as HTTP.
type InvalidRequestError struct{ Message string }

func (e InvalidRequestError) Error() string { return fmt.Sprintf("Request is invalid: %s", e.Message) }

// InvalidConfigError: the %config block failed to parse as TOML.
type InvalidConfigError struct{ Message string }

func (e InvalidConfigError) Error() string { return fmt.Sprintf("Config is invalid: %s", e.Message) }

// UndefinedReferenceError: a reference names an undeclared var/prompt/secret.
type UndefinedReferenceError struct{ Ref reftype.Ref }

func (e UndefinedReferenceError) Error() string {
	return fmt.Sprintf("Undefined template reference: %s", e.Ref)
}

// UnusedValueError: a declared var/prompt/secret is never referenced.
type UnusedValueError struct{ Ref reftype.Ref }

func (e UnusedValueError) Error() string {
	return fmt.Sprintf(
		"Value was declared but not used. Try adding the template reference %s to the request or response.",
		e.Ref,
	)
}

// ForbiddenRequestHeaderNameError: a request header is calculated at
// request time and cannot be user-specified.
type ForbiddenRequestHeaderNameError struct{ Name string }

func (e ForbiddenRequestHeaderNameError) Error() string {
	return fmt.Sprintf(
		"This request header is calculated at request time and can not be specified by user: %s",
		e.Name,
	)
}

// VariableUndefinedInEnvironment: a var has no default and is missing from
// a declared environment.
type VariableUndefinedInEnvironment struct{ Var, Env string }

func (e VariableUndefinedInEnvironment) Error() string {
	return fmt.Sprintf("Variable '%s' is undefined in the environment '%s'", e.Var, e.Env)
}

// VariableNotDefinedInAnyEnvironment: a var is declared but no environments
// exist at all.
type VariableNotDefinedInAnyEnvironment struct{ Var string }

func (e VariableNotDefinedInAnyEnvironment) Error() string {
	return fmt.Sprintf("Variable '%s' is not defined in any environment or no environments are defined", e.Var)
}

// InvalidEnvError: the requested environment name is not declared.
type InvalidEnvError struct{ Env string }

func (e InvalidEnvError) Error() string {
	return fmt.Sprintf("'%s' is not a defined environment in the request file", e.Env)
}

// NoEnvironmentsDefined: an environment was requested but none are declared.
type NoEnvironmentsDefined struct{ Env string }

func (e NoEnvironmentsDefined) Error() string {
	return fmt.Sprintf(
		"Trying to resolve the environment '%s' but no environments are defined in the request file",
		e.Env,
	)
}

// PromptValueNotPassed: a required prompt was not supplied at template time.
type PromptValueNotPassed struct{ Name string }

func (e PromptValueNotPassed) Error() string {
	return fmt.Sprintf("Prompt required but not passed: %s", e.Name)
}

// SecretValueNotPassed: a required secret was not supplied at template time.
type SecretValueNotPassed struct{ Name string }

func (e SecretValueNotPassed) Error() string {
	return fmt.Sprintf("Secret required but not passed: %s", e.Name)
}

// ExpressionEvaluationError: compiling or interpreting a reference or
// expression against the embedded expression language failed.
type ExpressionEvaluationError struct{ Source, Detail string }

func (e ExpressionEvaluationError) Error() string {
	return fmt.Sprintf("Failed to evaluate expression '%s': %s", e.Source, e.Detail)
}

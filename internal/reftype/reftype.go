// Package reftype defines the reference-type taxonomy used by the template
// grammar: {{prefix name}} references resolve against one of four
// namespaces, identified by a single-character prefix.
package reftype

import "fmt"

// Kind identifies the lookup namespace a reference resolves against.
type Kind int

const (
	// Variable references a config var, resolved through the environment.
	Variable Kind = iota
	// Prompt references a value supplied (or defaulted) at template time.
	Prompt
	// Secret references a value that must be supplied at template time.
	Secret
	// Provider references a runtime-supplied client-context value.
	Provider
	// Unknown is any prefix outside {:, ?, !, @}; never substituted.
	Unknown
)

// Prefix returns the grammar prefix character for this kind, or 0 for Unknown.
func (k Kind) Prefix() byte {
	switch k {
	case Variable:
		return ':'
	case Prompt:
		return '?'
	case Secret:
		return '!'
	case Provider:
		return '@'
	default:
		return 0
	}
}

// KindFromPrefix maps a prefix byte to its Kind; anything else is Unknown.
func KindFromPrefix(prefix byte) Kind {
	switch prefix {
	case ':':
		return Variable
	case '?':
		return Prompt
	case '!':
		return Secret
	case '@':
		return Provider
	default:
		return Unknown
	}
}

func (k Kind) String() string {
	switch k {
	case Variable:
		return "Variable"
	case Prompt:
		return "Prompt"
	case Secret:
		return "Secret"
	case Provider:
		return "Provider"
	default:
		return "Unknown"
	}
}

// Ref is a single resolved reference: a kind plus the bare name (without
// prefix or braces).
type Ref struct {
	Kind Kind
	Name string
}

// Token reconstructs the literal {{prefix name}} spelling for whole-string
// substring replacement during templating. Unknown references have no
// literal brace form since they are never substituted; callers should not
// call Token for Unknown refs.
func (r Ref) Token() string {
	return fmt.Sprintf("{{%c%s}}", r.Kind.Prefix(), r.Name)
}

// String renders the reference for error messages, matching the original
// implementation's Display impl (Unknown uses a distinct non-brace form
// since it is never a literal token to begin with).
func (r Ref) String() string {
	if r.Kind == Unknown {
		return fmt.Sprintf("???%s???", r.Name)
	}
	return r.Token()
}

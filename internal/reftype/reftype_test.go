package reftype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reqfile/reqfile/internal/reftype"
)

func TestKindFromPrefixRoundTrip(t *testing.T) {
	cases := []struct {
		prefix byte
		kind   reftype.Kind
	}{
		{':', reftype.Variable},
		{'?', reftype.Prompt},
		{'!', reftype.Secret},
		{'@', reftype.Provider},
		{'#', reftype.Unknown},
	}

	for _, c := range cases {
		assert.Equal(t, c.kind, reftype.KindFromPrefix(c.prefix))
		if c.kind != reftype.Unknown {
			assert.Equal(t, c.prefix, c.kind.Prefix())
		}
	}
}

func TestRefToken(t *testing.T) {
	ref := reftype.Ref{Kind: reftype.Variable, Name: "host"}
	assert.Equal(t, "{{:host}}", ref.Token())
	assert.Equal(t, "{{:host}}", ref.String())
}

func TestUnknownRefStringIsNotALiteralToken(t *testing.T) {
	ref := reftype.Ref{Kind: reftype.Unknown, Name: "wat"}
	assert.Equal(t, "???wat???", ref.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Variable", reftype.Variable.String())
	assert.Equal(t, "Prompt", reftype.Prompt.String())
	assert.Equal(t, "Secret", reftype.Secret.String())
	assert.Equal(t, "Provider", reftype.Provider.String())
	assert.Equal(t, "Unknown", reftype.Unknown.String())
}

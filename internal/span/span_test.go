package span_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reqfile/reqfile/internal/span"
)

func TestToPosition(t *testing.T) {
	source := "let a = 123;\nlet b = 456;"

	pos := span.ToPosition(source, 17)

	assert.Equal(t, span.Position{Line: 1, Character: 4}, pos)
}

func TestFromPosition(t *testing.T) {
	source := "let a = 123;\nlet b = 456;"

	offset := span.FromPosition(source, span.Position{Line: 1, Character: 4})

	assert.Equal(t, 17, offset)
}

func TestPositionRoundTrip(t *testing.T) {
	source := "let a = 123;\n{\n    let b = 456;\n}"
	pos := span.Position{Line: 2, Character: 12}

	offset := span.FromPosition(source, pos)
	assert.Equal(t, 27, offset)
	assert.Equal(t, pos, span.ToPosition(source, offset))
}

func TestToPositionEmptySource(t *testing.T) {
	assert.Equal(t, span.Position{Line: 0, Character: 0}, span.ToPosition("", 0))
}

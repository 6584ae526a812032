// Package scan extracts {{prefix name}} references and {(expr)} expressions
// from spanned text. The two grammars are independent and do not nest:
// expression bodies are re-scanned for simple references (for validation
// only), but an expression always substitutes as a whole token.
package scan

import (
	"regexp"

	"github.com/reqfile/reqfile/internal/reftype"
	"github.com/reqfile/reqfile/internal/span"
)

// referencePattern matches {{prefix name}} where prefix is one of :?!@ and
// name matches [A-Za-z][_A-Za-z0-9.]*, mirroring
// TEMPLATE_REFERENCE_PATTERN_INNER from the original implementation.
var referencePattern = regexp.MustCompile(`\{\{([:?!@])([A-Za-z][_A-Za-z0-9.]*)\}\}`)

// exprPattern matches {(...)}; the body is not itself constrained by a
// grammar here, it is captured raw and handed to the embedded expression
// language.
var exprPattern = regexp.MustCompile(`(?s)\{\((.*?)\)\}`)

// References scans text for every {{prefix name}} occurrence and returns one
// Ref per match. Per spec.md §4.3, all refs found within one spanned text
// carry that text's outer span (the reporting unit is the block, not the
// individual match), so callers pass the block's own span as blockSpan.
func References(text string, blockSpan span.Span) []span.Spanned[reftype.Ref] {
	var out []span.Spanned[reftype.Ref]
	for _, m := range referencePattern.FindAllStringSubmatch(text, -1) {
		kind := reftype.KindFromPrefix(m[1][0])
		out = append(out, span.New(reftype.Ref{Kind: kind, Name: m[2]}, blockSpan))
	}
	return out
}

// Expressions scans text for every {(...)} occurrence and returns the raw
// expression body together with its own span (relative to textStart, the
// absolute offset of text within the original source).
func Expressions(text string, textStart int) []span.Spanned[string] {
	var out []span.Spanned[string]
	for _, m := range exprPattern.FindAllStringSubmatchIndex(text, -1) {
		body := text[m[2]:m[3]]
		sp := span.Span{Start: textStart + m[0], End: textStart + m[1]}
		out = append(out, span.New(body, sp))
	}
	return out
}

// ReferencesInExpressions re-scans each expression body for simple
// references, appending them (with the containing block's span, per the
// same block-is-the-reporting-unit rule) to refs. This accounts for
// spec.md §4.3's "expressions may themselves contain simple references;
// after extraction the expression body is re-scanned ... and those
// references are also added to refs."
func ReferencesInExpressions(exprs []span.Spanned[string], blockSpan span.Span) []span.Spanned[reftype.Ref] {
	var out []span.Spanned[reftype.Ref]
	for _, e := range exprs {
		out = append(out, References(e.Value, blockSpan)...)
	}
	return out
}

// Package extract locates Markdown fenced code blocks whose info string
// matches a target language, returning both the outer span (opening fence
// through closing fence) and the inner span (just the body text).
//
// The block boundaries are discovered with a real Markdown parser
// (goldmark), matching the grounding of the original implementation, which
// uses the "markdown" crate's to_mdast. goldmark exposes each fenced block's
// info-string segment, from which the exact offsets spec.md §4.1 requires
// are derived directly, rather than trusting goldmark's own per-line
// segmentation of the body.
package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/reqfile/reqfile/internal/span"
)

// Block is a fenced code block matched against a target language: the outer
// span covers the whole fence (backticks to backticks), the inner span
// covers just the body text.
type Block struct {
	Outer span.Span
	Inner span.Spanned[string]
}

// Extract returns, in document order, every top-level fenced code block
// whose info string equals targetLang.
func Extract(source, targetLang string) []Block {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var blocks []Block

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		fenced, ok := child.(*gmast.FencedCodeBlock)
		if !ok || fenced.Info == nil {
			continue
		}

		infoSeg := fenced.Info.Segment
		info := string(infoSeg.Value(src))
		if info != targetLang {
			continue
		}

		outerStart := infoSeg.Start - 3
		innerStart := outerStart + len("```"+targetLang) + 1

		var body strings.Builder
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(src))
		}
		bodyText := strings.TrimSuffix(body.String(), "\n")

		innerEnd := innerStart + len(bodyText)
		outerEnd := innerEnd + 1 + 3 // trailing newline + closing backticks

		blocks = append(blocks, Block{
			Outer: span.Span{Start: outerStart, End: outerEnd},
			Inner: span.New(bodyText, span.Span{Start: innerStart, End: innerEnd}),
		})
	}

	return blocks
}

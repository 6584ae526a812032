// Package ast builds the two-stage abstract syntax tree for a request file:
// an ordered sequence of typed code blocks interleaved with Comment nodes
// that cover every gap in the source, so that the node spans partition the
// whole input with no gaps (spec.md §3, §4.2).
package ast

import (
	"sort"

	"github.com/reqfile/reqfile/internal/extract"
	"github.com/reqfile/reqfile/internal/span"
)

// Node is any AST node: Comment, ConfigBlock, RequestBlock, or ResponseBlock.
type Node interface {
	isNode()
}

// Comment is any inter-block text, possibly empty or whitespace-only.
type Comment struct {
	Text string
}

func (Comment) isNode() {}

// ConfigBlock is the body of a ```%config fence.
type ConfigBlock struct {
	Body span.Spanned[string]
}

func (ConfigBlock) isNode() {}

// RequestBlock is the body of a ```%request fence.
type RequestBlock struct {
	Body span.Spanned[string]
}

func (RequestBlock) isNode() {}

// ResponseBlock is the body of a ```%response fence.
type ResponseBlock struct {
	Body span.Spanned[string]
}

func (ResponseBlock) isNode() {}

// AST is the full ordered node sequence for a source document.
type AST struct {
	Nodes []span.Spanned[Node]
}

// From builds an AST from source: extract %request, then %config, then
// %response; sort by outer start; fill every gap between (and after) blocks
// with a Comment node so the sequence covers [0, len(source)) with no gaps.
func From(source string) AST {
	var nodes []span.Spanned[Node]

	for _, b := range extract.Extract(source, "%request") {
		nodes = append(nodes, span.New[Node](RequestBlock{Body: b.Inner}, b.Outer))
	}
	for _, b := range extract.Extract(source, "%config") {
		nodes = append(nodes, span.New[Node](ConfigBlock{Body: b.Inner}, b.Outer))
	}
	for _, b := range extract.Extract(source, "%response") {
		nodes = append(nodes, span.New[Node](ResponseBlock{Body: b.Inner}, b.Outer))
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Span.Start < nodes[j].Span.Start })

	blockNodes := make([]span.Spanned[Node], len(nodes))
	copy(blockNodes, nodes)

	index := 0
	for _, n := range blockNodes {
		start := n.Span.Start
		if index < start {
			gap := span.Span{Start: index, End: start}
			text := source[index:start]
			nodes = append(nodes, span.New[Node](Comment{Text: text}, gap))
		}
		index = n.Span.End
	}

	if len(blockNodes) > 0 && index < len(source) {
		gap := span.Span{Start: index, End: len(source)}
		nodes = append(nodes, span.New[Node](Comment{Text: source[index:]}, gap))
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Span.Start < nodes[j].Span.Start })

	return AST{Nodes: nodes}
}

// Request returns the RequestBlock's spanned body, if present.
func (a AST) Request() (span.Spanned[string], bool) {
	for _, n := range a.Nodes {
		if rb, ok := n.Value.(RequestBlock); ok {
			return rb.Body, true
		}
	}
	return span.Spanned[string]{}, false
}

// Config returns the ConfigBlock's spanned body, if present.
func (a AST) Config() (span.Spanned[string], bool) {
	for _, n := range a.Nodes {
		if cb, ok := n.Value.(ConfigBlock); ok {
			return cb.Body, true
		}
	}
	return span.Spanned[string]{}, false
}

// Response returns the ResponseBlock's spanned body, if present.
func (a AST) Response() (span.Spanned[string], bool) {
	for _, n := range a.Nodes {
		if rb, ok := n.Value.(ResponseBlock); ok {
			return rb.Body, true
		}
	}
	return span.Spanned[string]{}, false
}

// Comments returns every Comment node's spanned text.
func (a AST) Comments() []span.Spanned[string] {
	var out []span.Spanned[string]
	for _, n := range a.Nodes {
		if c, ok := n.Value.(Comment); ok {
			out = append(out, span.New(c.Text, n.Span))
		}
	}
	return out
}

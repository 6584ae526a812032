// Package assertresponse implements the response comparator (spec.md §4.7):
// it compares an expected %response block against an actual response and
// reports every independent difference, plus a colored unified diff
// rendering suitable for a CLI's stderr.
package assertresponse

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.followtheprocess.codes/hue"

	"github.com/reqfile/reqfile/internal/httptypes"
)

// Kind identifies which part of a response a Diff describes.
type Kind int

const (
	StatusCode Kind = iota
	StatusText
	MissingHeader
	MismatchHeaderValue
	Body
)

// Diff is one independent difference between an expected and actual
// response. Header is set only for the two header-related kinds.
type Diff struct {
	Kind     Kind
	Header   string
	Expected string
	Actual   string
}

// Compare reports every difference between expected and actual. Body is
// compared only when expected declares one; when it does, comparison is
// strict — no whitespace normalization — matching the original
// implementation's exact-match semantics. Headers are matched by exact
// name: headers present only in actual are ignored, and a header declared
// in expected but absent from actual is reported as MissingHeader.
func Compare(expected, actual httptypes.Response) []Diff {
	var diffs []Diff

	if expected.StatusCode != actual.StatusCode {
		diffs = append(diffs, Diff{
			Kind:     StatusCode,
			Expected: strconv.Itoa(expected.StatusCode),
			Actual:   strconv.Itoa(actual.StatusCode),
		})
	}

	if expected.StatusText != actual.StatusText {
		diffs = append(diffs, Diff{Kind: StatusText, Expected: expected.StatusText, Actual: actual.StatusText})
	}

	names := make([]string, 0, len(expected.Headers))
	for name := range expected.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		expectedValue := expected.Headers[name]
		actualValue, ok := actual.Headers[name]
		if !ok {
			diffs = append(diffs, Diff{Kind: MissingHeader, Header: name})
			continue
		}
		if actualValue != expectedValue {
			diffs = append(diffs, Diff{Kind: MismatchHeaderValue, Header: name, Expected: expectedValue, Actual: actualValue})
		}
	}

	if expected.Body != nil && !bodyEqual(expected.Body, actual.Body) {
		diffs = append(diffs, Diff{Kind: Body, Expected: derefOr(expected.Body, ""), Actual: derefOr(actual.Body, "")})
	}

	return diffs
}

func bodyEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// MismatchError is returned when Assert finds at least one difference. Text
// is a ready-to-print colored unified diff.
type MismatchError struct {
	Diffs []Diff
	Text  string
}

func (e *MismatchError) Error() string { return e.Text }

// Assert compares actual against expected, returning nil if they match or a
// *MismatchError describing every difference otherwise.
func Assert(expected, actual httptypes.Response) error {
	diffs := Compare(expected, actual)
	if len(diffs) == 0 {
		return nil
	}
	return &MismatchError{Diffs: diffs, Text: DiffString(expected, actual, diffs)}
}

// DiffString renders diffs as a colored unified diff: the status line (if
// status code or text differ), then each differing header, then the body,
// mirroring the original implementation's section ordering.
func DiffString(expected, actual httptypes.Response, diffs []Diff) string {
	var statusCodeDiff, statusTextDiff *[2]string
	var headerDiffs [][2]string
	var bodyDiff *[2]string

	for _, d := range diffs {
		d := d
		switch d.Kind {
		case StatusCode:
			statusCodeDiff = &[2]string{d.Expected, d.Actual}
		case StatusText:
			statusTextDiff = &[2]string{d.Expected, d.Actual}
		case MissingHeader:
			headerDiffs = append(headerDiffs, [2]string{d.Header + ": ...", ""})
		case MismatchHeaderValue:
			headerDiffs = append(headerDiffs, [2]string{
				d.Header + ": " + d.Expected,
				d.Header + ": " + d.Actual,
			})
		case Body:
			bodyDiff = &[2]string{d.Expected, d.Actual}
		}
	}

	var out strings.Builder
	out.WriteByte('\n')

	if statusCodeDiff != nil || statusTextDiff != nil {
		codeExpected, codeActual := strconv.Itoa(expected.StatusCode), strconv.Itoa(expected.StatusCode)
		if statusCodeDiff != nil {
			codeExpected, codeActual = statusCodeDiff[0], statusCodeDiff[1]
		}
		textExpected, textActual := expected.StatusText, expected.StatusText
		if statusTextDiff != nil {
			textExpected, textActual = statusTextDiff[0], statusTextDiff[1]
		}

		expectedLine := "HTTP/" + expected.HTTPVersion + " " + codeExpected + " " + textExpected
		actualLine := "HTTP/" + expected.HTTPVersion + " " + codeActual + " " + textActual
		out.WriteString(lineDiff(expectedLine, actualLine))
	}

	for _, pair := range headerDiffs {
		out.WriteString(lineDiff(pair[0], pair[1]))
	}

	if bodyDiff != nil {
		out.WriteByte('\n')
		out.WriteString(lineDiff(bodyDiff[0], bodyDiff[1]))
	}

	return out.String()
}

// lineDiff renders a colored unified diff between two short texts (a status
// line, a header line, or a full body), dropping the file-header and hunk
// marker lines that GetUnifiedDiffString produces for its --- /+++ /@@
// conventions, since there is no "file" here to name.
func lineDiff(expected, actual string) string {
	diff := difflib.UnifiedDiff{
		A:       difflib.SplitLines(expected),
		B:       difflib.SplitLines(actual),
		Context: 3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)

	var out strings.Builder
	for _, line := range strings.Split(text, "\n") {
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			continue
		case strings.HasPrefix(line, "+"):
			out.WriteString((hue.Green | hue.Bold).Text(line))
		case strings.HasPrefix(line, "-"):
			out.WriteString((hue.Red | hue.Bold).Text(line))
		default:
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}
	return out.String()
}

package token

import "fmt"

// SnippetLimit bounds the length of source previews attached to diagnostics.
const SnippetLimit = 60

// Span is a half-open byte range into the source text plus the line
// bookkeeping needed to report it. All fields are 0-based.
type Span struct {
	Offset    int // byte offset where the span starts
	Length    int // length in bytes
	Line      int // line of the first byte, comments included
	LineStart int // byte offset of the start of that line
}

// End returns the offset of the first byte after the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Column returns the 0-based byte column where the span starts.
func (s Span) Column() int {
	return s.Offset - s.LineStart
}

// LineNumber returns the 1-indexed line number of the span.
func (s Span) LineNumber() int {
	return s.Line + 1
}

// ColumnNumber returns the 1-indexed column number of the span.
func (s Span) ColumnNumber() int {
	return s.Column() + 1
}

// String renders the span as line:column:length.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d:%d", s.Line, s.Column(), s.Length)
}

// Merge returns a span covering a, b and any gap between them. The line data
// of a is kept. It panics if b starts before a ends or sits on an earlier line.
func Merge(a, b Span) Span {
	if a.End() > b.Offset {
		panic(fmt.Sprintf("token: cannot merge span %s (end %d) with span %s starting at %d",
			a, a.End(), b, b.Offset))
	}
	if a.Line > b.Line {
		panic(fmt.Sprintf("token: cannot merge span on line %d with span on earlier line %d",
			a.Line, b.Line))
	}
	a.Length += (b.Offset - a.End()) + b.Length
	return a
}

// Snippet returns the source text covered by the span, truncated to
// SnippetLimit bytes. Out of range spans are clamped to the source.
func Snippet(src string, s Span) string {
	start := min(max(s.Offset, 0), len(src))
	end := min(max(s.End(), start), len(src))
	end = min(end, start+SnippetLimit)
	return src[start:end]
}

// Package errors defines error codes, source locations and the diagnostic
// formatter shared by the lexer, parser, program builder and evaluator.
package errors

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/risor-io/regasm/token"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename  string
	Line      int    // 1-based line number
	Column    int    // 1-based column number
	EndColumn int    // 1-based column of the last spanned character on Line
	Source    string // The line of source code
}

// NewSourceLocation converts a span into a 1-based location. When the span
// runs past the end of its first line the underline stops at the line end.
func NewSourceLocation(filename string, span token.Span, lineText string) SourceLocation {
	loc := SourceLocation{
		Filename: filename,
		Line:     span.LineNumber(),
		Column:   span.ColumnNumber(),
		Source:   lineText,
	}
	end := span.Column() + span.Length
	if end > len(lineText) {
		end = len(lineText)
	}
	if end > span.Column() {
		loc.EndColumn = end
	} else {
		loc.EndColumn = loc.Column
	}
	return loc
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string
	Location SourceLocation
}

// String returns a formatted string representation of the stack frame.
func (f StackFrame) String() string {
	if f.Function != "" {
		return fmt.Sprintf("at %s (%s)", f.Function, f.Location.String())
	}
	return fmt.Sprintf("at %s", f.Location.String())
}

// FormatStackTrace formats a slice of stack frames as a human-readable string.
func FormatStackTrace(frames []StackFrame) string {
	if len(frames) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Stack trace:\n")
	for _, frame := range frames {
		b.WriteString("  ")
		b.WriteString(frame.String())
		b.WriteString("\n")
	}
	return b.String()
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// SpannedError is implemented by every diagnostic that points into the
// source text.
type SpannedError interface {
	Error() string
	ErrorCode() ErrorCode
	ErrorSpan() token.Span
}

// Format renders err for display. Errors that know how to format themselves
// are rendered with source context; anything else falls back to Error().
// Aggregates (go-multierror or Unwrap() []error) are rendered one entry per
// wrapped error.
func Format(err error, useColor bool) string {
	if err == nil {
		return ""
	}
	formatter := NewFormatter(useColor)
	var errs []error
	switch multi := err.(type) {
	case interface{ WrappedErrors() []error }:
		errs = multi.WrappedErrors()
	case interface{ Unwrap() []error }:
		errs = multi.Unwrap()
	}
	if len(errs) > 0 {
		var formatted []*FormattedError
		for _, e := range errs {
			formatted = append(formatted, toFormatted(e))
		}
		return formatter.FormatMultiple(formatted)
	}
	return formatter.Format(toFormatted(err))
}

func toFormatted(err error) *FormattedError {
	var fe FormattableError
	if goerrors.As(err, &fe) {
		return fe.ToFormatted()
	}
	return &FormattedError{Kind: "error", Message: err.Error()}
}

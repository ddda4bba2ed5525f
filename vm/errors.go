package vm

import (
	"fmt"

	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/token"
)

// Cause classifies runtime errors.
type Cause int

const (
	// UnknownLabel is a jump or call to a label that is not defined.
	UnknownLabel Cause = iota
	// DivisionByZero is a div whose value resolved to zero.
	DivisionByZero
	// MissingReturnTarget is a ret with an empty call stack.
	MissingReturnTarget
	// NoPendingComparison is a conditional jump before any cmp.
	NoPendingComparison
	// PrematureTermination means execution ran past the last instruction
	// without reaching end.
	PrematureTermination
	// CallDepthExceeded is a call beyond the configured maximum depth.
	CallDepthExceeded
	// Halted means an observer stopped execution.
	Halted
)

// Code returns the diagnostic code for the cause.
func (c Cause) Code() errors.ErrorCode {
	switch c {
	case UnknownLabel:
		return errors.E3001
	case DivisionByZero:
		return errors.E3002
	case MissingReturnTarget:
		return errors.E3003
	case NoPendingComparison:
		return errors.E3004
	case PrematureTermination:
		return errors.E3005
	case CallDepthExceeded:
		return errors.E3006
	}
	return errors.E3007
}

// Error is a runtime error raised by an instruction.
type Error struct {
	Cause    Cause
	Span     token.Span // the failing instruction
	Snippet  string
	Label    string // the unresolved label for UnknownLabel
	Hint     string // similar label names for UnknownLabel
	Limit    int    // the exceeded depth for CallDepthExceeded
	Filename string
	LineText string

	// Stack lists the pending calls, innermost first.
	Stack []errors.StackFrame
}

// Message describes the cause without location information.
func (e *Error) Message() string {
	switch e.Cause {
	case UnknownLabel:
		return fmt.Sprintf("unknown label '%s'", e.Label)
	case DivisionByZero:
		return "division by zero"
	case MissingReturnTarget:
		return "no return address on the call stack"
	case NoPendingComparison:
		return "no previous cmp instruction"
	case PrematureTermination:
		return "program ended prematurely"
	case CallDepthExceeded:
		return fmt.Sprintf("call depth exceeded (limit %d)", e.Limit)
	}
	return "execution halted"
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid input at [%s]: '%s': %s", e.Span, e.Snippet, e.Message())
}

// ErrorCode returns the diagnostic code of the error.
func (e *Error) ErrorCode() errors.ErrorCode {
	return e.Cause.Code()
}

// ErrorSpan returns the span of the failing instruction.
func (e *Error) ErrorSpan() token.Span {
	return e.Span
}

// FriendlyErrorMessage renders the error with source context.
func (e *Error) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *Error) ToFormatted() *errors.FormattedError {
	loc := errors.NewSourceLocation(e.Filename, e.Span, e.LineText)
	fe := errors.NewFormattedError(e.ErrorCode(), "runtime error", e.Message(), loc)
	fe.Hint = e.Hint
	fe.Stack = e.Stack
	if e.Cause == PrematureTermination {
		fe.Note = "every execution path must reach an end instruction"
	}
	return fe
}

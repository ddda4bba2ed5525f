package parser

import (
	stderrors "errors"
	"fmt"

	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/internal/lexer"
	"github.com/risor-io/regasm/token"
)

// Cause classifies syntax errors.
type Cause int

const (
	// ExpectedToken is a token of the wrong kind where a specific one is
	// required.
	ExpectedToken Cause = iota
	// MissingToken means the input ended while a token was still required.
	MissingToken
	// NotInstruction is a keyword handed to a sub-parser for an instruction
	// form it does not have, such as inc parsed as a binary instruction.
	NotInstruction
	// UnexpectedStatementStart is a statement beginning with something other
	// than a keyword or a label name.
	UnexpectedStatementStart
	// LexFailure wraps a *lexer.Error met while parsing.
	LexFailure
)

// Code returns the diagnostic code for the cause.
func (c Cause) Code() errors.ErrorCode {
	switch c {
	case ExpectedToken:
		return errors.E1001
	case MissingToken:
		return errors.E1004
	case NotInstruction:
		return errors.E1005
	case UnexpectedStatementStart:
		return errors.E1006
	}
	return errors.E1003
}

// SyntaxError is a positioned parse error.
type SyntaxError struct {
	Cause    Cause
	Span     token.Span
	Snippet  string     // source covered by Span, bounded in length
	Expected string     // what the parser required, if any
	Got      string     // description of the token found instead
	Keyword  token.Type // the misrouted keyword for NotInstruction
	Form     string     // instruction form the keyword was parsed as
	Filename string
	LineText string

	// Err is the underlying lexer error for LexFailure.
	Err error
}

// Message describes the cause without location information.
func (e *SyntaxError) Message() string {
	switch e.Cause {
	case ExpectedToken:
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	case MissingToken:
		return fmt.Sprintf("expected %s, but got none", e.Expected)
	case NotInstruction:
		return fmt.Sprintf("%s does not represent a %s instruction", e.Keyword, e.Form)
	case UnexpectedStatementStart:
		return fmt.Sprintf("unexpected start of a statement: %s", e.Got)
	}
	var lexErr *lexer.Error
	if stderrors.As(e.Err, &lexErr) {
		return lexErr.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "syntax error"
}

func (e *SyntaxError) Error() string {
	if e.Cause == LexFailure && e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid input at [%s]: '%s': %s", e.Span, e.Snippet, e.Message())
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the diagnostic code of the error.
func (e *SyntaxError) ErrorCode() errors.ErrorCode {
	var lexErr *lexer.Error
	if e.Cause == LexFailure && stderrors.As(e.Err, &lexErr) {
		return lexErr.ErrorCode()
	}
	return e.Cause.Code()
}

// ErrorSpan returns the offending span.
func (e *SyntaxError) ErrorSpan() token.Span {
	return e.Span
}

// FriendlyErrorMessage renders the error with source context.
func (e *SyntaxError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *SyntaxError) ToFormatted() *errors.FormattedError {
	loc := errors.NewSourceLocation(e.Filename, e.Span, e.LineText)
	return errors.NewFormattedError(e.ErrorCode(), "syntax error", e.Message(), loc)
}

// errorFields holds the optional parts of a SyntaxError.
type errorFields struct {
	expected string
	got      string
	keyword  token.Type
	form     string
}

func (p *Parser) newError(cause Cause, span token.Span, f errorFields) *SyntaxError {
	src := p.l.Source()
	return &SyntaxError{
		Cause:    cause,
		Span:     span,
		Snippet:  token.Snippet(src, span),
		Expected: f.expected,
		Got:      f.got,
		Keyword:  f.keyword,
		Form:     f.form,
		Filename: p.filename,
		LineText: lexer.LineText(src, span),
	}
}

func (p *Parser) missing(span token.Span, expected string) *SyntaxError {
	return p.newError(MissingToken, span, errorFields{expected: expected})
}

func (p *Parser) lexFailure(err error) *SyntaxError {
	e := &SyntaxError{Cause: LexFailure, Err: err, Filename: p.filename}
	var lexErr *lexer.Error
	if stderrors.As(err, &lexErr) {
		e.Span = lexErr.Span
		e.Snippet = lexErr.Snippet
		e.LineText = lexErr.LineText
	}
	return e
}

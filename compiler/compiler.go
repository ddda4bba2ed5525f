// Package compiler builds an executable program from parsed statements.
//
// Building separates label definitions from instructions in a single pass.
// Each label records the index of the instruction that follows it, so jumps
// to labels defined later in the source resolve like any other.
package compiler

import (
	"fmt"

	"github.com/risor-io/regasm/ast"
	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/token"
)

// Option is a configuration function for Compile.
type Option func(*config)

type config struct {
	filename string
}

// WithFilename overrides the file name recorded in the program.
func WithFilename(filename string) Option {
	return func(c *config) {
		c.filename = filename
	}
}

// Compile builds Code from a parsed program. It fails if a label is defined
// more than once.
func Compile(program *ast.Program, options ...Option) (*Code, error) {
	cfg := config{filename: program.Filename}
	for _, opt := range options {
		opt(&cfg)
	}
	code := &Code{
		source:   program.Source,
		filename: cfg.filename,
		labels:   map[string]int{},
	}
	definedAt := map[string]token.Span{}
	for _, stmt := range program.Statements {
		switch stmt := stmt.(type) {
		case *ast.Label:
			if first, ok := definedAt[stmt.Name]; ok {
				return nil, code.duplicateLabel(stmt, first)
			}
			definedAt[stmt.Name] = stmt.Loc
			code.labels[stmt.Name] = len(code.instructions)
			code.labelNames = append(code.labelNames, stmt.Name)
		case ast.Instruction:
			code.instructions = append(code.instructions, stmt)
		}
	}
	return code, nil
}

func (c *Code) duplicateLabel(stmt *ast.Label, first token.Span) *DuplicateLabelError {
	return &DuplicateLabelError{
		Label:     stmt.Name,
		Span:      stmt.Loc,
		Snippet:   token.Snippet(c.source, stmt.Loc),
		FirstLine: first.LineNumber(),
		Filename:  c.filename,
		LineText:  c.LineText(stmt.Loc),
	}
}

// DuplicateLabelError reports a label defined a second time.
type DuplicateLabelError struct {
	Label     string
	Span      token.Span // the second definition
	Snippet   string
	FirstLine int // 1-based line of the first definition
	Filename  string
	LineText  string
}

// Message describes the error without location information.
func (e *DuplicateLabelError) Message() string {
	return fmt.Sprintf("label '%s' defined earlier on line %d", e.Label, e.FirstLine)
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("invalid input at [%s]: '%s': %s", e.Span, e.Snippet, e.Message())
}

// ErrorCode returns the diagnostic code of the error.
func (e *DuplicateLabelError) ErrorCode() errors.ErrorCode {
	return errors.E2001
}

// ErrorSpan returns the span of the second definition.
func (e *DuplicateLabelError) ErrorSpan() token.Span {
	return e.Span
}

// FriendlyErrorMessage renders the error with source context.
func (e *DuplicateLabelError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *DuplicateLabelError) ToFormatted() *errors.FormattedError {
	loc := errors.NewSourceLocation(e.Filename, e.Span, e.LineText)
	fe := errors.NewFormattedError(e.ErrorCode(), "error", e.Message(), loc)
	fe.Note = "label names must be unique"
	return fe
}

package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors with colors and professional styling.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool

	palette palette
}

type palette struct {
	errorText *color.Color
	errorBold *color.Color
	code      *color.Color
	location  *color.Color
	lineNum   *color.Color
	source    *color.Color
	caret     *color.Color
	hint      *color.Color
	note      *color.Color
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	p := palette{
		errorText: color.New(color.FgRed),
		errorBold: color.New(color.FgHiRed, color.Bold),
		code:      color.New(color.FgHiBlack),
		location:  color.New(color.FgCyan),
		lineNum:   color.New(color.FgHiBlack),
		source:    color.New(color.FgWhite),
		caret:     color.New(color.FgHiRed),
		hint:      color.New(color.FgHiYellow),
		note:      color.New(color.FgHiBlue),
	}
	// The caller decided; don't let terminal detection override it.
	for _, c := range []*color.Color{p.errorText, p.errorBold, p.code, p.location,
		p.lineNum, p.source, p.caret, p.hint, p.note} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Formatter{UseColor: useColor, palette: p}
}

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "error", "syntax error", "runtime error", etc.
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int               // For multi-character underlines
	SourceLines []SourceLineEntry // Lines shown for context
	Hint        string            // "Did you mean?" suggestion
	Note        string            // Additional context
	Stack       []StackFrame      // Call stack for runtime errors
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // True if this is the line with the error
}

// NewFormattedError builds a FormattedError pointing at loc.
func NewFormattedError(code ErrorCode, kind, message string, loc SourceLocation) *FormattedError {
	fe := &FormattedError{
		Code:      code,
		Kind:      kind,
		Message:   message,
		Filename:  loc.Filename,
		Line:      loc.Line,
		Column:    loc.Column,
		EndColumn: loc.EndColumn,
	}
	if loc.Line > 0 {
		fe.SourceLines = []SourceLineEntry{{Number: loc.Line, Text: loc.Source, IsMain: true}}
	}
	return fe
}

// Format formats the error as a string using a consistent Rust-like style.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats the error with an optional prefix like "[1/5]".
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder

	lineNumWidth := 2
	if err.Line >= 100 {
		lineNumWidth = len(fmt.Sprintf("%d", err.Line))
	}

	f.writeHeader(&b, err, prefix)
	f.writeLocation(&b, err, lineNumWidth)
	f.writeSource(&b, err, lineNumWidth)
	if err.Hint != "" {
		f.writeAnnotation(&b, "hint: ", f.palette.hint, err.Hint, lineNumWidth, true)
	}
	if err.Note != "" {
		f.writeAnnotation(&b, "note: ", f.palette.note, err.Note, lineNumWidth, false)
	}
	if len(err.Stack) > 0 {
		f.writeStack(&b, err.Stack, lineNumWidth)
	}
	return b.String()
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError, prefix string) {
	label := "error"
	if err.Kind != "" && err.Kind != "error" {
		label = err.Kind
	}
	b.WriteString(f.palette.errorBold.Sprint(label))

	// Code wins over the numbering prefix
	if err.Code != "" {
		b.WriteString(f.palette.code.Sprintf("[%s]", err.Code))
	} else if prefix != "" {
		b.WriteString(f.palette.code.Sprintf("[%s]", prefix))
	}

	b.WriteString(f.palette.errorText.Sprint(": "))
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if err.Line == 0 && err.Filename == "" {
		return
	}
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(padding)
	b.WriteString(f.palette.location.Sprint("-->"))
	b.WriteString(" ")

	loc := ""
	if err.Filename != "" {
		loc = err.Filename
		if err.Line > 0 {
			loc += fmt.Sprintf(":%d:%d", err.Line, err.Column)
		}
	} else if err.Line > 0 {
		loc = fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	b.WriteString(f.palette.location.Sprint(loc))
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if len(err.SourceLines) == 0 {
		return
	}
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(f.palette.lineNum.Sprint(padding))
	b.WriteString(f.palette.lineNum.Sprint(" |\n"))

	for _, line := range err.SourceLines {
		b.WriteString(f.palette.lineNum.Sprintf("%*d | ", lineNumWidth, line.Number))
		b.WriteString(f.palette.source.Sprint(line.Text))
		b.WriteString("\n")

		if !line.IsMain || err.Column <= 0 {
			continue
		}
		b.WriteString(f.palette.lineNum.Sprint(padding + " | "))
		b.WriteString(strings.Repeat(" ", err.Column-1))
		caretLen := 1
		if err.EndColumn > err.Column {
			caretLen = err.EndColumn - err.Column + 1
		}
		b.WriteString(f.palette.caret.Sprint(strings.Repeat("^", caretLen)))
		b.WriteString("\n")
	}
}

func (f *Formatter) writeAnnotation(b *strings.Builder, label string, c *color.Color, text string, lineNumWidth int, separate bool) {
	padding := strings.Repeat(" ", lineNumWidth)
	if separate {
		b.WriteString(f.palette.lineNum.Sprint(padding + " |\n"))
	}
	b.WriteString(f.palette.lineNum.Sprint(padding + " = "))
	b.WriteString(c.Sprint(label))
	b.WriteString(text)
	b.WriteString("\n")
}

func (f *Formatter) writeStack(b *strings.Builder, stack []StackFrame, lineNumWidth int) {
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(f.palette.lineNum.Sprint(padding + " |\n"))
	b.WriteString(f.palette.lineNum.Sprint(padding + " = "))
	b.WriteString(f.palette.note.Sprint("stack trace:\n"))
	for _, frame := range stack {
		b.WriteString(padding)
		b.WriteString("     ")
		b.WriteString(frame.String())
		b.WriteString("\n")
	}
}

// FormatMultiple formats multiple errors with consistent styling.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return f.Format(errs[0])
	}

	var b strings.Builder
	total := len(errs)
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		// Numbering only shows when the error carries no code of its own.
		b.WriteString(f.FormatWithPrefix(err, fmt.Sprintf("%d/%d", i+1, total)))
	}
	b.WriteString("\n")
	b.WriteString(f.palette.errorBold.Sprintf("found %d errors", total))
	b.WriteString("\n")
	return b.String()
}

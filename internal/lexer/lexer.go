// Package lexer converts assembly source text into positioned tokens.
package lexer

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/token"
)

// Lexer produces tokens from a source string. A Lexer is single-use: once it
// reaches the end of the input it keeps returning EOF tokens.
type Lexer struct {
	input     string
	pos       int // offset of the next unread byte
	line      int // current 0-based line
	lineStart int // offset where the current line starts
	filename  string
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFilename sets the file name reported in diagnostics.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// New returns a Lexer for the given source text.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Filename returns the file name given to the lexer, if any.
func (l *Lexer) Filename() string {
	return l.filename
}

// Source returns the complete input.
func (l *Lexer) Source() string {
	return l.input
}

// Next returns the next token. Comments and whitespace are skipped. At the end
// of the input an EOF token is returned, repeatedly if called again. On error
// the lexer has already skipped past the offending text so lexing may resume.
func (l *Lexer) Next() (token.Token, error) {
	for l.pos < len(l.input) {
		start := l.pos
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])

		switch {
		case r == ';':
			l.skipComment()
		case r == '\n':
			l.pos += size
			l.newline()
		case unicode.IsSpace(r):
			l.pos += size
		case r == '-':
			return l.readNegative(start)
		case isDigit(r):
			return l.readNumber(start)
		case r == ',':
			l.pos += size
			return l.token(token.COMMA, start), nil
		case r == ':':
			l.pos += size
			return l.token(token.COLON, start), nil
		case r == '\'':
			return l.readText(start)
		case unicode.IsLetter(r):
			return l.readIdentifier(start), nil
		default:
			l.pos += size
			l.skipWhile(func(r rune) bool { return !startsToken(r) && !unicode.IsSpace(r) })
			return l.error(UnexpectedCharacter, start, "unexpected character sequence")
		}
	}
	return token.Token{Type: token.EOF, Span: l.span(len(l.input), 0)}, nil
}

// All returns an iterator over the remaining tokens, ending before EOF.
// Errors are yielded in place, after which lexing continues.
func (l *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := l.Next()
			if err == nil && tok.Type == token.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

// Tokenize lexes the whole input and returns its tokens, without the trailing
// EOF. It stops at the first error.
func Tokenize(input string, options ...Option) ([]token.Token, error) {
	var tokens []token.Token
	for tok, err := range New(input, options...).All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// GetLineText returns the full source line on which the span starts, without
// its line terminator.
func (l *Lexer) GetLineText(span token.Span) string {
	return LineText(l.input, span)
}

// LineText returns the line of src on which span starts.
func LineText(src string, span token.Span) string {
	start := min(max(span.LineStart, 0), len(src))
	line := src[start:]
	if end := strings.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}
	return strings.TrimSuffix(line, "\r")
}

func (l *Lexer) newline() {
	l.line++
	l.lineStart = l.pos
}

func (l *Lexer) skipComment() {
	end := strings.IndexByte(l.input[l.pos:], '\n')
	if end < 0 {
		l.pos = len(l.input)
		return
	}
	l.pos += end + 1
	l.newline()
}

// skipWhile advances past runes matching pred. Newlines never match since
// every caller stops at whitespace.
func (l *Lexer) skipWhile(pred func(rune) bool) {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !pred(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r, true
}

func (l *Lexer) readNegative(start int) (token.Token, error) {
	l.pos++ // '-'
	r, ok := l.peek()
	if ok && isDigit(r) {
		return l.readNumber(start)
	}
	if !ok {
		return l.error(InvalidNumber, start, "expected digits following '-', got end of input")
	}
	l.skipWhile(func(r rune) bool { return !unicode.IsSpace(r) })
	return l.error(InvalidNumber, start, fmt.Sprintf("unexpected '%c' following '-'", r))
}

func (l *Lexer) readNumber(start int) (token.Token, error) {
	if l.input[l.pos] == '-' {
		l.pos++
	}
	l.skipWhile(isDigit)
	lexeme := l.input[start:l.pos]

	// Numbers must be followed by whitespace or the end of input
	if r, ok := l.peek(); ok && !unicode.IsSpace(r) {
		l.skipWhile(func(r rune) bool { return !unicode.IsSpace(r) })
		return l.error(InvalidNumber, start, fmt.Sprintf("unexpected '%c' following '%s'", r, lexeme))
	}
	if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
		return l.error(InvalidNumber, start, fmt.Sprintf("invalid integer %s: out of range", lexeme))
	}
	return l.token(token.INT, start), nil
}

func (l *Lexer) readText(start int) (token.Token, error) {
	line, lineStart := l.line, l.lineStart
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		l.pos++
		switch c {
		case '\'':
			return token.Token{
				Type:    token.STRING,
				Literal: l.input[start:l.pos],
				Span:    token.Span{Offset: start, Length: l.pos - start, Line: line, LineStart: lineStart},
			}, nil
		case '\n':
			l.newline()
		}
	}
	l.line, l.lineStart = line, lineStart
	return l.error(UnterminatedString, start, "non-terminated string")
}

func (l *Lexer) readIdentifier(start int) token.Token {
	l.skipWhile(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	})
	tok := l.token(token.IDENT, start)
	tok.Type = token.LookupIdentifier(tok.Literal)
	return tok
}

func (l *Lexer) span(start, length int) token.Span {
	return token.Span{Offset: start, Length: length, Line: l.line, LineStart: l.lineStart}
}

func (l *Lexer) token(t token.Type, start int) token.Token {
	return token.Token{Type: t, Literal: l.input[start:l.pos], Span: l.span(start, l.pos-start)}
}

func (l *Lexer) error(cause Cause, start int, message string) (token.Token, error) {
	span := l.span(start, l.pos-start)
	return token.Token{}, &Error{
		Cause:    cause,
		Message:  message,
		Span:     span,
		Snippet:  token.Snippet(l.input, span),
		Filename: l.filename,
		LineText: l.GetLineText(span),
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// startsToken reports whether r can begin some token.
func startsToken(r rune) bool {
	switch r {
	case '-', '\'', '_', ',', ':', ';':
		return true
	}
	return isDigit(r) || unicode.IsLetter(r)
}

// Cause classifies lexer errors.
type Cause int

const (
	// InvalidNumber is a number followed by something other than whitespace,
	// a '-' not followed by digits, or a number out of int64 range.
	InvalidNumber Cause = iota
	// UnterminatedString is quoted text missing its closing quote.
	UnterminatedString
	// UnexpectedCharacter is a run of characters that cannot start a token.
	UnexpectedCharacter
)

// Code returns the diagnostic code for the cause.
func (c Cause) Code() errors.ErrorCode {
	switch c {
	case InvalidNumber:
		return errors.E1008
	case UnterminatedString:
		return errors.E1002
	default:
		return errors.E1003
	}
}

// Error is a lexical error. Its span covers the text skipped while recovering.
type Error struct {
	Cause    Cause
	Message  string
	Span     token.Span
	Snippet  string
	Filename string
	LineText string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid input at [%s]: '%s': %s", e.Span, e.Snippet, e.Message)
}

// ErrorCode returns the diagnostic code of the error.
func (e *Error) ErrorCode() errors.ErrorCode {
	return e.Cause.Code()
}

// ErrorSpan returns the offending span.
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
	return errors.NewFormattedError(e.ErrorCode(), "syntax error", e.Message, loc)
}

// Package regasm interprets programs written for a small register-machine
// assembly language. Source text is tokenized, parsed into statements, built
// into an instruction array with a label table and then evaluated, producing
// the text of the program's msg instructions.
package regasm

import (
	"context"
	goerrors "errors"
	"os"
	"sync/atomic"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/risor-io/regasm/ast"
	"github.com/risor-io/regasm/compiler"
	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/internal/lexer"
	"github.com/risor-io/regasm/parser"
	"github.com/risor-io/regasm/token"
	"github.com/risor-io/regasm/vm"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
	logger.Store(&l)
}

// SetLogger replaces the logger Interpret reports failures to.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Logger returns the logger Interpret reports failures to.
func Logger() zerolog.Logger {
	return *logger.Load()
}

// Tokenize returns the tokens of source, without the trailing EOF. It stops
// at the first lexical error.
func Tokenize(source string, opts ...Option) ([]token.Token, error) {
	return lexer.Tokenize(source, collectOptions(opts...).lexerOpts()...)
}

// Parse returns the statements of source, failing on the first syntax error.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	return parser.Parse(ctx, source, collectOptions(opts...).parserOpts()...)
}

// Compile parses source and builds it into executable code. The returned
// Code is immutable and may be run by several goroutines at once.
func Compile(source string, opts ...Option) (*compiler.Code, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(context.Background(), source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(program, o.compilerOpts()...)
}

// Run evaluates code and returns the concatenated msg output. Each call uses
// fresh registers and an empty call stack.
func Run(ctx context.Context, code *compiler.Code, opts ...Option) (string, error) {
	return vm.Run(ctx, code, collectOptions(opts...).vmOpts()...)
}

// Eval compiles and runs source. It is equivalent to Compile followed by Run.
func Eval(ctx context.Context, source string, opts ...Option) (string, error) {
	code, err := Compile(source, opts...)
	if err != nil {
		return "", err
	}
	return Run(ctx, code, opts...)
}

// Interpret evaluates source and returns its output. On any failure the
// diagnostic is logged and Interpret returns "", false.
func Interpret(source string) (string, bool) {
	runLogger := Logger().With().Str("run", newRunID()).Logger()
	output, err := Eval(context.Background(), source, WithLogger(runLogger))
	if err != nil {
		logFailure(runLogger, err)
		return "", false
	}
	return output, true
}

func newRunID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

func logFailure(l zerolog.Logger, err error) {
	event := l.Warn().Err(err)
	var spanned errors.SpannedError
	if goerrors.As(err, &spanned) {
		event = event.
			Str("code", spanned.ErrorCode().String()).
			Str("location", spanned.ErrorSpan().String())
	}
	var friendly errors.FriendlyError
	if goerrors.As(err, &friendly) {
		event.Msg(friendly.FriendlyErrorMessage())
		return
	}
	event.Msg("program failed")
}

package vm

import (
	"context"

	"github.com/risor-io/regasm/compiler"
	"github.com/risor-io/regasm/parser"
)

// Run the given code in a new Machine and return its output.
func Run(ctx context.Context, code *compiler.Code, options ...Option) (string, error) {
	return New(code, options...).Run(ctx)
}

// Run the given source code in a new Machine. Used for testing.
func run(ctx context.Context, source string, options ...Option) (string, error) {
	m, err := newMachine(ctx, source, options...)
	if err != nil {
		return "", err
	}
	return m.Run(ctx)
}

// Return a new Machine that's ready to run the given source code. Used for
// testing.
func newMachine(ctx context.Context, source string, options ...Option) (*Machine, error) {
	program, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	code, err := compiler.Compile(program)
	if err != nil {
		return nil, err
	}
	return New(code, options...), nil
}

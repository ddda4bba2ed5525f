package regasm

import (
	"github.com/rs/zerolog"

	"github.com/risor-io/regasm/compiler"
	"github.com/risor-io/regasm/internal/lexer"
	"github.com/risor-io/regasm/parser"
	"github.com/risor-io/regasm/vm"
)

// Option configures parsing, building or evaluating a program.
type Option func(*options)

type options struct {
	filename     string
	logger       *zerolog.Logger
	observer     vm.Observer
	maxCallDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) lexerOpts() []lexer.Option {
	if o.filename == "" {
		return nil
	}
	return []lexer.Option{lexer.WithFilename(o.filename)}
}

func (o *options) parserOpts() []parser.Option {
	if o.filename == "" {
		return nil
	}
	return []parser.Option{parser.WithFilename(o.filename)}
}

func (o *options) compilerOpts() []compiler.Option {
	if o.filename == "" {
		return nil
	}
	return []compiler.Option{compiler.WithFilename(o.filename)}
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	if o.maxCallDepth > 0 {
		opts = append(opts, vm.WithMaxCallDepth(o.maxCallDepth))
	}
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	return opts
}

// WithFilename sets the file name shown in diagnostics.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets the logger used while evaluating. Execution is traced at
// debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithObserver sets an observer for evaluator events. The observer
// receives callbacks for instruction steps, calls and returns, and may halt
// the run.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithMaxCallDepth limits the number of pending return addresses. Zero
// means no limit.
func WithMaxCallDepth(depth int) Option {
	return func(o *options) {
		o.maxCallDepth = depth
	}
}

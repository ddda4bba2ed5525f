package vm

import "github.com/rs/zerolog"

// Option is a configuration function for a Machine.
type Option func(*Machine)

// WithObserver sets an observer for execution events. Returning false from
// any observer method halts execution.
func WithObserver(observer Observer) Option {
	return func(m *Machine) {
		m.observer = observer
	}
}

// WithMaxCallDepth bounds the number of pending return addresses. A call
// beyond the limit fails with CallDepthExceeded. Zero, the default, means
// no limit.
func WithMaxCallDepth(depth int) Option {
	return func(m *Machine) {
		m.maxCallDepth = depth
	}
}

// WithContextCheckInterval sets how often, in executed instructions, the
// machine checks whether its context is done. Zero disables the check. The
// default is DefaultContextCheckInterval.
func WithContextCheckInterval(interval int) Option {
	return func(m *Machine) {
		m.contextCheckInterval = interval
	}
}

// WithLogger sets the logger used to trace execution at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

package vm

import (
	"github.com/risor-io/regasm/ast"
	"github.com/risor-io/regasm/token"
)

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep for every instruction.
	// Use for: detailed tracing, instruction-level debugging.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	// Use for: observers that only need call and return events.
	StepNone

	// StepSampled calls OnStep every N instructions.
	// Use for: statistical profiling of long running loops.
	StepSampled

	// StepOnLine calls OnStep when execution moves to a different source line.
	// Use for: coverage tools, line-level debugging.
	StepOnLine
)

// ObserverConfig specifies what events an observer wants to receive.
// Use NewObserverConfig() to create configs with safe defaults.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of instructions between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	SampleInterval int

	// ObserveCalls enables OnCall callbacks.
	ObserveCalls bool

	// ObserveReturns enables OnReturn callbacks.
	ObserveReturns bool
}

// NewObserverConfig creates a config with safe defaults.
// ObserveCalls and ObserveReturns default to true.
func NewObserverConfig(mode StepMode) ObserverConfig {
	return ObserverConfig{
		StepMode:       mode,
		SampleInterval: 1000,
		ObserveCalls:   true,
		ObserveReturns: true,
	}
}

// NormalizeConfig validates and clamps config values.
func NormalizeConfig(cfg ObserverConfig) ObserverConfig {
	if cfg.StepMode == StepSampled && cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 1
	}
	return cfg
}

// Observer receives execution events from a Machine. It can be used for
// tracing, coverage or stepping through a program without modifying the
// evaluator. Methods are called synchronously; returning false from any of
// them halts execution with a Halted error.
type Observer interface {
	// Config returns the observer's configuration.
	// Called once at the start of each run.
	Config() ObserverConfig

	// OnStep is called before an instruction executes, according to the
	// configured StepMode.
	OnStep(event StepEvent) bool

	// OnCall is called after a call instruction pushed its return address.
	OnCall(event CallEvent) bool

	// OnReturn is called after a ret instruction popped its return address.
	OnReturn(event ReturnEvent) bool
}

// StepEvent describes the instruction about to execute.
type StepEvent struct {
	// PC is the index of the instruction.
	PC int

	// Instruction is the instruction about to execute.
	Instruction ast.Instruction

	// Span locates the instruction in the source.
	Span token.Span

	// CallDepth is the number of pending return addresses.
	CallDepth int
}

// CallEvent describes a subroutine call.
type CallEvent struct {
	// Label is the called label.
	Label string

	// Target is the index of the first instruction of the subroutine.
	Target int

	// Span locates the call instruction.
	Span token.Span

	// CallDepth is the call stack depth after the call.
	CallDepth int
}

// ReturnEvent describes a return from a subroutine.
type ReturnEvent struct {
	// ReturnTo is the index execution continues at.
	ReturnTo int

	// Span locates the ret instruction.
	Span token.Span

	// CallDepth is the call stack depth after returning.
	CallDepth int
}

// NoOpObserver is an Observer implementation that does nothing.
// Embed this in your observer to provide default implementations
// for methods you don't need.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return NewObserverConfig(StepAll)
}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnCall(CallEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}

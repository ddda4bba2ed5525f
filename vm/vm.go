// Package vm executes built assembly programs.
//
// A Machine walks the instruction list of a compiler.Code directly, keeping a
// register file, the pending comparison, a stack of return addresses and the
// program output.
package vm

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/risor-io/regasm/ast"
	"github.com/risor-io/regasm/compiler"
	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/token"
	"github.com/rs/zerolog"
)

// DefaultContextCheckInterval is the number of instructions between checks of
// ctx.Done(). A program may loop forever; cancelling its context is the way
// to stop it.
const DefaultContextCheckInterval = 1024

// Registers maps register names to values. Registers that were never written
// read as zero.
type Registers map[string]int64

// comparison holds the operand values of the most recent cmp.
type comparison struct {
	x, y int64
}

// frame is a pending call.
type frame struct {
	returnTo int
	label    string
	span     token.Span // the call instruction
}

// Machine runs one program. A Machine may be run again after a run finishes;
// each run starts from fresh state.
type Machine struct {
	code *compiler.Code

	pc        int
	registers Registers
	cmp       *comparison
	frames    []frame
	output    strings.Builder
	last      token.Span // most recently executed instruction

	observer       Observer
	observerConfig ObserverConfig
	lastLine       int

	maxCallDepth         int
	contextCheckInterval int
	logger               zerolog.Logger

	running  bool
	runMutex sync.Mutex
}

// New returns a Machine for the given code.
func New(code *compiler.Code, options ...Option) *Machine {
	m := &Machine{
		code:                 code,
		registers:            Registers{},
		contextCheckInterval: DefaultContextCheckInterval,
		logger:               zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Run executes the program from its first instruction until end, returning
// the accumulated msg output. It is an error to call Run on a Machine that is
// already running.
func (m *Machine) Run(ctx context.Context) (string, error) {
	m.runMutex.Lock()
	if m.running {
		m.runMutex.Unlock()
		return "", fmt.Errorf("vm is already running")
	}
	m.running = true
	m.runMutex.Unlock()

	defer func() {
		m.runMutex.Lock()
		m.running = false
		m.runMutex.Unlock()
	}()

	m.reset()
	return m.eval(ctx)
}

// Registers returns a copy of the register file as left by the last run.
func (m *Machine) Registers() Registers {
	return maps.Clone(m.registers)
}

// CallDepth returns the number of pending return addresses.
func (m *Machine) CallDepth() int {
	return len(m.frames)
}

func (m *Machine) reset() {
	m.pc = 0
	m.registers = Registers{}
	m.cmp = nil
	m.frames = m.frames[:0]
	m.output.Reset()
	m.last = token.Span{}
	m.lastLine = -1
	if m.observer != nil {
		m.observerConfig = NormalizeConfig(m.observer.Config())
	}
}

func (m *Machine) eval(ctx context.Context) (string, error) {
	var count int
	for m.pc < m.code.Len() {
		if m.contextCheckInterval > 0 && count%m.contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		count++

		instr := m.code.Instruction(m.pc)
		span := instr.Span()
		if m.observer != nil && m.shouldStep(count, span) {
			event := StepEvent{PC: m.pc, Instruction: instr, Span: span, CallDepth: len(m.frames)}
			if !m.observer.OnStep(event) {
				return "", m.newError(Halted, span)
			}
		}
		if ev := m.logger.Debug(); ev.Enabled() {
			ev.Int("pc", m.pc).
				Stringer("instr", instr).
				Int("depth", m.CallDepth()).
				Msg("step")
		}

		done, err := m.step(instr)
		if err != nil {
			return "", err
		}
		if done {
			return m.output.String(), nil
		}
		m.last = span
	}
	return "", m.prematureTermination()
}

func (m *Machine) shouldStep(count int, span token.Span) bool {
	switch m.observerConfig.StepMode {
	case StepAll:
		return true
	case StepSampled:
		return (count-1)%m.observerConfig.SampleInterval == 0
	case StepOnLine:
		if span.Line == m.lastLine {
			return false
		}
		m.lastLine = span.Line
		return true
	}
	return false
}

// step executes one instruction and advances the program counter. It
// reports whether the program ended.
func (m *Machine) step(instr ast.Instruction) (bool, error) {
	switch instr := instr.(type) {
	case *ast.End:
		return true, nil

	case *ast.Ret:
		if len(m.frames) == 0 {
			return false, m.newError(MissingReturnTarget, instr.Loc)
		}
		top := m.frames[len(m.frames)-1]
		m.frames = m.frames[:len(m.frames)-1]
		m.pc = top.returnTo
		if m.observer != nil && m.observerConfig.ObserveReturns {
			event := ReturnEvent{ReturnTo: m.pc, Span: instr.Loc, CallDepth: len(m.frames)}
			if !m.observer.OnReturn(event) {
				return false, m.newError(Halted, instr.Loc)
			}
		}

	case *ast.Call:
		target, err := m.resolve(instr.Label, instr.Loc)
		if err != nil {
			return false, err
		}
		if m.maxCallDepth > 0 && len(m.frames) >= m.maxCallDepth {
			e := m.newError(CallDepthExceeded, instr.Loc)
			e.Limit = m.maxCallDepth
			return false, e
		}
		m.frames = append(m.frames, frame{returnTo: m.pc + 1, label: instr.Label, span: instr.Loc})
		m.pc = target
		if m.observer != nil && m.observerConfig.ObserveCalls {
			event := CallEvent{Label: instr.Label, Target: target, Span: instr.Loc, CallDepth: len(m.frames)}
			if !m.observer.OnCall(event) {
				return false, m.newError(Halted, instr.Loc)
			}
		}

	case *ast.Cmp:
		m.cmp = &comparison{x: m.value(instr.Left), y: m.value(instr.Right)}
		m.pc++

	case *ast.Jump:
		// The target must exist even if the jump is not taken
		target, err := m.resolve(instr.Label, instr.Loc)
		if err != nil {
			return false, err
		}
		taken := true
		if instr.Cond != ast.Always {
			if m.cmp == nil {
				return false, m.newError(NoPendingComparison, instr.Loc)
			}
			taken = instr.Cond.Holds(m.cmp.x, m.cmp.y)
		}
		if taken {
			m.pc = target
		} else {
			m.pc++
		}

	case *ast.Unary:
		switch instr.Op {
		case ast.Inc:
			m.registers[instr.Reg.Name]++
		case ast.Dec:
			m.registers[instr.Reg.Name]--
		}
		m.pc++

	case *ast.Binary:
		val := m.value(instr.Value)
		reg := instr.Reg.Name
		switch instr.Op {
		case ast.Mov:
			m.registers[reg] = val
		case ast.Add:
			m.registers[reg] += val
		case ast.Sub:
			m.registers[reg] -= val
		case ast.Mul:
			m.registers[reg] *= val
		case ast.Div:
			if val == 0 {
				return false, m.newError(DivisionByZero, instr.Loc)
			}
			m.registers[reg] /= val
		}
		m.pc++

	case *ast.Msg:
		for _, arg := range instr.Args {
			switch arg := arg.(type) {
			case *ast.Register:
				m.output.WriteString(strconv.FormatInt(m.registers[arg.Name], 10))
			case *ast.Const:
				m.output.WriteString(strconv.FormatInt(arg.Value, 10))
			case *ast.Text:
				m.output.WriteString(arg.Value)
			}
		}
		m.pc++

	default:
		return false, fmt.Errorf("vm: unsupported instruction %T", instr)
	}
	return false, nil
}

func (m *Machine) value(v ast.Value) int64 {
	switch v := v.(type) {
	case *ast.Const:
		return v.Value
	case *ast.Register:
		return m.registers[v.Name]
	}
	return 0
}

func (m *Machine) resolve(label string, span token.Span) (int, error) {
	target, ok := m.code.Label(label)
	if !ok {
		e := m.newError(UnknownLabel, span)
		e.Label = label
		e.Hint = errors.FormatSuggestions(errors.SuggestSimilar(label, m.code.LabelNames()))
		return 0, e
	}
	return target, nil
}

// prematureTermination points at the last executed instruction, or at an
// empty span at the start of the source when nothing executed.
func (m *Machine) prematureTermination() *Error {
	return m.newError(PrematureTermination, m.last)
}

func (m *Machine) newError(cause Cause, span token.Span) *Error {
	e := &Error{
		Cause:    cause,
		Span:     span,
		Snippet:  token.Snippet(m.code.Source(), span),
		Filename: m.code.Filename(),
		LineText: m.code.LineText(span),
	}
	for i := len(m.frames) - 1; i >= 0; i-- {
		f := m.frames[i]
		e.Stack = append(e.Stack, errors.StackFrame{
			Function: f.label,
			Location: errors.NewSourceLocation(m.code.Filename(), f.span, m.code.LineText(f.span)),
		})
	}
	return e
}

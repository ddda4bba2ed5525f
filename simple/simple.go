// Package simple runs programs for the minimal register machine that
// preceded the full assembler: mov, inc, dec and a relative jnz, one
// space separated instruction per line.
package simple

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const contextCheckInterval = 1024

type opcode int

const (
	opMov opcode = iota
	opInc
	opDec
	opJnz
)

var opcodes = map[string]struct {
	op    opcode
	arity int
}{
	"mov": {opMov, 2},
	"inc": {opInc, 1},
	"dec": {opDec, 1},
	"jnz": {opJnz, 2},
}

// operand is a register name or, when reg is empty, a constant.
type operand struct {
	reg string
	val int64
}

func parseOperand(s string) operand {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return operand{val: v}
	}
	return operand{reg: s}
}

type instruction struct {
	op   opcode
	x, y operand
}

// SyntaxError reports a line that is not a valid instruction.
type SyntaxError struct {
	Line    int // 1-based
	Text    string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
}

func parse(program []string) ([]instruction, error) {
	instrs := make([]instruction, 0, len(program))
	for i, line := range program {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, &SyntaxError{Line: i + 1, Text: line, Message: "empty instruction"}
		}
		def, ok := opcodes[fields[0]]
		if !ok {
			return nil, &SyntaxError{Line: i + 1, Text: line, Message: "unknown instruction"}
		}
		args := fields[1:]
		if len(args) != def.arity {
			msg := fmt.Sprintf("%s takes %d argument(s), got %d", fields[0], def.arity, len(args))
			return nil, &SyntaxError{Line: i + 1, Text: line, Message: msg}
		}
		instr := instruction{op: def.op, x: parseOperand(args[0])}
		if def.arity == 2 {
			instr.y = parseOperand(args[1])
		}
		if def.op != opJnz && instr.x.reg == "" {
			return nil, &SyntaxError{Line: i + 1, Text: line, Message: "destination must be a register"}
		}
		instrs = append(instrs, instr)
	}
	return instrs, nil
}

// Run executes the program and returns the final registers. Every register
// the program touched is included, even if only read.
func Run(program []string) (map[string]int64, error) {
	return RunContext(context.Background(), program)
}

// RunContext is Run with a context that can stop a program that never
// leaves its loop.
func RunContext(ctx context.Context, program []string) (map[string]int64, error) {
	instrs, err := parse(program)
	if err != nil {
		return nil, err
	}
	registers := map[string]int64{}
	value := func(o operand) int64 {
		if o.reg == "" {
			return o.val
		}
		v := registers[o.reg]
		registers[o.reg] = v
		return v
	}

	var steps int
	for pc := 0; pc >= 0 && pc < len(instrs); {
		if steps%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		steps++

		instr := instrs[pc]
		switch instr.op {
		case opMov:
			registers[instr.x.reg] = value(instr.y)
		case opInc:
			registers[instr.x.reg]++
		case opDec:
			registers[instr.x.reg]--
		case opJnz:
			if value(instr.x) != 0 {
				pc += int(value(instr.y))
				continue
			}
		}
		pc++
	}
	return registers, nil
}

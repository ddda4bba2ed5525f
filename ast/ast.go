// Package ast defines the syntax tree of an assembly program: a flat list of
// label definitions and instructions, each carrying its source span.
package ast

import (
	"strconv"
	"strings"

	"github.com/risor-io/regasm/token"
)

// Node represents a portion of the syntax tree. All nodes know the span of
// source text they were parsed from.
type Node interface {
	// Span returns the source range covered by the node.
	Span() token.Span

	// String returns the canonical source form of the node. Parsing the
	// result yields an equivalent node.
	String() string
}

// Statement is a top-level line of a program: a label definition or an
// instruction.
type Statement interface {
	Node
	stmtNode()
}

// Instruction is a statement that executes. Label definitions are the only
// statements that are not instructions.
type Instruction interface {
	Statement
	instrNode()
}

// Value is an operand that resolves to an integer: a register or a constant.
type Value interface {
	Node
	valueNode()
}

// Literal is an argument of msg: a register, quoted text or a constant.
type Literal interface {
	Node
	literalNode()
}

// Register names a register. Registers also appear as msg arguments, where
// they print their current value.
type Register struct {
	Loc  token.Span
	Name string
}

func (r *Register) valueNode()   {}
func (r *Register) literalNode() {}

func (r *Register) Span() token.Span { return r.Loc }
func (r *Register) String() string   { return r.Name }

// Const is a signed integer constant.
type Const struct {
	Loc   token.Span
	Value int64
	Raw   string // lexeme as written
}

func (c *Const) valueNode()   {}
func (c *Const) literalNode() {}

func (c *Const) Span() token.Span { return c.Loc }

func (c *Const) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	return strconv.FormatInt(c.Value, 10)
}

// Text is quoted text in a msg argument list. Value excludes the quotes.
type Text struct {
	Loc   token.Span
	Value string
}

func (t *Text) literalNode() {}

func (t *Text) Span() token.Span { return t.Loc }
func (t *Text) String() string   { return "'" + t.Value + "'" }

// Program is the ordered list of statements parsed from one source text.
type Program struct {
	Source     string
	Filename   string
	Statements []Statement
}

// Span covers the whole source text.
func (p *Program) Span() token.Span {
	return token.Span{Length: len(p.Source)}
}

// String renders one statement per line. Instructions are indented below
// their labels.
func (p *Program) String() string {
	var out strings.Builder
	for i, stmt := range p.Statements {
		if i > 0 {
			out.WriteString("\n")
		}
		if _, ok := stmt.(*Label); !ok {
			out.WriteString("    ")
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}

// Instructions returns the program's statements with label definitions
// removed.
func (p *Program) Instructions() []Instruction {
	var instrs []Instruction
	for _, stmt := range p.Statements {
		if instr, ok := stmt.(Instruction); ok {
			instrs = append(instrs, instr)
		}
	}
	return instrs
}

package compiler

import (
	"fmt"
	"strings"

	"github.com/risor-io/regasm/ast"
	"github.com/risor-io/regasm/internal/lexer"
	"github.com/risor-io/regasm/token"
)

// Code is a built program: the flat instruction list and the index of the
// instruction each label points at. Code is immutable once built and safe to
// share between concurrent runs.
type Code struct {
	source       string
	filename     string
	instructions []ast.Instruction
	labels       map[string]int
	labelNames   []string // in definition order
}

// Source returns the source text the program was parsed from.
func (c *Code) Source() string {
	return c.source
}

// Filename returns the name of the source file, if known.
func (c *Code) Filename() string {
	return c.filename
}

// Len returns the number of instructions.
func (c *Code) Len() int {
	return len(c.instructions)
}

// Instruction returns the instruction at index i.
func (c *Code) Instruction(i int) ast.Instruction {
	return c.instructions[i]
}

// Label returns the index of the instruction following the definition of the
// named label. A label defined after the last instruction points at Len().
func (c *Code) Label(name string) (int, bool) {
	index, ok := c.labels[name]
	return index, ok
}

// LabelNames returns the defined labels in definition order.
func (c *Code) LabelNames() []string {
	names := make([]string, len(c.labelNames))
	copy(names, c.labelNames)
	return names
}

// LineText returns the source line on which span starts.
func (c *Code) LineText(span token.Span) string {
	return lexer.LineText(c.source, span)
}

// String returns a listing of the program with instruction indices and the
// labels pointing at them.
func (c *Code) String() string {
	byIndex := map[int][]string{}
	for _, name := range c.labelNames {
		index := c.labels[name]
		byIndex[index] = append(byIndex[index], name)
	}
	var b strings.Builder
	for i := 0; i <= len(c.instructions); i++ {
		for _, name := range byIndex[i] {
			fmt.Fprintf(&b, "%s:\n", name)
		}
		if i < len(c.instructions) {
			fmt.Fprintf(&b, "[%4d] %s\n", i, c.instructions[i])
		}
	}
	return b.String()
}

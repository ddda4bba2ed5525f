package ast

import (
	"testing"

	"github.com/risor-io/regasm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		stmt     Statement
		expected string
	}{
		{&Label{Name: "proc_fib"}, "proc_fib:"},
		{&Unary{Op: Inc, Reg: &Register{Name: "a"}}, "inc a"},
		{&Unary{Op: Dec, Reg: &Register{Name: "b"}}, "dec b"},
		{&Binary{Op: Mov, Reg: &Register{Name: "a"}, Value: &Const{Value: 5}}, "mov a, 5"},
		{&Binary{Op: Div, Reg: &Register{Name: "a"}, Value: &Register{Name: "b"}}, "div a, b"},
		{&Binary{Op: Sub, Reg: &Register{Name: "b"}, Value: &Const{Value: -112, Raw: "-112"}}, "sub b, -112"},
		{&Cmp{Left: &Register{Name: "a"}, Right: &Const{Value: 0}}, "cmp a, 0"},
		{&Jump{Label: "loop"}, "jmp loop"},
		{&Jump{Cond: Ge, Label: "done"}, "jge done"},
		{&Jump{Cond: Lt, Label: "done"}, "jl done"},
		{&Call{Label: "func"}, "call func"},
		{&Ret{}, "ret"},
		{&End{}, "end"},
		{&Msg{}, "msg"},
		{&Msg{Args: []Literal{&Text{Value: "(5+1)/2 = "}, &Register{Name: "a"}}}, "msg '(5+1)/2 = ', a"},
		{&Msg{Args: []Literal{&Const{Value: 7}, &Text{Value: ""}}}, "msg 7, ''"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stmt.String())
		})
	}
}

func TestProgram(t *testing.T) {
	program := &Program{
		Source: "start:\n  inc a\nend",
		Statements: []Statement{
			&Label{Name: "start"},
			&Unary{Op: Inc, Reg: &Register{Name: "a"}},
			&End{},
		},
	}
	assert.Equal(t, "start:\n    inc a\n    end", program.String())
	assert.Equal(t, token.Span{Length: 18}, program.Span())

	instrs := program.Instructions()
	require.Len(t, instrs, 2)
	assert.Equal(t, "inc a", instrs[0].String())
	assert.Equal(t, "end", instrs[1].String())
}

func TestConds(t *testing.T) {
	tests := []struct {
		keyword token.Type
		cond    Cond
		x, y    int64
		holds   bool
	}{
		{token.JMP, Always, 1, 2, true},
		{token.JE, Eq, 2, 2, true},
		{token.JE, Eq, 1, 2, false},
		{token.JNE, Ne, 1, 2, true},
		{token.JGE, Ge, 2, 2, true},
		{token.JG, Gt, 2, 2, false},
		{token.JLE, Le, 1, 2, true},
		{token.JL, Lt, 2, 1, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.keyword), func(t *testing.T) {
			cond, ok := CondFor(tt.keyword)
			require.True(t, ok)
			assert.Equal(t, tt.cond, cond)
			assert.Equal(t, tt.keyword, cond.Mnemonic())
			assert.Equal(t, tt.holds, cond.Holds(tt.x, tt.y))
		})
	}
	_, ok := CondFor(token.INC)
	assert.False(t, ok)
}

func TestOpLookups(t *testing.T) {
	op, ok := UnaryOpFor(token.DEC)
	assert.True(t, ok)
	assert.Equal(t, Dec, op)
	_, ok = UnaryOpFor(token.MOV)
	assert.False(t, ok)

	bop, ok := BinaryOpFor(token.MUL)
	assert.True(t, ok)
	assert.Equal(t, Mul, bop)
	_, ok = BinaryOpFor(token.INC)
	assert.False(t, ok)
}

func TestInterfaces(t *testing.T) {
	var _ Instruction = &Msg{}
	var _ Value = &Register{}
	var _ Value = &Const{}
	var _ Literal = &Text{}
	var _ Literal = &Register{}

	var stmt Statement = &Label{}
	_, isInstr := stmt.(Instruction)
	assert.False(t, isInstr)
}

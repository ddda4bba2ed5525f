package simple

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		program  []string
		expected map[string]int64
	}{
		{
			"countdown",
			[]string{"mov a 5", "inc a", "dec a", "dec a", "jnz a -1", "inc a"},
			map[string]int64{"a": 1},
		},
		{
			"nested loops",
			[]string{
				"mov c 12",
				"mov b 0",
				"mov a 200",
				"dec a",
				"inc b",
				"jnz a -2",
				"dec c",
				"mov a b",
				"jnz c -5",
				"jnz 0 1",
				"mov c a",
			},
			map[string]int64{"a": 409600, "c": 409600, "b": 409600},
		},
		{
			"jump past the end",
			[]string{"mov a 1", "jnz a 5", "inc a"},
			map[string]int64{"a": 1},
		},
		{
			"jump before the start",
			[]string{"inc a", "jnz 1 -2", "inc a"},
			map[string]int64{"a": 1},
		},
		{
			"jump by register",
			[]string{"mov s 2", "jnz s s", "inc a", "inc b"},
			map[string]int64{"s": 2, "b": 1},
		},
		{
			"read registers are reported",
			[]string{"mov a b"},
			map[string]int64{"a": 0, "b": 0},
		},
		{"empty program", nil, map[string]int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registers, err := Run(tt.program)
			require.Nil(t, err)
			assert.Equal(t, tt.expected, registers)
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		program []string
		line    int
		message string
	}{
		{[]string{"mov a 1", "add a 1"}, 2, "unknown instruction"},
		{[]string{"inc"}, 1, "inc takes 1 argument(s), got 0"},
		{[]string{"mov a"}, 1, "mov takes 2 argument(s), got 1"},
		{[]string{"jnz a 1 2"}, 1, "jnz takes 2 argument(s), got 3"},
		{[]string{"inc a", "  "}, 2, "empty instruction"},
		{[]string{"mov 5 a"}, 1, "destination must be a register"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			_, err := Run(tt.program)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.line, syntaxErr.Line)
			assert.Equal(t, tt.message, syntaxErr.Message)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := Run([]string{"mul a 2"})
	require.Error(t, err)
	assert.Equal(t, `line 1: unknown instruction: "mul a 2"`, err.Error())
}

func TestRunContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := RunContext(ctx, []string{"inc a", "jnz 1 -1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

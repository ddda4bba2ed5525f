package regasm

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/regasm/compiler"
	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/parser"
	"github.com/risor-io/regasm/token"
	"github.com/risor-io/regasm/vm"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := Logger()
	SetLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))
	t.Cleanup(func() { SetLogger(previous) })
	return &buf
}

func readProgram(t *testing.T, n int) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", fmt.Sprintf("program_%d.asm", n)))
	require.Nil(t, err)
	return string(data)
}

func TestInterpretPrograms(t *testing.T) {
	tests := []struct {
		program  int
		expected string
		ok       bool
	}{
		{1, "(5+1)/2 = 3", true},
		{2, "5! = 120", true},
		{3, "Term 8 of Fibonacci series is: 21", true},
		{4, "mod(11, 3) = 2", true},
		{5, "gcd(81, 153) = 9", true},
		{6, "", false},
		{7, "2^10 = 1024", true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("program_%d", tt.program), func(t *testing.T) {
			captureLogs(t)
			output, ok := Interpret(readProgram(t, tt.program))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, output)
		})
	}
}

func TestInterpretUnknownLabel(t *testing.T) {
	logs := captureLogs(t)
	output, ok := Interpret("call nowhere\nend")
	assert.False(t, ok)
	assert.Empty(t, output)
	assert.Contains(t, logs.String(), `"code":"E3001"`)
	assert.Contains(t, logs.String(), `"run":"`)
	assert.Contains(t, logs.String(), "unknown label 'nowhere'")
}

func TestInterpretSyntaxErrorIsLogged(t *testing.T) {
	logs := captureLogs(t)
	_, ok := Interpret("mov a 5\nend")
	assert.False(t, ok)
	assert.Contains(t, logs.String(), `"code":"E1001"`)
	assert.Contains(t, logs.String(), `"location":"0:0:7"`)
}

func TestInterpretUnreadComparison(t *testing.T) {
	captureLogs(t)
	output, ok := Interpret("cmp a, b\nend")
	assert.True(t, ok)
	assert.Equal(t, "", output)
}

func TestInterpretRunIDsDiffer(t *testing.T) {
	logs := captureLogs(t)
	Interpret("ret")
	Interpret("ret")
	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.NotEqual(t, runID(t, lines[0]), runID(t, lines[1]))
}

func runID(t *testing.T, line []byte) string {
	t.Helper()
	_, after, found := bytes.Cut(line, []byte(`"run":"`))
	require.True(t, found)
	id, _, found := bytes.Cut(after, []byte(`"`))
	require.True(t, found)
	return string(id)
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize("mov a, 5 ; set\nend")
	require.Nil(t, err)
	var types []token.Type
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.Type{token.MOV, token.IDENT, token.COMMA, token.INT, token.END}, types)
}

func TestParse(t *testing.T) {
	program, err := Parse(context.Background(), "start:\n  inc a\n  jmp start")
	require.Nil(t, err)
	assert.Len(t, program.Statements, 3)
	assert.Equal(t, "start:\n    inc a\n    jmp start", program.String())
}

func TestParseError(t *testing.T) {
	_, err := Parse(context.Background(), "add 5, a", WithFilename("prog.asm"))
	require.Error(t, err)
	var syntaxErr *parser.SyntaxError
	require.True(t, goerrors.As(err, &syntaxErr))
	assert.Equal(t, "prog.asm", syntaxErr.Filename)
}

func TestCompileDuplicateLabel(t *testing.T) {
	_, err := Compile("a:\nend\na:\nend")
	require.Error(t, err)
	var dupErr *compiler.DuplicateLabelError
	require.True(t, goerrors.As(err, &dupErr))
	assert.Equal(t, 1, dupErr.FirstLine)
}

func TestEval(t *testing.T) {
	output, err := Eval(context.Background(), "mov a, 6\nmul a, 7\nmsg 'answer: ', a\nend")
	require.Nil(t, err)
	assert.Equal(t, "answer: 42", output)
}

func TestEvalMaxCallDepth(t *testing.T) {
	_, err := Eval(context.Background(), "call f\nend\nf:\ncall f", WithMaxCallDepth(10))
	require.Error(t, err)
	var vmErr *vm.Error
	require.True(t, goerrors.As(err, &vmErr))
	assert.Equal(t, vm.CallDepthExceeded, vmErr.Cause)
	assert.Equal(t, errors.E3006, vmErr.ErrorCode())
}

type countingObserver struct {
	vm.NoOpObserver
	steps int
}

func (o *countingObserver) Config() vm.ObserverConfig {
	return vm.NewObserverConfig(vm.StepAll)
}

func (o *countingObserver) OnStep(vm.StepEvent) bool {
	o.steps++
	return true
}

func TestEvalWithObserver(t *testing.T) {
	obs := &countingObserver{}
	_, err := Eval(context.Background(), "inc a\ninc a\nend", WithObserver(obs))
	require.Nil(t, err)
	assert.Equal(t, 3, obs.steps)
}

func TestRunConcurrently(t *testing.T) {
	code, err := Compile(readProgram(t, 5))
	require.Nil(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Run(context.Background(), code)
		}()
	}
	wg.Wait()
	for i := range results {
		require.Nil(t, errs[i])
		assert.Equal(t, "gcd(81, 153) = 9", results[i])
	}
}

func TestFormattedDiagnostic(t *testing.T) {
	_, err := Eval(context.Background(), "mov a, 1\ndiv a, 0\nend", WithFilename("div.asm"))
	require.Error(t, err)
	out := errors.Format(err, false)
	assert.Contains(t, out, "E3002")
	assert.Contains(t, out, "division by zero")
	assert.Contains(t, out, "div.asm:2:1")
}

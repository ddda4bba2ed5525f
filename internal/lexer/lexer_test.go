package lexer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/risor-io/regasm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := "mov  a, 5\nlbl:\nmsg 'x = ', a ; comment\nend"

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.MOV, "mov"},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.INT, "5"},
		{token.IDENT, "lbl"},
		{token.COLON, ":"},
		{token.MSG, "msg"},
		{token.STRING, "'x = '"},
		{token.COMMA, ","},
		{token.IDENT, "a"},
		{token.END, "end"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.Nil(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "mov inc dec add sub mul div jmp cmp jne je jge jg jle jl call ret msg end"
	tokens, err := Tokenize(input)
	require.Nil(t, err)
	require.Len(t, tokens, 19)
	for _, tok := range tokens {
		assert.True(t, tok.Type.IsKeyword(), tok.Literal)
		assert.Equal(t, token.Type(tok.Literal), tok.Type)
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{"a", token.IDENT},
		{"proc_fib", token.IDENT},
		{"func_0", token.IDENT},
		{"MOV", token.IDENT},
		{"movx", token.IDENT},
		{"jmp2", token.IDENT},
		{"jge", token.JGE},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := New(tt.input).Next()
			require.Nil(t, err)
			assert.Equal(t, tt.expected, tok.Type)
			assert.Equal(t, tt.input, tok.Literal)
		})
	}
}

func TestIntegers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"5", "5"},
		{"-112", "-112"},
		{"153 ", "153"},
		{"9223372036854775807", "9223372036854775807"},
		{"-9223372036854775808", "-9223372036854775808"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := New(tt.input).Next()
			require.Nil(t, err)
			assert.Equal(t, token.INT, tok.Type)
			assert.Equal(t, tt.expected, tok.Literal)
		})
	}
}

func TestText(t *testing.T) {
	tok, err := New("  '(5+1)/2 = ' ").Next()
	require.Nil(t, err)
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "'(5+1)/2 = '", tok.Literal)
	assert.Equal(t, token.Span{Offset: 2, Length: 12}, tok.Span)

	// Text may contain characters that are otherwise invalid, and newlines.
	l := New("'a;b\nc' x")
	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, "'a;b\nc'", tok.Literal)
	assert.Equal(t, 0, tok.Span.Line)
	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, "x", tok.Literal)
	assert.Equal(t, 1, tok.Span.Line)
	assert.Equal(t, 3, tok.Span.Column())
}

func TestComments(t *testing.T) {
	input := "; My first program\nmov  a, 5 ; set\n;trailing"
	tokens, err := Tokenize(input)
	require.Nil(t, err)
	require.Len(t, tokens, 4)
	for _, tok := range tokens {
		assert.Equal(t, 1, tok.Span.Line)
	}
	tok, err := New(";only a comment").Next()
	require.Nil(t, err)
	assert.Equal(t, token.EOF, tok.Type)
}

func TestLexemeLocations(t *testing.T) {
	tests := []struct {
		input    string
		lexemes  []string
		expected [][2]int // line, column
	}{
		{"", nil, nil},
		{
			"mov  a, 5",
			[]string{"mov", "a", ",", "5"},
			[][2]int{{0, 0}, {0, 5}, {0, 6}, {0, 8}},
		},
		{
			"mov   b, -112  \n",
			[]string{"mov", "b", ",", "-112"},
			[][2]int{{0, 0}, {0, 6}, {0, 7}, {0, 9}},
		},
		{
			"msg  '(5+1)/2 = ', a    ; output message",
			[]string{"msg", "'(5+1)/2 = '", ",", "a"},
			[][2]int{{0, 0}, {0, 5}, {0, 17}, {0, 19}},
		},
		{
			"\nfunc_0:\n    mov   b, c\n    inc   c\n    jmp   proc_fib\n",
			[]string{"func_0", ":", "mov", "b", ",", "c", "inc", "c", "jmp", "proc_fib"},
			[][2]int{{1, 0}, {1, 6}, {2, 4}, {2, 10}, {2, 11}, {2, 13}, {3, 4}, {3, 10}, {4, 4}, {4, 10}},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.Nil(t, err)
			var lexemes []string
			var locs [][2]int
			for _, tok := range tokens {
				lexemes = append(lexemes, tok.Literal)
				locs = append(locs, [2]int{tok.Span.Line, tok.Span.Column()})
			}
			assert.Equal(t, tt.lexemes, lexemes)
			assert.Equal(t, tt.expected, locs)
		})
	}
}

func TestInvalidInputs(t *testing.T) {
	tests := []struct {
		input  string
		cause  Cause
		line   int
		column int
		length int
	}{
		{"mov x  123.456", InvalidNumber, 0, 7, 7},
		{"mov x  123foo%!$456", InvalidNumber, 0, 7, 12},
		{"mov x  123some-text456", InvalidNumber, 0, 7, 15},
		{"\nmov x  123\ninc -text456", InvalidNumber, 2, 4, 8},
		{"mov a, 5,", InvalidNumber, 0, 7, 2},
		{"mov a, -", InvalidNumber, 0, 7, 1},
		{"mov a, 99999999999999999999", InvalidNumber, 0, 7, 20},
		{"msg 'abc", UnterminatedString, 0, 4, 4},
		{"mov a, b\nmsg 'x\ny", UnterminatedString, 1, 4, 4},
		{"inc a\n  @#! b", UnexpectedCharacter, 1, 2, 3},
		{"mov a%, b", UnexpectedCharacter, 0, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			var lexErr *Error
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.cause, lexErr.Cause)
			assert.Equal(t, tt.line, lexErr.Span.Line, "line no.")
			assert.Equal(t, tt.column, lexErr.Span.Column(), "within line offset")
			assert.Equal(t, tt.length, lexErr.Span.Length, "sequence length")
		})
	}
}

func TestRecovery(t *testing.T) {
	l := New("mov x 12ab\n@@ inc x")
	var types []token.Type
	var errs int
	for tok, err := range l.All() {
		if err != nil {
			errs++
			continue
		}
		types = append(types, tok.Type)
	}
	assert.Equal(t, 2, errs)
	assert.Equal(t, []token.Type{token.MOV, token.IDENT, token.INC, token.IDENT}, types)
}

func TestErrorMessages(t *testing.T) {
	_, err := Tokenize("mov x  123.456", WithFilename("prog.asm"))
	require.Error(t, err)
	assert.Equal(t, "invalid input at [0:7:7]: '123.456': unexpected '.' following '123'", err.Error())

	var lexErr *Error
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "E1008", lexErr.ErrorCode().String())
	friendly := lexErr.FriendlyErrorMessage()
	assert.Contains(t, friendly, "syntax error[E1008]")
	assert.Contains(t, friendly, "prog.asm:1:8")
	assert.Contains(t, friendly, "mov x  123.456")
	assert.Contains(t, friendly, "^^^^^^^")
}

func TestMultipleEOFReads(t *testing.T) {
	l := New("end")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.END, tok.Type)
	for i := 0; i < 3; i++ {
		tok, err = l.Next()
		require.Nil(t, err)
		assert.Equal(t, token.EOF, tok.Type)
		assert.Equal(t, 3, tok.Span.Offset)
	}
}

func TestAllStopsEarly(t *testing.T) {
	count := 0
	for range New("inc a\ninc b\ninc c").All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestGetLineText(t *testing.T) {
	src := "mov a, 5\r\n  inc a\nend"
	l := New(src)
	assert.Equal(t, "mov a, 5", l.GetLineText(token.Span{Offset: 4, LineStart: 0}))
	assert.Equal(t, "  inc a", l.GetLineText(token.Span{Offset: 12, Line: 1, LineStart: 10}))
	assert.Equal(t, "end", l.GetLineText(token.Span{Offset: 18, Line: 2, LineStart: 18}))
	assert.Equal(t, "", LineText(src, token.Span{LineStart: 100}))
}

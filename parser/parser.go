// Package parser turns assembly source into statements.
//
// A parser is created by calling New() with a lexer as input. Statements are
// produced one at a time with More() and Next(), or all at once with Parse().
// Every statement is a single instruction or label definition; there is no
// nesting, so one token of lookahead is enough.
package parser

import (
	"context"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/risor-io/regasm/ast"
	"github.com/risor-io/regasm/internal/lexer"
	"github.com/risor-io/regasm/token"
)

// Parse the provided input as assembly source and return the program. This is
// shorthand for creating a Lexer and Parser and then calling Parse on that.
// Parsing stops at the first error.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	return newParser(input, options...).Parse(ctx)
}

// Check parses the whole input and returns every lex and parse error found,
// aggregated in a *multierror.Error, or nil when the input is valid.
func Check(ctx context.Context, input string, options ...Option) error {
	p := newParser(input, options...)
	var result *multierror.Error
	for p.More() {
		if err := ctx.Err(); err != nil {
			return multierror.Append(result, err)
		}
		if _, err := p.Next(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func newParser(input string, options ...Option) *Parser {
	// The lexer needs the filename before the parser exists
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	l := lexer.New(input, lexer.WithFilename(probe.filename))
	return New(l, options...)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in diagnostics.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// item is a lexer result: a token or the error produced in its place.
type item struct {
	tok token.Token
	err error
}

// Parser holds a materialized list of lexer results and a cursor into it.
type Parser struct {
	// l is our lexer
	l *lexer.Lexer

	// items holds every token and lex error in source order
	items []item

	// pos is the index of the next unread item
	pos int

	// The filename of the input
	filename string
}

// New returns a Parser for the program provided by the given Lexer. The lexer
// is drained immediately.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{l: l}
	for _, opt := range options {
		opt(p)
	}
	if p.filename == "" {
		p.filename = l.Filename()
	}
	for tok, err := range l.All() {
		p.items = append(p.items, item{tok: tok, err: err})
	}
	return p
}

// Parse reads every remaining statement. It fails on the first error, or when
// ctx is cancelled between statements.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	program := &ast.Program{Source: p.l.Source(), Filename: p.filename}
	for p.More() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stmt, err := p.Next()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

// More reports whether any input remains.
func (p *Parser) More() bool {
	return p.pos < len(p.items)
}

// Next parses one statement. After an error the parser resumes at the token
// following the one that caused it.
func (p *Parser) Next() (ast.Statement, error) {
	it, ok := p.next()
	if !ok {
		return nil, p.missing(token.Span{Offset: len(p.l.Source())}, "a statement")
	}
	if it.err != nil {
		return nil, p.lexFailure(it.err)
	}
	tok := it.tok
	switch {
	case tok.Type.IsKeyword():
		return p.instruction(tok)
	case tok.Type == token.IDENT:
		return p.label(tok)
	default:
		return nil, p.newError(UnexpectedStatementStart, tok.Span, errorFields{got: tok.Describe()})
	}
}

func (p *Parser) next() (item, bool) {
	if p.pos >= len(p.items) {
		return item{}, false
	}
	it := p.items[p.pos]
	p.pos++
	return it, true
}

// nextIf consumes the next item only if it is a token of type t.
func (p *Parser) nextIf(t token.Type) (token.Token, bool) {
	if p.pos >= len(p.items) {
		return token.Token{}, false
	}
	it := p.items[p.pos]
	if it.err != nil || it.tok.Type != t {
		return token.Token{}, false
	}
	p.pos++
	return it.tok, true
}

// nextLiteral consumes the next item only if it is a literal token.
func (p *Parser) nextLiteral() (token.Token, bool) {
	if p.pos >= len(p.items) {
		return token.Token{}, false
	}
	it := p.items[p.pos]
	if it.err != nil || !it.tok.Type.IsLiteral() {
		return token.Token{}, false
	}
	p.pos++
	return it.tok, true
}

// expect consumes a token of type t. The returned span extends span to cover
// it.
func (p *Parser) expect(t token.Type, span token.Span, expected string) (token.Token, token.Span, error) {
	it, ok := p.next()
	if !ok {
		return token.Token{}, span, p.missing(span, expected)
	}
	if it.err != nil {
		return token.Token{}, span, p.lexFailure(it.err)
	}
	span = token.Merge(span, it.tok.Span)
	if it.tok.Type != t {
		return token.Token{}, span, p.newError(ExpectedToken, span, errorFields{expected: expected, got: it.tok.Describe()})
	}
	return it.tok, span, nil
}

func (p *Parser) literal(span token.Span) (ast.Literal, token.Span, error) {
	it, ok := p.next()
	if !ok {
		return nil, span, p.missing(span, "a literal")
	}
	if it.err != nil {
		return nil, span, p.lexFailure(it.err)
	}
	span = token.Merge(span, it.tok.Span)
	lit, ok := literalFor(it.tok)
	if !ok {
		return nil, span, p.newError(ExpectedToken, span, errorFields{expected: "a literal", got: it.tok.Describe()})
	}
	return lit, span, nil
}

func (p *Parser) ident(span token.Span) (*ast.Register, token.Span, error) {
	lit, span, err := p.literal(span)
	if err != nil {
		return nil, span, err
	}
	reg, ok := lit.(*ast.Register)
	if !ok {
		return nil, span, p.newError(ExpectedToken, span, errorFields{expected: "an identifier", got: describeLiteral(lit)})
	}
	return reg, span, nil
}

func (p *Parser) value(span token.Span) (ast.Value, token.Span, error) {
	lit, span, err := p.literal(span)
	if err != nil {
		return nil, span, err
	}
	val, ok := lit.(ast.Value)
	if !ok {
		return nil, span, p.newError(ExpectedToken, span, errorFields{expected: "an identifier or constant", got: describeLiteral(lit)})
	}
	return val, span, nil
}

func (p *Parser) instruction(tok token.Token) (ast.Statement, error) {
	span := tok.Span
	switch tok.Type {
	case token.END:
		return &ast.End{Loc: span}, nil
	case token.RET:
		return &ast.Ret{Loc: span}, nil
	case token.INC, token.DEC:
		return p.unary(tok)
	case token.MOV, token.ADD, token.SUB, token.MUL, token.DIV:
		return p.binary(tok)
	case token.CMP:
		return p.cmp(tok)
	case token.JMP, token.JNE, token.JE, token.JGE, token.JG, token.JLE, token.JL:
		return p.jump(tok)
	case token.CALL:
		target, span, err := p.ident(span)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Loc: span, Label: target.Name}, nil
	case token.MSG:
		return p.msg(tok)
	}
	return nil, p.newError(UnexpectedStatementStart, span, errorFields{got: tok.Describe()})
}

func (p *Parser) unary(tok token.Token) (ast.Statement, error) {
	op, ok := ast.UnaryOpFor(tok.Type)
	if !ok {
		return nil, p.newError(NotInstruction, tok.Span, errorFields{keyword: tok.Type, form: "unary"})
	}
	reg, span, err := p.ident(tok.Span)
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Loc: span, Op: op, Reg: reg}, nil
}

func (p *Parser) binary(tok token.Token) (ast.Statement, error) {
	op, ok := ast.BinaryOpFor(tok.Type)
	if !ok {
		return nil, p.newError(NotInstruction, tok.Span, errorFields{keyword: tok.Type, form: "binary"})
	}
	reg, span, err := p.ident(tok.Span)
	if err != nil {
		return nil, err
	}
	if _, span, err = p.expect(token.COMMA, span, "','"); err != nil {
		return nil, err
	}
	val, span, err := p.value(span)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Loc: span, Op: op, Reg: reg, Value: val}, nil
}

func (p *Parser) cmp(tok token.Token) (ast.Statement, error) {
	if tok.Type != token.CMP {
		return nil, p.newError(NotInstruction, tok.Span, errorFields{keyword: tok.Type, form: "compare"})
	}
	x, span, err := p.value(tok.Span)
	if err != nil {
		return nil, err
	}
	if _, span, err = p.expect(token.COMMA, span, "','"); err != nil {
		return nil, err
	}
	y, span, err := p.value(span)
	if err != nil {
		return nil, err
	}
	return &ast.Cmp{Loc: span, Left: x, Right: y}, nil
}

func (p *Parser) jump(tok token.Token) (ast.Statement, error) {
	cond, ok := ast.CondFor(tok.Type)
	if !ok {
		return nil, p.newError(NotInstruction, tok.Span, errorFields{keyword: tok.Type, form: "jump"})
	}
	// A jump names its target without the colon of a definition
	target, span, err := p.ident(tok.Span)
	if err != nil {
		return nil, err
	}
	return &ast.Jump{Loc: span, Cond: cond, Label: target.Name}, nil
}

func (p *Parser) label(tok token.Token) (ast.Statement, error) {
	_, span, err := p.expect(token.COLON, tok.Span, "':'")
	if err != nil {
		return nil, err
	}
	return &ast.Label{Loc: span, Name: tok.Literal}, nil
}

// msg parses zero or more comma separated literals. A message ends at the
// first token that is not a comma, but a comma must be followed by a literal.
func (p *Parser) msg(tok token.Token) (ast.Statement, error) {
	stmt := &ast.Msg{Loc: tok.Span}
	first, ok := p.nextLiteral()
	if !ok {
		return stmt, nil
	}
	arg, _ := literalFor(first)
	stmt.Args = append(stmt.Args, arg)
	span := token.Merge(stmt.Loc, first.Span)
	for {
		comma, ok := p.nextIf(token.COMMA)
		if !ok {
			break
		}
		arg, next, err := p.literal(token.Merge(span, comma.Span))
		if err != nil {
			return nil, err
		}
		stmt.Args = append(stmt.Args, arg)
		span = next
	}
	stmt.Loc = span
	return stmt, nil
}

func literalFor(tok token.Token) (ast.Literal, bool) {
	switch tok.Type {
	case token.IDENT:
		return &ast.Register{Loc: tok.Span, Name: tok.Literal}, true
	case token.INT:
		// The lexer has already range checked the constant
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, false
		}
		return &ast.Const{Loc: tok.Span, Value: v, Raw: tok.Literal}, true
	case token.STRING:
		return &ast.Text{Loc: tok.Span, Value: tok.Literal[1 : len(tok.Literal)-1]}, true
	}
	return nil, false
}

func describeLiteral(lit ast.Literal) string {
	switch lit := lit.(type) {
	case *ast.Const:
		return "constant " + lit.String()
	case *ast.Text:
		return "text " + lit.String()
	}
	return "identifier " + lit.String()
}

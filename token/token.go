// Package token defines the tokens and source spans produced when lexing
// assembly source code.
package token

// Type describes the type of a token as a string.
type Type string

// Token represents one token lexed from the input source code.
type Token struct {
	Type    Type
	Literal string // raw lexeme, including quotes for STRING tokens
	Span    Span
}

// Token types
const (
	COLON  Type = ":"
	COMMA  Type = ","
	EOF    Type = "EOF"
	IDENT  Type = "IDENT"
	INT    Type = "INT"
	STRING Type = "STRING"

	MOV  Type = "mov"
	INC  Type = "inc"
	DEC  Type = "dec"
	ADD  Type = "add"
	SUB  Type = "sub"
	MUL  Type = "mul"
	DIV  Type = "div"
	JMP  Type = "jmp"
	CMP  Type = "cmp"
	JNE  Type = "jne"
	JE   Type = "je"
	JGE  Type = "jge"
	JG   Type = "jg"
	JLE  Type = "jle"
	JL   Type = "jl"
	CALL Type = "call"
	RET  Type = "ret"
	MSG  Type = "msg"
	END  Type = "end"
)

// Instruction mnemonics. Matching is case-sensitive.
var keywords = map[string]Type{
	"mov":  MOV,
	"inc":  INC,
	"dec":  DEC,
	"add":  ADD,
	"sub":  SUB,
	"mul":  MUL,
	"div":  DIV,
	"jmp":  JMP,
	"cmp":  CMP,
	"jne":  JNE,
	"je":   JE,
	"jge":  JGE,
	"jg":   JG,
	"jle":  JLE,
	"jl":   JL,
	"call": CALL,
	"ret":  RET,
	"msg":  MSG,
	"end":  END,
}

// LookupIdentifier returns the keyword type for a mnemonic, or IDENT for any
// other identifier.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is one of the instruction mnemonics.
func (t Type) IsKeyword() bool {
	_, ok := keywords[string(t)]
	return ok
}

// IsLiteral reports whether t is an identifier, quoted text or integer.
func (t Type) IsLiteral() bool {
	return t == IDENT || t == STRING || t == INT
}

// Describe returns a short description of the token suitable for messages.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of file"
	case IDENT:
		return "identifier " + t.Literal
	case INT:
		return "constant " + t.Literal
	case STRING:
		return "text " + t.Literal
	case COMMA, COLON:
		return "'" + t.Literal + "'"
	default:
		return "keyword " + t.Literal
	}
}

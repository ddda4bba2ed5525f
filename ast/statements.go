package ast

import (
	"strings"

	"github.com/risor-io/regasm/token"
)

// Label defines a jump target: "name:".
type Label struct {
	Loc  token.Span
	Name string
}

func (s *Label) stmtNode() {}

func (s *Label) Span() token.Span { return s.Loc }
func (s *Label) String() string   { return s.Name + ":" }

// UnaryOp is an operation on a single register.
type UnaryOp string

const (
	Inc UnaryOp = "inc"
	Dec UnaryOp = "dec"
)

// UnaryOpFor returns the unary operation named by a keyword.
func UnaryOpFor(t token.Type) (UnaryOp, bool) {
	switch t {
	case token.INC:
		return Inc, true
	case token.DEC:
		return Dec, true
	}
	return "", false
}

// Unary increments or decrements a register.
type Unary struct {
	Loc token.Span
	Op  UnaryOp
	Reg *Register
}

func (s *Unary) stmtNode()  {}
func (s *Unary) instrNode() {}

func (s *Unary) Span() token.Span { return s.Loc }
func (s *Unary) String() string   { return string(s.Op) + " " + s.Reg.String() }

// BinaryOp is an operation storing its result in a register.
type BinaryOp string

const (
	Mov BinaryOp = "mov"
	Add BinaryOp = "add"
	Sub BinaryOp = "sub"
	Mul BinaryOp = "mul"
	Div BinaryOp = "div"
)

// BinaryOpFor returns the binary operation named by a keyword.
func BinaryOpFor(t token.Type) (BinaryOp, bool) {
	switch t {
	case token.MOV:
		return Mov, true
	case token.ADD:
		return Add, true
	case token.SUB:
		return Sub, true
	case token.MUL:
		return Mul, true
	case token.DIV:
		return Div, true
	}
	return "", false
}

// Binary applies Op to the register and a value: "mov a, 5".
type Binary struct {
	Loc   token.Span
	Op    BinaryOp
	Reg   *Register
	Value Value
}

func (s *Binary) stmtNode()  {}
func (s *Binary) instrNode() {}

func (s *Binary) Span() token.Span { return s.Loc }

func (s *Binary) String() string {
	return string(s.Op) + " " + s.Reg.String() + ", " + s.Value.String()
}

// Cmp records two values for the next conditional jump.
type Cmp struct {
	Loc   token.Span
	Left  Value
	Right Value
}

func (s *Cmp) stmtNode()  {}
func (s *Cmp) instrNode() {}

func (s *Cmp) Span() token.Span { return s.Loc }

func (s *Cmp) String() string {
	return "cmp " + s.Left.String() + ", " + s.Right.String()
}

// Cond is the condition of a jump. The zero value is an unconditional jump.
type Cond string

const (
	Always Cond = ""
	Eq     Cond = "eq"
	Ne     Cond = "ne"
	Ge     Cond = "ge"
	Gt     Cond = "gt"
	Le     Cond = "le"
	Lt     Cond = "lt"
)

var condMnemonics = map[Cond]token.Type{
	Always: token.JMP,
	Eq:     token.JE,
	Ne:     token.JNE,
	Ge:     token.JGE,
	Gt:     token.JG,
	Le:     token.JLE,
	Lt:     token.JL,
}

// CondFor returns the condition of a jump keyword.
func CondFor(t token.Type) (Cond, bool) {
	for cond, mnemonic := range condMnemonics {
		if mnemonic == t {
			return cond, true
		}
	}
	return "", false
}

// Mnemonic returns the jump keyword testing the condition.
func (c Cond) Mnemonic() token.Type {
	return condMnemonics[c]
}

// Holds reports whether the condition is true for a comparison of x with y.
func (c Cond) Holds(x, y int64) bool {
	switch c {
	case Eq:
		return x == y
	case Ne:
		return x != y
	case Ge:
		return x >= y
	case Gt:
		return x > y
	case Le:
		return x <= y
	case Lt:
		return x < y
	}
	return true
}

// Jump transfers control to a label, unconditionally or depending on the
// pending comparison.
type Jump struct {
	Loc   token.Span
	Cond  Cond
	Label string
}

func (s *Jump) stmtNode()  {}
func (s *Jump) instrNode() {}

func (s *Jump) Span() token.Span { return s.Loc }

func (s *Jump) String() string { return string(s.Cond.Mnemonic()) + " " + s.Label }

// Call pushes the return address and jumps to a label.
type Call struct {
	Loc   token.Span
	Label string
}

func (s *Call) stmtNode()  {}
func (s *Call) instrNode() {}

func (s *Call) Span() token.Span { return s.Loc }
func (s *Call) String() string   { return "call " + s.Label }

// Ret returns to the address on top of the call stack.
type Ret struct {
	Loc token.Span
}

func (s *Ret) stmtNode()  {}
func (s *Ret) instrNode() {}

func (s *Ret) Span() token.Span { return s.Loc }
func (s *Ret) String() string   { return "ret" }

// Msg appends its arguments to the program output.
type Msg struct {
	Loc  token.Span
	Args []Literal
}

func (s *Msg) stmtNode()  {}
func (s *Msg) instrNode() {}

func (s *Msg) Span() token.Span { return s.Loc }

func (s *Msg) String() string {
	if len(s.Args) == 0 {
		return "msg"
	}
	args := make([]string, 0, len(s.Args))
	for _, arg := range s.Args {
		args = append(args, arg.String())
	}
	return "msg " + strings.Join(args, ", ")
}

// End stops the program successfully.
type End struct {
	Loc token.Span
}

func (s *End) stmtNode()  {}
func (s *End) instrNode() {}

func (s *End) Span() token.Span { return s.Loc }
func (s *End) String() string   { return "end" }

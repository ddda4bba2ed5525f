package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Lex and parse errors
//   - E2xxx: Program build errors
//   - E3xxx: Runtime errors
type ErrorCode string

const (
	// Lex and parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Unexpected character sequence
	E1004 ErrorCode = "E1004" // Missing token
	E1005 ErrorCode = "E1005" // Keyword does not fit the instruction form
	E1006 ErrorCode = "E1006" // Unexpected start of statement
	E1008 ErrorCode = "E1008" // Invalid number literal

	// Program build errors (E2xxx)
	E2001 ErrorCode = "E2001" // Duplicate label

	// Runtime errors (E3xxx)
	E3001 ErrorCode = "E3001" // Unknown label
	E3002 ErrorCode = "E3002" // Division by zero
	E3003 ErrorCode = "E3003" // Return with empty call stack
	E3004 ErrorCode = "E3004" // Conditional jump without comparison
	E3005 ErrorCode = "E3005" // Program ended prematurely
	E3006 ErrorCode = "E3006" // Call depth exceeded
	E3007 ErrorCode = "E3007" // Execution halted
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "unexpected character sequence",
	E1004: "missing token",
	E1005: "keyword does not fit the instruction form",
	E1006: "unexpected start of statement",
	E1008: "invalid number literal",

	E2001: "duplicate label",

	E3001: "unknown label",
	E3002: "division by zero",
	E3003: "return with empty call stack",
	E3004: "conditional jump without comparison",
	E3005: "program ended prematurely",
	E3006: "call depth exceeded",
	E3007: "execution halted",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "syntax"
	case '2':
		return "program"
	case '3':
		return "runtime"
	default:
		return "unknown"
	}
}

package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {
		if LookupIdentifier(key) != val {
			t.Errorf("Lookup of %s failed", key)
		}
		// Mnemonics are case-sensitive, so uppercase forms are identifiers.
		if LookupIdentifier(strings.ToUpper(key)) != IDENT {
			t.Errorf("Lookup of %s failed", key)
		}
	}
	assert.Len(t, keywords, 19)
}

func TestTypeClasses(t *testing.T) {
	assert.True(t, JLE.IsKeyword())
	assert.False(t, IDENT.IsKeyword())
	assert.False(t, COMMA.IsKeyword())

	assert.True(t, IDENT.IsLiteral())
	assert.True(t, STRING.IsLiteral())
	assert.True(t, INT.IsLiteral())
	assert.False(t, MSG.IsLiteral())
	assert.False(t, COLON.IsLiteral())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "end of file", Token{Type: EOF}.Describe())
	assert.Equal(t, "identifier foo", Token{Type: IDENT, Literal: "foo"}.Describe())
	assert.Equal(t, "constant -3", Token{Type: INT, Literal: "-3"}.Describe())
	assert.Equal(t, "text 'hi'", Token{Type: STRING, Literal: "'hi'"}.Describe())
	assert.Equal(t, "','", Token{Type: COMMA, Literal: ","}.Describe())
	assert.Equal(t, "keyword inc", Token{Type: INC, Literal: "inc"}.Describe())
}

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKeyword(t *testing.T) {
	for word := range keywords {
		assert.True(t, IsKeyword(word), "expected %q to be a keyword", word)
	}
	assert.False(t, IsKeyword("foo"))
	assert.False(t, IsKeyword(""))
}

func TestTokenIs(t *testing.T) {
	tok := Token{Type: PUNCTUATOR, Literal: "("}
	assert.True(t, tok.Is("("))
	assert.False(t, tok.Is(")"))

	kw := Token{Type: KEYWORD, Literal: "return"}
	assert.True(t, kw.Is("return"))

	ident := Token{Type: IDENT, Literal: "return"}
	assert.False(t, ident.Is("return"), "an IDENT token never matches Is, even when its literal shadows a keyword")
}

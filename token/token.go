// Package token contains the tokens that the lexer will produce when
// scanning a translation unit: identifiers, keywords, punctuators, numeric
// literals, and string literals, each carrying enough source position to
// drive diagnostics.
package token

// Type is a string
type Type string

// Token struct represent the lexer token
type Token struct {
	// Type is the token's lexical category.
	Type Type

	// Literal is the raw lexeme as it appeared in the source.
	Literal string

	// Num holds the decoded value for NUMBER tokens.
	Num int

	// Str holds the decoded byte value for STRING tokens, escapes
	// already resolved. Unused for every other token type.
	Str []byte

	// Offset is the byte offset of the token's first character.
	Offset int

	// Line is the 1-based source line the token starts on.
	Line int
}

// pre-defined Type
const (
	EOF        = "EOF"
	IDENT      = "IDENT"
	NUMBER     = "NUMBER"
	STRING     = "STRING"
	KEYWORD    = "KEYWORD"
	PUNCTUATOR = "PUNCTUATOR"
)

// reserved keywords
var keywords = map[string]bool{
	"return": true,
	"if":     true,
	"else":   true,
	"while":  true,
	"for":    true,
	"int":    true,
	"char":   true,
	"sizeof": true,
	"struct": true,
}

// IsKeyword reports whether literal names a reserved word; the lexer
// reclassifies any IDENT token whose literal matches to KEYWORD.
func IsKeyword(literal string) bool {
	return keywords[literal]
}

// Is reports whether the token is a punctuator or keyword with the given
// literal lexeme - the common-case check used throughout the parser
// ("is the next token a ')'?").
func (t Token) Is(literal string) bool {
	return (t.Type == PUNCTUATOR || t.Type == KEYWORD) && t.Literal == literal
}

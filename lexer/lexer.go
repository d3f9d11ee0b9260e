// Package lexer turns a translation unit's source text into a sequence of
// token.Token values: identifiers, keywords, punctuators, numeric literals,
// and string literals, each tagged with its byte offset and source line.
package lexer

import (
	"github.com/skx/qcc/qccerr"
	"github.com/skx/qcc/token"
)

// Lexer holds our object-state. Mirrors the teacher's readPosition/ch
// two-character lookahead discipline, extended with line tracking and a
// reference to the full source for diagnostics.
type Lexer struct {
	position     int    // current character position
	readPosition int    // next character position
	ch           byte   // current character
	input        string // full source text, kept for error rendering
	characters   []byte // byte slice of input
	line         int    // current 1-based source line
}

// single-character punctuators recognized by the lexer.
const singleCharPunct = "+-*/();><=!{},[].&"

// two-character punctuators, recognized by one-character lookahead.
var twoCharPunct = map[string]bool{
	"==": true,
	"!=": true,
	"<=": true,
	">=": true,
}

// New builds a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{characters: []byte(input), input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.characters) {
		l.ch = 0
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.characters) {
		return 0
	}
	return l.characters[l.readPosition]
}

// Tokenize runs the lexer to completion, returning every token in source
// order terminated by a single Eof token. Offsets are strictly
// non-decreasing across the returned sequence.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	convertKeywords(tokens)
	return tokens, nil
}

func convertKeywords(tokens []token.Token) {
	for i := range tokens {
		if tokens[i].Type == token.IDENT && token.IsKeyword(tokens[i].Literal) {
			tokens[i].Type = token.KEYWORD
		}
	}
}

// NextToken scans and returns the next token, skipping whitespace and
// comments first.
func (l *Lexer) NextToken() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	offset := l.position
	line := l.line

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Offset: offset, Line: line}, nil
	}

	if isIdentStart(l.ch) {
		return l.readIdentifier(offset, line), nil
	}

	if isDigit(l.ch) {
		return l.readNumber(offset, line)
	}

	if l.ch == '"' {
		return l.readString(offset, line)
	}

	if isPunctStart(l.ch) {
		return l.readPunctuator(offset, line), nil
	}

	return token.Token{}, l.errorAt(offset, line, "invalid token")
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch {
		case l.ch == '\n':
			l.line++
			l.readChar()
		case isWhitespace(l.ch):
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			startLine := l.line
			l.readChar()
			l.readChar()
			closed := false
			for l.ch != 0 {
				if l.ch == '\n' {
					l.line++
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					closed = true
					break
				}
				l.readChar()
			}
			if !closed {
				return l.errorAt(l.position, startLine, "unterminated block comment")
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) readIdentifier(offset, line int) token.Token {
	start := l.position
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	return token.Token{Type: token.IDENT, Literal: lit, Offset: offset, Line: line}
}

func (l *Lexer) readNumber(offset, line int) (token.Token, error) {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]

	var val int
	for _, c := range []byte(lit) {
		val = val*10 + int(c-'0')
		if val > 0xFFFF {
			return token.Token{}, l.errorAt(offset, line, "numeric literal overflow: %s", lit)
		}
	}
	return token.Token{Type: token.NUMBER, Literal: lit, Num: val, Offset: offset, Line: line}, nil
}

func (l *Lexer) readPunctuator(offset, line int) token.Token {
	first := l.ch
	l.readChar()
	two := string(first) + string(l.ch)
	if twoCharPunct[two] {
		l.readChar()
		return token.Token{Type: token.PUNCTUATOR, Literal: two, Offset: offset, Line: line}
	}
	return token.Token{Type: token.PUNCTUATOR, Literal: string(first), Offset: offset, Line: line}
}

// readString scans a double-quoted string literal, decoding escapes, and
// returns a STRING token carrying both the raw lexeme and the decoded
// bytes. An unescaped newline or embedded NUL is a fatal error, as is a
// missing closing quote.
func (l *Lexer) readString(offset, line int) (token.Token, error) {
	start := l.position
	l.readChar() // skip opening quote

	var decoded []byte
	for {
		switch l.ch {
		case 0:
			return token.Token{}, l.errorAt(l.position, l.line, "unterminated string literal")
		case '\n':
			return l.errorResult(offset, "newline inside string literal")
		case '"':
			l.readChar()
			lit := l.input[start:l.position]
			return token.Token{
				Type:    token.STRING,
				Literal: lit,
				Str:     decoded,
				Offset:  offset,
				Line:    line,
			}, nil
		case '\\':
			l.readChar()
			b, ok, err := l.readEscape()
			if err != nil {
				return token.Token{}, err
			}
			if ok {
				decoded = append(decoded, b)
			}
		default:
			decoded = append(decoded, l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) errorResult(offset int, msg string) (token.Token, error) {
	return token.Token{}, l.errorAt(offset, l.line, "%s", msg)
}

// readEscape decodes a single escape sequence following a consumed
// backslash, leaving l.ch positioned just past it. ok is false only when
// the escape decodes to nothing representable as a byte (never the case
// here; kept for symmetry with the other decode helpers).
func (l *Lexer) readEscape() (byte, bool, error) {
	switch l.ch {
	case 0:
		return 0, false, l.errorAt(l.position, l.line, "unterminated string literal")
	case '\n':
		return 0, false, l.errorAt(l.position, l.line, "newline inside string literal")
	case 'a':
		l.readChar()
		return 7, true, nil
	case 'b':
		l.readChar()
		return 8, true, nil
	case 't':
		l.readChar()
		return 9, true, nil
	case 'n':
		l.readChar()
		return 10, true, nil
	case 'v':
		l.readChar()
		return 11, true, nil
	case 'f':
		l.readChar()
		return 12, true, nil
	case 'r':
		l.readChar()
		return 13, true, nil
	case 'e':
		l.readChar()
		return 27, true, nil
	case 'x':
		l.readChar()
		var val int
		for isHexDigit(l.ch) {
			val = val*16 + hexVal(l.ch)
			val &= 0xFF // overflow silently truncates to one byte
			l.readChar()
		}
		return byte(val), true, nil
	case '0', '1', '2', '3', '4', '5', '6', '7':
		var val int
		for i := 0; i < 3 && l.ch >= '0' && l.ch <= '7'; i++ {
			val = val*8 + int(l.ch-'0')
			l.readChar()
		}
		return byte(val), true, nil
	default:
		// any other escape yields that literal character
		ch := l.ch
		l.readChar()
		return ch, true, nil
	}
}

func (l *Lexer) errorAt(offset, line int, format string, args ...any) error {
	lineStart := 0
	for i := 0; i < offset && i < len(l.input); i++ {
		if l.input[i] == '\n' {
			lineStart = i + 1
		}
	}
	column := offset - lineStart + 1
	return qccerr.New(qccerr.Lexical, l.input, offset, line, column, format, args...)
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isPunctStart(ch byte) bool {
	for i := 0; i < len(singleCharPunct); i++ {
		if singleCharPunct[i] == ch {
			return true
		}
	}
	return false
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexVal(ch byte) int {
	switch {
	case isDigit(ch):
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	default:
		return int(ch-'A') + 10
	}
}

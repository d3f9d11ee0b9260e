package parser

import "github.com/skx/qcc/token"

// cur returns the token at the current position without consuming it.
// Tokens[index] is always valid; the final token is Eof.
func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

// peekIs reports whether the token n positions ahead matches literal,
// clamping to the final (Eof) token if it would run off the end.
func (p *Parser) peekIs(n int, literal string) bool {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx].Is(literal)
}

// advance returns the current token and moves past it.
func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if t.Type != token.EOF {
		p.pos++
	}
	return t
}

// consume advances past the current token and returns true if it matches
// literal; otherwise it leaves the position unchanged and returns false.
func (p *Parser) consume(literal string) bool {
	if p.cur().Is(literal) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token, raising a syntax error if it doesn't
// match literal.
func (p *Parser) expect(literal string) token.Token {
	if !p.cur().Is(literal) {
		p.fatalf(p.cur(), "expected '%s', actual '%s'", literal, p.cur().Literal)
	}
	return p.advance()
}

// expectIdent consumes and returns the current token, requiring it be an
// identifier.
func (p *Parser) expectIdent() token.Token {
	if p.cur().Type != token.IDENT {
		p.fatalf(p.cur(), "expected identifier, actual '%s'", p.cur().Literal)
	}
	return p.advance()
}

// fatalf raises a syntactic CompileError pointing at tok and aborts
// compilation; there is no recovery; it's caught only by
// recoverCompileErrors at the top of Parse.
func (p *Parser) fatalf(tok token.Token, format string, args ...any) {
	panic(newSyntaxError(p.source, tok, format, args...))
}

// semanticf raises a semantic CompileError pointing at tok.
func (p *Parser) semanticf(tok token.Token, format string, args ...any) {
	panic(newSemanticError(p.source, tok, format, args...))
}

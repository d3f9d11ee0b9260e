package parser

import (
	"github.com/skx/qcc/token"
	"github.com/skx/qcc/types"
)

// declspec parses the base type of a declaration:
//
//	declspec = "int" | "char" | "struct" struct-decl
func (p *Parser) declspec() *types.Type {
	switch {
	case p.consume("int"):
		return types.Int()
	case p.consume("char"):
		return types.Char()
	case p.consume("struct"):
		return p.structDecl()
	default:
		p.fatalf(p.cur(), "expected a type, actual '%s'", p.cur().Literal)
		return nil
	}
}

// structDecl parses an optional tag identifier followed by either a
// braced struct body (defining, and optionally naming, a STRUCT type
// with frozen, no-padding member offsets) or nothing at all (a bare
// reference to a previously defined tag):
//
//	struct-decl = ident? ("{" (declspec declarator ("," declarator)* ";")* "}")?
//
// "struct P { ... }" defines the tag P; a later "struct P p" resolves it
// through the same tag table. Tags are spec-silent but required by
// spec.md's own §8 example programs (e.g. "struct P { int x; int y; };
// ... struct P p;"), so this follows ordinary C tag-namespace convention.
func (p *Parser) structDecl() *types.Type {
	var tagTok *token.Token
	if p.cur().Type == token.IDENT {
		t := p.advance()
		tagTok = &t
	}

	if !p.cur().Is("{") {
		if tagTok == nil {
			p.fatalf(p.cur(), "expected a struct body or tag, actual '%s'", p.cur().Literal)
		}
		ty, ok := p.tags[tagTok.Literal]
		if !ok {
			p.fatalf(*tagTok, "undefined struct tag: '%s'", tagTok.Literal)
		}
		return ty
	}

	p.expect("{")

	var members []*types.Member
	for !p.cur().Is("}") {
		base := p.declspec()
		for {
			name, ty := p.declarator(base)
			members = append(members, &types.Member{Name: name, Type: ty})
			if p.consume(",") {
				continue
			}
			break
		}
		p.expect(";")
	}
	p.expect("}")

	ty := types.Struct(members)
	if tagTok != nil {
		p.tags[tagTok.Literal] = ty
	}
	return ty
}

// declarator parses pointer prefixes, a declarator identifier, and any
// trailing function or array suffix, returning the declared name and its
// fully derived type:
//
//	declarator  = "*"* ident type-suffix
//	type-suffix = "(" func-params ")" | "[" number "]" type-suffix | ε
func (p *Parser) declarator(base *types.Type) (string, *types.Type) {
	ty := base
	for p.consume("*") {
		ty = types.PointerTo(ty)
	}

	nameTok := p.expectIdent()
	ty = p.typeSuffix(ty)
	return nameTok.Literal, ty.WithName(&nameTok)
}

func (p *Parser) typeSuffix(base *types.Type) *types.Type {
	if p.consume("(") {
		return p.funcParams(base)
	}
	if p.consume("[") {
		lenTok := p.expectNumber()
		p.expect("]")
		elem := p.typeSuffix(base)
		return types.ArrayOf(elem, lenTok.Num)
	}
	return base
}

// funcParams parses the parameter list of a function declarator, assuming
// the opening "(" was already consumed, and returns a FUNC type over base
// as the return type.
func (p *Parser) funcParams(returnType *types.Type) *types.Type {
	var params []*types.Type
	for !p.cur().Is(")") {
		if len(params) > 0 {
			p.expect(",")
		}
		base := p.declspec()
		_, ty := p.declarator(base)
		params = append(params, ty)
	}
	p.expect(")")
	return types.Func(params, returnType)
}

func (p *Parser) expectNumber() token.Token {
	if p.cur().Type != token.NUMBER {
		p.fatalf(p.cur(), "expected a number, actual '%s'", p.cur().Literal)
	}
	return p.advance()
}

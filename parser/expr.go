package parser

import (
	"github.com/skx/qcc/ast"
	"github.com/skx/qcc/token"
	"github.com/skx/qcc/types"
)

// expr = assign ("," assign)*
func (p *Parser) expr() *ast.Node {
	n := p.assign()
	for p.cur().Is(",") {
		tok := p.advance()
		n = &ast.Node{Kind: ast.Comma, LHS: n, RHS: p.assign(), Tok: tok}
	}
	return n
}

// assign = equality ("=" assign)?
func (p *Parser) assign() *ast.Node {
	n := p.equality()
	if p.cur().Is("=") {
		tok := p.advance()
		n = &ast.Node{Kind: ast.Assign, LHS: n, RHS: p.assign(), Tok: tok}
	}
	return n
}

// equality = relational (("==" | "!=") relational)*
func (p *Parser) equality() *ast.Node {
	n := p.relational()
	for {
		switch {
		case p.cur().Is("=="):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Eq, LHS: n, RHS: p.relational(), Tok: tok}
		case p.cur().Is("!="):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Ne, LHS: n, RHS: p.relational(), Tok: tok}
		default:
			return n
		}
	}
}

// relational = add (("<"|"<="|">"|">=") add)*
//
// ">" and ">=" swap operands to reuse Lt/Le: after swapping, the
// resulting node's left subtree is the right-hand operand as written.
// This subset has no side-effecting operands, so the swap is
// semantically transparent.
func (p *Parser) relational() *ast.Node {
	n := p.add()
	for {
		switch {
		case p.cur().Is("<"):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Lt, LHS: n, RHS: p.add(), Tok: tok}
		case p.cur().Is("<="):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Le, LHS: n, RHS: p.add(), Tok: tok}
		case p.cur().Is(">"):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Lt, LHS: p.add(), RHS: n, Tok: tok}
		case p.cur().Is(">="):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Le, LHS: p.add(), RHS: n, Tok: tok}
		default:
			return n
		}
	}
}

// add = mul (("+"|"-") mul)*
func (p *Parser) add() *ast.Node {
	n := p.mul()
	for {
		switch {
		case p.cur().Is("+"):
			tok := p.advance()
			n = p.newAdd(n, p.mul(), tok)
		case p.cur().Is("-"):
			tok := p.advance()
			n = p.newSub(n, p.mul(), tok)
		default:
			return n
		}
	}
}

// newAdd implements pointer-arithmetic scaling for "+": int+int passes
// through unchanged; a pointer/array operand forces the other operand
// (which must be integer) to be scaled by the pointee's size, with
// operands swapped so the pointer ends up on the left; ptr+ptr is an
// error.
func (p *Parser) newAdd(lhs, rhs *ast.Node, tok token.Token) *ast.Node {
	p.addType(lhs)
	p.addType(rhs)

	if lhs.Ty.IsInteger() && rhs.Ty.IsInteger() {
		return &ast.Node{Kind: ast.Add, LHS: lhs, RHS: rhs, Tok: tok}
	}
	if lhs.Ty.IsPointerLike() && rhs.Ty.IsPointerLike() {
		p.semanticf(tok, "invalid operands to '+': pointer + pointer")
	}
	if lhs.Ty.IsInteger() && rhs.Ty.IsPointerLike() {
		lhs, rhs = rhs, lhs
	}
	scale := &ast.Node{Kind: ast.Num, Num: lhs.Ty.BaseType().Size(), Ty: types.Int(), Tok: tok}
	scaled := &ast.Node{Kind: ast.Mul, LHS: rhs, RHS: scale, Ty: types.Int(), Tok: tok}
	return &ast.Node{Kind: ast.Add, LHS: lhs, RHS: scaled, Tok: tok}
}

// newSub mirrors newAdd for "-", plus the pointer-difference case: p - q
// for two pointers/arrays becomes Div(Sub(p,q), sizeof(*p)) with result
// type forced to Int, overriding the generic "Div inherits lhs type"
// inference rule for this synthesized node specifically.
func (p *Parser) newSub(lhs, rhs *ast.Node, tok token.Token) *ast.Node {
	p.addType(lhs)
	p.addType(rhs)

	switch {
	case lhs.Ty.IsInteger() && rhs.Ty.IsInteger():
		return &ast.Node{Kind: ast.Sub, LHS: lhs, RHS: rhs, Tok: tok}

	case lhs.Ty.IsPointerLike() && rhs.Ty.IsInteger():
		scale := &ast.Node{Kind: ast.Num, Num: lhs.Ty.BaseType().Size(), Ty: types.Int(), Tok: tok}
		scaled := &ast.Node{Kind: ast.Mul, LHS: rhs, RHS: scale, Ty: types.Int(), Tok: tok}
		return &ast.Node{Kind: ast.Sub, LHS: lhs, RHS: scaled, Tok: tok}

	case lhs.Ty.IsPointerLike() && rhs.Ty.IsPointerLike():
		diff := &ast.Node{Kind: ast.Sub, LHS: lhs, RHS: rhs, Ty: lhs.Ty, Tok: tok}
		size := &ast.Node{Kind: ast.Num, Num: lhs.Ty.BaseType().Size(), Ty: types.Int(), Tok: tok}
		return &ast.Node{Kind: ast.Div, LHS: diff, RHS: size, Ty: types.Int(), Tok: tok}

	default:
		p.semanticf(tok, "invalid operands to '-'")
		return nil
	}
}

// mul = unary (("*"|"/") unary)*
func (p *Parser) mul() *ast.Node {
	n := p.unary()
	for {
		switch {
		case p.cur().Is("*"):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Mul, LHS: n, RHS: p.unary(), Tok: tok}
		case p.cur().Is("/"):
			tok := p.advance()
			n = &ast.Node{Kind: ast.Div, LHS: n, RHS: p.unary(), Tok: tok}
		default:
			return n
		}
	}
}

// unary = ("+"|"-"|"*"|"&") unary | postfix
//
// Unary "+" is a no-op over unary, not primary, so "++x" parses as
// "+(+x)" - intentional, not a pre-increment operator.
func (p *Parser) unary() *ast.Node {
	switch {
	case p.cur().Is("+"):
		p.advance()
		return p.unary()
	case p.cur().Is("-"):
		tok := p.advance()
		zero := &ast.Node{Kind: ast.Num, Num: 0, Ty: types.Int(), Tok: tok}
		return p.newSub(zero, p.unary(), tok)
	case p.cur().Is("*"):
		tok := p.advance()
		return &ast.Node{Kind: ast.Deref, LHS: p.unary(), Tok: tok}
	case p.cur().Is("&"):
		tok := p.advance()
		return &ast.Node{Kind: ast.Addr, LHS: p.unary(), Tok: tok}
	default:
		return p.postfix()
	}
}

// postfix = primary ( "[" expr "]" | "." ident )*
//
// a[i] lowers to *(a + i) using the pointer-aware "+". The array-to-pointer
// decay of "&a" on an Array is applied separately, by addType's Addr rule.
func (p *Parser) postfix() *ast.Node {
	n := p.primary()
	for {
		switch {
		case p.cur().Is("["):
			tok := p.advance()
			idx := p.expr()
			p.expect("]")
			n = &ast.Node{Kind: ast.Deref, LHS: p.newAdd(n, idx, tok), Tok: tok}
		case p.cur().Is("."):
			tok := p.advance()
			nameTok := p.expectIdent()
			n = &ast.Node{Kind: ast.Member, LHS: n, MemberName: nameTok.Literal, Tok: tok}
		default:
			return n
		}
	}
}

// primary = "(" "{" compound-stmt ")"
//
//	| "(" expr ")"
//	| "sizeof" unary
//	| ident ("(" args? ")")?
//	| string-literal
//	| number
func (p *Parser) primary() *ast.Node {
	tok := p.cur()

	if tok.Is("(") && p.peekIs(1, "{") {
		p.advance()
		p.advance()
		block := p.compoundStmt()
		p.expect(")")
		return &ast.Node{Kind: ast.StmtExpr, Body: block.Body, Tok: tok}
	}

	if tok.Is("(") {
		p.advance()
		n := p.expr()
		p.expect(")")
		return n
	}

	if tok.Is("sizeof") {
		p.advance()
		operand := p.unary()
		p.addType(operand)
		return &ast.Node{Kind: ast.Num, Num: operand.Ty.Size(), Ty: types.Int(), Tok: tok}
	}

	if tok.Type == token.IDENT {
		p.advance()
		if p.cur().Is("(") {
			return p.funcCall(tok)
		}
		v := p.findVar(tok.Literal)
		if v == nil {
			p.semanticf(tok, "undefined identifier: '%s'", tok.Literal)
		}
		return &ast.Node{Kind: ast.VarNode, Var: v, Tok: tok}
	}

	if tok.Type == token.STRING {
		p.advance()
		v := p.newStringLiteral(tok.Str)
		return &ast.Node{Kind: ast.VarNode, Var: v, Tok: tok}
	}

	if tok.Type == token.NUMBER {
		p.advance()
		return &ast.Node{Kind: ast.Num, Num: tok.Num, Ty: types.Int(), Tok: tok}
	}

	p.fatalf(tok, "expected an expression, actual '%s'", tok.Literal)
	return nil
}

// funcCall parses the "(" args? ")" suffix of a call, assuming the
// callee's identifier token has already been consumed.
func (p *Parser) funcCall(nameTok token.Token) *ast.Node {
	p.expect("(")
	var args []*ast.Node
	for !p.cur().Is(")") {
		if len(args) > 0 {
			p.expect(",")
		}
		args = append(args, p.assign())
	}
	p.expect(")")
	return &ast.Node{Kind: ast.FuncCall, FuncName: nameTok.Literal, Args: args, Tok: nameTok}
}

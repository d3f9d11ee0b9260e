package parser

import (
	"github.com/skx/qcc/ast"
	"github.com/skx/qcc/token"
)

// compoundStmt parses the body of a block, assuming the opening "{" has
// already been consumed, pushing a fresh scope on entry and popping it on
// exit. Each declaration or statement parsed is immediately type-annotated
// before the next one is read, matching the bottom-up type walk's
// idempotent, incremental application.
//
//	compound = (declaration | stmt)* "}"
func (p *Parser) compoundStmt() *ast.Node {
	p.scope.Push()
	defer p.scope.Pop()

	tok := p.cur()
	var body []*ast.Node
	for !p.cur().Is("}") {
		var nodes []*ast.Node
		if isDeclspecStart(p.cur()) {
			nodes = p.declaration()
		} else {
			nodes = []*ast.Node{p.stmt()}
		}
		for _, n := range nodes {
			p.addType(n)
			body = append(body, n)
		}
	}
	p.expect("}")
	return &ast.Node{Kind: ast.Block, Body: body, Tok: tok}
}

func isDeclspecStart(t token.Token) bool {
	return t.Is("int") || t.Is("char") || t.Is("struct")
}

// declaration parses a local declaration, possibly declaring several
// comma-separated names against one base type, and returns zero or more
// statement nodes (one ExprStmt per initializer; bare declarations with no
// "= assign" produce no node, they just register the local).
//
//	declaration = declspec (declarator ("=" assign)?)("," …)* ";"
func (p *Parser) declaration() []*ast.Node {
	base := p.declspec()

	var nodes []*ast.Node
	if p.consume(";") {
		// Bare struct-tag declaration ("struct Tag { ... };"); no
		// variable to bind.
		return nodes
	}

	first := true
	for !p.cur().Is(";") {
		if !first {
			p.expect(",")
		}
		first = false

		nameTok := p.peekDeclaratorName()
		name, ty := p.declarator(base)
		v := p.newLocal(name, ty)

		if p.consume("=") {
			init := p.assign()
			lhs := &ast.Node{Kind: ast.VarNode, Var: v, Tok: nameTok}
			assign := &ast.Node{Kind: ast.Assign, LHS: lhs, RHS: init, Tok: nameTok}
			nodes = append(nodes, &ast.Node{Kind: ast.ExprStmt, LHS: assign, Tok: nameTok})
		}
	}
	p.expect(";")
	return nodes
}

// peekDeclaratorName looks ahead to the identifier a declarator will bind,
// without consuming anything, so the initializer's diagnostic position can
// point at the variable name rather than at whatever follows it.
func (p *Parser) peekDeclaratorName() token.Token {
	save := p.pos
	for p.cur().Is("*") {
		p.advance()
	}
	name := p.cur()
	p.pos = save
	return name
}

// stmt parses a single statement:
//
//	stmt = "return" expr ";"
//	     | "if" "(" expr ")" stmt ("else" stmt)?
//	     | "while" "(" expr ")" stmt
//	     | "for" "(" expr-stmt expr? ";" expr? ")" stmt
//	     | "{" compound-stmt
//	     | expr-stmt ";"
func (p *Parser) stmt() *ast.Node {
	switch {
	case p.cur().Is("return"):
		tok := p.advance()
		e := p.expr()
		p.expect(";")
		return &ast.Node{Kind: ast.Return, LHS: e, Tok: tok}

	case p.cur().Is("if"):
		tok := p.advance()
		p.expect("(")
		cond := p.expr()
		p.expect(")")
		then := p.stmt()
		node := &ast.Node{Kind: ast.If, Cond: cond, Then: then, Tok: tok}
		if p.consume("else") {
			node.Els = p.stmt()
		}
		return node

	case p.cur().Is("while"):
		tok := p.advance()
		p.expect("(")
		cond := p.expr()
		p.expect(")")
		then := p.stmt()
		return &ast.Node{Kind: ast.While, Cond: cond, Then: then, Tok: tok}

	case p.cur().Is("for"):
		tok := p.advance()
		p.expect("(")
		node := &ast.Node{Kind: ast.For, Tok: tok}
		if !p.cur().Is(";") {
			initTok := p.cur()
			node.Init = &ast.Node{Kind: ast.ExprStmt, LHS: p.expr(), Tok: initTok}
		}
		p.expect(";")
		if !p.cur().Is(";") {
			node.Cond = p.expr()
		}
		p.expect(";")
		if !p.cur().Is(")") {
			node.Inc = p.expr()
		}
		p.expect(")")
		node.Then = p.stmt()
		return node

	case p.cur().Is("{"):
		p.advance()
		return p.compoundStmt()

	default:
		return p.exprStmt()
	}
}

// exprStmt parses an optional expression followed by a semicolon. An empty
// statement (bare ";") lowers to a no-op block with an empty body.
func (p *Parser) exprStmt() *ast.Node {
	tok := p.cur()
	if p.consume(";") {
		return &ast.Node{Kind: ast.Block, Tok: tok}
	}
	e := p.expr()
	p.expect(";")
	return &ast.Node{Kind: ast.ExprStmt, LHS: e, Tok: tok}
}

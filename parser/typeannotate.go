package parser

import (
	"github.com/skx/qcc/ast"
	"github.com/skx/qcc/types"
)

// addType implements the bottom-up type-annotation walk of the type
// model: idempotent (a node whose Ty is already set is left untouched),
// recursing into lhs, rhs, every statement in a body list, and every call
// argument before applying the inference table below.
//
// Var's type is the declared type of the variable it references (the
// type model's own Int/Char/Ptr/Array/Struct cases) rather than being
// forced to Int - without this, pointer arithmetic, array decay, struct
// member access, and sizeof could never see a variable's real shape.
func (p *Parser) addType(n *ast.Node) {
	if n == nil || n.Ty != nil {
		return
	}

	p.addType(n.LHS)
	p.addType(n.RHS)
	p.addType(n.Cond)
	p.addType(n.Then)
	p.addType(n.Els)
	p.addType(n.Init)
	p.addType(n.Inc)
	for _, s := range n.Body {
		p.addType(s)
	}
	for _, a := range n.Args {
		p.addType(a)
	}

	switch n.Kind {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		n.Ty = n.LHS.Ty

	case ast.Assign:
		if n.LHS.Ty.Kind == types.ARRAY {
			p.semanticf(n.Tok, "not an lvalue: cannot assign to an array")
		}
		n.Ty = n.LHS.Ty

	case ast.Comma:
		n.Ty = n.RHS.Ty

	case ast.Eq, ast.Ne, ast.Lt, ast.Le:
		n.Ty = types.Int()

	case ast.VarNode:
		n.Ty = n.Var.Type

	case ast.Num:
		n.Ty = types.Int()

	case ast.FuncCall:
		// FuncCall nodes are typed Int unconditionally; calls to
		// functions returning other integer-like values still
		// appear as Int and are correct only because char/pointer
		// returns are not exercised by this subset.
		n.Ty = types.Int()

	case ast.Member:
		if n.LHS.Ty.Kind != types.STRUCT {
			p.semanticf(n.Tok, "not a struct: cannot access member '%s'", n.MemberName)
		}
		m := n.LHS.Ty.FindMember(n.MemberName)
		if m == nil {
			p.semanticf(n.Tok, "no such member: '%s'", n.MemberName)
		}
		n.MemberInfo = m
		n.Ty = m.Type

	case ast.Addr:
		switch n.LHS.Kind {
		case ast.VarNode, ast.Deref, ast.Member:
		default:
			p.semanticf(n.Tok, "invalid use of '&': not an lvalue")
		}
		if n.LHS.Ty.Kind == types.ARRAY {
			n.Ty = types.PointerTo(n.LHS.Ty.Base)
		} else {
			n.Ty = types.PointerTo(n.LHS.Ty)
		}

	case ast.Deref:
		if !n.LHS.Ty.IsPointerLike() {
			p.semanticf(n.Tok, "invalid pointer dereference")
		}
		base := n.LHS.Ty.BaseType()
		n.Ty = base

	case ast.StmtExpr:
		n.Ty = p.stmtExprType(n)

	case ast.ExprStmt, ast.Return, ast.If, ast.While, ast.For, ast.Block:
		n.Ty = types.Int()

	default:
		n.Ty = types.Int()
	}
}

// stmtExprType validates and resolves the type of a GNU statement
// expression: the last statement must be an ExprStmt, whose inner
// expression's type becomes the whole expression's type. An empty
// statement-expression is a fatal error.
func (p *Parser) stmtExprType(n *ast.Node) *types.Type {
	if len(n.Body) == 0 {
		p.semanticf(n.Tok, "void statement expression")
	}
	last := n.Body[len(n.Body)-1]
	if last.Kind != ast.ExprStmt {
		p.semanticf(n.Tok, "void statement expression")
	}
	return last.LHS.Ty
}

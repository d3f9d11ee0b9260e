package codegen

import "github.com/skx/qcc/ast"

// genStmt emits one statement node. Each expression it hands to genExpr
// gets its own ".loc 1 <line>" directive there, at per-expression
// granularity.
func (g *Generator) genStmt(n *ast.Node) {
	switch n.Kind {
	case ast.Return:
		g.genExpr(n.LHS)
		g.emit("  pop rax")
		g.emit("  jmp .L.return.%s", g.curFunc.Name)

	case ast.Block:
		for _, s := range n.Body {
			g.genStmt(s)
		}

	case ast.ExprStmt:
		g.genExpr(n.LHS)
		g.emit("  add rsp, 8")

	case ast.If:
		c := g.nextLabel()
		g.genExpr(n.Cond)
		g.emit("  pop rax")
		g.emit("  cmp rax, 0")
		g.emit("  je .L.else%d", c)
		g.genStmt(n.Then)
		g.emit("  jmp .L.end%d", c)
		g.emit(".L.else%d:", c)
		if n.Els != nil {
			g.genStmt(n.Els)
		}
		g.emit(".L.end%d:", c)

	case ast.While:
		c := g.nextLabel()
		g.emit(".L.begin%d:", c)
		g.genExpr(n.Cond)
		g.emit("  pop rax")
		g.emit("  cmp rax, 0")
		g.emit("  je .L.end%d", c)
		g.genStmt(n.Then)
		g.emit("  jmp .L.begin%d", c)
		g.emit(".L.end%d:", c)

	case ast.For:
		c := g.nextLabel()
		if n.Init != nil {
			g.genStmt(n.Init)
		}
		g.emit(".L.begin%d:", c)
		if n.Cond != nil {
			g.genExpr(n.Cond)
			g.emit("  pop rax")
			g.emit("  cmp rax, 0")
			g.emit("  je .L.end%d", c)
		}
		g.genStmt(n.Then)
		if n.Inc != nil {
			g.genExpr(n.Inc)
			g.emit("  add rsp, 8")
		}
		g.emit("  jmp .L.begin%d", c)
		g.emit(".L.end%d:", c)

	default:
		// A bare expression used where a statement was expected (the
		// teacher's catch-all default in its own gen_expr dispatch).
		g.genExpr(n)
		g.emit("  add rsp, 8")
	}
}

// genStmtsKeepLast emits every statement in stmts in order, except that if
// the final one is an ExprStmt its value is left on the stack instead of
// being discarded - the shared implementation of "the last expression
// statement's value is the result" used both for a function's fall-through
// return value and for a GNU statement-expression's result.
func (g *Generator) genStmtsKeepLast(stmts []*ast.Node) {
	for i, s := range stmts {
		if i == len(stmts)-1 && s.Kind == ast.ExprStmt {
			g.genExpr(s.LHS)
			return
		}
		g.genStmt(s)
	}
}

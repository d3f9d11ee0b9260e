package codegen

import (
	"github.com/skx/qcc/ast"
	"github.com/skx/qcc/qccerr"
	"github.com/skx/qcc/types"
)

// genExpr walks an expression node, leaving exactly one value - its
// result - on the hardware stack. Every expression emission is preceded by
// a ".loc 1 <line>" directive for debugger line info.
func (g *Generator) genExpr(n *ast.Node) {
	g.emit(".loc 1 %d", n.Tok.Line)

	switch n.Kind {
	case ast.Num:
		g.emit("  push %d", n.Num)

	case ast.VarNode, ast.Member:
		g.genAddr(n)
		g.emit("  pop rax")
		g.load(n.Ty)
		g.emit("  push rax")

	case ast.Assign:
		g.genAddr(n.LHS)
		g.genExpr(n.RHS)
		g.emit("  pop rdi")
		g.emit("  pop rax")
		g.store(n.LHS.Ty)
		g.emit("  push rdi")

	case ast.Addr:
		g.genAddr(n.LHS)

	case ast.Deref:
		g.genExpr(n.LHS)
		g.emit("  pop rax")
		g.load(n.Ty)
		g.emit("  push rax")

	case ast.Comma:
		g.genExpr(n.LHS)
		g.emit("  add rsp, 8")
		g.genExpr(n.RHS)

	case ast.StmtExpr:
		g.genStmtsKeepLast(n.Body)

	case ast.FuncCall:
		g.genCall(n)

	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Eq, ast.Ne, ast.Lt, ast.Le:
		g.genBinary(n)

	default:
		qccerr.Unreachable("genExpr: unhandled node kind %v", n.Kind)
	}
}

// genAddr computes the address of an l-value expression, leaving it on
// top of the stack. Anything else reaching here is a fatal internal
// error - the parser's type/lvalue checks are what keep this from
// happening on well-formed input.
func (g *Generator) genAddr(n *ast.Node) {
	switch n.Kind {
	case ast.VarNode:
		g.genVarAddr(n.Var)

	case ast.Deref:
		// The pointer expression's rvalue *is* the address.
		g.genExpr(n.LHS)

	case ast.Member:
		g.genAddr(n.LHS)
		g.emit("  pop rax")
		g.emit("  add rax, %d", n.MemberInfo.Offset)
		g.emit("  push rax")

	default:
		qccerr.Unreachable("genAddr: not an lvalue (kind %v)", n.Kind)
	}
}

func (g *Generator) genVarAddr(v *ast.Var) {
	if v.IsLocal {
		local := g.findLocal(v)
		g.emit("  mov rax, rbp")
		g.emit("  sub rax, %d", local.Offset)
		g.emit("  push rax")
		return
	}
	g.emit("  lea rax, %s[rip]", v.Name)
	g.emit("  push rax")
}

// load reads the value addressed by rax into rax, sized by ty. Array and
// struct types decay instead of loading: the address itself is the value.
func (g *Generator) load(ty *types.Type) {
	if ty.Kind == types.ARRAY || ty.Kind == types.STRUCT {
		return
	}
	if ty.Size() == 1 {
		g.emit("  movzx rax, BYTE PTR [rax]")
		return
	}
	g.emit("  mov rax, [rax]")
}

// store writes rdi to the address in rax, sized by ty.
func (g *Generator) store(ty *types.Type) {
	if ty.Size() == 1 {
		g.emit("  mov [rax], dil")
		return
	}
	g.emit("  mov [rax], rdi")
}

// genBinary recurses lhs then rhs, pops into rdi/rax, and emits the
// instruction for the operator, pushing the result.
func (g *Generator) genBinary(n *ast.Node) {
	g.genExpr(n.LHS)
	g.genExpr(n.RHS)
	g.emit("  pop rdi")
	g.emit("  pop rax")

	switch n.Kind {
	case ast.Add:
		g.emit("  add rax, rdi")
	case ast.Sub:
		g.emit("  sub rax, rdi")
	case ast.Mul:
		g.emit("  imul rax, rdi")
	case ast.Div:
		g.emit("  cqo")
		g.emit("  idiv rdi")
	case ast.Eq:
		g.emit("  cmp rax, rdi")
		g.emit("  sete al")
		g.emit("  movzx rax, al")
	case ast.Ne:
		g.emit("  cmp rax, rdi")
		g.emit("  setne al")
		g.emit("  movzx rax, al")
	case ast.Lt:
		g.emit("  cmp rax, rdi")
		g.emit("  setl al")
		g.emit("  movzx rax, al")
	case ast.Le:
		g.emit("  cmp rax, rdi")
		g.emit("  setle al")
		g.emit("  movzx rax, al")
	default:
		qccerr.Unreachable("genBinary: unhandled operator kind %v", n.Kind)
	}

	g.emit("  push rax")
}

// genCall evaluates each argument in order (each pushes its result), then
// pops into parameter registers in reverse order so the rightmost argument
// is popped first into the highest-indexed register and the leftmost ends
// in rdi.
func (g *Generator) genCall(n *ast.Node) {
	for _, arg := range n.Args {
		g.genExpr(arg)
	}
	for i := len(n.Args) - 1; i >= 0; i-- {
		g.emit("  pop %s", argRegs64[i])
	}
	g.emit("  mov rax, 0")
	g.emit("  call %s", n.FuncName)
	g.emit("  push rax")
}

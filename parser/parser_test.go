package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skx/qcc/ast"
	"github.com/skx/qcc/lexer"
	"github.com/skx/qcc/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	require.NoError(t, err)
	prog, err := New(tokens, src).Parse()
	require.NoError(t, err)
	return prog
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	require.NoError(t, err)
	_, err = New(tokens, src).Parse()
	return err
}

func TestEmptyFunction(t *testing.T) {
	prog := parse(t, "int main() { return 0; }")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Empty(t, fn.Params)
}

func TestGlobalsAndFunctions(t *testing.T) {
	prog := parse(t, "int g; int add(int a, int b) { return a+b; } int main() { return add(1,2); }")
	require.Len(t, prog.Globals, 1)
	assert.Equal(t, "g", prog.Globals[0].Name)
	require.Len(t, prog.Functions, 2)
	assert.Equal(t, "add", prog.Functions[0].Name)
	assert.Len(t, prog.Functions[0].Params, 2)
	assert.Equal(t, "main", prog.Functions[1].Name)
}

func TestLocalsAndShadowing(t *testing.T) {
	prog := parse(t, `
		int main() {
			int x;
			x = 1;
			{
				int x;
				x = 2;
			}
			return x;
		}
	`)
	fn := prog.Functions[0]
	// Two distinct locals named "x" despite the shadowing.
	count := 0
	for _, v := range fn.Locals {
		if v.Name == "x" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestUndefinedIdentifierIsFatal(t *testing.T) {
	err := parseErr(t, "int main() { return nope; }")
	require.Error(t, err)
}

// Pointer arithmetic scaling: `p + 1` where p is int* must become
// Add(p, Mul(1, 8)), with the Num operand carrying the pointee's size.
func TestPointerArithmeticScaling(t *testing.T) {
	prog := parse(t, "int main() { int *p; return *(p+1); }")
	fn := prog.Functions[0]
	deref := findNode(fn.Body, ast.Deref)
	require.NotNil(t, deref)
	add := deref.LHS
	require.Equal(t, ast.Add, add.Kind)
	require.Equal(t, ast.Mul, add.RHS.Kind)
	assert.Equal(t, 8, add.RHS.RHS.Num, "pointer arithmetic scales the integer operand by the pointee's size")
}

// int + ptr swaps so the pointer ends up on the left.
func TestPointerArithmeticSwap(t *testing.T) {
	prog := parse(t, "int main() { int *p; return *(1+p); }")
	fn := prog.Functions[0]
	add := findNode(fn.Body, ast.Add)
	require.NotNil(t, add)
	assert.True(t, add.LHS.Ty.IsPointerLike(), "after swapping, the pointer operand is on the left")
}

func TestPointerPointerAdditionIsError(t *testing.T) {
	err := parseErr(t, "int main() { int *p; int *q; return p+q; }")
	require.Error(t, err)
}

// p - q for two pointers lowers to Div(Sub(p,q), sizeof(*p)) typed Int.
func TestPointerDifference(t *testing.T) {
	prog := parse(t, "int main() { int *p; int *q; return p-q; }")
	fn := prog.Functions[0]
	ret := fn.Body.Body[len(fn.Body.Body)-1]
	require.Equal(t, ast.Return, ret.Kind)
	div := ret.LHS
	require.Equal(t, ast.Div, div.Kind)
	require.Equal(t, ast.Sub, div.LHS.Kind)
	assert.Equal(t, types.Int(), div.Ty)
}

func TestArrayDecayAndSubscript(t *testing.T) {
	prog := parse(t, "int main() { int a[3]; a[1] = 4; return a[0]+a[1]+a[2]; }")
	fn := prog.Functions[0]
	require.Len(t, fn.Locals, 1)
	assert.Equal(t, types.ARRAY, fn.Locals[0].Type.Kind)
}

func TestArrayAssignmentIsNotAnLvalue(t *testing.T) {
	err := parseErr(t, "int main() { int a[3]; a = a; return 0; }")
	require.Error(t, err)
}

// Scenario 6 from the spec's end-to-end table: a bare tagged struct
// declaration followed by a later "struct P p" referencing the tag.
func TestStructTagDeclarationAndReference(t *testing.T) {
	prog := parse(t, `
		struct P { int x; int y; };
		int main() {
			struct P p;
			p.x=3; p.y=5;
			return p.x+p.y;
		}
	`)
	fn := prog.Functions[0]
	require.Len(t, fn.Locals, 1)
	assert.Equal(t, types.STRUCT, fn.Locals[0].Type.Kind)
	assert.Equal(t, 16, fn.Locals[0].Type.Size())
}

func TestUndefinedStructTagIsFatal(t *testing.T) {
	err := parseErr(t, "int main() { struct Nope n; return 0; }")
	require.Error(t, err)
}

// Global variables must be visible inside function bodies, even though
// they're never pushed onto the scope stack (which function parsing
// rebuilds from scratch).
func TestGlobalVariableVisibleInFunction(t *testing.T) {
	prog := parse(t, "int g; int main() { g = 7; return g; }")
	fn := prog.Functions[0]
	ret := fn.Body.Body[len(fn.Body.Body)-1]
	require.Equal(t, ast.Return, ret.Kind)
	assert.Equal(t, ast.VarNode, ret.LHS.Kind)
	assert.False(t, ret.LHS.Var.IsLocal)
	assert.Equal(t, "g", ret.LHS.Var.Name)
}

func TestStructMemberAccess(t *testing.T) {
	prog := parse(t, `
		struct P { int x; int y; };
		int main() {
			struct P p;
			p.x = 3;
			p.y = 5;
			return p.x + p.y;
		}
	`)
	fn := prog.Functions[0]
	require.Len(t, fn.Locals, 1)
	st := fn.Locals[0].Type
	require.Equal(t, types.STRUCT, st.Kind)
	assert.Equal(t, 0, st.Members[0].Offset)
	assert.Equal(t, 8, st.Members[1].Offset)
}

func TestStructMemberAccessOnNonStructIsFatal(t *testing.T) {
	err := parseErr(t, "int main() { int a; return a.x; }")
	require.Error(t, err)
}

func TestStructNoSuchMemberIsFatal(t *testing.T) {
	err := parseErr(t, "struct P { int x; }; int main() { struct P p; return p.z; }")
	require.Error(t, err)
}

func TestSizeof(t *testing.T) {
	prog := parse(t, "int main() { int a[4]; return sizeof(a); }")
	fn := prog.Functions[0]
	ret := fn.Body.Body[len(fn.Body.Body)-1]
	assert.Equal(t, ast.Num, ret.LHS.Kind)
	assert.Equal(t, 32, ret.LHS.Num)
}

func TestStatementExpression(t *testing.T) {
	prog := parse(t, "int main() { return ({ 1; 2; 3; }); }")
	fn := prog.Functions[0]
	ret := fn.Body.Body[len(fn.Body.Body)-1]
	require.Equal(t, ast.StmtExpr, ret.LHS.Kind)
	assert.Equal(t, types.Int(), ret.LHS.Ty)
}

func TestVoidStatementExpressionIsFatal(t *testing.T) {
	err := parseErr(t, "int main() { return ({ int x; }); }")
	require.Error(t, err)
}

func TestStringLiteralBecomesHiddenGlobal(t *testing.T) {
	prog := parse(t, `int main() { char *s = "abc"; return s[0]; }`)
	require.Len(t, prog.Globals, 1)
	g := prog.Globals[0]
	assert.Equal(t, ".L..0", g.Name)
	assert.Equal(t, []byte("abc"), g.InitData)
	assert.Equal(t, 4, g.Type.Size(), "Array(Char, len+1) for the implicit trailing NUL")
}

func TestStringLiteralIDsAreMonotonic(t *testing.T) {
	prog := parse(t, `int main() { char *a = "x"; char *b = "y"; return 0; }`)
	require.Len(t, prog.Globals, 2)
	assert.Equal(t, ".L..0", prog.Globals[0].Name)
	assert.Equal(t, ".L..1", prog.Globals[1].Name)
}

func TestCommaOperator(t *testing.T) {
	prog := parse(t, "int main() { int a; int b; return (a=1, b=2); }")
	fn := prog.Functions[0]
	ret := fn.Body.Body[len(fn.Body.Body)-1]
	assert.Equal(t, ast.Comma, ret.LHS.Kind)
}

func TestUnaryPlusIsNoop(t *testing.T) {
	// "++x" parses as "+(+x)", not a pre-increment operator: it must type
	// and generate identically to plain "x".
	prog := parse(t, "int main() { int x; x = 5; return ++x; }")
	fn := prog.Functions[0]
	ret := fn.Body.Body[len(fn.Body.Body)-1]
	assert.Equal(t, ast.VarNode, ret.LHS.Kind)
}

func TestRelationalSwap(t *testing.T) {
	// a > b lowers to Lt(b, a): after swapping, the node's left subtree
	// is the originally-right operand.
	prog := parse(t, "int main() { int a; int b; return a > b; }")
	fn := prog.Functions[0]
	ret := fn.Body.Body[len(fn.Body.Body)-1]
	lt := ret.LHS
	require.Equal(t, ast.Lt, lt.Kind)
	require.Equal(t, ast.VarNode, lt.LHS.Kind)
	assert.Equal(t, "b", lt.LHS.Var.Name)
	assert.Equal(t, "a", lt.RHS.Var.Name)
}

func TestAddTypeIdempotent(t *testing.T) {
	tokens, err := lexer.New("int main() { return 1+2; }").Tokenize()
	require.NoError(t, err)
	p := New(tokens, "int main() { return 1+2; }")
	prog, err := p.Parse()
	require.NoError(t, err)

	ret := prog.Functions[0].Body.Body[0]
	before := ret.LHS.Ty
	p.addType(ret.LHS)
	assert.Same(t, before, ret.LHS.Ty, "add_type must be idempotent")
}

// findNode does a pre-order search for the first node of the given kind,
// starting from a function's body.
func findNode(body *ast.Node, kind ast.Kind) *ast.Node {
	var walk func(n *ast.Node) *ast.Node
	walk = func(n *ast.Node) *ast.Node {
		if n == nil {
			return nil
		}
		if n.Kind == kind {
			return n
		}
		for _, child := range []*ast.Node{n.LHS, n.RHS, n.Cond, n.Then, n.Els, n.Init, n.Inc} {
			if r := walk(child); r != nil {
				return r
			}
		}
		for _, s := range n.Body {
			if r := walk(s); r != nil {
				return r
			}
		}
		for _, a := range n.Args {
			if r := walk(a); r != nil {
				return r
			}
		}
		return nil
	}
	return walk(body)
}

// Package ast defines the typed abstract syntax tree the parser builds and
// the code generator walks: expression and statement nodes, variables,
// functions, and the lexical-scope stack used during name resolution.
package ast

import (
	"github.com/skx/qcc/token"
	"github.com/skx/qcc/types"
)

// Kind tags which case of the node union a Node represents.
type Kind int

// The node kinds named by the data model.
const (
	Add Kind = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
	Assign
	Comma
	Addr
	Deref
	Return
	ExprStmt
	If
	While
	For
	Block
	StmtExpr
	FuncCall
	Member
	Num
	VarNode
)

// Node is a single AST node. lhs/rhs are the exclusive-ownership children of
// binary/unary forms; Body holds the statement list for Block and
// StmtExpr; the composite control-flow fields are used only by their
// matching Kind.
type Node struct {
	Kind Kind
	Ty   *types.Type

	// Tok is the token that produced this node, kept only so the code
	// generator can emit a ".loc 1 <line>" directive; it forms no
	// cycle since it is copied by value.
	Tok token.Token

	LHS *Node
	RHS *Node

	// Num is the literal value for Kind == Num.
	Num int

	// Var is the referenced variable for Kind == VarNode.
	Var *Var

	// MemberName/MemberInfo back Kind == Member: the field name as
	// written in source, resolved to the struct member during type
	// annotation.
	MemberName string
	MemberInfo *types.Member

	// FuncName/Args back Kind == FuncCall.
	FuncName string
	Args     []*Node

	// Cond/Then/Els back If, While, For.
	Cond *Node
	Then *Node
	Els  *Node

	// Init/Inc are additional For fields.
	Init *Node
	Inc  *Node

	// Body is the statement list for Block and StmtExpr.
	Body []*Node
}

// Var is a named storage cell: a local, a parameter (which is stored as a
// local), or a global. init_data is present only for string literals,
// which are lowered to hidden globals.
type Var struct {
	ID      int
	Name    string
	Offset  int
	Type    *types.Type
	IsLocal bool

	// InitData holds decoded bytes for string-literal globals; nil for
	// every other variable.
	InitData []byte
}

// Function is a parsed function definition: its signature, its locals
// (including parameters, which are bound first), and its body. StackSize
// is filled in during code generation, not parsing.
type Function struct {
	Name      string
	Params    []*Var
	Locals    []*Var
	Body      *Node
	StackSize int
}

// Program is the result of parsing a full translation unit: the ordered
// function list and the global variables (including hidden string-literal
// globals) discovered along the way.
type Program struct {
	Functions []*Function
	Globals   []*Var
}

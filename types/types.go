// Package types implements the compiler's type model: integers, characters,
// pointers, arrays, structs, and function types, along with the size and
// predicate rules the parser and code generator rely on.
package types

import (
	"github.com/samber/lo"
	"github.com/skx/qcc/token"
)

// Kind tags which case of the type union a Type represents.
type Kind int

// The type kinds named by the type model.
const (
	INT Kind = iota
	CHAR
	PTR
	ARRAY
	STRUCT
	FUNC
)

// Member is a single named field inside a Struct type, with its frozen
// byte offset from the start of the struct.
type Member struct {
	Name   string
	Type   *Type
	Offset int
}

// Type is a tagged union over the type kinds above. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type Type struct {
	Kind Kind

	// Base is the pointee/element type for PTR and ARRAY.
	Base *Type

	// ArrayLen is the element count for ARRAY.
	ArrayLen int

	// Members is the ordered field list for STRUCT.
	Members []*Member

	// StructSize is the total byte size for STRUCT.
	StructSize int

	// Params and Return describe a FUNC type; FUNC carries no size of
	// its own and only ever appears as a declarator type.
	Params []*Type
	Return *Type

	// Name is the declarator identifier token that produced this type,
	// propagated outward from declarator() to the statement that uses
	// it. Nil for anonymous/synthesized types.
	Name *token.Token
}

// Int returns the 8-byte signed integer type.
func Int() *Type { return &Type{Kind: INT} }

// Char returns the 1-byte character type.
func Char() *Type { return &Type{Kind: CHAR} }

// PointerTo returns a pointer type whose pointee is base.
func PointerTo(base *Type) *Type { return &Type{Kind: PTR, Base: base} }

// ArrayOf returns an array of length elements of base. It's a fatal
// programmer error to build an array of a sizeless type (FUNC).
func ArrayOf(base *Type, length int) *Type {
	if base.Kind == FUNC {
		panic("types: array_of called on sizeless (func) base type")
	}
	return &Type{Kind: ARRAY, Base: base, ArrayLen: length}
}

// Func returns a function type with the given parameter types and return
// type. Function types carry no size; they only appear as declarator types.
func Func(params []*Type, ret *Type) *Type {
	return &Type{Kind: FUNC, Params: params, Return: ret}
}

// Struct returns a struct type over the given members, laid out with
// no inter-member padding (offsets are strict running sums of member
// sizes - a deliberate, non-ABI-faithful choice kept for fidelity with
// the reference behavior this compiler is modeled on; see DESIGN.md).
func Struct(members []*Member) *Type {
	offset := 0
	for _, m := range members {
		m.Offset = offset
		offset += m.Size()
	}
	return &Type{Kind: STRUCT, Members: members, StructSize: offset}
}

// Size returns the member's storage size, delegating to its Type.
func (m *Member) Size() int { return m.Type.Size() }

// IsInteger reports whether t is INT or CHAR.
func (t *Type) IsInteger() bool {
	return t.Kind == INT || t.Kind == CHAR
}

// IsPointer reports whether t is a PTR (arrays decay but are not
// themselves pointers - callers that want "pointer or array" check both
// explicitly, matching the spec's separate treatment of decay).
func (t *Type) IsPointer() bool {
	return t.Kind == PTR
}

// IsPointerLike reports whether t is a PTR or ARRAY - the two kinds that
// participate in pointer-arithmetic scaling and dereference.
func (t *Type) IsPointerLike() bool {
	return t.Kind == PTR || t.Kind == ARRAY
}

// BaseType returns the pointee/element type for PTR and ARRAY, and nil
// otherwise.
func (t *Type) BaseType() *Type {
	if t.Kind == PTR || t.Kind == ARRAY {
		return t.Base
	}
	return nil
}

// Size returns the type's storage size in bytes. Size law: size(Array(b,n))
// = size(b) * n. FUNC has no size and returns 0.
func (t *Type) Size() int {
	switch t.Kind {
	case INT:
		return 8
	case CHAR:
		return 1
	case PTR:
		return 8
	case ARRAY:
		return t.Base.Size() * t.ArrayLen
	case STRUCT:
		return t.StructSize
	default:
		return 0
	}
}

// FindMember returns the named member of a struct type, or nil if t isn't
// a struct or has no such member.
func (t *Type) FindMember(name string) *Member {
	if t.Kind != STRUCT {
		return nil
	}
	m, ok := lo.Find(t.Members, func(m *Member) bool { return m.Name == name })
	if !ok {
		return nil
	}
	return m
}

// WithName returns a shallow copy of t carrying the given declarator name
// token, used to propagate the declared identifier outward from
// declarator() without mutating a shared type value.
func (t *Type) WithName(name *token.Token) *Type {
	cp := *t
	cp.Name = name
	return &cp
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skx/qcc/token"
)

func TestSizes(t *testing.T) {
	assert.Equal(t, 8, Int().Size())
	assert.Equal(t, 1, Char().Size())
	assert.Equal(t, 8, PointerTo(Int()).Size())
	assert.Equal(t, 24, ArrayOf(Int(), 3).Size(), "size(Array(b,n)) = size(b) * n")
	assert.Equal(t, 3, ArrayOf(Char(), 3).Size())
	assert.Equal(t, 0, Func(nil, Int()).Size(), "FUNC carries no size of its own")
}

func TestArrayOfSizelessBasePanics(t *testing.T) {
	assert.Panics(t, func() {
		ArrayOf(Func(nil, Int()), 4)
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, Int().IsInteger())
	assert.True(t, Char().IsInteger())
	assert.False(t, PointerTo(Int()).IsInteger())

	assert.True(t, PointerTo(Int()).IsPointer())
	assert.False(t, ArrayOf(Int(), 2).IsPointer(), "arrays decay but are not themselves pointers")

	assert.True(t, PointerTo(Int()).IsPointerLike())
	assert.True(t, ArrayOf(Int(), 2).IsPointerLike())
	assert.False(t, Int().IsPointerLike())
}

func TestBaseType(t *testing.T) {
	assert.Equal(t, Int(), PointerTo(Int()).BaseType())
	assert.Equal(t, Char(), ArrayOf(Char(), 5).BaseType())
	assert.Nil(t, Int().BaseType())
}

func TestStructNoPadding(t *testing.T) {
	// struct { char a; int b; int c; } - strict running sum, no alignment
	// padding, per the reference layout behavior this compiler keeps.
	members := []*Member{
		{Name: "a", Type: Char()},
		{Name: "b", Type: Int()},
		{Name: "c", Type: Int()},
	}
	st := Struct(members)

	assert.Equal(t, 0, members[0].Offset)
	assert.Equal(t, 1, members[1].Offset)
	assert.Equal(t, 9, members[2].Offset)
	assert.Equal(t, 17, st.Size())
}

func TestFindMember(t *testing.T) {
	members := []*Member{
		{Name: "x", Type: Int()},
		{Name: "y", Type: Int()},
	}
	st := Struct(members)

	m := st.FindMember("y")
	if assert.NotNil(t, m) {
		assert.Equal(t, 8, m.Offset)
	}

	assert.Nil(t, st.FindMember("z"), "no such member")
	assert.Nil(t, Int().FindMember("x"), "not a struct")
}

func TestWithName(t *testing.T) {
	base := Int()
	tok := token.Token{Type: token.IDENT, Literal: "x"}
	named := base.WithName(&tok)

	assert.Nil(t, base.Name, "WithName must not mutate the receiver")
	if assert.NotNil(t, named.Name) {
		assert.Equal(t, "x", named.Name.Literal)
	}
}

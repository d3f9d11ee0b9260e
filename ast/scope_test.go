package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeShadowing(t *testing.T) {
	s := NewScope()

	outer := &Var{Name: "x", ID: 1}
	s.Declare("x", outer)
	assert.Same(t, outer, s.Find("x"))

	s.Push()
	inner := &Var{Name: "x", ID: 2}
	s.Declare("x", inner)
	assert.Same(t, inner, s.Find("x"), "inner declaration shadows the outer one")

	s.Pop()
	assert.Same(t, outer, s.Find("x"), "popping the frame restores visibility of the outer binding")
}

func TestScopeUndeclared(t *testing.T) {
	s := NewScope()
	assert.Nil(t, s.Find("nope"))
}

func TestScopeSiblingFramesDoNotLeak(t *testing.T) {
	s := NewScope()

	s.Push()
	s.Declare("y", &Var{Name: "y"})
	s.Pop()

	s.Push()
	assert.Nil(t, s.Find("y"), "a sibling block's locals aren't visible in another sibling block")
	s.Pop()
}

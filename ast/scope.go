package ast

import "github.com/samber/lo"

// entry is a single (name -> Var) binding inside a scope frame.
type entry struct {
	name string
	v    *Var
}

// frame is one level of lexical nesting: a flat sequence of bindings in
// declaration order.
type frame struct {
	entries []entry
}

// Scope is a stack of frames. The current frame is the top; lookups
// traverse from top to bottom so inner declarations shadow outer ones.
// Entering a block pushes a frame, leaving pops it. A function's scope is
// a fresh stack rooted before its parameters are bound.
type Scope struct {
	frames []*frame
}

// NewScope returns an empty scope stack with one root frame already
// pushed, ready for a function's parameters to be bound into it.
func NewScope() *Scope {
	s := &Scope{}
	s.Push()
	return s
}

// Push enters a new nested frame.
func (s *Scope) Push() {
	s.frames = append(s.frames, &frame{})
}

// Pop leaves the current frame.
func (s *Scope) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Declare binds name to v in the current (innermost) frame.
func (s *Scope) Declare(name string, v *Var) {
	top := s.frames[len(s.frames)-1]
	top.entries = append(top.entries, entry{name: name, v: v})
}

// Find walks frames from innermost to outermost and returns the first
// matching binding, or nil if name is undeclared in any visible scope.
func (s *Scope) Find(name string) *Var {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if match, ok := lo.Last(lo.Filter(f.entries, func(e entry, _ int) bool {
			return e.name == name
		})); ok {
			return match.v
		}
	}
	return nil
}

// Package qccerr defines the compiler's single error type and the
// caret-pointing diagnostic format described by the error-handling design:
// every fatal error carries a stage, a message, and enough source position
// to be rendered against the full reconstructed input.
//
// The shape is grounded on clarete-langlang's ParsingError: a plain struct
// implementing error, formatted by its own Error() method rather than by
// fmt.Errorf wrapping.
package qccerr

import (
	"fmt"
	"strings"
)

// Stage identifies which pipeline phase raised the error.
type Stage string

// The four stages named by the error taxonomy.
const (
	Lexical  Stage = "lexical"
	Syntax   Stage = "syntax"
	Semantic Stage = "semantic"
	Internal Stage = "internal"
)

// CompileError is the only error type the compiler's core packages raise.
// There is no recovery: the first CompileError aborts compilation.
type CompileError struct {
	Stage   Stage
	Message string

	// Source is the full translation unit being compiled, reproduced
	// verbatim in the diagnostic.
	Source string

	Offset int
	Line   int
	Column int
}

// Error renders the diagnostic format required by the error-handling
// design: the full source text, a caret under the offending column, the
// message, and a trailing line:column marker.
func (e *CompileError) Error() string {
	pad := strings.Repeat(" ", max(e.Column-1, 0))
	return fmt.Sprintf("%s\n%s^ %s\n%d:%d: %s",
		e.Source, pad, e.Message, e.Line, e.Column, e.Message)
}

// New builds a CompileError for the given stage and source position.
func New(stage Stage, source string, offset, line, column int, format string, args ...any) *CompileError {
	return &CompileError{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Source:  source,
		Offset:  offset,
		Line:    line,
		Column:  column,
	}
}

// Unreachable panics with an Internal CompileError; it marks branches the
// compiler believes can never be taken. The panic is recovered by the
// stage that raised it (parser.Parse, codegen.Generate) and returned as an
// ordinary error, reported exactly like any other CompileError.
func Unreachable(format string, args ...any) {
	panic(&CompileError{
		Stage:   Internal,
		Message: "unreachable: " + fmt.Sprintf(format, args...),
	})
}

package parser

import (
	"strings"

	"github.com/skx/qcc/qccerr"
	"github.com/skx/qcc/token"
)

// columnOf computes the 1-based column of offset within source, i.e. its
// distance past the most recent newline.
func columnOf(source string, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	return offset - lineStart + 1
}

func newSyntaxError(source string, tok token.Token, format string, args ...any) *qccerr.CompileError {
	return qccerr.New(qccerr.Syntax, source, tok.Offset, tok.Line, columnOf(source, tok.Offset), format, args...)
}

func newSemanticError(source string, tok token.Token, format string, args ...any) *qccerr.CompileError {
	return qccerr.New(qccerr.Semantic, source, tok.Offset, tok.Line, columnOf(source, tok.Offset), format, args...)
}

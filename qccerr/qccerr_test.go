package qccerr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormat(t *testing.T) {
	src := "int main() { retur 0; }"
	err := New(Syntax, src, 13, 1, 14, "expected '%s', actual '%s'", "return", "retur")

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, src), "diagnostic must reproduce the full source verbatim")
	assert.Contains(t, msg, "^ expected 'return', actual 'retur'")
	assert.Contains(t, msg, "1:14: expected 'return', actual 'retur'")
}

func TestUnreachablePanicsWithInternalStage(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		ce, ok := r.(*CompileError)
		require.True(t, ok, "Unreachable must panic with a *CompileError")
		assert.Equal(t, Internal, ce.Stage)
		assert.Contains(t, ce.Message, "unreachable")
	}()
	Unreachable("genAddr: not an lvalue (kind %d)", 7)
}

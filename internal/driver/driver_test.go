package driver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputFromReader(t *testing.T) {
	src, name, err := ReadInput("", strings.NewReader("int main(){return 0;}"))
	require.NoError(t, err)
	assert.Equal(t, "-", name)
	assert.Equal(t, "int main(){return 0;}", src)
}

func TestReadInputMissingFile(t *testing.T) {
	_, _, err := ReadInput("/no/such/file.c", nil)
	require.Error(t, err)
}

func TestCompileEndToEnd(t *testing.T) {
	asm, err := Compile("int main() { return 42; }", "t.c")
	require.NoError(t, err)
	assert.Contains(t, asm, ".intel_syntax noprefix")
	assert.Contains(t, asm, ".file 1 \"t.c\"")
	assert.Contains(t, asm, "main:")
}

func TestCompileReportsLexicalError(t *testing.T) {
	_, err := Compile("int main() { return $; }", "t.c")
	require.Error(t, err)
}

func TestCompileReportsSemanticError(t *testing.T) {
	_, err := Compile("int main() { return nope; }", "t.c")
	require.Error(t, err)
}

func TestWriteOutputAndReadInputRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/out.s"
	require.NoError(t, WriteOutput(path, ".text\n"))

	data, _, err := ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ".text\n", data)
}

// Package driver is the compiler's external collaborator: it owns reading
// source (from a file or standard input), stringing the lexer, parser,
// and code generator together, writing the emitted assembly to disk, and
// configuring log verbosity. None of this belongs in the compiler core, by
// design - the core packages stay pure and independently testable.
package driver

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hashicorp/logutils"
	"github.com/skx/qcc/codegen"
	"github.com/skx/qcc/lexer"
	"github.com/skx/qcc/parser"
)

// ConfigureLogging wraps the standard logger in a hashicorp/logutils level
// filter, reading QCC_LOG_LEVEL from the environment (DEBUG, INFO, WARN,
// ERROR; defaulting to WARN). Only the driver logs; the lexer, parser, and
// code generator stay side-effect free.
func ConfigureLogging() {
	level := os.Getenv("QCC_LOG_LEVEL")
	if level == "" {
		level = "WARN"
	}
	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR"},
		MinLevel: logutils.LogLevel(level),
		Writer:   os.Stderr,
	}
	log.SetOutput(filter)
}

// ReadInput returns the translation unit's source text and a display name
// for ".file" directives: either the named path, or "-" (read from r) when
// path is empty.
func ReadInput(path string, r io.Reader) (source string, displayName string, err error) {
	if path == "" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), "-", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}

// Compile runs the full lex -> parse -> codegen pipeline over source and
// returns the emitted assembly text. displayName is used only for the
// ".file" directive and ".loc" debug info.
func Compile(source, displayName string) (string, error) {
	log.Printf("[DEBUG] lexing %s (%d bytes)", displayName, len(source))

	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		return "", err
	}
	log.Printf("[DEBUG] produced %d tokens", len(tokens))

	program, err := parser.New(tokens, source).Parse()
	if err != nil {
		return "", err
	}
	log.Printf("[INFO] parsed %d function(s), %d global(s)",
		len(program.Functions), len(program.Globals))

	asm, err := codegen.New().Generate(program, displayName)
	if err != nil {
		return "", err
	}
	log.Printf("[DEBUG] emitted %d bytes of assembly", len(asm))
	return asm, nil
}

// WriteOutput writes asm to path.
func WriteOutput(path, asm string) error {
	if err := os.WriteFile(path, []byte(asm), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Package codegen walks a typed ast.Program and emits GNU-assembler,
// Intel-syntax x86-64 text suitable for a System V Linux target: a
// tree-walking stack machine where every subexpression leaves its result
// on the hardware stack, binary operators pop into rax/rdi, and frame
// offsets are assigned in a dedicated pass before any instruction for a
// function is emitted.
//
// Grounded on the teacher's generator.go technique (one gen* method per
// node kind, string accumulation, a per-function counter for unique
// labels) but targeting general-purpose integer registers and a real
// call-frame/ABI instead of the teacher's x87 floating-point RPN stack.
package codegen

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/skx/qcc/ast"
	"github.com/skx/qcc/qccerr"
)

// Generator holds the state accumulated while emitting one translation
// unit: the output lines, the function currently being walked, and that
// function's label counter. The counter is a field on the Generator (reset
// per function), not a process-wide singleton, so tests can construct a
// fresh Generator and get deterministic label numbers.
type Generator struct {
	lines []string

	// labelCount is incremented before any label is emitted for a
	// control-flow construct, and the incremented value is snapshotted
	// so nested constructs never alias.
	labelCount int

	curFunc *ast.Function
}

// New returns a Generator ready to emit a translation unit.
func New() *Generator {
	return &Generator{}
}

// Generate walks program and returns the full assembly text for filename,
// newline-terminated. Assembly emission is deterministic: the same
// program and filename always produce byte-identical output.
func (g *Generator) Generate(program *ast.Program, filename string) (string, error) {
	var result string
	err := g.recoverInternal(func() {
		g.emit(".intel_syntax noprefix")
		g.emit(`.file 1 "%s"`, filename)
		g.emitDataSection(program.Globals)
		g.emit(".text")
		for _, fn := range program.Functions {
			g.genFunction(fn)
		}
		result = strings.Join(g.lines, "\n") + "\n"
	})
	return result, err
}

func (g *Generator) recoverInternal(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*qccerr.CompileError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

func (g *Generator) emit(format string, args ...any) {
	g.lines = append(g.lines, fmt.Sprintf(format, args...))
}

// emitDataSection emits one .data block per global: its .globl, its label,
// and either one .byte per init_data byte (plus a trailing NUL) or a
// single .zero reservation.
func (g *Generator) emitDataSection(globals []*ast.Var) {
	for _, v := range globals {
		g.emit(".data")
		g.emit(".globl %s", v.Name)
		g.emit("%s:", v.Name)
		if v.InitData != nil {
			for _, b := range v.InitData {
				g.emit(".byte %d", b)
			}
			g.emit(".byte 0")
		} else {
			g.emit(".zero %d", v.Type.Size())
		}
	}
}

// assignLvarOffsets walks a function's locals (parameters are bound first,
// so they're included) in order, accumulating offset = running sum of
// sizes, and aligns the total upward to 16. Offsets are unique within the
// function and are set here, never during parsing.
func assignLvarOffsets(fn *ast.Function) {
	offset := 0
	for _, v := range fn.Locals {
		offset += v.Type.Size()
		v.Offset = offset
	}
	fn.StackSize = alignTo(offset, 16)
}

func alignTo(n, align int) int {
	return (n + align - 1) / align * align
}

func (g *Generator) genFunction(fn *ast.Function) {
	assignLvarOffsets(fn)
	g.curFunc = fn
	g.labelCount = 0

	g.emit(".globl %s", fn.Name)
	g.emit("%s:", fn.Name)

	g.emit("  push rbp")
	g.emit("  mov rbp, rsp")
	g.emit("  sub rsp, %d", fn.StackSize)

	// Pair each parameter with its register index the way the pack's
	// multi-arch parsers stack (offset, param) tuples for register
	// assignment.
	var paramRegs []lo.Tuple2[int, *ast.Var]
	for i, v := range fn.Params {
		paramRegs = append(paramRegs, lo.Tuple2[int, *ast.Var]{A: i, B: v})
	}
	for _, pr := range paramRegs {
		i, v := pr.A, pr.B
		if v.Type.Size() == 1 {
			g.emit("  mov [rbp-%d], %s", v.Offset, argRegs8[i])
		} else {
			g.emit("  mov [rbp-%d], %s", v.Offset, argRegs64[i])
		}
	}

	g.genStmtsKeepLast(fn.Body.Body)

	// Fall-through: the last expression statement's value reaches rax.
	g.emit("  pop rax")
	g.emitEpilogue(fn)
}

func (g *Generator) emitEpilogue(fn *ast.Function) {
	g.emit(".L.return.%s:", fn.Name)
	g.emit("  mov rsp, rbp")
	g.emit("  pop rbp")
	g.emit("  ret")
}

func (g *Generator) nextLabel() int {
	g.labelCount++
	return g.labelCount
}

// findLocal resolves a Var reference by (name, id) rather than by pointer
// identity, matching the data model's note that a Var is copied by value
// into the AST: the code generator looks up the owning function's local
// list to find the authoritative Offset assigned by assignLvarOffsets.
func (g *Generator) findLocal(v *ast.Var) *ast.Var {
	for _, l := range g.curFunc.Locals {
		if l.ID == v.ID && l.Name == v.Name {
			return l
		}
	}
	qccerr.Unreachable("local variable '%s' not found in function '%s'", v.Name, g.curFunc.Name)
	return nil
}

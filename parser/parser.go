// Package parser implements the recursive-descent parser and semantic
// analyzer: it turns a token stream into a typed ast.Program, resolving
// identifiers through nested lexical scopes, synthesizing a type for every
// expression, and lowering pointer arithmetic, array decay, struct member
// access, sizeof, and string literals along the way.
package parser

import (
	"fmt"

	"github.com/skx/qcc/ast"
	"github.com/skx/qcc/qccerr"
	"github.com/skx/qcc/token"
	"github.com/skx/qcc/types"
)

// Parser holds the token stream and the state accumulated while walking
// it: the current scope stack, the program's globals and functions so far,
// and the monotonic counters the data model requires to live on an
// explicit aggregate rather than as process-wide singletons.
type Parser struct {
	tokens []token.Token
	pos    int
	source string

	scope *ast.Scope

	globals   []*ast.Var
	functions []*ast.Function

	// tags maps a struct tag identifier ("P" in "struct P { ... }") to
	// the type it names, so a later "struct P p" can resolve it. Tags
	// share one flat, program-wide namespace; this subset has no block
	// scoping for type tags, only for variables.
	tags map[string]*types.Type

	// curLocals accumulates the locals (including bound parameters) of
	// the function currently being parsed.
	curLocals []*ast.Var

	// stringID is the monotonic counter used to name hidden
	// string-literal globals ".L..N"; it is strictly increasing across
	// the whole program.
	stringID int

	// varID is the monotonic counter used to disambiguate locals that
	// share a name across nested/shadowing scopes.
	varID int
}

// New builds a Parser over an already-tokenized source. source is kept
// only to render diagnostics against the original text.
func New(tokens []token.Token, source string) *Parser {
	return &Parser{tokens: tokens, source: source, scope: ast.NewScope(), tags: make(map[string]*types.Type)}
}

// Parse consumes the whole token stream and returns the finished program.
// Tokens[index] is always valid; Eof is never itself consumed.
func (p *Parser) Parse() (*ast.Program, error) {
	var program *ast.Program
	err := p.recoverCompileErrors(func() {
		for p.cur().Type != token.EOF {
			p.parseTopLevel()
		}
		program = &ast.Program{Functions: p.functions, Globals: p.globals}
	})
	return program, err
}

// recoverCompileErrors converts a panicked *qccerr.CompileError (raised by
// fatalf/semanticf in helpers.go) back into a normal error return,
// matching the "first fatal error aborts compilation, no recovery" design.
func (p *Parser) recoverCompileErrors(fn func()) (err error) {
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

// parseTopLevel disambiguates a function definition from a global variable
// declaration by peeking through declspec + declarator from the saved
// position and checking whether the resulting type is a function type,
// then rewinding to reparse the same tokens for real. The peek consults
// no symbol table of its own (it shares the real scope/tag state, which
// for top-level declarations is always empty or already-settled), so
// declarator parsing during the peek never depends on identifier
// resolution.
func (p *Parser) parseTopLevel() {
	save := p.pos
	base := p.declspec()
	if p.cur().Is(";") {
		// A bare type declaration with no declarator at all - only
		// legal for "struct Tag { ... };", defining a tag with no
		// variable of that type.
		p.pos = save
		p.parseGlobal()
		return
	}
	_, ty := p.declarator(base)
	isFunc := ty.Kind == types.FUNC
	p.pos = save

	if isFunc {
		p.parseFunction()
	} else {
		p.parseGlobal()
	}
}

func (p *Parser) parseFunction() {
	base := p.declspec()
	name, ty := p.declarator(base)
	if ty.Kind != types.FUNC {
		p.fatalf(p.cur(), "expected function declarator")
	}

	p.scope = ast.NewScope()
	p.curLocals = nil

	var params []*ast.Var
	for _, pt := range ty.Params {
		pname := ""
		if pt.Name != nil {
			pname = pt.Name.Literal
		}
		v := p.newLocal(pname, pt)
		params = append(params, v)
	}

	p.expect("{")
	body := p.compoundStmt()

	p.functions = append(p.functions, &ast.Function{
		Name:   name,
		Params: params,
		Locals: p.curLocals,
		Body:   body,
	})
}

func (p *Parser) parseGlobal() {
	base := p.declspec()
	if p.consume(";") {
		// Bare struct-tag declaration; no variable to bind.
		return
	}
	for {
		name, ty := p.declarator(base)
		p.globals = append(p.globals, &ast.Var{Name: name, Type: ty, IsLocal: false})
		if p.consume(",") {
			continue
		}
		break
	}
	p.expect(";")
}

// findVar resolves an identifier the way spec §4.3 describes: innermost
// scope outward first (locals and parameters), falling to the program's
// globals if no local binding shadows the name. Globals are never pushed
// onto the scope stack themselves, since a function's scope is rebuilt
// from scratch (ast.NewScope()) when parseFunction begins and would
// otherwise drop any global bindings recorded before the first function.
func (p *Parser) findVar(name string) *ast.Var {
	if v := p.scope.Find(name); v != nil {
		return v
	}
	for _, g := range p.globals {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// newLocal registers a fresh local variable: it is declared in the current
// scope and appended to the current function's local list. Frame offsets
// are NOT assigned here - parse-time offset is always zero; offsets are
// computed later, during code generation's assignLvarOffsets pass.
func (p *Parser) newLocal(name string, ty *types.Type) *ast.Var {
	p.varID++
	v := &ast.Var{ID: p.varID, Name: name, Type: ty, IsLocal: true}
	p.curLocals = append(p.curLocals, v)
	p.scope.Declare(name, v)
	return v
}

// newStringLiteral lowers a string literal token into a hidden global
// named ".L..N" with a strictly monotonic, program-wide N, typed
// Array(Char, len(decoded)+1) for the implicit trailing NUL. Duplicate
// contents still get distinct globals; there is no interning.
func (p *Parser) newStringLiteral(decoded []byte) *ast.Var {
	name := fmt.Sprintf(".L..%d", p.stringID)
	p.stringID++
	ty := types.ArrayOf(types.Char(), len(decoded)+1)
	v := &ast.Var{Name: name, Type: ty, IsLocal: false, InitData: decoded}
	p.globals = append(p.globals, v)
	return v
}

// Package parser implements the recursive-descent parser that turns a
// Cabin token stream (lang/scanner) into an ast.Chunk (spec component E).
// Unlike a parser over an immutable syntax tree, this one carries the same
// scope graph and virtual memory the evaluator will later walk: Either
// variants, group fields and function/represent-as bodies are pushed and
// interned as the grammar is recognized, not in a later pass (spec §4.4,
// "Either"). Callers build mem/scopes with eval.NewContextFrom first (while
// the scope cursor sits at Global) so the prelude lands there, then hand the
// same mem/scopes to New.
package parser

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scanner"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
	"github.com/google/uuid"
)

// ErrorKind discriminates the parser's structured errors, mirroring
// lang/eval's Error shape so the driver can render both uniformly.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrRedeclared
)

// Error is the parser's structured error type (spec §7).
type Error struct {
	Kind    ErrorKind
	Message string
	Span    token.Span
}

func (e *Error) Error() string { return e.Message }

func (p *Parser) errorf(sp token.Span, format string, args ...any) error {
	return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(format, args...), Span: sp}
}

// Parser holds the state of one parse over a single file's token stream.
type Parser struct {
	toks *token.Queue
	mem  *memory.VirtualMemory
	scopes *scope.Graph[ast.Expr]
}

// New builds a Parser over src, tokenized with lang/scanner, sharing mem and
// scopes with an eval.Context the caller has already built (typically via
// eval.NewContextFrom). Scan errors are returned immediately since a
// malformed token stream cannot be parsed at all.
func New(filename string, src []byte, mem *memory.VirtualMemory, scopes *scope.Graph[ast.Expr]) (*Parser, error) {
	toks, err := scanner.Scan(filename, src)
	if err != nil {
		return nil, err
	}
	return &Parser{toks: token.NewQueue(toks), mem: mem, scopes: scopes}, nil
}

// ParseChunk parses the entire token stream as one file (spec component I,
// "Module"): a dedicated File scope holds the file's top-level
// declarations, nested directly under whatever scope was current when
// parsing began (normally Global).
func (p *Parser) ParseChunk(name string) (*ast.Chunk, error) {
	fileScope := p.scopes.EnterNewScope(scope.File, nil)
	stmts, sp, err := p.parseStmts(token.EOF)
	if err != nil {
		p.scopes.ExitScope()
		return nil, err
	}
	eof, err := p.expect(token.EOF)
	p.scopes.ExitScope()
	if err != nil {
		return nil, err
	}
	block := &ast.Block{InnerScope: fileScope, Stmts: stmts, Sp: sp}
	return &ast.Chunk{Name: name, Block: block, FileScope: fileScope, EndOfFile: eof.Span}, nil
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	t, err := p.toks.Expect(k)
	if err != nil {
		return t, p.errorf(p.toks.Peek().Span, "%s", err)
	}
	return t, nil
}

func (p *Parser) expectOneOf(ks ...token.Kind) (token.Token, error) {
	t, err := p.toks.ExpectOneOf(ks...)
	if err != nil {
		return t, p.errorf(p.toks.Peek().Span, "%s", err)
	}
	return t, nil
}

// parseName consumes an IDENT token and returns it as a user-written Name.
func (p *Parser) parseName() (token.Name, error) {
	t, err := p.expect(token.IDENT)
	if err != nil {
		return token.Name{}, err
	}
	return token.NewName(t.Lit, t.Span), nil
}

// declareName declares name in the current scope with a self-referential
// placeholder, the forward-reference mechanism relied on by EvalBlock's
// residual fixpoint loop (lang/eval/eval.go): a later statement in the same
// block may reference name before its own declaration has been parsed.
func (p *Parser) declareName(name token.Name) error {
	if err := p.scopes.DeclareNewVariable(name, ast.Expr(&ast.NameExpr{Name: name})); err != nil {
		return &Error{Kind: ErrRedeclared, Message: err.Error(), Span: name.Span}
	}
	return nil
}

// anonymousName synthesizes a display name for an unnamed group/either/
// oneof/action/represent-as literal. A plain "anonymous_<kind>" constant
// would collide across every unnamed literal of the same kind in a file, so
// a uuid suffix is appended; memory.LiteralObject.IsAnonymous only checks
// the "anonymous" prefix, so the rewrite-on-declaration behavior it backs
// still applies.
func (p *Parser) anonymousName(kind string) token.Name {
	return token.Synthetic(fmt.Sprintf("anonymous_%s_%s", kind, uuid.NewString()))
}

// tryParseDeclName consumes a leading IDENT as an optional declaration name
// for group/either/oneof/action literals (spec §8 scenario C: `either Color
// { ... };` names the type directly after the keyword, rather than only via
// an enclosing `let`). It is not used by represent-as/default-extend, whose
// next token is always a type expression, not a bare name.
func (p *Parser) tryParseDeclName() (token.Name, bool, error) {
	if !p.toks.At(token.IDENT) {
		return token.Name{}, false, nil
	}
	name, err := p.parseName()
	if err != nil {
		return token.Name{}, false, err
	}
	if err := p.declareName(name); err != nil {
		return token.Name{}, false, err
	}
	return name, true, nil
}

// Package eval implements the compile-time evaluator (spec component F,
// §4.3): one reduction rule per ast variant, given implicit access to a
// scope graph, virtual memory, a side-effect stack, accumulated warnings
// and an error breadcrumb trail, all held by Context.
package eval

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// Phase identifies which stage of the parse/evaluate/transpile pipeline is
// running, surfaced in debug output and error context.
type Phase int

const (
	PhaseParse Phase = iota
	PhaseEvaluate
	PhaseTranspile
)

func (p Phase) String() string {
	switch p {
	case PhaseParse:
		return "parse"
	case PhaseEvaluate:
		return "evaluate"
	case PhaseTranspile:
		return "transpile"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Flags mirrors the CLI driver's contract (spec §6, "Collaborator contract:
// CLI driver"): these four knobs are the entire surface the driver needs
// from the core.
type Flags struct {
	Quiet          bool
	DebugInfo      bool
	DeveloperMode  bool
	DetailedErrors bool
}

// Context is the process-wide evaluator state (spec §5, "Process-wide
// state"): scope graph, virtual memory, side-effect stack, current phase,
// accumulated warnings, debug indentation. One Context is created per
// invocation and torn down at process exit; it is never reentrant.
type Context struct {
	Scopes *scope.Graph[ast.Expr]
	Mem    *memory.VirtualMemory

	sideEffects []bool
	Warnings    []Warning
	Phase       Phase
	debugDepth  int

	Flags Flags

	stdin  *bufio.Scanner
	stdout func(string)

	// TruePointer, FalsePointer and NothingPointer identify the prelude's
	// singleton Boolean/Nothing literals, installed by installPrelude. The
	// If rule (spec §4.3) compares a condition pointer against TruePointer.
	TruePointer    memory.Pointer
	FalsePointer   memory.Pointer
	NothingPointer memory.Pointer
}

// NewContext creates a ready-to-use Context backed by a fresh scope graph
// and virtual memory, with stdin/stdout wired to the process's own, and the
// primitive type names and boolean/nothing singletons declared in the
// global scope (spec.md does not specify a prelude; SPEC_FULL.md adds one so
// that source referring to Text, Number, true, false and nothing by name has
// something to resolve against).
func NewContext(flags Flags) *Context {
	c := &Context{
		Scopes:      scope.New[ast.Expr](),
		Mem:         memory.NewVirtualMemory(),
		sideEffects: []bool{true},
		Phase:       PhaseEvaluate,
		Flags:       flags,
	}
	c.stdin = bufio.NewScanner(os.Stdin)
	c.stdout = func(s string) { fmt.Fprint(os.Stdout, s) }
	c.installPrelude()
	c.installBuiltinMethods()
	return c
}

// NewContextFrom builds a Context over a scope graph and virtual memory the
// caller already owns, rather than fresh ones of its own. The driver (spec
// component I) uses this so the parser can intern Either variants and push
// scopes (spec §4.4, "Either"; lang/parser's scope-as-it-parses design)
// directly into the same arena the evaluator will later walk: a Context
// built by the plain NewContext would evaluate a Pointer/scope.ID minted by
// an independent parser run against the wrong arena entirely. The prelude
// and builtin methods are still installed here, into the global scope of
// the graph handed in, exactly as NewContext does for its own fresh graph.
// Callers must build scopes with scope.New (cursor left at the global
// scope) and call NewContextFrom before handing scopes/mem to the parser,
// so the prelude lands in the global scope rather than wherever the parser
// has since moved the cursor to.
func NewContextFrom(mem *memory.VirtualMemory, scopes *scope.Graph[ast.Expr], flags Flags) *Context {
	c := &Context{
		Scopes:      scopes,
		Mem:         mem,
		sideEffects: []bool{true},
		Phase:       PhaseEvaluate,
		Flags:       flags,
	}
	c.stdin = bufio.NewScanner(os.Stdin)
	c.stdout = func(s string) { fmt.Fprint(os.Stdout, s) }
	c.installPrelude()
	c.installBuiltinMethods()
	return c
}

// Memory implements builtin.EvalContext.
func (c *Context) Memory() *memory.VirtualMemory { return c.Mem }

// Stdin implements builtin.EvalContext.
func (c *Context) Stdin() func() (string, error) {
	return func() (string, error) {
		c.stdin.Scan()
		return c.stdin.Text(), c.stdin.Err()
	}
}

// Stdout implements builtin.EvalContext.
func (c *Context) Stdout() func(string) { return c.stdout }

// TrueValue implements builtin.EvalContext.
func (c *Context) TrueValue() memory.Pointer { return c.TruePointer }

// FalseValue implements builtin.EvalContext.
func (c *Context) FalseValue() memory.Pointer { return c.FalsePointer }

// SetIO redirects stdin/stdout, primarily for tests and for the driver when
// quiet mode suppresses output.
func (c *Context) SetIO(stdin *bufio.Scanner, stdout func(string)) {
	if stdin != nil {
		c.stdin = stdin
	}
	if stdout != nil {
		c.stdout = stdout
	}
}

// SideEffectsEnabled reports whether the top of the side-effect stack
// permits system-side-effecting builtins (spec §5, "Side-effect stack").
func (c *Context) SideEffectsEnabled() bool {
	return c.sideEffects[len(c.sideEffects)-1]
}

// PushSideEffects pushes a new side-effect-enabled flag. The caller must
// call the returned pop func, typically via defer, so the stack is
// balanced on every exit path including errors (spec §5).
func (c *Context) PushSideEffects(enabled bool) (pop func()) {
	c.sideEffects = append(c.sideEffects, enabled)
	return func() {
		c.sideEffects = c.sideEffects[:len(c.sideEffects)-1]
	}
}

// WithScope runs fn with the scope cursor moved to id, restoring the
// previous current scope afterward on every exit path including panics or
// errors (spec §5, "Scope cursor restoration").
func (c *Context) WithScope(id scope.ID, fn func() (ast.Expr, error)) (ast.Expr, error) {
	prev := c.Scopes.SetCurrentScope(id)
	defer c.Scopes.SetCurrentScope(prev)
	return fn()
}

func (c *Context) warn(kind WarningKind, span token.Span, message string) {
	c.Warnings = append(c.Warnings, Warning{Kind: kind, Span: span, Message: message})
}

// Package builtin implements the process-lifetime static table of compiler
// intrinsics (spec component H, §4.5): functions with no Cabin body, whose
// compile-time effect and C-emission contract are both supplied natively.
//
// builtin does not import lang/eval, to keep the dependency one-directional
// (eval depends on builtin, dispatching through it once it sees an empty
// function body with a BuiltinTag); EvalContext below is the minimal surface
// a handler needs, satisfied structurally by *eval.Context.
package builtin

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/memory"
)

// EvalContext is the subset of the evaluator's Context a builtin handler may
// use: interning results and reading numbers/text out of already-evaluated
// arguments.
type EvalContext interface {
	Memory() *memory.VirtualMemory
	// Stdin/Stdout let tests and the driver swap the builtin's I/O surface
	// without the builtin package importing os directly.
	Stdin() func() (string, error)
	Stdout() func(string)
	// TrueValue/FalseValue return the prelude's canonical Boolean
	// singletons, so a comparison builtin can return the exact pointer the
	// If rule's isTruePointer check compares against (spec §4.3, "If"),
	// rather than a fresh Boolean literal no identity check would match.
	TrueValue() memory.Pointer
	FalseValue() memory.Pointer
}

// Func is a single builtin's compile-time handler: given the already fully
// evaluated argument pointers, produce a result pointer or an error.
type Func func(ctx EvalContext, args []memory.Pointer) (memory.Pointer, error)

// ToC emits the C function body implementing a builtin, given the C names
// the transpiler chose for its parameters. It never needs EvalContext: it
// only renders text.
type ToC func(parameterNames []string) (string, error)

// Entry is one row of the builtin table: a compile-time handler paired with
// its runtime (C) emission contract.
type Entry struct {
	CompileTime Func
	ToC         ToC
}

// table is the process-lifetime static map keyed by canonical dotted name
// (spec §4.5). It is populated once, in init, and never mutated afterward.
var table = map[string]Entry{}

func register(name string, e Entry) {
	if _, exists := table[name]; exists {
		panic(fmt.Sprintf("builtin: duplicate registration for %q", name))
	}
	table[name] = e
}

// Lookup returns the Entry registered under name, and whether one exists.
func Lookup(name string) (Entry, bool) {
	e, ok := table[name]
	return e, ok
}

// Names returns every registered builtin name, for diagnostics.
func Names() []string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	return names
}

func argError(name string, want, got int) error {
	return fmt.Errorf("the builtin %q takes %d argument(s), but %d were given", name, want, got)
}

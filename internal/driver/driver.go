// Package driver wires the scanner, parser and evaluator together for one
// source file (spec component I, "Module"): the external collaborator every
// front end (CLI, editor integration, build system) is expected to call
// through rather than reimplementing the parse/eval plumbing itself.
package driver

import (
	"context"
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/eval"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/parser"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/viant/afs"
)

// Result bundles everything a caller might want after a successful parse and
// evaluate: the reduced chunk (spec §4.3's residual AST, ready to hand to an
// external C-transpiler collaborator) and the Context that produced it
// (scopes, memory, accumulated warnings).
type Result struct {
	Chunk *ast.Chunk
	Ctx   *eval.Context
}

// ParseAndEvaluate reads path, scans and parses it into a fresh scope
// graph/memory arena, and evaluates the resulting chunk. The Context is
// built before the Parser (NewContextFrom's documented ordering
// requirement) so the prelude lands in the global scope rather than
// wherever parsing has since moved the cursor to.
func ParseAndEvaluate(ctx context.Context, path string, flags eval.Flags) (*Result, error) {
	src, err := readFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	mem := memory.NewVirtualMemory()
	scopes := scope.New[ast.Expr]()
	evalCtx := eval.NewContextFrom(mem, scopes, flags)

	p, err := parser.New(path, src, mem, scopes)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	chunk, err := p.ParseChunk(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	reduced, err := evalCtx.EvalChunk(chunk)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	return &Result{Chunk: reduced, Ctx: evalCtx}, nil
}

// readFile downloads path through afs, so the driver isn't hard-wired to
// os.ReadFile and can later transparently support any afs-backed scheme
// (http, gs, s3, ...) the same way viant-linager's repository detector does.
func readFile(ctx context.Context, path string) ([]byte, error) {
	fs := afs.New()
	return fs.DownloadWithURL(ctx, path)
}

package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/parser"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/mna/mainer"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var retErr error
	for _, path := range args {
		if err := parseFile(stdio, path, c.ShowSpans); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			retErr = err
		}
	}
	return retErr
}

func parseFile(stdio mainer.Stdio, path string, showSpans bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := parser.New(path, src, memory.NewVirtualMemory(), scope.New[ast.Expr]())
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	chunk, err := p.ParseChunk(path)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	printer := ast.Printer{Output: stdio.Stdout, ShowSpans: showSpans}
	return printer.Print(chunk)
}

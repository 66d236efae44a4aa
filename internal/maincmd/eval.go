package maincmd

import (
	"context"
	"fmt"

	"github.com/cabin-lang/cabin/internal/driver"
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/eval"
	"github.com/mna/mainer"
)

func (c *Cmd) Eval(ctx context.Context, stdio mainer.Stdio, args []string) error {
	flags := eval.Flags{
		Quiet:          c.Quiet,
		DebugInfo:      c.DebugInfo,
		DeveloperMode:  c.DeveloperMode,
		DetailedErrors: c.DetailedErrors,
	}

	var retErr error
	for _, path := range args {
		if err := evalFile(ctx, stdio, path, flags, c.ShowSpans); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			retErr = err
		}
	}
	return retErr
}

func evalFile(ctx context.Context, stdio mainer.Stdio, path string, flags eval.Flags, showSpans bool) error {
	res, err := driver.ParseAndEvaluate(ctx, path, flags)
	if err != nil {
		return err
	}

	printer := ast.Printer{Output: stdio.Stdout, ShowSpans: showSpans}
	if err := printer.Print(res.Chunk); err != nil {
		return err
	}

	if !flags.Quiet {
		for _, w := range res.Ctx.Warnings {
			fmt.Fprintf(stdio.Stderr, "warning: %s\n", w)
		}
	}
	return nil
}

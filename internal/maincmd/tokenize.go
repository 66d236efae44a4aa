package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cabin-lang/cabin/lang/scanner"
	"github.com/mna/mainer"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var retErr error
	for _, path := range args {
		if err := tokenizeFile(stdio, path); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			retErr = err
		}
	}
	return retErr
}

func tokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	toks, err := scanner.Scan(path, src)
	for _, t := range toks {
		fmt.Fprintf(stdio.Stdout, "%s: %s\n", t.Span, t)
	}
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	return nil
}

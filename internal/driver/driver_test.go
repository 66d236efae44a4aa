package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cabin-lang/cabin/internal/driver"
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/eval"
	"github.com/stretchr/testify/require"
)

func TestParseAndEvaluateArithmeticFolds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cabin")
	require.NoError(t, os.WriteFile(path, []byte(`let x = 1 + 2;`), 0o644))

	res, err := driver.ParseAndEvaluate(context.Background(), path, eval.Flags{})
	require.NoError(t, err)
	require.NotNil(t, res.Chunk)
	require.Len(t, res.Chunk.Block.Stmts, 1)
	decl, ok := res.Chunk.Block.Stmts[0].(*ast.Declaration)
	require.True(t, ok)
	_, ok = decl.Init.(*ast.PointerExpr)
	require.True(t, ok, "1 + 2 should fold to a pointer")
}

func TestParseAndEvaluateMissingFile(t *testing.T) {
	_, err := driver.ParseAndEvaluate(context.Background(), "/nonexistent/path/main.cabin", eval.Flags{})
	require.Error(t, err)
}

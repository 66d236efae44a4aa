package parser_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/eval"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
	"github.com/cabin-lang/cabin/lang/parser"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newParser builds a Parser sharing mem/scopes with a fresh eval.Context, the
// wiring lang/eval/context.go's NewContextFrom doc comment describes: the
// context must be built first, while the scope cursor still sits at Global,
// so the prelude lands there rather than wherever parsing later moves the
// cursor.
func newParser(t *testing.T, src string) (*parser.Parser, *eval.Context) {
	t.Helper()
	mem := memory.NewVirtualMemory()
	scopes := scope.New[ast.Expr]()
	ctx := eval.NewContextFrom(mem, scopes, eval.Flags{})
	p, err := parser.New("test.cabin", []byte(src), mem, scopes)
	require.NoError(t, err)
	return p, ctx
}

func TestParseArithmeticDeclaration(t *testing.T) {
	p, _ := newParser(t, `let x = 1 + 2 * 3;`)
	chunk, err := p.ParseChunk("test.cabin")
	require.NoError(t, err)
	require.Len(t, chunk.Block.Stmts, 1)

	decl, ok := chunk.Block.Stmts[0].(*ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name.Text)

	// 1 + (2 * 3) lowers to 1.plus((2.times(3))): the outer call's callee is
	// a field access on the "1" pointer naming "plus".
	call, ok := decl.Init.(*ast.FunctionCall)
	require.True(t, ok)
	access, ok := call.Callee.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "plus", access.Field.Text)
	require.Len(t, call.RuntimeArgs, 1)

	rhsCall, ok := call.RuntimeArgs[0].(*ast.FunctionCall)
	require.True(t, ok)
	rhsAccess, ok := rhsCall.Callee.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "times", rhsAccess.Field.Text)
}

func TestParseComparisonPrecedenceBelowArithmetic(t *testing.T) {
	p, _ := newParser(t, `let x = 1 + 2 < 3;`)
	chunk, err := p.ParseChunk("test.cabin")
	require.NoError(t, err)
	decl := chunk.Block.Stmts[0].(*ast.Declaration)

	// `<` binds looser than `+`, so the outer call is is_less_than.
	call, ok := decl.Init.(*ast.FunctionCall)
	require.True(t, ok)
	access, ok := call.Callee.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "is_less_than", access.Field.Text)
}

func TestParsePipeOperator(t *testing.T) {
	p, _ := newParser(t, `let y = x -> f(2);`)
	chunk, err := p.ParseChunk("test.cabin")
	require.NoError(t, err)
	decl := chunk.Block.Stmts[0].(*ast.Declaration)

	// x -> f(2) rewrites to f(x, 2).
	call, ok := decl.Init.(*ast.FunctionCall)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "f", callee.Name.Text)
	require.Len(t, call.RuntimeArgs, 2)
	first, ok := call.RuntimeArgs[0].(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "x", first.Name.Text)
}

func TestParseEitherScenario(t *testing.T) {
	// spec §8 scenario C's literal example.
	p, _ := newParser(t, `either Color { Red, Green, Blue }; let c = Color.Green;`)
	chunk, err := p.ParseChunk("test.cabin")
	require.NoError(t, err)
	require.Len(t, chunk.Block.Stmts, 2)

	decl, ok := chunk.Block.Stmts[0].(*ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, "Color", decl.Name.Text)

	either, ok := decl.Init.(*object.Either)
	require.True(t, ok)
	require.Len(t, either.Variants, 3)
	assert.Equal(t, "Red", either.Variants[0].Name.Text)
	assert.Equal(t, "Green", either.Variants[1].Name.Text)
	assert.Equal(t, "Blue", either.Variants[2].Name.Text)

	cDecl, ok := chunk.Block.Stmts[1].(*ast.Declaration)
	require.True(t, ok)
	access, ok := cDecl.Init.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "Green", access.Field.Text)
}

func TestParseActionDeclaration(t *testing.T) {
	// spec §8 scenario B's literal example.
	p, _ := newParser(t, `let greet = action(name: Text): Text { tail is "hi " + name; };`)
	chunk, err := p.ParseChunk("test.cabin")
	require.NoError(t, err)
	decl := chunk.Block.Stmts[0].(*ast.Declaration)
	fd, ok := decl.Init.(*object.FunctionDeclaration)
	require.True(t, ok)
	require.Len(t, fd.RuntimeParameters, 1)
	assert.Equal(t, "name", fd.RuntimeParameters[0].Name.Text)
	require.NotNil(t, fd.Body)
	require.Len(t, fd.Body.Stmts, 1)
	_, ok = fd.Body.Stmts[0].(*ast.Tail)
	assert.True(t, ok)
}

func TestParseIfElse(t *testing.T) {
	p, _ := newParser(t, `if true { tail is 1; } else { tail is 2; }`)
	chunk, err := p.ParseChunk("test.cabin")
	require.NoError(t, err)
	stmt, ok := chunk.Block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	ifExpr, ok := stmt.Expr.(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifExpr.False)
}

func TestParseObjectConstructor(t *testing.T) {
	p, _ := newParser(t, `group Point { x: Number, y: Number }; let origin = Point { x = 0, y = 0 };`)
	chunk, err := p.ParseChunk("test.cabin")
	require.NoError(t, err)
	decl := chunk.Block.Stmts[1].(*ast.Declaration)
	ctor, ok := decl.Init.(*ast.ObjectConstructor)
	require.True(t, ok)
	require.Len(t, ctor.Fields, 2)
	assert.Equal(t, "x", ctor.Fields[0].Name.Text)
}

func TestParseShadowingRejected(t *testing.T) {
	_, ctx := newParser(t, "")
	_ = ctx
	p, err := parser.New("test.cabin", []byte(`let x = 1; let x = 2;`), memory.NewVirtualMemory(), scope.New[ast.Expr]())
	require.NoError(t, err)
	_, err = p.ParseChunk("test.cabin")
	assert.Error(t, err)
}

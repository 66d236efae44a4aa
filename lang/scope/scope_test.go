package scope_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(s string) token.Name { return token.NewName(s, token.Unknown()) }

func TestScopeMonotonicity(t *testing.T) {
	g := scope.New[int]()
	g.EnterNewScope(scope.Block, nil)
	id2 := g.EnterNewScope(scope.Block, nil)
	require.True(t, g.ExitScope())
	require.True(t, g.ExitScope())
	require.False(t, g.ExitScope(), "exiting the global scope must fail")

	// id2 must still be valid to address even after popping past it.
	assert.Equal(t, scope.Block, g.Scope(id2).Kind())
}

func TestShadowingProhibited(t *testing.T) {
	g := scope.New[int]()
	require.NoError(t, g.DeclareNewVariable(name("x"), 1))
	err := g.DeclareNewVariable(name("x"), 2)
	assert.Error(t, err)

	g.EnterNewScope(scope.Block, nil)
	err = g.DeclareNewVariable(name("x"), 3)
	assert.Error(t, err, "shadowing an ancestor scope is also forbidden")
}

func TestReassignWalksAncestors(t *testing.T) {
	g := scope.New[int]()
	require.NoError(t, g.DeclareNewVariable(name("x"), 1))
	inner := g.EnterNewScope(scope.Block, nil)

	require.NoError(t, g.ReassignVariableFrom(inner, name("x"), 42))
	v, ok := g.GetVariable(name("x"))
	require.True(t, ok)
	assert.Equal(t, 42, v)

	err := g.ReassignVariableFrom(inner, name("never-declared"), 1)
	assert.Error(t, err)
}

func TestExitToLabel(t *testing.T) {
	g := scope.New[int]()
	lbl := name("outer")
	g.EnterNewScope(scope.Block, &lbl)
	g.EnterNewScope(scope.Block, nil)
	g.EnterNewScope(scope.Block, nil)

	require.NoError(t, g.ExitToLabel(lbl))
	assert.Equal(t, lbl.Text, mustLabel(t, g))

	err := g.ExitToLabel(name("missing"))
	assert.Error(t, err)
}

func mustLabel(t *testing.T, g *scope.Graph[int]) string {
	t.Helper()
	l, ok := g.Scope(g.Current()).Label()
	require.True(t, ok)
	return l.Text
}

func TestClosestVariables(t *testing.T) {
	g := scope.New[int]()
	require.NoError(t, g.DeclareNewVariable(name("length"), 1))
	require.NoError(t, g.DeclareNewVariable(name("height"), 2))
	require.NoError(t, g.DeclareNewVariable(name("depth"), 3))

	got := g.ClosestVariables("lenght", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "length", got[0].Text)
}

func TestDefaultExtensions(t *testing.T) {
	g := scope.New[string]()
	g.AddDefaultExtension("outer-ext")
	g.EnterNewScope(scope.Block, nil)
	g.AddDefaultExtension("inner-ext")

	exts := g.DefaultExtensions()
	require.Len(t, exts, 2)
	assert.Equal(t, "inner-ext", exts[0], "innermost registrations come first")
	assert.Equal(t, "outer-ext", exts[1])
}

func TestDeclareNewVariableFromID(t *testing.T) {
	g := scope.New[int]()
	callee := g.EnterNewScope(scope.Function, nil)
	g.ExitScope()

	require.NoError(t, g.DeclareNewVariableIn(callee, name("x"), 7))
	v, ok := g.GetVariableFrom(callee, name("x"))
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = g.GetVariable(name("x"))
	assert.False(t, ok, "declaring into another scope must not leak into the current one")
}

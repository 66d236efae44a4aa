package memory_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(s string) token.Name { return token.NewName(s, token.Unknown()) }

func newNumber(vm *memory.VirtualMemory, v float64) memory.Pointer {
	obj := memory.NewLiteralObject(name("Number"), 0, token.Unknown())
	obj.InternalFields["value"] = memory.NumberField(v)
	return vm.Store(obj)
}

func TestStoreAssignsCompactAddresses(t *testing.T) {
	vm := memory.NewVirtualMemory()
	p0 := newNumber(vm, 1)
	p1 := newNumber(vm, 2)
	assert.Equal(t, memory.Pointer(0), p0)
	assert.Equal(t, memory.Pointer(1), p1)
}

func TestStoreStampsAddress(t *testing.T) {
	vm := memory.NewVirtualMemory()
	obj := memory.NewLiteralObject(name("Number"), 0, token.Unknown())
	ptr := vm.Store(obj)
	require.NotNil(t, obj.Address)
	assert.Equal(t, ptr, *obj.Address)
}

func TestReplacePreservesAddress(t *testing.T) {
	vm := memory.NewVirtualMemory()
	ptr := newNumber(vm, 1)

	replacement := memory.NewLiteralObject(name("Function"), 0, token.Unknown())
	vm.Replace(ptr, replacement)

	got, ok := vm.Get(ptr)
	require.True(t, ok)
	assert.Equal(t, "Function", got.TypeName.Text)
	assert.Equal(t, ptr, *got.Address)
}

func TestGetMissing(t *testing.T) {
	vm := memory.NewVirtualMemory()
	_, ok := vm.Get(memory.Pointer(42))
	assert.False(t, ok)
}

func TestLiteralObjectFieldOrder(t *testing.T) {
	obj := memory.NewLiteralObject(name("Group"), 0, token.Unknown())
	obj.SetField(name("z"), memory.Pointer(1))
	obj.SetField(name("a"), memory.Pointer(2))
	obj.SetField(name("z"), memory.Pointer(3)) // overwrite must not reorder

	names := obj.FieldNames()
	require.Len(t, names, 2)
	assert.Equal(t, "z", names[0].Text)
	assert.Equal(t, "a", names[1].Text)

	ptr, ok := obj.Field(name("z"))
	require.True(t, ok)
	assert.Equal(t, memory.Pointer(3), ptr)
}

func TestIsAnonymous(t *testing.T) {
	obj := memory.NewLiteralObject(name("Function"), 0, token.Unknown())
	obj.Name = name("anonymous function #3")
	assert.True(t, obj.IsAnonymous())

	obj.Name = name("square")
	assert.False(t, obj.IsAnonymous())
}

func TestInternalFieldValueAccessors(t *testing.T) {
	v := memory.NumberField(3.5)
	n, ok := v.Number()
	require.True(t, ok)
	assert.Equal(t, 3.5, n)

	_, ok = v.Text()
	assert.False(t, ok, "Text accessor must report false for a non-text value")

	opt := memory.OptionalExprField(nil)
	_, present, ok := opt.OptionalExpr()
	require.True(t, ok)
	assert.False(t, present)
}

func TestScopeIDRoundTrip(t *testing.T) {
	g := scope.New[memory.Pointer]()
	inner := g.EnterNewScope(scope.Block, nil)
	obj := memory.NewLiteralObject(name("Function"), inner, token.Unknown())
	assert.Equal(t, inner, obj.OuterScope)
}

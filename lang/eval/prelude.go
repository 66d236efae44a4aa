package eval

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/token"
)

// installPrelude declares the primitive type names and the Boolean/Nothing
// singletons in the global scope, so that ordinary Name lookups (spec
// §4.3, "Name") resolve them like any other binding.
func (c *Context) installPrelude() {
	for _, name := range []string{"Number", "Text", "Boolean", "Nothing", "Anything", "List"} {
		c.declareGlobalType(name)
	}

	trueObj := memory.NewLiteralObject(token.Synthetic("Boolean"), c.Scopes.Current(), token.Unknown())
	trueObj.InternalFields["value"] = memory.BooleanField(true)
	c.TruePointer = c.Mem.Store(trueObj)
	c.declareGlobal("true", c.TruePointer)

	falseObj := memory.NewLiteralObject(token.Synthetic("Boolean"), c.Scopes.Current(), token.Unknown())
	falseObj.InternalFields["value"] = memory.BooleanField(false)
	c.FalsePointer = c.Mem.Store(falseObj)
	c.declareGlobal("false", c.FalsePointer)

	nothingObj := memory.NewLiteralObject(token.Synthetic("Nothing"), c.Scopes.Current(), token.Unknown())
	c.NothingPointer = c.Mem.Store(nothingObj)
	c.declareGlobal("nothing", c.NothingPointer)
}

// declareGlobalType interns an empty Group-shaped literal named name and
// binds it under its own name in the current (global) scope.
func (c *Context) declareGlobalType(name string) memory.Pointer {
	obj := memory.NewLiteralObject(token.Synthetic("Group"), c.Scopes.Current(), token.Unknown())
	obj.Name = token.Synthetic(name)
	ptr := c.Mem.Store(obj)
	c.declareGlobal(name, ptr)
	return ptr
}

func (c *Context) declareGlobal(name string, ptr memory.Pointer) {
	_ = c.Scopes.DeclareNewVariable(token.Synthetic(name), ast.Expr(&ast.PointerExpr{Addr: int(ptr)}))
}

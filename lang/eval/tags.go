package eval

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/token"
)

// findTag scans an already-evaluated tag list for a literal whose TypeName
// matches typeName, returning its LiteralObject.
func (c *Context) findTag(tags []ast.Expr, typeName string) (*memory.LiteralObject, bool) {
	for _, t := range tags {
		ptr, ok := t.(*ast.PointerExpr)
		if !ok {
			continue
		}
		obj, ok := c.Mem.Get(memory.Pointer(ptr.Addr))
		if ok && obj.TypeName.Text == typeName {
			return obj, true
		}
	}
	return nil, false
}

// textField reads a field on obj that is expected to point to a Text
// literal (e.g. BuiltinTag.internal_name, RuntimeTag.reason).
func (c *Context) textField(obj *memory.LiteralObject, field string) (string, bool) {
	ptr, ok := obj.Field(token.Synthetic(field))
	if !ok {
		return "", false
	}
	target, ok := c.Mem.Get(ptr)
	if !ok || target.TypeName.Text != "Text" {
		return "", false
	}
	v, ok := target.InternalFields["value"].Text()
	return v, ok
}

// builtinInternalName reads a BuiltinTag's internal_name field.
func (c *Context) builtinInternalName(tags []ast.Expr) (string, bool) {
	obj, ok := c.findTag(tags, "BuiltinTag")
	if !ok {
		return "", false
	}
	return c.textField(obj, "internal_name")
}

// hasSystemSideEffectsTag reports whether tags carries the zero-field
// system_side_effects marker.
func (c *Context) hasSystemSideEffectsTag(tags []ast.Expr) bool {
	_, ok := c.findTag(tags, "SystemSideEffects")
	return ok
}

// runtimeTagReason reads a RuntimeTag's reason field, if present.
func (c *Context) runtimeTagReason(tags []ast.Expr) (string, bool) {
	obj, ok := c.findTag(tags, "RuntimeTag")
	if !ok {
		return "", false
	}
	return c.textField(obj, "reason")
}

// warningSuppressed reports whether tags carries a WarningSuppressor
// naming kind.
func (c *Context) warningSuppressed(tags []ast.Expr, kind WarningKind) bool {
	for _, t := range tags {
		ptr, ok := t.(*ast.PointerExpr)
		if !ok {
			continue
		}
		obj, ok := c.Mem.Get(memory.Pointer(ptr.Addr))
		if !ok || obj.TypeName.Text != "WarningSuppressor" {
			continue
		}
		suppressedPtr, ok := obj.Field(token.Synthetic("warning"))
		if !ok {
			continue
		}
		suppressed, ok := c.Mem.Get(suppressedPtr)
		if ok && suppressed.Name.Text == kind.String() {
			return true
		}
	}
	return false
}

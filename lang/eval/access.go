package eval

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
)

// evalFieldAccess implements the Field access rule (spec §4.3, "Field
// access"), including represent-as/default-extend fallback (SPEC_FULL.md
// §4, first-match in scope-ancestor order) and method binding via
// VirtualMemory.Replace.
func (c *Context) evalFieldAccess(a *ast.FieldAccess) (ast.Expr, error) {
	recv, err := c.EvalExpr(a.Receiver)
	if err != nil {
		return nil, err
	}

	ptr, ok := recv.(*ast.PointerExpr)
	if !ok {
		return &ast.FieldAccess{Receiver: recv, Field: a.Field, Sp: a.Sp}, nil
	}

	receiverPtr := memory.Pointer(ptr.Addr)
	obj, ok := c.Mem.Get(receiverPtr)
	if !ok {
		return nil, &Error{Kind: ErrInternal, Message: "field access: dangling receiver pointer", Span: a.Sp}
	}

	if obj.FieldAccessType == memory.AccessEither {
		variants, _ := obj.InternalFields["variants"].LiteralPairList()
		for _, v := range variants {
			if v.Name.Key() == a.Field.Key() {
				return &ast.PointerExpr{Addr: int(v.Pointer), Sp: a.Sp}, nil
			}
		}
		return nil, &Error{
			Kind:    ErrMissingField,
			Message: fmt.Sprintf("%s has no variant %q", obj.Name.Text, a.Field.Text),
			Span:    a.Sp,
		}
	}

	// Normal and Group policies are treated identically (spec §9, "Open
	// question": Group has no branch of its own in the source evaluator).
	fieldPtr, found := obj.Field(a.Field)
	if !found {
		fieldPtr, found = c.lookupDefaultExtension(receiverPtr, obj, a.Field)
	}
	if !found {
		return nil, &Error{
			Kind:    ErrMissingField,
			Message: fmt.Sprintf("%s has no field %q", obj.Name.Text, a.Field.Text),
			Span:    a.Sp,
		}
	}

	if target, ok := c.Mem.Get(fieldPtr); ok && target.TypeName.Text == "Function" {
		if fd, err := object.FunctionFromLiteral(target); err == nil {
			bound := fd.WithThisObject(receiverPtr)
			c.Mem.Replace(fieldPtr, bound.ToLiteral())
		}
	}

	return &ast.PointerExpr{Addr: int(fieldPtr), Sp: a.Sp}, nil
}

// lookupDefaultExtension walks the scope-ancestor chain's registered
// default extensions (nearest scope first) for a RepresentAs literal whose
// type_to_represent accepts receiver, and whose field list names field.
func (c *Context) lookupDefaultExtension(receiver memory.Pointer, receiverObj *memory.LiteralObject, field interface {
	Key() string
}) (memory.Pointer, bool) {
	for _, ext := range c.Scopes.DefaultExtensions() {
		extPtr, ok := ext.(*ast.PointerExpr)
		if !ok {
			continue
		}
		extObj, ok := c.Mem.Get(memory.Pointer(extPtr.Addr))
		if !ok || extObj.TypeName.Text != "RepresentAs" {
			continue
		}
		ra, err := object.RepresentAsFromLiteral(extObj)
		if err != nil {
			continue
		}
		typeToRepresentPtr, ok := ra.TypeToRepresent.(*ast.PointerExpr)
		if !ok {
			continue
		}
		if !c.isAssignableTo(receiver, memory.Pointer(typeToRepresentPtr.Addr)) {
			continue
		}
		for _, gf := range ra.Fields {
			if gf.Name.Key() != field.Key() {
				continue
			}
			if vp, ok := gf.Value.(*ast.PointerExpr); ok {
				return memory.Pointer(vp.Addr), true
			}
		}
	}
	return 0, false
}

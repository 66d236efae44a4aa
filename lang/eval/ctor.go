package eval

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
)

// evalObjectConstructor implements the Object constructor rule (spec
// §4.3, "Object constructor").
func (c *Context) evalObjectConstructor(oc *ast.ObjectConstructor) (ast.Expr, error) {
	typ, err := c.EvalExpr(oc.Type)
	if err != nil {
		return nil, err
	}

	typePtr, ok := typ.(*ast.PointerExpr)
	if !ok {
		fields, err := c.evalFieldInits(oc.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectConstructor{Type: typ, Fields: fields, Sp: oc.Sp}, nil
	}

	typeObj, ok := c.Mem.Get(memory.Pointer(typePtr.Addr))
	if !ok {
		return nil, &Error{Kind: ErrInternal, Message: "object constructor: dangling type pointer", Span: oc.Sp}
	}

	fieldInits := oc.Fields
	if typeObj.TypeName.Text == "Group" {
		if gd, err := object.GroupFromLiteral(typeObj); err == nil {
			fieldInits = mergeDefaultFields(gd.Fields, oc.Fields)
		}
	}

	resultFields := make([]ast.FieldInit, len(fieldInits))
	allPointers := true
	for i, fi := range fieldInits {
		v, err := c.EvalExpr(fi.Value)
		if err != nil {
			return nil, err
		}
		resultFields[i] = ast.FieldInit{Name: fi.Name, Value: v, Tags: fi.Tags}
		if _, ok := v.(*ast.PointerExpr); !ok {
			allPointers = false
		}
	}

	if !allPointers {
		return &ast.ObjectConstructor{Type: typ, Fields: resultFields, Sp: oc.Sp}, nil
	}

	obj := memory.NewLiteralObject(typeObj.Name, c.Scopes.Current(), oc.Sp)
	for _, fi := range resultFields {
		ptr := fi.Value.(*ast.PointerExpr)
		obj.SetField(fi.Name, memory.Pointer(ptr.Addr))
	}
	result := c.Mem.Store(obj)
	return &ast.PointerExpr{Addr: int(result), Sp: oc.Sp}, nil
}

func (c *Context) evalFieldInits(in []ast.FieldInit) ([]ast.FieldInit, error) {
	out := make([]ast.FieldInit, len(in))
	for i, fi := range in {
		v, err := c.EvalExpr(fi.Value)
		if err != nil {
			return nil, err
		}
		out[i] = ast.FieldInit{Name: fi.Name, Value: v, Tags: fi.Tags}
	}
	return out, nil
}

// mergeDefaultFields overlays explicit field initializers on top of a
// group's default field list, preserving the group's declared field order
// and appending any explicit field the group didn't declare (spec §4.3,
// "Object constructor": "merge default fields under any explicit fields").
func mergeDefaultFields(groupFields []object.GroupField, explicit []ast.FieldInit) []ast.FieldInit {
	explicitByName := make(map[string]ast.FieldInit, len(explicit))
	for _, fi := range explicit {
		explicitByName[fi.Name.Key()] = fi
	}

	merged := make([]ast.FieldInit, 0, len(groupFields)+len(explicit))
	seen := make(map[string]bool, len(groupFields))
	for _, gf := range groupFields {
		seen[gf.Name.Key()] = true
		if fi, ok := explicitByName[gf.Name.Key()]; ok {
			merged = append(merged, fi)
			continue
		}
		if gf.Value != nil {
			merged = append(merged, ast.FieldInit{Name: gf.Name, Value: gf.Value})
		}
	}
	for _, fi := range explicit {
		if !seen[fi.Name.Key()] {
			merged = append(merged, fi)
		}
	}
	return merged
}

package eval

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/object"
)

// evalParameterList evaluates each parameter's declared type, leaving the
// name untouched.
func (c *Context) evalParameterList(params []*object.Parameter) ([]*object.Parameter, error) {
	out := make([]*object.Parameter, len(params))
	for i, p := range params {
		var paramType ast.Expr
		if p.ParameterType != nil {
			v, err := c.EvalExpr(p.ParameterType)
			if err != nil {
				return nil, err
			}
			paramType = v
		}
		out[i] = &object.Parameter{Name: p.Name, ParameterType: paramType, OuterScope: p.OuterScope, Sp: p.Sp}
	}
	return out, nil
}

func (c *Context) evalGroupFields(fields []object.GroupField) ([]object.GroupField, error) {
	out := make([]object.GroupField, len(fields))
	for i, gf := range fields {
		var value ast.Expr
		if gf.Value != nil {
			v, err := c.EvalExpr(gf.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		var declaredType ast.Expr
		if gf.DeclaredType != nil {
			v, err := c.EvalExpr(gf.DeclaredType)
			if err != nil {
				return nil, err
			}
			declaredType = v
		}
		out[i] = object.GroupField{Name: gf.Name, Value: value, DeclaredType: declaredType}
	}
	return out, nil
}

// evalFunctionDeclaration implements the literal-convertible domain rule for
// `action` literals (spec §4.4): parameter types, return type and tags are
// evaluated; the body is left unevaluated (it is only ever evaluated when
// the function is called) and the result is interned unconditionally, since
// a function's shape never depends on values unknown until runtime.
func (c *Context) evalFunctionDeclaration(fd *object.FunctionDeclaration) (ast.Expr, error) {
	ctParams, err := c.evalParameterList(fd.CompileTimeParameters)
	if err != nil {
		return nil, err
	}
	rtParams, err := c.evalParameterList(fd.RuntimeParameters)
	if err != nil {
		return nil, err
	}
	var returnType ast.Expr
	if fd.ReturnType != nil {
		rt, err := c.EvalExpr(fd.ReturnType)
		if err != nil {
			return nil, err
		}
		returnType = rt
	}
	tags, err := c.evalExprList(fd.Tags)
	if err != nil {
		return nil, err
	}

	anon := &object.FunctionDeclaration{
		CompileTimeParameters: ctParams,
		RuntimeParameters:     rtParams,
		Body:                  fd.Body,
		ReturnType:            returnType,
		ThisObject:            fd.ThisObject,
		Tags:                  tags,
		OuterScope:            fd.OuterScope,
		InnerScope:            fd.InnerScope,
		Name:                  fd.Name,
		Sp:                    fd.Sp,
	}
	ptr := c.Mem.Store(anon.ToLiteral())
	return &ast.PointerExpr{Addr: int(ptr), Sp: fd.Sp}, nil
}

// evalGroupDeclaration implements the literal-convertible domain rule for
// `group` literals (spec §4.4).
func (c *Context) evalGroupDeclaration(g *object.GroupDeclaration) (ast.Expr, error) {
	fields, err := c.evalGroupFields(g.Fields)
	if err != nil {
		return nil, err
	}
	tags, err := c.evalExprList(g.Tags)
	if err != nil {
		return nil, err
	}
	gd := &object.GroupDeclaration{Fields: fields, Tags: tags, OuterScope: g.OuterScope, InnerScope: g.InnerScope, Name: g.Name, Sp: g.Sp}
	ptr := c.Mem.Store(gd.ToLiteral())
	return &ast.PointerExpr{Addr: int(ptr), Sp: g.Sp}, nil
}

// evalEither implements the literal-convertible domain rule for `either`
// literals (spec §4.4). Variants are already-interned (Name, Pointer) pairs
// by the time the parser builds this node, one empty literal per variant.
func (c *Context) evalEither(e *object.Either) (ast.Expr, error) {
	ptr := c.Mem.Store(e.ToLiteral())
	return &ast.PointerExpr{Addr: int(ptr), Sp: e.Sp}, nil
}

// evalOneOf implements the literal-convertible domain rule for `oneof`
// literals (SPEC_FULL.md §4 supplement).
func (c *Context) evalOneOf(o *object.OneOf) (ast.Expr, error) {
	choices, err := c.evalExprList(o.Choices)
	if err != nil {
		return nil, err
	}
	oo := &object.OneOf{CompileTimeParameters: o.CompileTimeParameters, Choices: choices, OuterScope: o.OuterScope, Name: o.Name, Sp: o.Sp}
	ptr := c.Mem.Store(oo.ToLiteral())
	return &ast.PointerExpr{Addr: int(ptr), Sp: o.Sp}, nil
}

// evalRepresentAs implements the literal-convertible domain rule for
// `represent ... as ...` literals (spec §4.4).
func (c *Context) evalRepresentAs(r *object.RepresentAs) (ast.Expr, error) {
	typeToRepresent, err := c.EvalExpr(r.TypeToRepresent)
	if err != nil {
		return nil, err
	}
	typeToRepresentAs, err := c.EvalExpr(r.TypeToRepresentAs)
	if err != nil {
		return nil, err
	}
	fields, err := c.evalGroupFields(r.Fields)
	if err != nil {
		return nil, err
	}
	ctParams, err := c.evalParameterList(r.CompileTimeParameters)
	if err != nil {
		return nil, err
	}
	ra := &object.RepresentAs{
		TypeToRepresent:       typeToRepresent,
		TypeToRepresentAs:     typeToRepresentAs,
		Fields:                fields,
		CompileTimeParameters: ctParams,
		OuterScope:            r.OuterScope,
		InnerScope:            r.InnerScope,
		Name:                  r.Name,
		Sp:                    r.Sp,
	}
	ptr := c.Mem.Store(ra.ToLiteral())
	return &ast.PointerExpr{Addr: int(ptr), Sp: r.Sp}, nil
}

// evalParameter implements the literal-convertible domain rule for a bare
// Parameter expression evaluated outside of a function's parameter list
// (e.g. as a represent-as compile-time parameter reference).
func (c *Context) evalParameter(p *object.Parameter) (ast.Expr, error) {
	params, err := c.evalParameterList([]*object.Parameter{p})
	if err != nil {
		return nil, err
	}
	ptr := c.Mem.Store(params[0].ToLiteral())
	return &ast.PointerExpr{Addr: int(ptr), Sp: p.Sp}, nil
}

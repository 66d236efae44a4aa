package object

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// RepresentAs is a `represent <T> as <U> { ... }` literal: a conformance of
// TypeToRepresent onto TypeToRepresentAs, with field overrides and its own
// compile-time parameters (spec §4.4, "RepresentAs"). Whether a given
// RepresentAs is registered as a default extension is a property of the
// enclosing DefaultExtend statement, not of the literal itself.
type RepresentAs struct {
	TypeToRepresent   ast.Expr
	TypeToRepresentAs ast.Expr
	Fields            []GroupField
	CompileTimeParameters []*Parameter

	OuterScope scope.ID
	InnerScope scope.ID
	Name       token.Name
	Sp         token.Span
}

func (*RepresentAs) expr() {}

func (r *RepresentAs) Span() token.Span { return r.Sp }
func (r *RepresentAs) Format(f fmt.State, verb rune) { format(f, verb, "represent as") }
func (r *RepresentAs) Walk(v ast.Visitor) {
	walkExprs(v, r.TypeToRepresent, r.TypeToRepresentAs)
	for _, gf := range r.Fields {
		walkExprs(v, gf.Value, gf.DeclaredType)
	}
	for _, p := range r.CompileTimeParameters {
		ast.Walk(v, p)
	}
}

const typeNameRepresentAs = "RepresentAs"

func (r *RepresentAs) ToLiteral() *memory.LiteralObject {
	obj := memory.NewLiteralObject(token.Synthetic(typeNameRepresentAs), r.OuterScope, r.Sp)
	obj.Name = r.Name
	innerScope := r.InnerScope
	obj.InnerScope = &innerScope

	obj.InternalFields["type_to_represent"] = memory.ExprField(r.TypeToRepresent)
	obj.InternalFields["type_to_represent_as"] = memory.ExprField(r.TypeToRepresentAs)
	fieldInits := make([]ast.FieldInit, len(r.Fields))
	for i, gf := range r.Fields {
		fi := fieldInitFromGroupField(gf)
		if gf.DeclaredType != nil {
			fi.Tags = []ast.Expr{gf.DeclaredType}
		}
		fieldInits[i] = fi
	}
	obj.InternalFields["fields"] = memory.FieldListField(fieldInits)
	obj.InternalFields["compile_time_parameters"] = memory.ParameterListField(toParameterValues(r.CompileTimeParameters))
	return obj
}

func RepresentAsFromLiteral(obj *memory.LiteralObject) (*RepresentAs, error) {
	if obj.TypeName.Text != typeNameRepresentAs {
		return nil, errTypeMismatch(typeNameRepresentAs, obj.TypeName.Text)
	}
	typeToRepresent, ok := obj.InternalFields["type_to_represent"].Expr()
	if !ok {
		return nil, fmt.Errorf("represent-as literal missing internal field %q", "type_to_represent")
	}
	typeToRepresentAs, ok := obj.InternalFields["type_to_represent_as"].Expr()
	if !ok {
		return nil, fmt.Errorf("represent-as literal missing internal field %q", "type_to_represent_as")
	}
	fieldInits, ok := obj.InternalFields["fields"].FieldList()
	if !ok {
		return nil, fmt.Errorf("represent-as literal missing internal field %q", "fields")
	}
	fields := make([]GroupField, len(fieldInits))
	for i, fi := range fieldInits {
		gf := GroupField{Name: fi.Name, Value: fi.Value}
		if len(fi.Tags) == 1 {
			gf.DeclaredType = fi.Tags[0]
		}
		fields[i] = gf
	}
	ctParams, ok := obj.InternalFields["compile_time_parameters"].ParameterList()
	if !ok {
		return nil, fmt.Errorf("represent-as literal missing internal field %q", "compile_time_parameters")
	}

	var innerScope scope.ID
	if obj.InnerScope != nil {
		innerScope = *obj.InnerScope
	}

	return &RepresentAs{
		TypeToRepresent:       typeToRepresent,
		TypeToRepresentAs:     typeToRepresentAs,
		Fields:                fields,
		CompileTimeParameters: parametersFromValues(ctParams, obj.OuterScope),
		OuterScope:            obj.OuterScope,
		InnerScope:            innerScope,
		Name:                  obj.Name,
		Sp:                    obj.Span,
	}, nil
}

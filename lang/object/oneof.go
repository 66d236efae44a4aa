package object

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// OneOf is a `oneof` literal: an untagged union of the given choice
// expressions (each a group, either, or other type), optionally generic
// over a list of compile-time parameters (spec §4.4 bullet list).
type OneOf struct {
	CompileTimeParameters []token.Name
	Choices               []ast.Expr
	OuterScope            scope.ID
	Name                  token.Name
	Sp                    token.Span
}

func (*OneOf) expr() {}

func (o *OneOf) Span() token.Span { return o.Sp }
func (o *OneOf) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("oneof %s {%d choices}", o.Name.Text, len(o.Choices)))
}
func (o *OneOf) Walk(v ast.Visitor) {
	for _, c := range o.Choices {
		walkExprs(v, c)
	}
}

const typeNameOneOf = "OneOf"

func (o *OneOf) ToLiteral() *memory.LiteralObject {
	obj := memory.NewLiteralObject(token.Synthetic(typeNameOneOf), o.OuterScope, o.Sp)
	obj.Name = o.Name
	obj.InternalFields["compile_time_parameters"] = memory.NameListField(o.CompileTimeParameters)
	obj.InternalFields["choices"] = memory.ExprListField(o.Choices)
	return obj
}

func OneOfFromLiteral(obj *memory.LiteralObject) (*OneOf, error) {
	if obj.TypeName.Text != typeNameOneOf {
		return nil, errTypeMismatch(typeNameOneOf, obj.TypeName.Text)
	}
	params, ok := obj.InternalFields["compile_time_parameters"].NameList()
	if !ok {
		return nil, fmt.Errorf("oneof literal missing internal field %q", "compile_time_parameters")
	}
	choices, ok := obj.InternalFields["choices"].ExprList()
	if !ok {
		return nil, fmt.Errorf("oneof literal missing internal field %q", "choices")
	}
	return &OneOf{
		CompileTimeParameters: params,
		Choices:               choices,
		OuterScope:            obj.OuterScope,
		Name:                  obj.Name,
		Sp:                    obj.Span,
	}, nil
}

package object

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// Parameter is a single function or represent-as compile-time parameter:
// a name and its declared type. Field access on a Parameter literal uses
// the Group policy (spec §4.4, "Parameter").
type Parameter struct {
	Name          token.Name
	ParameterType ast.Expr
	OuterScope    scope.ID
	Sp            token.Span
}

func (*Parameter) expr() {}

func (p *Parameter) Span() token.Span { return p.Sp }
func (p *Parameter) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("parameter %s", p.Name.Text))
}
func (p *Parameter) Walk(v ast.Visitor) { walkExprs(v, p.ParameterType) }

const typeNameParameter = "Parameter"

// ToLiteral encodes the parameter's name and type into a LiteralObject
// tagged "Parameter", with FieldAccessType set to Group per spec §4.4.
func (p *Parameter) ToLiteral() *memory.LiteralObject {
	obj := memory.NewLiteralObject(token.Synthetic(typeNameParameter), p.OuterScope, p.Sp)
	obj.Name = p.Name
	obj.FieldAccessType = memory.AccessGroup
	obj.InternalFields["name"] = memory.NameField(p.Name)
	obj.InternalFields["parameter_type"] = memory.ExprField(p.ParameterType)
	return obj
}

// ParameterFromLiteral verifies obj is a "Parameter" literal and rehydrates
// it.
func ParameterFromLiteral(obj *memory.LiteralObject) (*Parameter, error) {
	if obj.TypeName.Text != typeNameParameter {
		return nil, errTypeMismatch(typeNameParameter, obj.TypeName.Text)
	}
	name, ok := obj.InternalFields["name"].Name()
	if !ok {
		return nil, fmt.Errorf("parameter literal missing internal field %q", "name")
	}
	paramType, ok := obj.InternalFields["parameter_type"].Expr()
	if !ok {
		return nil, fmt.Errorf("parameter literal missing internal field %q", "parameter_type")
	}
	return &Parameter{
		Name:          name,
		ParameterType: paramType,
		OuterScope:    obj.OuterScope,
		Sp:            obj.Span,
	}, nil
}

// toParameterValues converts a slice of *Parameter to the memory package's
// internal-field encoding used by FunctionDeclaration and RepresentAs.
func toParameterValues(params []*Parameter) []memory.ParameterValue {
	out := make([]memory.ParameterValue, len(params))
	for i, p := range params {
		out[i] = memory.ParameterValue{Name: p.Name, DeclaredType: p.ParameterType}
	}
	return out
}

func parametersFromValues(values []memory.ParameterValue, outer scope.ID) []*Parameter {
	out := make([]*Parameter, len(values))
	for i, v := range values {
		out[i] = &Parameter{Name: v.Name, ParameterType: v.DeclaredType, OuterScope: outer}
	}
	return out
}

package object

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// GroupDeclaration is a `group` literal: a struct-like template with an
// ordered field list, each optionally defaulted and optionally typed (spec
// §4.4, "GroupDeclaration").
type GroupDeclaration struct {
	Fields     []GroupField
	Tags       []ast.Expr
	OuterScope scope.ID
	InnerScope scope.ID
	Name       token.Name
	Sp         token.Span
}

func (*GroupDeclaration) expr() {}

func (g *GroupDeclaration) Span() token.Span { return g.Sp }
func (g *GroupDeclaration) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("group %s {%d fields}", g.Name.Text, len(g.Fields)))
}
func (g *GroupDeclaration) Walk(v ast.Visitor) {
	for _, gf := range g.Fields {
		walkExprs(v, gf.Value, gf.DeclaredType)
	}
	for _, t := range g.Tags {
		ast.Walk(v, t)
	}
}

const typeNameGroup = "Group"

func (g *GroupDeclaration) ToLiteral() *memory.LiteralObject {
	obj := memory.NewLiteralObject(token.Synthetic(typeNameGroup), g.OuterScope, g.Sp)
	obj.Name = g.Name
	innerScope := g.InnerScope
	obj.InnerScope = &innerScope
	obj.Tags = g.Tags

	fieldInits := make([]ast.FieldInit, len(g.Fields))
	for i, gf := range g.Fields {
		fi := fieldInitFromGroupField(gf)
		if gf.DeclaredType != nil {
			// DeclaredType rides along as a synthetic tag so from_literal can
			// recover it without a second internal-field list; see
			// GroupFromLiteral below for the paired decode.
			fi.Tags = []ast.Expr{gf.DeclaredType}
		}
		fieldInits[i] = fi
	}
	obj.InternalFields["fields"] = memory.FieldListField(fieldInits)
	return obj
}

func GroupFromLiteral(obj *memory.LiteralObject) (*GroupDeclaration, error) {
	if obj.TypeName.Text != typeNameGroup {
		return nil, errTypeMismatch(typeNameGroup, obj.TypeName.Text)
	}
	fieldInits, ok := obj.InternalFields["fields"].FieldList()
	if !ok {
		return nil, fmt.Errorf("group literal missing internal field %q", "fields")
	}
	fields := make([]GroupField, len(fieldInits))
	for i, fi := range fieldInits {
		gf := GroupField{Name: fi.Name, Value: fi.Value}
		if len(fi.Tags) == 1 {
			gf.DeclaredType = fi.Tags[0]
		}
		fields[i] = gf
	}

	var innerScope scope.ID
	if obj.InnerScope != nil {
		innerScope = *obj.InnerScope
	}

	return &GroupDeclaration{
		Fields:     fields,
		Tags:       obj.Tags,
		OuterScope: obj.OuterScope,
		InnerScope: innerScope,
		Name:       obj.Name,
		Sp:         obj.Span,
	}, nil
}

package object

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// Either is an `either` literal: an ordered set of named variants, each its
// own empty literal interned up front. Field access on an Either literal
// uses the Either policy, dispatching through the variants list rather than
// the ordinary fields map (spec §4.4, "Either").
type Either struct {
	Variants   []memory.LiteralPair
	OuterScope scope.ID
	Name       token.Name
	Sp         token.Span
}

func (*Either) expr() {}

func (e *Either) Span() token.Span { return e.Sp }
func (e *Either) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("either %s {%d variants}", e.Name.Text, len(e.Variants)))
}
func (e *Either) Walk(ast.Visitor) {} // variants are already-interned pointers, not Exprs

const typeNameEither = "Either"

func (e *Either) ToLiteral() *memory.LiteralObject {
	obj := memory.NewLiteralObject(token.Synthetic(typeNameEither), e.OuterScope, e.Sp)
	obj.Name = e.Name
	obj.FieldAccessType = memory.AccessEither
	obj.InternalFields["variants"] = memory.LiteralPairListField(e.Variants)
	return obj
}

func EitherFromLiteral(obj *memory.LiteralObject) (*Either, error) {
	if obj.TypeName.Text != typeNameEither {
		return nil, errTypeMismatch(typeNameEither, obj.TypeName.Text)
	}
	variants, ok := obj.InternalFields["variants"].LiteralPairList()
	if !ok {
		return nil, fmt.Errorf("either literal missing internal field %q", "variants")
	}
	return &Either{
		Variants:   variants,
		OuterScope: obj.OuterScope,
		Name:       obj.Name,
		Sp:         obj.Span,
	}, nil
}

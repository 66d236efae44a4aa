package builtin

import (
	"fmt"
	"strconv"

	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/token"
)

// numberOf dereferences ptr and reads its "value" internal field as a
// Number literal's f64 payload.
func numberOf(ctx EvalContext, ptr memory.Pointer) (float64, error) {
	obj, ok := ctx.Memory().Get(ptr)
	if !ok || obj.TypeName.Text != "Number" {
		return 0, fmt.Errorf("expected a Number literal, got %s", typeNameOf(ctx, ptr))
	}
	v, ok := obj.InternalFields["value"].Number()
	if !ok {
		return 0, fmt.Errorf("Number literal missing internal field %q", "value")
	}
	return v, nil
}

// textOf dereferences ptr and reads its "value" internal field as a Text
// literal's string payload.
func textOf(ctx EvalContext, ptr memory.Pointer) (string, error) {
	obj, ok := ctx.Memory().Get(ptr)
	if !ok || obj.TypeName.Text != "Text" {
		return "", fmt.Errorf("expected a Text literal, got %s", typeNameOf(ctx, ptr))
	}
	v, ok := obj.InternalFields["value"].Text()
	if !ok {
		return "", fmt.Errorf("Text literal missing internal field %q", "value")
	}
	return v, nil
}

func typeNameOf(ctx EvalContext, ptr memory.Pointer) string {
	obj, ok := ctx.Memory().Get(ptr)
	if !ok {
		return "<dangling pointer>"
	}
	return obj.TypeName.Text
}

// storeNumber interns a new Number literal holding v.
func storeNumber(ctx EvalContext, v float64) memory.Pointer {
	obj := memory.NewLiteralObject(token.Synthetic("Number"), 0, token.Unknown())
	obj.InternalFields["value"] = memory.NumberField(v)
	return ctx.Memory().Store(obj)
}

// storeText interns a new Text literal holding v.
func storeText(ctx EvalContext, v string) memory.Pointer {
	obj := memory.NewLiteralObject(token.Synthetic("Text"), 0, token.Unknown())
	obj.InternalFields["value"] = memory.TextField(v)
	return ctx.Memory().Store(obj)
}

// formatNumber renders a Number the way Anything.to_string does: the
// shortest 'g' form, so integral values print with no ".0" suffix (42 ->
// "42").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

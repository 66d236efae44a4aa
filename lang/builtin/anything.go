package builtin

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/token"
)

func init() {
	register("Anything.to_string", Entry{
		CompileTime: anythingToString,
		ToC: func(parameterNames []string) (string, error) {
			if len(parameterNames) != 1 {
				return "", argError("Anything.to_string", 1, len(parameterNames))
			}
			return "return cabin_to_string(" + parameterNames[0] + ");", nil
		},
	})
	register("Anything.type", Entry{
		CompileTime: anythingType,
		ToC: func([]string) (string, error) {
			return "", nil // handled entirely by the address layer; nothing to emit
		},
	})
}

func anythingToString(ctx EvalContext, args []memory.Pointer) (memory.Pointer, error) {
	if len(args) != 1 {
		return 0, argError("Anything.to_string", 1, len(args))
	}
	text, err := toStringDispatch(ctx, args[0])
	if err != nil {
		return 0, err
	}
	return storeText(ctx, text), nil
}

func anythingType(ctx EvalContext, args []memory.Pointer) (memory.Pointer, error) {
	if len(args) != 1 {
		return 0, argError("Anything.type", 1, len(args))
	}
	obj, ok := ctx.Memory().Get(args[0])
	if !ok {
		return 0, fmt.Errorf("Anything.type: dangling pointer")
	}
	typ := memory.NewLiteralObject(token.Synthetic("Type"), 0, token.Unknown())
	typ.InternalFields["name"] = memory.NameField(obj.TypeName)
	return ctx.Memory().Store(typ), nil
}

// toStringDispatch implements Anything.to_string's dispatch-on-type_name
// rule (spec §4.5): Number formats its float, Text returns itself
// unchanged, anything else falls back to its type name.
func toStringDispatch(ctx EvalContext, ptr memory.Pointer) (string, error) {
	obj, ok := ctx.Memory().Get(ptr)
	if !ok {
		return "", fmt.Errorf("Anything.to_string: dangling pointer")
	}
	switch obj.TypeName.Text {
	case "Number":
		v, ok := obj.InternalFields["value"].Number()
		if !ok {
			return "", fmt.Errorf("Number literal missing internal field %q", "value")
		}
		return formatNumber(v), nil
	case "Text":
		v, ok := obj.InternalFields["value"].Text()
		if !ok {
			return "", fmt.Errorf("Text literal missing internal field %q", "value")
		}
		return v, nil
	default:
		return obj.TypeName.Text, nil
	}
}

// voidPointer interns a fresh Void literal. terminal.print and other
// side-effecting builtins that produce no meaningful value return one of
// these rather than a typed result.
func voidPointer(ctx EvalContext) memory.Pointer {
	return ctx.Memory().Store(memory.NewLiteralObject(token.Synthetic("Void"), 0, token.Unknown()))
}

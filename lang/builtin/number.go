package builtin

import "github.com/cabin-lang/cabin/lang/memory"

func init() {
	registerArithmetic("Number.plus", func(a, b float64) float64 { return a + b }, "+")
	registerArithmetic("Number.minus", func(a, b float64) float64 { return a - b }, "-")
	registerArithmetic("Number.times", func(a, b float64) float64 { return a * b }, "*")
	registerArithmetic("Number.divided_by", func(a, b float64) float64 { return a / b }, "/")

	registerComparison("Number.equals", func(a, b float64) bool { return a == b }, "==")
	registerComparison("Number.is_less_than", func(a, b float64) bool { return a < b }, "<")
	registerComparison("Number.is_greater_than", func(a, b float64) bool { return a > b }, ">")
}

// registerComparison wires the parser's `==`/`<`/`>` lowering (spec §4.3,
// "Binary operators") onto a Number method that returns the prelude's
// canonical Boolean singleton rather than a fresh Boolean literal, so the
// result still compares equal to the If rule's true pointer (spec §4.3,
// "If").
func registerComparison(name string, op func(a, b float64) bool, cOperator string) {
	register(name, Entry{
		CompileTime: func(ctx EvalContext, args []memory.Pointer) (memory.Pointer, error) {
			if len(args) != 2 {
				return 0, argError(name, 2, len(args))
			}
			a, err := numberOf(ctx, args[0])
			if err != nil {
				return 0, err
			}
			b, err := numberOf(ctx, args[1])
			if err != nil {
				return 0, err
			}
			if op(a, b) {
				return ctx.TrueValue(), nil
			}
			return ctx.FalseValue(), nil
		},
		ToC: func(parameterNames []string) (string, error) {
			if len(parameterNames) != 2 {
				return "", argError(name, 2, len(parameterNames))
			}
			this, other := parameterNames[0], parameterNames[1]
			return "return (Boolean_u) { .internal_value = " + this + "->internal_value " + cOperator + " " + other + "->internal_value };", nil
		},
	})
}

func registerArithmetic(name string, op func(a, b float64) float64, cOperator string) {
	register(name, Entry{
		CompileTime: func(ctx EvalContext, args []memory.Pointer) (memory.Pointer, error) {
			if len(args) != 2 {
				return 0, argError(name, 2, len(args))
			}
			a, err := numberOf(ctx, args[0])
			if err != nil {
				return 0, err
			}
			b, err := numberOf(ctx, args[1])
			if err != nil {
				return 0, err
			}
			return storeNumber(ctx, op(a, b)), nil
		},
		ToC: func(parameterNames []string) (string, error) {
			if len(parameterNames) != 2 {
				return "", argError(name, 2, len(parameterNames))
			}
			this, other := parameterNames[0], parameterNames[1]
			return "return (Number_u) { .internal_value = " + this + "->internal_value " + cOperator + " " + other + "->internal_value };", nil
		},
	})
}

// ==============================================================================================
// FILE: builtin/numbers.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The numbers module: conversions and rounding.
// ==============================================================================================

package builtin

import (
	"math"

	"sloth/function"
	"sloth/types"
	"sloth/value"
)

var numbersModule = &moduleDef{
	Name: "numbers",
	Funcs: []funcDef{
		numFn("to_string", types.String, func(n float64) value.Value { return value.NewString(value.NewNumber(n).Display()) }),
		numFn("floor", types.Number, func(n float64) value.Value { return value.NewNumber(math.Floor(n)) }),
		numFn("ceil", types.Number, func(n float64) value.Value { return value.NewNumber(math.Ceil(n)) }),
		numFn("round", types.Number, func(n float64) value.Value { return value.NewNumber(math.Round(n)) }),
	},
}

func numFn(name string, output types.Type, apply func(float64) value.Value) funcDef {
	return funcDef{
		Name: name,
		Build: func() *function.NativeFunction {
			return &function.NativeFunction{
				Sig: function.Signature{
					Module: strp("numbers"),
					Name:   name,
					Args:   []function.ArgSpec{{Type: types.Number}},
					Output: typep(output),
				},
				Call: func(args []*value.Cell) (value.Value, error) {
					return apply(args[0].Get().Number), nil
				},
			}
		},
	}
}

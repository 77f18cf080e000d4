// ==============================================================================================
// FILE: builtin/maths.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The maths module: a handful of transcendental functions.
// ==============================================================================================

package builtin

import (
	"math"

	"sloth/function"
	"sloth/types"
	"sloth/value"
)

var mathsModule = &moduleDef{
	Name: "maths",
	Funcs: []funcDef{
		mathFn2("pow", math.Pow),
		mathFn1("sqrt", math.Sqrt),
		mathFn1("abs", math.Abs),
		mathFn1("sin", math.Sin),
		mathFn1("cos", math.Cos),
	},
}

func mathFn1(name string, apply func(float64) float64) funcDef {
	return funcDef{
		Name: name,
		Build: func() *function.NativeFunction {
			return &function.NativeFunction{
				Sig: function.Signature{
					Module: strp("maths"), Name: name,
					Args:   []function.ArgSpec{{Type: types.Number}},
					Output: typep(types.Number),
				},
				Call: func(args []*value.Cell) (value.Value, error) {
					return value.NewNumber(apply(args[0].Get().Number)), nil
				},
			}
		},
	}
}

func mathFn2(name string, apply func(float64, float64) float64) funcDef {
	return funcDef{
		Name: name,
		Build: func() *function.NativeFunction {
			return &function.NativeFunction{
				Sig: function.Signature{
					Module: strp("maths"), Name: name,
					Args:   []function.ArgSpec{{Type: types.Number}, {Type: types.Number}},
					Output: typep(types.Number),
				},
				Call: func(args []*value.Cell) (value.Value, error) {
					return value.NewNumber(apply(args[0].Get().Number, args[1].Get().Number)), nil
				},
			}
		},
	}
}

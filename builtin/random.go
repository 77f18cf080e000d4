// ==============================================================================================
// FILE: builtin/random.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The random module: a single uniform-range draw.
// ==============================================================================================

package builtin

import (
	"math/rand/v2"

	"sloth/diag"
	"sloth/function"
	"sloth/types"
	"sloth/value"
)

var randomModule = &moduleDef{
	Name: "random",
	Funcs: []funcDef{
		{
			Name: "range",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("random"), Name: "range",
						Args:   []function.ArgSpec{{Type: types.Number}, {Type: types.Number}},
						Output: typep(types.Number),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						min, max := args[0].Get().Number, args[1].Get().Number
						if max < min {
							return value.Value{}, diag.New(diag.InvalidArguments, "random:range: max (%g) must not be less than min (%g)", max, min)
						}
						return value.NewNumber(min + rand.Float64()*(max-min)), nil
					},
				}
			},
		},
	},
}

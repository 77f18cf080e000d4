// ==============================================================================================
// FILE: builtin/strings.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The strings module: parsing, case conversion, splitting.
// ==============================================================================================

package builtin

import (
	"strconv"
	"strings"

	"sloth/diag"
	"sloth/function"
	"sloth/types"
	"sloth/value"
)

var stringsModule = &moduleDef{
	Name: "strings",
	Funcs: []funcDef{
		{
			Name: "to_num",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("strings"), Name: "to_num",
						Args:   []function.ArgSpec{{Type: types.String}},
						Output: typep(types.Number),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						n, err := strconv.ParseFloat(args[0].Get().String, 64)
						if err != nil {
							return value.Value{}, diag.New(diag.OperationError, "strings:to_num: %q is not a number", args[0].Get().String)
						}
						return value.NewNumber(n), nil
					},
				}
			},
		},
		{
			Name: "len",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("strings"), Name: "len",
						Args:   []function.ArgSpec{{Type: types.String}},
						Output: typep(types.Number),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						return value.NewNumber(float64(len(args[0].Get().String))), nil
					},
				}
			},
		},
		{
			Name: "upper",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("strings"), Name: "upper",
						Args:   []function.ArgSpec{{Type: types.String}},
						Output: typep(types.String),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						return value.NewString(strings.ToUpper(args[0].Get().String)), nil
					},
				}
			},
		},
		{
			Name: "lower",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("strings"), Name: "lower",
						Args:   []function.ArgSpec{{Type: types.String}},
						Output: typep(types.String),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						return value.NewString(strings.ToLower(args[0].Get().String)), nil
					},
				}
			},
		},
		{
			Name: "split",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("strings"), Name: "split",
						Args:   []function.ArgSpec{{Type: types.String}, {Type: types.String}},
						Output: typep(types.List(types.String)),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						parts := strings.Split(args[0].Get().String, args[1].Get().String)
						cells := make([]*value.Cell, len(parts))
						for i, p := range parts {
							cells[i] = value.NewCell(value.NewString(p))
						}
						return value.NewList(&value.ListValue{Element: types.String, Fixed: true, Cells: cells}), nil
					},
				}
			},
		},
	},
}

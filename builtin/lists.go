// ==============================================================================================
// FILE: builtin/lists.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The lists module: push/pop/get/set on a list's element cells.
// ==============================================================================================

package builtin

import (
	"sloth/diag"
	"sloth/function"
	"sloth/types"
	"sloth/value"
)

var listsModule = &moduleDef{
	Name: "lists",
	Funcs: []funcDef{
		{
			Name: "push",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("lists"), Name: "push",
						Args: []function.ArgSpec{{Type: types.List(types.Any), ByRef: true}, {Type: types.Any}},
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						lv := args[0].Get().List
						elem := args[1].Get()
						if lv.Fixed && len(lv.Cells) > 0 && !lv.Element.Equals(elem.Type()) {
							return value.Value{}, diag.New(diag.TypeError, "lists:push: cannot push %s onto a list[%s]", elem.Type(), lv.Element)
						}
						if !lv.Fixed {
							lv.Element = elem.Type()
							lv.Fixed = true
						}
						lv.Cells = append(lv.Cells, value.NewCell(elem))
						return value.Value{}, nil
					},
				}
			},
		},
		{
			Name: "pop",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("lists"), Name: "pop",
						Args:   []function.ArgSpec{{Type: types.List(types.Any), ByRef: true}},
						Output: typep(types.Any),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						lv := args[0].Get().List
						if len(lv.Cells) == 0 {
							return value.Value{}, diag.New(diag.OperationError, "lists:pop: list is empty")
						}
						last := lv.Cells[len(lv.Cells)-1]
						lv.Cells = lv.Cells[:len(lv.Cells)-1]
						return last.Get(), nil
					},
				}
			},
		},
		{
			Name: "get",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("lists"), Name: "get",
						Args:   []function.ArgSpec{{Type: types.List(types.Any)}, {Type: types.Number}},
						Output: typep(types.Any),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						lv := args[0].Get().List
						i := int(args[1].Get().Number)
						if i < 0 || i >= len(lv.Cells) {
							return value.Value{}, diag.New(diag.OperationError, "lists:get: index %d out of range (len %d)", i, len(lv.Cells))
						}
						return lv.Cells[i].Get(), nil
					},
				}
			},
		},
		{
			Name: "set",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("lists"), Name: "set",
						Args: []function.ArgSpec{{Type: types.List(types.Any), ByRef: true}, {Type: types.Number}, {Type: types.Any}},
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						lv := args[0].Get().List
						i := int(args[1].Get().Number)
						if i < 0 || i >= len(lv.Cells) {
							return value.Value{}, diag.New(diag.OperationError, "lists:set: index %d out of range (len %d)", i, len(lv.Cells))
						}
						lv.Cells[i].Set(args[2].Get())
						return value.Value{}, nil
					},
				}
			},
		},
		{
			Name: "len",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("lists"), Name: "len",
						Args:   []function.ArgSpec{{Type: types.List(types.Any)}},
						Output: typep(types.Number),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						lv := args[0].Get().List
						return value.NewNumber(float64(len(lv.Cells))), nil
					},
				}
			},
		},
	},
}

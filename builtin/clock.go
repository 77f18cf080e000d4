// ==============================================================================================
// FILE: builtin/clock.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The clock module: now/since/sleep plus the Instant blueprint
//          "now" returns a handle of.
// ==============================================================================================

package builtin

import (
	"time"

	"sloth/diag"
	"sloth/function"
	"sloth/structure"
	"sloth/types"
	"sloth/value"
)

var instantBlueprint = &structure.UserBlueprint{
	Module: "clock",
	Name:   "Instant",
	Fields: []structure.FieldSpec{{Name: "epoch_seconds", Type: types.Number}},
}

var instantType = instantBlueprint.Type()

var clockModule = &moduleDef{
	Name: "clock",
	Structs: []structDef{
		{Name: "Instant", Build: func() *structure.UserBlueprint { return instantBlueprint }},
	},
	Funcs: []funcDef{
		{
			Name:     "now",
			Requires: []string{"Instant"},
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("clock"), Name: "now",
						Output: typep(instantType),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						obj, derr := instantBlueprint.Build([]value.Value{value.NewNumber(float64(time.Now().UnixNano()) / 1e9)})
						if derr != nil {
							return value.Value{}, derr
						}
						return value.NewObject(obj), nil
					},
				}
			},
		},
		{
			Name:     "since",
			Requires: []string{"Instant"},
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("clock"), Name: "since",
						Args:   []function.ArgSpec{{Type: instantType}},
						Output: typep(types.Number),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						obj, ok := args[0].Get().Object.(*structure.UserObject)
						if !ok {
							return value.Value{}, diag.New(diag.TypeError, "clock:since requires an Instant")
						}
						cell, _ := obj.FieldCell("epoch_seconds")
						elapsed := float64(time.Now().UnixNano())/1e9 - cell.Get().Number
						return value.NewNumber(elapsed), nil
					},
				}
			},
		},
		{
			Name: "sleep",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("clock"), Name: "sleep",
						Args: []function.ArgSpec{{Type: types.Number}},
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						seconds := args[0].Get().Number
						if seconds < 0 {
							return value.Value{}, diag.New(diag.InvalidArguments, "clock:sleep: duration must not be negative, got %g", seconds)
						}
						time.Sleep(time.Duration(seconds * float64(time.Second)))
						return value.Value{}, nil
					},
				}
			},
		},
	},
}

// ==============================================================================================
// FILE: builtin/files.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The files module: load/save against the host filesystem. The
//          filesystem itself is an external collaborator (see SPEC_FULL's
//          non-goals); this module only has to honor the Go-level
//          contract so a script can call it.
// ==============================================================================================

package builtin

import (
	"os"

	"github.com/pkg/errors"

	"sloth/diag"
	"sloth/function"
	"sloth/types"
	"sloth/value"
)

var filesModule = &moduleDef{
	Name: "files",
	Funcs: []funcDef{
		{
			Name: "load",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("files"), Name: "load",
						Args:   []function.ArgSpec{{Type: types.String}},
						Output: typep(types.String),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						data, err := os.ReadFile(args[0].Get().String)
						if err != nil {
							return value.Value{}, diag.New(diag.FileError, "files:load: %s", errors.Wrap(err, "reading file"))
						}
						return value.NewString(string(data)), nil
					},
				}
			},
		},
		{
			Name: "save",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("files"), Name: "save",
						Args: []function.ArgSpec{{Type: types.String}, {Type: types.String}},
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						path := args[0].Get().String
						content := args[1].Get().String
						if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
							return value.Value{}, diag.New(diag.FileError, "files:save: %s", errors.Wrap(err, "writing file"))
						}
						return value.Value{}, nil
					},
				}
			},
		},
	},
}

// ==============================================================================================
// FILE: builtin/io.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The io module: print and read.
// ==============================================================================================

package builtin

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"sloth/diag"
	"sloth/function"
	"sloth/types"
	"sloth/value"
)

var ioModule = &moduleDef{
	Name: "io",
	Funcs: []funcDef{
		{
			Name: "print",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("io"),
						Name:   "print",
						Args:   []function.ArgSpec{{Type: types.Any}},
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						fmt.Println(expandEscapes(args[0].Get().Display()))
						return value.Value{}, nil
					},
				}
			},
		},
		{
			Name: "read",
			Build: func() *function.NativeFunction {
				return &function.NativeFunction{
					Sig: function.Signature{
						Module: strp("io"),
						Name:   "read",
						Args:   []function.ArgSpec{{Type: types.String}},
						Output: typep(types.String),
					},
					Call: func(args []*value.Cell) (value.Value, error) {
						prompt := args[0].Get().Display()
						if prompt != "" {
							fmt.Print(prompt + " ")
						}
						reader := bufio.NewReader(os.Stdin)
						text, err := reader.ReadString('\n')
						if err != nil && text == "" {
							return value.Value{}, diag.New(diag.RuntimeError, "io:read: %s", err)
						}
						return value.NewString(strings.TrimRight(text, "\r\n")), nil
					},
				}
			},
		},
	},
}

// expandEscapes turns the literal two-byte "\n" sequence the lexer
// preserves in string literals into a real newline, at print time only.
func expandEscapes(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func strp(s string) *string   { return &s }
func typep(t types.Type) *types.Type { return &t }

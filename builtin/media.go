// ==============================================================================================
// FILE: builtin/media.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The media module, kept as an inert extension point: a host
//          graphics/audio backend is explicitly out of scope, but the
//          module still has to import and type-check so a script that
//          names it fails with a clear runtime error rather than an
//          unresolvable import.
// ==============================================================================================

package builtin

import (
	"sloth/diag"
	"sloth/structure"
	"sloth/types"
)

var windowBlueprint = &structure.UserBlueprint{
	Module: "media",
	Name:   "Window",
	Fields: []structure.FieldSpec{{Name: "title", Type: types.String}},
}

var mediaModule = &moduleDef{
	Name: "media",
	Structs: []structDef{
		{
			Name: "Window",
			Build: func() *structure.UserBlueprint {
				return windowBlueprint
			},
		},
	},
}

// WindowBuildError is what constructing a media:Window yields until a
// host graphics backend is wired in as a separate plug-in module.
var WindowBuildError = diag.New(diag.OperationError, "media module requires a host graphics backend")

// IsInertBlueprint reports whether bp is one of the media module's
// handle types, which the evaluator refuses to instantiate.
func IsInertBlueprint(bp *structure.UserBlueprint) bool {
	return bp == windowBlueprint
}

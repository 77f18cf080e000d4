// ==============================================================================================
// FILE: cmd/slo/main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: Installable entry point ("go install sloth/cmd/slo"); delegates
//          entirely to the shared cli package.
// ==============================================================================================

package main

import (
	"os"

	"sloth/cli"
)

func main() {
	cli.Execute(os.Args)
}

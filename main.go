// ==============================================================================================
// FILE: main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: Root entry point ("go run ." / "go build ."); delegates entirely
//          to the shared cli package, same as cmd/slo.
// ==============================================================================================

package main

import (
	"os"

	"sloth/cli"
)

func main() {
	cli.Execute(os.Args)
}

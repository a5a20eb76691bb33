// Command reliefctl runs the priority manager, matching engine, and
// dashboard panic detector against an in-memory demo scenario.
package main

import (
	"os"

	"github.com/reliefgrid/coordinator/pkg/interfaces/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

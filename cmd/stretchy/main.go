// Command stretchy replays, previews and validates stretchy header setups.
package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/stretchy/cmd/stretchy/commands"
)

const version = "0.1.0"

func main() {
	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command cellgrid runs the automaton and entity reconciliation without a
// window.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cellgrid:", err)
		os.Exit(1)
	}
}

// Command catalogctl runs catalog queries from the shell against the bundled
// seed catalog or a JSON catalog file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

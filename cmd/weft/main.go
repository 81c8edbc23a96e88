// Command weft prints host pages and renders weft applications into them.
package main

import (
	"fmt"
	"os"

	"github.com/weft-ui/weft/cmd/weft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

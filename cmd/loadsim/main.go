// Command loadsim runs container loading simulations from a YAML plan.
package main

import (
	"os"

	"github.com/hyperkh65/loadsim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

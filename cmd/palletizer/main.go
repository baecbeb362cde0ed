// Command palletizer packs multi-product orders onto pallets using an
// extreme-point placement heuristic driven by a multi-objective evolutionary
// search.
package main

import (
	"fmt"
	"os"

	"github.com/palletopt/palletizer/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

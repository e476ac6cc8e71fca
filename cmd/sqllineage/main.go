// Command sqllineage prints table- and column-level lineage for resolved
// SQL statements.
package main

import (
	"os"

	"github.com/leapstack-labs/sqllineage/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

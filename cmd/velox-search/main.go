// Command velox-search renders search conditions as where-clauses.
//
// Usage:
//
//	# Print the where-clause of a condition
//	velox-search render --mapping mapping.yaml --condition condition.yaml
//
//	# Print MySQL SQL, re-rendering whenever an input changes
//	velox-search render -m mapping.yaml -c condition.yaml --dialect mysql --sql --watch
//
//	# Take the dialect from a database
//	velox-search render -m mapping.yaml -c condition.yaml --sql --dsn postgres://localhost/shop
//
//	# Check a mapping file
//	velox-search validate mapping.yaml
package main

import (
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/velox-search/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

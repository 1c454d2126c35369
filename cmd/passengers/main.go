// Command passengers stores, reads, updates and deletes passengers through
// the entity package against SQLite or PostgreSQL.
//
//	passengers schema --create
//	passengers insert --name Tanvir --age 28 --sex M
//	passengers read --min-age 18 -o yaml
//	passengers scenario --dsn "postgres://localhost:5432/test" --driver pgx --create
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Package main provides grip, the handrail workbench CLI. grip exercises
// the defensive primitives (bounded buffer, checked arithmetic, guarded
// resource, signal-safe counter) under stress and records outcomes in the
// run ledger.
// Implements: prd006-grip-cli R1; docs/ARCHITECTURE § CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}

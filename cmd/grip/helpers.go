// Shared helpers for grip CLI commands.
// Implements: prd006-grip-cli (R3, R8).
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/handrail/internal/ledger"
	"github.com/mesh-intelligence/handrail/pkg/guard"
)

// withLedger opens the run ledger in the resolved data directory and runs
// fn against it. The ledger handle is held through a guarded resource, so
// it is closed exactly once on every exit path, including a panic in fn.
func withLedger(fn func(*ledger.Ledger) error) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	l, err := ledger.Open(dataDir)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	return guard.Do(l, func(l *ledger.Ledger) error {
		return l.Close()
	}, fn)
}

// recordRun persists a run unless --no-ledger is set. A ledger failure is
// reported but does not mask the run's own outcome.
func recordRun(run ledger.Run) {
	if flagNoLedger {
		return
	}
	err := withLedger(func(l *ledger.Ledger) error {
		_, err := l.Record(run)
		return err
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: recording run:", err)
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

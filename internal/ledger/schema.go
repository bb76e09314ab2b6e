// Package ledger implements the SQLite run ledger for the grip CLI.
// Implements: prd005-run-ledger (R1 schema, R2 Ledger interface);
//
//	docs/ARCHITECTURE § Run Ledger.
package ledger

// Schema DDL (prd005-run-ledger R1.2). Opening an existing database is a
// normal case, so creation is idempotent.
const createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    component TEXT NOT NULL,
    operations INTEGER NOT NULL,
    failures INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    notes TEXT
);`

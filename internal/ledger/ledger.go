package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBFileName is the ledger database file inside the data directory.
const DBFileName = "handrail.db"

// timeLayout pads the fraction to nine digits so the TEXT started_at
// column sorts chronologically under lexical ORDER BY. RFC3339Nano trims
// trailing zeros, which breaks that ordering for runs inside one second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Ledger lifecycle and validation errors (prd005-run-ledger R4).
var (
	ErrLedgerClosed = errors.New("ledger is closed")
	ErrInvalidRun   = errors.New("run must name a component")
)

// Run is one recorded verification or stress run.
type Run struct {
	RunID      string        // UUID v7, generated when empty on Record.
	Component  string        // primitive exercised: counter, guard, checked, boundbuf.
	Operations uint64        // total operations performed.
	Failures   uint64        // operations that violated an invariant.
	Duration   time.Duration // wall time of the run.
	StartedAt  time.Time     // start of the run, stored UTC.
	Notes      string        // free-form context, e.g. flag values.
}

// Ledger records runs in a SQLite database under the data directory.
// Close is idempotent; operations after Close return ErrLedgerClosed.
type Ledger struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open creates the data directory if needed, opens (or creates) the
// ledger database inside it, and ensures the schema exists.
func Open(dataDir string) (*Ledger, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	if _, err := db.Exec(createRuns); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Record persists a run. When run.RunID is empty a UUID v7 is generated;
// the actual ID used is returned. A zero StartedAt is stamped with the
// current time.
// Implements: prd005-run-ledger R2.2.
func (l *Ledger) Record(run Run) (string, error) {
	if run.Component == "" {
		return "", ErrInvalidRun
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return "", ErrLedgerClosed
	}

	if run.RunID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating run ID: %w", err)
		}
		run.RunID = id.String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := l.db.Exec(
		"INSERT INTO runs (run_id, component, operations, failures, duration_ns, started_at, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.RunID, run.Component, int64(run.Operations), int64(run.Failures),
		run.Duration.Nanoseconds(), run.StartedAt.UTC().Format(timeLayout), run.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return run.RunID, nil
}

// List returns the most recent runs, newest first. A non-positive limit
// returns every run.
// Implements: prd005-run-ledger R2.3.
func (l *Ledger) List(limit int) ([]Run, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, ErrLedgerClosed
	}

	query := "SELECT run_id, component, operations, failures, duration_ns, started_at, notes FROM runs ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := hydrateRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Close releases the database handle. Idempotent: second and later calls
// return nil without touching the handle.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.db.Close()
}

// hydrateRun maps one row to a Run.
func hydrateRun(rows *sql.Rows) (Run, error) {
	var (
		run        Run
		operations int64
		failures   int64
		durationNs int64
		startedAt  string
		notes      sql.NullString
	)
	if err := rows.Scan(&run.RunID, &run.Component, &operations, &failures, &durationNs, &startedAt, &notes); err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}

	// RFC3339Nano parses both the padded layout and any rows written
	// before the fraction was fixed-width.
	ts, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run timestamp: %w", err)
	}
	run.Operations = uint64(operations)
	run.Failures = uint64(failures)
	run.Duration = time.Duration(durationNs)
	run.StartedAt = ts
	run.Notes = notes.String
	return run, nil
}

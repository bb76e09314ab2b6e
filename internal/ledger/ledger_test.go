// Tests for the run ledger.
// Implements: prd005-run-ledger acceptance criteria (unit tests).
package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	l, err := Open(tmpDir)
	require.NoError(t, err)
	defer l.Close()

	_, err = os.Stat(filepath.Join(tmpDir, DBFileName))
	assert.NoError(t, err, "handrail.db should exist")
}

func TestOpenCreatesDataDir(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "data")

	l, err := Open(tmpDir)
	require.NoError(t, err)
	defer l.Close()

	_, err = os.Stat(tmpDir)
	assert.NoError(t, err)
}

func TestRecordGeneratesID(t *testing.T) {
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	defer l.Close()

	id, err := l.Record(Run{
		Component:  "counter",
		Operations: 1000,
		Duration:   25 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestRecordKeepsProvidedID(t *testing.T) {
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	defer l.Close()

	id, err := l.Record(Run{RunID: "fixed-id", Component: "guard"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}

func TestRecordRejectsEmptyComponent(t *testing.T) {
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Record(Run{Operations: 5})
	assert.ErrorIs(t, err, ErrInvalidRun)
}

func TestListRoundTrip(t *testing.T) {
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	defer l.Close()

	started := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	_, err = l.Record(Run{
		Component:  "counter",
		Operations: 5000,
		Failures:   0,
		Duration:   120 * time.Millisecond,
		StartedAt:  started,
		Notes:      "workers=4 ops=1250",
	})
	require.NoError(t, err)

	runs, err := l.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "counter", got.Component)
	assert.Equal(t, uint64(5000), got.Operations)
	assert.Equal(t, uint64(0), got.Failures)
	assert.Equal(t, 120*time.Millisecond, got.Duration)
	assert.True(t, got.StartedAt.Equal(started))
	assert.Equal(t, "workers=4 ops=1250", got.Notes)
}

func TestListNewestFirstWithLimit(t *testing.T) {
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	defer l.Close()

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := l.Record(Run{
			Component: "guard",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Notes:     string(rune('a' + i)),
		})
		require.NoError(t, err)
	}

	runs, err := l.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "e", runs[0].Notes)
	assert.Equal(t, "d", runs[1].Notes)
}

func TestListOrdersSubSecondRuns(t *testing.T) {
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	defer l.Close()

	// Fractions chosen so a trimmed-zero encoding would compare ".5Z"
	// against ".51Z" and misorder them lexically.
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	older := base.Add(500 * time.Millisecond)
	newer := base.Add(510 * time.Millisecond)

	_, err = l.Record(Run{Component: "counter", StartedAt: newer, Notes: "newer"})
	require.NoError(t, err)
	_, err = l.Record(Run{Component: "counter", StartedAt: older, Notes: "older"})
	require.NoError(t, err)

	runs, err := l.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newer", runs[0].Notes)
	assert.True(t, runs[0].StartedAt.Equal(newer))
	assert.Equal(t, "older", runs[1].Notes)
}

func TestCloseIdempotent(t *testing.T) {
	l, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	_, err = l.Record(Run{Component: "counter"})
	assert.ErrorIs(t, err, ErrLedgerClosed)

	_, err = l.List(0)
	assert.ErrorIs(t, err, ErrLedgerClosed)
}

func TestReopenPreservesRuns(t *testing.T) {
	tmpDir := t.TempDir()

	l, err := Open(tmpDir)
	require.NoError(t, err)
	_, err = l.Record(Run{Component: "boundbuf"})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l2, err := Open(tmpDir)
	require.NoError(t, err)
	defer l2.Close()

	runs, err := l2.List(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','instructions','accounts')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["instructions"])
	assert.True(t, found["accounts"])
}

func TestSQLiteReopenKeepsHistory(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.RecordRun(Run{RunID: "R1", Source: "a.csv", Started: time.Now(), Finished: time.Now()}))
	require.NoError(t, j.Close())

	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "R1", runs[0].RunID)
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	entries := []InstructionEntry{
		{RunID: "R1", Seq: 1, Type: "deposit", Client: 2, Tx: 2, Amount: decimal.NullDecimal{Decimal: decimal.RequireFromString("2.1"), Valid: true}, Outcome: OutcomeApplied},
		{RunID: "R1", Seq: 2, Type: "withdrawal", Client: 2, Tx: 5, Amount: decimal.NullDecimal{Decimal: decimal.RequireFromString("3"), Valid: true}, Outcome: OutcomeRejected,
			Error: "Transaction #5 for account #2 can't withdraw $3 due to insufficient funds"},
		{RunID: "R1", Seq: 3, Outcome: OutcomeMalformed, Error: "CSV deserialize error: record 3 (line: 4): unknown is an unknown type"},
		{RunID: "R1", Seq: 4, Type: "dispute", Client: 2, Tx: 5, Outcome: OutcomeRejected, Error: "Transaction #5 not found"},
		{RunID: "R2", Seq: 1, Type: "dispute", Client: 1, Tx: 1, Outcome: OutcomeRejected, Error: "Transaction #1 not found"},
	}
	for _, e := range entries {
		require.NoError(t, j.RecordInstruction(e))
	}

	require.NoError(t, j.RecordAccount(AccountSnapshot{
		RunID:     "R1",
		Client:    2,
		Available: decimal.RequireFromString("2.1"),
		Held:      decimal.Zero,
		Total:     decimal.RequireFromString("2.1"),
	}))
	require.NoError(t, j.RecordAccount(AccountSnapshot{
		RunID:     "R1",
		Client:    1,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
		Locked:    true,
	}))

	started := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	run := Run{RunID: "R1", Source: "basic.csv", Started: started, Finished: started.Add(time.Minute),
		Applied: 1, Rejected: 2, Malformed: 1, Accounts: 2}
	require.NoError(t, j.RecordRun(run))

	got, err := j.GetRun("R1")
	require.NoError(t, err)
	assert.Equal(t, run.Source, got.Source)
	assert.True(t, got.Started.Equal(run.Started))
	assert.True(t, got.Finished.Equal(run.Finished))
	assert.Equal(t, 1, got.Applied)
	assert.Equal(t, 2, got.Rejected)
	assert.Equal(t, 1, got.Malformed)
	assert.Equal(t, 2, got.Accounts)

	_, err = j.GetRun("missing")
	assert.ErrorContains(t, err, `run "missing" not found`)

	failures, err := j.ListFailures("R1")
	require.NoError(t, err)
	require.Len(t, failures, 3)
	assert.Equal(t, []int{2, 3, 4}, []int{failures[0].Seq, failures[1].Seq, failures[2].Seq})
	assert.True(t, failures[0].Amount.Valid)
	assert.True(t, failures[0].Amount.Decimal.Equal(decimal.NewFromInt(3)))
	assert.False(t, failures[2].Amount.Valid)
	assert.Equal(t, OutcomeMalformed, failures[1].Outcome)

	accounts, err := j.ListAccounts("R1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, uint16(1), accounts[0].Client)
	assert.True(t, accounts[0].Locked)
	assert.Equal(t, uint16(2), accounts[1].Client)
	assert.True(t, accounts[1].Available.Equal(decimal.RequireFromString("2.1")))
	assert.True(t, accounts[1].Total.Equal(decimal.RequireFromString("2.1")))
}

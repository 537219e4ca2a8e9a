package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	var r Run

	row := j.db.QueryRow(`
		SELECT run_id, source, started, finished, applied, rejected, malformed, accounts
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID,
		&r.Source,
		&r.Started,
		&r.Finished,
		&r.Applied,
		&r.Rejected,
		&r.Malformed,
		&r.Accounts,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns every recorded run, newest first.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, source, started, finished, applied, rejected, malformed, accounts
		FROM runs
		ORDER BY started DESC, run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID,
			&r.Source,
			&r.Started,
			&r.Finished,
			&r.Applied,
			&r.Rejected,
			&r.Malformed,
			&r.Accounts,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFailures returns the rejected and malformed rows of a run in stream
// order.
func (j *SQLite) ListFailures(runID string) ([]InstructionEntry, error) {
	rows, err := j.db.Query(`
		SELECT run_id, seq, type, client, tx, amount, outcome, error
		FROM instructions
		WHERE run_id = ? AND outcome != ?
		ORDER BY seq ASC`, runID, OutcomeApplied)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InstructionEntry
	for rows.Next() {
		var e InstructionEntry
		if err := rows.Scan(
			&e.RunID,
			&e.Seq,
			&e.Type,
			&e.Client,
			&e.Tx,
			&e.Amount,
			&e.Outcome,
			&e.Error,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAccounts returns the final account states of a run ordered by
// client.
func (j *SQLite) ListAccounts(runID string) ([]AccountSnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, client, available, held, total, locked
		FROM accounts
		WHERE run_id = ?
		ORDER BY client ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AccountSnapshot
	for rows.Next() {
		var a AccountSnapshot
		if err := rows.Scan(
			&a.RunID,
			&a.Client,
			&a.Available,
			&a.Held,
			&a.Total,
			&a.Locked,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordInstruction(e InstructionEntry) error {
	_, err := j.db.Exec(`
		INSERT INTO instructions
		(run_id, seq, type, client, tx, amount, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Seq, e.Type, e.Client, e.Tx, e.Amount, e.Outcome, e.Error,
	)
	return err
}

func (j *SQLite) RecordAccount(a AccountSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO accounts
		(run_id, client, available, held, total, locked)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.RunID, a.Client, a.Available, a.Held, a.Total, a.Locked,
	)
	return err
}

func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, source, started, finished, applied, rejected, malformed, accounts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.Started, r.Finished, r.Applied, r.Rejected, r.Malformed, r.Accounts,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

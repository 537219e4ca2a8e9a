// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	started DATETIME NOT NULL,
	finished DATETIME NOT NULL,
	applied INTEGER NOT NULL,
	rejected INTEGER NOT NULL,
	malformed INTEGER NOT NULL,
	accounts INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS instructions (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	type TEXT NOT NULL,
	client INTEGER NOT NULL,
	tx INTEGER NOT NULL,
	amount TEXT,
	outcome TEXT NOT NULL,
	error TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS accounts (
	run_id TEXT NOT NULL,
	client INTEGER NOT NULL,
	available TEXT NOT NULL,
	held TEXT NOT NULL,
	total TEXT NOT NULL,
	locked BOOLEAN NOT NULL,
	PRIMARY KEY (run_id, client)
);

CREATE INDEX IF NOT EXISTS idx_instructions_outcome ON instructions(run_id, outcome);
`

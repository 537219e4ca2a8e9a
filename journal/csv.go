package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	InstructionsFile = "instructions.csv"
	AccountsFile     = "accounts.csv"
	RunsFile         = "runs.csv"
)

type CSVJournal struct {
	instructions *csv.Writer
	accounts     *csv.Writer
	runs         *csv.Writer
	files        []*os.File
}

// NewCSV creates instructions.csv, accounts.csv and runs.csv in dir.
func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	j := &CSVJournal{}
	headers := []struct {
		name   string
		w      **csv.Writer
		header []string
	}{
		{InstructionsFile, &j.instructions, []string{"run_id", "seq", "type", "client", "tx", "amount", "outcome", "error"}},
		{AccountsFile, &j.accounts, []string{"run_id", "client", "available", "held", "total", "locked"}},
		{RunsFile, &j.runs, []string{"run_id", "source", "started", "finished", "applied", "rejected", "malformed", "accounts"}},
	}

	for _, h := range headers {
		f, err := os.Create(filepath.Join(dir, h.name))
		if err != nil {
			j.closeFiles()
			return nil, err
		}
		j.files = append(j.files, f)

		w := csv.NewWriter(f)
		if err := w.Write(h.header); err != nil {
			j.closeFiles()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			j.closeFiles()
			return nil, err
		}
		*h.w = w
	}

	return j, nil
}

func (j *CSVJournal) RecordInstruction(e InstructionEntry) error {
	amount := ""
	if e.Amount.Valid {
		amount = e.Amount.Decimal.String()
	}
	return j.write(j.instructions, []string{
		e.RunID,
		strconv.Itoa(e.Seq),
		e.Type,
		strconv.FormatUint(uint64(e.Client), 10),
		strconv.FormatUint(uint64(e.Tx), 10),
		amount,
		e.Outcome,
		e.Error,
	})
}

func (j *CSVJournal) RecordAccount(a AccountSnapshot) error {
	return j.write(j.accounts, []string{
		a.RunID,
		strconv.FormatUint(uint64(a.Client), 10),
		d(a.Available),
		d(a.Held),
		d(a.Total),
		strconv.FormatBool(a.Locked),
	})
}

func (j *CSVJournal) RecordRun(r Run) error {
	return j.write(j.runs, []string{
		r.RunID,
		r.Source,
		r.Started.Format(time.RFC3339),
		r.Finished.Format(time.RFC3339),
		strconv.Itoa(r.Applied),
		strconv.Itoa(r.Rejected),
		strconv.Itoa(r.Malformed),
		strconv.Itoa(r.Accounts),
	})
}

func (j *CSVJournal) write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.instructions, j.accounts, j.runs} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	return j.closeFiles()
}

func (j *CSVJournal) closeFiles() error {
	var first error
	for _, f := range j.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	j.files = nil
	return first
}

func d(x decimal.Decimal) string {
	return x.String()
}

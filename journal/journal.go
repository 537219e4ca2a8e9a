// journal/journal.go
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome of a single instruction row.
const (
	OutcomeApplied   = "applied"
	OutcomeRejected  = "rejected"
	OutcomeMalformed = "malformed"
)

// InstructionEntry is one row of the instruction stream and what the
// ledger did with it. Malformed rows carry only Seq and Error.
type InstructionEntry struct {
	RunID   string
	Seq     int
	Type    string
	Client  uint16
	Tx      uint32
	Amount  decimal.NullDecimal
	Outcome string
	Error   string
}

// AccountSnapshot is an account's final state at the end of a run.
type AccountSnapshot struct {
	RunID     string
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Run summarises one pass over an instruction source.
type Run struct {
	RunID     string
	Source    string
	Started   time.Time
	Finished  time.Time
	Applied   int
	Rejected  int
	Malformed int
	Accounts  int
}

type Journal interface {
	RecordInstruction(InstructionEntry) error
	RecordAccount(AccountSnapshot) error
	RecordRun(Run) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordInstruction(InstructionEntry) error { return nil }
func (Nop) RecordAccount(AccountSnapshot) error      { return nil }
func (Nop) RecordRun(Run) error                      { return nil }
func (Nop) Close() error                             { return nil }

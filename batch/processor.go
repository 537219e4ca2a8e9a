// Package batch drives an instruction stream through the ledger.
package batch

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/payments/feed"
	"github.com/rustyeddy/payments/id"
	"github.com/rustyeddy/payments/journal"
	"github.com/rustyeddy/payments/ledger"
)

// Source yields instructions in stream order. Next returns io.EOF at the
// end, a *feed.ParseError for a malformed record, and any other error when
// the source can no longer be read.
type Source interface {
	Next() (ledger.Instruction, error)
}

// Result is the outcome of a run.
type Result struct {
	RunID    string
	Accounts *ledger.Accounts
	// Failures holds parse and ledger failures in stream order.
	Failures []error

	Applied   int
	Rejected  int
	Malformed int

	Started  time.Time
	Finished time.Time
}

// Run converts the result to its journal summary.
func (r *Result) Run(source string) journal.Run {
	return journal.Run{
		RunID:     r.RunID,
		Source:    source,
		Started:   r.Started,
		Finished:  r.Finished,
		Applied:   r.Applied,
		Rejected:  r.Rejected,
		Malformed: r.Malformed,
		Accounts:  r.Accounts.Len(),
	}
}

type Processor struct {
	log     *zap.Logger
	journal journal.Journal
	runID   string
	source  string
	now     func() time.Time
}

type Option func(*Processor)

func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithJournal records every instruction, the final accounts and the run.
func WithJournal(j journal.Journal) Option {
	return func(p *Processor) {
		if j != nil {
			p.journal = j
		}
	}
}

// WithRunID overrides the generated run id.
func WithRunID(runID string) Option {
	return func(p *Processor) { p.runID = runID }
}

// WithSourceName names the source in logs and the journal.
func WithSourceName(name string) Option {
	return func(p *Processor) { p.source = name }
}

func New(opts ...Option) *Processor {
	p := &Processor{
		log:     zap.NewNop(),
		journal: journal.Nop{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.runID == "" {
		p.runID = id.New()
	}
	return p
}

// Run applies every instruction from src to a fresh ledger. Malformed and
// rejected instructions are collected in Result.Failures and never stop
// the stream. The returned error is set only when src cannot be read or
// the journal fails.
func (p *Processor) Run(src Source) (*Result, error) {
	log := p.log.With(zap.String("run_id", p.runID))

	res := &Result{
		RunID:    p.runID,
		Accounts: ledger.NewAccounts(),
		Started:  p.now(),
	}
	l := ledger.New()

	for seq := 1; ; seq++ {
		in, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		entry := journal.InstructionEntry{RunID: p.runID, Seq: seq}
		if err != nil {
			var perr *feed.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("read instruction %d: %w", seq, err)
			}
			res.Malformed++
			res.Failures = append(res.Failures, err)
			log.Debug("malformed instruction", zap.Int("seq", seq), zap.Error(err))

			entry.Outcome = journal.OutcomeMalformed
			entry.Error = err.Error()
		} else {
			entry.Type = in.Type()
			entry.Client = uint16(in.Client())
			entry.Tx = uint32(in.Tx())
			entry.Amount, _ = ledger.AmountOf(in)

			if err := l.Process(res.Accounts, in); err != nil {
				res.Rejected++
				res.Failures = append(res.Failures, err)
				log.Debug("instruction rejected",
					zap.Int("seq", seq),
					zap.String("type", in.Type()),
					zap.Uint32("tx", uint32(in.Tx())),
					zap.Uint16("client", uint16(in.Client())),
					zap.Error(err),
				)

				entry.Outcome = journal.OutcomeRejected
				entry.Error = err.Error()
			} else {
				res.Applied++
				entry.Outcome = journal.OutcomeApplied
			}
		}

		if err := p.journal.RecordInstruction(entry); err != nil {
			return nil, fmt.Errorf("journal instruction %d: %w", seq, err)
		}
	}

	res.Finished = p.now()

	for _, a := range res.Accounts.All() {
		err := p.journal.RecordAccount(journal.AccountSnapshot{
			RunID:     p.runID,
			Client:    uint16(a.ID()),
			Available: a.Available(),
			Held:      a.Held(),
			Total:     a.Total(),
			Locked:    a.Locked(),
		})
		if err != nil {
			return nil, fmt.Errorf("journal account %d: %w", a.ID(), err)
		}
	}
	if err := p.journal.RecordRun(res.Run(p.source)); err != nil {
		return nil, fmt.Errorf("journal run: %w", err)
	}

	log.Info("run complete",
		zap.String("source", p.source),
		zap.Int("applied", res.Applied),
		zap.Int("rejected", res.Rejected),
		zap.Int("malformed", res.Malformed),
		zap.Int("accounts", res.Accounts.Len()),
		zap.Duration("elapsed", res.Finished.Sub(res.Started)),
	)
	return res, nil
}

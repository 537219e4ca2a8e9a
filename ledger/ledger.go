package ledger

import (
	"fmt"
)

// Ledger owns the history of accepted deposits and withdrawals and
// applies instructions against a set of accounts.
//
// A Ledger is not safe for concurrent use. Instructions must be applied
// in stream order because each one is validated against the outcome of
// everything before it.
type Ledger struct {
	records map[TransactionID]*Record
}

func New() *Ledger {
	return &Ledger{records: make(map[TransactionID]*Record)}
}

// Transaction returns a copy of the record for id.
func (l *Ledger) Transaction(id TransactionID) (Record, bool) {
	r, ok := l.records[id]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

func (l *Ledger) Len() int { return len(l.records) }

// Process applies in to accounts. It returns nil when the instruction was
// committed and an *Error otherwise. A rejected instruction leaves every
// balance and record untouched.
func (l *Ledger) Process(accounts *Accounts, in Instruction) error {
	switch v := in.(type) {
	case Deposit:
		return l.deposit(accounts, v)
	case Withdrawal:
		return l.withdraw(accounts, v)
	case Dispute:
		return l.dispute(accounts, v)
	case Resolve:
		return l.resolve(accounts, v)
	case Chargeback:
		return l.chargeback(accounts, v)
	default:
		return fmt.Errorf("unsupported instruction %T", in)
	}
}

func (l *Ledger) deposit(accounts *Accounts, d Deposit) error {
	if err := ValidateAmount(d.TxID, d.ClientID, d.Amount); err != nil {
		return err
	}
	if _, ok := l.records[d.TxID]; ok {
		return &Error{Kind: ErrDuplicateTransaction, Tx: d.TxID, Client: d.ClientID}
	}

	acct, ok := accounts.Get(d.ClientID)
	if ok && acct.locked {
		return &Error{Kind: ErrAccountLocked, Tx: d.TxID, Client: d.ClientID}
	}
	if !ok {
		acct = newAccount(d.ClientID)
		accounts.insert(acct)
	}

	acct.available = acct.available.Add(d.Amount.Decimal)
	l.records[d.TxID] = &Record{
		ID:      d.TxID,
		Account: d.ClientID,
		Kind:    KindDeposit,
		Amount:  d.Amount.Decimal,
		Status:  StatusClean,
	}
	return nil
}

func (l *Ledger) withdraw(accounts *Accounts, w Withdrawal) error {
	if err := ValidateAmount(w.TxID, w.ClientID, w.Amount); err != nil {
		return err
	}
	if _, ok := l.records[w.TxID]; ok {
		return &Error{Kind: ErrDuplicateTransaction, Tx: w.TxID, Client: w.ClientID}
	}

	acct, ok := accounts.Get(w.ClientID)
	if !ok {
		return &Error{Kind: ErrAccountNotFound, Tx: w.TxID, Client: w.ClientID}
	}
	if acct.locked {
		return &Error{Kind: ErrAccountLocked, Tx: w.TxID, Client: w.ClientID}
	}

	amount := w.Amount.Decimal
	if amount.GreaterThan(acct.available) {
		return &Error{
			Kind:      ErrInsufficientFunds,
			Tx:        w.TxID,
			Client:    w.ClientID,
			Op:        "withdraw",
			Amount:    amount,
			Available: acct.available,
		}
	}

	acct.available = acct.available.Sub(amount)
	l.records[w.TxID] = &Record{
		ID:      w.TxID,
		Account: w.ClientID,
		Kind:    KindWithdrawal,
		Amount:  amount,
		Status:  StatusClean,
	}
	return nil
}

// disputed looks up the record and account a dispute-family instruction
// refers to and rejects references to unknown, foreign or locked ones.
func (l *Ledger) disputed(accounts *Accounts, in Instruction) (*Record, *Account, error) {
	rec, ok := l.records[in.Tx()]
	if !ok {
		return nil, nil, &Error{Kind: ErrTransactionNotFound, Tx: in.Tx(), Client: in.Client()}
	}
	if rec.Account != in.Client() {
		return nil, nil, &Error{
			Kind:   ErrTransactionOwnerMismatch,
			Tx:     in.Tx(),
			Client: in.Client(),
			Owner:  rec.Account,
		}
	}

	// Records are only created together with their account.
	acct, ok := accounts.Get(rec.Account)
	if !ok {
		return nil, nil, &Error{Kind: ErrAccountNotFound, Tx: in.Tx(), Client: in.Client()}
	}
	if acct.locked {
		return nil, nil, &Error{Kind: ErrAccountLocked, Tx: in.Tx(), Client: in.Client()}
	}
	return rec, acct, nil
}

func (l *Ledger) dispute(accounts *Accounts, d Dispute) error {
	rec, acct, err := l.disputed(accounts, d)
	if err != nil {
		return err
	}
	if rec.Status != StatusClean {
		return &Error{
			Kind:   ErrTransactionNotDisputable,
			Tx:     d.TxID,
			Client: d.ClientID,
			Status: rec.Status,
		}
	}

	switch rec.Kind {
	case KindDeposit:
		// The deposited funds may already have been withdrawn; holding
		// them again would drive available below zero.
		if rec.Amount.GreaterThan(acct.available) {
			return &Error{
				Kind:      ErrInsufficientFunds,
				Tx:        d.TxID,
				Client:    d.ClientID,
				Op:        "hold",
				Amount:    rec.Amount,
				Available: acct.available,
			}
		}
		acct.available = acct.available.Sub(rec.Amount)
		acct.held = acct.held.Add(rec.Amount)
	case KindWithdrawal:
		// The cash already left available; the claim is tracked in held.
		acct.held = acct.held.Add(rec.Amount)
	}

	rec.Status = StatusDisputed
	return nil
}

func (l *Ledger) resolve(accounts *Accounts, r Resolve) error {
	rec, acct, err := l.disputed(accounts, r)
	if err != nil {
		return err
	}
	if rec.Status != StatusDisputed {
		return &Error{Kind: ErrTransactionNotDisputed, Tx: r.TxID, Client: r.ClientID, Status: rec.Status}
	}

	acct.held = acct.held.Sub(rec.Amount)
	if rec.Kind == KindDeposit {
		acct.available = acct.available.Add(rec.Amount)
	}

	rec.Status = StatusResolved
	return nil
}

func (l *Ledger) chargeback(accounts *Accounts, c Chargeback) error {
	rec, acct, err := l.disputed(accounts, c)
	if err != nil {
		return err
	}
	if rec.Status != StatusDisputed {
		return &Error{Kind: ErrTransactionNotDisputed, Tx: c.TxID, Client: c.ClientID, Status: rec.Status}
	}

	acct.held = acct.held.Sub(rec.Amount)
	if rec.Kind == KindWithdrawal {
		// Reversing a withdrawal returns the funds to the client.
		acct.available = acct.available.Add(rec.Amount)
	}
	acct.locked = true

	rec.Status = StatusChargedBack
	return nil
}

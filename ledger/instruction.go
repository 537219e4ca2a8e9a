package ledger

import (
	"github.com/shopspring/decimal"
)

// Instruction is one of Deposit, Withdrawal, Dispute, Resolve or
// Chargeback. The set is closed: only this package can add kinds.
type Instruction interface {
	Type() string
	Client() AccountID
	Tx() TransactionID
	instruction()
}

// Deposit credits a client's available funds.
type Deposit struct {
	ClientID AccountID
	TxID     TransactionID
	Amount   decimal.NullDecimal
}

// Withdrawal debits a client's available funds.
type Withdrawal struct {
	ClientID AccountID
	TxID     TransactionID
	Amount   decimal.NullDecimal
}

// Dispute claims a previous transaction was erroneous.
type Dispute struct {
	ClientID AccountID
	TxID     TransactionID
}

// Resolve closes a dispute in favour of the original transaction.
type Resolve struct {
	ClientID AccountID
	TxID     TransactionID
}

// Chargeback closes a dispute by reversing the transaction and locking
// the account.
type Chargeback struct {
	ClientID AccountID
	TxID     TransactionID
}

const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
	TypeDispute    = "dispute"
	TypeResolve    = "resolve"
	TypeChargeback = "chargeback"
)

func (d Deposit) Type() string         { return TypeDeposit }
func (d Deposit) Client() AccountID    { return d.ClientID }
func (d Deposit) Tx() TransactionID    { return d.TxID }
func (Deposit) instruction()           {}
func (w Withdrawal) Type() string      { return TypeWithdrawal }
func (w Withdrawal) Client() AccountID { return w.ClientID }
func (w Withdrawal) Tx() TransactionID { return w.TxID }
func (Withdrawal) instruction()        {}
func (d Dispute) Type() string         { return TypeDispute }
func (d Dispute) Client() AccountID    { return d.ClientID }
func (d Dispute) Tx() TransactionID    { return d.TxID }
func (Dispute) instruction()           {}
func (r Resolve) Type() string         { return TypeResolve }
func (r Resolve) Client() AccountID    { return r.ClientID }
func (r Resolve) Tx() TransactionID    { return r.TxID }
func (Resolve) instruction()           {}
func (c Chargeback) Type() string      { return TypeChargeback }
func (c Chargeback) Client() AccountID { return c.ClientID }
func (c Chargeback) Tx() TransactionID { return c.TxID }
func (Chargeback) instruction()        {}

// AmountOf returns the amount carried by in, if its kind has one.
func AmountOf(in Instruction) (decimal.NullDecimal, bool) {
	switch v := in.(type) {
	case Deposit:
		return v.Amount, true
	case Withdrawal:
		return v.Amount, true
	default:
		return decimal.NullDecimal{}, false
	}
}

// Amount is a convenience for building a present amount in tests and
// callers that already hold a decimal.
func Amount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

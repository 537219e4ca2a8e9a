package ledger

import (
	"github.com/shopspring/decimal"
)

// TransactionID identifies a deposit or withdrawal. Ids are unique
// across the whole instruction stream.
type TransactionID uint32

// Kind is the type of an accepted transaction.
type Kind int

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	default:
		return "unknown"
	}
}

// DisputeStatus tracks where a transaction is in the dispute lifecycle:
//
//	Clean -> Disputed -> Resolved | ChargedBack
type DisputeStatus int

const (
	StatusClean DisputeStatus = iota
	StatusDisputed
	StatusResolved
	StatusChargedBack
)

func (s DisputeStatus) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusDisputed:
		return "disputed"
	case StatusResolved:
		return "resolved"
	case StatusChargedBack:
		return "charged back"
	default:
		return "unknown"
	}
}

// Record is the ledger entry for an accepted deposit or withdrawal.
type Record struct {
	ID      TransactionID
	Account AccountID
	Kind    Kind
	Amount  decimal.Decimal
	Status  DisputeStatus
}

package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountMissing            = errors.New("amount missing")
	ErrAmountNotPositive        = errors.New("amount not positive")
	ErrDuplicateTransaction     = errors.New("duplicate transaction id")
	ErrAccountNotFound          = errors.New("account not found")
	ErrAccountLocked            = errors.New("account locked")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrTransactionOwnerMismatch = errors.New("transaction owner mismatch")
	ErrTransactionNotDisputable = errors.New("transaction not disputable")
	ErrTransactionNotDisputed   = errors.New("transaction not disputed")
)

// Error is a rejected instruction. Kind is one of the Err* sentinels and
// the remaining fields carry whatever context the kind needs to render
// its message.
type Error struct {
	Kind   error
	Tx     TransactionID
	Client AccountID

	// Op is the balance operation that failed ("withdraw" or "hold") for
	// ErrInsufficientFunds.
	Op        string
	Amount    decimal.Decimal
	Available decimal.Decimal

	// Owner is the account the transaction really belongs to for
	// ErrTransactionOwnerMismatch.
	Owner  AccountID
	Status DisputeStatus
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrAmountMissing:
		return fmt.Sprintf("Transaction #%d requires a defined amount", e.Tx)
	case ErrAmountNotPositive:
		return fmt.Sprintf("Transaction #%d requires a positive amount", e.Tx)
	case ErrDuplicateTransaction:
		return fmt.Sprintf("Transaction #%d already exists", e.Tx)
	case ErrAccountNotFound:
		return fmt.Sprintf("Transaction #%d references unknown account #%d", e.Tx, e.Client)
	case ErrAccountLocked:
		return fmt.Sprintf("Transaction #%d rejected: account #%d is locked", e.Tx, e.Client)
	case ErrInsufficientFunds:
		return fmt.Sprintf("Transaction #%d for account #%d can't %s $%s due to insufficient funds",
			e.Tx, e.Client, e.Op, e.Amount)
	case ErrTransactionNotFound:
		return fmt.Sprintf("Transaction #%d not found", e.Tx)
	case ErrTransactionOwnerMismatch:
		return fmt.Sprintf("Transaction #%d not found for account #%d", e.Tx, e.Client)
	case ErrTransactionNotDisputable:
		return fmt.Sprintf("Transaction #%d for account #%d can't be disputed while %s", e.Tx, e.Client, e.Status)
	case ErrTransactionNotDisputed:
		return fmt.Sprintf("Transaction #%d for account #%d is not under dispute", e.Tx, e.Client)
	default:
		return fmt.Sprintf("Transaction #%d for account #%d: %v", e.Tx, e.Client, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Kind }

// Is lets an owner mismatch also match ErrTransactionNotFound: from the
// client's point of view the transaction does not exist.
func (e *Error) Is(target error) bool {
	return e.Kind == ErrTransactionOwnerMismatch && target == ErrTransactionNotFound
}

// ValidateAmount checks that a deposit or withdrawal amount is present
// and strictly positive.
func ValidateAmount(tx TransactionID, client AccountID, amount decimal.NullDecimal) error {
	if !amount.Valid {
		return &Error{Kind: ErrAmountMissing, Tx: tx, Client: client}
	}
	if !amount.Decimal.IsPositive() {
		return &Error{Kind: ErrAmountNotPositive, Tx: tx, Client: client, Amount: amount.Decimal}
	}
	return nil
}

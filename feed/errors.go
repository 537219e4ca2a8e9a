package feed

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/payments/ledger"
)

var (
	ErrShortRow      = errors.New("expected field, but got end of row")
	ErrTooManyFields = errors.New("too many fields")
	ErrInvalidClient = errors.New("invalid client id")
	ErrInvalidTx     = errors.New("invalid transaction id")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseError is a row that could not be decoded into an instruction.
// Record counts data rows from 1, not including the header.
type ParseError struct {
	Record int
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("CSV deserialize error: record %d (line: %d): %v", e.Record, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%s is an unknown type", e.Type)
}

// AmountError wraps the ledger's amount validation so a malformed row
// still matches ledger.ErrAmountMissing or ledger.ErrAmountNotPositive.
type AmountError struct {
	Err error
}

func (e *AmountError) Error() string {
	switch {
	case errors.Is(e.Err, ledger.ErrAmountMissing):
		return "Transaction requires a defined amount"
	case errors.Is(e.Err, ledger.ErrAmountNotPositive):
		return "Transaction requires a positive amount"
	default:
		return e.Err.Error()
	}
}

func (e *AmountError) Unwrap() error { return e.Err }

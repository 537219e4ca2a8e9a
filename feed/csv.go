package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz"

	"github.com/rustyeddy/payments/ledger"
)

const (
	CompressionAuto = "auto"
	CompressionNone = "none"
	CompressionXZ   = "xz"
)

// Options controls how an instruction source is opened.
type Options struct {
	// Compression is "auto" (detect by .xz extension), "none" or "xz".
	Compression string
}

// CSV reads instruction rows:
//
//	type,client,tx,amount
//
// The header row is required. Fields are trimmed, the amount column may be
// left out entirely on dispute, resolve and chargeback rows, and blank
// lines are skipped.
type CSV struct {
	r      *csv.Reader
	closer io.Closer

	record   int
	sawFirst bool
}

// Open opens the instruction file at path.
func Open(path string, opts Options) (*CSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var r io.Reader = f
	if useXZ(path, opts.Compression) {
		zr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		r = zr
	}

	c := New(r)
	c.closer = f
	return c, nil
}

func useXZ(path, compression string) bool {
	switch compression {
	case CompressionXZ:
		return true
	case CompressionNone:
		return false
	default:
		return strings.HasSuffix(strings.ToLower(path), ".xz")
	}
}

// New reads instructions from r.
func New(r io.Reader) *CSV {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &CSV{r: cr}
}

func (c *CSV) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// Next returns the next instruction. It returns io.EOF at the end of the
// stream and a *ParseError for a malformed row; the stream stays usable
// after a ParseError. Any other error means the source cannot be read.
func (c *CSV) Next() (ledger.Instruction, error) {
	for {
		row, err := c.r.Read()
		if err == io.EOF {
			return nil, io.EOF
		}

		if !c.sawFirst {
			c.sawFirst = true
			if err != nil {
				return nil, fmt.Errorf("read header: %w", err)
			}
			if len(row) == 0 || !strings.EqualFold(strings.TrimSpace(row[0]), "type") {
				return nil, fmt.Errorf("missing header row (type,client,tx,amount), got %q", strings.Join(row, ","))
			}
			continue
		}
		if err == nil && len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		c.record++
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Record: c.record, Line: csvErr.StartLine, Err: csvErr.Err}
			}
			return nil, err
		}

		line, _ := c.r.FieldPos(0)
		in, err := parseRow(row)
		if err != nil {
			return nil, &ParseError{Record: c.record, Line: line, Err: err}
		}
		return in, nil
	}
}

// parseRow turns trimmed fields into an instruction.
func parseRow(row []string) (ledger.Instruction, error) {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	// A trailing comma yields an empty fifth field; tolerate it.
	for len(row) > 4 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	if len(row) > 4 {
		return nil, ErrTooManyFields
	}
	if len(row) < 3 {
		return nil, ErrShortRow
	}

	typ := strings.ToLower(row[0])
	switch typ {
	case ledger.TypeDeposit, ledger.TypeWithdrawal, ledger.TypeDispute, ledger.TypeResolve, ledger.TypeChargeback:
	default:
		return nil, &UnknownTypeError{Type: row[0]}
	}

	client, err := strconv.ParseUint(row[1], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidClient, row[1])
	}
	tx, err := strconv.ParseUint(row[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidTx, row[2])
	}
	cid, tid := ledger.AccountID(client), ledger.TransactionID(tx)

	switch typ {
	case ledger.TypeDispute:
		return ledger.Dispute{ClientID: cid, TxID: tid}, nil
	case ledger.TypeResolve:
		return ledger.Resolve{ClientID: cid, TxID: tid}, nil
	case ledger.TypeChargeback:
		return ledger.Chargeback{ClientID: cid, TxID: tid}, nil
	}

	var amount decimal.NullDecimal
	if len(row) == 4 && row[3] != "" {
		d, err := decimal.NewFromString(row[3])
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidAmount, row[3])
		}
		amount = ledger.Amount(d)
	}
	if err := ledger.ValidateAmount(tid, cid, amount); err != nil {
		return nil, &AmountError{Err: err}
	}

	if typ == ledger.TypeDeposit {
		return ledger.Deposit{ClientID: cid, TxID: tid, Amount: amount}, nil
	}
	return ledger.Withdrawal{ClientID: cid, TxID: tid, Amount: amount}, nil
}

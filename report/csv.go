package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/payments/ledger"
)

// Header is the first line of the account report.
var Header = []string{"client", "available", "held", "total", "locked"}

// WriteCSV writes one line per account in first-seen order. A negative
// precision prints amounts exactly.
func WriteCSV(w io.Writer, accounts []*ledger.Account, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.ID()), 10),
			Amount(a.Available(), precision),
			Amount(a.Held(), precision),
			Amount(a.Total(), precision),
			strconv.FormatBool(a.Locked()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Amount renders d with a fixed number of fractional digits, or exactly
// when precision is negative.
func Amount(d decimal.Decimal, precision int) string {
	if precision < 0 {
		return d.String()
	}
	return d.StringFixed(int32(precision))
}

// WriteFailures writes one line per failure.
func WriteFailures(w io.Writer, failures []error) error {
	for _, err := range failures {
		if _, err := io.WriteString(w, err.Error()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/payments/ledger"
)

// accounts builds two accounts: #2 with funds on hold and #1 locked by a
// chargeback. #2 is created first.
func accounts(t *testing.T) []*ledger.Account {
	t.Helper()

	amt := func(s string) decimal.NullDecimal { return ledger.Amount(decimal.RequireFromString(s)) }
	steps := []ledger.Instruction{
		ledger.Deposit{ClientID: 2, TxID: 1, Amount: amt("10.12345")},
		ledger.Deposit{ClientID: 1, TxID: 2, Amount: amt("3")},
		ledger.Deposit{ClientID: 2, TxID: 3, Amount: amt("2.5")},
		ledger.Dispute{ClientID: 2, TxID: 3},
		ledger.Dispute{ClientID: 1, TxID: 2},
		ledger.Chargeback{ClientID: 1, TxID: 2},
	}

	l, accts := ledger.New(), ledger.NewAccounts()
	for _, in := range steps {
		require.NoError(t, l.Process(accts, in))
	}
	return accts.All()
}

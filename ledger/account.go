package ledger

import (
	"github.com/shopspring/decimal"
)

// AccountID identifies a client.
type AccountID uint16

// Account holds the balances of a single client.
//
// Balances only change through Ledger.Process. Total is always derived
// from Available and Held and is never stored.
type Account struct {
	id        AccountID
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
}

func newAccount(id AccountID) *Account {
	return &Account{
		id:        id,
		available: decimal.Zero,
		held:      decimal.Zero,
	}
}

func (a *Account) ID() AccountID { return a.id }

// Available is the amount the client can withdraw.
func (a *Account) Available() decimal.Decimal { return a.available }

// Held is the amount frozen by open disputes.
func (a *Account) Held() decimal.Decimal { return a.held }

func (a *Account) Total() decimal.Decimal { return a.available.Add(a.held) }

// Locked reports whether a chargeback froze the account.
func (a *Account) Locked() bool { return a.locked }

// Accounts maps clients to accounts and remembers the order in which
// accounts were first created, so iteration is deterministic.
type Accounts struct {
	byID  map[AccountID]*Account
	order []AccountID
}

func NewAccounts() *Accounts {
	return &Accounts{byID: make(map[AccountID]*Account)}
}

// Get returns the account for id, if it exists.
func (m *Accounts) Get(id AccountID) (*Account, bool) {
	a, ok := m.byID[id]
	return a, ok
}

func (m *Accounts) Len() int { return len(m.order) }

// All returns the accounts in first-seen order.
func (m *Accounts) All() []*Account {
	out := make([]*Account, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// insert adds a new account. Callers must have checked it is absent.
func (m *Accounts) insert(a *Account) {
	m.byID[a.id] = a
	m.order = append(m.order, a.id)
}

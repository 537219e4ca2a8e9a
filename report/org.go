package report

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/payments/ledger"
)

// FormatAccountOrg renders an account as an Org-mode block, keeping the
// balances in a PROPERTIES drawer for easy search.
func FormatAccountOrg(a *ledger.Account, precision int) string {
	state := "OPEN"
	if a.Locked() {
		state = "LOCKED"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("** Account #%d [%s]\n", a.ID(), state))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":CLIENT: %d\n", a.ID()))
	b.WriteString(fmt.Sprintf(":AVAILABLE: %s\n", Amount(a.Available(), precision)))
	b.WriteString(fmt.Sprintf(":HELD: %s\n", Amount(a.Held(), precision)))
	b.WriteString(fmt.Sprintf(":TOTAL: %s\n", Amount(a.Total(), precision)))
	b.WriteString(fmt.Sprintf(":LOCKED: %t\n", a.Locked()))
	b.WriteString(":END:\n")

	return b.String()
}

// FormatAccountsOrg renders multiple accounts separated by blank lines.
func FormatAccountsOrg(accounts []*ledger.Account, precision int) string {
	var b strings.Builder
	for i, a := range accounts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatAccountOrg(a, precision))
	}
	return b.String()
}

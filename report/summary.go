package report

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/payments/journal"
)

// PrintRun writes a human readable summary of a run.
func PrintRun(w io.Writer, r journal.Run) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Payments Run")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Source:        %s\n", r.Source)
	fmt.Fprintf(w, "Started:       %s\n", r.Started.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:      %s\n", r.Finished.Sub(r.Started).Round(time.Millisecond))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Instructions")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Applied:       %d\n", r.Applied)
	fmt.Fprintf(w, "Rejected:      %d\n", r.Rejected)
	fmt.Fprintf(w, "Malformed:     %d\n", r.Malformed)
	fmt.Fprintf(w, "Accounts:      %d\n", r.Accounts)
}

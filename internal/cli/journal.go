package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/payments/journal"
	"github.com/rustyeddy/payments/report"
)

func newJournalCmd(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query the SQLite audit journal",
		Long: `Query runs recorded with --journal sqlite.

Subcommands:
  runs      - List recorded runs, newest first
  run       - Show the summary of one run
  failures  - List the rejected and malformed instructions of a run
  accounts  - Show the final accounts of a run

Examples:
  payments journal runs
  payments journal failures 01HV8X3E6N8Q4B2C7D9F0G1H2J --db ./payments.sqlite`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "runs",
			Short: "List recorded runs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withJournal(cmd, ro, func(j *journal.SQLite) error {
					runs, err := j.ListRuns()
					if err != nil {
						return fmt.Errorf("query runs: %w", err)
					}
					return writeRuns(cmd.OutOrStdout(), runs)
				})
			},
		},
		&cobra.Command{
			Use:   "run <run-id>",
			Short: "Show the summary of a run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withJournal(cmd, ro, func(j *journal.SQLite) error {
					r, err := j.GetRun(args[0])
					if err != nil {
						return fmt.Errorf("get run: %w", err)
					}
					report.PrintRun(cmd.OutOrStdout(), r)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "failures <run-id>",
			Short: "List the failed instructions of a run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withJournal(cmd, ro, func(j *journal.SQLite) error {
					entries, err := j.ListFailures(args[0])
					if err != nil {
						return fmt.Errorf("query failures: %w", err)
					}
					out := cmd.OutOrStdout()
					for _, e := range entries {
						fmt.Fprintf(out, "%d\t%s\t%s\n", e.Seq, e.Outcome, e.Error)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "accounts <run-id>",
			Short: "Show the final accounts of a run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withJournal(cmd, ro, func(j *journal.SQLite) error {
					accts, err := j.ListAccounts(args[0])
					if err != nil {
						return fmt.Errorf("query accounts: %w", err)
					}
					return writeSnapshots(cmd.OutOrStdout(), accts)
				})
			},
		},
	)

	return cmd
}

// withJournal opens the configured SQLite journal for the duration of fn.
func withJournal(cmd *cobra.Command, ro *rootOptions, fn func(*journal.SQLite) error) error {
	cfg, err := ro.loadConfig(cmd)
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	return fn(j)
}

func writeRuns(w io.Writer, runs []journal.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tSTARTED\tSOURCE\tAPPLIED\tREJECTED\tMALFORMED\tACCOUNTS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.RunID, r.Started.Format(time.RFC3339), r.Source,
			r.Applied, r.Rejected, r.Malformed, r.Accounts)
	}
	return tw.Flush()
}

func writeSnapshots(w io.Writer, accts []journal.AccountSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLIENT\tAVAILABLE\tHELD\tTOTAL\tLOCKED")
	for _, a := range accts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", a.Client, a.Available, a.Held, a.Total, a.Locked)
	}
	return tw.Flush()
}

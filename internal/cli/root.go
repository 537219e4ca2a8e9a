// Package cli wires the payments command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/payments/config"
)

const version = "1.0.0"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	ConfigPath string
	Format     string
	Precision  int
	Journal    string
	JournalDir string
	DBPath     string
	LogLevel   string
	Summary    bool
}

func NewRootCmd() *cobra.Command {
	ro := &rootOptions{}
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "payments [flags] <instructions.csv>",
		Short: "Apply a stream of payment instructions to client accounts",
		Long: `Payments reads deposit, withdrawal, dispute, resolve and chargeback
instructions from a CSV file and prints the final state of every client
account to standard output.

Malformed and rejected instructions never stop the run. They are printed
to standard error, one per line, after the account report.

Examples:
  payments transactions.csv > accounts.csv
  payments --format org --precision 2 transactions.csv.xz
  payments --journal sqlite --db ./payments.sqlite transactions.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayments(cmd, ro, args[0])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&ro.ConfigPath, "config", "", "Path to config file (YAML or JSON, optional)")
	pf.StringVar(&ro.Format, "format", def.Output.Format, "Account report format: csv|org")
	pf.IntVar(&ro.Precision, "precision", def.Output.Precision, "Fractional digits in the report, -1 for exact amounts")
	pf.StringVar(&ro.Journal, "journal", def.Journal.Type, "Audit journal: none|csv|sqlite")
	pf.StringVar(&ro.JournalDir, "journal-dir", def.Journal.Dir, "Directory for the CSV journal")
	pf.StringVar(&ro.DBPath, "db", def.Journal.DBPath, "SQLite journal database")
	pf.StringVar(&ro.LogLevel, "log-level", def.Log.Level, "Log level: debug|info|warn|error")
	pf.BoolVar(&ro.Summary, "summary", def.Output.Summary, "Print a run summary to standard error")

	cmd.AddCommand(
		newConfigCmd(),
		newJournalCmd(ro),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "payments version %s\n", version)
			},
		},
	)

	return cmd
}

// loadConfig starts from the config file (or the defaults) and applies
// the flags the user set explicitly.
func (ro *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if ro.ConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(ro.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = ro.Format
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = ro.Precision
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = ro.Summary
	}
	if flags.Changed("journal") {
		cfg.Journal.Type = ro.Journal
	}
	if flags.Changed("journal-dir") {
		cfg.Journal.Dir = ro.JournalDir
	}
	if flags.Changed("db") {
		cfg.Journal.DBPath = ro.DBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = ro.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}


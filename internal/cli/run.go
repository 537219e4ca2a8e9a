package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/payments/batch"
	"github.com/rustyeddy/payments/config"
	"github.com/rustyeddy/payments/feed"
	"github.com/rustyeddy/payments/journal"
	"github.com/rustyeddy/payments/logging"
	"github.com/rustyeddy/payments/report"
)

func runPayments(cmd *cobra.Command, ro *rootOptions, path string) (err error) {
	cfg, err := ro.loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	src, err := feed.Open(path, feed.Options{Compression: cfg.Input.Compression})
	if err != nil {
		return fmt.Errorf("open instructions: %w", err)
	}
	defer src.Close()

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer func() {
		if cerr := j.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close journal: %w", cerr)
		}
	}()

	log.Debug("starting run",
		zap.String("source", path),
		zap.String("journal", cfg.Journal.Type),
		zap.String("format", cfg.Output.Format),
	)

	res, err := batch.New(
		batch.WithLogger(log),
		batch.WithJournal(j),
		batch.WithSourceName(path),
	).Run(src)
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := writeReport(stdout, cfg.Output, res); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := report.WriteFailures(stderr, res.Failures); err != nil {
		return fmt.Errorf("write failures: %w", err)
	}
	if cfg.Output.Summary {
		report.PrintRun(stderr, res.Run(path))
	}
	return nil
}

func writeReport(w io.Writer, out config.OutputConfig, res *batch.Result) error {
	switch out.Format {
	case "org":
		_, err := io.WriteString(w, report.FormatAccountsOrg(res.Accounts.All(), out.Precision))
		return err
	default:
		return report.WriteCSV(w, res.Accounts.All(), out.Precision)
	}
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "none", "":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(cfg.Dir)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}

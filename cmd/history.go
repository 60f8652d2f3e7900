package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliokit/folio"
	"github.com/foliokit/folio/eodhd"
	"github.com/foliokit/folio/renderer"
	"github.com/google/subcommands"
)

// historyCmd replays the portfolio value against the benchmark.
type historyCmd struct {
	days int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "compare past performance against the benchmark" }
func (*historyCmd) Usage() string {
	return `history [-days <n>]:
  Replay the portfolio value over the last <n> days and compare its
  cumulative return against the benchmark, both rebased to zero at the
  start of the window.
`
}
func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "number of days to replay")
}
func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if c.days <= 0 {
		fmt.Fprintln(os.Stderr, "days must be positive")
		return subcommands.ExitUsageError
	}

	db, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	ledger, err := loadLedger(db)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Println("no transactions recorded yet")
		return subcommands.ExitSuccess
	}

	end := folio.Today()
	start := end.Add(-c.days)

	client, err := eodhd.NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tickers := append(ledger.Tickers(), *benchmark)
	all, err := client.FetchSeries(tickers, start, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	bench := all[*benchmark]
	delete(all, *benchmark)

	points := folio.Replay(ledger, all, bench, start, end)
	printMarkdown(renderer.History(*benchmark, points))
	return subcommands.ExitSuccess
}

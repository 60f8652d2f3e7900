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

// holdingCmd reports the current portfolio with live prices.
type holdingCmd struct {
	day string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the portfolio with live valuation" }
func (*holdingCmd) Usage() string {
	return `holding [-d <date>]:
  Display every open position with market value, total and daily return,
  and alpha against the benchmark, plus portfolio level metrics.
`
}
func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "valuation date (default today)")
}
func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	on, err := parseDay(c.day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	rows, metrics, st := valuate(on)
	if st != subcommands.ExitSuccess {
		return st
	}
	printMarkdown(renderer.Holdings(on, rows, metrics))
	return subcommands.ExitSuccess
}

// summaryCmd reports the portfolio level figures only.
type summaryCmd struct {
	day string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio level figures" }
func (*summaryCmd) Usage() string {
	return `summary [-d <date>]:
  Display total value, cash balance, total return and daily P&L without
  the position table.
`
}
func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "valuation date (default today)")
}
func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	on, err := parseDay(c.day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	_, metrics, st := valuate(on)
	if st != subcommands.ExitSuccess {
		return st
	}
	printMarkdown(renderer.Summary(on, metrics))
	return subcommands.ExitSuccess
}

// sectorsCmd reports the sector allocation of the portfolio.
type sectorsCmd struct {
	day string
}

func (*sectorsCmd) Name() string     { return "sectors" }
func (*sectorsCmd) Synopsis() string { return "display the sector allocation" }
func (*sectorsCmd) Usage() string {
	return `sectors [-d <date>]:
  Display the portfolio market value grouped by sector.
`
}
func (c *sectorsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "valuation date (default today)")
}
func (c *sectorsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	on, err := parseDay(c.day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	rows, _, st := valuate(on)
	if st != subcommands.ExitSuccess {
		return st
	}
	printMarkdown(renderer.Sectors(folio.SectorAllocation(rows)))
	return subcommands.ExitSuccess
}

// valuate loads the ledger, fetches quotes and the benchmark series, and
// computes the valuation rows and metrics for the given day.
func valuate(on folio.Date) ([]folio.PortfolioRow, folio.PortfolioMetrics, subcommands.ExitStatus) {
	fail := func(err error) ([]folio.PortfolioRow, folio.PortfolioMetrics, subcommands.ExitStatus) {
		fmt.Fprintln(os.Stderr, err)
		return nil, folio.PortfolioMetrics{}, subcommands.ExitFailure
	}

	db, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer db.Close()

	ledger, err := loadLedger(db)
	if err != nil {
		return fail(err)
	}

	holdings := ledger.Holdings(on)
	cash := ledger.CashBalance(on)

	client, err := eodhd.NewClient()
	if err != nil {
		return fail(err)
	}

	var quotes map[string]folio.Quote
	var bench folio.Series
	if len(holdings) > 0 {
		tickers := make([]string, 0, len(holdings))
		for _, h := range holdings {
			tickers = append(tickers, h.Ticker)
		}
		quotes, err = client.FetchQuotes(tickers)
		if err != nil {
			return fail(err)
		}

		// alpha needs benchmark closes back to the oldest acquisition
		from := ledger.OldestTransactionDate()
		series, err := client.FetchSeries([]string{*benchmark}, from, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: no benchmark series for %s: %v\n", *benchmark, err)
		} else {
			bench = series[*benchmark]
		}
	}

	rows := folio.BuildRows(holdings, quotes, cash, bench, on)
	metrics := folio.ComputeMetrics(rows, cash, ledger, on)
	return rows, metrics, subcommands.ExitSuccess
}

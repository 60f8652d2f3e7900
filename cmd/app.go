// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/foliokit/folio"
	"github.com/foliokit/folio/store"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// As a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables for app-wide flags.

var storePath = flag.String("store", "folio.db", "Path to the portfolio database file")
var benchmark = flag.String("benchmark", "SPY", "Benchmark ticker used for alpha and the comparison series")

// Commands lists every subcommand for registration by a main package.
var Commands = []subcommands.Command{
	&depositCmd{},
	&withdrawCmd{},
	&buyCmd{},
	&sellCmd{},
	&seedCmd{},
	&txCmd{},
	&importCmd{},
	&holdingCmd{},
	&summaryCmd{},
	&sectorsCmd{},
	&historyCmd{},
	&alertAddCmd{},
	&alertListCmd{},
	&alertDeleteCmd{},
	&alertReactivateCmd{},
	&alertSubscribeCmd{},
	&alertUnsubscribeCmd{},
	&alertCheckCmd{},
	&watchCmd{},
	&testEmailCmd{},
	&assistCmd{},
	&topicCmd{},
}

// openStore opens the portfolio database.
func openStore() (*store.SQLite, error) {
	db, err := store.OpenSQLite(*storePath)
	if err != nil {
		return nil, fmt.Errorf("could not open store %q: %w", *storePath, err)
	}
	return db, nil
}

// loadLedger reads the full ledger from the store.
func loadLedger(db *store.SQLite) (*folio.Ledger, error) {
	ls, err := store.NewLedgerStore(db)
	if err != nil {
		return nil, err
	}
	return ls.Load()
}

// printMarkdown renders a markdown report on the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// raw markdown is still readable
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseAmount parses a positive decimal CLI argument.
func parseAmount(name, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be positive, got %s", name, v)
	}
	return v, nil
}

// parseDay parses a -d style date flag, defaulting to today when empty.
func parseDay(s string) (folio.Date, error) {
	if strings.TrimSpace(s) == "" {
		return folio.Today(), nil
	}
	return folio.ParseDate(s)
}

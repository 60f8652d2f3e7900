package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliokit/folio"
	"github.com/foliokit/folio/renderer"
	"github.com/foliokit/folio/store"
	"github.com/google/subcommands"
)

// recordTx appends a single transaction to the store and echoes it back.
func recordTx(tx folio.Transaction) subcommands.ExitStatus {
	db, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	ls, err := store.NewLedgerStore(db)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ls.Append(tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("recorded %s\n", tx)
	return subcommands.ExitSuccess
}

// depositCmd records a cash deposit.
type depositCmd struct {
	day string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash deposit" }
func (*depositCmd) Usage() string {
	return `deposit [-d <date>] <amount>:
  Record a cash deposit into the portfolio.
`
}
func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "transaction date (default today)")
}
func (c *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "deposit requires exactly one amount argument")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount("amount", f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return recordTx(folio.NewDeposit(on, amount))
}

// withdrawCmd records a cash withdrawal.
type withdrawCmd struct {
	day string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal" }
func (*withdrawCmd) Usage() string {
	return `withdraw [-d <date>] <amount>:
  Record a cash withdrawal from the portfolio.
`
}
func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "transaction date (default today)")
}
func (c *withdrawCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "withdraw requires exactly one amount argument")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount("amount", f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return recordTx(folio.NewWithdraw(on, amount))
}

// buyCmd records a security purchase.
type buyCmd struct {
	day string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a security purchase" }
func (*buyCmd) Usage() string {
	return `buy [-d <date>] <ticker> <quantity> <price>:
  Record a purchase of <quantity> shares of <ticker> at <price> per share.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "transaction date (default today)")
}
func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	tx, st := parseTradeArgs(c.day, f, folio.KindBuy)
	if st != subcommands.ExitSuccess {
		return st
	}
	return recordTx(tx)
}

// sellCmd records a security sale.
type sellCmd struct {
	day string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a security sale" }
func (*sellCmd) Usage() string {
	return `sell [-d <date>] <ticker> <quantity> <price>:
  Record a sale of <quantity> shares of <ticker> at <price> per share.
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "transaction date (default today)")
}
func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	tx, st := parseTradeArgs(c.day, f, folio.KindSell)
	if st != subcommands.ExitSuccess {
		return st
	}
	return recordTx(tx)
}

// seedCmd records an initial position without touching cash.
type seedCmd struct {
	day string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "record an initial position" }
func (*seedCmd) Usage() string {
	return `seed [-d <date>] <ticker> <quantity> <price>:
  Record a pre-existing position at its average cost. Cash is not affected.
`
}
func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "transaction date (default today)")
}
func (c *seedCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	tx, st := parseTradeArgs(c.day, f, folio.KindInitial)
	if st != subcommands.ExitSuccess {
		return st
	}
	return recordTx(tx)
}

// parseTradeArgs parses the common <ticker> <quantity> <price> argument triple.
func parseTradeArgs(day string, f *flag.FlagSet, kind folio.TxKind) (folio.Transaction, subcommands.ExitStatus) {
	if f.NArg() != 3 {
		fmt.Fprintf(os.Stderr, "%s requires <ticker> <quantity> <price> arguments\n", f.Name())
		return folio.Transaction{}, subcommands.ExitUsageError
	}
	on, err := parseDay(day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return folio.Transaction{}, subcommands.ExitUsageError
	}
	ticker := folio.NormalizeTicker(f.Arg(0))
	if ticker == "" || ticker == folio.CashTicker {
		fmt.Fprintf(os.Stderr, "invalid ticker %q\n", f.Arg(0))
		return folio.Transaction{}, subcommands.ExitUsageError
	}
	qty, err := parseAmount("quantity", f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return folio.Transaction{}, subcommands.ExitUsageError
	}
	price, err := parseAmount("price", f.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return folio.Transaction{}, subcommands.ExitUsageError
	}
	switch kind {
	case folio.KindBuy:
		return folio.NewBuy(on, ticker, qty, price), subcommands.ExitSuccess
	case folio.KindSell:
		return folio.NewSell(on, ticker, qty, price), subcommands.ExitSuccess
	default:
		return folio.NewInitialPosition(on, ticker, qty, price), subcommands.ExitSuccess
	}
}

// txCmd lists recorded transactions.
type txCmd struct {
	ticker string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list recorded transactions" }
func (*txCmd) Usage() string {
	return `tx [-t <ticker>]:
  List all recorded transactions in date order.
`
}
func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "only show transactions for this ticker")
}
func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
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

	filter := folio.NormalizeTicker(c.ticker)
	var txs []folio.Transaction
	for _, tx := range ledger.Transactions() {
		if filter != "" && tx.Ticker != filter {
			continue
		}
		txs = append(txs, tx)
	}
	printMarkdown(renderer.Transactions(txs))
	return subcommands.ExitSuccess
}

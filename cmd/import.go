package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/foliokit/folio"
	"github.com/foliokit/folio/store"
	"github.com/google/subcommands"
)

// importCmd bulk loads transactions from a CSV file.
type importCmd struct {
	replace bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV file" }
func (*importCmd) Usage() string {
	return `import [-replace] <file.csv>:
  Import transactions from a CSV file with columns
  Date,Ticker,Type,Quantity,Price. A header row is skipped when present.
  With -replace the imported rows replace the whole ledger, otherwise
  they are appended.
`
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.replace, "replace", false, "replace the existing ledger instead of appending")
}
func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import requires exactly one file argument")
		return subcommands.ExitUsageError
	}
	txs, err := readTransactionsCSV(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

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

	if c.replace {
		if err := ls.Rewrite(folio.NewLedger(txs...)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("replaced ledger with %d transactions\n", len(txs))
		return subcommands.ExitSuccess
	}

	for _, tx := range txs {
		if err := ls.Append(tx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("imported %d transactions\n", len(txs))
	return subcommands.ExitSuccess
}

func readTransactionsCSV(path string) ([]folio.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	var txs []folio.Transaction
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if line == 1 && rec[0] == "Date" {
			continue
		}
		tx, err := folio.ParseRow(rec[0], rec[1], rec[2], rec[3], rec[4])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

package renderer

import (
	"bytes"
	"fmt"

	"github.com/foliokit/folio"
)

// History renders the replayed performance series next to its benchmark.
func History(benchmark string, points []folio.HistoricalPoint) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Performance vs %s\n\n", benchmark)
	if len(points) == 0 {
		fmt.Fprintln(&b, "Insufficient data for the requested window.")
		return b.String()
	}

	var cells [][]string
	for _, p := range points {
		cells = append(cells, []string{
			p.Date.String(),
			folio.USD(p.PortfolioValue).String(),
			folio.Percent(p.PortfolioReturnPct),
			folio.Percent(p.BenchmarkReturnPct),
		})
	}
	b.WriteString(table(
		[]string{"Date", "Portfolio Value", "Portfolio %", benchmark + " %"},
		[]alignment{alignLeft, alignRight, alignRight, alignRight},
		cells,
	))
	return b.String()
}

// Transactions renders the ledger listing.
func Transactions(txs []folio.Transaction) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "The ledger is empty.")
		return b.String()
	}

	var cells [][]string
	for _, tx := range txs {
		cells = append(cells, []string{
			tx.Date.String(),
			string(tx.Kind),
			tx.Ticker,
			tx.Quantity.String(),
			tx.Price.String(),
		})
	}
	b.WriteString(table(
		[]string{"Date", "Type", "Ticker", "Quantity", "Price"},
		[]alignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		cells,
	))
	return b.String()
}

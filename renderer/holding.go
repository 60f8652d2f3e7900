package renderer

import (
	"bytes"
	"fmt"

	"github.com/foliokit/folio"
)

func kpis(b *bytes.Buffer, metrics folio.PortfolioMetrics) {
	fmt.Fprintf(b, "- Total Value: %s\n", folio.USD(metrics.TotalValue))
	fmt.Fprintf(b, "- Cash Balance: %s\n", folio.USD(metrics.Cash))
	fmt.Fprintf(b, "- Total Return: %s (%s)\n", folio.USD(metrics.TotalReturn).SignedString(), folio.Percent(metrics.TotalReturnPct))
	fmt.Fprintf(b, "- Daily P&L: %s\n", folio.USD(metrics.DailyPnL).SignedString())
}

// Summary renders the portfolio level figures without the position table.
func Summary(on folio.Date, metrics folio.PortfolioMetrics) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Summary on %s\n\n", on)
	kpis(&b, metrics)
	return b.String()
}

// Holdings renders the portfolio table with its top-level KPIs.
func Holdings(on folio.Date, rows []folio.PortfolioRow, metrics folio.PortfolioMetrics) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Portfolio on %s\n\n", on)

	kpis(&b, metrics)
	b.WriteString("\n")

	if len(rows) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	headers := []string{"Ticker", "Qty", "Avg Cost", "Price", "Market Value", "% Portfolio", "Total %", "Daily %", "Alpha", "Sector"}
	align := []alignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}
	var cells [][]string
	for _, row := range rows {
		price := folio.USD(row.Price).String()
		if !row.PriceKnown {
			price = "n/a"
		}
		cells = append(cells, []string{
			row.Ticker,
			row.Quantity.String(),
			folio.USD(row.AvgCost).String(),
			price,
			folio.USD(row.MarketValue).String(),
			folio.Percent(row.PortfolioPct),
			folio.Percent(row.TotalReturnPct),
			folio.Percent(row.DailyReturnPct),
			folio.Percent(row.Alpha),
			row.Sector,
		})
	}
	b.WriteString(table(headers, align, cells))
	return b.String()
}

// Sectors renders the sector allocation breakdown.
func Sectors(sectors []folio.SectorSlice) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Sector Allocation\n\n")
	if len(sectors) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}
	var cells [][]string
	for _, s := range sectors {
		cells = append(cells, []string{s.Sector, folio.USD(s.Value).String(), folio.Percent(s.Pct)})
	}
	b.WriteString(table(
		[]string{"Sector", "Value", "Share"},
		[]alignment{alignLeft, alignRight, alignRight},
		cells,
	))
	return b.String()
}

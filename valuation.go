package folio

import (
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PortfolioRow is one line of the holdings table: a position combined with
// its live market view and derived performance metrics.
type PortfolioRow struct {
	Ticker         string
	Quantity       decimal.Decimal
	AvgCost        decimal.Decimal
	Price          decimal.Decimal
	MarketValue    decimal.Decimal
	PortfolioPct   float64 // share of overall portfolio value, in [0,100]
	TotalReturnPct float64
	DailyReturnPct float64
	Alpha          float64 // return in excess of the benchmark since first acquisition
	Sector         string
	PriceKnown     bool
}

// PortfolioMetrics are the portfolio-level KPIs.
type PortfolioMetrics struct {
	TotalValue     decimal.Decimal // securities at market plus cash
	Cash           decimal.Decimal
	TotalReturn    decimal.Decimal // total value minus net invested cash
	TotalReturnPct float64         // zero when net invested is not positive
	DailyPnL       decimal.Decimal
}

// SectorSlice is one sector's share of the invested portfolio.
type SectorSlice struct {
	Sector string
	Value  decimal.Decimal
	Pct    float64
}

// BuildRows combines holdings with their quotes into the portfolio table.
//
// A holding whose quote is unavailable still gets a row, valued at zero, so
// the rest of the table renders. The benchmark series drives the alpha
// column; a hole in the benchmark data makes the benchmark return 0 rather
// than failing the row.
func BuildRows(holdings []Holding, quotes map[string]Quote, cash decimal.Decimal, bench Series, on Date) []PortfolioRow {
	rows := make([]PortfolioRow, 0, len(holdings))

	invested := decimal.Zero
	for _, h := range holdings {
		q, ok := quotes[h.Ticker]
		if !ok {
			q = UnavailableQuote()
		}

		row := PortfolioRow{
			Ticker:      h.Ticker,
			Quantity:    h.Quantity,
			AvgCost:     h.AvgCost,
			Price:       q.Price,
			MarketValue: h.Quantity.Mul(q.Price),
			Sector:      q.Sector,
			PriceKnown:  q.Known,
		}
		if row.Sector == "" {
			row.Sector = SectorUnknown
		}

		if q.Known && h.AvgCost.IsPositive() {
			row.TotalReturnPct = pct(q.Price.Sub(h.AvgCost), h.AvgCost)
		}
		if q.Known && q.PrevClose.IsPositive() {
			row.DailyReturnPct = pct(q.Price.Sub(q.PrevClose), q.PrevClose)
		}
		if q.Known {
			benchReturn, _ := bench.ReturnBetween(h.FirstAcquired, on)
			row.Alpha = row.TotalReturnPct - benchReturn
		}

		invested = invested.Add(row.MarketValue)
		rows = append(rows, row)
	}

	// Negative cash (margin) is excluded from the allocation denominator so
	// that percentages stay within [0,100].
	denominator := invested
	if cash.IsPositive() {
		denominator = denominator.Add(cash)
	}
	if denominator.IsPositive() {
		for i := range rows {
			rows[i].PortfolioPct = pct(rows[i].MarketValue, denominator)
		}
	}

	return rows
}

// ComputeMetrics derives the portfolio-level KPIs from the holdings table.
//
// DailyPnL is derived from the per-row daily percentage, not fetched
// independently, so it stays consistent with the displayed percentages even
// when upstream data is partially stale.
func ComputeMetrics(rows []PortfolioRow, cash decimal.Decimal, ledger *Ledger, on Date) PortfolioMetrics {
	market := decimal.Zero
	daily := decimal.Zero
	for _, row := range rows {
		market = market.Add(row.MarketValue)
		daily = daily.Add(row.MarketValue.Mul(decimal.NewFromFloat(row.DailyReturnPct)).Div(hundred))
	}

	m := PortfolioMetrics{
		TotalValue: market.Add(cash),
		Cash:       cash,
		DailyPnL:   daily,
	}

	netInvested := ledger.NetInvested(on)
	m.TotalReturn = m.TotalValue.Sub(netInvested)
	if netInvested.IsPositive() {
		m.TotalReturnPct = pct(m.TotalReturn, netInvested)
	}
	return m
}

// SectorAllocation groups market value by sector, largest first.
func SectorAllocation(rows []PortfolioRow) []SectorSlice {
	byName := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, row := range rows {
		byName[row.Sector] = byName[row.Sector].Add(row.MarketValue)
		total = total.Add(row.MarketValue)
	}

	sectors := make([]SectorSlice, 0, len(byName))
	for name, value := range byName {
		s := SectorSlice{Sector: name, Value: value}
		if total.IsPositive() {
			s.Pct = pct(value, total)
		}
		sectors = append(sectors, s)
	}
	slices.SortFunc(sectors, func(a, b SectorSlice) int {
		// descending by value, ties by name for determinism
		if c := b.Value.Cmp(a.Value); c != 0 {
			return c
		}
		switch {
		case a.Sector < b.Sector:
			return -1
		case a.Sector > b.Sector:
			return 1
		}
		return 0
	})
	return sectors
}

// pct returns part/whole as a percentage float.
func pct(part, whole decimal.Decimal) float64 {
	v, _ := part.Div(whole).Mul(hundred).Float64()
	return v
}

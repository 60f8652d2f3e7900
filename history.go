package folio

import "github.com/shopspring/decimal"

// closeLookbackDays bounds how far back a missing daily close may be
// forward-filled when valuing historical holdings.
const closeLookbackDays = 5

// HistoricalPoint is one day of the reconstructed portfolio history.
// Return percentages are rebased so the first point of a window is 0%.
type HistoricalPoint struct {
	Date               Date
	PortfolioValue     decimal.Decimal
	BenchmarkClose     decimal.Decimal
	PortfolioReturnPct float64
	BenchmarkReturnPct float64
}

// Replay reconstructs the daily portfolio value over [start, end] by
// re-running the position accounting against the ledger truncated to each
// trading day, and valuing the resulting holdings at that day's close.
//
// The benchmark series defines the trading calendar: one point is produced
// per benchmark close inside the window. A ticker without a usable close
// within the look-back window contributes nothing to that day's value.
//
// This is O(days x tickers) by design; ledgers and windows are personal-
// portfolio sized.
func Replay(ledger *Ledger, series map[string]Series, bench Series, start, end Date) []HistoricalPoint {
	if bench.IsEmpty() {
		return nil
	}

	var points []HistoricalPoint
	for p := range bench.Points() {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}

		view := ledger.Truncate(p.Date)
		value := view.CashBalance(p.Date)
		for _, h := range view.Holdings(p.Date) {
			close, ok := series[h.Ticker].CloseAsOf(p.Date, closeLookbackDays)
			if !ok {
				continue
			}
			value = value.Add(h.Quantity.Mul(close))
		}

		points = append(points, HistoricalPoint{
			Date:           p.Date,
			PortfolioValue: value,
			BenchmarkClose: p.Close,
		})
	}

	rebase(points)
	return points
}

// rebase normalizes both series so the first point of the window is exactly
// 0%. Absolute values are not comparable across runs, only relative returns.
func rebase(points []HistoricalPoint) {
	if len(points) == 0 {
		return
	}
	basePortfolio := points[0].PortfolioValue
	baseBench := points[0].BenchmarkClose
	for i := range points {
		if basePortfolio.IsPositive() {
			points[i].PortfolioReturnPct = pct(points[i].PortfolioValue.Sub(basePortfolio), basePortfolio)
		}
		if baseBench.IsPositive() {
			points[i].BenchmarkReturnPct = pct(points[i].BenchmarkClose.Sub(baseBench), baseBench)
		}
	}
}

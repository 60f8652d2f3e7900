package folio

import (
	"slices"

	"github.com/shopspring/decimal"
)

// quantityEpsilon absorbs floating-point drift from hand-typed ledgers:
// positions whose net quantity falls at or below it are treated as closed.
var quantityEpsilon = decimal.New(1, -9)

// Holding is a computed current position in one ticker.
type Holding struct {
	Ticker        string
	Quantity      decimal.Decimal
	AvgCost       decimal.Decimal
	FirstAcquired Date // zero when the position has no accumulating transaction
}

// CashBalance folds the ledger into the cash balance on a given date.
// It is a pure function of the ledger: buys consume cash, sells release it,
// deposits and withdrawals adjust it directly, and initial positions have no
// cash effect.
func (l *Ledger) CashBalance(on Date) decimal.Decimal {
	cash := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		cash = cash.Add(tx.CashEffect())
	}
	return cash
}

// NetInvested returns the net external cash put into the portfolio on or
// before the given date: deposits minus withdrawals.
func (l *Ledger) NetInvested(on Date) decimal.Decimal {
	net := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			break
		}
		switch tx.Kind {
		case KindDeposit:
			net = net.Add(tx.Price)
		case KindWithdraw:
			net = net.Sub(tx.Price)
		}
	}
	return net
}

// position accumulates one ticker's quantity and cost basis while folding.
type position struct {
	quantity      decimal.Decimal
	costBasis     decimal.Decimal
	firstAcquired Date
}

// Holdings folds the ledger into the open positions on a given date, using
// weighted-average cost accounting: every sell rescales the cost basis
// proportionally to the remaining quantity, so the average cost of the
// remaining shares is unchanged.
//
// Overselling is not rejected; a quantity driven to zero or below simply
// closes the position and it disappears from the result.
func (l *Ledger) Holdings(on Date) []Holding {
	open := make(map[string]*position)

	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			break
		}
		if !tx.IsSecurity() || tx.Ticker == CashTicker || tx.Ticker == "" {
			continue
		}

		pos, ok := open[tx.Ticker]
		if !ok {
			pos = &position{quantity: decimal.Zero, costBasis: decimal.Zero}
			open[tx.Ticker] = pos
		}

		switch tx.Kind {
		case KindBuy, KindInitial:
			pos.quantity = pos.quantity.Add(tx.Quantity)
			pos.costBasis = pos.costBasis.Add(tx.Quantity.Mul(tx.Price))
			if !tx.Date.IsZero() && (pos.firstAcquired.IsZero() || tx.Date.Before(pos.firstAcquired)) {
				pos.firstAcquired = tx.Date
			}
		case KindSell:
			before := pos.quantity
			pos.quantity = pos.quantity.Sub(tx.Quantity)
			if pos.quantity.IsPositive() && before.IsPositive() {
				// Keep the average cost of the remaining shares unchanged.
				pos.costBasis = pos.costBasis.Mul(pos.quantity).Div(before)
			} else {
				pos.costBasis = decimal.Zero
			}
		}
	}

	holdings := make([]Holding, 0, len(open))
	for ticker, pos := range open {
		if pos.quantity.LessThanOrEqual(quantityEpsilon) {
			// Closed positions vanish rather than showing as zero rows.
			continue
		}
		holdings = append(holdings, Holding{
			Ticker:        ticker,
			Quantity:      pos.quantity,
			AvgCost:       pos.costBasis.Div(pos.quantity),
			FirstAcquired: pos.firstAcquired,
		})
	}

	slices.SortFunc(holdings, func(a, b Holding) int {
		switch {
		case a.Ticker < b.Ticker:
			return -1
		case a.Ticker > b.Ticker:
			return 1
		}
		return 0
	})
	return holdings
}

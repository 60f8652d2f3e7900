package folio

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the single currency the tracker operates in.
// Multi-currency portfolios are out of scope.
const ReportingCurrency = "USD"

// Money is a display wrapper around a decimal amount in the reporting currency.
// All arithmetic happens on raw decimals; Money only exists to format values
// consistently in reports and notifications.
type Money struct {
	value decimal.Decimal
}

// USD wraps a decimal amount for display.
func USD(v decimal.Decimal) Money { return Money{value: v} }

func (m Money) currency() *money.Currency {
	// the Money constructor guarantees a non-nil currency
	return money.New(0, ReportingCurrency).Currency()
}

// String renders the amount with the currency's grapheme and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	shifted := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.Round(0).IntPart())
}

// SignedString renders the amount with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Percent formats a percentage value for reports.
func Percent(v float64) string { return fmt.Sprintf("%.2f%%", v) }

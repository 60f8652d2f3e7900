package folio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// day is a compact date literal for tests.
func day(y int, m time.Month, d int) Date { return NewDate(y, m, d) }

// dec parses a decimal literal, failing loudly on typos in test data.
func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic("bad decimal literal in test: " + s)
	}
	return v
}

// setupSampleLedger builds the ledger used across accounting tests:
//
//	2024-01-02  Deposit  $10,000
//	2024-01-05  Buy      10 AAPL @ $150
//	2024-02-01  Buy      20 AAPL @ $160
//	2024-03-01  Sell     10 AAPL @ $170
//	2024-03-15  Withdraw $500
func setupSampleLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(
		NewDeposit(day(2024, time.January, 2), dec("10000")),
		NewBuy(day(2024, time.January, 5), "AAPL", dec("10"), dec("150")),
		NewBuy(day(2024, time.February, 1), "AAPL", dec("20"), dec("160")),
		NewSell(day(2024, time.March, 1), "AAPL", dec("10"), dec("170")),
		NewWithdraw(day(2024, time.March, 15), dec("500")),
	)
}

// assertDecimal compares a decimal against a literal expectation.
func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

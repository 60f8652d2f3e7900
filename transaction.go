package folio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TxKind is a typed string identifying what a ledger row records.
type TxKind string

// Transaction kinds used in the ledger. The string values match what the
// tabular store holds, so they round-trip unchanged.
const (
	KindBuy      TxKind = "Buy"
	KindSell     TxKind = "Sell"
	KindDeposit  TxKind = "Deposit Cash"
	KindWithdraw TxKind = "Withdraw Cash"
	KindInitial  TxKind = "Initial Position"
)

// CashTicker is the reserved ticker for pure cash transactions.
const CashTicker = "CASH"

// ParseKind parses a stored kind string. It tolerates case and spacing
// differences since ledgers are often hand-edited.
func ParseKind(s string) (TxKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return KindBuy, nil
	case "sell":
		return KindSell, nil
	case "deposit cash", "deposit":
		return KindDeposit, nil
	case "withdraw cash", "withdraw":
		return KindWithdraw, nil
	case "initial position", "init":
		return KindInitial, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// Transaction is one immutable ledger entry.
//
// For Deposit Cash and Withdraw Cash, Price carries the cash amount and
// Quantity is ignored. Initial Position seeds a holding without any cash
// movement.
type Transaction struct {
	Date     Date
	Ticker   string
	Kind     TxKind
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// NewBuy records the purchase of quantity shares at a unit price.
func NewBuy(day Date, ticker string, quantity, price decimal.Decimal) Transaction {
	return newTx(day, ticker, KindBuy, quantity, price)
}

// NewSell records the sale of quantity shares at a unit price.
func NewSell(day Date, ticker string, quantity, price decimal.Decimal) Transaction {
	return newTx(day, ticker, KindSell, quantity, price)
}

// NewDeposit records a cash deposit. The amount travels in the Price field.
func NewDeposit(day Date, amount decimal.Decimal) Transaction {
	return newTx(day, CashTicker, KindDeposit, decimal.Zero, amount)
}

// NewWithdraw records a cash withdrawal. The amount travels in the Price field.
func NewWithdraw(day Date, amount decimal.Decimal) Transaction {
	return newTx(day, CashTicker, KindWithdraw, decimal.Zero, amount)
}

// NewInitialPosition seeds a position without implying a cash movement,
// used when bootstrapping a portfolio that predates its ledger.
func NewInitialPosition(day Date, ticker string, quantity, price decimal.Decimal) Transaction {
	return newTx(day, ticker, KindInitial, quantity, price)
}

func newTx(day Date, ticker string, kind TxKind, quantity, price decimal.Decimal) Transaction {
	return Transaction{
		Date:     day,
		Ticker:   NormalizeTicker(ticker),
		Kind:     kind,
		Quantity: quantity,
		Price:    price,
	}
}

// NormalizeTicker upper-cases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// IsSecurity reports whether the transaction moves shares of a security.
func (t Transaction) IsSecurity() bool {
	switch t.Kind {
	case KindBuy, KindSell, KindInitial:
		return true
	}
	return false
}

// CashEffect returns the signed cash movement caused by the transaction.
func (t Transaction) CashEffect() decimal.Decimal {
	switch t.Kind {
	case KindBuy:
		return t.Quantity.Mul(t.Price).Neg()
	case KindSell:
		return t.Quantity.Mul(t.Price)
	case KindDeposit:
		return t.Price
	case KindWithdraw:
		return t.Price.Neg()
	}
	// Initial Position seeds a holding with no cash movement.
	return decimal.Zero
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s qty=%s price=%s", t.Date, t.Kind, t.Ticker, t.Quantity, t.Price)
}

// ParseRow builds a Transaction from raw stored cells. Ledgers are
// user-edited, so this is deliberately permissive: a malformed numeric or
// date field coerces to its zero value instead of failing the whole load.
// Only an unrecognizable kind is an error, since without it the row has no
// meaning at all.
func ParseRow(date, ticker, kind, quantity, price string) (Transaction, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Transaction{}, err
	}

	day, err := ParseDate(date)
	if err != nil {
		day = Date{}
	}
	qty, err := decimal.NewFromString(strings.TrimSpace(quantity))
	if err != nil {
		qty = decimal.Zero
	}
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		p = decimal.Zero
	}

	return newTx(day, ticker, k, qty, p), nil
}

// Row returns the transaction as stored cells, the inverse of ParseRow.
func (t Transaction) Row() []string {
	return []string{t.Date.String(), t.Ticker, string(t.Kind), t.Quantity.String(), t.Price.String()}
}

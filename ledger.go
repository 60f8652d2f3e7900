package folio

import (
	"iter"
	"slices"
	"sort"
)

// Ledger is the append-only list of user transactions.
//
// In a Ledger transactions are always in chronological order. Transactions
// on the same day keep their insertion order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{transactions: make([]Transaction, 0, len(txs))}
	l.Append(txs...)
	return l
}

// Append appends transactions to this ledger and maintains the chronological order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// Replace swaps the entire transaction list, the edit-mode case where the
// user rewrites the ledger wholesale.
func (l *Ledger) Replace(txs []Transaction) {
	l.transactions = slices.Clone(txs)
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator that yields each transaction in
// chronological order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Truncate returns a view of the ledger limited to transactions dated on or
// before the given date. The view shares backing storage with the receiver;
// it is a read-only snapshot for replay-style computations.
func (l *Ledger) Truncate(on Date) *Ledger {
	// The ledger is sorted, so the view is a prefix.
	n := sort.Search(len(l.transactions), func(i int) bool {
		return l.transactions[i].Date.After(on)
	})
	return &Ledger{transactions: l.transactions[:n]}
}

// Tickers returns the sorted set of security tickers ever referenced by a
// buy, sell or initial-position transaction.
func (l *Ledger) Tickers() []string {
	seen := make(map[string]struct{})
	for _, tx := range l.transactions {
		if tx.IsSecurity() && tx.Ticker != CashTicker && tx.Ticker != "" {
			seen[tx.Ticker] = struct{}{}
		}
	}
	tickers := make([]string, 0, len(seen))
	for t := range seen {
		tickers = append(tickers, t)
	}
	slices.Sort(tickers)
	return tickers
}

// OldestTransactionDate returns the date of the earliest transaction,
// or the zero date for an empty ledger.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction,
// or the zero date for an empty ledger.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}

package store

import (
	"fmt"
	"log"

	"github.com/foliokit/folio"
)

const ledgerSheet = "transactions"

var ledgerHeaders = []string{"Date", "Ticker", "Type", "Quantity", "Price"}

// LedgerStore maps the transactions sheet to a folio.Ledger. Appending is
// the common case; edit mode rewrites the whole sheet, there is no partial
// update.
type LedgerStore struct {
	t Tabular
}

// NewLedgerStore opens the ledger sheet, creating it with its header row if
// absent.
func NewLedgerStore(t Tabular) (*LedgerStore, error) {
	if err := t.EnsureSchema(ledgerSheet, ledgerHeaders); err != nil {
		return nil, fmt.Errorf("could not ensure transactions sheet: %w", err)
	}
	return &LedgerStore{t: t}, nil
}

// Load reads the full ledger. Rows with an unrecognizable kind are dropped
// with a log line; malformed numeric fields inside a recognized row coerce
// to zero. One bad hand-typed row never aborts the load.
func (s *LedgerStore) Load() (*folio.Ledger, error) {
	_, rows, err := s.t.ReadAll(ledgerSheet)
	if err != nil {
		return nil, fmt.Errorf("could not read transactions: %w", err)
	}

	ledger := folio.NewLedger()
	for i, row := range rows {
		if len(row) < len(ledgerHeaders) {
			log.Printf("transactions row %d: %d cells, want %d; skipped", i, len(row), len(ledgerHeaders))
			continue
		}
		tx, err := folio.ParseRow(row[0], row[1], row[2], row[3], row[4])
		if err != nil {
			log.Printf("transactions row %d: %v; skipped", i, err)
			continue
		}
		ledger.Append(tx)
	}
	return ledger, nil
}

// Append persists one new transaction at the end of the ledger.
func (s *LedgerStore) Append(tx folio.Transaction) error {
	if err := s.t.Append(ledgerSheet, tx.Row()); err != nil {
		return fmt.Errorf("could not append transaction: %w", err)
	}
	return nil
}

// Rewrite replaces the whole sheet with the ledger's transactions, the
// edit-mode case.
func (s *LedgerStore) Rewrite(ledger *folio.Ledger) error {
	_, rows, err := s.t.ReadAll(ledgerSheet)
	if err != nil {
		return fmt.Errorf("could not read transactions: %w", err)
	}
	// Delete from the end so earlier indices stay valid.
	for i := len(rows) - 1; i >= 0; i-- {
		if err := s.t.DeleteRow(ledgerSheet, i); err != nil {
			return fmt.Errorf("could not clear transactions: %w", err)
		}
	}
	for _, tx := range ledger.Transactions() {
		if err := s.t.Append(ledgerSheet, tx.Row()); err != nil {
			return fmt.Errorf("could not rewrite transactions: %w", err)
		}
	}
	return nil
}

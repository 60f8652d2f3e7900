// Package folio reconstructs a personal portfolio from an append-only
// transaction ledger and combines it with market data into valuation,
// history and alerting.
//
// The accounting core is pure: CashBalance, Holdings and Replay are
// deterministic folds over a Ledger snapshot with no I/O. Market data comes
// from the eodhd subpackage, persistence goes through the store subpackage's
// tabular interface, and alert notifications are delivered by the mail
// subpackage.
package folio

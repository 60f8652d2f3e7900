// Package store persists ledgers and alerts behind a generic tabular
// interface: named sheets of string cells, addressed by row and column the
// way a spreadsheet would be. Any backend able to read, append, patch a
// cell and delete a row can hold the tracker's data.
package store

import "errors"

// ErrRowNotFound is returned when a row or record addressed by the caller
// does not exist.
var ErrRowNotFound = errors.New("store: row not found")

// Tabular is a sheet-oriented key-value store. Individual operations are
// serialized by the backend, but there are no multi-step transactions:
// callers keep every read/compute/write short and independent.
type Tabular interface {
	// EnsureSchema creates the sheet with the given header row if it does
	// not exist yet. Calling it on an existing sheet is a no-op.
	EnsureSchema(sheet string, headers []string) error

	// ReadAll returns the header row and every data row in insertion order.
	ReadAll(sheet string) (headers []string, rows [][]string, err error)

	// Append adds one data row at the end of the sheet.
	Append(sheet string, row []string) error

	// UpdateCell overwrites a single cell, addressed by zero-based data-row
	// and column index.
	UpdateCell(sheet string, row, col int, value string) error

	// DeleteRow removes one data row by zero-based index.
	DeleteRow(sheet string, row int) error
}

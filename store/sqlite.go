package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite implements Tabular on an embedded SQLite database. Each sheet is
// its own table of TEXT cells plus a rowid-backed id column that preserves
// insertion order; headers live in a small meta table so ReadAll can
// reconstruct the sheet shape.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sheet_headers (
		sheet TEXT PRIMARY KEY,
		headers TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

var sheetNameRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

func tableName(sheet string) (string, error) {
	if !sheetNameRE.MatchString(sheet) {
		return "", fmt.Errorf("invalid sheet name %q", sheet)
	}
	return "sheet_" + sheet, nil
}

func (s *SQLite) headers(sheet string) ([]string, error) {
	var joined string
	err := s.db.QueryRow(`SELECT headers FROM sheet_headers WHERE sheet = ?`, sheet).Scan(&joined)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sheet %q does not exist", sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("read headers of %q: %w", sheet, err)
	}
	return strings.Split(joined, "\x1f"), nil
}

// EnsureSchema creates the sheet's table and records its header row.
// The sheet is self-healing: it can always be recreated from nothing.
func (s *SQLite) EnsureSchema(sheet string, headers []string) error {
	table, err := tableName(sheet)
	if err != nil {
		return err
	}

	cols := make([]string, len(headers))
	for i := range headers {
		cols[i] = fmt.Sprintf("c%d TEXT NOT NULL DEFAULT ''", i)
	}
	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		%s
	)`, table, strings.Join(cols, ",\n\t\t"))
	if _, err := s.db.Exec(create); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	if _, err := s.db.Exec(`INSERT OR IGNORE INTO sheet_headers(sheet, headers) VALUES (?, ?)`,
		sheet, strings.Join(headers, "\x1f")); err != nil {
		return fmt.Errorf("record headers of %q: %w", sheet, err)
	}
	return nil
}

// ReadAll returns the header row and all data rows in insertion order.
func (s *SQLite) ReadAll(sheet string) ([]string, [][]string, error) {
	table, err := tableName(sheet)
	if err != nil {
		return nil, nil, err
	}
	headers, err := s.headers(sheet)
	if err != nil {
		return nil, nil, err
	}

	cols := make([]string, len(headers))
	for i := range headers {
		cols[i] = fmt.Sprintf("c%d", i)
	}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, strings.Join(cols, ", "), table)
	dbRows, err := s.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer dbRows.Close()

	var rows [][]string
	for dbRows.Next() {
		cells := make([]string, len(headers))
		dest := make([]any, len(headers))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := dbRows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan sheet %q: %w", sheet, err)
		}
		rows = append(rows, cells)
	}
	if err := dbRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate sheet %q: %w", sheet, err)
	}
	return headers, rows, nil
}

// Append adds one data row at the end of the sheet.
func (s *SQLite) Append(sheet string, row []string) error {
	table, err := tableName(sheet)
	if err != nil {
		return err
	}
	headers, err := s.headers(sheet)
	if err != nil {
		return err
	}
	if len(row) != len(headers) {
		return fmt.Errorf("sheet %q expects %d cells, got %d", sheet, len(headers), len(row))
	}

	cols := make([]string, len(row))
	marks := make([]string, len(row))
	args := make([]any, len(row))
	for i, cell := range row {
		cols[i] = fmt.Sprintf("c%d", i)
		marks[i] = "?"
		args[i] = cell
	}
	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if _, err := s.db.Exec(insert, args...); err != nil {
		return fmt.Errorf("append to sheet %q: %w", sheet, err)
	}
	return nil
}

// rowID resolves a zero-based data-row index to the backing id.
func (s *SQLite) rowID(table string, row int) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT id FROM %s ORDER BY id ASC LIMIT 1 OFFSET ?`, table), row,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrRowNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCell overwrites a single cell.
func (s *SQLite) UpdateCell(sheet string, row, col int, value string) error {
	table, err := tableName(sheet)
	if err != nil {
		return err
	}
	headers, err := s.headers(sheet)
	if err != nil {
		return err
	}
	if col < 0 || col >= len(headers) {
		return fmt.Errorf("sheet %q has no column %d", sheet, col)
	}

	id, err := s.rowID(table, row)
	if err != nil {
		return err
	}
	update := fmt.Sprintf(`UPDATE %s SET c%d = ? WHERE id = ?`, table, col)
	if _, err := s.db.Exec(update, value, id); err != nil {
		return fmt.Errorf("update cell (%d,%d) of sheet %q: %w", row, col, sheet, err)
	}
	return nil
}

// DeleteRow removes one data row by index.
func (s *SQLite) DeleteRow(sheet string, row int) error {
	table, err := tableName(sheet)
	if err != nil {
		return err
	}
	id, err := s.rowID(table, row)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id); err != nil {
		return fmt.Errorf("delete row %d of sheet %q: %w", row, sheet, err)
	}
	return nil
}

var _ Tabular = (*SQLite)(nil)

package store

import (
	"fmt"
	"log"
	"strings"

	"github.com/foliokit/folio"
	"github.com/shopspring/decimal"
)

const alertSheet = "alerts"

var alertHeaders = []string{"ID", "Ticker", "Target Price", "Direction", "Subscribers", "Status", "Note", "Last Checked"}

// Alert sheet column indices.
const (
	colAlertID = iota
	colAlertTicker
	colAlertTarget
	colAlertDirection
	colAlertSubscribers
	colAlertStatus
	colAlertNote
	colAlertLastChecked
)

// AlertStore maps the alerts sheet to folio.Alert records. Single-cell
// updates (status, subscribers, last checked) address rows by the record ID,
// resolved to a row index at call time, so a concurrent append cannot make
// an update land on the wrong record.
type AlertStore struct {
	t Tabular
}

// NewAlertStore opens the alerts sheet, creating it with its header row if
// absent.
func NewAlertStore(t Tabular) (*AlertStore, error) {
	if err := t.EnsureSchema(alertSheet, alertHeaders); err != nil {
		return nil, fmt.Errorf("could not ensure alerts sheet: %w", err)
	}
	return &AlertStore{t: t}, nil
}

func parseAlertRow(i int, row []string) (folio.Alert, bool) {
	if len(row) < len(alertHeaders) {
		log.Printf("alerts row %d: %d cells, want %d; skipped", i, len(row), len(alertHeaders))
		return folio.Alert{}, false
	}
	dir, err := folio.ParseDirection(row[colAlertDirection])
	if err != nil {
		log.Printf("alerts row %d: %v; skipped", i, err)
		return folio.Alert{}, false
	}

	target, err := decimal.NewFromString(strings.TrimSpace(row[colAlertTarget]))
	if err != nil {
		target = decimal.Zero
	}

	a := folio.Alert{
		ID:          strings.TrimSpace(row[colAlertID]),
		Ticker:      folio.NormalizeTicker(row[colAlertTicker]),
		Target:      target,
		Direction:   dir,
		Subscribers: folio.SplitSubscribers(row[colAlertSubscribers]),
		Status:      folio.AlertStatus(strings.TrimSpace(row[colAlertStatus])),
		Note:        row[colAlertNote],
	}
	if a.Status != folio.StatusSent {
		a.Status = folio.StatusActive
	}
	if when, err := folio.ParseDate(row[colAlertLastChecked]); err == nil {
		a.LastChecked = when
	}
	return a, true
}

func alertRow(a folio.Alert) []string {
	return []string{
		a.ID,
		a.Ticker,
		a.Target.String(),
		string(a.Direction),
		folio.JoinSubscribers(a.Subscribers),
		string(a.Status),
		a.Note,
		a.LastCheckedString(),
	}
}

// List returns every alert in sheet order.
func (s *AlertStore) List() ([]folio.Alert, error) {
	_, rows, err := s.t.ReadAll(alertSheet)
	if err != nil {
		return nil, fmt.Errorf("could not read alerts: %w", err)
	}
	alerts := make([]folio.Alert, 0, len(rows))
	for i, row := range rows {
		if a, ok := parseAlertRow(i, row); ok {
			alerts = append(alerts, a)
		}
	}
	return alerts, nil
}

// Add appends a new alert record.
func (s *AlertStore) Add(a folio.Alert) error {
	if err := s.t.Append(alertSheet, alertRow(a)); err != nil {
		return fmt.Errorf("could not add alert: %w", err)
	}
	return nil
}

// find resolves an alert ID to its current row index and record.
func (s *AlertStore) find(id string) (int, folio.Alert, error) {
	_, rows, err := s.t.ReadAll(alertSheet)
	if err != nil {
		return 0, folio.Alert{}, fmt.Errorf("could not read alerts: %w", err)
	}
	for i, row := range rows {
		if len(row) > colAlertID && strings.TrimSpace(row[colAlertID]) == id {
			if a, ok := parseAlertRow(i, row); ok {
				return i, a, nil
			}
		}
	}
	return 0, folio.Alert{}, fmt.Errorf("alert %q: %w", id, ErrRowNotFound)
}

// Get returns one alert by ID.
func (s *AlertStore) Get(id string) (folio.Alert, error) {
	_, a, err := s.find(id)
	return a, err
}

// MarkSent flips the alert to Sent and stamps the last-checked date.
func (s *AlertStore) MarkSent(id string, on folio.Date) error {
	row, _, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.t.UpdateCell(alertSheet, row, colAlertStatus, string(folio.StatusSent)); err != nil {
		return fmt.Errorf("could not mark alert %q sent: %w", id, err)
	}
	if err := s.t.UpdateCell(alertSheet, row, colAlertLastChecked, on.String()); err != nil {
		return fmt.Errorf("could not stamp alert %q: %w", id, err)
	}
	return nil
}

// Touch stamps the last-checked date without changing status.
func (s *AlertStore) Touch(id string, on folio.Date) error {
	row, _, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.t.UpdateCell(alertSheet, row, colAlertLastChecked, on.String()); err != nil {
		return fmt.Errorf("could not stamp alert %q: %w", id, err)
	}
	return nil
}

// Reactivate flips a Sent alert back to Active, re-arming it for one more
// notification. Reactivating an Active alert is a no-op.
func (s *AlertStore) Reactivate(id string) error {
	row, _, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.t.UpdateCell(alertSheet, row, colAlertStatus, string(folio.StatusActive)); err != nil {
		return fmt.Errorf("could not reactivate alert %q: %w", id, err)
	}
	return nil
}

// Subscribe adds an email to the alert's subscriber set. Subscribing an
// existing member is a no-op success.
func (s *AlertStore) Subscribe(id, email string) error {
	row, a, err := s.find(id)
	if err != nil {
		return err
	}
	if !a.Subscribe(email) {
		return nil
	}
	return s.writeSubscribers(row, id, a)
}

// Unsubscribe removes an email from the alert's subscriber set.
// Unsubscribing a non-member is a no-op success.
func (s *AlertStore) Unsubscribe(id, email string) error {
	row, a, err := s.find(id)
	if err != nil {
		return err
	}
	if !a.Unsubscribe(email) {
		return nil
	}
	return s.writeSubscribers(row, id, a)
}

func (s *AlertStore) writeSubscribers(row int, id string, a folio.Alert) error {
	if err := s.t.UpdateCell(alertSheet, row, colAlertSubscribers, folio.JoinSubscribers(a.Subscribers)); err != nil {
		return fmt.Errorf("could not update subscribers of alert %q: %w", id, err)
	}
	return nil
}

// Delete removes an alert record for good.
func (s *AlertStore) Delete(id string) error {
	row, _, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.t.DeleteRow(alertSheet, row); err != nil {
		return fmt.Errorf("could not delete alert %q: %w", id, err)
	}
	return nil
}

var _ folio.AlertBook = (*AlertStore)(nil)

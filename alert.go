package folio

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction says which side of the target price triggers an alert.
type Direction string

const (
	Above Direction = "Above"
	Below Direction = "Below"
)

// ParseDirection parses a stored direction string.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above":
		return Above, nil
	case "below":
		return Below, nil
	}
	return "", fmt.Errorf("unknown alert direction %q", s)
}

// AlertStatus is the state of an alert's notification machine.
type AlertStatus string

const (
	StatusActive AlertStatus = "Active"
	StatusSent   AlertStatus = "Sent"
)

// Alert is a persisted price-alert record.
//
// The state machine has two states: Active alerts are evaluated and may fire
// one notification, after which they become Sent. Sent alerts are inert until
// explicitly reactivated; there is no automatic re-arming.
type Alert struct {
	ID          string
	Ticker      string
	Target      decimal.Decimal
	Direction   Direction
	Subscribers []string // ordered; first entry is conventionally the creator
	Status      AlertStatus
	Note        string
	LastChecked Date // zero means never checked
}

// NewAlert creates an Active alert owned by the creator address.
func NewAlert(ticker string, target decimal.Decimal, dir Direction, creator, note string) Alert {
	return Alert{
		ID:          uuid.NewString(),
		Ticker:      NormalizeTicker(ticker),
		Target:      target,
		Direction:   dir,
		Subscribers: []string{normalizeEmail(creator)},
		Status:      StatusActive,
		Note:        note,
	}
}

// Hit reports whether the given price satisfies the alert condition.
func (a Alert) Hit(price decimal.Decimal) bool {
	switch a.Direction {
	case Above:
		return price.GreaterThanOrEqual(a.Target)
	case Below:
		return price.LessThanOrEqual(a.Target)
	}
	return false
}

// Subscribe adds an email to the subscriber set. Subscribing an existing
// member is a no-op; the return value says whether the set changed.
func (a *Alert) Subscribe(email string) bool {
	email = normalizeEmail(email)
	if email == "" || slices.Contains(a.Subscribers, email) {
		return false
	}
	a.Subscribers = append(a.Subscribers, email)
	return true
}

// Unsubscribe removes an email from the subscriber set. Removing a
// non-member is a no-op; the return value says whether the set changed.
func (a *Alert) Unsubscribe(email string) bool {
	email = normalizeEmail(email)
	before := len(a.Subscribers)
	a.Subscribers = slices.DeleteFunc(a.Subscribers, func(s string) bool { return s == email })
	return len(a.Subscribers) != before
}

// Recipients returns the deduplicated subscriber set for delivery.
func (a Alert) Recipients() []string {
	seen := make(map[string]struct{}, len(a.Subscribers))
	out := make([]string, 0, len(a.Subscribers))
	for _, s := range a.Subscribers {
		s = normalizeEmail(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// LastCheckedString formats the last-checked date the way the store holds it.
func (a Alert) LastCheckedString() string {
	if a.LastChecked.IsZero() {
		return "Never"
	}
	return a.LastChecked.String()
}

// JoinSubscribers encodes the subscriber set for tabular storage.
func JoinSubscribers(subs []string) string {
	return strings.Join(subs, ",")
}

// SplitSubscribers decodes a comma-joined subscriber cell.
func SplitSubscribers(cell string) []string {
	var subs []string
	for _, s := range strings.Split(cell, ",") {
		if s = normalizeEmail(s); s != "" {
			subs = append(subs, s)
		}
	}
	return subs
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package folio

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-01-02", want: day(2024, time.January, 2)},
		{in: "2024-1-2", want: day(2024, time.January, 2)},
		{in: " 2024-01-02 ", want: day(2024, time.January, 2)},
		{in: "2024-01-02T15:04:05Z", want: day(2024, time.January, 2)},
		{in: "02/01/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected an error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateNormalization(t *testing.T) {
	// out-of-range day carries into the next month
	if got := NewDate(2024, time.January, 32); got != day(2024, time.February, 1) {
		t.Errorf("NewDate(2024, January, 32) = %v, want 2024-02-01", got)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := day(2024, time.February, 28)

	if got := d.Add(1); got != day(2024, time.February, 29) {
		t.Errorf("Add(1) = %v, want 2024-02-29 (leap year)", got)
	}
	if got := d.Add(-28); got != day(2024, time.January, 31) {
		t.Errorf("Add(-28) = %v, want 2024-01-31", got)
	}
	if got := d.DaysBetween(day(2024, time.March, 3)); got != 4 {
		t.Errorf("DaysBetween = %d, want 4", got)
	}
	if got := d.DaysBetween(day(2024, time.February, 27)); got != -1 {
		t.Errorf("DaysBetween backwards = %d, want -1", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a, b := day(2024, time.March, 1), day(2024, time.March, 2)
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("Before is not a strict order")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After is not the inverse of Before")
	}
}

func TestDateZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if day(2024, time.January, 1).IsZero() {
		t.Error("a real date should not report IsZero")
	}
}

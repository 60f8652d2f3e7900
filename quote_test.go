package folio

import (
	"testing"
	"time"
)

func setupSeries(t *testing.T) Series {
	t.Helper()
	var s Series
	// a trading week with a weekend gap
	s.Append(day(2024, time.March, 4), dec("100"))
	s.Append(day(2024, time.March, 5), dec("102"))
	s.Append(day(2024, time.March, 8), dec("105"))
	s.Append(day(2024, time.March, 11), dec("110"))
	return s
}

func TestSeriesAppendKeepsOrder(t *testing.T) {
	var s Series
	s.Append(day(2024, time.March, 8), dec("105"))
	s.Append(day(2024, time.March, 4), dec("100"))
	s.Append(day(2024, time.March, 5), dec("102"))

	var prev Date
	for p := range s.Points() {
		if !prev.IsZero() && !prev.Before(p.Date) {
			t.Fatalf("series out of order: %v not before %v", prev, p.Date)
		}
		prev = p.Date
	}
}

func TestSeriesAppendReplacesDuplicate(t *testing.T) {
	var s Series
	s.Append(day(2024, time.March, 4), dec("100"))
	s.Append(day(2024, time.March, 4), dec("101"))
	if s.Len() != 1 {
		t.Fatalf("duplicate date should replace, len = %d", s.Len())
	}
	close, _ := s.CloseOn(day(2024, time.March, 4))
	assertDecimal(t, "CloseOn", close, "101")
}

func TestCloseAsOf(t *testing.T) {
	s := setupSeries(t)

	testCases := []struct {
		name     string
		on       Date
		lookback int
		want     string
		wantOK   bool
	}{
		{"exact day", day(2024, time.March, 5), 5, "102", true},
		{"weekend forward-fills friday", day(2024, time.March, 10), 5, "105", true},
		{"before first point", day(2024, time.March, 1), 5, "", false},
		{"gap beyond lookback", day(2024, time.March, 20), 5, "", false},
		{"unlimited lookback", day(2024, time.March, 20), -1, "110", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.CloseAsOf(tc.on, tc.lookback)
			if ok != tc.wantOK {
				t.Fatalf("CloseAsOf() ok = %v, want %v", ok, tc.wantOK)
			}
			if ok {
				assertDecimal(t, "CloseAsOf()", got, tc.want)
			}
		})
	}
}

func TestReturnBetween(t *testing.T) {
	s := setupSeries(t)

	// from a non-trading day: start snaps forward to March 4, end back to March 11
	got, ok := s.ReturnBetween(day(2024, time.March, 2), day(2024, time.March, 12))
	if !ok {
		t.Fatal("ReturnBetween() unexpectedly not ok")
	}
	if got != 10 {
		t.Errorf("ReturnBetween() = %v, want 10", got)
	}
}

func TestReturnBetweenMissingData(t *testing.T) {
	var empty Series
	if _, ok := empty.ReturnBetween(day(2024, time.March, 1), day(2024, time.March, 10)); ok {
		t.Error("empty series should not produce a return")
	}

	s := setupSeries(t)
	if _, ok := s.ReturnBetween(day(2024, time.April, 1), day(2024, time.April, 10)); ok {
		t.Error("a from-date after the last close should not produce a return")
	}
}

func TestUnavailableQuote(t *testing.T) {
	q := UnavailableQuote()
	if q.Known {
		t.Error("unavailable quote must not claim to be known")
	}
	if q.Sector != SectorUnknown {
		t.Errorf("Sector = %q, want %q", q.Sector, SectorUnknown)
	}
}

package folio

import (
	"math"
	"testing"
	"time"
)

func setupReplay(t *testing.T) (*Ledger, map[string]Series, Series) {
	t.Helper()

	l := NewLedger(
		NewDeposit(day(2024, time.March, 1), dec("10000")),
		NewBuy(day(2024, time.March, 4), "AAPL", dec("10"), dec("100")),
	)

	var aapl Series
	aapl.Append(day(2024, time.March, 4), dec("100"))
	aapl.Append(day(2024, time.March, 5), dec("110"))
	aapl.Append(day(2024, time.March, 6), dec("120"))

	var bench Series
	bench.Append(day(2024, time.March, 4), dec("500"))
	bench.Append(day(2024, time.March, 5), dec("505"))
	bench.Append(day(2024, time.March, 6), dec("510"))

	return l, map[string]Series{"AAPL": aapl}, bench
}

func TestReplay(t *testing.T) {
	l, series, bench := setupReplay(t)

	points := Replay(l, series, bench, day(2024, time.March, 4), day(2024, time.March, 6))
	if len(points) != 3 {
		t.Fatalf("Replay() = %d points, want 3", len(points))
	}

	// day 1: 9000 cash + 10*100
	assertDecimal(t, "day 1 value", points[0].PortfolioValue, "10000")
	// day 2: 9000 cash + 10*110
	assertDecimal(t, "day 2 value", points[1].PortfolioValue, "10100")

	// both series rebased to 0% on the first point
	if points[0].PortfolioReturnPct != 0 || points[0].BenchmarkReturnPct != 0 {
		t.Errorf("first point not rebased: %+v", points[0])
	}
	if got := points[1].PortfolioReturnPct; math.Abs(got-1) > 1e-9 {
		t.Errorf("day 2 portfolio return = %v, want 1", got)
	}
	if got := points[2].BenchmarkReturnPct; math.Abs(got-2) > 1e-9 {
		t.Errorf("day 3 benchmark return = %v, want 2", got)
	}
}

func TestReplayFollowsBenchmarkCalendar(t *testing.T) {
	l, series, bench := setupReplay(t)
	// the benchmark also traded on a day AAPL did not
	bench.Append(day(2024, time.March, 7), dec("512"))

	points := Replay(l, series, bench, day(2024, time.March, 4), day(2024, time.March, 8))
	if len(points) != 4 {
		t.Fatalf("Replay() = %d points, want one per benchmark close", len(points))
	}
	// AAPL forward-fills its March 6 close on March 7
	assertDecimal(t, "filled value", points[3].PortfolioValue, "10200")
}

func TestReplayStaleTickerDropsOut(t *testing.T) {
	l, series, _ := setupReplay(t)

	// benchmark trades far beyond the last AAPL close
	var bench Series
	bench.Append(day(2024, time.March, 4), dec("500"))
	bench.Append(day(2024, time.March, 20), dec("520"))

	points := Replay(l, series, bench, day(2024, time.March, 4), day(2024, time.March, 21))
	if len(points) != 2 {
		t.Fatalf("Replay() = %d points, want 2", len(points))
	}
	// March 20 is beyond the five-day look-back, so AAPL contributes nothing
	assertDecimal(t, "stale day value", points[1].PortfolioValue, "9000")
}

func TestReplayEmptyBenchmark(t *testing.T) {
	l, series, _ := setupReplay(t)
	if points := Replay(l, series, Series{}, day(2024, time.March, 4), day(2024, time.March, 6)); points != nil {
		t.Errorf("Replay() without benchmark data = %v, want nil", points)
	}
}

func TestReplayWindowFilter(t *testing.T) {
	l, series, bench := setupReplay(t)
	points := Replay(l, series, bench, day(2024, time.March, 5), day(2024, time.March, 5))
	if len(points) != 1 {
		t.Fatalf("Replay() = %d points, want only the in-window close", len(points))
	}
	if points[0].Date != day(2024, time.March, 5) {
		t.Errorf("point date = %v, want 2024-03-05", points[0].Date)
	}
}

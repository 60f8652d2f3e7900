package folio

import (
	"iter"
	"sort"

	"github.com/shopspring/decimal"
)

// SectorUnknown is the sector reported when no metadata could be fetched.
const SectorUnknown = "Unknown"

// Quote is the current market view of one ticker.
//
// Known distinguishes a genuine price from a failed fetch: callers must not
// treat the zero prices of an unavailable quote as a worthless asset.
type Quote struct {
	Price     decimal.Decimal
	PrevClose decimal.Decimal
	Sector    string
	Known     bool
}

// UnavailableQuote is the degraded value used when a ticker could not be
// priced at all.
func UnavailableQuote() Quote {
	return Quote{Sector: SectorUnknown}
}

// ClosePoint is one daily closing price.
type ClosePoint struct {
	Date  Date
	Close decimal.Decimal
}

// Series is an ordered sequence of daily closing prices for one symbol.
// Dates are unique; appending a duplicate date replaces the close.
type Series struct {
	points []ClosePoint
}

// Append records a close, keeping the series sorted by date.
func (s *Series) Append(day Date, close decimal.Decimal) {
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Date.Before(day)
	})
	if i < len(s.points) && s.points[i].Date == day {
		s.points[i].Close = close
		return
	}
	s.points = append(s.points, ClosePoint{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = ClosePoint{Date: day, Close: close}
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.points) }

// IsEmpty reports whether the series holds no points.
func (s Series) IsEmpty() bool { return len(s.points) == 0 }

// Points iterates over the series in chronological order.
func (s Series) Points() iter.Seq[ClosePoint] {
	return func(yield func(ClosePoint) bool) {
		for _, p := range s.points {
			if !yield(p) {
				return
			}
		}
	}
}

// CloseOn returns the close on exactly the given date.
func (s Series) CloseOn(day Date) (decimal.Decimal, bool) {
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Date.Before(day)
	})
	if i < len(s.points) && s.points[i].Date == day {
		return s.points[i].Close, true
	}
	return decimal.Zero, false
}

// CloseAsOf returns the most recent close on or before the given date,
// looking back at most lookback calendar days. This models non-trading days
// and short halts by forward-filling the last known close.
func (s Series) CloseAsOf(day Date, lookback int) (decimal.Decimal, bool) {
	i := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Date.After(day)
	})
	if i == 0 {
		return decimal.Zero, false
	}
	p := s.points[i-1]
	if lookback >= 0 && p.Date.DaysBetween(day) > lookback {
		return decimal.Zero, false
	}
	return p.Close, true
}

// ReturnBetween computes the percentage return between the closes nearest to
// the two dates: the close on or after from, and the last close on or before
// to. It returns false when either end is missing or the start close is zero.
func (s Series) ReturnBetween(from, to Date) (float64, bool) {
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Date.Before(from)
	})
	if i >= len(s.points) {
		return 0, false
	}
	start := s.points[i].Close
	end, ok := s.CloseAsOf(to, -1)
	if !ok || !start.IsPositive() {
		return 0, false
	}
	ret, _ := end.Sub(start).Div(start).Mul(decimal.NewFromInt(100)).Float64()
	return ret, true
}

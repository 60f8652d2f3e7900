package eodhd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/foliokit/folio"
)

// setupServer fakes the EODHD API: eodBodies maps tickers to /eod JSON
// responses, sectors maps tickers to the General.Sector field.
func setupServer(t *testing.T, eodBodies map[string]string, sectors map[string]string) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/eod/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ticker := strings.TrimPrefix(r.URL.Path, "/eod/")
		body, ok := eodBodies[ticker]
		if !ok {
			http.Error(w, "unknown symbol", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/fundamentals/", func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.TrimPrefix(r.URL.Path, "/fundamentals/")
		sector, ok := sectors[ticker]
		if !ok {
			http.Error(w, "unknown symbol", http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"Code": %q, "Sector": %q}`, ticker, sector)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &Client{apiKey: "test-key", baseURL: server.URL, http: server.Client()}
}

const aaplBars = `[
	{"date": "2024-03-04", "open": 101, "close": 100.5, "volume": 100},
	{"date": "2024-03-05", "open": 101, "close": 102.25, "volume": 100}
]`

func TestFetchQuotes(t *testing.T) {
	c := setupServer(t,
		map[string]string{"AAPL": aaplBars},
		map[string]string{"AAPL": "Technology"})

	quotes, err := c.FetchQuotes([]string{"AAPL"})
	if err != nil {
		t.Fatalf("FetchQuotes() failed: %v", err)
	}
	q := quotes["AAPL"]
	if !q.Known {
		t.Fatal("quote should be known")
	}
	if q.Price.String() != "102.25" {
		t.Errorf("Price = %s, want 102.25", q.Price)
	}
	if q.PrevClose.String() != "100.5" {
		t.Errorf("PrevClose = %s, want 100.5", q.PrevClose)
	}
	if q.Sector != "Technology" {
		t.Errorf("Sector = %q, want Technology", q.Sector)
	}
}

func TestFetchQuotesDegradesPerTicker(t *testing.T) {
	c := setupServer(t,
		map[string]string{"AAPL": aaplBars},
		map[string]string{"AAPL": "Technology"})

	quotes, err := c.FetchQuotes([]string{"AAPL", "BOGUS"})
	if err != nil {
		t.Fatalf("one bad symbol must not fail the batch: %v", err)
	}
	if !quotes["AAPL"].Known {
		t.Error("the good symbol should still be priced")
	}
	bad := quotes["BOGUS"]
	if bad.Known {
		t.Error("the bad symbol should degrade to an unavailable quote")
	}
	if bad.Sector != folio.SectorUnknown {
		t.Errorf("Sector = %q, want %q", bad.Sector, folio.SectorUnknown)
	}
}

func TestFetchQuotesSectorFailureKeepsPrice(t *testing.T) {
	c := setupServer(t,
		map[string]string{"AAPL": aaplBars},
		nil) // fundamentals endpoint knows nothing

	quotes, err := c.FetchQuotes([]string{"AAPL"})
	if err != nil {
		t.Fatalf("FetchQuotes() failed: %v", err)
	}
	q := quotes["AAPL"]
	if !q.Known {
		t.Fatal("a sector failure must not invalidate the price")
	}
	if q.Sector != folio.SectorUnknown {
		t.Errorf("Sector = %q, want %q", q.Sector, folio.SectorUnknown)
	}
}

func TestFetchQuotesSingleBar(t *testing.T) {
	c := setupServer(t,
		map[string]string{"NEWIPO": `[{"date": "2024-03-05", "close": 50}]`},
		nil)

	quotes, err := c.FetchQuotes([]string{"NEWIPO"})
	if err != nil {
		t.Fatalf("FetchQuotes() failed: %v", err)
	}
	q := quotes["NEWIPO"]
	if !q.Known || q.Price.String() != "50" {
		t.Errorf("Price = %s known=%v, want 50 known", q.Price, q.Known)
	}
	if !q.PrevClose.IsZero() {
		t.Errorf("PrevClose = %s, want 0 when only one bar exists", q.PrevClose)
	}
}

func TestFetchSeries(t *testing.T) {
	c := setupServer(t, map[string]string{"AAPL": aaplBars}, nil)

	from := folio.NewDate(2024, time.March, 4)
	to := folio.NewDate(2024, time.March, 5)
	series, err := c.FetchSeries([]string{"AAPL"}, from, to)
	if err != nil {
		t.Fatalf("FetchSeries() failed: %v", err)
	}
	s := series["AAPL"]
	if s.Len() != 2 {
		t.Fatalf("series has %d points, want 2", s.Len())
	}
	close, ok := s.CloseOn(folio.NewDate(2024, time.March, 5))
	if !ok || close.String() != "102.25" {
		t.Errorf("CloseOn(2024-03-05) = %s ok=%v, want 102.25", close, ok)
	}
}

func TestFetchSeriesAllOrNothing(t *testing.T) {
	c := setupServer(t, map[string]string{"AAPL": aaplBars}, nil)

	from := folio.NewDate(2024, time.March, 4)
	to := folio.NewDate(2024, time.March, 5)
	if _, err := c.FetchSeries([]string{"AAPL", "BOGUS"}, from, to); err == nil {
		t.Error("a missing series must fail the whole call")
	}
}

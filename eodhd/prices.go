package eodhd

import (
	"fmt"
	"log"
	"net/url"

	"github.com/foliokit/folio"
	"github.com/shopspring/decimal"
)

// quoteWindowDays is how far back the quote request reaches. A week of
// calendar days always spans at least two trading days, which is what we
// need to derive both the latest and the previous close from one response.
const quoteWindowDays = 7

// seriesBufferDays pads historical requests backward so the first requested
// date has a prior close to forward-fill from.
const seriesBufferDays = 10

// eodBar is one daily bar of the EODHD end-of-day endpoint.
//
//	{"date": "2024-02-13", "open": 675.066, ..., "close": 668.445, "volume": 0}
type eodBar struct {
	Date  folio.Date      `json:"date"`
	Close decimal.Decimal `json:"close"`
}

func (c *Client) fetchEOD(ticker string, from, to folio.Date) ([]eodBar, error) {
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		c.baseURL, url.PathEscape(ticker), c.apiKey, from, to)

	bars := make([]eodBar, 0)
	if err := c.jwget(addr, &bars); err != nil {
		return nil, err
	}
	return bars, nil
}

// FetchQuotes returns the current market view for each ticker: the latest
// close as the price and the close before it as the previous close, both
// taken from a single multi-day request per symbol.
//
// A ticker that cannot be priced degrades to an unavailable quote; one bad
// symbol never fails the batch. Sector metadata is a best-effort secondary
// lookup, attempted only once the price is known.
func (c *Client) FetchQuotes(tickers []string) (map[string]folio.Quote, error) {
	today := folio.Today()
	quotes := make(map[string]folio.Quote, len(tickers))

	for _, ticker := range tickers {
		bars, err := c.fetchEOD(ticker, today.Add(-quoteWindowDays), today)
		if err != nil || len(bars) == 0 {
			if err != nil {
				log.Printf("eodhd: no quote for %s: %v", ticker, err)
			}
			quotes[ticker] = folio.UnavailableQuote()
			continue
		}

		q := folio.Quote{
			Price:  bars[len(bars)-1].Close,
			Sector: folio.SectorUnknown,
			Known:  true,
		}
		if len(bars) > 1 {
			q.PrevClose = bars[len(bars)-2].Close
		}

		// A sector failure never invalidates the price result.
		if sector, err := c.fetchSector(ticker); err == nil && sector != "" {
			q.Sector = sector
		}

		quotes[ticker] = q
	}
	return quotes, nil
}

// FetchSeries downloads daily closes for every ticker over the window,
// buffered backward so the nominal start date has a prior close to
// forward-fill from.
//
// Unlike FetchQuotes this is all-or-nothing: a ticker whose series is
// missing fails the call, because a partially-populated history chart is
// worse than none.
func (c *Client) FetchSeries(tickers []string, from, to folio.Date) (map[string]folio.Series, error) {
	out := make(map[string]folio.Series, len(tickers))
	for _, ticker := range tickers {
		bars, err := c.fetchEOD(ticker, from.Add(-seriesBufferDays), to)
		if err != nil {
			return nil, fmt.Errorf("could not fetch history for %s: %w", ticker, err)
		}
		if len(bars) == 0 {
			return nil, fmt.Errorf("no history for %s in [%s, %s]", ticker, from, to)
		}
		var s folio.Series
		for _, bar := range bars {
			s.Append(bar.Date, bar.Close)
		}
		out[ticker] = s
	}
	return out, nil
}

var _ folio.QuoteFetcher = (*Client)(nil)

package eodhd

import (
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// fetchSector looks up the sector classification from the fundamentals
// endpoint.
//
//	{"General": {"Code": "AAPL", "Sector": "Technology", ...}}
func (c *Client) fetchSector(ticker string) (string, error) {
	addr := fmt.Sprintf("%s/fundamentals/%s?fmt=json&api_token=%s&filter=General",
		c.baseURL, url.PathEscape(ticker), c.apiKey)

	var jobj any
	if err := c.jwget(addr, &jobj); err != nil {
		return "", err
	}

	path := "$.Sector"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing fundamentals of %q: %q %w", ticker, path, err)
	}
	// jsonpath sometimes returns a list of one answer instead of the answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	sector, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing fundamentals of %q: %q not a string", ticker, path)
	}
	return sector, nil
}

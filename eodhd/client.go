// Package eodhd fetches quotes and historical closes from eodhd.com.
//
// The upstream rate-limits aggressively, so every request goes through a
// disk cache that expires daily, and price and previous close are derived
// from a single multi-day request instead of two live-quote calls.
package eodhd

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/foliokit/folio"
)

const apiKeyEnv = "EODHD_API_KEY"

var apiKeyFlag = flag.String("eodhd-api-key", "", "EODHD API key for fetching prices from eodhd.com.\n If missing it is read from the environment variable \""+apiKeyEnv+"\". You can get one at https://eodhd.com/")

func apiKey() string {
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(apiKeyEnv)
	}
	return *apiKeyFlag
}

// Client talks to the EODHD REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient returns a client using the configured API key and the daily
// disk cache.
func NewClient() (*Client, error) {
	key := apiKey()
	if key == "" {
		return nil, fmt.Errorf("no EODHD API key: set -eodhd-api-key or %s", apiKeyEnv)
	}
	return &Client{apiKey: key, baseURL: "https://eodhd.com/api", http: daily()}, nil
}

// diskCache implements a simple disk cache for HTTP responses.
// The key embeds today's date, so entries expire every day.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", folio.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		// a failed cache write only costs a refetch tomorrow
		return resp, nil
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client caching all responses with daily expiry.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (c *Client) jwget(addr string, data any) error {
	resp, err := c.http.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

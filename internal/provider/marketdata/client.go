// Package marketdata implements the Financial Modeling Prep (FMP) client
// used to resolve per-symbol market snapshots before an analysis run.
//
// The company profile endpoint is the single source for every scoring field
// (market cap, sector, industry, average volume). FMP also serves a quote
// endpoint carrying a market cap, but mixing the two produces inconsistent
// snapshots, so it is deliberately not used.
//
// Free tier: 250 requests/day, which is why results are cached upstream.
// Docs: https://financialmodelingprep.com/developer/docs
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

const (
	requestTimeout = 10 * time.Second
	maxRetries     = 3
)

// Fetcher resolves a symbol to its market snapshot. A (nil, nil) return
// means the provider has no data for the symbol, which is a valid state,
// not an error.
type Fetcher interface {
	Profile(ctx context.Context, symbol string) (*models.MarketData, error)
}

// Client is an FMP REST client with retry on transient failures.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient builds a Client for the given FMP base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// profileRecord mirrors the fields of FMP's /profile/{symbol} response this
// service consumes.
type profileRecord struct {
	Symbol   string  `json:"symbol"`
	MktCap   float64 `json:"mktCap"`
	Sector   string  `json:"sector"`
	Industry string  `json:"industry"`
	VolAvg   float64 `json:"volAvg"`
}

// Profile fetches the company profile for a symbol. Unknown or unsupported
// symbols return (nil, nil); transient HTTP failures are retried with
// exponential backoff before giving up.
func (c *Client) Profile(ctx context.Context, symbol string) (*models.MarketData, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("fmp: missing API key")
	}
	url := fmt.Sprintf("%s/profile/%s?apikey=%s", c.baseURL, symbol, c.apiKey)

	var records []profileRecord
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err // network errors are retryable
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			records = nil
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("fmp: status %d for %s", resp.StatusCode, symbol)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("fmp: status %d for %s", resp.StatusCode, symbol))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &records); err != nil {
			return backoff.Permanent(fmt.Errorf("fmp: parse profile for %s: %w", symbol, err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(fetch, policy); err != nil {
		return nil, err
	}

	// FMP returns an empty array for unknown symbols.
	if len(records) == 0 {
		return nil, nil
	}

	rec := records[0]
	md := &models.MarketData{
		Symbol:    symbol,
		Sector:    rec.Sector,
		Industry:  rec.Industry,
		FetchedAt: time.Now(),
	}
	if rec.MktCap > 0 {
		md.MarketCap = &rec.MktCap
	}
	if rec.VolAvg > 0 {
		md.AverageVolume = &rec.VolAvg
	}
	return md, nil
}

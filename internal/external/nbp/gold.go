package nbp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"goldgauge/internal/timeseries"
	"goldgauge/pkg/httputil"
)

// goldEntry is one raw record from the gold price API. The API uses
// Polish field names: "data" is the date, "cena" the price in PLN/gram.
type goldEntry struct {
	Date  string  `json:"data"`
	Price float64 `json:"cena"`
}

// FetchGoldRange fetches daily gold prices for one chunk. The API caps the
// span per request (93 days), so callers drive this per planned chunk.
func (c *Client) FetchGoldRange(ctx context.Context, chunk timeseries.Chunk) ([]timeseries.Observation, error) {
	url := fmt.Sprintf("%s/%s/%s/",
		c.cfg.GoldBaseURL,
		chunk.Start.Format("2006-01-02"),
		chunk.End.Format("2006-01-02"),
	)

	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	var entries []goldEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &httputil.FetchError{URL: url, Err: fmt.Errorf("parse gold response: %w", err)}
	}

	observations := parseGoldEntries(entries, c)
	c.logger.WithFields(map[string]interface{}{
		"from":  chunk.Start.Format("2006-01-02"),
		"to":    chunk.End.Format("2006-01-02"),
		"count": len(observations),
	}).Debug("Fetched gold prices")

	return observations, nil
}

// FetchGoldToday fetches the latest published gold quote.
func (c *Client) FetchGoldToday(ctx context.Context) (*timeseries.Observation, error) {
	url := c.cfg.GoldBaseURL + "/"

	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	var entries []goldEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &httputil.FetchError{URL: url, Err: fmt.Errorf("parse gold response: %w", err)}
	}

	observations := parseGoldEntries(entries, c)
	if len(observations) == 0 {
		return nil, &httputil.FetchError{URL: url, Err: fmt.Errorf("no current gold quote in response")}
	}

	latest := observations[len(observations)-1]
	return &latest, nil
}

func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, &httputil.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httputil.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httputil.FetchError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	return body, nil
}

// parseGoldEntries converts raw entries to observations, skipping records
// with unparseable dates or non-positive prices.
func parseGoldEntries(entries []goldEntry, c *Client) []timeseries.Observation {
	observations := make([]timeseries.Observation, 0, len(entries))
	for _, e := range entries {
		day, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			c.logger.WithField("date", e.Date).Warn("Skipping gold record with bad date")
			continue
		}
		if e.Price <= 0 {
			c.logger.WithField("date", e.Date).Warn("Skipping gold record with non-positive price")
			continue
		}
		observations = append(observations, timeseries.Observation{Date: day, Value: e.Price})
	}
	return observations
}

// Package stooq fetches daily OHLC quotes from the Stooq CSV endpoint.
// Stooq serves historical GPW and global tickers without authentication,
// but only over TLS: plain HTTP requests are rejected.
package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"goldgauge/pkg/config"
	"goldgauge/pkg/httputil"
	"goldgauge/pkg/logger"
)

// Quote is one trading day.
type Quote struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume *int64
}

// Client handles communication with Stooq.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.StooqConfig
}

// NewClient creates a new Stooq client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.StooqConfig) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("source", "stooq"),
		cfg:        cfg,
	}
}

// FetchDaily fetches daily quotes for a ticker over [from, to].
func (c *Client) FetchDaily(ctx context.Context, ticker string, from, to time.Time) ([]Quote, error) {
	params := url.Values{}
	params.Set("s", strings.ToLower(ticker))
	params.Set("d1", from.Format("20060102"))
	params.Set("d2", to.Format("20060102"))
	params.Set("i", "d")

	fullURL := c.cfg.BaseURL + "?" + params.Encode()

	resp, err := c.httpClient.Get(ctx, fullURL, map[string]string{"Accept": "text/csv"})
	if err != nil {
		return nil, &httputil.FetchError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httputil.FetchError{URL: fullURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httputil.FetchError{URL: fullURL, Err: fmt.Errorf("read response body: %w", err)}
	}

	quotes, err := c.parseCSV(string(body))
	if err != nil {
		return nil, &httputil.FetchError{URL: fullURL, Err: err}
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(quotes),
	}).Debug("Fetched daily quotes")
	return quotes, nil
}

// parseCSV parses the Date,Open,High,Low,Close,Volume body. Stooq answers
// unknown tickers and empty ranges with a short plain-text message instead
// of a header, which is treated as zero quotes, not an error. Malformed
// rows are skipped with a warning.
func (c *Client) parseCSV(body string) ([]Quote, error) {
	body = strings.TrimSpace(body)
	if body == "" || !strings.HasPrefix(strings.ToLower(body), "date,") {
		c.logger.WithField("body", truncate(body, 60)).Warn("No tabular data in response")
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	quotes := make([]Quote, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue // header or truncated row
		}

		day, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			c.logger.WithField("row", i).Warn("Skipping quote with bad date")
			continue
		}

		open, err1 := strconv.ParseFloat(row[1], 64)
		high, err2 := strconv.ParseFloat(row[2], 64)
		low, err3 := strconv.ParseFloat(row[3], 64)
		closeP, err4 := strconv.ParseFloat(row[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			c.logger.WithField("row", i).Warn("Skipping quote with non-numeric price")
			continue
		}

		q := Quote{Date: day, Open: open, High: high, Low: low, Close: closeP}
		if len(row) > 5 {
			if vol, err := strconv.ParseInt(row[5], 10, 64); err == nil {
				q.Volume = &vol
			}
		}

		quotes = append(quotes, q)
	}

	return quotes, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

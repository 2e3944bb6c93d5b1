// Package nbp talks to the National Bank of Poland: the gold price JSON
// API and the quarterly residential property report (xlsx).
package nbp

import (
	"goldgauge/pkg/config"
	"goldgauge/pkg/httputil"
	"goldgauge/pkg/logger"
)

// EarliestGoldData is the first date the NBP gold price API serves.
var EarliestGoldData = "2013-01-02"

// Client handles communication with NBP endpoints.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.NBPConfig
}

// NewClient creates a new NBP client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.NBPConfig) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("source", "nbp"),
		cfg:        cfg,
	}
}

// MaxSpanDays returns the API's maximum date span per request.
func (c *Client) MaxSpanDays() int {
	return c.cfg.MaxSpanDays
}

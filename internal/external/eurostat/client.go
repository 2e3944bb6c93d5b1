// Package eurostat fetches Polish wage statistics from the Eurostat
// dissemination API (JSON-stat 2.0 responses).
package eurostat

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"goldgauge/internal/timeseries"
	"goldgauge/pkg/config"
	"goldgauge/pkg/httputil"
	"goldgauge/pkg/logger"
)

const (
	// DatasetAverageWages is "Average full-time adjusted salary per
	// employee", annual, from 2013.
	DatasetAverageWages = "nama_10_fte"
	// DatasetMinimumWages is "Monthly minimum wages", semi-annual (S1/S2),
	// from 1999.
	DatasetMinimumWages = "earn_mw_cur"
)

// Client handles communication with the Eurostat API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.EurostatConfig
}

// NewClient creates a new Eurostat client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.EurostatConfig) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("source", "eurostat"),
		cfg:        cfg,
	}
}

// FetchAverageWages fetches annual average wages for Poland in PLN,
// filtered to [startYear, endYear].
func (c *Client) FetchAverageWages(ctx context.Context, startYear, endYear int) ([]timeseries.Record, error) {
	url := fmt.Sprintf("%s/%s?format=JSON&geo=PL&unit=NAC", c.cfg.BaseURL, DatasetAverageWages)

	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	records, err := parseAnnual(body, startYear, endYear)
	if err != nil {
		return nil, &httputil.FetchError{URL: url, Err: err}
	}

	c.logger.WithField("count", len(records)).Debug("Fetched average wages")
	return records, nil
}

// FetchMinimumWages fetches semi-annual minimum wages for Poland in PLN and
// averages S1/S2 to one annual value per year in [startYear, endYear].
func (c *Client) FetchMinimumWages(ctx context.Context, startYear, endYear int) ([]timeseries.Record, error) {
	url := fmt.Sprintf("%s/%s?format=JSON&geo=PL", c.cfg.BaseURL, DatasetMinimumWages)

	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	records, err := parseSemiAnnual(body, startYear, endYear)
	if err != nil {
		return nil, &httputil.FetchError{URL: url, Err: err}
	}

	c.logger.WithField("count", len(records)).Debug("Fetched minimum wages")
	return records, nil
}

func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, url, map[string]string{
		"Accept":     "application/json",
		"User-Agent": "goldgauge/1.0",
	})
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

// jsonStat is the subset of a JSON-stat 2.0 response this client reads.
// Values live in a flat map keyed by the stringified index into the
// row-major cube described by id/size.
type jsonStat struct {
	ID        []string               `json:"id"`
	Size      []int                  `json:"size"`
	Value     map[string]float64     `json:"value"`
	Dimension map[string]jsonStatDim `json:"dimension"`
}

type jsonStatDim struct {
	Category struct {
		Index map[string]int `json:"index"`
	} `json:"category"`
}

// flatIndex computes the row-major index for one cell. chosen maps a
// dimension name to its category index; unnamed dimensions default to 0
// (they are size 1 after server-side filtering).
func (s *jsonStat) flatIndex(chosen map[string]int) int {
	idx := 0
	for d, name := range s.ID {
		stride := 1
		for _, size := range s.Size[d+1:] {
			stride *= size
		}
		idx += chosen[name] * stride
	}
	return idx
}

// timeIndex returns the time dimension's category index map.
func (s *jsonStat) timeIndex() (map[string]int, error) {
	dim, ok := s.Dimension["time"]
	if !ok || len(dim.Category.Index) == 0 {
		return nil, fmt.Errorf("time dimension missing from response")
	}
	return dim.Category.Index, nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldgauge/internal/external/stooq"
	"goldgauge/internal/snapshot"
	"goldgauge/internal/sources"
	"goldgauge/internal/timeseries"
	"goldgauge/pkg/config"
)

const cdrCSV = "Date,Open,High,Low,Close,Volume\n" +
	"2013-01-02,5.50,5.80,5.45,5.75,120000\n" +
	"2013-01-31,5.90,6.40,5.85,6.10,98000\n" +
	"2013-02-28,6.10,6.30,5.20,6.25,87000\n"

func newStocksPipeline(t *testing.T, baseURL string) *Stocks {
	t.Helper()
	httpClient, log := testDeps(t)
	client := stooq.NewClient(httpClient, log, config.StooqConfig{BaseURL: baseURL})
	return NewStocks(client, log)
}

func monthlyGoldReference(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "nbp-gold-prices-monthly.json")
	require.NoError(t, snapshot.Write(path, snapshot.MonthlyPrices([]timeseries.Record{
		{Key: timeseries.MonthKey(2013, 1), Value: 163.0},
	})))
	return path
}

func TestStocksRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("s") {
		case "cdr.wa":
			w.Write([]byte(cdrCSV))
		default:
			w.Write([]byte("No data"))
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	p := newStocksPipeline(t, srv.URL)

	registry := &sources.Registry{Stocks: []sources.Stock{
		{Ticker: "CDR.WA", Name: "CD Projekt", Currency: "PLN", StartYear: 2013},
	}}

	summary, err := p.Run(context.Background(), StocksParams{
		Registry:       registry,
		GoldPricesPath: monthlyGoldReference(t, dir),
		OutputDir:      dir,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, 1, summary.Joined)
	assert.Equal(t, 1, summary.Unmatched)

	data, err := os.ReadFile(filepath.Join(dir, "cdr_wa-monthly.json"))
	require.NoError(t, err)

	var series snapshot.StockSeries
	require.NoError(t, json.Unmarshal(data, &series))

	assert.Equal(t, "CDR.WA", series.Ticker)
	assert.Equal(t, "CD Projekt", series.Name)
	assert.Equal(t, "PLN", series.Currency)
	assert.Equal(t, 2, series.DataPoints)
	assert.NotEmpty(t, series.Generated)
	require.Len(t, series.Data, 2)

	jan := series.Data[0]
	assert.Equal(t, 2013, jan.Year)
	assert.Equal(t, 1, jan.Month)
	assert.Equal(t, 5.90, jan.Open, "open comes from the last trading day")
	assert.Equal(t, 6.10, jan.Close)
	assert.Equal(t, 6.40, jan.High, "high is the monthly extreme")
	assert.Equal(t, 5.45, jan.Low)
	require.NotNil(t, jan.Volume)
	assert.Equal(t, int64(98000), *jan.Volume)
	require.NotNil(t, jan.PriceGold)
	assert.Equal(t, timeseries.Round2(6.10/163.0), *jan.PriceGold)

	assert.Nil(t, series.Data[1].PriceGold, "february has no gold reference")
}

func TestStocksRunTickerIsolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("s") {
		case "cdr.wa":
			w.Write([]byte(cdrCSV))
		case "bad.wa":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte("No data"))
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	p := newStocksPipeline(t, srv.URL)

	registry := &sources.Registry{Stocks: []sources.Stock{
		{Ticker: "BAD.WA", Name: "Broken", StartYear: 2013},
		{Ticker: "GONE.WA", Name: "Delisted", StartYear: 2013},
		{Ticker: "CDR.WA", Name: "CD Projekt", StartYear: 2013},
	}}

	summary, err := p.Run(context.Background(), StocksParams{
		Registry:       registry,
		GoldPricesPath: monthlyGoldReference(t, dir),
		OutputDir:      dir,
	})
	require.NoError(t, err, "one good ticker keeps the run green")

	assert.Len(t, summary.Warnings, 2)
	assert.FileExists(t, filepath.Join(dir, "cdr_wa-monthly.json"))
	assert.NoFileExists(t, filepath.Join(dir, "bad_wa-monthly.json"))
	assert.NoFileExists(t, filepath.Join(dir, "gone_wa-monthly.json"))
}

func TestStocksRunAllTickersFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("No data"))
	}))
	defer srv.Close()

	p := newStocksPipeline(t, srv.URL)

	registry := &sources.Registry{Stocks: []sources.Stock{
		{Ticker: "GONE.WA", StartYear: 2013},
	}}

	_, err := p.Run(context.Background(), StocksParams{
		Registry:  registry,
		OutputDir: t.TempDir(),
	})
	require.ErrorIs(t, err, ErrNoData)
}

func TestStocksRunEmptyRegistry(t *testing.T) {
	p := newStocksPipeline(t, "http://unused")

	summary, err := p.Run(context.Background(), StocksParams{
		Registry:  &sources.Registry{},
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Records)
	assert.NotEmpty(t, summary.Warnings)
}

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"goldgauge/internal/external/stooq"
	"goldgauge/internal/snapshot"
	"goldgauge/internal/sources"
	"goldgauge/internal/timeseries"
	"goldgauge/pkg/logger"
)

const stockNote = "Monthly candles: open/close from the last trading day, high/low are monthly extremes."

// Stocks runs the stock quote pipeline: fetch daily quotes per configured
// ticker, fold them into monthly candles, attach the gold-gram close,
// publish one snapshot per ticker. Tickers fail independently.
type Stocks struct {
	stooq  *stooq.Client
	logger *logger.Logger
}

// NewStocks creates the stocks pipeline.
func NewStocks(client *stooq.Client, log *logger.Logger) *Stocks {
	return &Stocks{
		stooq:  client,
		logger: log.WithField("pipeline", "stocks"),
	}
}

// StocksParams configures one stocks run. GoldPricesPath points at a
// previously-written monthly gold snapshot.
type StocksParams struct {
	Registry       *sources.Registry
	GoldPricesPath string
	OutputDir      string
}

// Run executes the stocks pipeline. One bad ticker never blocks the rest;
// the run fails only when every configured ticker produced nothing.
func (p *Stocks) Run(ctx context.Context, params StocksParams) (*RunSummary, error) {
	summary := &RunSummary{Source: "stocks", OutputPath: params.OutputDir}

	if params.Registry == nil || len(params.Registry.Stocks) == 0 {
		summary.warnf("no stocks configured")
		return summary, nil
	}

	reference, err := snapshot.LoadMonthlyPrices(params.GoldPricesPath)
	if err != nil {
		summary.warnf("gold reference unavailable, publishing prices only: %v", err)
		p.logger.WithError(err).Warn("Gold reference unavailable")
	}
	refByKey := make(map[timeseries.PeriodKey]float64, len(reference))
	for _, r := range reference {
		refByKey[r.Key] = r.Value
	}

	now := time.Now().UTC()
	written := 0

	for _, stock := range params.Registry.Stocks {
		from := time.Date(stock.StartYear, 1, 1, 0, 0, 0, 0, time.UTC)

		quotes, err := p.stooq.FetchDaily(ctx, stock.Ticker, from, now)
		if err != nil {
			summary.warnf("%s: fetch failed: %v", stock.Ticker, err)
			p.logger.WithError(err).WithField("ticker", stock.Ticker).Warn("Stock fetch failed")
			continue
		}
		if len(quotes) == 0 {
			summary.warnf("%s: no quotes returned", stock.Ticker)
			continue
		}
		summary.Fetched += len(quotes)

		months := monthlyCandles(quotes)
		for i := range months {
			key := timeseries.MonthKey(months[i].Year, months[i].Month)
			if goldPrice, ok := refByKey[key]; ok && goldPrice > 0 {
				grams := timeseries.Round2(months[i].Close / goldPrice)
				months[i].PriceGold = &grams
				summary.Joined++
			} else {
				summary.Unmatched++
			}
		}
		summary.Records += len(months)

		series := snapshot.StockSeries{
			Ticker:     stock.Ticker,
			Name:       stock.Name,
			Generated:  now.Format(time.RFC3339),
			DataPoints: len(months),
			Currency:   stock.Currency,
			Note:       stockNote,
			Data:       months,
		}

		path := filepath.Join(params.OutputDir, stock.FileName())
		if err := snapshot.Write(path, series); err != nil {
			summary.warnf("%s: write failed: %v", stock.Ticker, err)
			p.logger.WithError(err).WithField("ticker", stock.Ticker).Warn("Stock snapshot write failed")
			continue
		}

		written++
		p.logger.WithFields(map[string]interface{}{
			"ticker":  stock.Ticker,
			"records": len(months),
			"path":    path,
		}).Info("Stock snapshot written")
	}

	if written == 0 {
		return summary, fmt.Errorf("stocks: %w", ErrNoData)
	}
	return summary, nil
}

// monthlyCandles folds daily quotes into one candle per month: open and
// close come from the month's last trading day, high and low are the
// month's extremes, volume is the last day's. Output is sorted ascending.
func monthlyCandles(quotes []stooq.Quote) []snapshot.StockMonth {
	byMonth := make(map[timeseries.PeriodKey][]stooq.Quote)
	for _, q := range quotes {
		key := timeseries.MonthKey(q.Date.Year(), int(q.Date.Month()))
		byMonth[key] = append(byMonth[key], q)
	}

	months := make([]snapshot.StockMonth, 0, len(byMonth))
	for key, days := range byMonth {
		sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

		last := days[len(days)-1]
		candle := snapshot.StockMonth{
			Year:   key.Year,
			Month:  key.Month,
			Open:   timeseries.Round2(last.Open),
			High:   timeseries.Round2(last.High),
			Low:    timeseries.Round2(last.Low),
			Close:  timeseries.Round2(last.Close),
			Volume: last.Volume,
		}
		for _, d := range days {
			if d.High > candle.High {
				candle.High = timeseries.Round2(d.High)
			}
			if d.Low < candle.Low {
				candle.Low = timeseries.Round2(d.Low)
			}
		}
		months = append(months, candle)
	}

	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})
	return months
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"goldgauge/internal/external/nbp"
	"goldgauge/internal/snapshot"
	"goldgauge/internal/timeseries"
	"goldgauge/pkg/logger"
)

// Gold runs the gold price pipeline: plan chunks against the API span
// limit, fetch each chunk, aggregate daily quotes to monthly or yearly
// means, publish.
type Gold struct {
	nbp    *nbp.Client
	logger *logger.Logger
}

// NewGold creates the gold pipeline.
func NewGold(client *nbp.Client, log *logger.Logger) *Gold {
	return &Gold{
		nbp:    client,
		logger: log.WithField("pipeline", "gold"),
	}
}

// GoldParams configures one gold run.
type GoldParams struct {
	StartYear  int
	EndYear    int
	Monthly    bool
	OutputPath string
}

// Run executes the gold pipeline. Failed chunks degrade coverage and are
// counted; the run aborts only when no chunk yields any observation, so a
// dead API never overwrites an existing snapshot.
func (p *Gold) Run(ctx context.Context, params GoldParams) (*RunSummary, error) {
	summary := &RunSummary{Source: "gold", OutputPath: params.OutputPath}

	start, end, err := goldRange(params.StartYear, params.EndYear)
	if err != nil {
		return summary, err
	}

	chunks, err := timeseries.PlanChunks(start, end, p.nbp.MaxSpanDays())
	if err != nil {
		return summary, fmt.Errorf("plan gold chunks: %w", err)
	}
	summary.ChunksTotal = len(chunks)

	var observations []timeseries.Observation
	for _, chunk := range chunks {
		obs, err := p.nbp.FetchGoldRange(ctx, chunk)
		if err != nil {
			summary.ChunksFailed++
			summary.warnf("chunk %s..%s failed: %v",
				chunk.Start.Format("2006-01-02"), chunk.End.Format("2006-01-02"), err)
			p.logger.WithError(err).Warn("Gold chunk fetch failed")
			continue
		}
		observations = append(observations, obs...)
	}
	summary.Fetched = len(observations)

	if len(observations) == 0 {
		return summary, fmt.Errorf("gold: %w", ErrNoData)
	}

	records := timeseries.Aggregate(observations, timeseries.Monthly)
	if !params.Monthly {
		records = timeseries.YearlyMean(records)
	}
	summary.Records = len(records)

	var payload interface{}
	if params.Monthly {
		payload = snapshot.MonthlyPrices(records)
	} else {
		payload = snapshot.AnnualPrices(records)
	}

	if err := snapshot.Write(params.OutputPath, payload); err != nil {
		return summary, err
	}

	p.logger.WithFields(map[string]interface{}{
		"records": summary.Records,
		"path":    params.OutputPath,
	}).Info("Gold snapshot written")
	return summary, nil
}

// RunToday fetches the latest gold quote and publishes the single-value
// snapshot with a generation timestamp.
func (p *Gold) RunToday(ctx context.Context, outputPath string) (*RunSummary, error) {
	summary := &RunSummary{Source: "gold-today", OutputPath: outputPath}

	obs, err := p.nbp.FetchGoldToday(ctx)
	if err != nil {
		return summary, err
	}
	summary.Fetched = 1
	summary.Records = 1

	today := snapshot.TodayPrice{
		Date:      obs.Date.Format("2006-01-02"),
		Price:     timeseries.Round2(obs.Value),
		Generated: time.Now().UTC().Format(time.RFC3339),
	}

	if err := snapshot.Write(outputPath, today); err != nil {
		return summary, err
	}

	p.logger.WithFields(map[string]interface{}{
		"date":  today.Date,
		"price": today.Price,
	}).Info("Today's gold snapshot written")
	return summary, nil
}

// goldRange resolves the requested years to an inclusive date range,
// clamped to the API's earliest data and to today.
func goldRange(startYear, endYear int) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	if endYear == 0 {
		endYear = now.Year()
	}

	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	earliest, err := time.Parse("2006-01-02", nbp.EarliestGoldData)
	if err == nil && start.Before(earliest) {
		start = earliest
	}

	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if end.After(today) {
		end = today
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: years %d..%d",
			timeseries.ErrInvalidRange, startYear, endYear)
	}
	return start, end, nil
}

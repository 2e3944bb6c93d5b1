package pipeline

import (
	"context"
	"fmt"

	"goldgauge/internal/external/nbp"
	"goldgauge/internal/snapshot"
	"goldgauge/internal/timeseries"
	"goldgauge/pkg/logger"
)

// Housing runs the Warsaw m2 pipeline: discover and download the NBP
// quarterly workbook, extract the Warsaw column, densify quarters to a
// monthly grid, join against the monthly gold snapshot, publish.
type Housing struct {
	nbp    *nbp.Client
	logger *logger.Logger
}

// NewHousing creates the housing pipeline.
func NewHousing(client *nbp.Client, log *logger.Logger) *Housing {
	return &Housing{
		nbp:    client,
		logger: log.WithField("pipeline", "housing"),
	}
}

// HousingParams configures one housing run. GoldPricesPath points at a
// previously-written monthly gold snapshot.
type HousingParams struct {
	GoldPricesPath string
	OutputPath     string
}

// Run executes the housing pipeline.
func (p *Housing) Run(ctx context.Context, params HousingParams) (*RunSummary, error) {
	summary := &RunSummary{Source: "housing", OutputPath: params.OutputPath}

	reportURL := p.nbp.DiscoverHousingReportURL(ctx)

	workbook, err := p.nbp.FetchHousingWorkbook(ctx, reportURL)
	if err != nil {
		return summary, err
	}

	quarterly, err := p.nbp.ParseWarsawQuarterly(workbook)
	if err != nil {
		return summary, err
	}
	summary.Fetched = len(quarterly)

	if len(quarterly) == 0 {
		return summary, fmt.Errorf("housing: %w", ErrNoData)
	}

	monthly, err := timeseries.Densify(quarterly)
	if err != nil {
		return summary, fmt.Errorf("densify housing series: %w", err)
	}
	summary.Interpolated = len(monthly) - len(quarterly)

	reference, err := snapshot.LoadMonthlyPrices(params.GoldPricesPath)
	if err != nil {
		summary.warnf("gold reference unavailable, publishing PLN only: %v", err)
		p.logger.WithError(err).Warn("Gold reference unavailable")
	}

	joined, stats := timeseries.Join(monthly, reference, timeseries.EmitAbsent)
	summary.Joined = stats.Matched
	summary.Unmatched = stats.Unmatched
	if stats.ZeroReference > 0 {
		summary.warnf("%d months had a zero gold reference", stats.ZeroReference)
	}
	summary.Records = len(joined)

	if err := snapshot.Write(params.OutputPath, snapshot.MonthlyHousingRecords(joined)); err != nil {
		return summary, err
	}

	p.logger.WithFields(map[string]interface{}{
		"records":      summary.Records,
		"interpolated": summary.Interpolated,
		"path":         params.OutputPath,
	}).Info("Housing snapshot written")
	return summary, nil
}

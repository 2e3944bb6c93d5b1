package pipeline

import (
	"context"
	"fmt"

	"goldgauge/internal/external/eurostat"
	"goldgauge/internal/snapshot"
	"goldgauge/internal/timeseries"
	"goldgauge/pkg/logger"
)

// WageDataset selects which Eurostat wage series a wages run publishes.
type WageDataset int

const (
	AverageWages WageDataset = iota
	MinimumWages
)

func (d WageDataset) String() string {
	if d == MinimumWages {
		return "wages-minimum"
	}
	return "wages-average"
}

// Wages runs a wage pipeline: fetch an annual Eurostat series, join it
// against the annual gold snapshot to express wages in grams of gold,
// publish.
type Wages struct {
	eurostat *eurostat.Client
	logger   *logger.Logger
}

// NewWages creates the wages pipeline.
func NewWages(client *eurostat.Client, log *logger.Logger) *Wages {
	return &Wages{
		eurostat: client,
		logger:   log.WithField("pipeline", "wages"),
	}
}

// WagesParams configures one wages run. GoldPricesPath points at a
// previously-written annual gold snapshot; when it cannot be read the run
// still publishes wages in PLN, just without the gold conversion.
type WagesParams struct {
	Dataset        WageDataset
	StartYear      int
	EndYear        int
	GoldPricesPath string
	OutputPath     string
}

// Run executes the wages pipeline.
func (p *Wages) Run(ctx context.Context, params WagesParams) (*RunSummary, error) {
	summary := &RunSummary{Source: params.Dataset.String(), OutputPath: params.OutputPath}

	var (
		records []timeseries.Record
		err     error
	)
	switch params.Dataset {
	case MinimumWages:
		records, err = p.eurostat.FetchMinimumWages(ctx, params.StartYear, params.EndYear)
	default:
		records, err = p.eurostat.FetchAverageWages(ctx, params.StartYear, params.EndYear)
	}
	if err != nil {
		return summary, err
	}
	summary.Fetched = len(records)

	if len(records) == 0 {
		return summary, fmt.Errorf("%s: %w", params.Dataset, ErrNoData)
	}

	reference, err := snapshot.LoadAnnualPrices(params.GoldPricesPath)
	if err != nil {
		summary.warnf("gold reference unavailable, publishing PLN only: %v", err)
		p.logger.WithError(err).Warn("Gold reference unavailable")
	}

	joined, stats := timeseries.Join(records, reference, timeseries.EmitAbsent)
	summary.Joined = stats.Matched
	summary.Unmatched = stats.Unmatched
	if stats.ZeroReference > 0 {
		summary.warnf("%d years had a zero gold reference", stats.ZeroReference)
	}
	summary.Records = len(joined)

	if err := snapshot.Write(params.OutputPath, snapshot.AnnualWages(joined)); err != nil {
		return summary, err
	}

	p.logger.WithFields(map[string]interface{}{
		"dataset": params.Dataset.String(),
		"records": summary.Records,
		"path":    params.OutputPath,
	}).Info("Wage snapshot written")
	return summary, nil
}

package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"goldgauge/internal/timeseries"
)

// LoadAnnualPrices reads a previously-written annual price snapshot for use
// as a join reference.
func LoadAnnualPrices(path string) ([]timeseries.Record, error) {
	var entries []AnnualPrice
	if err := loadJSON(path, &entries); err != nil {
		return nil, err
	}

	records := make([]timeseries.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, timeseries.Record{
			Key:   timeseries.YearKey(e.Year),
			Value: e.Price,
		})
	}
	timeseries.SortRecords(records)
	return records, nil
}

// LoadMonthlyPrices reads a previously-written monthly price snapshot.
func LoadMonthlyPrices(path string) ([]timeseries.Record, error) {
	var entries []MonthlyPrice
	if err := loadJSON(path, &entries); err != nil {
		return nil, err
	}

	records := make([]timeseries.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, timeseries.Record{
			Key:   timeseries.MonthKey(e.Year, e.Month),
			Value: e.Price,
		})
	}
	timeseries.SortRecords(records)
	return records, nil
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return nil
}

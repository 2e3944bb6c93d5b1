package eurostat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"goldgauge/internal/timeseries"
)

// parseAnnual extracts one value per year from an annual JSON-stat body.
// Time codes are plain years ("2013"); years outside [startYear, endYear]
// and years without a value are dropped.
func parseAnnual(body []byte, startYear, endYear int) ([]timeseries.Record, error) {
	var stat jsonStat
	if err := json.Unmarshal(body, &stat); err != nil {
		return nil, fmt.Errorf("parse JSON-stat response: %w", err)
	}

	times, err := stat.timeIndex()
	if err != nil {
		return nil, err
	}

	var records []timeseries.Record
	for code, timeIdx := range times {
		year, err := strconv.Atoi(code)
		if err != nil {
			continue
		}
		if year < startYear || year > endYear {
			continue
		}

		flat := stat.flatIndex(map[string]int{"time": timeIdx})
		value, ok := stat.Value[strconv.Itoa(flat)]
		if !ok {
			continue
		}

		records = append(records, timeseries.Record{
			Key:   timeseries.YearKey(year),
			Value: value,
		})
	}

	timeseries.SortRecords(records)
	return records, nil
}

// parseSemiAnnual extracts semi-annual values ("2013-S1", "2013-S2") at the
// national-currency position of the currency dimension and averages the
// semesters of each year to a single annual value.
func parseSemiAnnual(body []byte, startYear, endYear int) ([]timeseries.Record, error) {
	var stat jsonStat
	if err := json.Unmarshal(body, &stat); err != nil {
		return nil, fmt.Errorf("parse JSON-stat response: %w", err)
	}

	times, err := stat.timeIndex()
	if err != nil {
		return nil, err
	}

	currency, ok := stat.Dimension["currency"]
	if !ok {
		return nil, fmt.Errorf("currency dimension missing from response")
	}
	nacIdx, ok := currency.Category.Index["NAC"]
	if !ok {
		return nil, fmt.Errorf("NAC not present in currency dimension")
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)

	for code, timeIdx := range times {
		year, ok := parseSemester(code)
		if !ok {
			continue
		}
		if year < startYear || year > endYear {
			continue
		}

		flat := stat.flatIndex(map[string]int{"time": timeIdx, "currency": nacIdx})
		value, found := stat.Value[strconv.Itoa(flat)]
		if !found {
			continue
		}

		sums[year] += value
		counts[year]++
	}

	records := make([]timeseries.Record, 0, len(sums))
	for year, sum := range sums {
		records = append(records, timeseries.Record{
			Key:   timeseries.YearKey(year),
			Value: sum / float64(counts[year]),
		})
	}

	timeseries.SortRecords(records)
	return records, nil
}

// parseSemester extracts the year from a "YYYY-S1" / "YYYY-S2" time code.
func parseSemester(code string) (int, bool) {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "S") {
		return 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	return year, true
}

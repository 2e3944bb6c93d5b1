package timeseries

import "sort"

// Aggregate reduces irregularly-timestamped observations into period
// buckets, one record per non-empty bucket carrying the arithmetic mean of
// the bucket's values. Output is sorted ascending by period key and is
// invariant to the input order. Empty input yields empty output.
func Aggregate(observations []Observation, g Granularity) []Record {
	sums := make(map[PeriodKey]float64)
	counts := make(map[PeriodKey]int)

	for _, obs := range observations {
		key := keyFor(obs.Date, g)
		sums[key] += obs.Value
		counts[key]++
	}

	records := make([]Record, 0, len(sums))
	for key, sum := range sums {
		records = append(records, Record{Key: key, Value: sum / float64(counts[key])})
	}

	SortRecords(records)
	return records
}

// YearlyMean reduces records of any granularity to annual means.
// Used to publish yearly series from already-aggregated monthly data.
func YearlyMean(records []Record) []Record {
	sums := make(map[int]float64)
	counts := make(map[int]int)

	for _, r := range records {
		sums[r.Key.Year] += r.Value
		counts[r.Key.Year]++
	}

	yearly := make([]Record, 0, len(sums))
	for year, sum := range sums {
		yearly = append(yearly, Record{Key: YearKey(year), Value: sum / float64(counts[year])})
	}

	SortRecords(yearly)
	return yearly
}

// SortRecords orders records ascending by period key.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key.Less(records[j].Key)
	})
}

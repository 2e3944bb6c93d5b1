// Package timeseries holds the shared time-series primitives: chunk
// planning against per-request span limits, bucket aggregation, monthly
// densification and ratio joins. Every source pipeline is built from these
// pieces; only response parsing lives elsewhere.
package timeseries

import (
	"fmt"
	"math"
	"time"
)

// Granularity is the bucket width for aggregation.
type Granularity int

const (
	Monthly Granularity = iota
	Yearly
)

// PeriodKey identifies one bucket: a (year) or (year, month) tuple.
// Month 0 means an annual key. Keys order chronologically.
type PeriodKey struct {
	Year  int
	Month int
}

// YearKey returns an annual period key.
func YearKey(year int) PeriodKey {
	return PeriodKey{Year: year}
}

// MonthKey returns a monthly period key.
func MonthKey(year, month int) PeriodKey {
	return PeriodKey{Year: year, Month: month}
}

// Less reports whether k sorts before other chronologically.
func (k PeriodKey) Less(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// IsMonthly reports whether the key carries a month component.
func (k PeriodKey) IsMonthly() bool {
	return k.Month >= 1 && k.Month <= 12
}

// monthIndex maps a monthly key onto a continuous month axis.
func (k PeriodKey) monthIndex() int {
	return k.Year*12 + (k.Month - 1)
}

func (k PeriodKey) String() string {
	if k.Month == 0 {
		return fmt.Sprintf("%d", k.Year)
	}
	return fmt.Sprintf("%d-%02d", k.Year, k.Month)
}

// keyFor truncates a date to the requested granularity.
func keyFor(date time.Time, g Granularity) PeriodKey {
	if g == Yearly {
		return YearKey(date.Year())
	}
	return MonthKey(date.Year(), int(date.Month()))
}

// Observation is one raw (date, value) point produced by a source fetch.
type Observation struct {
	Date  time.Time
	Value float64
}

// Record is one period bucket. Derived is populated only after a join
// against a reference series and stays nil when no conversion was possible.
type Record struct {
	Key     PeriodKey
	Value   float64
	Derived *float64
}

// Round2 rounds to two decimals, the precision of every published value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package snapshot owns the on-disk JSON shapes consumed by the chart
// viewer and the atomic writer that publishes them. Field names mirror the
// existing data files, so new snapshots stay drop-in replacements.
package snapshot

import (
	"goldgauge/internal/timeseries"
)

// AnnualPrice is one year of a price series, e.g. gold PLN/gram.
type AnnualPrice struct {
	Year  int     `json:"year"`
	Price float64 `json:"price"`
}

// MonthlyPrice is one month of a price series.
type MonthlyPrice struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Price float64 `json:"price"`
}

// AnnualWage is one year of a wage series. Price is the wage expressed in
// grams of gold and is omitted for years without gold coverage.
type AnnualWage struct {
	Year  int      `json:"year"`
	Wage  float64  `json:"wage"`
	Price *float64 `json:"price,omitempty"`
}

// MonthlyHousing is one month of the Warsaw m2 series. PriceM2Gold is null
// (not omitted) when the month has no gold reference, matching the files
// the viewer already reads.
type MonthlyHousing struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	PriceM2PLN  float64  `json:"priceM2_pln"`
	PriceM2Gold *float64 `json:"priceM2_gold"`
}

// TodayPrice is the latest single gold quote.
type TodayPrice struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	Generated string  `json:"generated"`
}

// StockMonth is one month of a stock series: last trading day's open/close
// with the month's high/low extremes.
type StockMonth struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Open      float64  `json:"open"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Close     float64  `json:"close"`
	Volume    *int64   `json:"volume"`
	PriceGold *float64 `json:"price_gold"`
}

// StockSeries is the per-ticker snapshot file.
type StockSeries struct {
	Ticker     string       `json:"ticker"`
	Name       string       `json:"name"`
	Generated  string       `json:"generated"`
	DataPoints int          `json:"data_points"`
	Currency   string       `json:"currency"`
	Note       string       `json:"note"`
	Data       []StockMonth `json:"data"`
}

// LastUpdated marks the completion time of a full refresh.
type LastUpdated struct {
	Updated string `json:"updated"`
}

// AnnualPrices converts records to the annual price shape, re-sorting
// defensively so the serialized order never depends on the caller.
func AnnualPrices(records []timeseries.Record) []AnnualPrice {
	records = sortedCopy(records)
	out := make([]AnnualPrice, 0, len(records))
	for _, r := range records {
		out = append(out, AnnualPrice{
			Year:  r.Key.Year,
			Price: timeseries.Round2(r.Value),
		})
	}
	return out
}

// MonthlyPrices converts records to the monthly price shape.
func MonthlyPrices(records []timeseries.Record) []MonthlyPrice {
	records = sortedCopy(records)
	out := make([]MonthlyPrice, 0, len(records))
	for _, r := range records {
		out = append(out, MonthlyPrice{
			Year:  r.Key.Year,
			Month: r.Key.Month,
			Price: timeseries.Round2(r.Value),
		})
	}
	return out
}

// AnnualWages converts joined records to the wage shape. The derived gold
// value becomes the optional price field.
func AnnualWages(records []timeseries.Record) []AnnualWage {
	records = sortedCopy(records)
	out := make([]AnnualWage, 0, len(records))
	for _, r := range records {
		w := AnnualWage{
			Year: r.Key.Year,
			Wage: timeseries.Round2(r.Value),
		}
		if r.Derived != nil {
			p := timeseries.Round2(*r.Derived)
			w.Price = &p
		}
		out = append(out, w)
	}
	return out
}

// MonthlyHousingRecords converts joined records to the housing shape.
func MonthlyHousingRecords(records []timeseries.Record) []MonthlyHousing {
	records = sortedCopy(records)
	out := make([]MonthlyHousing, 0, len(records))
	for _, r := range records {
		h := MonthlyHousing{
			Year:       r.Key.Year,
			Month:      r.Key.Month,
			PriceM2PLN: timeseries.Round2(r.Value),
		}
		if r.Derived != nil {
			p := timeseries.Round2(*r.Derived)
			h.PriceM2Gold = &p
		}
		out = append(out, h)
	}
	return out
}

func sortedCopy(records []timeseries.Record) []timeseries.Record {
	cp := make([]timeseries.Record, len(records))
	copy(cp, records)
	timeseries.SortRecords(cp)
	return cp
}

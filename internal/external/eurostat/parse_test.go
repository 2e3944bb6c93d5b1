package eurostat

import (
	"testing"

	"goldgauge/internal/timeseries"
)

// Annual response filtered by unit=NAC: every dimension except time has
// size 1, so the flat index equals the time index.
const annualBody = `{
	"id": ["freq", "unit", "na_item", "geo", "time"],
	"size": [1, 1, 1, 1, 4],
	"value": {"0": 43066.5, "1": 44565.3, "3": 47269.4},
	"dimension": {
		"time": {"category": {"index": {"2013": 0, "2014": 1, "2015": 2, "2016": 3}}}
	}
}`

// Semi-annual response with a 3-wide currency dimension; NAC sits at
// index 1, so values for PLN live at flat index currency_stride*1 + time.
const semiAnnualBody = `{
	"id": ["freq", "currency", "geo", "time"],
	"size": [1, 3, 1, 4],
	"value": {
		"4": 1600.0, "5": 1600.0, "6": 1680.0, "7": 1700.0,
		"0": 392.72, "1": 404.41
	},
	"dimension": {
		"currency": {"category": {"index": {"EUR": 0, "NAC": 1, "PPS": 2}}},
		"time": {"category": {"index": {"2013-S1": 0, "2013-S2": 1, "2014-S1": 2, "2014-S2": 3}}}
	}
}`

func TestParseAnnual(t *testing.T) {
	records, err := parseAnnual([]byte(annualBody), 2013, 2016)
	if err != nil {
		t.Fatalf("parseAnnual() error = %v", err)
	}

	want := []timeseries.Record{
		{Key: timeseries.YearKey(2013), Value: 43066.5},
		{Key: timeseries.YearKey(2014), Value: 44565.3},
		{Key: timeseries.YearKey(2016), Value: 47269.4},
	}

	if len(records) != len(want) {
		t.Fatalf("parseAnnual() = %d records, want %d (2015 has no value)", len(records), len(want))
	}
	for i := range records {
		if records[i] != want[i] {
			t.Errorf("record[%d] = {%s %v}, want {%s %v}",
				i, records[i].Key, records[i].Value, want[i].Key, want[i].Value)
		}
	}
}

func TestParseAnnualYearFilter(t *testing.T) {
	records, err := parseAnnual([]byte(annualBody), 2014, 2014)
	if err != nil {
		t.Fatalf("parseAnnual() error = %v", err)
	}
	if len(records) != 1 || records[0].Key != timeseries.YearKey(2014) {
		t.Errorf("parseAnnual() = %v, want only 2014", records)
	}
}

func TestParseAnnualMalformed(t *testing.T) {
	if _, err := parseAnnual([]byte(`{"no": "dimensions"}`), 2013, 2020); err == nil {
		t.Fatal("expected error for response without time dimension")
	}
	if _, err := parseAnnual([]byte(`not json`), 2013, 2020); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestParseSemiAnnual(t *testing.T) {
	records, err := parseSemiAnnual([]byte(semiAnnualBody), 2013, 2014)
	if err != nil {
		t.Fatalf("parseSemiAnnual() error = %v", err)
	}

	// 2013: (1600+1600)/2, 2014: (1680+1700)/2 — EUR values must not leak in.
	want := []timeseries.Record{
		{Key: timeseries.YearKey(2013), Value: 1600.0},
		{Key: timeseries.YearKey(2014), Value: 1690.0},
	}

	if len(records) != len(want) {
		t.Fatalf("parseSemiAnnual() = %d records, want %d", len(records), len(want))
	}
	for i := range records {
		if records[i] != want[i] {
			t.Errorf("record[%d] = {%s %v}, want {%s %v}",
				i, records[i].Key, records[i].Value, want[i].Key, want[i].Value)
		}
	}
}

func TestParseSemiAnnualMissingNAC(t *testing.T) {
	body := `{
		"id": ["freq", "currency", "geo", "time"],
		"size": [1, 1, 1, 2],
		"value": {"0": 400.0},
		"dimension": {
			"currency": {"category": {"index": {"EUR": 0}}},
			"time": {"category": {"index": {"2013-S1": 0, "2013-S2": 1}}}
		}
	}`
	if _, err := parseSemiAnnual([]byte(body), 2013, 2020); err == nil {
		t.Fatal("expected error when NAC currency is absent")
	}
}

func TestParseSemester(t *testing.T) {
	tests := []struct {
		code   string
		year   int
		wantOK bool
	}{
		{"2013-S1", 2013, true},
		{"2013-S2", 2013, true},
		{"2013", 0, false},
		{"2013-Q1", 0, false},
		{"abcd-S1", 0, false},
	}

	for _, tt := range tests {
		year, ok := parseSemester(tt.code)
		if ok != tt.wantOK || year != tt.year {
			t.Errorf("parseSemester(%q) = (%d, %v), want (%d, %v)",
				tt.code, year, ok, tt.year, tt.wantOK)
		}
	}
}

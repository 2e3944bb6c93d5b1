package timeseries

import (
	"errors"
	"math"
	"testing"
)

func TestDensify(t *testing.T) {
	tests := []struct {
		name    string
		points  []Record
		want    []Record
		wantErr error
	}{
		{
			name: "quarterly points interpolate in linear steps",
			points: []Record{
				{Key: MonthKey(2013, 1), Value: 6000},
				{Key: MonthKey(2013, 4), Value: 6300},
			},
			want: []Record{
				{Key: MonthKey(2013, 1), Value: 6000},
				{Key: MonthKey(2013, 2), Value: 6100},
				{Key: MonthKey(2013, 3), Value: 6200},
				{Key: MonthKey(2013, 4), Value: 6300},
			},
		},
		{
			name: "adjacent months pass through unchanged",
			points: []Record{
				{Key: MonthKey(2020, 11), Value: 10},
				{Key: MonthKey(2020, 12), Value: 20},
			},
			want: []Record{
				{Key: MonthKey(2020, 11), Value: 10},
				{Key: MonthKey(2020, 12), Value: 20},
			},
		},
		{
			name: "gap across year boundary",
			points: []Record{
				{Key: MonthKey(2019, 11), Value: 100},
				{Key: MonthKey(2020, 2), Value: 400},
			},
			want: []Record{
				{Key: MonthKey(2019, 11), Value: 100},
				{Key: MonthKey(2019, 12), Value: 200},
				{Key: MonthKey(2020, 1), Value: 300},
				{Key: MonthKey(2020, 2), Value: 400},
			},
		},
		{
			name: "multiple segments keep known points exact",
			points: []Record{
				{Key: MonthKey(2021, 1), Value: 1000},
				{Key: MonthKey(2021, 4), Value: 1600},
				{Key: MonthKey(2021, 6), Value: 1500},
			},
			want: []Record{
				{Key: MonthKey(2021, 1), Value: 1000},
				{Key: MonthKey(2021, 2), Value: 1200},
				{Key: MonthKey(2021, 3), Value: 1400},
				{Key: MonthKey(2021, 4), Value: 1600},
				{Key: MonthKey(2021, 5), Value: 1550},
				{Key: MonthKey(2021, 6), Value: 1500},
			},
		},
		{
			name:    "empty input",
			points:  nil,
			wantErr: ErrInsufficientData,
		},
		{
			name:    "single point",
			points:  []Record{{Key: MonthKey(2013, 1), Value: 6000}},
			wantErr: ErrInsufficientData,
		},
		{
			name: "unsorted input",
			points: []Record{
				{Key: MonthKey(2013, 4), Value: 6300},
				{Key: MonthKey(2013, 1), Value: 6000},
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: "annual key rejected",
			points: []Record{
				{Key: YearKey(2013), Value: 6000},
				{Key: MonthKey(2013, 4), Value: 6300},
			},
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Densify(tt.points)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Densify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Densify() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Densify() = %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Key != tt.want[i].Key {
					t.Errorf("record[%d] key = %s, want %s", i, got[i].Key, tt.want[i].Key)
				}
				if math.Abs(got[i].Value-tt.want[i].Value) > 1e-9 {
					t.Errorf("record[%d] value = %v, want %v", i, got[i].Value, tt.want[i].Value)
				}
			}
		})
	}
}

// The densified output must be a strictly consecutive month sequence with
// no gaps inside the known-data span and no extrapolation beyond it.
func TestDensifyConsecutive(t *testing.T) {
	points := []Record{
		{Key: MonthKey(2006, 7), Value: 5000},
		{Key: MonthKey(2007, 1), Value: 5600},
		{Key: MonthKey(2009, 10), Value: 7200},
	}

	dense, err := Densify(points)
	if err != nil {
		t.Fatalf("Densify() error = %v", err)
	}

	if dense[0].Key != MonthKey(2006, 7) {
		t.Errorf("first key = %s, want 2006-07", dense[0].Key)
	}
	if dense[len(dense)-1].Key != MonthKey(2009, 10) {
		t.Errorf("last key = %s, want 2009-10", dense[len(dense)-1].Key)
	}

	for i := 1; i < len(dense); i++ {
		if dense[i].Key.monthIndex() != dense[i-1].Key.monthIndex()+1 {
			t.Errorf("gap between %s and %s", dense[i-1].Key, dense[i].Key)
		}
	}
}

package timeseries

import (
	"math"
	"testing"
)

func TestJoin(t *testing.T) {
	primary := []Record{
		{Key: YearKey(2012), Value: 1500}, // before reference coverage
		{Key: YearKey(2013), Value: 1600},
		{Key: YearKey(2014), Value: 1680},
	}
	reference := []Record{
		{Key: YearKey(2013), Value: 143.58},
		{Key: YearKey(2014), Value: 140.00},
		{Key: YearKey(2015), Value: 150.00}, // not in primary
	}

	t.Run("emit absent keeps uncovered periods", func(t *testing.T) {
		joined, stats := Join(primary, reference, EmitAbsent)

		if len(joined) != 3 {
			t.Fatalf("Join() = %d records, want 3", len(joined))
		}
		if joined[0].Derived != nil {
			t.Error("2012 should have no derived value")
		}
		if joined[1].Derived == nil {
			t.Fatal("2013 should have derived value")
		}
		if got := *joined[1].Derived; math.Abs(got-1600/143.58) > 1e-9 {
			t.Errorf("2013 derived = %v, want %v", got, 1600/143.58)
		}
		if got := Round2(*joined[1].Derived); got != 11.14 {
			t.Errorf("2013 derived rounded = %v, want 11.14", got)
		}
		if stats.Matched != 2 || stats.Unmatched != 1 {
			t.Errorf("stats = %+v, want 2 matched, 1 unmatched", stats)
		}
	})

	t.Run("drop unmatched removes uncovered periods", func(t *testing.T) {
		joined, stats := Join(primary, reference, DropUnmatched)

		if len(joined) != 2 {
			t.Fatalf("Join() = %d records, want 2", len(joined))
		}
		if joined[0].Key != YearKey(2013) {
			t.Errorf("first key = %s, want 2013", joined[0].Key)
		}
		if stats.Unmatched != 1 {
			t.Errorf("stats.Unmatched = %d, want 1", stats.Unmatched)
		}
	})

	t.Run("reference-only keys never appear", func(t *testing.T) {
		joined, _ := Join(primary, reference, EmitAbsent)
		for _, r := range joined {
			if r.Key == YearKey(2015) {
				t.Error("2015 exists only in reference, must not be emitted")
			}
		}
	})
}

func TestJoinZeroReference(t *testing.T) {
	primary := []Record{{Key: YearKey(2013), Value: 1600}}
	reference := []Record{{Key: YearKey(2013), Value: 0}}

	joined, stats := Join(primary, reference, EmitAbsent)

	if len(joined) != 1 {
		t.Fatalf("Join() = %d records, want 1", len(joined))
	}
	if joined[0].Derived != nil {
		t.Error("derived must stay absent on zero reference")
	}
	if stats.ZeroReference != 1 {
		t.Errorf("stats.ZeroReference = %d, want 1", stats.ZeroReference)
	}
	if stats.Matched != 0 {
		t.Errorf("stats.Matched = %d, want 0", stats.Matched)
	}
}

func TestJoinMonthlyKeys(t *testing.T) {
	primary := []Record{{Key: MonthKey(2013, 5), Value: 7000}}
	reference := []Record{{Key: MonthKey(2013, 5), Value: 165.50}}

	joined, stats := Join(primary, reference, EmitAbsent)

	if stats.Matched != 1 {
		t.Fatalf("stats.Matched = %d, want 1", stats.Matched)
	}
	if got := *joined[0].Derived; math.Abs(got-7000/165.50) > 1e-9 {
		t.Errorf("derived = %v, want %v", got, 7000/165.50)
	}
}

func TestJoinPure(t *testing.T) {
	primary := []Record{{Key: YearKey(2013), Value: 1600}}
	reference := []Record{{Key: YearKey(2013), Value: 143.58}}

	first, _ := Join(primary, reference, EmitAbsent)
	second, _ := Join(primary, reference, EmitAbsent)

	if *first[0].Derived != *second[0].Derived {
		t.Error("Join is not deterministic")
	}
	if primary[0].Derived != nil {
		t.Error("Join mutated its input")
	}
}
